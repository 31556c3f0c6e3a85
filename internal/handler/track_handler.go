package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/kcals-backend-go/internal/models"
	"github.com/jengzang/kcals-backend-go/internal/service"
	"github.com/jengzang/kcals-backend-go/pkg/response"
)

// TrackHandler handles HTTP requests for stored tracks
type TrackHandler struct {
	kcalsService *service.KcalsService
}

// NewTrackHandler creates a new track handler
func NewTrackHandler(kcalsService *service.KcalsService) *TrackHandler {
	return &TrackHandler{
		kcalsService: kcalsService,
	}
}

// ListTracks handles GET /api/v1/tracks
func (h *TrackHandler) ListTracks(c *gin.Context) {
	tracks, err := h.kcalsService.ListTracks(c.Request.Context())
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, tracks)
}

// GetTrackKcals handles GET /api/v1/tracks/:id/kcals?startTime=&endTime=
func (h *TrackHandler) GetTrackKcals(c *gin.Context) {
	var f models.TrackFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}
	f.TrackID = c.Param("id")

	var overrides models.ParamsRequest
	if err := c.ShouldBindQuery(&overrides); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	result, err := h.kcalsService.ComputeStored(c.Request.Context(), f, &overrides)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, result)
}
