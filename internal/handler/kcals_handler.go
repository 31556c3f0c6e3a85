package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/kcals-backend-go/internal/models"
	"github.com/jengzang/kcals-backend-go/internal/service"
	"github.com/jengzang/kcals-backend-go/pkg/response"
)

// maxUploadBytes bounds the body of an upload
const maxUploadBytes = 32 << 20

// KcalsHandler handles HTTP requests that compute energy statistics
type KcalsHandler struct {
	kcalsService *service.KcalsService
}

// NewKcalsHandler creates a new kcals handler
func NewKcalsHandler(kcalsService *service.KcalsService) *KcalsHandler {
	return &KcalsHandler{
		kcalsService: kcalsService,
	}
}

// Compute handles POST /api/v1/kcals
func (h *KcalsHandler) Compute(c *gin.Context) {
	var req models.KcalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.kcalsService.Compute(req.Points, req.Params)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, result)
}

// Upload handles POST /api/v1/kcals/upload?format=gpx|kml|text|csv with the raw file as body.
// Parameter overrides are taken from the query string.
func (h *KcalsHandler) Upload(c *gin.Context) {
	var overrides models.ParamsRequest
	if err := c.ShouldBindQuery(&overrides); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	result, err := h.kcalsService.ComputeUpload(c.DefaultQuery("format", "gpx"), body, &overrides)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, result)
}

// fail maps a service error onto an HTTP status
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTrackNotFound):
		response.Fail(c, http.StatusNotFound, "Track not found", err)
	case errors.Is(err, service.ErrInvalidInput):
		response.Fail(c, http.StatusBadRequest, "Invalid input", err)
	default:
		c.Error(err)
		response.Fail(c, http.StatusInternalServerError, "Failed to compute kcals", err)
	}
}
