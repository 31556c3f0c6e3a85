package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/kcals-backend-go/internal/config"
	"github.com/jengzang/kcals-backend-go/internal/handler"
	"github.com/jengzang/kcals-backend-go/internal/middleware"
	"github.com/jengzang/kcals-backend-go/internal/service"
)

// SetupRouter wires the HTTP API
func SetupRouter(cfg *config.Config, kcalsService *service.KcalsService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "kcals API is running",
		})
	})

	kcalsHandler := handler.NewKcalsHandler(kcalsService)
	trackHandler := handler.NewTrackHandler(kcalsService)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(cfg.RateLimit, time.Minute))
	if cfg.JWTSecret != "" {
		api.Use(middleware.JWTAuth(cfg.JWTSecret))
	}
	{
		kcals := api.Group("/kcals")
		{
			kcals.POST("", kcalsHandler.Compute)
			kcals.POST("/upload", kcalsHandler.Upload)
		}

		tracks := api.Group("/tracks")
		{
			tracks.GET("", trackHandler.ListTracks)
			tracks.GET("/:id/kcals", trackHandler.GetTrackKcals)
		}
	}

	return r
}
