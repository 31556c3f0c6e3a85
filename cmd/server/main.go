package main

import (
	"log"
	"os"

	"github.com/jengzang/kcals-backend-go/internal/api"
	"github.com/jengzang/kcals-backend-go/internal/config"
	"github.com/jengzang/kcals-backend-go/internal/database"
	"github.com/jengzang/kcals-backend-go/internal/dem"
	"github.com/jengzang/kcals-backend-go/internal/pipeline"
	"github.com/jengzang/kcals-backend-go/internal/repository"
	"github.com/jengzang/kcals-backend-go/internal/service"
)

// Usage: server [key=value ...]. Settings also come from KCALS_* variables and the properties
// file named by KCALS_PREFS.
func main() {
	cfg, err := config.Load(os.Getenv("KCALS_PREFS"), os.Args[1:])
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}
	defer db.Close()

	var elevation pipeline.ElevationSource
	if cfg.DEMPath != "" {
		grid, err := dem.LoadAAIGrid(cfg.DEMPath)
		if err != nil {
			log.Fatal("Failed to load elevation model: ", err)
		}
		log.Printf("Loaded elevation model %s (%d x %d)", cfg.DEMPath, grid.NCols, grid.NRows)
		elevation = grid
	}

	kcalsService := service.NewKcalsService(repository.NewTrackRepository(db), cfg.Params, elevation)
	router := api.SetupRouter(cfg, kcalsService)

	if cfg.JWTSecret == "" {
		log.Printf("Warning: jwt_secret is not set, API is unauthenticated")
	}
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
