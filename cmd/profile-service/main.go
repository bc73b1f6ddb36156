package main

import (
	"log"
	"os"

	"github.com/craftfolio/craftfolio-server/internal/api"
	"github.com/craftfolio/craftfolio-server/internal/api/handlers"
	"github.com/craftfolio/craftfolio-server/internal/api/middleware"
	"github.com/craftfolio/craftfolio-server/internal/auth"
	"github.com/craftfolio/craftfolio-server/internal/config"
	"github.com/craftfolio/craftfolio-server/internal/models"
	"github.com/craftfolio/craftfolio-server/internal/repositories"
	"github.com/craftfolio/craftfolio-server/internal/uploader"
)

func main() {
	cfg := config.Envs

	db := repositories.ConnectDatabase(cfg.DB_URL, &models.Profile{})
	profiles := repositories.NewProfileRepository(db)

	uploads, err := uploader.New(cfg)
	if err != nil {
		log.Fatalf("profile-service: %v", err)
	}

	// Every profile operation trusts the auth-service, bounded by the
	// configured verification timeout.
	verifyClient := auth.NewVerifyClient(cfg.AuthServiceURL, cfg.VerifyTimeout)
	verify := middleware.RequireRemoteAuth(verifyClient)

	handler := handlers.NewProfileHandler(profiles, uploads, cfg.UploadFolder)
	router := api.SetupProfileRouter(handler, verify, cfg.CorsConfig)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3002"
	}

	if err := api.Serve(":"+port, router); err != nil {
		log.Fatalf("profile-service: %v", err)
	}
}
