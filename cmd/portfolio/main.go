package main

import (
	"log"

	"github.com/craftfolio/craftfolio-server/internal/api"
	"github.com/craftfolio/craftfolio-server/internal/api/handlers"
	"github.com/craftfolio/craftfolio-server/internal/api/services"
	"github.com/craftfolio/craftfolio-server/internal/config"
	"github.com/craftfolio/craftfolio-server/internal/models"
	"github.com/craftfolio/craftfolio-server/internal/repositories"
	"github.com/craftfolio/craftfolio-server/internal/uploader"
)

// The monolith variant: auth and profile in one process, the identity
// token carried in an HttpOnly session cookie.
func main() {
	cfg := config.Envs

	db := repositories.ConnectDatabase(cfg.DB_URL, &models.User{}, &models.Profile{})
	users := repositories.NewUserRepository(db)
	profiles := repositories.NewProfileRepository(db)

	uploads, err := uploader.New(cfg)
	if err != nil {
		log.Fatalf("portfolio: %v", err)
	}

	authHandler := handlers.NewAuthHandler(users, []byte(cfg.JWTSecret), cfg.IsProduction())
	if cfg.Google.ClientID != "" {
		authHandler.EnableGoogle(services.GoogleOauthConfig(cfg.Google), cfg.CorsConfig.AllowedOrigins[0])
	}
	profileHandler := handlers.NewProfileHandler(profiles, uploads, cfg.UploadFolder)

	uploadsDir := ""
	if cfg.StorageProvider == "disk" {
		uploadsDir = cfg.UploadDir
	}

	router := api.SetupPortfolioRouter(authHandler, profileHandler, []byte(cfg.JWTSecret), uploadsDir, cfg.CorsConfig)

	if err := api.Serve(":"+cfg.Port, router); err != nil {
		log.Fatalf("portfolio: %v", err)
	}
}
