package main

import (
	"log"
	"os"

	"github.com/craftfolio/craftfolio-server/internal/api"
	"github.com/craftfolio/craftfolio-server/internal/api/handlers"
	"github.com/craftfolio/craftfolio-server/internal/api/services"
	"github.com/craftfolio/craftfolio-server/internal/config"
	"github.com/craftfolio/craftfolio-server/internal/models"
	"github.com/craftfolio/craftfolio-server/internal/repositories"
)

// @title Craftfolio Auth Service
// @version 1.0
// @description Credential issuance and verification for the portfolio builder.
// @BasePath /
func main() {
	cfg := config.Envs

	db := repositories.ConnectDatabase(cfg.DB_URL, &models.User{})
	users := repositories.NewUserRepository(db)

	handler := handlers.NewAuthHandler(users, []byte(cfg.JWTSecret), cfg.IsProduction())
	if cfg.Google.ClientID != "" {
		handler.EnableGoogle(services.GoogleOauthConfig(cfg.Google), cfg.CorsConfig.AllowedOrigins[0])
	}

	router := api.SetupAuthRouter(handler, cfg.CorsConfig)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	if err := api.Serve(":"+port, router); err != nil {
		log.Fatalf("auth-service: %v", err)
	}
}
