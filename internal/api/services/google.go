package services

import (
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/craftfolio/craftfolio-server/internal/config"
)

// GoogleOauthConfig builds the OAuth2 config for Google sign-in.
func GoogleOauthConfig(cfg config.GoogleConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}
