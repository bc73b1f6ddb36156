package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/craftfolio/craftfolio-server/internal/auth"
	"github.com/craftfolio/craftfolio-server/internal/models"
	"github.com/craftfolio/craftfolio-server/internal/repositories"
)

// EnableGoogle wires Google sign-in into the auth handler. When left
// unset the google routes respond 404.
func (h *AuthHandler) EnableGoogle(conf *oauth2.Config, frontendURL string) {
	h.google = conf
	h.frontendURL = frontendURL
}

// GET /api/auth/google/login?redirect=login|register
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if h.google == nil {
		http.NotFound(w, r)
		return
	}

	flow := r.URL.Query().Get("redirect")
	if flow == "" {
		flow = "login"
	}

	state, err := GenerateState(map[string]string{"flow": flow})
	if err != nil {
		http.Error(w, "Failed to generate OAuth state", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, h.google.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// GET /api/auth/google/callback
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if h.google == nil {
		http.NotFound(w, r)
		return
	}

	stateData, err := DecodeState(r.FormValue("state"))
	if err != nil {
		http.Error(w, "Invalid OAuth state", http.StatusBadRequest)
		return
	}
	flow := stateData["flow"]

	token, err := h.google.Exchange(r.Context(), r.FormValue("code"))
	if err != nil {
		http.Error(w, "Code exchange failed", http.StatusInternalServerError)
		return
	}

	client := h.google.Client(r.Context(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		http.Error(w, "Failed to get user info", http.StatusInternalServerError)
		return
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	var googleUser struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(data, &googleUser); err != nil || googleUser.Email == "" {
		http.Error(w, "Failed to parse user info", http.StatusInternalServerError)
		return
	}

	existing, err := h.users.UserByEmail(r.Context(), googleUser.Email)

	switch flow {
	case "register":
		if err == nil {
			http.Redirect(w, r, h.frontendURL+"/login?error=user_already_exists", http.StatusTemporaryRedirect)
			return
		}
		newUser := &models.User{
			ID:       uuid.New(),
			Fullname: googleUser.Name,
			Email:    googleUser.Email,
			Password: "", // Google-authenticated
		}
		if err := h.users.CreateUser(r.Context(), newUser); err != nil {
			http.Error(w, "Failed to create user", http.StatusInternalServerError)
			return
		}
		existing = newUser

	default: // login
		if errors.Is(err, repositories.ErrNotFound) {
			http.Redirect(w, r, h.frontendURL+"/register?error=user_not_found", http.StatusTemporaryRedirect)
			return
		}
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
	}

	signed, err := auth.GenerateToken(existing.ID.String(), existing.Email, existing.Fullname, h.secret, h.tokenTTL)
	if err != nil {
		http.Error(w, "Failed to create token", http.StatusInternalServerError)
		return
	}
	h.setSessionCookie(w, signed, int(h.tokenTTL.Seconds()))

	redirectURL := h.frontendURL + "/profile?status=success_login"
	if flow == "register" {
		redirectURL = h.frontendURL + "/profile?status=success_register"
	}
	http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
}
