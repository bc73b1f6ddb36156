package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/craftfolio/craftfolio-server/internal/api/middleware"
	"github.com/craftfolio/craftfolio-server/internal/auth"
	"github.com/craftfolio/craftfolio-server/internal/models"
	"github.com/craftfolio/craftfolio-server/internal/repositories"
	"github.com/craftfolio/craftfolio-server/internal/utils"
)

// AuthHandler owns registration, login and token verification.
type AuthHandler struct {
	users    UserStore
	secret   []byte
	tokenTTL time.Duration
	isProd   bool

	// Google sign-in, wired via EnableGoogle.
	google      *oauth2.Config
	frontendURL string
}

func NewAuthHandler(users UserStore, secret []byte, isProd bool) *AuthHandler {
	return &AuthHandler{
		users:    users,
		secret:   secret,
		tokenTTL: auth.TokenTTL,
		isProd:   isProd,
	}
}

type credentialsInput struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// readCredentials accepts a JSON body (service variant) or a classic
// urlencoded form post (monolith variant).
func readCredentials(r *http.Request) (credentialsInput, error) {
	var input credentialsInput
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&input); err != nil {
			return input, err
		}
		return input, nil
	}
	if err := r.ParseForm(); err != nil {
		return input, err
	}
	input.Fullname = r.PostFormValue("fullname")
	input.Email = r.PostFormValue("email")
	input.Password = r.PostFormValue("password")
	return input, nil
}

// Register godoc
// @Summary Register a new user
// @Description Creates an account and returns a 7-day identity token
// @Tags Auth
// @Accept json
// @Produce json
// @Success 201 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	input, err := readCredentials(r)
	if err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	input.Fullname = strings.TrimSpace(input.Fullname)
	if input.Fullname == "" {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Full name is required",
		})
		return
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Valid email is required",
		})
		return
	}
	if len(input.Password) < auth.MinPasswordLen {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Password must be at least 6 characters",
		})
		return
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Failed to hash password",
		})
		return
	}

	newUser := &models.User{
		ID:       uuid.New(),
		Fullname: input.Fullname,
		Email:    strings.ToLower(input.Email),
		Password: hashed,
	}
	if err := h.users.CreateUser(r.Context(), newUser); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
				Success: false,
				Message: "Email already registered",
			})
			return
		}
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Registration failed",
		})
		return
	}

	h.issueToken(w, newUser, http.StatusCreated, "User registered successfully")
}

// Login godoc
// @Summary Authenticate a user
// @Description Verifies credentials and returns a fresh identity token
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 401 {object} utils.Payload
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	input, err := readCredentials(r)
	if err != nil || input.Email == "" || input.Password == "" {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	user, err := h.users.UserByEmail(r.Context(), strings.ToLower(input.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Same response as a wrong password, so login failures
			// cannot enumerate registered emails.
			h.invalidCredentials(w)
			return
		}
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Login failed",
		})
		return
	}

	if !auth.CheckPassword(user.Password, input.Password) {
		h.invalidCredentials(w)
		return
	}

	h.issueToken(w, user, http.StatusOK, "Login successful")
}

func (h *AuthHandler) invalidCredentials(w http.ResponseWriter) {
	utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
		Success: false,
		Message: "Invalid email or password",
	})
}

// issueToken signs a token, sets the session cookie and writes the response.
func (h *AuthHandler) issueToken(w http.ResponseWriter, user *models.User, status int, message string) {
	token, err := auth.GenerateToken(user.ID.String(), user.Email, user.Fullname, h.secret, h.tokenTTL)
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Failed to create token",
		})
		return
	}

	h.setSessionCookie(w, token, int(h.tokenTTL.Seconds()))

	utils.JSONResponse(w, status, utils.Payload{
		Success: true,
		Message: message,
		Data: map[string]any{
			"token": token,
			"user": map[string]string{
				"id":       user.ID.String(),
				"fullname": user.Fullname,
				"email":    user.Email,
			},
		},
	})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	sameSite := http.SameSiteLaxMode
	if h.isProd {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   h.isProd,
		HttpOnly: true,
		SameSite: sameSite,
	})
}

// Verify godoc
// @Summary Verify an identity token
// @Description Validates the bearer token and returns the embedded identity
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 401 {object} utils.Payload
// @Router /api/auth/verify [post]
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromRequest(r)
	if token == "" {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Success: false,
			Message: "No token provided",
		})
		return
	}

	claims, err := auth.VerifyToken(token, h.secret)
	if err != nil {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Success: false,
			Message: "Invalid token",
		})
		return
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Success: false,
			Message: "Invalid token",
		})
		return
	}

	// The account backing the token must still exist.
	user, err := h.users.UserByID(r.Context(), userID)
	if err != nil {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Success: false,
			Message: "User not found",
		})
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Token is valid",
		Data: map[string]any{
			"valid": true,
			"user": map[string]string{
				"id":       user.ID.String(),
				"fullname": user.Fullname,
				"email":    user.Email,
			},
		},
	})
}

// GET /api/auth/user/{id}
func (h *AuthHandler) UserByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid user id",
		})
		return
	}

	user, err := h.users.UserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.JSONResponse(w, http.StatusNotFound, utils.Payload{
				Success: false,
				Message: "User not found",
			})
			return
		}
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Failed to fetch user",
		})
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "User fetched successfully",
		Data:    map[string]any{"user": user},
	})
}

// GET /logout — destroys the monolith session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.setSessionCookie(w, "", -1)
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Logged out successfully",
	})
}
