package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/craftfolio/craftfolio-server/internal/auth"
	"github.com/craftfolio/craftfolio-server/internal/utils"
)

// TokenFromRequest reads the identity token from the Authorization
// header, falling back to the session cookie set by the monolith.
// Only the Bearer scheme is accepted.
func TokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return ""
		}
		return token
	}
	if cookie, err := r.Cookie("token"); err == nil {
		return cookie.Value
	}
	return ""
}

// RequireAuth verifies the identity token in-process against the shared
// secret and puts the caller identity on the request context.
func RequireAuth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			token := TokenFromRequest(r)
			if token == "" {
				unauthorized(w)
				return
			}

			claims, err := auth.VerifyToken(token, secret)
			if err != nil {
				unauthorized(w)
				return
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := WithIdentity(r.Context(), Identity{
				UserID:   userID,
				Email:    claims.Email,
				Fullname: claims.Fullname,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
		Success: false,
		Message: "Unauthorized",
	})
}
