package middleware

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/craftfolio/craftfolio-server/internal/auth"
	"github.com/craftfolio/craftfolio-server/internal/utils"
)

// RequireRemoteAuth verifies the identity token by calling out to the
// auth-service. An unreachable auth-service surfaces as 502 instead of
// hanging the request; the verify client carries its own timeout.
func RequireRemoteAuth(client *auth.VerifyClient) func(http.Handler) http.Handler {
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

			identity, err := client.Verify(r.Context(), token)
			if err != nil {
				if errors.Is(err, auth.ErrAuthUnavailable) {
					utils.JSONResponse(w, http.StatusBadGateway, utils.Payload{
						Success: false,
						Message: "Authentication service unavailable",
					})
					return
				}
				unauthorized(w)
				return
			}

			userID, err := uuid.Parse(identity.ID)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := WithIdentity(r.Context(), Identity{
				UserID:   userID,
				Email:    identity.Email,
				Fullname: identity.Fullname,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
