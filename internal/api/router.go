package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/craftfolio/craftfolio-server/docs"
	"github.com/craftfolio/craftfolio-server/internal/api/handlers"
	"github.com/craftfolio/craftfolio-server/internal/api/middleware"
)

// SetupAuthRouter wires the auth-service surface.
func SetupAuthRouter(h *handlers.AuthHandler, corsOpts cors.Options) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handlers.Health("auth-service"))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("/docs/", httpSwagger.WrapHandler)

	mux.HandleFunc("POST /api/auth/register", h.Register)
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/verify", h.Verify)
	mux.HandleFunc("GET /api/auth/user/{id}", h.UserByID)
	mux.HandleFunc("GET /api/auth/google/login", h.GoogleLogin)
	mux.HandleFunc("GET /api/auth/google/callback", h.GoogleCallback)

	return wrap(mux, corsOpts)
}

// SetupProfileRouter wires the profile-service surface. Protected routes
// trust the auth-service through the given verification middleware.
func SetupProfileRouter(h *handlers.ProfileHandler, verify func(http.Handler) http.Handler, corsOpts cors.Options) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handlers.Health("profile-service"))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.Handle("GET /api/profile", verify(http.HandlerFunc(h.GetOwn)))
	mux.Handle("POST /api/profile", verify(http.HandlerFunc(h.Save)))
	mux.Handle("DELETE /api/profile", verify(http.HandlerFunc(h.Delete)))
	mux.Handle("GET /api/profile/preview", verify(http.HandlerFunc(h.Preview)))

	// Public read path for rendered portfolios.
	mux.HandleFunc("GET /api/profile/{userId}", h.GetByUserID)

	return wrap(mux, corsOpts)
}

// SetupPortfolioRouter wires the monolith: both concerns in one process,
// the identity token carried in a session cookie.
func SetupPortfolioRouter(ah *handlers.AuthHandler, ph *handlers.ProfileHandler, secret []byte, uploadsDir string, corsOpts cors.Options) http.Handler {
	mux := http.NewServeMux()
	authed := middleware.RequireAuth(secret)

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/profile", http.StatusFound)
	})

	mux.HandleFunc("GET /health", handlers.Health("portfolio"))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("/docs/", httpSwagger.WrapHandler)

	mux.HandleFunc("POST /signup", ah.Register)
	mux.HandleFunc("POST /login", ah.Login)
	mux.HandleFunc("GET /logout", ah.Logout)

	mux.Handle("GET /profile", authed(http.HandlerFunc(ph.GetOwn)))
	mux.Handle("POST /profile", authed(http.HandlerFunc(ph.Save)))
	mux.Handle("GET /preview", authed(http.HandlerFunc(ph.Preview)))

	// Locally stored images are served by the monolith itself.
	if uploadsDir != "" {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))
	}

	return wrap(mux, corsOpts)
}

func wrap(mux *http.ServeMux, corsOpts cors.Options) http.Handler {
	handler := middleware.Metrics(mux)(mux)
	handler = cors.New(corsOpts).Handler(handler)
	return middleware.Logger(handler)
}
