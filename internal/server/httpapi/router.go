package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophwallet/internal/logging"
	"github.com/dmitrijs2005/gophwallet/internal/server/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter registers the user routes:
//
//	POST /api/v1/user/signup
//	POST /api/v1/user/signin
//	PUT  /api/v1/user/        (auth)
//	GET  /api/v1/user/bulk    (auth)
//	GET  /api/v1/user/me      (auth)
//	GET  /health
func NewRouter(h *Handler, guard *auth.Guard, l logging.Logger, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestLogger(l.With("module", "http_access")))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1/user", func(r chi.Router) {
		r.Post("/signup", h.handleSignup)
		r.Post("/signin", h.handleSignin)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(guard))
			r.Put("/", h.handleUpdate)
			r.Get("/bulk", h.handleList)
			r.Get("/me", h.handleMe)
		})
	})

	return r
}
