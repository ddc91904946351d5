package rest

import (
	"net/http"
	"net/url"

	"github.com/fincaforms/fincaforms/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// userParam names the path segment after /api/users. Schema routes carry
// an email there, form routes an account id.
const userParam = "user"

// NewRouter mounts the API handlers behind request id, request logging,
// panic recovery and CORS middleware.
func NewRouter(
	logger logging.Logger,
	allowedOrigins []string,
	accountH *AccountHandler,
	schemaH *SchemaHandler,
	formH *FormHandler,
	healthH *HealthHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/healthz", healthH.Check)

	r.Route("/api", func(r chi.Router) {
		r.Post("/signup", accountH.Signup)

		r.Get("/users", accountH.List)
		r.Delete("/users", accountH.Purge)

		r.Route("/users/{"+userParam+"}", func(r chi.Router) {
			r.Get("/schema", schemaH.Get)
			r.Put("/schema", schemaH.Merge)

			r.Get("/forms", formH.List)
			r.Post("/forms", formH.Create)
			r.Get("/forms/{formId}", formH.Get)
			r.Put("/forms/{formId}", formH.Update)
		})
	})

	return r
}

// pathParam returns the decoded value of a route parameter. chi matches on
// RawPath when it is set, and only then is the value still escaped.
func pathParam(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}
