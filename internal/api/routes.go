package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET /health
//	GET /api/v1/calendar/{year}            twelve pages, text/plain
//	GET /api/v1/calendar/{year}/{month}    one page, text/plain
//	GET /api/v1/anniversaries              stored records with verification
//	GET /api/v1/anniversaries/{id}         one stored record
//
// Calendar routes take the query parameters locale=localized, detail=true,
// rule=bencao and encoding=gb2312.
func SetupRoutes(handlers *Handlers, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(RecoveryMiddleware(logger))
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))
	r.Use(CORSMiddleware)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
	})

	r.Get("/health", handlers.HealthCheck)

	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/calendar/{year}", handlers.GetYear)
		api.Get("/calendar/{year}/{month}", handlers.GetMonth)
		api.Get("/anniversaries", handlers.ListAnniversaries)
		api.Get("/anniversaries/{id}", handlers.GetAnniversary)
	})

	return r
}
