/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/quotes/*         Quote drafting, lifecycle, evaluation
  /api/catalog          Pricing catalog document
  /api/scenarios/*      Demo scenarios
  /*                    Static files (frontend)

STATIC FILE SERVING:
  In production, serves the built admin/calculator app from web/dist/.
  Falls back to index.html for client-side routing.

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Quote routes
		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", h.ListQuotes)
			r.Post("/", h.CreateQuote)
			r.Get("/{id}", h.GetQuote)
			r.Put("/{id}", h.UpdateQuote)
			r.Delete("/{id}", h.DeleteQuote)
			r.Get("/{id}/evaluation", h.GetEvaluation)
			r.Put("/{id}/choices", h.UpdateChoices)
			r.Post("/{id}/send", h.SendQuote)
			r.Post("/{id}/approve", h.ApproveQuote)
			r.Post("/{id}/decline", h.DeclineQuote)
			r.Post("/{id}/contracts", h.GenerateContracts)
		})

		// Catalog routes
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", h.GetCatalog)
			r.Put("/", h.PutCatalog)
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
		})
	})

	// Serve static files (admin/calculator app)
	// First try ./web/dist (development), then fall back to message
	staticDir := "./web/dist"
	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		// Try relative to executable
		exe, _ := os.Executable()
		staticDir = filepath.Join(filepath.Dir(exe), "web", "dist")
	}

	if _, err := os.Stat(staticDir); err == nil {
		fileServer := http.FileServer(http.Dir(staticDir))
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			fullPath := filepath.Join(staticDir, r.URL.Path)

			// Check if file exists
			if _, err := os.Stat(fullPath); os.IsNotExist(err) {
				// SPA routing: serve index.html
				http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
				return
			}
			fileServer.ServeHTTP(w, r)
		})
	} else {
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Quote Engine</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Quote Engine API</h1>
<p>The frontend is not built yet. Run <code>cd web && npm install && npm run build</code></p>
<h2>API Endpoints</h2>
<ul>
<li><a href="/api/quotes">/api/quotes</a> - List quotes</li>
<li><a href="/api/catalog">/api/catalog</a> - Pricing catalog</li>
<li><a href="/api/scenarios">/api/scenarios</a> - List demo scenarios</li>
</ul>
</body>
</html>`))
		})
	}

	return r
}
