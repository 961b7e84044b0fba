package http

import (
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/redmonkez12/jobs-api/internal/auth"
	"github.com/redmonkez12/jobs-api/internal/config"
	"github.com/redmonkez12/jobs-api/internal/httputil"
	"github.com/redmonkez12/jobs-api/internal/job"
	"github.com/redmonkez12/jobs-api/internal/logging"
	"github.com/redmonkez12/jobs-api/internal/ratelimit"
)

const swaggerPrefix = "/api-docs/"

// NewRouter creates and configures the HTTP router. limiter may be nil when
// rate limiting is disabled.
func NewRouter(
	cfg *config.Config,
	authHandler *auth.Handler,
	authMiddleware *auth.Middleware,
	jobHandler *job.Handler,
	limiter *ratelimit.Limiter,
	logger *logging.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.Server.TrustedOrigins,
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders: []string{"RateLimit-Limit", "RateLimit-Remaining", "RateLimit-Reset", "Retry-After"},
			MaxAge:         300, // 5 minutes
		}))
	}

	// Global middleware
	r.Use(SecurityHeaders)      // Security headers on all responses
	r.Use(middleware.Recoverer) // Recover from panics
	r.Use(middleware.RequestID) // Add request ID
	r.Use(ratelimit.RecordPeer) // Keep the socket address for the limiter
	if cfg.Server.TrustedProxies > 0 {
		r.Use(middleware.RealIP) // Forwarding headers are only honoured behind a proxy
	}
	r.Use(logging.RequestLogger(logger)) // Structured logging with request context
	if limiter != nil {
		r.Use(limiter.Handler) // Per-IP fixed window
	}
	r.Use(middleware.Compress(5)) // Compress responses

	// Public routes
	r.Get("/health", handleHealth)

	if cfg.Server.SwaggerEnabled {
		logger.Info("swagger UI enabled", "path", swaggerPrefix+"index.html")
		r.Get(swaggerPrefix+"*", httpSwagger.WrapHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// Protected routes (require authentication)
		r.Route("/jobs", func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Get("/", auth.Authenticated(jobHandler.List))
			r.Post("/", auth.Authenticated(jobHandler.Create))
			r.Get("/{id}", auth.Authenticated(jobHandler.Get))
			r.Patch("/{id}", auth.Authenticated(jobHandler.Update))
			r.Delete("/{id}", auth.Authenticated(jobHandler.Delete))
		})
	})

	r.NotFound(notFoundHandler(cfg.Server.StaticDir))
	r.MethodNotAllowed(handleMethodNotAllowed)

	return r
}

// handleHealth is a simple health check endpoint
// @Summary      Health check
// @Description  Check if the API is running
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, map[string]string{"status": "api is running"}, http.StatusOK)
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	httputil.RespondErrorWithCode(w, "method not allowed", httputil.CodeMethodNotAllowed, http.StatusMethodNotAllowed)
}

// notFoundHandler serves files from staticDir for unmatched GET and HEAD
// requests and answers everything else with a JSON 404.
func notFoundHandler(staticDir string) http.HandlerFunc {
	var root http.FileSystem
	var files http.Handler
	if staticDir != "" {
		root = http.Dir(staticDir)
		files = http.FileServer(root)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if files != nil && (r.Method == http.MethodGet || r.Method == http.MethodHead) && servable(root, r.URL.Path) {
			files.ServeHTTP(w, r)
			return
		}
		httputil.RespondErrorWithCode(w, "route does not exist", httputil.CodeRouteNotFound, http.StatusNotFound)
	}
}

// servable reports whether urlPath names a file, or a directory with an index.html
func servable(root http.FileSystem, urlPath string) bool {
	name := path.Clean("/" + urlPath)

	f, err := root.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false
	}
	if !info.IsDir() {
		return true
	}

	index, err := root.Open(path.Join(name, "index.html"))
	if err != nil {
		return false
	}
	index.Close()
	return true
}
