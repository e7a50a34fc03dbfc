package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hollowpine/frontier/internal/ability"
	"github.com/hollowpine/frontier/internal/database"
	"github.com/hollowpine/frontier/internal/deathpenalty"
	"github.com/hollowpine/frontier/internal/depletion"
	"github.com/hollowpine/frontier/internal/handler"
	"github.com/hollowpine/frontier/internal/logger"
	"github.com/hollowpine/frontier/internal/metrics"
	"github.com/hollowpine/frontier/internal/profession"
)

type Server struct {
	httpServer        *http.Server
	dbPool            database.Pool
	professionService profession.Service
	penaltyEngine     *deathpenalty.Engine
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, professionService profession.Service, penaltyEngine *deathpenalty.Engine, catalog *ability.Catalog, tracker *depletion.Tracker) *Server {
	r := chi.NewRouter()

	// Middleware stack, outermost first
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(RateLimitMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		professionHandler := handler.NewProfessionHandler(professionService)
		abilityHandler := handler.NewAbilityHandler(catalog, professionService)
		deathHandler := handler.NewDeathHandler(penaltyEngine)
		adminHandler := handler.NewAdminHandler(professionService)

		r.Route("/profession", func(r chi.Router) {
			r.Post("/award-xp", professionHandler.HandleAwardXP)
			r.Get("/stats", professionHandler.HandleGetStats)
			r.Get("/progress", professionHandler.HandleGetProgress)
		})

		r.Route("/ability", func(r chi.Router) {
			r.Get("/catalog", abilityHandler.HandleGetCatalog)
			r.Get("/player", abilityHandler.HandleGetPlayerAbilities)
		})

		r.Route("/player", func(r chi.Router) {
			r.Post("/join", professionHandler.HandleJoin)
			r.Post("/leave", professionHandler.HandleLeave(
				penaltyEngine.ClearSession,
				tracker.ClearPlayer,
			))
			r.Post("/death", deathHandler.HandleDeath)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Route("/profession", func(r chi.Router) {
				r.Post("/set-xp", adminHandler.HandleSetXP)
				r.Post("/set-level", adminHandler.HandleSetLevel)
				r.Post("/reset", adminHandler.HandleReset)
			})
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:            dbPool,
		professionService: professionService,
		penaltyEngine:     penaltyEngine,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Health and metrics probes are too chatty to log
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
