// Package server exposes the viewer over HTTP: the Swagger UI page, a JSON
// API for imports, the override, the recall list and exports, and the
// websocket a host integration uses to relay selected text.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/GabrielNunesIT/go-libs/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/GabrielNunesIT/swagger-preview/internal/adapters/swaggerui"
	"github.com/GabrielNunesIT/swagger-preview/internal/domain"
	"github.com/GabrielNunesIT/swagger-preview/internal/viewer"
)

// Config holds server configuration.
type Config struct {
	ListenAddr string
	AllowAll   bool // allow all CORS and websocket origins
}

// History is the recall list as managed from the user surface.
type History interface {
	List(ctx context.Context) ([]domain.HistoryEntry, error)
	Remove(ctx context.Context, createdAt int64) ([]domain.HistoryEntry, error)
	Clear(ctx context.Context) error
}

// Server is the preview daemon's HTTP surface.
type Server struct {
	cfg           Config
	coord         *viewer.Coordinator
	history       History
	surface       *swaggerui.Surface
	notifications *Notifications
	log           logger.ILogger
	router        chi.Router
	httpServer    *http.Server
}

// New creates a server. notifications must be the notifier the
// coordinator was built with so the page can drain what it reports.
func New(cfg Config, coord *viewer.Coordinator, history History, surface *swaggerui.Surface, notifications *Notifications, log logger.ILogger) *Server {
	s := &Server{
		cfg:           cfg,
		coord:         coord,
		history:       history,
		surface:       surface,
		notifications: notifications,
		log:           log,
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/", s.surface.ServePage)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Post("/import", s.handleImport)
		r.Get("/notifications", s.handleNotifications)

		r.Route("/session", func(r chi.Router) {
			r.Delete("/", s.handleBack)
			r.Put("/override", s.handleOverride)
			r.Get("/spec", s.surface.ServeConfig)
			r.Get("/summary", s.handleSummary)
			r.Get("/export", s.handleExport)
		})

		r.Route("/history", func(r chi.Router) {
			r.Get("/", s.handleHistoryList)
			r.Delete("/", s.handleHistoryClear)
			r.Post("/{createdAt}/open", s.handleHistoryOpen)
			r.Delete("/{createdAt}", s.handleHistoryRemove)
		})
	})

	r.Get("/ws/host", s.handleHost)

	return r
}

// requestLogger logs each request through the application logger.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.log.Infof("%s %s %d %s", r.Method, r.URL.Path, ww.Status(), time.Since(start).Round(time.Millisecond))
	})
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured address.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.log.Infof("swagger-preview listening on http://%s", s.cfg.ListenAddr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
