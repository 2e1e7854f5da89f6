// Package preview serves the static directory over HTTP so patched pages
// can be checked in a browser.
package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/open-unicorn/uws-sidebar/internal/runner"
)

// Config holds server configuration.
type Config struct {
	Port      int
	StaticDir string
	Include   []string
	Exclude   []string
	AllowAll  bool // allow all CORS origins
}

// Server serves the static pages plus a small status API.
type Server struct {
	cfg        Config
	router     chi.Router
	httpServer *http.Server
}

// New creates a preview server for cfg.StaticDir.
func New(cfg Config) *Server {
	s := &Server{cfg: cfg}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/api/status", s.handleStatus)

	// The sidebar links are absolute (/uws-s3.html), so the static dir is
	// served from the root.
	r.Handle("/*", http.FileServer(http.Dir(s.cfg.StaticDir)))

	return r
}

// statusItem is one page in the /api/status response.
type statusItem struct {
	Filename string `json:"filename"`
	Title    string `json:"title"`
	State    string `json:"state"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	statuses, err := runner.Status(runner.Options{
		StaticDir: s.cfg.StaticDir,
		Include:   s.cfg.Include,
		Exclude:   s.cfg.Exclude,
	})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	items := make([]statusItem, len(statuses))
	for i, st := range statuses {
		items[i] = statusItem{
			Filename: st.Filename,
			Title:    st.Title,
			State:    string(st.State),
		}
	}
	json.NewEncoder(w).Encode(items)
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("preview server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
