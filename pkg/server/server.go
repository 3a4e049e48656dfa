// Package server is an HTTP+WebSocket front end exposing a
// converter.SessionConverter remotely: one converter per WebSocket
// connection, driven by small JSON action messages and streaming
// output.Output records back. Platform integration and wire-format framing
// are explicitly outside pkg/converter's scope (spec.md §1); this package is
// the edge that needs them.
package server

import (
	"embed"
	"encoding/json"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/naoya-sato/henkan/pkg/config"
	"github.com/naoya-sato/henkan/pkg/engine"
)

//go:embed static/index.html
var staticFS embed.FS

// Server serves the static landing page and the conversion WebSocket
// endpoint.
type Server struct {
	dict *engine.Dictionary
	cfg  *config.Watcher
	srv  *http.Server
}

// New returns a Server backed by dict; each incoming WebSocket connection
// gets its own SessionConverter over a fresh engine.Engine view of dict. cfg
// may be nil, in which case every converter runs with default preferences
// and never sees a live config reload.
func New(dict *engine.Dictionary, cfg *config.Watcher) *Server {
	return &Server{dict: dict, cfg: cfg}
}

// Start serves HTTP on addr until Close is called or ListenAndServe
// otherwise returns.
func (s *Server) Start(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("/api/sessions/{id}/convert", s.handleConvertWebSocket)
	mux.HandleFunc("/", s.handleStatic)

	s.srv = &http.Server{
		Addr:    addr,
		Handler: s.corsMiddleware(mux),
	}

	slog.Info("starting session server", "addr", addr)
	return s.srv.ListenAndServe()
}

// Close shuts down the HTTP server.
func (s *Server) Close() error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Close()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		slog.Error("static fs", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.FileServer(http.FS(sub)).ServeHTTP(w, r)
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
