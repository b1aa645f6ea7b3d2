// Package server wires the HTTP mux and middleware.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Jana-Alrzoog/2025-GP-28/internal/handler"
)

// Server is the HTTP server for the Masar assistant.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a Server with all routes registered.
func New(port int, h *handler.Handler, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	// Chat
	mux.HandleFunc("POST /ask", h.Ask)

	// Route planning and stations
	mux.HandleFunc("POST /api/route", h.PlanRoute)
	mux.HandleFunc("GET /api/stations", h.ListStations)
	mux.HandleFunc("GET /api/stations/nearest", h.NearestStation)

	// Lost & found
	mux.HandleFunc("GET /api/reports/{ticket}", h.GetReport)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           withMiddleware(mux, logger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	s.logger.Info("server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
