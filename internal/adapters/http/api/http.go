// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vintry/tastingd/internal/domain/tasting"
	"github.com/vintry/tastingd/internal/domain/trust"
)

// MaxBodyBytes bounds inbound note payloads.
const MaxBodyBytes = 1 << 20 // 1MB

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the app service.
type Dependencies interface {
	// SubmitNote runs the read-merge-write sequence for one submission.
	SubmitNote(ctx context.Context, customerID string, sub tasting.Submission) error
}

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	proxyHandler  *ProxyNoteHandler
	directHandler *DirectNoteHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, stats StatsProvider, proxy *trust.ProxyVerifier, direct *trust.DirectVerifier) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(stats),
		proxyHandler:  NewProxyNoteHandler(deps, proxy),
		directHandler: NewDirectNoteHandler(deps, direct),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/apps/tastings/notes", RequestIDMiddleware(MetricsMiddleware(s.proxyHandler.HandleProxyNote, "proxy_notes")))
	mux.HandleFunc("/api/tastings/notes", RequestIDMiddleware(MetricsMiddleware(s.directHandler.HandleDirectNote, "direct_notes")))
}

// noteResponse is the uniform body for both endpoints.
type noteResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, noteResponse{OK: true})
}

func writeFailure(w http.ResponseWriter, err error) {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, statusFor(err), noteResponse{OK: false, Error: msg})
}
