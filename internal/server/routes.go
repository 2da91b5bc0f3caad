package server

import (
	"net/http"

	"github.com/investa/finserve/internal/version"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /version", s.handleVersion)

	// Calculators
	mux.HandleFunc("POST /api/calculators/{kind}", s.handleCalculate)
	mux.HandleFunc("POST /api/calculators/{kind}/chart.png", s.handleCalculateChart)

	// Fund returns
	mux.HandleFunc("GET /api/funds", s.handleFundList)
	mux.HandleFunc("GET /api/funds/{code}", s.handleFund)

	// Contact relay
	mux.Handle("POST /api/contact", rateLimitMiddleware(s.limiter, http.HandlerFunc(s.handleContact)))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, version.Get())
}
