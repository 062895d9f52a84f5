package server

import (
	"encoding/json"
	"net/http"
)

// handleAPI serves the latest tick as JSON, or 204 before the first one.
func (s *Server) handleAPI(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.status.Snapshot()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		s.logger.Errorf("API Handler: failed to encode status (%v)", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// handleHealthz reports 200 once the loop has completed a tick.
func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	if _, ok := s.status.Snapshot(); !ok {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("waiting for first measurement\n"))
		return
	}
	w.Write([]byte("ok\n"))
}
