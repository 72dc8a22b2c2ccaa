package web

// handlers_admin.go covers catalog maintenance and the audit trail.

import (
	"net/http"
	"strconv"

	"sheetsight/internal/logging"
)

// handleReset drops every dataset. Destructive; intended for
// operators, not end users.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	dropped, err := s.service.Reset(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("catalog reset", "dropped", dropped)
	writeJSON(w, map[string]interface{}{"dropped": dropped})
}

// handleReload re-introspects the database and replaces the catalog.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Reload(r.Context()); err != nil {
		s.respondError(w, r, err)
		return
	}

	datasets := s.service.ListDatasets()
	logging.FromContext(r.Context()).Info("catalog reloaded", "datasets", len(datasets))
	writeJSON(w, map[string]interface{}{"datasets": len(datasets)})
}

// handleAudit returns the newest audit entries. Query parameter: limit.
func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := s.service.RecentAudit(r.Context(), limit)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, map[string]interface{}{"entries": entries})
}
