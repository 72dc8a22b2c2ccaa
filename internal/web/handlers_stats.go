package web

// handlers_stats.go exposes the aggregation engine: column statistics,
// cross-tabulations, subject averages, yearly counts, school rankings.

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// handleColumnStats returns numeric statistics over one column.
func (s *Server) handleColumnStats(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.ColumnStats(r.Context(),
		chi.URLParam(r, "dataset"), chi.URLParam(r, "column"), s.ownerID(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// handleCrossTab returns a year-by-category count table.
// Query parameters: year (grouping column), category (classified column),
// kind (admission, school, or region).
func (s *Server) handleCrossTab(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	yearCol := q.Get("year")
	categoryCol := q.Get("category")
	kind := q.Get("kind")
	if yearCol == "" || categoryCol == "" || kind == "" {
		s.respondBadRequest(w, r, "year, category, and kind query parameters are required")
		return
	}

	result, err := s.service.CrossTab(r.Context(),
		chi.URLParam(r, "dataset"), yearCol, categoryCol, kind, s.ownerID(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// handleSubjectAverages returns per-year means for several subject
// columns. Query parameters: year, subjects (comma-separated).
func (s *Server) handleSubjectAverages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	yearCol := q.Get("year")
	raw := q.Get("subjects")
	if yearCol == "" || raw == "" {
		s.respondBadRequest(w, r, "year and subjects query parameters are required")
		return
	}

	var subjects []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			subjects = append(subjects, part)
		}
	}
	if len(subjects) == 0 {
		s.respondBadRequest(w, r, "subjects must name at least one column")
		return
	}

	result, err := s.service.SubjectAverages(r.Context(),
		chi.URLParam(r, "dataset"), yearCol, subjects, s.ownerID(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// handleYearlyCounts returns per-year row counts, split by gender when
// the gender parameter names a column. Query parameters: year, gender.
func (s *Server) handleYearlyCounts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	yearCol := q.Get("year")
	if yearCol == "" {
		s.respondBadRequest(w, r, "year query parameter is required")
		return
	}

	result, err := s.service.YearlyCounts(r.Context(),
		chi.URLParam(r, "dataset"), yearCol, q.Get("gender"), s.ownerID(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// handleTopSchools ranks the most frequent school names. Query
// parameters: school (required), year (optional, enables the per-year
// breakdown).
func (s *Server) handleTopSchools(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	schoolCol := q.Get("school")
	if schoolCol == "" {
		s.respondBadRequest(w, r, "school query parameter is required")
		return
	}

	result, err := s.service.TopSchools(r.Context(),
		chi.URLParam(r, "dataset"), schoolCol, q.Get("year"), s.ownerID(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, result)
}
