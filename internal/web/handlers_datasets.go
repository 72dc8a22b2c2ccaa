package web

// handlers_datasets.go covers dataset listing, schema and row queries,
// and per-row mutations.

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"sheetsight/internal/logging"
)

// handleListDatasets returns every registered dataset.
func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"datasets": s.service.ListDatasets(),
	})
}

// handleDropDataset destroys a dataset's table and catalog entry.
func (s *Server) handleDropDataset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "dataset")

	if err := s.service.Drop(r.Context(), name); err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("dataset dropped", "dataset", name)
	writeJSON(w, map[string]interface{}{"dropped": name})
}

// handleColumns returns a dataset's column specs in schema order.
func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	columns, err := s.service.Columns(chi.URLParam(r, "dataset"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, map[string]interface{}{"columns": columns})
}

// handleRows returns one id-ordered page of a dataset.
// Query parameters: page, limit, search.
func (s *Server) handleRows(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	result, err := s.service.Rows(r.Context(),
		chi.URLParam(r, "dataset"), page, limit, q.Get("search"), s.ownerID(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// rowPayload is the request body for row inserts and updates: safe or
// display column name to new value.
type rowPayload map[string]string

// handleInsertRow appends one row and returns its id.
func (s *Server) handleInsertRow(w http.ResponseWriter, r *http.Request) {
	var values rowPayload
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		s.respondBadRequest(w, r, "request body must be a JSON object of column values")
		return
	}

	id, err := s.service.InsertRow(r.Context(), chi.URLParam(r, "dataset"), values, s.ownerID(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSONStatus(w, http.StatusCreated, map[string]interface{}{"id": id})
}

// rowID parses the {id} URL parameter.
func rowID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

// handleUpdateRow sets the given columns of one row.
func (s *Server) handleUpdateRow(w http.ResponseWriter, r *http.Request) {
	id, ok := rowID(r)
	if !ok {
		s.respondBadRequest(w, r, "row id must be an integer")
		return
	}

	var values rowPayload
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		s.respondBadRequest(w, r, "request body must be a JSON object of column values")
		return
	}

	if err := s.service.UpdateRow(r.Context(), chi.URLParam(r, "dataset"), id, values, s.ownerID(r)); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, map[string]interface{}{"updated": id})
}

// handleDeleteRow removes one row by id.
func (s *Server) handleDeleteRow(w http.ResponseWriter, r *http.Request) {
	id, ok := rowID(r)
	if !ok {
		s.respondBadRequest(w, r, "row id must be an integer")
		return
	}

	if err := s.service.DeleteRow(r.Context(), chi.URLParam(r, "dataset"), id, s.ownerID(r)); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, map[string]interface{}{"deleted": id})
}
