package web

// errors.go provides unified error response handling for the API.
//
// Handlers call respondError with the raw error. The sentinel decides the
// HTTP status, dataset.MapError supplies the user-facing message and
// support code, and the technical error is logged server-side with the
// request ID for correlation.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"sheetsight/internal/dataset"
	"sheetsight/internal/stats"
)

// ErrorResponse is the JSON structure for API error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// statusFor maps sentinel errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, dataset.ErrUnknownDataset),
		errors.Is(err, dataset.ErrRowNotFound):
		return http.StatusNotFound
	case errors.Is(err, dataset.ErrEmptyDataset),
		errors.Is(err, dataset.ErrUnknownColumn),
		errors.Is(err, dataset.ErrUnknownClassifier),
		errors.Is(err, stats.ErrNoValidValues):
		return http.StatusBadRequest
	case errors.Is(err, dataset.ErrTooManyIngests):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs the technical error and writes a user-friendly JSON
// response with the status implied by the error.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	s.respondErrorStatus(w, r, err, statusFor(err))
}

// respondErrorStatus is respondError with an explicit status, for
// request faults that carry no sentinel (upload parse errors).
func (s *Server) respondErrorStatus(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := dataset.MapError(err)

	requestID := middleware.GetReqID(r.Context())
	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
		"request_id", requestID,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   userMsg.Message,
		Message: userMsg.Message,
		Action:  userMsg.Action,
		Code:    userMsg.Code,
	})
}

// respondBadRequest reports a request-shape problem (missing parameter,
// unparseable body) that never reached the dataset layer.
func (s *Server) respondBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	requestID := middleware.GetReqID(r.Context())
	slog.Warn("bad request",
		"path", r.URL.Path,
		"method", r.Method,
		"reason", message,
		"request_id", requestID,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   message,
		Message: message,
		Code:    "REQ001",
	})
}
