package web

// handlers_ingest.go covers the upload path: workbook parsing, sheet
// listing, and materialization of one or all sheets as datasets.

import (
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"sheetsight/internal/dataset"
	"sheetsight/internal/ingest"
	"sheetsight/internal/logging"
)

// uploadFile pulls the "file" part out of a multipart request, enforcing
// the configured size cap.
func (s *Server) uploadFile(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Ingest.MaxFileSize)
	if err := r.ParseMultipartForm(s.cfg.Ingest.MaxFileSize); err != nil {
		return nil, nil, err
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, nil, errors.New("no file provided")
	}
	return file, header, nil
}

// handleListSheets parses an uploaded workbook and returns its sheet
// names without materializing anything.
func (s *Server) handleListSheets(w http.ResponseWriter, r *http.Request) {
	file, header, err := s.uploadFile(w, r)
	if err != nil {
		s.respondErrorStatus(w, r, err, http.StatusBadRequest)
		return
	}
	defer file.Close()

	wb, err := ingest.OpenWorkbook(file)
	if err != nil {
		s.respondErrorStatus(w, r, err, http.StatusBadRequest)
		return
	}
	defer wb.Close()

	writeJSON(w, map[string]interface{}{
		"filename": header.Filename,
		"sheets":   wb.SheetNames(),
	})
}

// sheetResult reports one sheet's ingest outcome within an upload.
type sheetResult struct {
	Sheet  string                `json:"sheet"`
	Result *dataset.IngestResult `json:"result,omitempty"`
	Error  *dataset.UserMessage  `json:"error,omitempty"`
}

// handleUpload ingests an uploaded workbook. With ?sheet= only that sheet
// is materialized; otherwise every sheet becomes its own dataset. With
// ?versioned=true the dataset name carries an ingestion timestamp, so a
// re-upload creates a new dataset instead of replacing the old one. A
// sheet that fails is reported per-sheet and does not abort the others.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := s.uploadFile(w, r)
	if err != nil {
		s.respondErrorStatus(w, r, err, http.StatusBadRequest)
		return
	}
	defer file.Close()

	wb, err := ingest.OpenWorkbook(file)
	if err != nil {
		s.respondErrorStatus(w, r, err, http.StatusBadRequest)
		return
	}
	defer wb.Close()

	sheets := wb.SheetNames()
	if want := r.URL.Query().Get("sheet"); want != "" {
		sheets = []string{want}
	}

	base := strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	ownerID := s.ownerID(r)
	stamp := ""
	if r.URL.Query().Get("versioned") == "true" {
		stamp = dataset.TimestampPart(time.Now().UTC())
	}
	logger := logging.FromContext(r.Context()).With("filename", header.Filename)

	results := make([]sheetResult, 0, len(sheets))
	succeeded := 0
	var firstErr error

	for _, sheet := range sheets {
		res, err := s.ingestSheet(r, wb, sheet, []string{ownerID, base, sheet, stamp})
		if err != nil {
			logger.Warn("sheet ingest failed", "sheet", sheet, "error", err.Error())
			if firstErr == nil {
				firstErr = err
			}
			msg := dataset.MapError(err)
			results = append(results, sheetResult{Sheet: sheet, Error: &msg})
			continue
		}

		logger.Info("sheet ingested",
			"sheet", sheet,
			"dataset", res.Dataset,
			"rows", res.RowsInserted,
		)
		results = append(results, sheetResult{Sheet: sheet, Result: res})
		succeeded++
	}

	// A single-sheet upload that failed outright keeps the plain error
	// shape so clients need only one error path.
	if succeeded == 0 && len(sheets) == 1 && firstErr != nil {
		s.respondError(w, r, firstErr)
		return
	}

	writeJSON(w, map[string]interface{}{
		"filename": header.Filename,
		"ingested": succeeded,
		"results":  results,
	})
}

// ingestSheet reads one sheet and materializes it as a dataset.
func (s *Server) ingestSheet(r *http.Request, wb *ingest.Workbook, sheet string, nameParts []string) (*dataset.IngestResult, error) {
	src, err := wb.ReadSheet(sheet)
	if err != nil {
		return nil, err
	}
	return s.service.Ingest(r.Context(), nameParts, src, s.ownerID(r))
}
