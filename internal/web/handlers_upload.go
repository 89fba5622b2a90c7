package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/JonMunkholm/seedcheck/internal/core"
	"github.com/JonMunkholm/seedcheck/internal/logging"
	"github.com/JonMunkholm/seedcheck/internal/web/templates"
	"github.com/JonMunkholm/seedcheck/internal/workbook"
)

// upload is a validated workbook from a request.
type upload struct {
	summary core.RunSummary
	wb      *workbook.Workbook
}

// validateUpload reads the multipart "file" field and validates it while
// holding the run slot. On failure it returns the HTTP status to answer with.
func (s *Server) validateUpload(w http.ResponseWriter, r *http.Request) (upload, int, error) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			return upload{}, http.StatusRequestEntityTooLarge, fmt.Errorf("%w: limit is %d bytes", errFileTooLarge, maxSize)
		}
		return upload{}, http.StatusBadRequest, fmt.Errorf("%w: %v", errNoFile, err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return upload{}, http.StatusBadRequest, errNoFile
	}
	defer file.Close()

	logger := logging.FromContext(r.Context())
	logger.Info("workbook received", "name", header.Filename, "size", header.Size)

	if err := s.limiter.Acquire(r.Context()); err != nil {
		return upload{}, http.StatusServiceUnavailable, err
	}
	defer s.limiter.Release()

	summary, wb, err := s.service.ValidateReader(r.Context(), header.Filename, file)
	if err != nil {
		return upload{}, http.StatusUnprocessableEntity, err
	}
	return upload{summary: summary, wb: wb}, http.StatusOK, nil
}

// handleValidatePage validates an uploaded workbook and renders the results.
func (s *Server) handleValidatePage(w http.ResponseWriter, r *http.Request) {
	up, status, err := s.validateUpload(w, r)
	if err != nil {
		s.respondError(w, r, err, status)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.ResultPage(up.summary).Render(r.Context(), w)
}

// handleValidateAPI validates an uploaded workbook and returns the summary.
// An invalid workbook is still a successful request.
func (s *Server) handleValidateAPI(w http.ResponseWriter, r *http.Request) {
	up, status, err := s.validateUpload(w, r)
	if err != nil {
		s.respondError(w, r, err, status)
		return
	}
	writeJSON(w, up.summary)
}
