package web

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/seedcheck/internal/core"
	"github.com/JonMunkholm/seedcheck/internal/export"
	"github.com/spf13/cast"
)

// handleExport validates an uploaded workbook and, when the gate allows it,
// returns the export archive. The "force" form field requests a forced export.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	up, status, err := s.validateUpload(w, r)
	if err != nil {
		s.respondError(w, r, err, status)
		return
	}
	force := cast.ToBool(r.FormValue("force"))

	var buf bytes.Buffer
	decision, err := s.service.Export(r.Context(), up.wb, up.summary, force, export.NewArchive(&buf, s.service.Layout()))
	switch {
	case errors.Is(err, core.ErrExportBlocked):
		s.respondError(w, r, err, http.StatusConflict)
		return
	case errors.Is(err, core.ErrForceDisabled):
		s.respondError(w, r, err, http.StatusForbidden)
		return
	case err != nil:
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", attachment(up.summary.Workbook, "_export.zip"))
	w.Header().Set("X-Export-Forced", strconv.FormatBool(decision.Forced))
	w.Header().Set("X-Run-ID", up.summary.RunID)
	w.Write(buf.Bytes())
}

// handleHealth reports liveness and the run limiter state.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status": "ok",
		"runs":   s.limiter.Status(),
	})
}
