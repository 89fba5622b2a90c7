package web

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/seedcheck/internal/core"
	"github.com/JonMunkholm/seedcheck/internal/report"
	"github.com/JonMunkholm/seedcheck/internal/web/templates"
)

// handleIndex renders the upload page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	maxMB := s.cfg.Upload.MaxFileSize >> 20
	templates.UploadPage(s.sheetInfos(), maxMB, s.cfg.Export.AllowForce).Render(r.Context(), w)
}

// handleListSheets returns the expected workbook layout.
func (s *Server) handleListSheets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.sheetInfos())
}

func (s *Server) sheetInfos() []templates.SheetInfo {
	content := s.service.Layout().Content()
	out := make([]templates.SheetInfo, 0, len(content))
	for _, sh := range content {
		info := templates.SheetInfo{Name: sh.Name, Columns: sh.Columns}
		if rs, ok := core.Get(sh.Name); ok {
			info.Optional = rs.Optional
		}
		out = append(out, info)
	}
	return out
}

// handleReportCSV validates an uploaded workbook and returns the findings as CSV.
func (s *Server) handleReportCSV(w http.ResponseWriter, r *http.Request) {
	up, status, err := s.validateUpload(w, r)
	if err != nil {
		s.respondError(w, r, err, status)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", attachment(up.summary.Workbook, "_report.csv"))
	if err := report.WriteCSV(w, up.summary); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
	}
}

// handleReportText validates an uploaded workbook and returns a text report.
func (s *Server) handleReportText(w http.ResponseWriter, r *http.Request) {
	up, status, err := s.validateUpload(w, r)
	if err != nil {
		s.respondError(w, r, err, status)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := report.WriteText(w, up.summary, report.TextOptions{}); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
	}
}

// attachment builds a Content-Disposition value named after the workbook.
func attachment(workbookName, suffix string) string {
	base := strings.TrimSuffix(filepath.Base(workbookName), filepath.Ext(workbookName))
	if base == "" || base == "." {
		base = "seed"
	}
	return mime.FormatMediaType("attachment", map[string]string{"filename": base + suffix})
}
