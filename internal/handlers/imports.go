package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"

	"college-trip-planner/internal/database"
	"college-trip-planner/internal/importer"
)

// maxImportBytes caps CSV uploads
const maxImportBytes = 8 << 20

func importOptions(r *http.Request) (importer.Options, bool) {
	opts := importer.Options{Mode: database.BatchIgnore}

	switch r.URL.Query().Get("mode") {
	case "", string(database.BatchIgnore):
	case string(database.BatchReplace):
		opts.Mode = database.BatchReplace
	default:
		return opts, false
	}

	if v := r.URL.Query().Get("header"); v != "" {
		header, err := strconv.ParseBool(v)
		if err != nil {
			return opts, false
		}
		opts.HasHeader = header
	}

	return opts, true
}

type importFunc func(h *Handler, r *http.Request, body io.Reader, opts importer.Options) (*importer.Report, error)

func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request, kind string, fn importFunc) {
	opts, ok := importOptions(r)
	if !ok {
		h.handleValidationError(w, "mode must be ignore or replace; header must be a boolean")
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxImportBytes)
	report, err := fn(h, r, body, opts)
	if err != nil {
		log.Printf("[HTTP] POST /api/v1/import/%s: failed err=%v", kind, err)
		h.handleImportError(w, err)
		return
	}

	log.Printf("[HTTP] POST /api/v1/import/%s: read=%d imported=%d skipped=%d", kind, report.Read, report.Imported, len(report.Skipped))
	h.writeJSON(w, http.StatusOK, report)
}

// HandleImportDistances handles POST /api/v1/import/distances
func (h *Handler) HandleImportDistances(w http.ResponseWriter, r *http.Request) {
	h.handleImport(w, r, "distances", func(h *Handler, r *http.Request, body io.Reader, opts importer.Options) (*importer.Report, error) {
		return importer.ImportDistances(r.Context(), h.DB, body, opts)
	})
}

// HandleImportSouvenirs handles POST /api/v1/import/souvenirs
func (h *Handler) HandleImportSouvenirs(w http.ResponseWriter, r *http.Request) {
	h.handleImport(w, r, "souvenirs", func(h *Handler, r *http.Request, body io.Reader, opts importer.Options) (*importer.Report, error) {
		return importer.ImportSouvenirs(r.Context(), h.DB, body, opts)
	})
}
