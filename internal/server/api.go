package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/wethinkt/go-swatchsheet/internal/library"
	"github.com/wethinkt/go-swatchsheet/internal/sheet"
	"github.com/wethinkt/go-swatchsheet/internal/svgdoc"
)

// API response types

// ColorsResponse lists the swatches a sheet would contain.
type ColorsResponse struct {
	Count   int           `json:"count"`
	Entries []sheet.Entry `json:"entries"`
}

// LibrariesResponse lists available swatch libraries.
type LibrariesResponse struct {
	Libraries []library.Meta `json:"libraries"`
}

// SearchResponse lists library swatches matching a query.
type SearchResponse struct {
	Query   string          `json:"query"`
	Matches []library.Match `json:"matches"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, err string, msg string) {
	writeJSON(w, status, ErrorResponse{Error: err, Message: msg})
}

// writeSheetError maps a generation error to a response. The three abort
// conditions are client errors carrying the localized alert text.
func writeSheetError(w http.ResponseWriter, err error) {
	if msg, ok := sheet.Alert(err); ok {
		writeError(w, http.StatusUnprocessableEntity, sheet.Status(err), msg)
		return
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "body_too_large", err.Error())
		return
	}
	writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
}

// writeOptionsError maps a query param failure to 404 for unknown libraries
// and 400 otherwise.
func writeOptionsError(w http.ResponseWriter, err error) {
	if errors.Is(err, library.ErrNotFound) {
		writeError(w, http.StatusNotFound, "library_not_found", err.Error())
		return
	}
	writeError(w, http.StatusBadRequest, "invalid_options", err.Error())
}

// requestOptions reads the shared query params of the sheet endpoints:
// select, width, layer and library.
func (s *HTTPServer) requestOptions(r *http.Request) (svgdoc.Options, sheet.Options, error) {
	q := r.URL.Query()

	var docOpts svgdoc.Options
	if sel := q.Get("select"); sel != "" {
		docOpts.Select = splitList(sel)
	}

	opts := s.options
	if opts.Lookup == nil && len(s.libraries) > 0 {
		opts.Lookup = s.libraries.Lookup
	}
	if v := q.Get("width"); v != "" {
		width, err := strconv.ParseFloat(v, 64)
		if err != nil || width <= 0 {
			return docOpts, opts, errors.New("width must be a positive number")
		}
		opts.Width = width
	}
	if v := q.Get("layer"); v != "" {
		opts.LayerName = v
	}
	if v := q.Get("library"); v != "" {
		libs, err := library.LoadSet(splitList(v))
		if err != nil {
			return docOpts, opts, err
		}
		opts.Lookup = libs.Lookup
	}
	return docOpts, opts, nil
}

// parseBody reads the request body as an SVG document.
func (s *HTTPServer) parseBody(w http.ResponseWriter, r *http.Request, opts svgdoc.Options) (*svgdoc.Document, error) {
	body := http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes)
	defer body.Close()
	return svgdoc.Parse(body, opts)
}

// handleCreateSheet adds a swatch sheet layer to the posted SVG and returns
// the modified document.
// Query params: select, width, layer, library
func (s *HTTPServer) handleCreateSheet(w http.ResponseWriter, r *http.Request) {
	docOpts, opts, err := s.requestOptions(r)
	if err != nil {
		writeOptionsError(w, err)
		return
	}

	doc, err := s.parseBody(w, r, docOpts)
	if err != nil {
		writeSheetError(w, err)
		return
	}

	result, err := sheet.Generate(doc, opts)
	if err != nil {
		writeSheetError(w, err)
		return
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		writeError(w, http.StatusInternalServerError, "write_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("X-Swatch-Count", strconv.Itoa(len(result.Entries)))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleListColors returns the swatches a sheet for the posted SVG would
// contain, without drawing it.
func (s *HTTPServer) handleListColors(w http.ResponseWriter, r *http.Request) {
	docOpts, opts, err := s.requestOptions(r)
	if err != nil {
		writeOptionsError(w, err)
		return
	}

	doc, err := s.parseBody(w, r, docOpts)
	if err != nil {
		writeSheetError(w, err)
		return
	}

	entries, err := sheet.Prepare(doc, opts)
	if err != nil {
		writeSheetError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ColorsResponse{Count: len(entries), Entries: entries})
}

// handleGetLibraries returns all available swatch libraries.
func (s *HTTPServer) handleGetLibraries(w http.ResponseWriter, r *http.Request) {
	metas, err := library.ListAvailable()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list_libraries_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, LibrariesResponse{Libraries: metas})
}

// handleGetLibrary returns one library's swatches.
func (s *HTTPServer) handleGetLibrary(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil || name == "" {
		writeError(w, http.StatusBadRequest, "invalid_name", "Library name is required")
		return
	}

	lib, err := library.LoadByName(name)
	if errors.Is(err, library.ErrNotFound) {
		writeError(w, http.StatusNotFound, "library_not_found", err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "load_library_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, lib)
}

// handleSearchLibraries fuzzy-matches swatch names in the loaded libraries.
// Query params: q, min
func (s *HTTPServer) handleSearchLibraries(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing_query", "Query parameter q is required")
		return
	}

	minScore := library.DefaultMinScore
	if v := r.URL.Query().Get("min"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed < 0 || parsed > 1 {
			writeError(w, http.StatusBadRequest, "invalid_min", "min must be between 0 and 1")
			return
		}
		minScore = parsed
	}

	matches := library.Search(s.libraries, query, minScore)
	if matches == nil {
		matches = []library.Match{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Query: query, Matches: matches})
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
