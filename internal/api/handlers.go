package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/FocuswithJustin/scriptorium/core/citation"
	"github.com/FocuswithJustin/scriptorium/core/corpus"
	coreerrors "github.com/FocuswithJustin/scriptorium/core/errors"
	"github.com/FocuswithJustin/scriptorium/internal/logging"
	"github.com/FocuswithJustin/scriptorium/internal/search"
)

// APIResponse is the standard API response wrapper.
type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
	Meta    *APIMeta  `json:"meta,omitempty"`
}

// APIError represents an API error.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIMeta contains response metadata.
type APIMeta struct {
	Total     int    `json:"total,omitempty"`
	Timestamp string `json:"timestamp"`
}

// RootInfo describes the API.
type RootInfo struct {
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}

// HealthInfo is the health check response.
type HealthInfo struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
	Books   int    `json:"books"`
	Verses  int    `json:"verses"`
}

// VerseResponse is a resolved verse plus its study-edition link.
type VerseResponse struct {
	corpus.VerseWithReference
	Citation string `json:"citation"`
	URL      string `json:"url,omitempty"`
}

// CanonicalResponse reports the canonical form of a citation.
type CanonicalResponse struct {
	OriginalReference string `json:"original_reference"`
	ParsedReference   string `json:"parsed_reference"`
	IsValid           bool   `json:"is_valid"`
	URL               string `json:"url,omitempty"`
}

var endpoints = []string{
	"GET /health",
	"GET /verse/{book}/{chapter}/{verse}",
	"GET /verse/random",
	"GET /verse/daily",
	"GET /verses/{reference}",
	"GET /canonicalize/{reference}",
	"GET /search?q=&limit=&mode=regex|fts",
	"GET /ws",
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, RootInfo{
		Name:      "scriptorium",
		Version:   s.opts.Version,
		Endpoints: endpoints,
	})
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotFound, "NOT_FOUND", "Endpoint not found")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, HealthInfo{
		Status:  "healthy",
		Version: s.opts.Version,
		Uptime:  time.Since(s.started).Round(time.Second).String(),
		Books:   len(s.corpus.Books),
		Verses:  s.corpus.VerseCount(),
	})
}

func (s *Server) handleVerse(w http.ResponseWriter, r *http.Request) {
	var parts [3]int
	for i, name := range []string{"book", "chapter", "verse"} {
		n, err := strconv.Atoi(r.PathValue(name))
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAMETER",
				fmt.Sprintf("%s must be an integer", name))
			return
		}
		parts[i] = n
	}

	ref := corpus.NewVerseReference(s.corpus.Work, parts[0], parts[1], parts[2])
	v, ok := s.corpus.VerseAt(ref)
	if !ok {
		respondError(w, http.StatusNotFound, "NOT_FOUND",
			fmt.Sprintf("no verse at book %d chapter %d verse %d", parts[0], parts[1], parts[2]))
		return
	}
	respond(w, http.StatusOK, verseResponse(v))
}

func (s *Server) handleVerses(w http.ResponseWriter, r *http.Request) {
	rc, err := citation.Parse(r.PathValue("reference"))
	if err != nil {
		respondErr(w, err)
		return
	}
	if !rc.IsValid(s.corpus) {
		respondError(w, http.StatusNotFound, "NOT_FOUND",
			fmt.Sprintf("%s does not exist in this corpus", rc))
		return
	}

	verses := slices.Collect(s.corpus.VersesMatching(rc))
	respondList(w, verses, len(verses))
}

func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	v, err := s.randomVerse()
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, verseResponse(v))
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	v, err := s.daily.GetOrLoad(s.now().Format(time.DateOnly), s.randomVerse)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, verseResponse(v))
}

func (s *Server) randomVerse() (corpus.VerseWithReference, error) {
	n := s.corpus.VerseCount()
	if n == 0 {
		return corpus.VerseWithReference{}, coreerrors.NewNotFound("verse", "random")
	}
	v, _ := s.corpus.Nth(s.intN(n))
	return v, nil
}

func (s *Server) handleCanonicalize(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("reference")
	resp, err := s.canonicalize(raw)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, resp)
}

func (s *Server) canonicalize(raw string) (CanonicalResponse, error) {
	rc, err := s.citations.Canonical(raw)
	if err != nil {
		return CanonicalResponse{}, err
	}
	resp := CanonicalResponse{
		OriginalReference: raw,
		ParsedReference:   rc.String(),
		IsValid:           rc.IsValid(s.corpus),
	}
	if url, ok := rc.URL(); ok && resp.IsValid {
		resp.URL = url
	}
	return resp, nil
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "INVALID_PARAMETER", "q is required")
		return
	}

	limit := s.opts.Search.DefaultLimit
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "INVALID_PARAMETER", "limit must be a positive integer")
			return
		}
		limit = n
	}

	mode := q.Get("mode")
	if mode == "" {
		mode = "regex"
		if s.index != nil {
			mode = "fts"
		}
	}

	switch mode {
	case "regex":
		verses, total, err := search.Regex(s.corpus, query, limit)
		if err != nil {
			respondErr(w, err)
			return
		}
		respondList(w, verses, total)

	case "fts":
		if s.index == nil {
			respondError(w, http.StatusBadRequest, "SEARCH_UNAVAILABLE", "full-text index is not enabled")
			return
		}
		refs, total, err := s.index.Search(r.Context(), query, limit)
		if err != nil {
			logging.ErrorContext(r.Context(), "fts search failed", "error", err)
			respondErr(w, err)
			return
		}
		verses := make([]corpus.VerseWithReference, 0, len(refs))
		for _, ref := range refs {
			if v, ok := s.corpus.VerseAt(ref); ok {
				verses = append(verses, v)
			}
		}
		respondList(w, verses, total)

	default:
		respondError(w, http.StatusBadRequest, "INVALID_PARAMETER", "mode must be regex or fts")
	}
}

func verseResponse(v corpus.VerseWithReference) VerseResponse {
	resp := VerseResponse{VerseWithReference: v, Citation: v.Citation()}
	if url, ok := citation.VerseURL(v.Reference); ok {
		resp.URL = url
	}
	return resp
}

// respondErr maps a typed error onto a status code and error code.
func respondErr(w http.ResponseWriter, err error) {
	var refErr *coreerrors.ReferenceError
	switch {
	case errors.As(err, &refErr):
		respondError(w, http.StatusBadRequest, "INVALID_REFERENCE", err.Error())
	case errors.Is(err, coreerrors.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, "INVALID_PARAMETER", err.Error())
	case errors.Is(err, coreerrors.ErrNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func respond(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, APIResponse{
		Success: true,
		Data:    data,
		Meta:    &APIMeta{Timestamp: timestamp()},
	})
}

func respondList[T any](w http.ResponseWriter, items []T, total int) {
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    items,
		Meta:    &APIMeta{Total: total, Timestamp: timestamp()},
	})
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: message},
		Meta:    &APIMeta{Timestamp: timestamp()},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("failed to write response", "error", err)
	}
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
