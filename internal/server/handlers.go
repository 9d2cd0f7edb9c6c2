package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/GabrielNunesIT/swagger-preview/internal/adapters/converters"
	"github.com/GabrielNunesIT/swagger-preview/internal/domain"
	"github.com/GabrielNunesIT/swagger-preview/internal/viewer"
)

// maxRequestBytes bounds JSON request bodies; pasted specs share the
// fetcher's default limit.
const maxRequestBytes = 10 << 20

type importRequest struct {
	Kind     domain.SourceKind `json:"kind"`
	Value    string            `json:"value"`
	Label    string            `json:"label,omitempty"`
	Override string            `json:"override,omitempty"`
}

type overrideRequest struct {
	Value string `json:"value"`
}

type historyResponse struct {
	Entries []historyItem `json:"entries"`
}

type historyItem struct {
	domain.HistoryEntry
	DisplayLabel string `json:"displayLabel"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.coord.Snapshot())
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !req.Kind.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown source kind %q", req.Kind))
		return
	}

	snap, err := s.coord.Submit(r.Context(), domain.ImportRequest{Kind: req.Kind, Value: req.Value, Label: req.Label}, req.Override)
	s.respond(w, snap, err)
}

func (s *Server) handleOverride(w http.ResponseWriter, r *http.Request) {
	var req overrideRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := s.coord.ChangeOverride(r.Context(), req.Value)
	s.respond(w, snap, err)
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.coord.Back())
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.coord.Summary()
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "pdf"
	}

	conv, err := converters.ForFormat(format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := s.coord.Export(conv, &buf); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	filename := exportFilename(s.coord.Snapshot().Title, conv)
	w.Header().Set("Content-Type", conv.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"notifications": s.notifications.Drain()})
}

func (s *Server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.history.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toHistoryResponse(entries))
}

func (s *Server) handleHistoryRemove(w http.ResponseWriter, r *http.Request) {
	createdAt, ok := createdAtParam(w, r)
	if !ok {
		return
	}

	entries, err := s.history.Remove(r.Context(), createdAt)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toHistoryResponse(entries))
}

func (s *Server) handleHistoryClear(w http.ResponseWriter, r *http.Request) {
	if err := s.history.Clear(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toHistoryResponse(nil))
}

func (s *Server) handleHistoryOpen(w http.ResponseWriter, r *http.Request) {
	createdAt, ok := createdAtParam(w, r)
	if !ok {
		return
	}

	var body struct {
		Override string `json:"override"`
	}
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	snap, err := s.coord.Recall(r.Context(), createdAt, body.Override)
	s.respond(w, snap, err)
}

// respond writes the snapshot, or the error with the snapshot attached so
// the page can redraw without another round trip.
func (s *Server) respond(w http.ResponseWriter, snap viewer.Snapshot, err error) {
	if err != nil {
		writeJSON(w, statusFor(err), map[string]any{"error": err.Error(), "state": snap})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// statusFor maps domain errors to HTTP statuses.
func statusFor(err error) int {
	var (
		statusErr *domain.HTTPStatusError
		netErr    *domain.NetworkError
	)

	switch {
	case errors.Is(err, domain.ErrParseFailure):
		return http.StatusUnprocessableEntity
	case errors.As(err, &statusErr), errors.As(err, &netErr), errors.Is(err, domain.ErrSpecTooLarge):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrSuperseded), errors.Is(err, domain.ErrNoSession), errors.Is(err, viewer.ErrNotExportable):
		return http.StatusConflict
	case errors.Is(err, domain.ErrEmptySource), errors.Is(err, viewer.ErrUnsupportedMessage):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrEntryNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func createdAtParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	createdAt, err := strconv.ParseInt(chi.URLParam(r, "createdAt"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid history entry id")
		return 0, false
	}
	return createdAt, true
}

func toHistoryResponse(entries []domain.HistoryEntry) historyResponse {
	resp := historyResponse{Entries: make([]historyItem, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, historyItem{HistoryEntry: e, DisplayLabel: e.DisplayLabel()})
	}
	return resp
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

var exportExtensions = map[string]string{
	"pdf":        ".pdf",
	"docx":       ".docx",
	"confluence": ".adf.json",
	"json":       ".json",
}

func exportFilename(title string, conv domain.Converter) string {
	base := strings.Trim(unsafeFilename.ReplaceAllString(title, "-"), "-")
	if base == "" {
		base = "spec"
	}
	return base + exportExtensions[conv.Format()]
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
