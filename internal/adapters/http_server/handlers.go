// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_chat/internal/app"
	"hotel_chat/internal/domain"
)

const maxBodyBytes = 4 << 10

type Handlers struct {
	Chat     *app.ChatService
	Sessions domain.SessionStore
	// Turns bounds concurrent turns across all sessions; nil means unbounded.
	Turns *semaphore.Weighted
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type messageRequest struct {
	Text   string `json:"text"`
	Speech bool   `json:"speech"`
}

type turnResponse struct {
	Branch    app.Branch  `json:"branch"`
	Searching string      `json:"searching"`
	Headline  string      `json:"headline,omitempty"`
	Blocks    []app.Block `json:"blocks"`
	Notice    string      `json:"notice,omitempty"`
	Spoken    string      `json:"spoken,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/sessions", h.createSession)
	s.mux.Delete("/v1/sessions/{id}", h.deleteSession)
	s.mux.Post("/v1/sessions/{id}/messages", h.postMessage)
	s.mux.Get("/v1/sessions/{id}/messages", h.listMessages)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func (h *Handlers) createSession(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	if err := h.Sessions.Create(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("create session failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not create session")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handlers) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		log.Error().Err(err).Msg("delete session failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) postMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req messageRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "expected JSON {\"text\": \"...\"}")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid text", "text must not be empty")
		return
	}

	if h.Turns != nil {
		if err := h.Turns.Acquire(r.Context(), 1); err != nil {
			writeProblem(w, http.StatusServiceUnavailable, "Busy", "too many concurrent searches")
			return
		}
		defer h.Turns.Release(1)
	}

	conv, err := h.Sessions.Load(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", "session not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("session", id).Msg("load session failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not load session")
		return
	}

	seen := len(conv.Messages)
	res := h.Chat.HandleTurn(r.Context(), conv, req.Text)
	if err := h.Sessions.Append(r.Context(), id, conv.Messages[seen:]...); err != nil {
		log.Error().Err(err).Str("session", id).Msg("append session failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not save conversation")
		return
	}

	out := turnResponse{
		Branch:    res.Branch,
		Searching: res.Searching,
		Headline:  res.Presentation.Headline,
		Blocks:    res.Presentation.Blocks,
		Notice:    res.Notice,
	}
	if out.Blocks == nil {
		out.Blocks = []app.Block{}
	}
	if req.Speech {
		out.Spoken = res.Spoken()
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) listMessages(w http.ResponseWriter, r *http.Request) {
	conv, err := h.Sessions.Load(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", "session not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("load session failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not load session")
		return
	}

	etag, body := calcETagAndBody(conv.Messages)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write listMessages body")
	}
}
