package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	server "hotel_chat/internal/adapters/http_server"
)

func TestLogger_RecordsRoutePatternAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(server.Logger(zerolog.New(&buf)))
	r.Get("/v1/sessions/{id}/messages", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotModified)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/abc-123/messages", nil)
	req.Header.Set("X-Request-Id", "req-42")
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http_request", entry["message"])
	assert.Equal(t, "/v1/sessions/{id}/messages", entry["route"], "session ids stay out of the route field")
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, "203.0.113.7", entry["remote"])
	assert.EqualValues(t, http.StatusNotModified, entry["status"])
}

func TestTimeout_AnswersWhenTurnRunsLong(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	})
	rec := httptest.NewRecorder()
	server.Timeout(20*time.Millisecond)(slow).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/sessions/x/messages", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "search timed out", rec.Body.String())
}
