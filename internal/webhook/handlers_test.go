package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/notehook/internal/notes"
)

func newTestHandlers(secret string, creator NoteCreator) (http.Handler, *Log) {
	l := NewLog(3)
	return NewHandlers(NewIngestor(secret, creator, l), l).Routes(), l
}

func okCreator() stubCreator {
	return stubCreator{
		createFn: func(_ context.Context, req notes.CreateNoteRequest, _ string) (notes.Note, error) {
			return notes.Note{ID: 1, Title: req.Title, Content: req.Content, Tags: req.Tags}, nil
		},
	}
}

func postNote(t *testing.T, h http.Handler, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/note", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Webhook-Token", token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestWebhookHandlers_Create_Success(t *testing.T) {
	h, l := newTestHandlers("secret", okCreator())

	rr := postNote(t, h, "secret", `{"source":"ci","message":"Build failed"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	var n notes.Note
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&n))
	require.Equal(t, "Build failed", n.Title)
	require.Equal(t, "Build failed", n.Content)
	require.Equal(t, []string{"source:ci"}, n.Tags)
	require.Len(t, l.Entries(), 1)
}

func TestWebhookHandlers_Create_Unauthorized(t *testing.T) {
	h, l := newTestHandlers("secret", okCreator())

	for _, token := range []string{"", "wrong"} {
		rr := postNote(t, h, token, `{"source":"ci","message":"m"}`)
		require.Equal(t, http.StatusUnauthorized, rr.Code)
	}
	require.Empty(t, l.Entries())
}

func TestWebhookHandlers_Create_InvalidBody(t *testing.T) {
	h, _ := newTestHandlers("secret", okCreator())

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", "{"},
		{"missing source", `{"message":"m"}`},
		{"missing message", `{"source":"ci"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postNote(t, h, "secret", tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		})
	}
}

func TestWebhookHandlers_Log(t *testing.T) {
	h, _ := newTestHandlers("secret", okCreator())

	// empty log serializes as an array
	{
		req := httptest.NewRequest(http.MethodGet, "/log", nil)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
		require.Equal(t, "[]\n", rr.Body.String())
	}

	rr := postNote(t, h, "secret", `{"source":"ci","message":"m","tags":["x"]}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	{
		req := httptest.NewRequest(http.MethodGet, "/log", nil)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var entries []LogEntry
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&entries))
		require.Len(t, entries, 1)
		require.Equal(t, "ci", entries[0].Source)
		require.Equal(t, "m", entries[0].Message)
		require.Equal(t, []string{"x"}, entries[0].Tags)
		require.False(t, entries[0].ReceivedAt.IsZero())
	}
}
