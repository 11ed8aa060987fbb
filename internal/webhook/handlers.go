package webhook

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const tokenHeader = "X-Webhook-Token"

type Handlers struct {
	ing *Ingestor
	log *Log
}

func NewHandlers(ing *Ingestor, log *Log) *Handlers {
	return &Handlers{ing: ing, log: log}
}

func (h *Handlers) Routes() http.Handler {
	r := chi.NewRouter()

	r.Post("/note", h.create)
	r.Get("/log", h.list)

	return r
}

func (h *Handlers) create(w http.ResponseWriter, r *http.Request) {
	var p Payload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "invalid json"})
		return
	}
	if p.Source == "" || p.Message == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "source and message required"})
		return
	}

	n, err := h.ing.Ingest(r.Context(), r.Header.Get(tokenHeader), p)
	if errors.Is(err, ErrUnauthorized) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid " + tokenHeader + " header"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

func (h *Handlers) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.log.Entries())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
