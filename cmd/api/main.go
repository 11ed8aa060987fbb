package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"example.com/notehook/internal/config"
	"example.com/notehook/internal/db"
	"example.com/notehook/internal/idempotency"
	"example.com/notehook/internal/notes"
	"example.com/notehook/internal/webhook"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	var store notes.Store
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Open(ctx, cfg.DatabaseURL, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime, cfg.ConnMaxIdleTime)
		if err != nil {
			log.Fatal(err)
		}
		defer dbConn.Close()

		pg, err := notes.NewPostgresStore(ctx, dbConn)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()
		store = pg
	} else {
		log.Print("DATABASE_URL is empty, using in-memory note store")
		store = notes.NewMemStore()
	}

	if cfg.WebhookToken == "" {
		log.Print("WEBHOOK_TOKEN is empty, all webhook deliveries will be rejected")
	}

	cache := idempotency.New[notes.Note](cfg.IdempotencyMaxEntries, cfg.IdempotencyTTL)
	svc := notes.NewService(store, cache)

	whLog := webhook.NewLog(cfg.WebhookLogCapacity)
	ing := webhook.NewIngestor(cfg.WebhookToken, svc, whLog)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/notes", notes.NewHandlers(svc).Routes())
	r.Mount("/webhooks", webhook.NewHandlers(ing, whLog).Routes())

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("Notes API listening on %s", cfg.HTTPAddr)
	log.Fatal(srv.ListenAndServe())
}
