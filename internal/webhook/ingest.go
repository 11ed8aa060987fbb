package webhook

import (
	"context"
	"crypto/subtle"
	"errors"
	"slices"

	"example.com/notehook/internal/notes"
	"example.com/notehook/internal/stringsx"
)

// ErrUnauthorized is returned when the delivery token does not match the
// configured shared secret.
var ErrUnauthorized = errors.New("invalid webhook token")

// titleClip is how many characters of the message become the note title.
const titleClip = 40

// NoteCreator is the slice of the note service the ingestor needs.
type NoteCreator interface {
	CreateNote(ctx context.Context, req notes.CreateNoteRequest, idempotencyKey string) (notes.Note, error)
}

// Ingestor turns authenticated webhook deliveries into notes and records
// accepted deliveries in the log.
type Ingestor struct {
	secret string
	svc    NoteCreator
	log    *Log
}

// NewIngestor configures ingestion with the shared secret. An empty secret
// rejects every delivery rather than accepting tokenless ones.
func NewIngestor(secret string, svc NoteCreator, log *Log) *Ingestor {
	return &Ingestor{secret: secret, svc: svc, log: log}
}

// Ingest authorizes the delivery, creates the derived note, and logs the
// payload. Nothing is logged when authorization or creation fails.
func (i *Ingestor) Ingest(ctx context.Context, token string, p Payload) (notes.Note, error) {
	if i.secret == "" || subtle.ConstantTimeCompare([]byte(token), []byte(i.secret)) != 1 {
		return notes.Note{}, ErrUnauthorized
	}

	tags := append(slices.Clone(p.Tags), "source:"+p.Source)
	n, err := i.svc.CreateNote(ctx, notes.CreateNoteRequest{
		Title:   stringsx.Clip(p.Message, titleClip),
		Content: p.Message,
		Tags:    tags,
	}, "")
	if err != nil {
		return notes.Note{}, err
	}

	i.log.Append(LogEntry{Source: p.Source, Message: p.Message, Tags: p.Tags})
	return n, nil
}
