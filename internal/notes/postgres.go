package notes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const schema = `
	CREATE TABLE IF NOT EXISTS notes (
		id         BIGSERIAL PRIMARY KEY,
		title      TEXT NOT NULL,
		content    TEXT NOT NULL DEFAULT '',
		tags       JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

// PostgresStore persists notes in Postgres. Tags are stored as a JSONB array
// to preserve order and duplicates as supplied.
type PostgresStore struct {
	db *sql.DB

	stmtGet    *sql.Stmt
	stmtUpdate *sql.Stmt
	stmtDelete *sql.Stmt
}

func NewPostgresStore(ctx context.Context, db *sql.DB) (*PostgresStore, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, err
	}

	get, err := db.PrepareContext(ctx, `
		SELECT id, title, content, tags, created_at
		FROM notes
		WHERE id = $1
	`)
	if err != nil {
		return nil, err
	}

	upd, err := db.PrepareContext(ctx, `
		UPDATE notes
		SET title   = COALESCE($1, title),
		    content = COALESCE($2, content),
		    tags    = COALESCE($3::jsonb, tags)
		WHERE id = $4
		RETURNING id, title, content, tags, created_at
	`)
	if err != nil {
		return nil, err
	}

	del, err := db.PrepareContext(ctx, `DELETE FROM notes WHERE id = $1`)
	if err != nil {
		return nil, err
	}

	return &PostgresStore{
		db:         db,
		stmtGet:    get,
		stmtUpdate: upd,
		stmtDelete: del,
	}, nil
}

func (s *PostgresStore) Close() error {
	for _, st := range []*sql.Stmt{s.stmtGet, s.stmtUpdate, s.stmtDelete} {
		if st != nil {
			_ = st.Close()
		}
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, req CreateNoteRequest) (Note, error) {
	tags, err := json.Marshal(cloneTags(req.Tags))
	if err != nil {
		return Note{}, err
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO notes (title, content, tags) VALUES ($1, $2, $3::jsonb)
		RETURNING id, title, content, tags, created_at
	`, req.Title, req.Content, string(tags))
	return scanNote(row)
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (Note, error) {
	n, err := scanNote(s.stmtGet.QueryRowContext(ctx, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Note{}, ErrNotFound
	}
	return n, err
}

func (s *PostgresStore) Update(ctx context.Context, id int64, req UpdateNoteRequest) (Note, error) {
	var tags any
	if req.Tags != nil {
		b, err := json.Marshal(cloneTags(*req.Tags))
		if err != nil {
			return Note{}, err
		}
		tags = string(b)
	}

	n, err := scanNote(s.stmtUpdate.QueryRowContext(ctx, req.Title, req.Content, tags, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Note{}, ErrNotFound
	}
	return n, err
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	res, err := s.stmtDelete.ExecContext(ctx, id)
	if err != nil {
		return err
	}
	a, _ := res.RowsAffected()
	if a == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, p ListParams) ([]Note, error) {
	var (
		where []string
		args  []any
	)

	if p.Tag != "" {
		tag, err := json.Marshal([]string{p.Tag})
		if err != nil {
			return nil, err
		}
		args = append(args, string(tag))
		where = append(where, fmt.Sprintf("tags @> $%d::jsonb", len(args)))
	}
	if p.Query != "" {
		args = append(args, "%"+escapeLike(p.Query)+"%")
		where = append(where, fmt.Sprintf(
			`(title ILIKE $%d ESCAPE '\' OR content ILIKE $%d ESCAPE '\')`,
			len(args), len(args)))
	}

	q := "SELECT id, title, content, tags, created_at FROM notes"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id"
	if p.Limit > 0 {
		args = append(args, p.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if p.Offset > 0 {
		args = append(args, p.Offset)
		q += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanNotes(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (Note, error) {
	var (
		n    Note
		tags []byte
	)
	if err := row.Scan(&n.ID, &n.Title, &n.Content, &tags, &n.CreatedAt); err != nil {
		return Note{}, err
	}
	if err := json.Unmarshal(tags, &n.Tags); err != nil {
		return Note{}, err
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
	return n, nil
}

func scanNotes(rows *sql.Rows) ([]Note, error) {
	out := make([]Note, 0, 32)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// escapeLike neutralizes LIKE wildcards so the query matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
