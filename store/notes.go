package store

import (
	"context"
	"fmt"
	"strings"

	"widviz/types"
)

// ListNotes returns the notes of email, oldest first.
func (s *Store) ListNotes(ctx context.Context, email string) ([]types.Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, content, created_at FROM notes WHERE user_email = ? ORDER BY id`,
		normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]types.Note, 0)
	for rows.Next() {
		var n types.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// AddNote stores a note and returns its id.
func (s *Store) AddNote(ctx context.Context, email, title, content string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (user_email, title, content, created_at) VALUES (?, ?, ?, ?)`,
		normalizeEmail(email), strings.TrimSpace(title), content, s.now().UTC().Format(timestampLayout))
	if err != nil {
		return 0, fmt.Errorf("insert note: %w", err)
	}
	return res.LastInsertId()
}

// EditNote replaces the title and content of note id.
func (s *Store) EditNote(ctx context.Context, id int64, title, content string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE notes SET title = ?, content = ? WHERE id = ?`, strings.TrimSpace(title), content, id)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	return affectedOne(res)
}

func (s *Store) DeleteNote(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return affectedOne(res)
}
