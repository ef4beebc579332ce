package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mailsift/mailsift/internal/textdoc"
)

// SaveThreads replaces the stored thread set and stamps each member
// message's thread_id. Thread identifiers are assigned per reconstruction
// run, so a partial update would leave stale assignments behind.
func (a *SQLiteArchive) SaveThreads(ctx context.Context, threads []*textdoc.Thread) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM threads`); err != nil {
		return fmt.Errorf("clearing threads: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE messages SET thread_id = NULL`); err != nil {
		return fmt.Errorf("clearing thread assignments: %w", err)
	}

	insert, err := tx.PrepareContext(ctx,
		`INSERT INTO threads (id, subject, participants, email_count, first_timestamp, last_timestamp, has_target)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing thread insert: %w", err)
	}
	defer insert.Close()

	assign, err := tx.PrepareContext(ctx,
		`UPDATE messages SET thread_id = ? WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("preparing thread assignment: %w", err)
	}
	defer assign.Close()

	for _, t := range threads {
		_, err := insert.ExecContext(ctx,
			t.ID, t.Subject, marshalList(t.Participants), len(t.Emails),
			t.FirstTimestamp, t.LastTimestamp, t.HasTarget)
		if err != nil {
			return fmt.Errorf("inserting thread %s: %w", t.ID, err)
		}
		for _, e := range t.Emails {
			if _, err := assign.ExecContext(ctx, t.ID, e.ID); err != nil {
				return fmt.Errorf("assigning %s to thread %s: %w", e.ID, t.ID, err)
			}
		}
	}
	return tx.Commit()
}

// GetThread retrieves a thread and its member messages in chronological
// order. Returns nil if not found.
func (a *SQLiteArchive) GetThread(ctx context.Context, id string) (*textdoc.Thread, error) {
	t, err := a.scanThreadRow(a.db.QueryRowContext(ctx,
		`SELECT id, subject, participants, first_timestamp, last_timestamp, has_target
		 FROM threads WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting thread %s: %w", id, err)
	}

	rows, err := a.db.QueryContext(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE thread_id = ? ORDER BY timestamp`, id)
	if err != nil {
		return nil, fmt.Errorf("loading thread %s messages: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		r, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning thread message: %w", err)
		}
		t.Emails = append(t.Emails, r)
	}
	return t, rows.Err()
}

// ListThreads returns threads ordered by most recent activity. Member
// messages are not loaded; use GetThread for the full conversation.
func (a *SQLiteArchive) ListThreads(ctx context.Context, limit, offset int) ([]*textdoc.Thread, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := a.db.QueryContext(ctx,
		`SELECT id, subject, participants, first_timestamp, last_timestamp, has_target
		 FROM threads ORDER BY last_timestamp DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing threads: %w", err)
	}
	defer rows.Close()

	var out []*textdoc.Thread
	for rows.Next() {
		t, err := a.scanThreadRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning thread: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (a *SQLiteArchive) scanThreadRow(row rowScanner) (*textdoc.Thread, error) {
	t := &textdoc.Thread{}
	var participants string
	err := row.Scan(&t.ID, &t.Subject, &participants, &t.FirstTimestamp, &t.LastTimestamp, &t.HasTarget)
	if err != nil {
		return nil, err
	}
	t.Participants = unmarshalList(participants)
	return t, nil
}
