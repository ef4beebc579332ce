package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mailsift/mailsift/internal/textdoc"
)

const messageColumns = `id, guid, format, sender, sender_name, recipient, recipients, cc,
	subject_raw, subject_clean, reply_depth, is_forward, timestamp, raw_date,
	body, disclaimer, importance, flags, source_document, is_embedded,
	duplicate_sources, target_sender, target_recipient, associate_sender,
	associate_recipient, associate_names, irrelevant`

// qualifiedMessageColumns mirrors messageColumns with the alias used when
// joining against the FTS index.
const qualifiedMessageColumns = `m.id, m.guid, m.format, m.sender, m.sender_name, m.recipient,
	m.recipients, m.cc, m.subject_raw, m.subject_clean, m.reply_depth, m.is_forward,
	m.timestamp, m.raw_date, m.body, m.disclaimer, m.importance, m.flags,
	m.source_document, m.is_embedded, m.duplicate_sources, m.target_sender,
	m.target_recipient, m.associate_sender, m.associate_recipient,
	m.associate_names, m.irrelevant`

// SaveRecords upserts message records in batched transactions and returns
// the number stored. Re-running a parse over the same corpus replaces the
// stored rows by content ID instead of duplicating them.
func (a *SQLiteArchive) SaveRecords(ctx context.Context, records []*textdoc.MessageRecord) (int, error) {
	saved := 0
	for start := 0; start < len(records); start += a.batchSize {
		end := start + a.batchSize
		if end > len(records) {
			end = len(records)
		}
		n, err := a.saveBatch(ctx, records[start:end])
		saved += n
		if err != nil {
			return saved, err
		}
	}
	return saved, nil
}

func (a *SQLiteArchive) saveBatch(ctx context.Context, records []*textdoc.MessageRecord) (int, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO messages (`+messageColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			recipient = excluded.recipient,
			recipients = excluded.recipients,
			cc = excluded.cc,
			body = excluded.body,
			duplicate_sources = excluded.duplicate_sources,
			target_sender = excluded.target_sender,
			target_recipient = excluded.target_recipient,
			associate_sender = excluded.associate_sender,
			associate_recipient = excluded.associate_recipient,
			associate_names = excluded.associate_names,
			irrelevant = excluded.irrelevant`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	saved := 0
	for _, r := range records {
		if r.Sender == "" {
			return saved, fmt.Errorf("record %s has no sender", r.ID)
		}
		_, err := stmt.ExecContext(ctx,
			r.ID, r.GUID, string(r.Format), r.Sender, r.SenderName, r.Recipient,
			marshalList(r.Recipients), marshalList(r.CC),
			r.SubjectRaw, r.SubjectClean, r.ReplyDepth, r.IsForward,
			r.Timestamp, r.RawDate, r.Body, r.Disclaimer, r.Importance, r.Flags,
			r.SourceDocument, r.IsEmbedded, marshalList(r.DuplicateSources),
			r.TargetSender, r.TargetRecipient, r.AssociateSender,
			r.AssociateRecipient, marshalList(r.AssociateNames), r.Irrelevant,
		)
		if err != nil {
			return saved, fmt.Errorf("inserting record %s: %w", r.ID, err)
		}
		saved++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing batch: %w", err)
	}
	return saved, nil
}

// GetMessage retrieves a record by content ID. Returns nil if not found.
func (a *SQLiteArchive) GetMessage(ctx context.Context, id string) (*textdoc.MessageRecord, error) {
	row := a.db.QueryRowContext(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE id = ?`, id)
	r, err := scanMessage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting message %s: %w", id, err)
	}
	return r, nil
}

// ListMessages returns records matching the filter, newest first.
// Zero-timestamp records are excluded unless IncludeNoDate is set; when
// included they sort after every dated record.
func (a *SQLiteArchive) ListMessages(ctx context.Context, opts ListOpts) ([]*textdoc.MessageRecord, error) {
	if opts.Limit <= 0 {
		opts.Limit = 100
	}

	query := `SELECT ` + messageColumns + ` FROM messages WHERE 1=1`
	args := []interface{}{}

	if !opts.IncludeNoDate {
		query += " AND timestamp > 0"
	}
	if opts.Format != "" {
		query += " AND format = ?"
		args = append(args, opts.Format)
	}
	if opts.Sender != "" {
		query += " AND sender = ?"
		args = append(args, opts.Sender)
	}
	if opts.ThreadID != "" {
		query += " AND thread_id = ?"
		args = append(args, opts.ThreadID)
	}
	if opts.SourceDocument != "" {
		query += " AND source_document = ?"
		args = append(args, opts.SourceDocument)
	}
	if opts.TargetOnly {
		query += " AND (target_sender = 1 OR target_recipient = 1)"
	}
	if opts.EmbeddedOnly {
		query += " AND is_embedded = 1"
	}

	query += ` ORDER BY CASE WHEN timestamp = 0 THEN 1 ELSE 0 END, timestamp DESC LIMIT ? OFFSET ?`
	args = append(args, opts.Limit, opts.Offset)

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	defer rows.Close()

	var out []*textdoc.MessageRecord
	for rows.Next() {
		r, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Search runs an FTS5 query over subjects, bodies, and correspondents,
// ranked by BM25.
func (a *SQLiteArchive) Search(ctx context.Context, query string, limit int) ([]*SearchResult, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := a.db.QueryContext(ctx,
		`SELECT `+qualifiedMessageColumns+`,
			bm25(messages_fts) AS score,
			snippet(messages_fts, 1, '[', ']', '...', 12) AS snip
		 FROM messages_fts
		 JOIN messages m ON m.seq = messages_fts.rowid
		 WHERE messages_fts MATCH ?
		 ORDER BY score
		 LIMIT ?`,
		query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}
	defer rows.Close()

	var out []*SearchResult
	for rows.Next() {
		res, err := scanSearchResult(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMessage(row rowScanner) (*textdoc.MessageRecord, error) {
	r := &textdoc.MessageRecord{}
	var format, recipients, cc, dupSources, assocNames string
	err := row.Scan(
		&r.ID, &r.GUID, &format, &r.Sender, &r.SenderName, &r.Recipient,
		&recipients, &cc, &r.SubjectRaw, &r.SubjectClean, &r.ReplyDepth,
		&r.IsForward, &r.Timestamp, &r.RawDate, &r.Body, &r.Disclaimer,
		&r.Importance, &r.Flags, &r.SourceDocument, &r.IsEmbedded,
		&dupSources, &r.TargetSender, &r.TargetRecipient, &r.AssociateSender,
		&r.AssociateRecipient, &assocNames, &r.Irrelevant,
	)
	if err != nil {
		return nil, err
	}
	r.Format = textdoc.Format(format)
	r.Recipients = unmarshalList(recipients)
	r.CC = unmarshalList(cc)
	r.DuplicateSources = unmarshalList(dupSources)
	r.AssociateNames = unmarshalList(assocNames)
	return r, nil
}

func scanSearchResult(row rowScanner) (*SearchResult, error) {
	r := &textdoc.MessageRecord{}
	res := &SearchResult{Record: r}
	var format, recipients, cc, dupSources, assocNames string
	err := row.Scan(
		&r.ID, &r.GUID, &format, &r.Sender, &r.SenderName, &r.Recipient,
		&recipients, &cc, &r.SubjectRaw, &r.SubjectClean, &r.ReplyDepth,
		&r.IsForward, &r.Timestamp, &r.RawDate, &r.Body, &r.Disclaimer,
		&r.Importance, &r.Flags, &r.SourceDocument, &r.IsEmbedded,
		&dupSources, &r.TargetSender, &r.TargetRecipient, &r.AssociateSender,
		&r.AssociateRecipient, &assocNames, &r.Irrelevant,
		&res.Score, &res.Snippet,
	)
	if err != nil {
		return nil, err
	}
	r.Format = textdoc.Format(format)
	r.Recipients = unmarshalList(recipients)
	r.CC = unmarshalList(cc)
	r.DuplicateSources = unmarshalList(dupSources)
	r.AssociateNames = unmarshalList(assocNames)
	return res, nil
}

func marshalList(list []string) string {
	if len(list) == 0 {
		return "[]"
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func unmarshalList(data string) []string {
	if data == "" || data == "[]" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return nil
	}
	return out
}
