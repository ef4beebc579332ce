package store

import "fmt"

// migrate creates all tables if they don't exist. The schema is created in
// one pass; there is no historical deployment base to evolve from, so every
// statement is idempotent CREATE ... IF NOT EXISTS.
func (a *SQLiteArchive) migrate() error {
	statements := []string{
		// Message records. seq is the FTS rowid anchor; id is the
		// extraction-time content identifier.
		`CREATE TABLE IF NOT EXISTS messages (
			seq                 INTEGER PRIMARY KEY AUTOINCREMENT,
			id                  TEXT UNIQUE NOT NULL,
			guid                TEXT,
			format              TEXT NOT NULL,
			sender              TEXT NOT NULL,
			sender_name         TEXT,
			recipient           TEXT NOT NULL,
			recipients          TEXT NOT NULL,
			cc                  TEXT,
			subject_raw         TEXT,
			subject_clean       TEXT,
			reply_depth         INTEGER NOT NULL DEFAULT 0,
			is_forward          INTEGER NOT NULL DEFAULT 0,
			timestamp           INTEGER NOT NULL DEFAULT 0,
			raw_date            TEXT,
			body                TEXT,
			disclaimer          TEXT,
			importance          TEXT,
			flags               TEXT,
			source_document     TEXT NOT NULL,
			is_embedded         INTEGER NOT NULL DEFAULT 0,
			duplicate_sources   TEXT NOT NULL,
			target_sender       INTEGER NOT NULL DEFAULT 0,
			target_recipient    INTEGER NOT NULL DEFAULT 0,
			associate_sender    INTEGER NOT NULL DEFAULT 0,
			associate_recipient INTEGER NOT NULL DEFAULT 0,
			associate_names     TEXT,
			irrelevant          INTEGER NOT NULL DEFAULT 0,
			thread_id           TEXT
		)`,

		// FTS5 full-text index over the searchable columns.
		`CREATE VIRTUAL TABLE IF NOT EXISTS messages_fts USING fts5(
			subject_clean,
			body,
			sender,
			recipient,
			content=messages,
			content_rowid=seq,
			tokenize='porter unicode61'
		)`,

		`CREATE TRIGGER IF NOT EXISTS messages_ai AFTER INSERT ON messages BEGIN
			INSERT INTO messages_fts(rowid, subject_clean, body, sender, recipient)
			VALUES (new.seq, COALESCE(new.subject_clean, ''), COALESCE(new.body, ''), new.sender, new.recipient);
		END`,

		`CREATE TRIGGER IF NOT EXISTS messages_ad AFTER DELETE ON messages BEGIN
			INSERT INTO messages_fts(messages_fts, rowid, subject_clean, body, sender, recipient)
			VALUES('delete', old.seq, COALESCE(old.subject_clean, ''), COALESCE(old.body, ''), old.sender, old.recipient);
		END`,

		`CREATE TRIGGER IF NOT EXISTS messages_au AFTER UPDATE ON messages BEGIN
			INSERT INTO messages_fts(messages_fts, rowid, subject_clean, body, sender, recipient)
			VALUES('delete', old.seq, COALESCE(old.subject_clean, ''), COALESCE(old.body, ''), old.sender, old.recipient);
			INSERT INTO messages_fts(rowid, subject_clean, body, sender, recipient)
			VALUES (new.seq, COALESCE(new.subject_clean, ''), COALESCE(new.body, ''), new.sender, new.recipient);
		END`,

		`CREATE TABLE IF NOT EXISTS threads (
			id              TEXT PRIMARY KEY,
			subject         TEXT,
			participants    TEXT NOT NULL,
			email_count     INTEGER NOT NULL DEFAULT 0,
			first_timestamp INTEGER NOT NULL DEFAULT 0,
			last_timestamp  INTEGER NOT NULL DEFAULT 0,
			has_target      INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE INDEX IF NOT EXISTS idx_messages_timestamp ON messages(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_sender ON messages(sender)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_thread ON messages(thread_id)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_source ON messages(source_document)`,
		`CREATE INDEX IF NOT EXISTS idx_threads_last ON threads(last_timestamp)`,
	}

	for _, stmt := range statements {
		if _, err := a.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing migration: %w", err)
		}
	}
	return nil
}
