// Package store provides the SQLite + FTS5 archive for reconstructed
// conversations.
//
// All pipeline output lives in a single SQLite database file:
// - Message records with provenance and duplicate-source lists
// - Conversation threads and their membership
// - FTS5 full-text index over subjects, bodies, and correspondents
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/mailsift/mailsift/internal/textdoc"
)

// DefaultDBPath is the default archive location.
const DefaultDBPath = "~/.mailsift/mailsift.db"

// DefaultBatchSize is the default batch size for bulk inserts.
const DefaultBatchSize = 500

// ListOpts controls pagination and filtering for message listings.
type ListOpts struct {
	Limit          int
	Offset         int
	Format         string // filter by extractor format
	Sender         string // filter by canonical sender
	ThreadID       string // filter by assigned thread
	TargetOnly     bool   // only records involving the tracked identity
	IncludeNoDate  bool   // include zero-timestamp records
	EmbeddedOnly   bool   // only records recovered from quoted content
	SourceDocument string // filter by originating file
}

// SearchResult is one full-text hit with its BM25 rank and snippet.
type SearchResult struct {
	Record  *textdoc.MessageRecord `json:"record"`
	Score   float64                `json:"score"`
	Snippet string                 `json:"snippet"`
}

// ArchiveStats summarizes the archive for reporting.
type ArchiveStats struct {
	MessageCount   int64            `json:"message_count"`
	ThreadCount    int64            `json:"thread_count"`
	TargetMessages int64            `json:"target_messages"`
	DuplicateCount int64            `json:"duplicate_count"`
	EmbeddedCount  int64            `json:"embedded_count"`
	ByFormat       map[string]int64 `json:"by_format"`
	// EarliestTimestamp and LatestTimestamp span only dated records;
	// zero-timestamp records are excluded from the range.
	EarliestTimestamp int64 `json:"earliest_timestamp"`
	LatestTimestamp   int64 `json:"latest_timestamp"`
	DBSizeBytes       int64 `json:"db_size_bytes"`
}

// Archive is the storage interface the CLI and MCP server consume.
type Archive interface {
	SaveRecords(ctx context.Context, records []*textdoc.MessageRecord) (int, error)
	GetMessage(ctx context.Context, id string) (*textdoc.MessageRecord, error)
	ListMessages(ctx context.Context, opts ListOpts) ([]*textdoc.MessageRecord, error)
	Search(ctx context.Context, query string, limit int) ([]*SearchResult, error)

	SaveThreads(ctx context.Context, threads []*textdoc.Thread) error
	GetThread(ctx context.Context, id string) (*textdoc.Thread, error)
	ListThreads(ctx context.Context, limit, offset int) ([]*textdoc.Thread, error)

	Stats(ctx context.Context) (*ArchiveStats, error)
	Vacuum(ctx context.Context) error
	Close() error
}

// Config holds configuration for Open.
type Config struct {
	DBPath    string
	BatchSize int
}

// SQLiteArchive implements Archive using SQLite + FTS5.
type SQLiteArchive struct {
	db        *sql.DB
	dbPath    string
	batchSize int
}

// Open creates or opens a SQLite-backed archive.
// Pass ":memory:" for in-memory databases (testing).
func Open(cfg Config) (*SQLiteArchive, error) {
	if cfg.DBPath == "" {
		cfg.DBPath = ExpandPath(DefaultDBPath)
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}

	if cfg.DBPath != ":memory:" {
		dir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	a := &SQLiteArchive{
		db:        db,
		dbPath:    cfg.DBPath,
		batchSize: cfg.BatchSize,
	}
	if err := a.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return a, nil
}

// Close closes the database connection.
func (a *SQLiteArchive) Close() error {
	return a.db.Close()
}

// Vacuum runs VACUUM on the database. Manual only, never automatic.
func (a *SQLiteArchive) Vacuum(ctx context.Context) error {
	_, err := a.db.ExecContext(ctx, "VACUUM")
	return err
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
