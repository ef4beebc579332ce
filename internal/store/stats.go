package store

import (
	"context"
	"fmt"
	"os"
)

// Stats summarizes the archive. Date range covers dated records only.
func (a *SQLiteArchive) Stats(ctx context.Context) (*ArchiveStats, error) {
	stats := &ArchiveStats{ByFormat: make(map[string]int64)}

	row := a.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN target_sender = 1 OR target_recipient = 1 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN json_array_length(duplicate_sources) > 1 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(is_embedded), 0),
			COALESCE(MIN(CASE WHEN timestamp > 0 THEN timestamp END), 0),
			COALESCE(MAX(timestamp), 0)
		FROM messages`)
	err := row.Scan(&stats.MessageCount, &stats.TargetMessages, &stats.DuplicateCount,
		&stats.EmbeddedCount, &stats.EarliestTimestamp, &stats.LatestTimestamp)
	if err != nil {
		return nil, fmt.Errorf("collecting message stats: %w", err)
	}

	rows, err := a.db.QueryContext(ctx, `SELECT format, COUNT(*) FROM messages GROUP BY format`)
	if err != nil {
		return nil, fmt.Errorf("counting formats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var format string
		var n int64
		if err := rows.Scan(&format, &n); err != nil {
			return nil, fmt.Errorf("scanning format count: %w", err)
		}
		stats.ByFormat[format] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM threads`).Scan(&stats.ThreadCount); err != nil {
		return nil, fmt.Errorf("counting threads: %w", err)
	}

	if a.dbPath != ":memory:" {
		if info, err := os.Stat(a.dbPath); err == nil {
			stats.DBSizeBytes = info.Size()
		}
	}
	return stats, nil
}
