// Package parse turns OCR-degraded document exports into message records.
// Classification is line-shape based: a document is traditional, message,
// or chat format, or none, and the matching extractor runs. Extraction
// failures are per-document outcomes, never a failed batch.
package parse

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/mailsift/mailsift/internal/clean"
	"github.com/mailsift/mailsift/internal/config"
	"github.com/mailsift/mailsift/internal/identity"
	"github.com/mailsift/mailsift/internal/textdoc"
)

// Status classifies what happened to one document.
type Status int

const (
	// StatusSkipped means the document was never processed; a cancelled
	// batch leaves its unreached documents skipped.
	StatusSkipped Status = iota
	// StatusExtracted means at least one record was produced.
	StatusExtracted
	// StatusNotApplicable means no extractor recognized the document.
	StatusNotApplicable
	// StatusFailed means the document could not be read.
	StatusFailed
)

// Outcome is the per-document result.
type Outcome struct {
	Source  string
	Status  Status
	Records []*textdoc.MessageRecord
	Err     error
}

// Stats aggregates a batch run.
type Stats struct {
	TotalFiles     int `json:"total_files"`
	RecordsFound   int `json:"records_found"`
	Traditional    int `json:"traditional_format"`
	Message        int `json:"message_format"`
	Chat           int `json:"chat_format"`
	OtherDocuments int `json:"other_documents"`
	ParseErrors    int `json:"parse_errors"`
	SkippedFiles   int `json:"skipped_files,omitempty"`
}

// Result is a completed batch: all records in input order, the alias table
// discovered while parsing, and run statistics. Records are already
// reconciled against the alias table.
type Result struct {
	Records  []*textdoc.MessageRecord
	Aliases  identity.AliasTable
	Outcomes []Outcome
	Stats    Stats
}

// Options tunes a batch run. Zero values pick defaults.
type Options struct {
	// Workers is the number of concurrent document parsers. Defaults to
	// runtime.NumCPU. Output order is input order regardless.
	Workers int
}

// Engine extracts records using one fixed table set. Safe for concurrent
// batches.
type Engine struct {
	tables  *config.Tables
	norm    *identity.Normalizer
	cleaner *clean.Cleaner
	log     *zap.Logger
	workers int
}

// NewEngine builds an Engine over the given tables. A nil logger disables
// logging.
func NewEngine(tables *config.Tables, log *zap.Logger, opts Options) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Engine{
		tables:  tables,
		norm:    identity.NewNormalizer(tables),
		cleaner: clean.NewCleaner(tables),
		log:     log,
		workers: workers,
	}
}

// ListDocuments expands folders into the .txt documents they contain,
// sorted. Missing folders are skipped.
func ListDocuments(folders []string) ([]string, error) {
	var paths []string
	for _, folder := range folders {
		if _, err := os.Stat(folder); err != nil {
			continue
		}
		matches, err := filepath.Glob(filepath.Join(folder, "*.txt"))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)
	return paths, nil
}

// ParseAll runs the batch: every path is classified and extracted
// concurrently, then the alias table is built from the full record set
// and applied in a second pass, so the result does not depend on worker
// scheduling or document order. On cancellation the documents not yet
// fed to a worker are marked skipped and the partial result is returned
// alongside the context error, reconciled like a complete one.
func (e *Engine) ParseAll(ctx context.Context, paths []string) (*Result, error) {
	outcomes := make([]Outcome, len(paths))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < e.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = e.ParseFile(paths[i])
			}
		}()
	}

	var ctxErr error
feed:
	for i := range paths {
		if err := ctx.Err(); err != nil {
			ctxErr = err
			break
		}
		select {
		case jobs <- i:
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	res := &Result{Outcomes: outcomes, Stats: Stats{TotalFiles: len(paths)}}
	for i, o := range outcomes {
		switch o.Status {
		case StatusSkipped:
			outcomes[i].Source = paths[i]
			res.Stats.SkippedFiles++
		case StatusExtracted:
			res.Records = append(res.Records, o.Records...)
			res.Stats.RecordsFound += len(o.Records)
			for _, r := range o.Records {
				switch r.Format {
				case textdoc.FormatTraditional:
					res.Stats.Traditional++
				case textdoc.FormatMessage:
					res.Stats.Message++
				case textdoc.FormatChat:
					res.Stats.Chat++
				}
			}
		case StatusNotApplicable:
			res.Stats.OtherDocuments++
		case StatusFailed:
			res.Stats.ParseErrors++
			e.log.Warn("document failed", zap.String("path", o.Source), zap.Error(o.Err))
		}
	}

	res.Aliases = identity.BuildAliasTable(res.Records)
	identity.Reconcile(res.Records, e.norm, res.Aliases)

	if ctxErr != nil {
		e.log.Warn("batch cancelled",
			zap.Int("files", res.Stats.TotalFiles),
			zap.Int("skipped", res.Stats.SkippedFiles),
			zap.Int("records", res.Stats.RecordsFound))
		return res, ctxErr
	}

	e.log.Info("batch parsed",
		zap.Int("files", res.Stats.TotalFiles),
		zap.Int("records", res.Stats.RecordsFound),
		zap.Int("other", res.Stats.OtherDocuments),
		zap.Int("errors", res.Stats.ParseErrors))

	return res, nil
}

// ParseFile reads and extracts a single document.
func (e *Engine) ParseFile(path string) Outcome {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Outcome{Source: path, Status: StatusFailed, Err: err}
	}
	return e.ParseContent(string(raw), filepath.Base(path))
}

// ParseContent classifies content and runs the matching extractor.
// sourceDoc is the provenance name stamped on every produced record.
func (e *Engine) ParseContent(content, sourceDoc string) Outcome {
	content = sanitize(content)

	var records []*textdoc.MessageRecord
	switch Detect(content) {
	case textdoc.FormatChat:
		records = e.parseChat(content, sourceDoc)
	case textdoc.FormatTraditional:
		records = e.parseTraditional(content, sourceDoc)
	case textdoc.FormatMessage:
		records = e.parseMessage(content, sourceDoc)
	}

	if len(records) == 0 {
		return Outcome{Source: sourceDoc, Status: StatusNotApplicable}
	}
	e.log.Debug("document extracted",
		zap.String("source", sourceDoc),
		zap.Int("records", len(records)))
	return Outcome{Source: sourceDoc, Status: StatusExtracted, Records: records}
}

func sanitize(content string) string {
	content = strings.TrimPrefix(content, "\uFEFF")
	return strings.ToValidUTF8(content, "")
}
