package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mailsift/mailsift/internal/config"
	"github.com/mailsift/mailsift/internal/dedup"
	"github.com/mailsift/mailsift/internal/parse"
	"github.com/mailsift/mailsift/internal/store"
	"github.com/mailsift/mailsift/internal/textdoc"
	"github.com/mailsift/mailsift/internal/thread"
)

// exportPayload is the JSON document written by parse --json.
type exportPayload struct {
	Records []*textdoc.MessageRecord `json:"records"`
	Threads []*textdoc.Thread        `json:"threads"`
	Stats   parse.Stats              `json:"stats"`
	Summary *textdoc.CorpusSummary   `json:"summary"`
}

func newParseCmd(flags *rootFlags) *cobra.Command {
	var (
		jsonOut string
		noStore bool
	)

	cmd := &cobra.Command{
		Use:   "parse <folder>...",
		Short: "Parse document folders, deduplicate, rebuild threads, and archive the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := flags.resolve()
			if err != nil {
				return err
			}
			logger, err := newLogger(settings.LogLevel.Value)
			if err != nil {
				return err
			}
			defer logger.Sync()

			tables, err := config.Load(settings.TablesPath.Value)
			if err != nil {
				return err
			}

			result, threads, err := runPipeline(cmd.Context(), logger, tables, settings.WorkerCount(), args)
			if err != nil {
				return err
			}

			if !noStore {
				archive, err := store.Open(store.Config{DBPath: settings.DBPath.Value})
				if err != nil {
					return fmt.Errorf("opening archive: %w", err)
				}
				defer archive.Close()

				saved, err := archive.SaveRecords(cmd.Context(), result.Records)
				if err != nil {
					return fmt.Errorf("saving records: %w", err)
				}
				if err := archive.SaveThreads(cmd.Context(), threads); err != nil {
					return fmt.Errorf("saving threads: %w", err)
				}
				logger.Info("archived", zap.Int("records", saved), zap.Int("threads", len(threads)))
			}

			if jsonOut != "" {
				payload := exportPayload{
					Records: result.Records,
					Threads: threads,
					Stats:   result.Stats,
					Summary: textdoc.Summarize(result.Records),
				}
				data, err := json.MarshalIndent(payload, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding export: %w", err)
				}
				if err := os.WriteFile(jsonOut, data, 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", jsonOut, err)
				}
			}

			printStats(cmd, result.Stats, len(threads))
			return nil
		},
	}
	cmd.Flags().StringVar(&jsonOut, "json", "", "also write records and threads to a JSON file")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "skip the archive database, parse only")
	return cmd
}

// runPipeline runs the full reconstruction: extraction, cross-file
// deduplication, thread rebuild.
func runPipeline(ctx context.Context, logger *zap.Logger, tables *config.Tables, workers int, folders []string) (*parse.Result, []*textdoc.Thread, error) {
	paths, err := parse.ListDocuments(folders)
	if err != nil {
		return nil, nil, err
	}
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("no .txt documents under %v", folders)
	}

	engine := parse.NewEngine(tables, logger, parse.Options{Workers: workers})
	result, err := engine.ParseAll(ctx, paths)
	if err != nil {
		return nil, nil, err
	}

	result.Records = dedup.Deduplicate(result.Records)
	threads := thread.Build(result.Records)
	return result, threads, nil
}

func printStats(cmd *cobra.Command, stats parse.Stats, threadCount int) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Files:        %d\n", stats.TotalFiles)
	fmt.Fprintf(out, "Records:      %d\n", stats.RecordsFound)
	fmt.Fprintf(out, "  traditional %d\n", stats.Traditional)
	fmt.Fprintf(out, "  message     %d\n", stats.Message)
	fmt.Fprintf(out, "  chat        %d\n", stats.Chat)
	fmt.Fprintf(out, "Other docs:   %d\n", stats.OtherDocuments)
	fmt.Fprintf(out, "Parse errors: %d\n", stats.ParseErrors)
	fmt.Fprintf(out, "Threads:      %d\n", threadCount)
}
