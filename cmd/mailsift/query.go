package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mailsift/mailsift/internal/store"
)

func openArchive(flags *rootFlags) (*store.SQLiteArchive, error) {
	settings, err := flags.resolve()
	if err != nil {
		return nil, err
	}
	return store.Open(store.Config{DBPath: settings.DBPath.Value})
}

func newSearchCmd(flags *rootFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search over archived messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := openArchive(flags)
			if err != nil {
				return err
			}
			defer archive.Close()

			hits, err := archive.Search(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(hits) == 0 {
				fmt.Fprintln(out, "no matches")
				return nil
			}
			for _, h := range hits {
				r := h.Record
				fmt.Fprintf(out, "%s  %s -> %s  %s\n", r.ID, r.Sender, r.Recipient, formatDate(r.Timestamp))
				fmt.Fprintf(out, "    %s\n", h.Snippet)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum results")
	return cmd
}

func newThreadsCmd(flags *rootFlags) *cobra.Command {
	var (
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "threads",
		Short: "List conversation threads, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := openArchive(flags)
			if err != nil {
				return err
			}
			defer archive.Close()

			threads, err := archive.ListThreads(cmd.Context(), limit, offset)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, t := range threads {
				subject := t.Subject
				if subject == "" {
					subject = "(no subject)"
				}
				fmt.Fprintf(out, "%-12s %s  %d participants  %s .. %s\n",
					t.ID, subject, len(t.Participants),
					formatDate(t.FirstTimestamp), formatDate(t.LastTimestamp))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum threads")
	cmd.Flags().IntVar(&offset, "offset", 0, "pagination offset")
	return cmd
}

func newThreadCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "thread <id>",
		Short: "Show one thread with its messages in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := openArchive(flags)
			if err != nil {
				return err
			}
			defer archive.Close()

			t, err := archive.GetThread(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if t == nil {
				return fmt.Errorf("no thread %q", args[0])
			}
			data, err := json.MarshalIndent(t, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newStatsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show archive statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := openArchive(flags)
			if err != nil {
				return err
			}
			defer archive.Close()

			stats, err := archive.Stats(cmd.Context())
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(stats, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newConfigCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print resolved settings with their sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := flags.resolve()
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(settings, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	})
	return cmd
}

func formatDate(ts int64) string {
	if ts <= 0 {
		return "undated"
	}
	return time.Unix(ts, 0).UTC().Format("2006-01-02")
}
