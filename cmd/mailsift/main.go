// Command mailsift reconstructs de-duplicated conversation records from
// OCR-degraded plain-text email exports and archives them in SQLite.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mailsift/mailsift/internal/config"
)

const version = "0.1.0"

// rootFlags are the persistent settings every subcommand resolves through
// the config layer.
type rootFlags struct {
	configPath string
	dbPath     string
	tablesPath string
	workers    int
	logLevel   string
}

func main() {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:           "mailsift",
		Short:         "Reconstruct conversations from OCR-degraded email exports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config.yaml (default ~/.mailsift/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flags.dbPath, "db", "", "archive database path")
	rootCmd.PersistentFlags().StringVar(&flags.tablesPath, "tables", "", "correction tables YAML override")
	rootCmd.PersistentFlags().IntVar(&flags.workers, "workers", 0, "concurrent document parsers (default: CPU count)")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newParseCmd(flags),
		newSearchCmd(flags),
		newThreadsCmd(flags),
		newThreadCmd(flags),
		newStatsCmd(flags),
		newMCPCmd(flags),
		newConfigCmd(flags),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// resolve merges config file, environment, and the root flags.
func (f *rootFlags) resolve() (config.ResolvedSettings, error) {
	return config.ResolveSettings(config.ResolveOptions{
		ConfigPath: f.configPath,
		CLIDBPath:  f.dbPath,
		CLITables:  f.tablesPath,
		CLIWorkers: f.workers,
		CLILog:     f.logLevel,
	})
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	switch level {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case "", "info":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	case "warn":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case "error":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}
	return cfg.Build()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mailsift %s\n", version)
		},
	}
}
