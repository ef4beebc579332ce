package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValueSource records where a resolved setting came from, for `config show`
// style diagnostics.
type ValueSource string

const (
	SourceUnknown ValueSource = "unknown"
	SourceConfig  ValueSource = "config"
	SourceEnv     ValueSource = "env"
	SourceCLI     ValueSource = "cli"
	SourceDefault ValueSource = "default"
)

// ResolvedValue is a setting plus its provenance.
type ResolvedValue struct {
	Value  string      `json:"value"`
	Source ValueSource `json:"source"`
	From   string      `json:"from,omitempty"`
}

// ResolveOptions carries the CLI-level overrides into resolution.
// Precedence is CLI flag > environment > config file > built-in default.
type ResolveOptions struct {
	ConfigPath string
	CLIDBPath  string
	CLITables  string
	CLIWorkers int
	CLILog     string
}

// ResolvedSettings is the fully resolved runtime configuration.
type ResolvedSettings struct {
	ConfigPath string `json:"config_path"`

	DBPath     ResolvedValue `json:"db_path"`
	TablesPath ResolvedValue `json:"tables_path"`
	Workers    ResolvedValue `json:"workers"`
	LogLevel   ResolvedValue `json:"log_level"`
}

type fileSettings struct {
	DBPath     string `yaml:"db_path"`
	TablesPath string `yaml:"tables_path"`
	Workers    int    `yaml:"workers"`
	LogLevel   string `yaml:"log_level"`
}

// DefaultConfigPath is where settings are looked up when no explicit path
// is given.
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".mailsift", "config.yaml")
}

// ResolveSettings merges the config file, environment, and CLI overrides.
// A missing config file is not an error; a malformed one is.
func ResolveSettings(opts ResolveOptions) (ResolvedSettings, error) {
	path := strings.TrimSpace(opts.ConfigPath)
	if path == "" {
		path = DefaultConfigPath()
	}

	out := ResolvedSettings{ConfigPath: path}

	cfg, err := loadSettings(path)
	if err != nil {
		return out, err
	}
	if cfg != nil {
		apply(&out.DBPath, cfg.DBPath, SourceConfig, path)
		apply(&out.TablesPath, cfg.TablesPath, SourceConfig, path)
		if cfg.Workers > 0 {
			out.Workers = ResolvedValue{Value: strconv.Itoa(cfg.Workers), Source: SourceConfig, From: path}
		}
		apply(&out.LogLevel, cfg.LogLevel, SourceConfig, path)
	}

	applyEnv(&out.DBPath, "MAILSIFT_DB")
	applyEnv(&out.TablesPath, EnvTablesPath)
	applyEnv(&out.Workers, "MAILSIFT_WORKERS")
	applyEnv(&out.LogLevel, "MAILSIFT_LOG")

	apply(&out.DBPath, opts.CLIDBPath, SourceCLI, "--db")
	apply(&out.TablesPath, opts.CLITables, SourceCLI, "--tables")
	if opts.CLIWorkers > 0 {
		out.Workers = ResolvedValue{Value: strconv.Itoa(opts.CLIWorkers), Source: SourceCLI, From: "--workers"}
	}
	apply(&out.LogLevel, opts.CLILog, SourceCLI, "--log")

	if out.DBPath.Value != "" {
		out.DBPath.Value = expandUserPath(out.DBPath.Value)
	}
	if out.TablesPath.Value != "" {
		out.TablesPath.Value = expandUserPath(out.TablesPath.Value)
	}
	return out, nil
}

// WorkerCount parses the resolved worker setting; zero means "let the
// pipeline pick".
func (r ResolvedSettings) WorkerCount() int {
	n, err := strconv.Atoi(strings.TrimSpace(r.Workers.Value))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func apply(dst *ResolvedValue, raw string, source ValueSource, from string) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return
	}
	*dst = ResolvedValue{Value: v, Source: source, From: from}
}

func applyEnv(dst *ResolvedValue, envKey string) {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		*dst = ResolvedValue{Value: v, Source: SourceEnv, From: envKey}
	}
}

func loadSettings(path string) (*fileSettings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var cfg fileSettings
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

func expandUserPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
