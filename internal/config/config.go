package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// Segmenter contains configuration for slicing the sample stream into match windows.
type Segmenter struct {
	// RestartGrace is how long (stream seconds) after a match's first sample a
	// new start marker is tolerated before it is treated as an anomalous restart.
	RestartGrace float64 `toml:"restart_grace"`
	// MinWindowSamples is the smallest window that is resolved into a match.
	// Smaller windows are start-marker noise. Must be at least 3.
	MinWindowSamples int    `toml:"min_window_samples"`
	KeepMatches      bool   `toml:"keep_matches"`
	KeyPrefix        string `toml:"key_prefix"`
}

// Resolver contains the consensus tuning for entity resolution.
type Resolver struct {
	SimilarityThreshold     float64  `toml:"similarity_threshold"`
	NameSimilarityThreshold float64  `toml:"name_similarity_threshold"`
	AmbiguityMargin         float64  `toml:"ambiguity_margin"`
	ModeWindow              int      `toml:"mode_window"`
	TeamSize                int      `toml:"team_size"`
	RoundRestartGap         float64  `toml:"round_restart_gap"`
	KillMergeWindow         float64  `toml:"kill_merge_window"`
	Maps                    []string `toml:"maps"`
	Modes                   []string `toml:"modes"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
	MatchStarted   bool   `toml:"match_started"`
	MatchCompleted bool   `toml:"match_completed"`
	Errors         bool   `toml:"errors"`
}

// Redis contains configuration for publishing completed matches to a Redis stream.
type Redis struct {
	Enabled  bool   `toml:"enabled"`
	Address  string `toml:"address"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Stream   string `toml:"stream"`
	MaxLen   int64  `toml:"max_len"`
}

// Metrics contains configuration for the Prometheus endpoint.
type Metrics struct {
	Enabled bool   `toml:"enabled"`
	Bind    string `toml:"bind"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for matchmill.
//
// Configuration sections by subsystem:
//   - Paths: data (match database, lock) and log directories
//   - Segmenter: match window detection
//   - Resolver: consensus thresholds and vocabularies
//   - Notifications: ntfy push notification settings
//   - Redis: completed match stream publishing
//   - Metrics: Prometheus endpoint
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Segmenter     Segmenter     `toml:"segmenter"`
	Resolver      Resolver      `toml:"resolver"`
	Notifications Notifications `toml:"notifications"`
	Redis         Redis         `toml:"redis"`
	Metrics       Metrics       `toml:"metrics"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and environment overrides applied.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("matchmill.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the data and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the location of the match database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "matches.db")
}

// LockPath returns the location of the single-writer lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "matchmill.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
