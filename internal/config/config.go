package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration
type Config struct {
	Search      SearchConfig     `toml:"search"`
	Generator   GeneratorConfig  `toml:"generator"`
	Logging     LoggingConfig    `toml:"logging"`
	Theme       ThemeConfig      `toml:"theme"`
	LogLevels   LogLevelConfig   `toml:"log_levels"`
	Keybindings KeybindingConfig `toml:"keybindings"`
	Display     DisplayConfig    `toml:"display"`
}

// SearchConfig tunes the search engine
type SearchConfig struct {
	LogDir         string `toml:"log_dir"`
	MaxConcurrency int    `toml:"max_concurrency"`
	MaxResults     int    `toml:"max_results"`
	EventBuffer    int    `toml:"event_buffer"`
}

// GeneratorConfig controls synthetic file creation
type GeneratorConfig struct {
	BatchSize   int `toml:"batch_size"`
	FillerWords int `toml:"filler_words"`
	Parallelism int `toml:"parallelism"`
}

// LoggingConfig selects level and destination of diagnostic logs
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// ThemeConfig defines color schemes
type ThemeConfig struct {
	Name          string         `toml:"name"`
	Label         string         `toml:"label"`
	StatusBar     string         `toml:"status_bar"`
	StatusBarText string         `toml:"status_bar_text"`
	SearchMatch   string         `toml:"search_match"`
	Selected      string         `toml:"selected"`
	Levels        LogLevelColors `toml:"levels"`
}

// LogLevelColors defines colors for each log level
type LogLevelColors struct {
	Trace string `toml:"trace"`
	Debug string `toml:"debug"`
	Info  string `toml:"info"`
	Warn  string `toml:"warn"`
	Error string `toml:"error"`
	Fatal string `toml:"fatal"`
}

// LogLevelConfig defines log level detection patterns
type LogLevelConfig struct {
	TracePatterns []string `toml:"trace_patterns"`
	DebugPatterns []string `toml:"debug_patterns"`
	InfoPatterns  []string `toml:"info_patterns"`
	WarnPatterns  []string `toml:"warn_patterns"`
	ErrorPatterns []string `toml:"error_patterns"`
	FatalPatterns []string `toml:"fatal_patterns"`
}

// KeybindingConfig allows customizing keybindings
type KeybindingConfig struct {
	Quit      []string `toml:"quit"`
	Up        []string `toml:"up"`
	Down      []string `toml:"down"`
	NextField []string `toml:"next_field"`
	PrevField []string `toml:"prev_field"`
	Toggle    []string `toml:"toggle"`
	Generate  []string `toml:"generate"`
}

// DisplayConfig holds display options
type DisplayConfig struct {
	MaxWidth        int  `toml:"max_width"`
	PreviewLines    int  `toml:"preview_lines"`
	SyntaxHighlight bool `toml:"syntax_highlight"`
	Plain           bool `toml:"plain"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			LogDir:         "./logs",
			MaxConcurrency: 15,
			MaxResults:     100,
			EventBuffer:    64,
		},
		Generator: GeneratorConfig{
			BatchSize:   100,
			FillerWords: 100,
			Parallelism: 8,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Theme: ThemeConfig{
			Name:          "subtle",
			Label:         "244", // Medium gray
			StatusBar:     "236", // Darker gray background
			StatusBarText: "252", // Light gray text
			SearchMatch:   "226", // Yellow
			Selected:      "39",  // Blue
			Levels: LogLevelColors{
				Trace: "240", // Dark gray
				Debug: "244", // Medium gray
				Info:  "250", // Light gray (default)
				Warn:  "214", // Orange
				Error: "167", // Soft red
				Fatal: "196", // Bright red
			},
		},
		LogLevels: LogLevelConfig{
			TracePatterns: []string{"[TRC]", "[TRACE]", "TRACE", "TRC"},
			DebugPatterns: []string{"[DBG]", "[DEBUG]", "DEBUG", "DBG"},
			InfoPatterns:  []string{"[INF]", "[INFO]", "INFO", "INF"},
			WarnPatterns:  []string{"[WRN]", "[WARN]", "[WARNING]", "WARN", "WRN", "WARNING"},
			ErrorPatterns: []string{"[ERR]", "[ERROR]", "ERROR", "ERR"},
			FatalPatterns: []string{"[FTL]", "[FATAL]", "FATAL", "FTL", "[CRIT]", "CRITICAL"},
		},
		Keybindings: KeybindingConfig{
			Quit:      []string{"esc", "ctrl+c"},
			Up:        []string{"up", "ctrl+k"},
			Down:      []string{"down", "ctrl+j"},
			NextField: []string{"tab"},
			PrevField: []string{"shift+tab"},
			Toggle:    []string{"enter"},
			Generate:  []string{"ctrl+n"},
		},
		Display: DisplayConfig{
			MaxWidth:        100,
			PreviewLines:    20,
			SyntaxHighlight: true,
		},
	}
}

// Validate rejects settings the search engine cannot run with
func (c *Config) Validate() error {
	var errs []error
	if c.Search.LogDir == "" {
		errs = append(errs, errors.New("search.log_dir must not be empty"))
	}
	if c.Search.MaxConcurrency < 1 {
		errs = append(errs, fmt.Errorf("search.max_concurrency must be positive, got %d", c.Search.MaxConcurrency))
	}
	if c.Search.MaxResults < 1 {
		errs = append(errs, fmt.Errorf("search.max_results must be positive, got %d", c.Search.MaxResults))
	}
	if c.Generator.BatchSize < 1 {
		errs = append(errs, fmt.Errorf("generator.batch_size must be positive, got %d", c.Generator.BatchSize))
	}
	return errors.Join(errs...)
}

// Load loads config from the default location, falling back to defaults
func Load() (*Config, error) {
	return LoadFile(getConfigPath())
}

// LoadFile loads config from path. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv folds environment overrides into the config. A non-empty
// NO_COLOR (https://no-color.org) forces plain rendering.
func (c *Config) ApplyEnv() {
	if os.Getenv("NO_COLOR") != "" {
		c.Display.Plain = true
	}
}

// SaveFile writes cfg to path, creating its directory
func SaveFile(path string, cfg *Config) error {
	if path == "" {
		return errors.New("no config path")
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// getConfigPath returns the config file path
func getConfigPath() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mseek", "config.toml")
	}

	// Fall back to ~/.config
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "mseek", "config.toml")
}

// GetConfigPath exports the config path for user reference
func GetConfigPath() string {
	return getConfigPath()
}
