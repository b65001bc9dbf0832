package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Tiliavir/timetrack/internal/report"
)

// Config is the root configuration for timetrack, stored in
// ~/.timetrack/config.json. The file supports single-line // comments for
// documentation purposes.
type Config struct {
	// WeekHours is the weekly working-hours target, spread evenly over Workdays.
	WeekHours float64 `json:"week_hours"`
	// Workdays is the number of workdays per week the quota is divided by.
	Workdays int `json:"workdays"`
	// Database overrides the event log location. Empty uses the default path.
	Database string `json:"database"`
}

const (
	// DefaultWeekHours is the weekly quota used when none is configured.
	DefaultWeekHours = 40
	// DefaultWorkdays assumes a Monday-to-Friday workweek.
	DefaultWorkdays = 5
)

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig() Config {
	return Config{
		WeekHours: DefaultWeekHours,
		Workdays:  DefaultWorkdays,
		Database:  "",
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// timetrack configuration – ~/.timetrack/config.json
//
// All settings are optional; the built-in defaults shown below match a
// regular 40-hour, five-day workweek. Edit this file to customise timetrack.
{
  // Weekly working-hours target. Fractional values are allowed, e.g. 38.5.
  "week_hours": 40,

  // Number of workdays the weekly target is divided by (Monday onwards).
  "workdays": 5,

  // Path of the event log database.
  // Leave empty to use ~/.timetrack/timetrack.db.
  "database": ""
}
`

// BaseDir returns the root data directory (~/.timetrack).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".timetrack"), nil
}

// configFilePath returns the path to ~/.timetrack/config.json.
func configFilePath() (string, error) {
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads ~/.timetrack/config.json, creating it with annotated defaults
// on first run. Lines starting with // are treated as comments and stripped
// before JSON parsing.
func Load() (Config, error) {
	path, err := configFilePath()
	if err != nil {
		return defaultConfig(), err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return defaultConfig(), nil
	}
	if err != nil {
		return defaultConfig(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	cleaned := stripLineComments(data)
	var cfg Config
	if err := json.Unmarshal(cleaned, &cfg); err != nil {
		return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	// Fill zero-value fields with built-in defaults so callers always get
	// a usable Config even if the user only partially fills in the file.
	if cfg.WeekHours <= 0 {
		cfg.WeekHours = DefaultWeekHours
	}
	if cfg.Workdays <= 0 {
		cfg.Workdays = DefaultWorkdays
	}

	return cfg, nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// Quota returns the configured weekly target for the aggregators.
func (c Config) Quota() report.Quota {
	return report.Quota{
		WeekHours: time.Duration(c.WeekHours * float64(time.Hour)),
		Workdays:  c.Workdays,
	}
}

// DatabasePath resolves the event log location, applying the default when no
// override is configured.
func (c Config) DatabasePath() (string, error) {
	if c.Database != "" {
		return c.Database, nil
	}
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "timetrack.db"), nil
}
