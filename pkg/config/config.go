// Package config loads gridview viewer settings from YAML files and the
// environment.
package config

import (
	stderrors "errors"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/odvcencio/gridview/pkg/errors"
)

// Host modes.
const (
	HostAuto     = "auto"
	HostTerminal = "terminal"
	HostPrint    = "print"
)

// Border styles a document may fall back to.
var borderStyles = []string{"none", "ascii", "modern", "rounded", "double", "columns"}

var logLevels = []string{"debug", "info", "warn", "error"}

// Config represents the complete gridview configuration.
type Config struct {
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// UIConfig controls how tables are shown.
type UIConfig struct {
	// Host selects the output: terminal, print, or auto to pick terminal
	// when stdout is a TTY.
	Host string `yaml:"host"`
	// Border is used for documents that name no style.
	Border string `yaml:"border"`
	// Margin is the blank space kept around the table in terminal mode.
	Margin  int  `yaml:"margin"`
	NoColor bool `yaml:"no_color"`
	// FooterHeight is the number of rows reserved below the table.
	FooterHeight int `yaml:"footer_height"`
}

// LoggingConfig controls the structured log.
type LoggingConfig struct {
	Level string `yaml:"level"`
	// File receives the log in terminal mode, where stderr is hidden by the
	// screen. Empty discards it.
	File string `yaml:"file"`
	// TraceFile receives OpenTelemetry spans as JSON lines. Empty disables
	// tracing.
	TraceFile string `yaml:"trace_file"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	// Addr is the listen address for /metrics. Empty disables it.
	Addr string `yaml:"addr"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Host:         HostAuto,
			Border:       "ascii",
			Margin:       0,
			FooterHeight: 4,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from default locations with proper precedence:
// defaults, then ~/.gridview/config.yaml, then ./.gridview/config.yaml,
// then the environment.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	configEnv := loadConfigEnvVars()

	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	if home != "" {
		userConfigPath := filepath.Join(home, ".gridview", "config.yaml")
		if err := loadAndMerge(cfg, userConfigPath); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	projectConfigPath := filepath.Join(".", ".gridview", "config.yaml")
	if err := loadAndMerge(cfg, projectConfigPath); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	applyEnvOverrides(cfg, configEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	configEnv := loadConfigEnvVars()

	if err := loadAndMerge(cfg, path); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg, configEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies GRIDVIEW_* variables. Values in the process
// environment win over those in ~/.gridview/config.env.
func applyEnvOverrides(cfg *Config, configEnv map[string]string) {
	if v := envValue("GRIDVIEW_HOST", configEnv); v != "" {
		cfg.UI.Host = v
	}
	if v := envValue("GRIDVIEW_BORDER", configEnv); v != "" {
		cfg.UI.Border = v
	}
	if v := envValue("GRIDVIEW_LOG_LEVEL", configEnv); v != "" {
		cfg.Logging.Level = v
	}
	if v := envValue("GRIDVIEW_LOG_FILE", configEnv); v != "" {
		cfg.Logging.File = v
	}
	if v := envValue("GRIDVIEW_TRACE_FILE", configEnv); v != "" {
		cfg.Logging.TraceFile = v
	}
	if v := envValue("GRIDVIEW_METRICS_ADDR", configEnv); v != "" {
		cfg.Metrics.Addr = v
	}
	if val, ok := envBool(envValue("GRIDVIEW_NO_COLOR", configEnv)); ok {
		cfg.UI.NoColor = val
	}
	// NO_COLOR disables color whatever its value.
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cfg.UI.NoColor = true
	}
}

func envValue(key string, configEnv map[string]string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return strings.TrimSpace(configEnv[key])
}

func envBool(val string) (bool, bool) {
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	default:
		return false, false
	}
}

// Validate checks the configuration for values gridview cannot use.
func (c *Config) Validate() error {
	switch c.UI.Host {
	case HostAuto, HostTerminal, HostPrint:
	default:
		return invalid("ui.host", c.UI.Host)
	}
	if !contains(borderStyles, strings.ToLower(c.UI.Border)) {
		return invalid("ui.border", c.UI.Border)
	}
	if c.UI.Margin < 0 {
		return invalid("ui.margin", c.UI.Margin)
	}
	if c.UI.FooterHeight < 0 {
		return invalid("ui.footer_height", c.UI.FooterHeight)
	}
	if !contains(logLevels, strings.ToLower(c.Logging.Level)) {
		return invalid("logging.level", c.Logging.Level)
	}
	if addr := strings.TrimSpace(c.Metrics.Addr); addr != "" {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid metrics address").
				WithContext("field", "metrics.addr").
				WithContext("value", addr)
		}
	}
	return nil
}

func invalid(field string, value any) *errors.Error {
	return errors.Newf(errors.ErrCodeConfigInvalid, "invalid %s", field).
		WithContext("field", field).
		WithContext("value", value)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func loadConfigEnvVars() map[string]string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return nil
	}

	path := filepath.Join(home, ".gridview", "config.env")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	vars := make(map[string]string)
	lines := strings.Split(string(data), "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		line = strings.TrimSpace(line)
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			continue
		}
		value = strings.Trim(value, "\"'")
		vars[key] = value
	}
	return vars
}
