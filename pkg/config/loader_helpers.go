package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/odvcencio/gridview/pkg/errors"
)

// loadAndMerge loads a YAML file and merges it into the config.
func loadAndMerge(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigLoad, "failed to read config").
			WithContext("path", path)
	}

	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigParse, "failed to parse config").
			WithContext("path", path)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigParse, "failed to parse config").
			WithContext("path", path)
	}

	mergeConfigs(cfg, &override, raw)
	return nil
}

// mergeConfigs merges override into base. Strings replace the base when
// non-empty; booleans and numbers only when the key is present in raw, so
// an explicit false or 0 still wins.
func mergeConfigs(base, override *Config, raw map[string]any) {
	if override == nil {
		return
	}

	if override.UI.Host != "" {
		base.UI.Host = strings.ToLower(override.UI.Host)
	}
	if override.UI.Border != "" {
		base.UI.Border = override.UI.Border
	}
	if fieldSet(raw, "ui", "margin") {
		base.UI.Margin = override.UI.Margin
	}
	if fieldSet(raw, "ui", "no_color") {
		base.UI.NoColor = override.UI.NoColor
	}
	if fieldSet(raw, "ui", "footer_height") {
		base.UI.FooterHeight = override.UI.FooterHeight
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.File != "" {
		base.Logging.File = override.Logging.File
	}
	if override.Logging.TraceFile != "" {
		base.Logging.TraceFile = override.Logging.TraceFile
	}

	if fieldSet(raw, "metrics", "addr") {
		base.Metrics.Addr = override.Metrics.Addr
	}
}

func fieldSet(raw map[string]any, path ...string) bool {
	if len(path) == 0 || raw == nil {
		return false
	}
	current := any(raw)
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return false
		}
		val, ok := m[key]
		if !ok {
			return false
		}
		current = val
	}
	return true
}
