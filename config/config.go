package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix scopes environment overrides, e.g. ODDSITE_LOG_LEVEL.
const EnvPrefix = "ODDSITE"

// Supported artifact formats.
const (
	FormatModule  = "js"
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatSidebar = "sidebar"
)

var knownFormats = map[string]struct{}{
	FormatModule:  {},
	FormatJSON:    {},
	FormatYAML:    {},
	FormatSidebar: {},
}

// Config encapsulates build-time options for emitting the site configuration.
type Config struct {
	OutputDir      string   `json:"outputDir" envconfig:"OUTPUT_DIR"`
	ConfigDir      string   `json:"configDir" envconfig:"CONFIG_DIR"`
	Formats        []string `json:"formats" envconfig:"FORMATS"`
	Minify         bool     `json:"minify" envconfig:"MINIFY"`
	HighlightStyle string   `json:"highlightStyle" envconfig:"HIGHLIGHT_STYLE"`
	LogLevel       string   `json:"logLevel" envconfig:"LOG_LEVEL"`
}

// Load reads configuration from disk, applies environment overrides and sane
// defaults. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if strings.TrimSpace(path) != "" {
		file, err := os.Open(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		bytes, err := io.ReadAll(file)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := json.Unmarshal(bytes, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// TargetDir is the directory the engine reads its configuration from.
func (c *Config) TargetDir() string {
	return filepath.Join(c.OutputDir, filepath.FromSlash(c.ConfigDir))
}

func (c *Config) applyDefaults() error {
	c.OutputDir = strings.TrimSpace(c.OutputDir)
	if c.OutputDir == "" {
		c.OutputDir = "./docs"
	}

	dir, err := normalizeDir(c.ConfigDir)
	if err != nil {
		return fmt.Errorf("invalid configDir %q: %w", c.ConfigDir, err)
	}
	if dir == "" {
		dir = ".vitepress"
	}
	c.ConfigDir = dir

	c.Formats = compileFormats(c.Formats)
	if len(c.Formats) == 0 {
		c.Formats = []string{FormatModule}
	}

	c.HighlightStyle = strings.TrimSpace(c.HighlightStyle)
	if c.HighlightStyle == "" {
		c.HighlightStyle = "monokai"
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return nil
}

func (c *Config) validate() error {
	for _, format := range c.Formats {
		if _, ok := knownFormats[format]; !ok {
			return fmt.Errorf("unsupported format %q", format)
		}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logLevel %q", c.LogLevel)
	}
	return nil
}

// HasFormat reports whether format is enabled.
func (c *Config) HasFormat(format string) bool {
	for _, f := range c.Formats {
		if f == format {
			return true
		}
	}
	return false
}

func compileFormats(raw []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		token := strings.ToLower(strings.TrimSpace(entry))
		if token == "" {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}

// normalizeDir cleans a directory relative to the output root and rejects
// absolute paths or paths escaping it.
func normalizeDir(raw string) (string, error) {
	trimmed := strings.TrimSpace(strings.ReplaceAll(raw, "\\", "/"))
	if trimmed == "" {
		return "", nil
	}
	if strings.HasPrefix(trimmed, "/") || filepath.IsAbs(trimmed) {
		return "", fmt.Errorf("path must be relative")
	}
	cleaned := path.Clean(trimmed)
	if cleaned == "." {
		return "", fmt.Errorf("path must name a subdirectory")
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("path escapes output directory")
	}
	return cleaned, nil
}
