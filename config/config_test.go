package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "./docs", cfg.OutputDir)
	assert.Equal(t, ".vitepress", cfg.ConfigDir)
	assert.Equal(t, []string{FormatModule}, cfg.Formats)
	assert.False(t, cfg.Minify)
	assert.Equal(t, "monokai", cfg.HighlightStyle)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, filepath.Join("docs", ".vitepress"), filepath.Clean(cfg.TargetDir()))
}

func TestLoadFile(t *testing.T) {
	p := writeConfig(t, `{
		"outputDir": "site",
		"configDir": "conf/./vp/",
		"formats": ["JSON", " js ", "json", "", "sidebar"],
		"minify": true,
		"logLevel": "DEBUG"
	}`)

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "site", cfg.OutputDir)
	assert.Equal(t, "conf/vp", cfg.ConfigDir)
	assert.Equal(t, []string{FormatJSON, FormatModule, FormatSidebar}, cfg.Formats)
	assert.True(t, cfg.Minify)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.HasFormat(FormatSidebar))
	assert.False(t, cfg.HasFormat(FormatYAML))
}

func TestLoadEnvOverrides(t *testing.T) {
	p := writeConfig(t, `{"outputDir": "site", "formats": ["json"]}`)
	t.Setenv("ODDSITE_OUTPUT_DIR", "public")
	t.Setenv("ODDSITE_FORMATS", "yaml,js")
	t.Setenv("ODDSITE_MINIFY", "true")
	t.Setenv("ODDSITE_HIGHLIGHT_STYLE", "none")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "public", cfg.OutputDir)
	assert.Equal(t, []string{FormatYAML, FormatModule}, cfg.Formats)
	assert.True(t, cfg.Minify)
	assert.Equal(t, "none", cfg.HighlightStyle)
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]string{
		"unknown format": `{"formats": ["toml"]}`,
		"bad log level":  `{"logLevel": "verbose"}`,
		"absolute dir":   `{"configDir": "/etc/vitepress"}`,
		"escaping dir":   `{"configDir": "../outside"}`,
		"dot dir":        `{"configDir": "./"}`,
		"malformed":      `{"outputDir": `,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "open config")
}

func TestNormalizeDir(t *testing.T) {
	got, err := normalizeDir(`a\b\..\c`)
	require.NoError(t, err)
	assert.Equal(t, "a/c", got)

	got, err = normalizeDir("  ")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = normalizeDir("a/../../b")
	assert.Error(t, err)
}
