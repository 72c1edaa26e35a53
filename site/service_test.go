package site

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddtoolkit/docsite/config"
	"github.com/oddtoolkit/docsite/siteconfig"
	"github.com/oddtoolkit/docsite/templatex"
)

var allFormats = []string{config.FormatModule, config.FormatJSON, config.FormatYAML, config.FormatSidebar}

func newTestService(t *testing.T, minify bool) (*Service, *config.Config) {
	t.Helper()
	cfg := &config.Config{
		OutputDir:      filepath.Join(t.TempDir(), "docs"),
		ConfigDir:      ".vitepress",
		Formats:        allFormats,
		Minify:         minify,
		HighlightStyle: "none",
		LogLevel:       "info",
	}
	templates, err := templatex.Load()
	require.NoError(t, err)
	return NewService(cfg, templates, nil), cfg
}

func TestRenderRoundTrip(t *testing.T) {
	for _, minify := range []bool{false, true} {
		svc, _ := newTestService(t, minify)
		for _, format := range allFormats {
			data, err := svc.Render(format)
			require.NoError(t, err, "format %s minify %v", format, minify)

			got, err := svc.Decode(format, data)
			require.NoError(t, err, "format %s minify %v:\n%s", format, minify, data)
			if diff := cmp.Diff(siteconfig.Produce(), got, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("format %s minify %v mismatch (-want +got):\n%s", format, minify, diff)
			}
		}
	}
}

func TestRenderModuleShape(t *testing.T) {
	svc, _ := newTestService(t, false)
	data, err := svc.Render(config.FormatModule)
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "import { defineConfig } from 'vitepress'\n"))
	assert.Contains(t, text, "export default defineConfig({")
	assert.Contains(t, text, "{ text: 'Guide', link: '/guide/usage' },")
	assert.Contains(t, text, "{ text: 'Usage', link: '/guide/usage' },")
}

func TestRenderMinified(t *testing.T) {
	plain, _ := newTestService(t, false)
	small, _ := newTestService(t, true)

	for _, format := range []string{config.FormatModule, config.FormatJSON} {
		full, err := plain.Render(format)
		require.NoError(t, err)
		min, err := small.Render(format)
		require.NoError(t, err)
		assert.Less(t, len(min), len(full), format)
	}

	yamlPlain, err := plain.Render(config.FormatYAML)
	require.NoError(t, err)
	yamlMin, err := small.Render(config.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, yamlPlain, yamlMin)
}

func TestRenderUnknownFormat(t *testing.T) {
	svc, _ := newTestService(t, false)

	_, err := svc.Render("toml")
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	_, err = svc.Decode("toml", nil)
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	_, err = svc.Path("toml")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestBuildAndVerify(t *testing.T) {
	svc, cfg := newTestService(t, false)
	ctx := context.Background()

	require.NoError(t, svc.Build(ctx))
	for _, name := range []string{"config.js", "config.json", "config.yaml", "_Sidebar.md"} {
		assert.FileExists(t, filepath.Join(cfg.OutputDir, ".vitepress", name))
	}
	require.NoError(t, svc.Verify(ctx))

	// Building twice replaces files in place.
	require.NoError(t, svc.Build(ctx))
	require.NoError(t, svc.Verify(ctx))
}

func TestVerifyDetectsDrift(t *testing.T) {
	svc, _ := newTestService(t, false)
	ctx := context.Background()
	require.NoError(t, svc.Build(ctx))

	target, err := svc.Path(config.FormatJSON)
	require.NoError(t, err)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	tampered := bytes.Replace(data, []byte(`"Usage"`), []byte(`"Use"`), 1)
	require.NoError(t, os.WriteFile(target, tampered, 0o644))

	err = svc.Verify(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMismatch), "got %v", err)
	assert.Contains(t, err.Error(), "Use")
}

func TestVerifyMissingArtifact(t *testing.T) {
	svc, _ := newTestService(t, false)
	err := svc.Verify(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)
}

func TestBuildHonoursCancellation(t *testing.T) {
	svc, cfg := newTestService(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.Build(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoDirExists(t, cfg.TargetDir())
}

func TestPrint(t *testing.T) {
	svc, cfg := newTestService(t, false)

	var plain bytes.Buffer
	require.NoError(t, svc.Print(&plain, config.FormatJSON))
	want, err := svc.Render(config.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, string(want), plain.String())

	cfg.HighlightStyle = "monokai"
	var coloured bytes.Buffer
	require.NoError(t, svc.Print(&coloured, config.FormatModule))
	assert.Contains(t, coloured.String(), "\x1b[")
}
