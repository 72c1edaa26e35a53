package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/tdewolff/minify/v2"
	minjs "github.com/tdewolff/minify/v2/js"
	minjson "github.com/tdewolff/minify/v2/json"

	"github.com/oddtoolkit/docsite/config"
	"github.com/oddtoolkit/docsite/fsutil"
	"github.com/oddtoolkit/docsite/renderer"
	"github.com/oddtoolkit/docsite/siteconfig"
	"github.com/oddtoolkit/docsite/templatex"
)

// Service renders the site configuration into the artifacts the
// documentation engine reads, and checks artifacts already on disk.
type Service struct {
	cfg       *config.Config
	templates *templatex.Engine
	parser    *renderer.Parser
	minifier  *minify.M
	logger    *slog.Logger
}

// NewService constructs a Service instance.
func NewService(cfg *config.Config, templates *templatex.Engine, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m := minify.New()
	m.AddFunc(mediaJavaScript, minjs.Minify)
	m.AddFunc(mediaJSON, minjson.Minify)
	return &Service{
		cfg:       cfg,
		templates: templates,
		parser:    renderer.NewParser(),
		minifier:  m,
		logger:    logger,
	}
}

// Path returns where the artifact for format is written.
func (s *Service) Path(format string) (string, error) {
	a, ok := lookupArtifact(format)
	if !ok {
		return "", errors.Join(ErrUnknownFormat, fmt.Errorf("format %q", format))
	}
	return filepath.Join(s.cfg.TargetDir(), a.File), nil
}

// Render encodes the produced site configuration in the given format.
func (s *Service) Render(format string) ([]byte, error) {
	a, ok := lookupArtifact(format)
	if !ok {
		return nil, errors.Join(ErrUnknownFormat, fmt.Errorf("format %q", format))
	}

	site := siteconfig.Produce()
	var (
		out []byte
		err error
	)
	switch format {
	case config.FormatModule:
		out, err = s.execute(templatex.ModuleTemplate, site)
	case config.FormatJSON:
		out, err = siteconfig.EncodeJSON(site, true)
	case config.FormatYAML:
		out, err = siteconfig.EncodeYAML(site)
	case config.FormatSidebar:
		out, err = s.execute(templatex.SidebarTemplate, site)
	}
	if err != nil {
		return nil, err
	}

	if s.cfg.Minify && a.MediaType != "" {
		minified, err := s.minifier.Bytes(a.MediaType, out)
		if err != nil {
			return nil, fmt.Errorf("minify %s: %w", format, err)
		}
		out = append(minified, '\n')
	}
	return out, nil
}

// Decode parses an artifact of the given format back into a site configuration.
func (s *Service) Decode(format string, data []byte) (siteconfig.Site, error) {
	switch format {
	case config.FormatModule:
		return decodeModule(data)
	case config.FormatJSON:
		return siteconfig.DecodeJSON(data)
	case config.FormatYAML:
		return siteconfig.DecodeYAML(data)
	case config.FormatSidebar:
		return s.parser.ParseSidebar(data)
	default:
		return siteconfig.Site{}, errors.Join(ErrUnknownFormat, fmt.Errorf("format %q", format))
	}
}

// Build writes every configured artifact into the target directory. Each
// file is replaced atomically.
func (s *Service) Build(ctx context.Context) error {
	for _, format := range s.cfg.Formats {
		if err := ctx.Err(); err != nil {
			return err
		}
		target, err := s.Path(format)
		if err != nil {
			return err
		}
		data, err := s.Render(format)
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}
		if err := fsutil.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", target, err)
		}
		s.logger.Info("wrote site config", "format", format, "path", target, "bytes", len(data))
	}
	s.logger.Debug("link targets left to the engine", "links", siteconfig.Produce().Links())
	return nil
}

// Verify reads every configured artifact back and compares it with the
// produced configuration.
func (s *Service) Verify(ctx context.Context) error {
	want := siteconfig.Produce()
	for _, format := range s.cfg.Formats {
		if err := ctx.Err(); err != nil {
			return err
		}
		target, err := s.Path(format)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(target)
		if err != nil {
			return fmt.Errorf("read %s: %w", target, err)
		}
		got, err := s.Decode(format, data)
		if err != nil {
			return fmt.Errorf("decode %s: %w", target, err)
		}
		if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
			return fmt.Errorf("%w: %s (-want +got):\n%s", ErrMismatch, target, diff)
		}
		s.logger.Debug("verified site config", "format", format, "path", target)
	}
	return nil
}

// Print renders format to w, highlighted with the configured style.
func (s *Service) Print(w io.Writer, format string) error {
	data, err := s.Render(format)
	if err != nil {
		return err
	}
	a, _ := lookupArtifact(format)
	return renderer.Highlight(w, data, a.Language, s.cfg.HighlightStyle)
}

func (s *Service) execute(name string, site siteconfig.Site) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.templates.Render(&buf, name, site); err != nil {
		return nil, fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
