package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/oddtoolkit/docsite/config"
	"github.com/oddtoolkit/docsite/site"
	"github.com/oddtoolkit/docsite/templatex"
)

func main() {
	cfgPath := flag.String("config", "", "path to configuration file")
	printFormat := flag.String("print", "", "render one format (js, json, yaml, sidebar) to stdout")
	verifyFlag := flag.Bool("verify", false, "check written artifacts instead of building")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println(TOOL_SIGNATURE)
		return
	}

	if err := loadEnvFile(); err != nil {
		panic(err)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg.LogLevel)

	templates, err := templatex.Load()
	if err != nil {
		logger.Error("templates", "error", err)
		os.Exit(1)
	}

	svc := site.NewService(cfg, templates, logger)

	if *printFormat != "" {
		if err := svc.Print(os.Stdout, strings.ToLower(strings.TrimSpace(*printFormat))); err != nil {
			logger.Error("print", "error", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *verifyFlag {
		if err := svc.Verify(ctx); err != nil {
			logger.Error("verify", "error", err)
			os.Exit(1)
		}
		logger.Info("site config verified", "dir", cfg.TargetDir(), "formats", cfg.Formats)
		return
	}

	logger.Info("starting", "version", TOOL_SIGNATURE, "formats", cfg.Formats)
	if err := svc.Build(ctx); err != nil {
		logger.Error("build", "error", err)
		os.Exit(1)
	}
	logger.Info("site config written", "dir", cfg.TargetDir())
}

// loadEnvFile applies .env style files to the process environment. A missing
// file is fine, the environment itself still applies.
func loadEnvFile(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// newLogger writes to stderr so -print output on stdout stays clean.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
