package site

import "errors"

var (
	// ErrUnknownFormat is returned for formats without an artifact definition.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrMismatch signals that an artifact on disk no longer matches the produced configuration.
	ErrMismatch      = errors.New("artifact does not match site configuration")
	ErrInvalidModule = errors.New("invalid config module")
)
