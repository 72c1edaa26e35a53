package siteconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// EncodeJSON serialises s in the engine's JSON shape.
func EncodeJSON(s Site, indent bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeJSON parses a JSON site configuration. Unknown fields are rejected.
func DecodeJSON(data []byte) (Site, error) {
	var s Site
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return Site{}, fmt.Errorf("decode json: %w", err)
	}
	if dec.More() {
		return Site{}, fmt.Errorf("decode json: trailing data")
	}
	return s, nil
}

// EncodeYAML serialises s as YAML using the same field names as JSON.
func EncodeYAML(s Site) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeYAML parses a YAML site configuration. Unknown fields are rejected.
func DecodeYAML(data []byte) (Site, error) {
	var s Site
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return Site{}, fmt.Errorf("decode yaml: empty document")
		}
		return Site{}, fmt.Errorf("decode yaml: %w", err)
	}
	return s, nil
}
