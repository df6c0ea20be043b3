package storage

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format selects the on-disk encoding of the task file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name as written in config or flags.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown task file format %q, must be json or yaml", s)
}

// DetectFormat picks the encoding for path. A recognized extension
// wins, then the configured fallback, then JSON.
func DetectFormat(path string, fallback Format) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	if fallback == FormatJSON || fallback == FormatYAML {
		return fallback
	}
	return FormatJSON
}
