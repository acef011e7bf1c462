// Package config loads the optional pdfsteg configuration file: driver
// defaults a user would otherwise have to repeat on every CLI invocation.
// The file is JSON-with-comments (JSONC), standardized to plain JSON before
// unmarshaling, the same way calvinalkan's ticket tool reads its config.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tailscale/hujson"
)

// WriteMode selects the whitespace layout the writer uses for every
// dictionary; it has no effect on the entry order that carries the payload.
type WriteMode string

const (
	// WriteModeCompact packs dictionary entries with single-space separators
	// (pwrite's default rendering).
	WriteModeCompact WriteMode = "compact"
	// WriteModeClean lays one entry per line, indented by nesting depth.
	WriteModeClean WriteMode = "clean"
)

// Config holds defaults for the write/read/capacity subcommands.
type Config struct {
	WriteMode  WriteMode `json:"write_mode,omitempty"`
	PDFVersion string    `json:"pdf_version,omitempty"`
	Verbose    bool      `json:"verbose,omitempty"`
}

// DefaultConfig returns the built-in defaults, used when no config file is
// present and no CLI flag overrides them.
func DefaultConfig() Config {
	return Config{
		WriteMode:  WriteModeCompact,
		PDFVersion: "1.6",
		Verbose:    false,
	}
}

var errConfigRead = errors.New("failed to read config file")

// Load reads and parses the JSONC config file at path. A missing path is not
// an error: it returns DefaultConfig(). path == "" also returns defaults
// without touching the filesystem.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is operator-supplied, same trust level as the PDF itself
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("%w: %s: %w", errConfigRead, path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC in %s: %w", path, err)
	}

	var fileCfg Config
	if err := json.Unmarshal(standardized, &fileCfg); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}

	if fileCfg.WriteMode != "" {
		cfg.WriteMode = fileCfg.WriteMode
	}
	if fileCfg.PDFVersion != "" {
		cfg.PDFVersion = fileCfg.PDFVersion
	}
	if fileCfg.Verbose {
		cfg.Verbose = true
	}

	return cfg, nil
}
