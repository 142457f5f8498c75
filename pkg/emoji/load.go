package emoji

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/apparentlymart/go-textseg/v13/textseg"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

const defaultTableFile = "data/emoji.json"

// DefaultTablePath is data/emoji.json next to the running executable.
func DefaultTablePath() string {
	exe, err := os.Executable()
	if err != nil {
		return defaultTableFile
	}
	return filepath.Join(filepath.Dir(exe), filepath.FromSlash(defaultTableFile))
}

// ParseSymbols decodes a list of symbol records. Files ending in .yaml or .yml are read as
// YAML, everything else as JSON.
func ParseSymbols(data []byte, path string) ([]Symbol, error) {
	var symbols []Symbol

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &symbols); err != nil {
			return nil, errors.Errorf("decoding yaml symbols from %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &symbols); err != nil {
			return nil, errors.Errorf("decoding json symbols from %s: %w", path, err)
		}
	}

	return symbols, nil
}

// Load reads the symbol table at path. A missing or malformed file is logged and yields an
// empty table, the caller never sees an error.
func Load(ctx context.Context, fs afero.Fs, path string) *Table {
	logger := zerolog.Ctx(ctx).With().Str("symbol_table", path).Logger()

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		logger.Warn().Err(err).Msg("symbol table not readable, emoji resolution disabled")
		return NewTable(nil)
	}

	symbols, err := ParseSymbols(data, path)
	if err != nil {
		logger.Warn().Err(err).Msg("symbol table malformed, emoji resolution disabled")
		return NewTable(nil)
	}

	for _, s := range symbols {
		if n := graphemes(s.Char); n > 1 {
			logger.Debug().Str("name", s.Name).Str("char", s.Char).Int("graphemes", n).Msg("glyph spans several grapheme clusters")
		}
	}

	table := NewTable(symbols)

	logger.Debug().Int("records", len(symbols)).Int("names", table.Len()).Msg("symbol table loaded")

	return table
}

func graphemes(s string) int {
	n, err := textseg.TokenCount([]byte(s), textseg.ScanGraphemeClusters)
	if err != nil {
		return 0
	}
	return n
}
