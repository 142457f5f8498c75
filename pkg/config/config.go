package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apparentlymart/go-textseg/v13/textseg"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/walteh/mdprogress/pkg/checklist"
)

const (
	MinBarSize = 1
	MaxBarSize = 100
)

// 📝 Files looked up in the working directory, in order
var DiscoveryNames = []string{".mdprogress.hcl", ".mdprogress.yaml", ".mdprogress.yml"}

// 📝 Config file structure
type Config struct {
	// 🔤 Language ids handled by the server
	Languages []string `json:"languages,omitempty" hcl:"languages,optional" yaml:"languages,omitempty"`
	// 📂 Globs of document paths handled regardless of language id
	Include []string `json:"include,omitempty" hcl:"include,optional" yaml:"include,omitempty"`

	Checklist *ChecklistBlock `json:"checklist,omitempty" hcl:"checklist,block" yaml:"checklist,omitempty"`
	Emoji     *EmojiBlock     `json:"emoji,omitempty" hcl:"emoji,block" yaml:"emoji,omitempty"`
}

// 📊 Progress bar appearance
type ChecklistBlock struct {
	BarSize     *int   `json:"bar_size,omitempty" hcl:"bar_size,optional" yaml:"bar_size,omitempty"`
	FilledGlyph string `json:"filled_glyph,omitempty" hcl:"filled_glyph,optional" yaml:"filled_glyph,omitempty"`
	EmptyGlyph  string `json:"empty_glyph,omitempty" hcl:"empty_glyph,optional" yaml:"empty_glyph,omitempty"`
	BarMarker   string `json:"bar_marker,omitempty" hcl:"bar_marker,optional" yaml:"bar_marker,omitempty"`
}

// 😀 Emoji resolution
type EmojiBlock struct {
	Enabled     *bool  `json:"enabled,omitempty" hcl:"enabled,optional" yaml:"enabled,omitempty"`
	SymbolTable string `json:"symbol_table,omitempty" hcl:"symbol_table,optional" yaml:"symbol_table,omitempty"`
}

func Default() *Config {
	return &Config{
		Languages: []string{"markdown"},
		Include:   []string{"**/*.md", "**/*.markdown"},
	}
}

// BarStyle returns the checklist style with defaults for every unset field.
func (me *Config) BarStyle() checklist.BarStyle {
	style := checklist.DefaultBarStyle()
	if me == nil || me.Checklist == nil {
		return style
	}
	if me.Checklist.BarSize != nil {
		style.Size = *me.Checklist.BarSize
	}
	if me.Checklist.FilledGlyph != "" {
		style.Filled = me.Checklist.FilledGlyph
	}
	if me.Checklist.EmptyGlyph != "" {
		style.Empty = me.Checklist.EmptyGlyph
	}
	if me.Checklist.BarMarker != "" {
		style.Marker = me.Checklist.BarMarker
	}
	return style
}

func (me *Config) EmojiEnabled() bool {
	if me == nil || me.Emoji == nil || me.Emoji.Enabled == nil {
		return true
	}
	return *me.Emoji.Enabled
}

// SymbolTable returns the configured table path, or "" when the default location applies.
func (me *Config) SymbolTable() string {
	if me == nil || me.Emoji == nil {
		return ""
	}
	return me.Emoji.SymbolTable
}

// SymbolTablePath resolves a relative symbol table against the directory of the config file it
// came from.
func (me *Config) SymbolTablePath(configPath string) string {
	path := me.SymbolTable()
	if path == "" || filepath.IsAbs(path) || configPath == "" {
		return path
	}
	return filepath.Join(filepath.Dir(configPath), path)
}

// HandlesLanguage reports whether documents with languageID are processed.
func (me *Config) HandlesLanguage(languageID string) bool {
	for _, l := range me.Languages {
		if strings.EqualFold(l, languageID) {
			return true
		}
	}
	return false
}

// Matches reports whether the slash separated path matches one of the include globs. A leading
// "/" is ignored so absolute document paths match relative globs.
func (me *Config) Matches(path string) bool {
	path = strings.TrimPrefix(filepath.ToSlash(path), "/")
	for _, pattern := range me.Include {
		if ok, _ := doublestar.Match(strings.TrimPrefix(pattern, "/"), path); ok {
			return true
		}
	}
	return false
}

// Validate checks ranges and glyph shapes.
func (me *Config) Validate() error {
	for _, pattern := range me.Include {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid include glob %q", pattern)
		}
	}

	if me.Checklist == nil {
		return nil
	}

	if size := me.Checklist.BarSize; size != nil && (*size < MinBarSize || *size > MaxBarSize) {
		return errors.Errorf("checklist.bar_size must be between %d and %d, got %d", MinBarSize, MaxBarSize, *size)
	}

	for _, field := range []struct{ name, glyph string }{
		{"filled_glyph", me.Checklist.FilledGlyph},
		{"empty_glyph", me.Checklist.EmptyGlyph},
	} {
		name, glyph := field.name, field.glyph
		if glyph == "" {
			continue
		}
		n, err := textseg.TokenCount([]byte(glyph), textseg.ScanGraphemeClusters)
		if err != nil {
			return errors.Errorf("segmenting checklist.%s: %w", name, err)
		}
		if n != 1 {
			return errors.Errorf("checklist.%s must be a single character, %q has %d", name, glyph, n)
		}
	}

	if me.Checklist.FilledGlyph != "" && me.Checklist.FilledGlyph == me.Checklist.EmptyGlyph {
		return errors.Errorf("checklist.filled_glyph and checklist.empty_glyph must differ")
	}

	if strings.TrimSpace(me.Checklist.BarMarker) == "" && me.Checklist.BarMarker != "" {
		return errors.Errorf("checklist.bar_marker must not be blank")
	}

	return nil
}

// 📝 Load config from file (supports YAML and HCL)
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data, path)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating %s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes data, choosing the format from the file extension, and fills defaults for the
// top level lists left out.
func Parse(data []byte, path string) (*Config, error) {
	var cfg Config

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.Errorf("parsing YAML: %w", err)
		}
	} else {
		parser := hclparse.NewParser()
		hclFile, diags := parser.ParseHCL(data, path)
		if diags.HasErrors() {
			return nil, errors.Errorf("parsing HCL: %s", diags.Error())
		}

		diags = gohcl.DecodeBody(hclFile.Body, evalContext(), &cfg)
		if diags.HasErrors() {
			return nil, errors.Errorf("decoding HCL: %s", diags.Error())
		}
	}

	def := Default()
	if cfg.Languages == nil {
		cfg.Languages = def.Languages
	}
	if cfg.Include == nil {
		cfg.Include = def.Include
	}

	return &cfg, nil
}

// evalContext exposes the process environment as env.NAME inside HCL expressions.
func evalContext() *hcl.EvalContext {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !hclsyntax.ValidIdentifier(name) {
			continue
		}
		vars[name] = cty.StringVal(value)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}

// Discover looks for a config file in dir. It returns the defaults and an empty path when
// there is none.
func Discover(fs afero.Fs, dir string) (*Config, string, error) {
	for _, name := range DiscoveryNames {
		path := filepath.Join(dir, name)
		ok, err := afero.Exists(fs, path)
		if err != nil {
			return nil, "", errors.Errorf("checking for %s: %w", path, err)
		}
		if !ok {
			continue
		}
		cfg, err := Load(fs, path)
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}

	return Default(), "", nil
}

// Resolve loads path when set and falls back to discovery in dir.
func Resolve(fs afero.Fs, path, dir string) (*Config, string, error) {
	if path != "" {
		cfg, err := Load(fs, path)
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}
	return Discover(fs, dir)
}
