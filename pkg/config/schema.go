package config

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
	"gitlab.com/tozd/go/errors"
)

const schemaDialect = "https://json-schema.org/draft/2020-12/schema"

func stringList(description string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "array",
		Description: description,
		Items:       &jsonschema.Schema{Type: "string"},
	}
}

func glyph(description string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Description: description,
		MinLength:   jsonschema.Ptr(1),
	}
}

// JSONSchema describes the YAML and JSON form of Config.
func JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Schema:      schemaDialect,
		Title:       "mdprogress configuration",
		Type:        "object",
		Description: "Loaded from .mdprogress.hcl, .mdprogress.yaml or .mdprogress.yml.",
		Properties: map[string]*jsonschema.Schema{
			"languages": stringList(`Language ids handled by the language server. Defaults to ["markdown"].`),
			"include":   stringList(`Doublestar globs of document paths handled regardless of language id. Defaults to ["**/*.md", "**/*.markdown"].`),
			"checklist": {
				Type:        "object",
				Description: "Progress bar appearance.",
				Properties: map[string]*jsonschema.Schema{
					"bar_size": {
						Type:        "integer",
						Description: "Number of glyphs in a progress bar. Defaults to 10.",
						Minimum:     jsonschema.Ptr(float64(MinBarSize)),
						Maximum:     jsonschema.Ptr(float64(MaxBarSize)),
					},
					"filled_glyph": glyph(`Glyph for completed cells. Defaults to "█".`),
					"empty_glyph":  glyph(`Glyph for open cells. Defaults to "░".`),
					"bar_marker":   glyph(`Tag replaced by a rendered bar. Defaults to "[progress_bar]".`),
				},
				AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
			},
			"emoji": {
				Type:        "object",
				Description: "Resolution of :name: tokens while typing.",
				Properties: map[string]*jsonschema.Schema{
					"enabled":      {Type: "boolean", Description: "Defaults to true."},
					"symbol_table": {Type: "string", Description: "Path of the JSON or YAML symbol table. Defaults to data/emoji.json next to the executable."},
				},
				AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
			},
		},
		AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
	}
}

// MarshalJSONSchema renders JSONSchema as indented JSON.
func MarshalJSONSchema() ([]byte, error) {
	out, err := json.MarshalIndent(JSONSchema(), "", "  ")
	if err != nil {
		return nil, errors.Errorf("marshalling config schema: %w", err)
	}
	return out, nil
}
