package emoji

import (
	"strings"
	"unicode"
)

// Symbol is one record of a symbol table file.
type Symbol struct {
	Name string `json:"name" yaml:"name"`
	Char string `json:"char" yaml:"char"`
}

// Table maps normalized names to glyphs. It is never modified after NewTable returns.
type Table struct {
	glyphs map[string]string
}

// NewTable indexes symbols by normalized name. The first record for a name wins and records
// with an empty name or glyph are skipped.
func NewTable(symbols []Symbol) *Table {
	t := &Table{glyphs: make(map[string]string, len(symbols))}

	for _, s := range symbols {
		name := NormalizeName(s.Name)
		if name == "" || s.Char == "" {
			continue
		}
		if _, ok := t.glyphs[name]; ok {
			continue
		}
		t.glyphs[name] = s.Char
	}

	return t
}

func (me *Table) Lookup(name string) (string, bool) {
	if me == nil {
		return "", false
	}
	glyph, ok := me.glyphs[NormalizeName(name)]
	return glyph, ok
}

func (me *Table) Len() int {
	if me == nil {
		return 0
	}
	return len(me.glyphs)
}

// NormalizeName turns "Grinning_Face", "grinning face" and " grinning  face " into the same key.
func NormalizeName(name string) string {
	name = strings.ReplaceAll(name, "_", " ")
	return strings.ToLower(strings.Join(strings.FieldsFunc(name, unicode.IsSpace), " "))
}
