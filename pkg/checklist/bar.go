package checklist

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultBarSize     = 10
	DefaultFilledGlyph = "█"
	DefaultEmptyGlyph  = "░"
	DefaultBarMarker   = "[progress_bar]"
)

// BarStyle controls how progress bars are found and drawn.
type BarStyle struct {
	Size   int
	Filled string
	Empty  string
	Marker string
}

func DefaultBarStyle() BarStyle {
	return BarStyle{
		Size:   DefaultBarSize,
		Filled: DefaultFilledGlyph,
		Empty:  DefaultEmptyGlyph,
		Marker: DefaultBarMarker,
	}
}

// withDefaults fills zero fields so a partially configured style still renders.
func (me BarStyle) withDefaults() BarStyle {
	def := DefaultBarStyle()
	if me.Size <= 0 {
		me.Size = def.Size
	}
	if me.Filled == "" {
		me.Filled = def.Filled
	}
	if me.Empty == "" {
		me.Empty = def.Empty
	}
	if me.Marker == "" {
		me.Marker = def.Marker
	}
	return me
}

// IsBarLine reports whether line holds the marker tag or an already rendered bar.
func (me BarStyle) IsBarLine(line string) bool {
	me = me.withDefaults()
	return strings.Contains(line, me.Marker) ||
		strings.Contains(line, me.Filled) ||
		strings.Contains(line, me.Empty)
}

// Render draws the bar for done out of total. total must be positive.
func (me BarStyle) Render(done, total int) string {
	me = me.withDefaults()

	ratio := float64(done) / float64(total)

	filled := int(math.Round(float64(me.Size) * ratio))
	filled = max(0, min(filled, me.Size))
	empty := me.Size - filled

	percent := int(math.Round(ratio * 100))

	return strings.Repeat(me.Filled, filled) + strings.Repeat(me.Empty, empty) + " " + strconv.Itoa(percent) + "%"
}

// GenerateProgressBar renders with the default glyphs at the given size.
func GenerateProgressBar(done, total, size int) string {
	style := DefaultBarStyle()
	style.Size = size
	return style.Render(done, total)
}
