package emoji_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/walteh/mdprogress/pkg/emoji"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "grinning_face", want: "grinning face"},
		{in: "Grinning Face", want: "grinning face"},
		{in: "  grinning \t face  ", want: "grinning face"},
		{in: "__grinning__face__", want: "grinning face"},
		{in: "+1", want: "+1"},
		{in: "", want: ""},
		{in: "___", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, emoji.NormalizeName(tt.in))
		})
	}
}

func TestNewTable(t *testing.T) {
	table := emoji.NewTable([]emoji.Symbol{
		{Name: "grinning face", Char: "😀"},
		{Name: "Grinning_Face", Char: "😃"},
		{Name: "", Char: "❓"},
		{Name: "blank", Char: ""},
		{Name: "red heart", Char: "❤️"},
	})

	assert.Equal(t, 2, table.Len())

	glyph, ok := table.Lookup("grinning_face")
	assert.True(t, ok)
	assert.Equal(t, "😀", glyph, "first record wins")

	glyph, ok = table.Lookup("RED_HEART")
	assert.True(t, ok)
	assert.Equal(t, "❤️", glyph)

	_, ok = table.Lookup("blank")
	assert.False(t, ok)
}

func TestNilTable(t *testing.T) {
	var table *emoji.Table

	_, ok := table.Lookup("anything")
	assert.False(t, ok)
	assert.Equal(t, 0, table.Len())
}
