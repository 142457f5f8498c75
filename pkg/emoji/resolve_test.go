package emoji_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/mdprogress/pkg/emoji"
)

func testTable() *emoji.Table {
	return emoji.NewTable([]emoji.Symbol{
		{Name: "grinning face", Char: "😀"},
		{Name: "thumbs up", Char: "👍"},
		{Name: "+1", Char: "👍"},
		{Name: "check mark", Char: "✔️"},
	})
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   emoji.Replacement
		wantOk bool
	}{
		{
			name: "known name",
			line: "I feel :grinning_face:",
			want: emoji.Replacement{
				Line: 3, Start: 7, End: 22, StartUTF16: 7, EndUTF16: 22, Text: "😀",
			},
			wantOk: true,
		},
		{
			name: "case and separators are normalized",
			line: ":Thumbs_Up: ok",
			want: emoji.Replacement{
				Line: 3, Start: 0, End: 11, StartUTF16: 0, EndUTF16: 11, Text: "👍",
			},
			wantOk: true,
		},
		{
			name: "repeated underscores collapse to one space",
			line: "so :grinning__face:",
			want: emoji.Replacement{
				Line: 3, Start: 3, End: 19, StartUTF16: 3, EndUTF16: 19, Text: "😀",
			},
			wantOk: true,
		},
		{
			name: "plus sign in name",
			line: "- [x] ship it :+1:",
			want: emoji.Replacement{
				Line: 3, Start: 14, End: 18, StartUTF16: 14, EndUTF16: 18, Text: "👍",
			},
			wantOk: true,
		},
		{
			name: "utf16 columns after an emoji",
			line: "😀 :check_mark:",
			want: emoji.Replacement{
				Line: 3, Start: 5, End: 17, StartUTF16: 3, EndUTF16: 15, Text: "✔️",
			},
			wantOk: true,
		},
		{
			name: "leftmost token only",
			line: ":nope: then :grinning_face:",
		},
		{
			name: "unknown name",
			line: "I feel :unknown_thing:",
		},
		{
			name: "no token",
			line: "time is 10:30",
		},
		{
			name: "space inside the token",
			line: ":grinning face:",
		},
		{
			name: "empty name",
			line: "::",
		},
	}

	table := testTable()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := emoji.Resolve(tt.line, 3, table)
			require.Equal(t, tt.wantOk, ok)
			if !tt.wantOk {
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReplacementApply(t *testing.T) {
	line := "I feel :grinning_face: today"

	rep, ok := emoji.Resolve(line, 0, testTable())
	require.True(t, ok)

	assert.Equal(t, "I feel 😀 today", rep.Apply(line))
}

func TestResolveWithEmptyTable(t *testing.T) {
	_, ok := emoji.Resolve(":grinning_face:", 0, emoji.NewTable(nil))
	assert.False(t, ok)

	_, ok = emoji.Resolve(":grinning_face:", 0, nil)
	assert.False(t, ok)
}

func TestTriggersResolution(t *testing.T) {
	assert.True(t, emoji.TriggersResolution(":"))
	assert.True(t, emoji.TriggersResolution("face:"))
	assert.False(t, emoji.TriggersResolution("face"))
	assert.False(t, emoji.TriggersResolution(""))
}
