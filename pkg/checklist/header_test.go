package checklist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/mdprogress/pkg/checklist"
)

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   checklist.Header
		wantOk bool
	}{
		{
			name:   "counter with numbers",
			line:   "Section (0/0)",
			want:   checklist.Header{Prefix: "Section ", HasCounts: true},
			wantOk: true,
		},
		{
			name:   "counter with values and suffix",
			line:   "## Release (12/7) soon",
			want:   checklist.Header{Prefix: "## Release ", Suffix: " soon", HasCounts: true, Done: 12, Total: 7},
			wantOk: true,
		},
		{
			name:   "bare separator with spaces",
			line:   "Ideas ( / ) later",
			want:   checklist.Header{Prefix: "Ideas ", Suffix: " later"},
			wantOk: true,
		},
		{
			name:   "whitespace inside the parens",
			line:   "Todo ( 3/4 )",
			want:   checklist.Header{Prefix: "Todo ", HasCounts: true, Done: 3, Total: 4},
			wantOk: true,
		},
		{
			name:   "last counter wins",
			line:   "x (1/2) y (3/4)",
			want:   checklist.Header{Prefix: "x (1/2) y ", HasCounts: true, Done: 3, Total: 4},
			wantOk: true,
		},
		{
			name:   "trailing non-counter parens stay in the suffix",
			line:   "Fix (bug) list (0/0) (draft)",
			want:   checklist.Header{Prefix: "Fix (bug) list ", Suffix: " (draft)", HasCounts: true},
			wantOk: true,
		},
		{
			name:   "leading whitespace is a prefix",
			line:   " (1/2)",
			want:   checklist.Header{Prefix: " ", HasCounts: true, Done: 1, Total: 2},
			wantOk: true,
		},
		{
			name: "empty prefix",
			line: "(1/2) tail",
		},
		{
			name: "spaces around the slash",
			line: "Todo (3 / 4)",
		},
		{
			name: "letters in the counter",
			line: "Todo (a/b)",
		},
		{
			name: "unclosed counter",
			line: "Todo (1/2",
		},
		{
			name: "plain line",
			line: "just some text",
		},
		{
			name: "empty line",
			line: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := checklist.ParseHeader(tt.line)
			require.Equal(t, tt.wantOk, ok)
			if !tt.wantOk {
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHeaderRender(t *testing.T) {
	header, ok := checklist.ParseHeader("**Sprint** (/) _wip_")
	require.True(t, ok)

	assert.Equal(t, "**Sprint** (2/3) _wip_", header.Render(2, 3))
}

func TestTaskMarkers(t *testing.T) {
	tests := []struct {
		line        string
		wantTask    bool
		wantChecked bool
	}{
		{line: "- [x] done", wantTask: true, wantChecked: true},
		{line: "   - [X] done loud", wantTask: true, wantChecked: true},
		{line: "- [ ] open", wantTask: true},
		{line: "- [~] custom", wantTask: true},
		{line: "- [", wantTask: true},
		{line: "- [xx] odd", wantTask: true},
		{line: "* [x] other bullet"},
		{line: "-[x] no space"},
		{line: "text - [x] inline"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.wantTask, checklist.IsTask(tt.line))
			assert.Equal(t, tt.wantChecked, checklist.IsChecked(tt.line))
		})
	}
}
