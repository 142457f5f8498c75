package checklist_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/walteh/mdprogress/pkg/checklist"
)

func TestGenerateProgressBar(t *testing.T) {
	tests := []struct {
		done, total, size int
		want              string
	}{
		{done: 3, total: 4, size: 10, want: "████████░░ 75%"},
		{done: 0, total: 4, size: 10, want: "░░░░░░░░░░ 0%"},
		{done: 4, total: 4, size: 10, want: "██████████ 100%"},
		{done: 1, total: 3, size: 10, want: "███░░░░░░░ 33%"},
		{done: 2, total: 3, size: 10, want: "███████░░░ 67%"},
		{done: 1, total: 8, size: 10, want: "█░░░░░░░░░ 13%"},
		{done: 1, total: 2, size: 5, want: "███░░ 50%"},
		{done: 1, total: 1, size: 1, want: "█ 100%"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d of %d at %d", tt.done, tt.total, tt.size), func(t *testing.T) {
			assert.Equal(t, tt.want, checklist.GenerateProgressBar(tt.done, tt.total, tt.size))
		})
	}
}

func TestBarStyleRender(t *testing.T) {
	style := checklist.BarStyle{Size: 4, Filled: "#", Empty: "-"}

	assert.Equal(t, "###- 75%", style.Render(3, 4))
	assert.Equal(t, "---- 0%", style.Render(0, 9))
}

func TestBarStyleZeroValueUsesDefaults(t *testing.T) {
	var style checklist.BarStyle

	assert.Equal(t, checklist.GenerateProgressBar(3, 4, checklist.DefaultBarSize), style.Render(3, 4))
	assert.True(t, style.IsBarLine("[progress_bar]"))
}

func TestIsBarLine(t *testing.T) {
	style := checklist.DefaultBarStyle()

	assert.True(t, style.IsBarLine("[progress_bar]"))
	assert.True(t, style.IsBarLine("  progress: [progress_bar] "))
	assert.True(t, style.IsBarLine("██░░ 50%"))
	assert.True(t, style.IsBarLine("░"))
	assert.False(t, style.IsBarLine("plain text"))
	assert.False(t, style.IsBarLine("[progress]"))

	custom := checklist.BarStyle{Marker: "<bar>", Filled: "=", Empty: "."}
	assert.True(t, custom.IsBarLine("<bar>"))
	assert.True(t, custom.IsBarLine("==.. 50%"))
	assert.False(t, custom.IsBarLine("[progress_bar]"))
}
