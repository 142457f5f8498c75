package emoji

import (
	"regexp"
	"strings"

	"github.com/walteh/mdprogress/pkg/position"
)

var tokenPattern = regexp.MustCompile(`:([A-Za-z0-9_+\-]+):`)

// Replacement swaps a ":name:" token on one line for its glyph.
type Replacement struct {
	Line int

	// Start and End are byte offsets into the line.
	Start int
	End   int

	// StartUTF16 and EndUTF16 are the same span in editor columns.
	StartUTF16 int
	EndUTF16   int

	Text string
}

// Apply returns line with the token replaced.
func (me Replacement) Apply(line string) string {
	return line[:me.Start] + me.Text + line[me.End:]
}

// TriggersResolution is the cheap check run on inserted text before a line is searched.
func TriggersResolution(inserted string) bool {
	return strings.Contains(inserted, ":")
}

// Resolve finds the leftmost ":name:" token on line and looks it up in table. Unknown names
// and lines without a token resolve to nothing.
func Resolve(line string, lineIndex int, table *Table) (Replacement, bool) {
	loc := tokenPattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return Replacement{}, false
	}

	glyph, ok := table.Lookup(line[loc[2]:loc[3]])
	if !ok {
		return Replacement{}, false
	}

	return Replacement{
		Line:       lineIndex,
		Start:      loc[0],
		End:        loc[1],
		StartUTF16: position.UTF16Len(line[:loc[0]]),
		EndUTF16:   position.UTF16Len(line[:loc[1]]),
		Text:       glyph,
	}, true
}
