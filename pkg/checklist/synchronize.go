package checklist

import (
	"sort"
	"strings"
)

// LineEdit replaces the full text of one line, line ending excluded.
type LineEdit struct {
	Line int
	Text string
}

type Synchronizer struct {
	style BarStyle
}

func NewSynchronizer(style BarStyle) *Synchronizer {
	return &Synchronizer{style: style.withDefaults()}
}

func (me *Synchronizer) Style() BarStyle {
	return me.style
}

// Synchronize uses the default bar style.
func Synchronize(text string) []LineEdit {
	return NewSynchronizer(DefaultBarStyle()).Synchronize(text)
}

// Synchronize returns the line edits that bring every counter and progress bar in text up to
// date. Groups without tasks are left alone, and lines that are already correct produce no edit,
// so a second pass over the edited text returns nothing.
func (me *Synchronizer) Synchronize(text string) []LineEdit {
	return me.SynchronizeLines(Lines(text))
}

func (me *Synchronizer) SynchronizeLines(lines []string) []LineEdit {
	var edits []LineEdit

	for _, group := range Scan(lines, me.style) {
		total := group.Total()
		if total == 0 {
			continue
		}
		done := group.Done()

		if header := group.Header.Render(done, total); header != lines[group.Header.Line] {
			edits = append(edits, LineEdit{Line: group.Header.Line, Text: header})
		}

		if group.Bar >= 0 {
			if bar := me.style.Render(done, total); bar != lines[group.Bar] {
				edits = append(edits, LineEdit{Line: group.Bar, Text: bar})
			}
		}
	}

	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].Line < edits[j].Line
	})

	return edits
}

// Apply replaces the edited lines of text and keeps every original line ending.
func Apply(text string, edits []LineEdit) string {
	if len(edits) == 0 {
		return text
	}

	byLine := make(map[int]string, len(edits))
	for _, e := range edits {
		byLine[e.Line] = e.Text
	}

	var b strings.Builder
	b.Grow(len(text))

	line := 0
	for {
		raw, rest, more := strings.Cut(text, "\n")

		body, ending := raw, ""
		if more {
			ending = "\n"
		}
		if strings.HasSuffix(body, "\r") {
			body, ending = body[:len(body)-1], "\r"+ending
		}

		if replacement, ok := byLine[line]; ok {
			body = replacement
		}

		b.WriteString(body)
		b.WriteString(ending)

		if !more {
			break
		}
		text = rest
		line++
	}

	return b.String()
}
