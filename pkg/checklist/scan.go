package checklist

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const taskPrefix = "- ["

// Task is a checkbox line inside a group.
type Task struct {
	Line    int
	Mark    rune
	Checked bool
}

// Group is a header and the contiguous task region that follows it.
type Group struct {
	Header Header

	// Start and End bound the task region as a half-open line range.
	Start int
	End   int

	Tasks []Task

	// Bar is the line index of the progress bar, or -1.
	Bar int
}

func (me Group) Total() int {
	return len(me.Tasks)
}

func (me Group) Done() int {
	n := 0
	for _, t := range me.Tasks {
		if t.Checked {
			n++
		}
	}
	return n
}

// Lines splits text on "\n" and drops one trailing "\r" per line.
func Lines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func trim(line string) string {
	return strings.TrimFunc(line, unicode.IsSpace)
}

// IsTask reports whether the trimmed line starts a checkbox item. A partially typed
// "- [" still counts.
func IsTask(line string) bool {
	return strings.HasPrefix(trim(line), taskPrefix)
}

// IsChecked reports whether line is a task marked "[x]" or "[X]".
func IsChecked(line string) bool {
	mark, ok := taskMark(trim(line))
	return ok && (mark == 'x' || mark == 'X')
}

func taskMark(trimmed string) (rune, bool) {
	rest, found := strings.CutPrefix(trimmed, taskPrefix)
	if !found {
		return 0, false
	}
	mark, size := utf8.DecodeRuneInString(rest)
	if mark == utf8.RuneError || !strings.HasPrefix(rest[size:], "]") {
		return 0, false
	}
	return mark, true
}

// Scan finds every header in lines along with its task region. The region ends at the first
// blank line, the first line that is itself a header, or the end of the document. Regions are
// disjoint.
func Scan(lines []string, style BarStyle) []Group {
	var groups []Group

	for i, line := range lines {
		header, ok := ParseHeader(line)
		if !ok {
			continue
		}
		header.Line = i

		group := Group{Header: header, Start: i + 1, Bar: -1}

		j := i + 1
		for ; j < len(lines); j++ {
			// any line that starts a group ends this one, so regions never share a line
			trimmed := trim(lines[j])
			if trimmed == "" || IsHeader(lines[j]) {
				break
			}

			if strings.HasPrefix(trimmed, taskPrefix) {
				mark, _ := taskMark(trimmed)
				group.Tasks = append(group.Tasks, Task{
					Line:    j,
					Mark:    mark,
					Checked: mark == 'x' || mark == 'X',
				})
				continue
			}

			if group.Bar < 0 && style.IsBarLine(lines[j]) {
				group.Bar = j
			}
		}
		group.End = j

		groups = append(groups, group)
	}

	return groups
}
