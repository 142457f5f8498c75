package position

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

// Place is a zero-based line and a column counted in UTF-16 code units, the way editors
// address text.
type Place struct {
	Line      int
	Character int
}

type Range struct {
	Start Place
	End   Place
}

// RawPosition represents a position in the source text
type RawPosition struct {
	// Offset is the byte offset in the source text
	Offset int
	// Text is the actual text at this position
	Text string
}

func (p *RawPosition) ID() string {
	return fmt.Sprintf("%s@%d", p.Text, p.Offset)
}

func NewBasicPosition(text string, offset int) RawPosition {
	return RawPosition{Text: text, Offset: offset}
}

// NewRawPositionFromLineAndColumn converts an editor place into a byte offset of fileText.
// Lines past the end clamp to the end of the text and columns past the end of a line clamp to
// the line end, "\r" excluded.
func NewRawPositionFromLineAndColumn(line, col int, text, fileText string) RawPosition {
	offset := 0
	for i := 0; i < line; i++ {
		next := strings.IndexByte(fileText[offset:], '\n')
		if next < 0 {
			return RawPosition{Text: text, Offset: len(fileText)}
		}
		offset += next + 1
	}

	lineText := fileText[offset:]
	if end := strings.IndexByte(lineText, '\n'); end >= 0 {
		lineText = lineText[:end]
	}
	lineText = strings.TrimSuffix(lineText, "\r")

	return RawPosition{Text: text, Offset: offset + ByteOffset(lineText, col)}
}

// GetLineAndColumn returns the zero-based line and UTF-16 column of the position.
func (p RawPosition) GetLineAndColumn(text string) (line, col int) {
	offset := min(max(p.Offset, 0), len(text))

	lineStart := strings.LastIndexByte(text[:offset], '\n') + 1
	line = strings.Count(text[:lineStart], "\n")

	return line, UTF16Len(text[lineStart:offset])
}

func (p RawPosition) String() string {
	return fmt.Sprintf("%s@%d", p.Text, p.Offset)
}

// UTF16Len counts the UTF-16 code units needed to encode s.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		n += runeUnits(r)
	}
	return n
}

// ByteOffset returns the byte index in line that corresponds to a UTF-16 column. A column that
// lands inside a surrogate pair rounds up to the end of the rune.
func ByteOffset(line string, col int) int {
	if col <= 0 {
		return 0
	}

	units := 0
	for i, r := range line {
		if units >= col {
			return i
		}
		units += runeUnits(r)
	}

	return len(line)
}

// After returns the place right behind text when it is inserted at start.
func After(start Place, text string) Place {
	newlines := strings.Count(text, "\n")
	if newlines == 0 {
		return Place{Line: start.Line, Character: start.Character + UTF16Len(text)}
	}

	last := text[strings.LastIndexByte(text, '\n')+1:]
	return Place{Line: start.Line + newlines, Character: UTF16Len(last)}
}

// IsValidRange reports whether r starts no later than it ends.
func IsValidRange(r Range) bool {
	if r.Start.Line != r.End.Line {
		return r.Start.Line < r.End.Line
	}
	return r.Start.Character <= r.End.Character
}

func runeUnits(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}
