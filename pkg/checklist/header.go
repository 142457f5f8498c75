package checklist

import (
	"strconv"
	"strings"
	"unicode"
)

// Header is a line carrying a "(done/total)" counter.
type Header struct {
	Line   int
	Prefix string
	Suffix string

	// HasCounts is false for a bare "(/)" counter.
	HasCounts bool
	Done      int
	Total     int
}

// ParseHeader reports whether line is a checklist header. When a line holds several
// parenthesized groups the last well-formed counter wins, and the prefix before it must not
// be empty.
func ParseHeader(line string) (Header, bool) {
	for open := strings.LastIndexByte(line, '('); open > 0; open = strings.LastIndexByte(line[:open], '(') {
		close := strings.IndexByte(line[open+1:], ')')
		if close < 0 {
			continue
		}
		close += open + 1

		done, total, hasCounts, ok := parseCounter(line[open+1 : close])
		if !ok {
			continue
		}

		return Header{
			Prefix:    line[:open],
			Suffix:    line[close+1:],
			HasCounts: hasCounts,
			Done:      done,
			Total:     total,
		}, true
	}

	return Header{}, false
}

// IsHeader is ParseHeader without the parts.
func IsHeader(line string) bool {
	_, ok := ParseHeader(line)
	return ok
}

// Render returns the header line with its counter set to done/total.
func (me Header) Render(done, total int) string {
	return me.Prefix + "(" + strconv.Itoa(done) + "/" + strconv.Itoa(total) + ")" + me.Suffix
}

func parseCounter(inner string) (done, total int, hasCounts, ok bool) {
	inner = strings.TrimFunc(inner, unicode.IsSpace)

	if inner == "/" {
		return 0, 0, false, true
	}

	left, right, found := strings.Cut(inner, "/")
	if !found || !isDigits(left) || !isDigits(right) {
		return 0, 0, false, false
	}

	// overflowing counters still match, they just read back as zero
	done, _ = strconv.Atoi(left)
	total, _ = strconv.Atoi(right)

	return done, total, true, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
