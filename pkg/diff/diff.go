package diff

import (
	"strings"

	"github.com/fatih/color"
	"github.com/k0kubun/pp/v3"
	"github.com/kylelemons/godebug/diff"
)

// DiffExportedOnly pretty prints both values and returns their line diff, or "" when they
// print the same.
func DiffExportedOnly[T any](want T, got T) string {
	printer := pp.New()
	printer.SetExportedOnly(true)
	printer.SetColoringEnabled(false)
	abc := diff.Diff(printer.Sprint(got), printer.Sprint(want))
	if abc == "" {
		return ""
	}
	str := "\n\n"
	str += "to convert ACTUAL ⏩️ EXPECTED:\n\n"
	str += "add:    ➕\n"
	str += "remove: ➖\n"
	str += "\n"
	str += strings.ReplaceAll(strings.ReplaceAll(abc, "\n-", "\n➖"), "\n+", "\n➕")

	return str
}

// Lines returns a unified style diff of before and after with a header naming the file. Only
// changed lines and their immediate neighbours are kept.
func Lines(name, before, after string, colorize bool) string {
	if before == after {
		return ""
	}

	chunks := diff.DiffChunks(splitLines(before), splitLines(after))

	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)
	header := color.New(color.Bold)
	if !colorize {
		added.DisableColor()
		removed.DisableColor()
		header.DisableColor()
	}

	var b strings.Builder
	b.WriteString(header.Sprintf("--- %s\n+++ %s\n", name, name))

	for i, c := range chunks {
		if len(c.Added) == 0 && len(c.Deleted) == 0 {
			b.WriteString(surrounding(c.Equal, i == 0, i == len(chunks)-1))
			continue
		}
		for _, l := range c.Deleted {
			b.WriteString(removed.Sprint("-"+l) + "\n")
		}
		for _, l := range c.Added {
			b.WriteString(added.Sprint("+"+l) + "\n")
		}
		b.WriteString(surrounding(c.Equal, false, i == len(chunks)-1))
	}

	return b.String()
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// surrounding keeps one line of surrounding text on each side of a change.
func surrounding(equal []string, first, last bool) string {
	if len(equal) == 0 {
		return ""
	}

	var keep []string
	switch {
	case first && last:
		return ""
	case first:
		keep = equal[len(equal)-1:]
	case last:
		keep = equal[:1]
	case len(equal) <= 2:
		keep = equal
	default:
		keep = []string{equal[0], "...", equal[len(equal)-1]}
	}

	var b strings.Builder
	for _, l := range keep {
		if l == "..." {
			b.WriteString("...\n")
			continue
		}
		b.WriteString(" " + l + "\n")
	}
	return b.String()
}
