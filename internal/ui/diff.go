package ui

import (
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

var (
	addedLine   = color.New(color.FgGreen)
	removedLine = color.New(color.FgRed)
	hunkLine    = color.New(color.FgCyan)
	headerLine  = color.New(color.Bold)
)

// RenderDiff returns a unified diff of before and after, or "" when they are equal.
func RenderDiff(path string, before, after []byte, colored bool) string {
	if string(before) == string(after) {
		return ""
	}
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  3,
	})
	if err != nil || !colored {
		return text
	}

	var b strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			b.WriteString(headerLine.Sprint(line))
		case strings.HasPrefix(line, "@@"):
			b.WriteString(hunkLine.Sprint(line))
		case strings.HasPrefix(line, "+"):
			b.WriteString(addedLine.Sprint(line))
		case strings.HasPrefix(line, "-"):
			b.WriteString(removedLine.Sprint(line))
		default:
			b.WriteString(line)
		}
	}
	return b.String()
}
