package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/getlawrence/hooklog/internal/codegen/types"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Underline(true)
)

// RenderSummary returns a formatted summary of a transform run.
func RenderSummary(result *types.RunResult, detailed bool) string {
	if result == nil {
		return ""
	}

	modified := result.Modified()
	failed := result.Failed()
	skipped := 0
	for _, f := range result.Files {
		skipped += len(f.Skipped)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", titleStyle.Render("🪝 hooklog results"))
	b.WriteString(strings.Repeat("=", 18))
	b.WriteString("\n\n")

	summary := []string{
		fmt.Sprintf("📂 Files scanned: %d", len(result.Files)),
		fmt.Sprintf("✏️  Files modified: %d", len(modified)),
		fmt.Sprintf("🪝 Hooks injected: %d", result.Injections()),
	}
	if skipped > 0 {
		summary = append(summary, fmt.Sprintf("⏭️  Annotations skipped: %d", skipped))
	}
	if len(failed) > 0 {
		summary = append(summary, fmt.Sprintf("⚠️  Files failed: %d", len(failed)))
	}
	summary = append(summary, fmt.Sprintf("⏱️  Duration: %s", result.Duration.Round(time.Millisecond)))
	b.WriteString(strings.Join(summary, "\n"))
	b.WriteString("\n")

	if detailed && len(modified) > 0 {
		fmt.Fprintf(&b, "\n%s\n", sectionStyle.Render("Injections:"))
		files := append([]*types.FileResult(nil), modified...)
		sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
		for _, f := range files {
			fmt.Fprintf(&b, "  %s", f.Path)
			if f.Import != types.ImportUnchanged {
				fmt.Fprintf(&b, " (react import %s)", f.Import)
			}
			b.WriteString("\n")
			for _, inj := range f.Injections {
				fmt.Fprintf(&b, "    - %s:%d useEffect [%s] at statement %d\n",
					inj.Function, inj.Line, strings.Join(inj.Variables, ", "), inj.Index)
			}
			for _, s := range f.Skipped {
				fmt.Fprintf(&b, "    - %s:%d skipped (%s)\n", s.Function, s.Line, s.Reason)
			}
		}
	}

	if len(failed) > 0 {
		fmt.Fprintf(&b, "\n%s\n", sectionStyle.Render("Errors:"))
		for _, f := range failed {
			fmt.Fprintf(&b, "  %s: %v\n", f.Path, f.Err)
		}
	}
	return b.String()
}
