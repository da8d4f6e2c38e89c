package reporting

import (
	"fmt"
	"strings"

	"github.com/spboyer/versus/internal/models"
)

// FormatMarkdownReport formats a report as markdown, suitable for a pull request
// comment or a CI job summary.
func FormatMarkdownReport(report *models.Report, gates []GateResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Versus Results: %s\n\n", report.Mode)

	if len(gates) > 0 {
		status := "✅ Passed"
		if len(FailedGates(gates)) > 0 {
			status = "❌ Failed"
		}
		fmt.Fprintf(&b, "**Status:** %s\n\n", status)
	}

	fmt.Fprintf(&b, "- **Input:** %s\n", header(report))
	fmt.Fprintf(&b, "- **Report ID:** `%s`\n\n", report.ReportID())

	b.WriteString("| Metric | Model A | Model B | Better |\n")
	b.WriteString("|--------|---------|---------|--------|\n")
	for _, r := range comparisonRows(report) {
		better := r.better
		if better == "" {
			better = "-"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", r.label, r.a, r.b, better)
	}

	b.WriteString("\n### Interpretation\n\n")
	for _, line := range strings.Split(strings.TrimSpace(FormatInterpretation(report)), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "===") {
			continue
		}
		fmt.Fprintf(&b, "- %s\n", line)
	}

	if len(gates) > 0 {
		b.WriteString("\n### Quality Gates\n\n")
		b.WriteString("| Gate | Value | Limit | Result |\n")
		b.WriteString("|------|-------|-------|--------|\n")
		for _, g := range gates {
			icon := "✅"
			if !g.Passed {
				icon = "❌"
			}
			fmt.Fprintf(&b, "| %s | %.4f | %s %.4f | %s |\n", g.Name(), g.Value, g.Bound, g.Limit, icon)
		}
	}

	return b.String()
}
