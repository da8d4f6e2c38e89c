package reporting

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spboyer/versus/internal/models"
)

// row is one line of a metric comparison: a label and one cell per model.
type row struct {
	label string
	a, b  string
	// better is "A", "B", "=" or "" when the metric has no preferred direction.
	better string
}

// comparisonRows lays out a report as metric rows shared by the table and
// markdown renderers.
func comparisonRows(report *models.Report) []row {
	switch {
	case report.Classification != nil:
		m := report.Classification.Models
		a, b := m.A, m.B
		return []row{
			countRow("True positives", a.Matrix.TP, b.Matrix.TP),
			countRow("False positives", a.Matrix.FP, b.Matrix.FP),
			countRow("True negatives", a.Matrix.TN, b.Matrix.TN),
			countRow("False negatives", a.Matrix.FN, b.Matrix.FN),
			rateRow("Precision", a.Summary.Precision, b.Summary.Precision, true),
			rateRow("Recall", a.Summary.Recall, b.Summary.Recall, true),
			rateRow("Specificity", a.Summary.Specificity, b.Summary.Specificity, true),
			rateRow("F1", a.Summary.F1, b.Summary.F1, true),
			rateRow("Accuracy", a.Summary.Accuracy, b.Summary.Accuracy, true),
			rateRow("AUC", float64(a.AUC), float64(b.AUC), true),
		}
	case report.Regression != nil:
		m := report.Regression.Models
		return []row{
			rateRow("MAE", float64(m.A.MAE), float64(m.B.MAE), false),
			rateRow("MAPE (%)", float64(m.A.MAPE), float64(m.B.MAPE), false),
			rateRow("MSE", float64(m.A.MSE), float64(m.B.MSE), false),
		}
	}
	return nil
}

func countRow(label string, a, b int) row {
	return row{label: label, a: fmt.Sprint(a), b: fmt.Sprint(b)}
}

func rateRow(label string, a, b float64, higherIsBetter bool) row {
	better := ""
	switch Winner(a, b, higherIsBetter) {
	case WinnerA:
		better = "A"
	case WinnerB:
		better = "B"
	case WinnerTie:
		better = "="
	}
	return row{label: label, a: formatValue(a), b: formatValue(b), better: better}
}

func formatValue(v float64) string {
	return fmt.Sprintf("%.4f", v)
}

// WriteTable renders a report as an aligned plain-text table.
func WriteTable(w io.Writer, report *models.Report, gates []GateResult) error {
	rows := comparisonRows(report)

	labelWidth := runewidth.StringWidth("Metric")
	colWidth := runewidth.StringWidth("Model A")
	for _, r := range rows {
		labelWidth = max(labelWidth, runewidth.StringWidth(r.label))
		colWidth = max(colWidth, runewidth.StringWidth(r.a), runewidth.StringWidth(r.b))
	}
	labelWidth += 2
	colWidth += 2
	totalWidth := labelWidth + 2*colWidth + len("Better")

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", header(report))
	fmt.Fprintf(&b, "%s%s%s%s\n",
		padRight("Metric", labelWidth),
		padRight("Model A", colWidth),
		padRight("Model B", colWidth),
		"Better")
	fmt.Fprintf(&b, "%s\n", strings.Repeat("─", totalWidth))
	for _, r := range rows {
		fmt.Fprintf(&b, "%s%s%s%s\n",
			padRight(r.label, labelWidth),
			padRight(r.a, colWidth),
			padRight(r.b, colWidth),
			r.better)
	}

	if len(gates) > 0 {
		b.WriteString("\nQuality gates:\n")
		for _, g := range gates {
			icon := "✓"
			if !g.Passed {
				icon = "✗"
			}
			fmt.Fprintf(&b, "  %s %s: %s\n", icon, g.Name(), g.Message())
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// header summarizes what a report was computed from.
func header(report *models.Report) string {
	var parts []string
	if src := report.SourceName(); src != "" {
		parts = append(parts, src)
	}
	switch {
	case report.Classification != nil:
		c := report.Classification
		parts = append(parts,
			fmt.Sprintf("classification, %d rows", c.Rows),
			fmt.Sprintf("positive=%q negative=%q", c.Labels.Positive, c.Labels.Negative),
			fmt.Sprintf("rule=%s boundary=%s correctness=%s", c.Conventions.PositiveRule, c.Conventions.Boundary, c.Conventions.Correctness))
	case report.Regression != nil:
		r := report.Regression
		parts = append(parts,
			fmt.Sprintf("regression, %d rows", r.Rows),
			fmt.Sprintf("mape denominator=%s", r.Conventions.MAPEDenominator))
	}
	return strings.Join(parts, " | ")
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
