package reporting

import (
	"fmt"
	"math"
	"strings"

	"github.com/spboyer/versus/internal/models"
)

// InterpretAUC returns a plain-language label for an area under the ROC curve.
func InterpretAUC(auc float64) string {
	switch {
	case math.IsNaN(auc):
		return "Undefined (one class never occurs at some threshold)"
	case auc >= 0.9:
		return "Excellent (>=0.90)"
	case auc >= 0.8:
		return "Good (0.80-0.90)"
	case auc >= 0.7:
		return "Fair (0.70-0.80)"
	case auc > 0.5:
		return "Weak (0.50-0.70)"
	case auc == 0.5:
		return "No better than chance (0.50)"
	default:
		return "Worse than chance (<0.50)"
	}
}

// Outcomes of Winner.
const (
	WinnerA       = "model A"
	WinnerB       = "model B"
	WinnerTie     = "tie"
	WinnerNeither = "neither"
)

// Winner names the better of two values. When higherIsBetter is false the
// smaller value wins. NaN always loses; equal values tie.
func Winner(a, b float64, higherIsBetter bool) string {
	switch {
	case math.IsNaN(a) && math.IsNaN(b):
		return WinnerNeither
	case math.IsNaN(b):
		return WinnerA
	case math.IsNaN(a):
		return WinnerB
	case a == b:
		return WinnerTie
	case (a > b) == higherIsBetter:
		return WinnerA
	default:
		return WinnerB
	}
}

// CompareMetric explains which model wins one metric,
// e.g. "MAE: model A is better (2.0000 vs 3.5000)".
func CompareMetric(name string, a, b float64, higherIsBetter bool) string {
	switch w := Winner(a, b, higherIsBetter); w {
	case WinnerTie:
		return fmt.Sprintf("%s: both models score %.4f", name, a)
	case WinnerNeither:
		return fmt.Sprintf("%s: undefined for both models", name)
	default:
		return fmt.Sprintf("%s: %s is better (%.4f vs %.4f)", name, w, a, b)
	}
}

// FormatInterpretation produces a plain-language summary of a report.
func FormatInterpretation(report *models.Report) string {
	var b strings.Builder

	b.WriteString("=== Interpretation ===\n\n")

	switch {
	case report.Classification != nil:
		m := report.Classification.Models
		fmt.Fprintf(&b, "Model A AUC: %.4f - %s\n", m.A.AUC, InterpretAUC(float64(m.A.AUC)))
		fmt.Fprintf(&b, "Model B AUC: %.4f - %s\n\n", m.B.AUC, InterpretAUC(float64(m.B.AUC)))
		b.WriteString(CompareMetric("AUC", float64(m.A.AUC), float64(m.B.AUC), true) + "\n")
		b.WriteString(CompareMetric("Accuracy", m.A.Summary.Accuracy, m.B.Summary.Accuracy, true) + "\n")
		b.WriteString(CompareMetric("F1", m.A.Summary.F1, m.B.Summary.F1, true) + "\n")
	case report.Regression != nil:
		m := report.Regression.Models
		b.WriteString(CompareMetric("MAE", float64(m.A.MAE), float64(m.B.MAE), false) + "\n")
		b.WriteString(CompareMetric("MAPE", float64(m.A.MAPE), float64(m.B.MAPE), false) + "\n")
		b.WriteString(CompareMetric("MSE", float64(m.A.MSE), float64(m.B.MSE), false) + "\n")
	}

	return b.String()
}
