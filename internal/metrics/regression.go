package metrics

import (
	"fmt"
	"math"
	"strings"

	"github.com/spboyer/versus/internal/models"
)

// MAPEDenominator selects what each absolute error is divided by in MAPE.
type MAPEDenominator string

const (
	// DenominatorTruth divides each model's error by the truth value.
	DenominatorTruth MAPEDenominator = "truth"

	// DenominatorModelA divides both models' errors by model A's prediction.
	// Kept for compatibility with results produced by earlier tooling.
	DenominatorModelA MAPEDenominator = "model-a"
)

// ParseMAPEDenominator converts a config or flag value into a MAPEDenominator.
// The empty string maps to DenominatorTruth.
func ParseMAPEDenominator(s string) (MAPEDenominator, error) {
	switch MAPEDenominator(strings.ToLower(strings.TrimSpace(s))) {
	case "", DenominatorTruth:
		return DenominatorTruth, nil
	case DenominatorModelA:
		return DenominatorModelA, nil
	default:
		return "", fmt.Errorf("unknown MAPE denominator %q: must be %s or %s", s, DenominatorTruth, DenominatorModelA)
	}
}

// MAE returns the mean absolute error of each model. Empty input yields NaN.
func MAE(rows []models.RegressionRow) (a, b float64) {
	return meanErrors(rows, func(r models.RegressionRow) (float64, float64) {
		return math.Abs(r.Truth - r.PredA), math.Abs(r.Truth - r.PredB)
	})
}

// MSE returns the mean squared error of each model. Empty input yields NaN.
func MSE(rows []models.RegressionRow) (a, b float64) {
	return meanErrors(rows, func(r models.RegressionRow) (float64, float64) {
		da, db := r.Truth-r.PredA, r.Truth-r.PredB
		return da * da, db * db
	})
}

// MAPE returns the mean absolute percentage error of each model, in percent.
// A zero denominator produces ±Inf or NaN; empty input yields NaN.
func MAPE(rows []models.RegressionRow, denom MAPEDenominator) (a, b float64) {
	return meanErrors(rows, func(r models.RegressionRow) (float64, float64) {
		da, db := r.Truth, r.Truth
		if denom == DenominatorModelA {
			da, db = r.PredA, r.PredA
		}
		return math.Abs(r.Truth-r.PredA) / da * 100, math.Abs(r.Truth-r.PredB) / db * 100
	})
}

func meanErrors(rows []models.RegressionRow, perRow func(models.RegressionRow) (float64, float64)) (float64, float64) {
	ea := make([]float64, 0, len(rows))
	eb := make([]float64, 0, len(rows))
	for _, r := range rows {
		a, b := perRow(r)
		ea = append(ea, a)
		eb = append(eb, b)
	}
	return Mean(ea), Mean(eb)
}
