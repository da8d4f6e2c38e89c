package metrics

import (
	"fmt"
	"strings"

	"github.com/spboyer/versus/internal/models"
)

// Boundary selects how threshold mode counts a score exactly equal to the threshold.
type Boundary string

const (
	// BoundaryInclusive counts score >= t as predicted positive and everything
	// else as predicted negative. Every row lands in exactly one cell.
	BoundaryInclusive Boundary = "inclusive"

	// BoundaryDoubleCount additionally counts score == t as predicted negative,
	// so such a row lands in one positive-predicted and one negative-predicted cell.
	BoundaryDoubleCount Boundary = "double-count"
)

// ParseBoundary converts a config or flag value into a Boundary.
// The empty string maps to BoundaryInclusive.
func ParseBoundary(s string) (Boundary, error) {
	switch Boundary(strings.ToLower(strings.TrimSpace(s))) {
	case "", BoundaryInclusive:
		return BoundaryInclusive, nil
	case BoundaryDoubleCount:
		return BoundaryDoubleCount, nil
	default:
		return "", fmt.Errorf("unknown boundary %q: must be %s or %s", s, BoundaryInclusive, BoundaryDoubleCount)
	}
}

// model selects one side of a ClassificationRow.
type model int

const (
	modelA model = iota
	modelB
)

func (m model) label(r models.ClassificationRow) string {
	if m == modelA {
		return r.LabelA
	}
	return r.LabelB
}

func (m model) score(r models.ClassificationRow) float64 {
	if m == modelA {
		return r.ScoreA
	}
	return r.ScoreB
}

// cell is a bit set of confusion-matrix cells a single row contributes to.
type cell uint8

const (
	cellTN cell = 1 << iota
	cellFP
	cellFN
	cellTP
)

func add(m models.ConfusionMatrix, c cell) models.ConfusionMatrix {
	if c&cellTN != 0 {
		m.TN++
	}
	if c&cellFP != 0 {
		m.FP++
	}
	if c&cellFN != 0 {
		m.FN++
	}
	if c&cellTP != 0 {
		m.TP++
	}
	return m
}

// tally folds rows into a fresh matrix.
func tally(rows []models.ClassificationRow, classify func(models.ClassificationRow) cell) models.ConfusionMatrix {
	var m models.ConfusionMatrix
	for _, r := range rows {
		m = add(m, classify(r))
	}
	return m
}

// ConfusionMatrices builds the exact-mode matrix of each model: a predicted
// label is compared with the truth label and with the set's positive class.
// Rows whose predicted label is neither class are not counted.
func ConfusionMatrices(set *models.ClassificationSet) (a, b models.ConfusionMatrix) {
	return exactMatrix(set, modelA), exactMatrix(set, modelB)
}

func exactMatrix(set *models.ClassificationSet, m model) models.ConfusionMatrix {
	labels := set.Labels
	return tally(set.Rows, func(r models.ClassificationRow) cell {
		predicted := m.label(r)
		switch {
		case predicted == labels.Positive && predicted == r.Truth:
			return cellTP
		case predicted == labels.Negative && predicted == r.Truth:
			return cellTN
		case predicted == labels.Positive:
			return cellFP
		case predicted == labels.Negative:
			return cellFN
		}
		return 0
	})
}

// Correctness selects what makes a threshold-mode prediction correct.
type Correctness string

const (
	// CorrectnessLabelMatch judges a row by its predicted label: the row is
	// correct when the model's label equals the truth label. The score only
	// decides the predicted side, so a correct row at score >= t is TP and a
	// wrong one FP; below t a correct row is TN and a wrong one FN.
	CorrectnessLabelMatch Correctness = "label-match"

	// CorrectnessClass ignores predicted labels: a row is actually positive
	// when its truth is the set's positive class and predicted positive when
	// its score is at least t.
	CorrectnessClass Correctness = "class"
)

// ParseCorrectness converts a config or flag value into a Correctness.
// The empty string maps to CorrectnessLabelMatch.
func ParseCorrectness(s string) (Correctness, error) {
	switch Correctness(strings.ToLower(strings.TrimSpace(s))) {
	case "", CorrectnessLabelMatch:
		return CorrectnessLabelMatch, nil
	case CorrectnessClass:
		return CorrectnessClass, nil
	default:
		return "", fmt.Errorf("unknown correctness %q: must be %s or %s", s, CorrectnessLabelMatch, CorrectnessClass)
	}
}

// Ties returns the AUC tie order used with c. Label-match curves keep
// threshold order among equal false-positive rates.
func (c Correctness) Ties() TieOrder {
	if c == CorrectnessClass {
		return TiesAscendingTPR
	}
	return TiesThresholdOrder
}

// ThresholdRule bundles the conventions a threshold-mode matrix is built under.
// The zero value is label-match correctness with an inclusive boundary.
type ThresholdRule struct {
	Boundary    Boundary
	Correctness Correctness
}

// ThresholdMatrices builds the threshold-mode matrix of each model at t.
// A score of at least t puts a row on the predicted-positive side; rule
// decides which cell of that side it lands in. A NaN score is never counted.
func ThresholdMatrices(set *models.ClassificationSet, t float64, rule ThresholdRule) (a, b models.ConfusionMatrix) {
	return thresholdMatrix(set, modelA, t, rule), thresholdMatrix(set, modelB, t, rule)
}

func thresholdMatrix(set *models.ClassificationSet, m model, t float64, rule ThresholdRule) models.ConfusionMatrix {
	positive := set.Labels.Positive
	byClass := rule.Correctness == CorrectnessClass

	return tally(set.Rows, func(r models.ClassificationRow) cell {
		score := m.score(r)
		above := score >= t
		below := score < t || (rule.Boundary == BoundaryDoubleCount && score == t)

		// hit is "correct" under label-match and "actually positive" by class.
		var hit bool
		if byClass {
			hit = r.Truth == positive
		} else {
			hit = m.label(r) == r.Truth
		}

		var c cell
		if above {
			if hit {
				c |= cellTP
			} else {
				c |= cellFP
			}
		}
		if below {
			// A missed positive is FN by class; a wrong label is FN by label-match.
			if hit == byClass {
				c |= cellFN
			} else {
				c |= cellTN
			}
		}
		return c
	})
}
