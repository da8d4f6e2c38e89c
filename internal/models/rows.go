package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Column counts per evaluation mode.
const (
	ClassificationColumns = 5
	RegressionColumns     = 3
)

// ClassificationRow is one row of a two-model classification table:
// truth, model A label and score, model B label and score.
type ClassificationRow struct {
	Truth  string  `json:"truth"`
	LabelA string  `json:"label_a"`
	ScoreA float64 `json:"score_a"`
	LabelB string  `json:"label_b"`
	ScoreB float64 `json:"score_b"`
}

// RegressionRow is one row of a two-model regression table.
type RegressionRow struct {
	Truth float64 `json:"truth"`
	PredA float64 `json:"pred_a"`
	PredB float64 `json:"pred_b"`
}

// ClassificationSet holds parsed rows together with the label set inferred
// from their truth column. Every matrix, curve and AUC computed from the set
// uses the same Labels.
type ClassificationSet struct {
	Rows   []ClassificationRow
	Labels LabelSet
}

// ParseClassificationRows converts tokenized data rows into classification rows.
// Each record must hold exactly 5 fields; scores must parse as floats.
func ParseClassificationRows(records [][]string, opts LabelOptions) (*ClassificationSet, error) {
	rows := make([]ClassificationRow, 0, len(records))
	truths := make([]string, 0, len(records))

	for i, rec := range records {
		if err := checkArity(i, rec, ClassificationColumns); err != nil {
			return nil, err
		}
		scoreA, err := parseFloat(i, 2, rec[2])
		if err != nil {
			return nil, err
		}
		scoreB, err := parseFloat(i, 4, rec[4])
		if err != nil {
			return nil, err
		}
		rows = append(rows, ClassificationRow{
			Truth:  rec[0],
			LabelA: rec[1],
			ScoreA: scoreA,
			LabelB: rec[3],
			ScoreB: scoreB,
		})
		truths = append(truths, rec[0])
	}

	labels, err := InferLabelSet(truths, opts)
	if err != nil {
		return nil, err
	}
	return &ClassificationSet{Rows: rows, Labels: labels}, nil
}

// ParseRegressionRows converts tokenized data rows into regression rows.
// Each record must hold exactly 3 numeric fields.
func ParseRegressionRows(records [][]string) ([]RegressionRow, error) {
	rows := make([]RegressionRow, 0, len(records))
	for i, rec := range records {
		if err := checkArity(i, rec, RegressionColumns); err != nil {
			return nil, err
		}
		var vals [RegressionColumns]float64
		for j := range vals {
			v, err := parseFloat(i, j, rec[j])
			if err != nil {
				return nil, err
			}
			vals[j] = v
		}
		rows = append(rows, RegressionRow{Truth: vals[0], PredA: vals[1], PredB: vals[2]})
	}
	return rows, nil
}

func checkArity(index int, rec []string, want int) error {
	if len(rec) == want {
		return nil
	}
	return &ParseError{
		Row:    index + 1,
		Column: -1,
		Kind:   ErrFieldCount,
		Err:    fmt.Errorf("got %d fields, want %d", len(rec), want),
	}
}

func parseFloat(index, column int, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &ParseError{
			Row:    index + 1,
			Column: column,
			Value:  raw,
			Kind:   ErrNumeric,
			Err:    err,
		}
	}
	return v, nil
}
