package evaluation

import (
	"strconv"

	"github.com/spboyer/versus/internal/metrics"
	"github.com/spboyer/versus/internal/models"
)

// Options selects the conventions an evaluation runs under. The zero value
// means: first-seen positive class, inclusive boundary, label-match
// correctness, truth-denominated MAPE.
type Options struct {
	// PositiveLabel names the positive class explicitly and overrides PositiveRule.
	PositiveLabel   string                  `json:"positive_label,omitempty" mapstructure:"positive_label"`
	PositiveRule    models.PositiveRule     `json:"positive_rule,omitempty" mapstructure:"positive_rule"`
	Boundary        metrics.Boundary        `json:"boundary,omitempty" mapstructure:"boundary"`
	Correctness     metrics.Correctness     `json:"correctness,omitempty" mapstructure:"correctness"`
	MAPEDenominator metrics.MAPEDenominator `json:"mape_denominator,omitempty" mapstructure:"mape_denominator"`

	// Workers bounds the ROC sweep's parallelism. It never changes results.
	Workers int `json:"workers,omitempty" mapstructure:"workers"`
}

// Normalize validates every convention and fills in defaults.
func (o Options) Normalize() (Options, error) {
	rule, err := models.ParsePositiveRule(string(o.PositiveRule))
	if err != nil {
		return o, err
	}
	boundary, err := metrics.ParseBoundary(string(o.Boundary))
	if err != nil {
		return o, err
	}
	correctness, err := metrics.ParseCorrectness(string(o.Correctness))
	if err != nil {
		return o, err
	}
	denom, err := metrics.ParseMAPEDenominator(string(o.MAPEDenominator))
	if err != nil {
		return o, err
	}

	o.PositiveRule = rule
	o.Boundary = boundary
	o.Correctness = correctness
	o.MAPEDenominator = denom
	return o, nil
}

func (o Options) labelOptions() models.LabelOptions {
	return models.LabelOptions{Positive: o.PositiveLabel, Rule: o.PositiveRule}
}

func (o Options) sweepOptions() metrics.SweepOptions {
	return metrics.SweepOptions{
		Rule:    metrics.ThresholdRule{Boundary: o.Boundary, Correctness: o.Correctness},
		Workers: o.Workers,
	}
}

// classificationConventions records the rules that shape a classification
// report. An explicit positive label is reported in place of the rule.
func (o Options) classificationConventions() models.Conventions {
	rule := string(o.PositiveRule)
	if o.PositiveLabel != "" {
		rule = "explicit:" + strconv.Quote(o.PositiveLabel)
	}
	return models.Conventions{
		PositiveRule: rule,
		Boundary:     string(o.Boundary),
		Correctness:  string(o.Correctness),
		AUCTies:      string(o.Correctness.Ties()),
	}
}

func (o Options) regressionConventions() models.Conventions {
	return models.Conventions{MAPEDenominator: string(o.MAPEDenominator)}
}

// cacheFields lists every option that can change a report, in a fixed order.
func (o Options) cacheFields(mode models.Mode) []string {
	if mode == models.ModeRegression {
		return []string{string(o.MAPEDenominator)}
	}
	return []string{o.PositiveLabel, string(o.PositiveRule), string(o.Boundary), string(o.Correctness)}
}
