package reporting

import (
	"fmt"
	"math"

	"github.com/spboyer/versus/internal/models"
)

// Gates holds quality thresholds applied to a report. A zero field disables
// that gate.
type Gates struct {
	MinAUC  float64
	MaxMAE  float64
	MaxMAPE float64
	MaxMSE  float64
}

// Enabled reports whether any gate is set.
func (g Gates) Enabled() bool {
	return g != Gates{}
}

// GateResult is the outcome of one gate for one model.
type GateResult struct {
	Metric string       `json:"metric"`
	Model  string       `json:"model"`
	Value  models.Float `json:"value"`
	Limit  models.Float `json:"limit"`
	// Bound is ">=" for minimum gates and "<=" for maximum gates.
	Bound  string `json:"bound"`
	Passed bool   `json:"passed"`
}

// Name identifies the gate, e.g. "auc (model A)".
func (r GateResult) Name() string {
	return fmt.Sprintf("%s (%s)", r.Metric, r.Model)
}

// Message explains the outcome, e.g. "auc 0.6500 >= 0.8000: failed".
func (r GateResult) Message() string {
	status := "passed"
	if !r.Passed {
		status = "failed"
	}
	return fmt.Sprintf("%s %.4f %s %.4f: %s", r.Metric, r.Value, r.Bound, r.Limit, status)
}

// CheckGates evaluates every enabled gate that applies to the report's mode,
// for model A then model B. A NaN metric never passes a gate.
func CheckGates(report *models.Report, g Gates) []GateResult {
	var results []GateResult
	switch {
	case report.Classification != nil:
		m := report.Classification.Models
		if g.MinAUC != 0 {
			results = append(results,
				atLeast("auc", "model A", float64(m.A.AUC), g.MinAUC),
				atLeast("auc", "model B", float64(m.B.AUC), g.MinAUC))
		}
	case report.Regression != nil:
		m := report.Regression.Models
		if g.MaxMAE != 0 {
			results = append(results,
				atMost("mae", "model A", float64(m.A.MAE), g.MaxMAE),
				atMost("mae", "model B", float64(m.B.MAE), g.MaxMAE))
		}
		if g.MaxMAPE != 0 {
			results = append(results,
				atMost("mape", "model A", float64(m.A.MAPE), g.MaxMAPE),
				atMost("mape", "model B", float64(m.B.MAPE), g.MaxMAPE))
		}
		if g.MaxMSE != 0 {
			results = append(results,
				atMost("mse", "model A", float64(m.A.MSE), g.MaxMSE),
				atMost("mse", "model B", float64(m.B.MSE), g.MaxMSE))
		}
	}
	return results
}

// FailedGates returns the results that did not pass.
func FailedGates(results []GateResult) []GateResult {
	var failed []GateResult
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}

func atLeast(metric, model string, value, limit float64) GateResult {
	return GateResult{
		Metric: metric, Model: model, Value: models.Float(value), Limit: models.Float(limit), Bound: ">=",
		Passed: !math.IsNaN(value) && value >= limit,
	}
}

func atMost(metric, model string, value, limit float64) GateResult {
	return GateResult{
		Metric: metric, Model: model, Value: models.Float(value), Limit: models.Float(limit), Bound: "<=",
		Passed: !math.IsNaN(value) && value <= limit,
	}
}
