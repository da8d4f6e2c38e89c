package metrics

import (
	"runtime"

	"github.com/spboyer/versus/internal/models"
	"golang.org/x/sync/errgroup"
)

// ThresholdSteps is the number of evenly spaced thresholds an ROC sweep
// evaluates: 0/100, 1/100, ..., 99/100.
const ThresholdSteps = 100

// SweepOptions configures an ROC sweep.
type SweepOptions struct {
	Rule ThresholdRule

	// Workers bounds how many thresholds are evaluated at once.
	// Zero or negative means runtime.GOMAXPROCS(0).
	Workers int
}

// Threshold returns the i-th swept threshold.
func Threshold(i int) float64 {
	return float64(i) / ThresholdSteps
}

// ROCCurves sweeps threshold mode over ThresholdSteps thresholds and returns
// each model's curve in threshold order. Points are not necessarily monotonic
// in either coordinate; a zero denominator yields a NaN rate.
func ROCCurves(set *models.ClassificationSet, opts SweepOptions) (a, b models.Curve) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	a = make(models.Curve, ThresholdSteps)
	b = make(models.Curve, ThresholdSteps)

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range ThresholdSteps {
		g.Go(func() error {
			ma, mb := ThresholdMatrices(set, Threshold(i), opts.Rule)
			a[i] = Point(ma)
			b[i] = Point(mb)
			return nil
		})
	}
	_ = g.Wait() // workers never fail

	return a, b
}

// Point converts a matrix into an ROC point:
// x = FP / (FP + TN), y = TP / (TP + FN).
func Point(m models.ConfusionMatrix) models.ROCPoint {
	return models.ROCPoint{
		X: models.Float(rate(m.FP, m.FP+m.TN)),
		Y: models.Float(rate(m.TP, m.TP+m.FN)),
	}
}

// rate divides without guarding; 0/0 is NaN.
func rate(num, den int) float64 {
	return float64(num) / float64(den)
}
