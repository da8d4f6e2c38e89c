package metrics

import (
	"math"
	"testing"

	"github.com/spboyer/versus/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// separable scores model A perfectly and gives model B a constant score.
func separable(t *testing.T) *models.ClassificationSet {
	return yesNoSet(t, [][]string{
		{"yes", "yes", "0.8", "yes", "0.5"},
		{"no", "no", "0.1", "yes", "0.5"},
		{"yes", "yes", "0.9", "yes", "0.5"},
		{"no", "no", "0.2", "yes", "0.5"},
	})
}

func TestROCCurves_Length(t *testing.T) {
	for _, workers := range []int{0, 1, 7} {
		a, b := ROCCurves(separable(t), SweepOptions{Workers: workers})
		assert.Len(t, a, ThresholdSteps)
		assert.Len(t, b, ThresholdSteps)
	}
}

// mixed has labels that are right and wrong at various scores; model B
// copies model A.
func mixed(t *testing.T) *models.ClassificationSet {
	return yesNoSet(t, [][]string{
		{"yes", "yes", "0.9", "yes", "0.9"},
		{"no", "no", "0.7", "no", "0.7"},
		{"yes", "no", "0.6", "no", "0.6"},
		{"no", "yes", "0.3", "yes", "0.3"},
		{"no", "no", "0.1", "no", "0.1"},
	})
}

func TestROCCurves_ThresholdOrder(t *testing.T) {
	set := separable(t)
	a, b := ROCCurves(set, SweepOptions{Rule: byClass, Workers: 4})

	for i := range ThresholdSteps {
		ma, mb := ThresholdMatrices(set, Threshold(i), byClass)
		require.Equal(t, Point(ma), a[i], "threshold %d", i)
		require.Equal(t, Point(mb), b[i], "threshold %d", i)
	}

	assert.Equal(t, models.ROCPoint{X: 1, Y: 1}, a[0])
	assert.Equal(t, models.ROCPoint{X: 0.5, Y: 1}, a[15])
	assert.Equal(t, models.ROCPoint{X: 0, Y: 1}, a[50])
	assert.Equal(t, models.ROCPoint{X: 0, Y: 0.5}, a[85])
	assert.Equal(t, models.ROCPoint{X: 0, Y: 0}, a[99])
}

func TestROCCurves_LabelMatch(t *testing.T) {
	a, b := ROCCurves(mixed(t), SweepOptions{})
	assert.Equal(t, a, b)

	assert.Equal(t, models.ROCPoint{X: 1, Y: 1}, a[0])
	assert.Equal(t, models.ROCPoint{X: 1, Y: 1}, a[10])
	assert.Equal(t, models.ROCPoint{X: models.Float(2.0 / 3.0), Y: 1}, a[11])
	assert.Equal(t, models.ROCPoint{X: 0.5, Y: models.Float(2.0 / 3.0)}, a[50])
	assert.Equal(t, models.ROCPoint{X: 0, Y: 0.5}, a[65])
	assert.Equal(t, models.ROCPoint{X: 0, Y: models.Float(1.0 / 3.0)}, a[80])
	assert.Equal(t, models.ROCPoint{X: 0, Y: 0}, a[95])
}

func TestROCCurves_LabelMatchAllCorrectIsNaN(t *testing.T) {
	// Every label is right, so nothing is ever a false positive and
	// FP+TN is zero while every score is at or above t.
	a, _ := ROCCurves(separable(t), SweepOptions{})
	assert.True(t, math.IsNaN(float64(a[0].X)))
	assert.Equal(t, models.ROCPoint{X: 0, Y: 1}, a[50])
}

func TestROCCurves_Deterministic(t *testing.T) {
	set := mixed(t)
	a1, b1 := ROCCurves(set, SweepOptions{Workers: 8})
	a2, b2 := ROCCurves(set, SweepOptions{Workers: 1})
	assert.Equal(t, a1, a2)
	assert.Equal(t, b1, b2)
}

func TestPoint_ZeroDenominatorIsNaN(t *testing.T) {
	p := Point(models.ConfusionMatrix{TP: 2, FN: 1})
	assert.True(t, math.IsNaN(float64(p.X)))
	assert.InDelta(t, 2.0/3.0, float64(p.Y), 1e-12)
}

func TestThreshold(t *testing.T) {
	assert.Equal(t, 0.0, Threshold(0))
	assert.Equal(t, 0.25, Threshold(25))
	assert.Equal(t, 0.99, Threshold(99))
}
