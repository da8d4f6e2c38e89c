package metrics

import (
	"math"
	"testing"

	"github.com/spboyer/versus/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var twoRows = []models.RegressionRow{
	{Truth: 10, PredA: 12, PredB: 8},
	{Truth: 20, PredA: 18, PredB: 25},
}

func TestMAE(t *testing.T) {
	a, b := MAE(twoRows)
	assert.InDelta(t, 2.0, a, 1e-12)
	assert.InDelta(t, 3.5, b, 1e-12)
}

func TestMSE(t *testing.T) {
	a, b := MSE(twoRows)
	assert.InDelta(t, 4.0, a, 1e-12)
	assert.InDelta(t, 14.5, b, 1e-12)
}

func TestMAPE(t *testing.T) {
	tests := []struct {
		name  string
		denom MAPEDenominator
		wantA float64
		wantB float64
	}{
		// (2/10 + 2/20) / 2 and (2/10 + 5/20) / 2
		{"truth denominator", DenominatorTruth, 15.0, 22.5},
		// (2/12 + 2/18) / 2 and (2/12 + 5/18) / 2
		{"model A denominator", DenominatorModelA, 13.888888888889, 22.222222222222},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := MAPE(twoRows, tt.denom)
			assert.InDelta(t, tt.wantA, a, 1e-9)
			assert.InDelta(t, tt.wantB, b, 1e-9)
		})
	}
}

func TestMAPE_ZeroTruthIsNotSpecialCased(t *testing.T) {
	a, b := MAPE([]models.RegressionRow{{Truth: 0, PredA: 1, PredB: 0}}, DenominatorTruth)
	assert.True(t, math.IsInf(a, 1))
	assert.True(t, math.IsNaN(b))
}

func TestRegression_IdenticalColumnsAreZero(t *testing.T) {
	rows := []models.RegressionRow{
		{Truth: 1.5, PredA: 1.5, PredB: 1.5},
		{Truth: -3, PredA: -3, PredB: -3},
	}
	maeA, maeB := MAE(rows)
	mseA, mseB := MSE(rows)
	assert.Zero(t, maeA)
	assert.Zero(t, maeB)
	assert.Zero(t, mseA)
	assert.Zero(t, mseB)
}

func TestRegression_NonNegative(t *testing.T) {
	rows := []models.RegressionRow{
		{Truth: -10, PredA: 3, PredB: -1e6},
		{Truth: 0.001, PredA: -0.002, PredB: 7},
		{Truth: 42, PredA: 41, PredB: 43},
	}
	maeA, maeB := MAE(rows)
	mseA, mseB := MSE(rows)
	for _, v := range []float64{maeA, maeB, mseA, mseB} {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestRegression_EmptyIsNaN(t *testing.T) {
	for name, fn := range map[string]func([]models.RegressionRow) (float64, float64){
		"mae":  MAE,
		"mse":  MSE,
		"mape": func(r []models.RegressionRow) (float64, float64) { return MAPE(r, DenominatorTruth) },
	} {
		a, b := fn(nil)
		assert.True(t, math.IsNaN(a), name)
		assert.True(t, math.IsNaN(b), name)
	}
}

func TestParseMAPEDenominator(t *testing.T) {
	d, err := ParseMAPEDenominator("")
	require.NoError(t, err)
	assert.Equal(t, DenominatorTruth, d)

	d, err = ParseMAPEDenominator("model-a")
	require.NoError(t, err)
	assert.Equal(t, DenominatorModelA, d)

	_, err = ParseMAPEDenominator("model-b")
	assert.Error(t, err)
}

func TestMean(t *testing.T) {
	assert.True(t, math.IsNaN(Mean(nil)))
	assert.Equal(t, 3.0, Mean([]float64{1, 2, 3, 4, 5}))
	assert.Equal(t, 0.0, Mean([]float64{-2, 0, 2}))
}
