package reporting

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/spboyer/versus/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatTable, f)

	f, err = ParseFormat(" JUnit ")
	require.NoError(t, err)
	assert.Equal(t, FormatJUnit, f)
	assert.Equal(t, ".xml", f.Extension())

	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}

func TestCheckGates(t *testing.T) {
	t.Run("classification uses auc only", func(t *testing.T) {
		results := CheckGates(classificationReport(), Gates{MinAUC: 0.6, MaxMAE: 1})
		require.Len(t, results, 2)
		assert.True(t, results[0].Passed)
		assert.False(t, results[1].Passed)
		assert.Equal(t, "auc (model B)", results[1].Name())
		assert.Len(t, FailedGates(results), 1)
	})

	t.Run("regression uses error gates", func(t *testing.T) {
		results := CheckGates(regressionReport(), Gates{MinAUC: 0.9, MaxMAE: 4, MaxMAPE: 20, MaxMSE: 10})
		require.Len(t, results, 6)
		failed := FailedGates(results)
		require.Len(t, failed, 2)
		assert.Equal(t, "mape (model B)", failed[0].Name())
		assert.Equal(t, "mse (model B)", failed[1].Name())
	})

	t.Run("disabled gates", func(t *testing.T) {
		assert.False(t, Gates{}.Enabled())
		assert.Empty(t, CheckGates(regressionReport(), Gates{}))
	})

	t.Run("nan fails", func(t *testing.T) {
		report := regressionReport()
		report.Regression.Models.A.MAPE = models.NaN()
		results := CheckGates(report, Gates{MaxMAPE: 100})
		assert.False(t, results[0].Passed)
		assert.True(t, math.IsNaN(float64(results[0].Value)))
	})
}

func TestRender_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, classificationReport(), FormatTable, nil))

	out := buf.String()
	assert.Contains(t, out, "scores.csv | classification, 4 rows")
	assert.Contains(t, out, `positive="yes" negative="no"`)
	assert.Contains(t, out, "Metric")
	assert.Contains(t, out, "─")
	assert.Contains(t, out, "=== Interpretation ===")

	// Columns line up: every data row places the model A value at the same offset.
	lines := strings.Split(out, "\n")
	var offsets []int
	for _, l := range lines {
		if strings.HasPrefix(l, "AUC") || strings.HasPrefix(l, "F1") {
			offsets = append(offsets, strings.Index(l, "1.0000"))
		}
	}
	require.Len(t, offsets, 2)
	assert.Equal(t, offsets[0], offsets[1])
}

func TestRender_TableWithGates(t *testing.T) {
	var buf bytes.Buffer
	report := regressionReport()
	require.NoError(t, Render(&buf, report, FormatTable, CheckGates(report, Gates{MaxMAE: 3})))
	assert.Contains(t, buf.String(), "✓ mae (model A)")
	assert.Contains(t, buf.String(), "✗ mae (model B)")
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	report := regressionReport()
	report.Regression.Models.B.MAPE = models.NaN()
	require.NoError(t, Render(&buf, report, FormatJSON, CheckGates(report, Gates{MaxMAE: 3})))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "regression", decoded["mode"])
	assert.Len(t, decoded["gates"], 2)

	pair := decoded["regression"].(map[string]any)["models"].(map[string]any)
	assert.Nil(t, pair["model_b"].(map[string]any)["mape"], "NaN serializes as null")
}

func TestRender_Markdown(t *testing.T) {
	var buf bytes.Buffer
	report := classificationReport()
	require.NoError(t, Render(&buf, report, FormatMarkdown, CheckGates(report, Gates{MinAUC: 0.8})))

	out := buf.String()
	assert.Contains(t, out, "## Versus Results: classification")
	assert.Contains(t, out, "**Status:** ❌ Failed")
	assert.Contains(t, out, "| AUC | 1.0000 | 0.5000 | A |")
	assert.Contains(t, out, "| True positives | 2 | 1 | - |")
	assert.Contains(t, out, "### Quality Gates")
	assert.NotContains(t, out, "===")
}

func TestRender_HTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, regressionReport(), FormatHTML, nil))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>versus regression report</title>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>MAE</td>")
}

func TestRender_UnknownFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, regressionReport(), Format("pdf"), nil)
	assert.Error(t, err)
}
