package wizard

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spboyer/versus/internal/projectconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswersFromDefaults(t *testing.T) {
	a := answersFrom(projectconfig.New())

	assert.Equal(t, "first-seen", a.PositiveRule)
	assert.Equal(t, "inclusive", a.Boundary)
	assert.Equal(t, "label-match", a.Correctness)
	assert.Equal(t, "truth", a.MAPEDenominator)
	assert.Equal(t, "table", a.Format)
	assert.Equal(t, "3000", a.Port)
	assert.False(t, a.CacheEnabled)
	assert.Empty(t, a.MinAUC, "disabled gates start blank")
}

func TestAnswersApply(t *testing.T) {
	base := projectconfig.New()
	base.Evaluation.Workers = 4
	base.Gates.MaxMSE = 10

	a := Answers{
		PositiveRule:    "lexical",
		PositiveLabel:   "  spam ",
		Boundary:        "double-count",
		Correctness:     "class",
		MAPEDenominator: "model-a",
		Format:          "markdown",
		OutputDir:       "out/",
		CacheEnabled:    true,
		Port:            "8080",
		MinAUC:          "0.85",
		MaxMAE:          "",
	}

	cfg, err := a.Apply(base)
	require.NoError(t, err)

	assert.Equal(t, "lexical", cfg.Evaluation.PositiveRule)
	assert.Equal(t, "spam", cfg.Evaluation.PositiveLabel)
	assert.Equal(t, "double-count", cfg.Evaluation.Boundary)
	assert.Equal(t, "class", cfg.Evaluation.Correctness)
	assert.Equal(t, "model-a", cfg.Evaluation.MAPEDenominator)
	assert.Equal(t, 4, cfg.Evaluation.Workers, "fields the form does not ask about are kept")
	assert.Equal(t, "markdown", cfg.Output.Format)
	assert.Equal(t, "out/", cfg.Output.Dir)
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 0.85, cfg.Gates.MinAUC)
	assert.Zero(t, cfg.Gates.MaxMAE)
	assert.Equal(t, 10.0, cfg.Gates.MaxMSE)

	assert.False(t, base.CacheEnabled(), "base must not be modified")
}

func TestAnswersApplyRejectsBadValues(t *testing.T) {
	base := projectconfig.New()
	valid := answersFrom(base)

	tests := []struct {
		name   string
		mutate func(*Answers)
	}{
		{"port not a number", func(a *Answers) { a.Port = "http" }},
		{"port out of range", func(a *Answers) { a.Port = "70000" }},
		{"auc above one", func(a *Answers) { a.MinAUC = "1.5" }},
		{"negative mae", func(a *Answers) { a.MaxMAE = "-1" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid
			tt.mutate(&a)
			_, err := a.Apply(base)
			assert.Error(t, err)
		})
	}
}

func TestParseOptional(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		lo, hi  float64
		want    float64
		wantErr bool
	}{
		{"blank", "  ", 0, 1, 0, false},
		{"in range", "0.7", 0, 1, 0.7, false},
		{"upper edge", "1", 0, 1, 1, false},
		{"unbounded", "1e6", 0, -1, 1e6, false},
		{"not a number", "abc", 0, 1, 0, true},
		{"below", "-0.1", 0, 1, 0, true},
		{"above", "2", 0, 1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOptional(tt.input, tt.lo, tt.hi)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := projectconfig.New()
	cfg.Evaluation.Boundary = "double-count"
	cfg.Gates.MinAUC = 0.8

	path, err := WriteConfig(dir, cfg, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, projectconfig.FileName), path)

	loaded, err := projectconfig.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "double-count", loaded.Evaluation.Boundary)
	assert.Equal(t, 0.8, loaded.Gates.MinAUC)

	_, err = WriteConfig(dir, cfg, false)
	assert.True(t, errors.Is(err, ErrConfigExists))

	cfg.Evaluation.Boundary = "inclusive"
	_, err = WriteConfig(dir, cfg, true)
	require.NoError(t, err)
	loaded, err = projectconfig.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "inclusive", loaded.Evaluation.Boundary)
}

func TestWriteConfigRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	cfg := projectconfig.New()
	cfg.Output.Format = "pdf"

	_, err := WriteConfig(dir, cfg, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid")

	_, statErr := os.Stat(filepath.Join(dir, projectconfig.FileName))
	assert.True(t, os.IsNotExist(statErr), "nothing is written for an invalid config")
}
