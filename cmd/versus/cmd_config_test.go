package main

import (
	"path/filepath"
	"testing"

	"github.com/spboyer/versus/internal/projectconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate_Valid(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "evaluation:\n  boundary: inclusive\noutput:\n  format: markdown\n")

	out, err := runCLI(t, "", "config", "validate", "--config-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
}

func TestConfigValidate_Invalid(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "evaluation:\n  boundary: sometimes\n")

	out, err := runCLI(t, "", "config", "validate", filepath.Join(dir, projectconfig.FileName))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation error")
	assert.Contains(t, out, "boundary")
}

func TestConfigValidate_MissingFile(t *testing.T) {
	_, err := runCLI(t, "", "config", "validate", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestConfigShow(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "server:\n  port: 4100\n")

	out, err := runCLI(t, "", "config", "show", "--config-dir", dir)
	require.NoError(t, err)

	cfg, err := projectconfig.Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, 4100, cfg.Server.Port)
	assert.Equal(t, projectconfig.DefaultBoundary, cfg.Evaluation.Boundary)
}
