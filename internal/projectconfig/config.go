// Package projectconfig provides the ProjectConfig struct and loader for
// .versus.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spboyer/versus/internal/utils"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up by Load.
const FileName = ".versus.yaml"

// Default values for project configuration. These are the single source of
// truth: New() references them and no other code should duplicate them.
const (
	DefaultPositiveRule    = "first-seen"
	DefaultBoundary        = "inclusive"
	DefaultCorrectness     = "label-match"
	DefaultMAPEDenominator = "truth"

	DefaultFormat    = "table"
	DefaultOutputDir = "results/"

	DefaultCacheDir = ".versus-cache"

	DefaultServerPort       = 3000
	DefaultServerResultsDir = "results/"
)

// maxWalkUp bounds how many directories Load climbs looking for FileName.
const maxWalkUp = 10

// EvaluationConfig holds the conventions evaluations run under.
type EvaluationConfig struct {
	PositiveLabel   string `yaml:"positive_label,omitempty"`
	PositiveRule    string `yaml:"positive_rule,omitempty"`
	Boundary        string `yaml:"boundary,omitempty"`
	Correctness     string `yaml:"correctness,omitempty"`
	MAPEDenominator string `yaml:"mape_denominator,omitempty"`
	Workers         int    `yaml:"workers,omitempty"`
}

// OutputConfig holds report rendering settings.
type OutputConfig struct {
	Format string `yaml:"format,omitempty"`
	Dir    string `yaml:"dir,omitempty"`
}

// CacheConfig holds cache settings.
type CacheConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Dir     string `yaml:"dir,omitempty"`
}

// ServerConfig holds dashboard server settings.
type ServerConfig struct {
	Port       int    `yaml:"port,omitempty"`
	ResultsDir string `yaml:"results_dir,omitempty"`
}

// GatesConfig holds quality gate thresholds. A zero value disables the gate.
type GatesConfig struct {
	MinAUC  float64 `yaml:"min_auc,omitempty"`
	MaxMAE  float64 `yaml:"max_mae,omitempty"`
	MaxMAPE float64 `yaml:"max_mape,omitempty"`
	MaxMSE  float64 `yaml:"max_mse,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .versus.yaml.
type ProjectConfig struct {
	Evaluation EvaluationConfig `yaml:"evaluation,omitempty"`
	Output     OutputConfig     `yaml:"output,omitempty"`
	Cache      CacheConfig      `yaml:"cache,omitempty"`
	Server     ServerConfig     `yaml:"server,omitempty"`
	Gates      GatesConfig      `yaml:"gates,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Evaluation: EvaluationConfig{
			PositiveRule:    DefaultPositiveRule,
			Boundary:        DefaultBoundary,
			Correctness:     DefaultCorrectness,
			MAPEDenominator: DefaultMAPEDenominator,
		},
		Output: OutputConfig{
			Format: DefaultFormat,
			Dir:    DefaultOutputDir,
		},
		Cache: CacheConfig{
			Enabled: boolPtr(false),
			Dir:     DefaultCacheDir,
		},
		Server: ServerConfig{
			Port:       DefaultServerPort,
			ResultsDir: DefaultServerResultsDir,
		},
	}
}

// CacheEnabled reports whether the result cache is switched on.
func (c *ProjectConfig) CacheEnabled() bool {
	return c.Cache.Enabled != nil && *c.Cache.Enabled
}

// ResolveDirs makes the relative directories in c relative to baseDir,
// normally the directory holding the config file.
func (c *ProjectConfig) ResolveDirs(baseDir string) {
	dirs := utils.ResolvePaths([]string{c.Output.Dir, c.Cache.Dir, c.Server.ResultsDir}, baseDir)
	c.Output.Dir, c.Cache.Dir, c.Server.ResultsDir = dirs[0], dirs[1], dirs[2]
}

// Load finds .versus.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg, _, err := LoadWithPath(startDir)
	return cfg, err
}

// LoadWithPath is Load that also returns the path of the file it read,
// or "" when defaults were used.
func LoadWithPath(startDir string) (*ProjectConfig, string, error) {
	cfg := New()

	path, data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, "", nil
		}
		return nil, "", fmt.Errorf("loading %s: %w", FileName, err)
	}

	fileCfg, err := Parse(data)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}

	mergeConfig(cfg, fileCfg)
	return cfg, path, nil
}

// Parse decodes configuration bytes without applying defaults.
func Parse(data []byte) (*ProjectConfig, error) {
	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	return &fileCfg, nil
}

// Marshal encodes cfg as YAML.
func Marshal(cfg *ProjectConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// findConfigFile walks up from dir looking for .versus.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found. Propagates real I/O
// errors (e.g. permission denied) instead of silently swallowing them.
func findConfigFile(dir string) (string, []byte, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for range maxWalkUp {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return p, data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return "", nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	// Evaluation
	if src.Evaluation.PositiveLabel != "" {
		dst.Evaluation.PositiveLabel = src.Evaluation.PositiveLabel
	}
	if src.Evaluation.PositiveRule != "" {
		dst.Evaluation.PositiveRule = src.Evaluation.PositiveRule
	}
	if src.Evaluation.Boundary != "" {
		dst.Evaluation.Boundary = src.Evaluation.Boundary
	}
	if src.Evaluation.Correctness != "" {
		dst.Evaluation.Correctness = src.Evaluation.Correctness
	}
	if src.Evaluation.MAPEDenominator != "" {
		dst.Evaluation.MAPEDenominator = src.Evaluation.MAPEDenominator
	}
	if src.Evaluation.Workers != 0 {
		dst.Evaluation.Workers = src.Evaluation.Workers
	}

	// Output
	if src.Output.Format != "" {
		dst.Output.Format = src.Output.Format
	}
	if src.Output.Dir != "" {
		dst.Output.Dir = src.Output.Dir
	}

	// Cache
	if src.Cache.Enabled != nil {
		dst.Cache.Enabled = src.Cache.Enabled
	}
	if src.Cache.Dir != "" {
		dst.Cache.Dir = src.Cache.Dir
	}

	// Server
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if src.Server.ResultsDir != "" {
		dst.Server.ResultsDir = src.Server.ResultsDir
	}

	// Gates
	if src.Gates.MinAUC != 0 {
		dst.Gates.MinAUC = src.Gates.MinAUC
	}
	if src.Gates.MaxMAE != 0 {
		dst.Gates.MaxMAE = src.Gates.MaxMAE
	}
	if src.Gates.MaxMAPE != 0 {
		dst.Gates.MaxMAPE = src.Gates.MaxMAPE
	}
	if src.Gates.MaxMSE != 0 {
		dst.Gates.MaxMSE = src.Gates.MaxMSE
	}
}

func boolPtr(b bool) *bool {
	return &b
}
