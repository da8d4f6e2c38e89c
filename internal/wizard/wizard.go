// Package wizard runs the interactive `versus init` form and writes the
// resulting .versus.yaml.
package wizard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spboyer/versus/internal/metrics"
	"github.com/spboyer/versus/internal/models"
	"github.com/spboyer/versus/internal/projectconfig"
	"github.com/spboyer/versus/internal/reporting"
	"github.com/spboyer/versus/internal/validation"
	"golang.org/x/term"
)

// ErrConfigExists is returned by WriteConfig when the file is already present
// and overwriting was not requested.
var ErrConfigExists = errors.New("config file already exists")

// Answers holds every field collected by the form, as typed.
type Answers struct {
	PositiveRule    string
	PositiveLabel   string
	Boundary        string
	Correctness     string
	MAPEDenominator string
	Format          string
	OutputDir       string
	CacheEnabled    bool
	Port            string
	MinAUC          string
	MaxMAE          string
}

// answersFrom seeds the form with the values already in cfg.
func answersFrom(cfg *projectconfig.ProjectConfig) Answers {
	return Answers{
		PositiveRule:    cfg.Evaluation.PositiveRule,
		PositiveLabel:   cfg.Evaluation.PositiveLabel,
		Boundary:        cfg.Evaluation.Boundary,
		Correctness:     cfg.Evaluation.Correctness,
		MAPEDenominator: cfg.Evaluation.MAPEDenominator,
		Format:          cfg.Output.Format,
		OutputDir:       cfg.Output.Dir,
		CacheEnabled:    cfg.CacheEnabled(),
		Port:            strconv.Itoa(cfg.Server.Port),
		MinAUC:          formatOptional(cfg.Gates.MinAUC),
		MaxMAE:          formatOptional(cfg.Gates.MaxMAE),
	}
}

// Apply copies the answers onto a copy of base. Fields the form does not ask
// about are kept from base.
func (a Answers) Apply(base *projectconfig.ProjectConfig) (*projectconfig.ProjectConfig, error) {
	cfg := *base
	cfg.Evaluation.PositiveRule = a.PositiveRule
	cfg.Evaluation.PositiveLabel = strings.TrimSpace(a.PositiveLabel)
	cfg.Evaluation.Boundary = a.Boundary
	cfg.Evaluation.Correctness = a.Correctness
	cfg.Evaluation.MAPEDenominator = a.MAPEDenominator
	cfg.Output.Format = a.Format
	cfg.Output.Dir = strings.TrimSpace(a.OutputDir)
	enabled := a.CacheEnabled
	cfg.Cache.Enabled = &enabled

	port, err := parsePort(a.Port)
	if err != nil {
		return nil, err
	}
	cfg.Server.Port = port

	if cfg.Gates.MinAUC, err = parseOptional(a.MinAUC, 0, 1); err != nil {
		return nil, fmt.Errorf("min AUC: %w", err)
	}
	if cfg.Gates.MaxMAE, err = parseOptional(a.MaxMAE, 0, -1); err != nil {
		return nil, fmt.Errorf("max MAE: %w", err)
	}
	return &cfg, nil
}

// Run shows the form on in/out, starting from base, and returns the
// resulting configuration.
func Run(in io.Reader, out io.Writer, base *projectconfig.ProjectConfig) (*projectconfig.ProjectConfig, error) {
	a := answersFrom(base)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Positive class").
				Description("How the positive class is picked when no label is given").
				Options(
					huh.NewOption("first value seen in the truth column", string(models.PositiveFirstSeen)),
					huh.NewOption("lexically smaller value", string(models.PositiveLexical)),
				).
				Value(&a.PositiveRule),
			huh.NewInput().
				Title("Positive label").
				Description("Optional: name the positive class explicitly").
				Placeholder("spam").
				Value(&a.PositiveLabel),
			huh.NewSelect[string]().
				Title("Threshold boundary").
				Description("How a score equal to the threshold is counted in the ROC sweep").
				Options(
					huh.NewOption("inclusive (score >= t is positive)", string(metrics.BoundaryInclusive)),
					huh.NewOption("double-count (legacy)", string(metrics.BoundaryDoubleCount)),
				).
				Value(&a.Boundary),
			huh.NewSelect[string]().
				Title("Threshold correctness").
				Description("What makes a prediction correct in the ROC sweep").
				Options(
					huh.NewOption("label-match (predicted label equals truth)", string(metrics.CorrectnessLabelMatch)),
					huh.NewOption("class (truth is the positive class)", string(metrics.CorrectnessClass)),
				).
				Value(&a.Correctness),
			huh.NewSelect[string]().
				Title("MAPE denominator").
				Options(
					huh.NewOption("truth value", string(metrics.DenominatorTruth)),
					huh.NewOption("model A prediction (legacy)", string(metrics.DenominatorModelA)),
				).
				Value(&a.MAPEDenominator),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Report format").
				Options(formatOptions()...).
				Value(&a.Format),
			huh.NewInput().
				Title("Results directory").
				Placeholder(projectconfig.DefaultOutputDir).
				Value(&a.OutputDir),
			huh.NewConfirm().
				Title("Cache results?").
				Value(&a.CacheEnabled),
			huh.NewInput().
				Title("Dashboard port").
				Value(&a.Port).
				Validate(func(s string) error {
					_, err := parsePort(s)
					return err
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Minimum AUC").
				Description("Optional quality gate, 0 to 1; leave blank to disable").
				Value(&a.MinAUC).
				Validate(func(s string) error {
					_, err := parseOptional(s, 0, 1)
					return err
				}),
			huh.NewInput().
				Title("Maximum MAE").
				Description("Optional quality gate; leave blank to disable").
				Value(&a.MaxMAE).
				Validate(func(s string) error {
					_, err := parseOptional(s, 0, -1)
					return err
				}),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	return a.Apply(base)
}

// WriteConfig validates cfg against the config schema and writes it to
// dir/.versus.yaml. It returns the path written.
func WriteConfig(dir string, cfg *projectconfig.ProjectConfig, overwrite bool) (string, error) {
	path := filepath.Join(dir, projectconfig.FileName)
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%s: %w", path, ErrConfigExists)
		}
	}

	data, err := projectconfig.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	if errs := validation.ValidateConfigBytes(data); len(errs) > 0 {
		return "", fmt.Errorf("generated config is invalid: %s", strings.Join(errs, "; "))
	}

	header := "# versus project configuration. See `versus config validate`.\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

func formatOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(reporting.Formats))
	for _, f := range reporting.Formats {
		opts = append(opts, huh.NewOption(string(f), string(f)))
	}
	return opts
}

func parsePort(s string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || port < 1 || port > 65535 {
		return 0, fmt.Errorf("port must be a number between 1 and 65535")
	}
	return port, nil
}

// parseOptional parses a blank-or-number answer. Blank means 0 (disabled).
// hi < 0 means unbounded.
func parseOptional(s string, lo, hi float64) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if v < lo || (hi >= 0 && v > hi) {
		if hi >= 0 {
			return 0, fmt.Errorf("must be between %g and %g", lo, hi)
		}
		return 0, fmt.Errorf("must be at least %g", lo)
	}
	return v, nil
}

func formatOptional(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
