package main

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spboyer/versus/internal/evaluation"
	"github.com/spboyer/versus/internal/models"
	"github.com/spboyer/versus/internal/projectconfig"
	"github.com/spboyer/versus/internal/reporting"
	"github.com/spboyer/versus/internal/spinner"
	"github.com/spboyer/versus/internal/watch"
	"github.com/spboyer/versus/internal/webapi"
	"github.com/spf13/cobra"
)

type reportFlags struct {
	eval    evalFlags
	mode    string
	format  string
	output  string
	watch   bool
	save    bool
	minAUC  float64
	maxMAE  float64
	maxMAPE float64
	maxMSE  float64
}

func newReportCommand() *cobra.Command {
	var f reportFlags

	cmd := &cobra.Command{
		Use:   "report <file.csv|->",
		Short: "Evaluate both models and render a full report",
		Long: `Evaluate both models and render a full report.

Classification reports carry both confusion matrices, derived rates, the ROC
curves and AUC. Regression reports carry MAE, MAPE and MSE.

Quality gates (--min-auc, --max-mae, --max-mape, --max-mse, or the gates
section of .versus.yaml) turn the report into a check: if any gate fails the
command exits with status 1.

With --watch the report is re-rendered every time the CSV file is written,
until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return reportE(cmd, args[0], &f)
		},
	}

	f.eval.register(cmd)
	cmd.Flags().StringVar(&f.mode, "mode", string(models.ModeClassification), "Evaluation mode: classification or regression")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "Output format: table, json, markdown, html or junit (default from config)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Write the report to this file instead of stdout")
	cmd.Flags().BoolVarP(&f.watch, "watch", "w", false, "Re-run the report whenever the CSV file changes")
	cmd.Flags().BoolVar(&f.save, "save", false, "Also save the report as JSON under the results directory")
	cmd.Flags().Float64Var(&f.minAUC, "min-auc", 0, "Fail unless both models reach this AUC")
	cmd.Flags().Float64Var(&f.maxMAE, "max-mae", 0, "Fail unless both models' MAE is at most this")
	cmd.Flags().Float64Var(&f.maxMAPE, "max-mape", 0, "Fail unless both models' MAPE (percent) is at most this")
	cmd.Flags().Float64Var(&f.maxMSE, "max-mse", 0, "Fail unless both models' MSE is at most this")

	return cmd
}

// reportRun is one resolved report invocation, re-executed on each change in watch mode.
type reportRun struct {
	svc    *evaluation.Service
	opts   evaluation.Options
	mode   models.Mode
	format reporting.Format
	gates  reporting.Gates
	output string
	store  *webapi.FileStore
}

func reportE(cmd *cobra.Command, path string, f *reportFlags) error {
	cfg, svc, opts, err := f.eval.setup(cmd)
	if err != nil {
		return err
	}

	mode := models.Mode(strings.ToLower(f.mode))
	if mode != models.ModeClassification && mode != models.ModeRegression {
		return fmt.Errorf("unknown mode %q: must be %s or %s", f.mode, models.ModeClassification, models.ModeRegression)
	}

	formatName := cfg.Output.Format
	if cmd.Flags().Changed("format") {
		formatName = f.format
	}
	format, err := reporting.ParseFormat(formatName)
	if err != nil {
		return err
	}

	run := &reportRun{
		svc:    svc,
		opts:   opts,
		mode:   mode,
		format: format,
		gates:  f.gates(cmd, cfg),
		output: f.output,
	}
	if f.save {
		run.store = webapi.NewFileStore(cmp.Or(cfg.Output.Dir, projectconfig.DefaultOutputDir))
	}

	if !f.watch {
		return run.once(cmd, path)
	}

	if path == "-" {
		return fmt.Errorf("--watch needs a file path, not stdin")
	}
	return run.watch(cmd, path)
}

// gates merges the config's gates with explicitly set flags.
func (f *reportFlags) gates(cmd *cobra.Command, cfg *projectconfig.ProjectConfig) reporting.Gates {
	g := reporting.Gates{
		MinAUC:  cfg.Gates.MinAUC,
		MaxMAE:  cfg.Gates.MaxMAE,
		MaxMAPE: cfg.Gates.MaxMAPE,
		MaxMSE:  cfg.Gates.MaxMSE,
	}
	flags := cmd.Flags()
	if flags.Changed("min-auc") {
		g.MinAUC = f.minAUC
	}
	if flags.Changed("max-mae") {
		g.MaxMAE = f.maxMAE
	}
	if flags.Changed("max-mape") {
		g.MaxMAPE = f.maxMAPE
	}
	if flags.Changed("max-mse") {
		g.MaxMSE = f.maxMSE
	}
	return g
}

// once evaluates path, renders the report and applies the gates.
func (r *reportRun) once(cmd *cobra.Command, path string) error {
	input, name, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	stop := spinner.StartOnTerminal(os.Stderr, fmt.Sprintf("Evaluating %s (%s)", name, r.mode))
	report, err := r.svc.Evaluate(r.mode, input, r.opts)
	stop()
	if err != nil {
		return err
	}
	report.SetSource(name)

	results := reporting.CheckGates(report, r.gates)
	if err := r.render(cmd.OutOrStdout(), report, results); err != nil {
		return err
	}

	if r.store != nil {
		if err := r.store.SaveReport(report); err != nil {
			return fmt.Errorf("saving report: %w", err)
		}
		slog.Info("saved report", "id", report.ReportID(), "dir", r.store.Dir())
	}

	if failed := reporting.FailedGates(results); len(failed) > 0 {
		names := make([]string, len(failed))
		for i, g := range failed {
			names[i] = g.Name()
		}
		return &GateFailureError{
			Message: fmt.Sprintf("%d quality gate(s) failed: %s", len(failed), strings.Join(names, ", ")),
		}
	}
	return nil
}

// render writes to stdout, to the --output file, or into the --output
// directory as <report id><format extension>.
func (r *reportRun) render(stdout io.Writer, report *models.Report, results []reporting.GateResult) error {
	if r.output == "" {
		return reporting.Render(stdout, report, r.format, results)
	}

	path := r.output
	if info, err := os.Stat(path); (err == nil && info.IsDir()) || strings.HasSuffix(path, string(filepath.Separator)) {
		path = filepath.Join(path, report.ReportID()+r.format.Extension())
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := reporting.Render(f, report, r.format, results); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	fmt.Fprintf(stdout, "Report written to: %s\n", path) //nolint:errcheck
	return nil
}

// watch runs the report once, then again after every write to path, until
// interrupted. Evaluation and gate failures are printed and watching continues.
func (r *reportRun) watch(cmd *cobra.Command, path string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	w, err := watch.New(watch.Config{Path: path, Logger: slog.Default()})
	if err != nil {
		return err
	}

	errOut := cmd.ErrOrStderr()
	runOnce := func(context.Context) error {
		if err := r.once(cmd, path); err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err) //nolint:errcheck
		}
		return nil
	}

	_ = runOnce(ctx)
	fmt.Fprintf(errOut, "Watching %s for changes (Ctrl+C to stop)\n", w.Path()) //nolint:errcheck
	return w.Run(ctx, runOnce)
}
