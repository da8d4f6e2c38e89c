package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spboyer/versus/internal/evaluation"
	"github.com/spboyer/versus/internal/metrics"
	"github.com/spboyer/versus/internal/models"
	"github.com/spf13/cobra"
)

func newHeadersCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "headers <file.csv|->",
		Short: "Print the column headers of a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			headers, err := evaluation.New().Headers(input)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, headers)
			}
			for i, h := range headers {
				fmt.Fprintf(out, "%3d  %s\n", i+1, h) //nolint:errcheck
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a list")
	return cmd
}

func newMatrixCommand() *cobra.Command {
	var flags evalFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "matrix <file.csv|->",
		Short: "Print both models' confusion matrices",
		Long: `Print the confusion matrix of each model, built from the predicted
labels (exact mode). The positive class is chosen by --positive or
--positive-rule.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, opts, err := flags.setup(cmd)
			if err != nil {
				return err
			}
			input, _, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			pair, err := svc.ConfusionMatrix(input, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, pair)
			}
			writeColumns(out, []string{"", "model A", "model B"}, [][]string{
				{"true negatives", fmt.Sprint(pair.A.TN), fmt.Sprint(pair.B.TN)},
				{"false positives", fmt.Sprint(pair.A.FP), fmt.Sprint(pair.B.FP)},
				{"false negatives", fmt.Sprint(pair.A.FN), fmt.Sprint(pair.B.FN)},
				{"true positives", fmt.Sprint(pair.A.TP), fmt.Sprint(pair.B.TP)},
				{"total", fmt.Sprint(pair.A.Total()), fmt.Sprint(pair.B.Total())},
			})
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func newROCCommand() *cobra.Command {
	var flags evalFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "roc <file.csv|->",
		Short: "Print both models' ROC curves",
		Long: `Print one (false-positive rate, true-positive rate) point per model for
each of the 100 thresholds 0.00, 0.01, ..., 0.99, in threshold order.
Undefined rates print as NaN.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, opts, err := flags.setup(cmd)
			if err != nil {
				return err
			}
			input, _, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			curves, err := svc.ROCCurve(input, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, curves)
			}
			rows := make([][]string, 0, len(curves.A))
			for i := range curves.A {
				rows = append(rows, []string{
					fmt.Sprintf("%.2f", metrics.Threshold(i)),
					formatFloat(curves.A[i].X), formatFloat(curves.A[i].Y),
					formatFloat(curves.B[i].X), formatFloat(curves.B[i].Y),
				})
			}
			writeColumns(out, []string{"threshold", "fpr A", "tpr A", "fpr B", "tpr B"}, rows)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func newAUCCommand() *cobra.Command {
	var flags evalFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "auc <file.csv|->",
		Short: "Print the area under each model's ROC curve",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, opts, err := flags.setup(cmd)
			if err != nil {
				return err
			}
			input, _, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			auc, err := svc.AUC(input, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, auc)
			}
			writeColumns(out, []string{"", "AUC"}, [][]string{
				{"model A", formatFloat(auc.A)},
				{"model B", formatFloat(auc.B)},
			})
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func newRegressCommand() *cobra.Command {
	var flags evalFlags
	var metric string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "regress <file.csv|->",
		Short: "Print regression error metrics for both models",
		Long: `Print MAE, MAPE (as a percentage) and MSE for both models. Use --metric
to print only one of them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			metric = strings.ToLower(metric)
			compute := map[string]func(string, evaluation.Options) (models.Pair[models.Float], error){}

			_, svc, opts, err := flags.setup(cmd)
			if err != nil {
				return err
			}
			compute["mae"] = svc.MAE
			compute["mape"] = svc.MAPE
			compute["mse"] = svc.MSE

			names := []string{"mae", "mape", "mse"}
			if metric != "all" {
				if _, ok := compute[metric]; !ok {
					return fmt.Errorf("unknown metric %q: must be mae, mape, mse or all", metric)
				}
				names = []string{metric}
			}

			input, _, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			results := make(map[string]models.Pair[models.Float], len(names))
			rows := make([][]string, 0, len(names))
			for _, name := range names {
				pair, err := compute[name](input, opts)
				if err != nil {
					return err
				}
				results[name] = pair
				rows = append(rows, []string{strings.ToUpper(name), formatFloat(pair.A), formatFloat(pair.B)})
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, results)
			}
			writeColumns(out, []string{"", "model A", "model B"}, rows)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&metric, "metric", "all", "Metric to print: mae, mape, mse or all")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatFloat(f models.Float) string {
	if !f.IsFinite() {
		return "NaN"
	}
	return fmt.Sprintf("%.4f", float64(f))
}

// writeColumns prints a left-aligned table sized to its widest cells.
func writeColumns(w io.Writer, header []string, rows [][]string) {
	widths := make([]int, len(header))
	for _, r := range append([][]string{header}, rows...) {
		for i, cell := range r {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	line := func(cells []string) {
		var sb strings.Builder
		for i, cell := range cells {
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(runewidth.FillRight(cell, widths[i]))
		}
		fmt.Fprintln(w, strings.TrimRight(sb.String(), " ")) //nolint:errcheck
	}

	line(header)
	for _, r := range rows {
		line(r)
	}
}
