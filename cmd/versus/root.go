package main

import (
	"log/slog"
	"path/filepath"

	"github.com/spboyer/versus/internal/projectconfig"
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "versus",
		Short: "versus - compare two models against shared ground truth",
		Long: `versus compares two competing models against the same ground truth.

Classification tables (truth, label_a, score_a, label_b, score_b) yield
confusion matrices, 100-threshold ROC curves and AUC for both models.
Regression tables (truth, pred_a, pred_b) yield MAE, MAPE and MSE.

Settings are read from .versus.yaml, searched for upward from the working
directory; command-line flags override it.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", ".", "Directory to start the "+projectconfig.FileName+" search from")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newHeadersCommand())
	cmd.AddCommand(newMatrixCommand())
	cmd.AddCommand(newROCCommand())
	cmd.AddCommand(newAUCCommand())
	cmd.AddCommand(newRegressCommand())
	cmd.AddCommand(newReportCommand())
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newDashboardCommand())
	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newCacheCommand())
	cmd.AddCommand(newConfigCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

// loadConfig reads .versus.yaml for cmd, starting at --config-dir. Relative
// directories in the file are taken relative to the file.
func loadConfig(cmd *cobra.Command) (*projectconfig.ProjectConfig, error) {
	dir, err := cmd.Flags().GetString("config-dir")
	if err != nil || dir == "" {
		dir = "."
	}
	cfg, path, err := projectconfig.LoadWithPath(dir)
	if err != nil {
		return nil, err
	}
	if path != "" {
		slog.Debug("loaded project config", "path", path)
		cfg.ResolveDirs(filepath.Dir(path))
	}
	return cfg, nil
}
