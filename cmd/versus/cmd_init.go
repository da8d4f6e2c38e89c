package main

import (
	"fmt"
	"os"

	"github.com/spboyer/versus/internal/projectconfig"
	"github.com/spboyer/versus/internal/wizard"
	"github.com/spf13/cobra"
)

func newInitCommand() *cobra.Command {
	var force bool
	var useDefaults bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a " + projectconfig.FileName + " for a project",
		Long: `Create a ` + projectconfig.FileName + ` for a project.

Asks for the evaluation conventions, report output and optional quality
gates, then writes the file to dir (default: current directory). Use
--defaults to write the built-in defaults without prompting.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating %s: %w", dir, err)
			}

			cfg := projectconfig.New()
			if !useDefaults {
				var err error
				cfg, err = wizard.Run(cmd.InOrStdin(), cmd.OutOrStdout(), cfg)
				if err != nil {
					return err
				}
			}

			path, err := wizard.WriteConfig(dir, cfg, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path) //nolint:errcheck
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing "+projectconfig.FileName)
	cmd.Flags().BoolVar(&useDefaults, "defaults", false, "Write defaults without prompting")

	return cmd
}
