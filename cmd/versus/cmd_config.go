package main

import (
	"fmt"
	"path/filepath"

	"github.com/spboyer/versus/internal/projectconfig"
	"github.com/spboyer/versus/internal/validation"
	"github.com/spf13/cobra"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and validate " + projectconfig.FileName,
	}

	cmd.AddCommand(newConfigValidateCommand())
	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Check a config file against the schema",
		Long: `Check a config file against the versus config schema.

path defaults to ` + projectconfig.FileName + ` in --config-dir.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			} else {
				dir, _ := cmd.Flags().GetString("config-dir")
				path = filepath.Join(dir, projectconfig.FileName)
			}

			errs, err := validation.ValidateConfigFile(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(errs) > 0 {
				for _, e := range errs {
					fmt.Fprintf(out, "  ✗ %s\n", e) //nolint:errcheck
				}
				return fmt.Errorf("%s: %d validation error(s)", path, len(errs))
			}
			fmt.Fprintf(out, "✓ %s is valid\n", path) //nolint:errcheck
			return nil
		},
	}
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration, defaults included",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			data, err := projectconfig.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
