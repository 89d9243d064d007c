package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tturner/sadecode/internal/config"
)

type configFlags struct {
	init  bool
	path  string
	force bool
}

func newConfigCmd() *cobra.Command {
	flags := &configFlags{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or check a sadecode config file",
		Example: `  sadecode config --init
  sadecode config --path ./sadecode.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			out := cmd.OutOrStdout()
			if flags.init {
				if _, err := os.Stat(flags.path); err == nil && !flags.force {
					return fmt.Errorf("%s already exists (use --force to overwrite)", flags.path)
				}
				if err := config.WriteDefaultConfig(flags.path); err != nil {
					return err
				}
				fmt.Fprintf(out, "wrote default config to %s\n", flags.path)
				return nil
			}
			cfg, err := config.LoadConfig(flags.path, false)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s: ok (byte order %s, output %s, log level %s)\n",
				flags.path, cfg.ByteOrder, cfg.Output.Format, cfg.Logging.Level)
			return nil
		},
	}

	cmd.Flags().BoolVar(&flags.init, "init", false, "Write a default config file")
	cmd.Flags().StringVar(&flags.path, "path", config.DefaultPath, "Config file path")
	cmd.Flags().BoolVar(&flags.force, "force", false, "Overwrite an existing file with --init")

	return cmd
}
