package main

import (
	"github.com/spf13/cobra"

	"github.com/tturner/sadecode/internal/app"
)

func newAttrsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "attrs",
		Short: "List the supported SA attributes and structures",
		Example: `  sadecode attrs
  sadecode attrs --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			return g.run(cmd, "registry", app.RunAttrs)
		},
	}
}
