package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// handleHelpArg prints help when the first positional argument is "help".
func handleHelpArg(cmd *cobra.Command, args []string) bool {
	if len(args) == 0 || !strings.EqualFold(args[0], "help") {
		return false
	}
	_ = cmd.Help()
	return true
}

// missingFlagError prints usage and reports that none of the alternative
// flags was given.
func missingFlagError(cmd *cobra.Command, flags ...string) error {
	_ = cmd.Help()
	return fmt.Errorf("required flag %s not set", strings.Join(flags, " or "))
}
