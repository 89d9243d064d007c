package main

import (
	"github.com/spf13/cobra"

	"github.com/tturner/sadecode/internal/app"
)

type pcapFlags struct {
	input           string
	attr            string
	max             int
	includeRequests bool
}

func newPcapCmd(g *globalFlags) *cobra.Command {
	flags := &pcapFlags{}

	cmd := &cobra.Command{
		Use:   "pcap",
		Short: "Decode SA responses from InfiniBand captures",
		Long: `Extract Subnet Administration responses from pcap or pcapng captures
(link type 247, InfiniBand) and decode their attribute records.

Multi-segment RMPP transfers are reassembled before decoding. A directory
input decodes every capture below it.`,
		Example: `  # Decode every SA response in a capture
  sadecode pcap --input opensm.pcap

  # Only PathRecords, first 5 responses, as JSON
  sadecode pcap --input captures/ --attr PathRecord --max 5 --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			if flags.input == "" && len(args) > 0 {
				flags.input = args[0]
			}
			if flags.input == "" {
				return missingFlagError(cmd, "--input")
			}
			return g.run(cmd, flags.input, func(env *app.Env) error {
				return app.RunPCAP(env, app.PCAPOptions{
					Input:           flags.input,
					Attr:            flags.attr,
					Max:             flags.max,
					IncludeRequests: flags.includeRequests,
				})
			})
		},
	}

	cmd.Flags().StringVar(&flags.input, "input", "", "Capture file or directory (required)")
	cmd.Flags().StringVar(&flags.attr, "attr", "", "Only decode this attribute (name or id)")
	cmd.Flags().IntVar(&flags.max, "max", 0, "Stop after this many SA payloads (0 = all)")
	cmd.Flags().BoolVar(&flags.includeRequests, "requests", false, "Also decode request MADs")

	return cmd
}
