package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tturner/sadecode/internal/app"
)

type decodeFlags struct {
	attr       string
	hex        string
	file       string
	offset     int
	msgLen     int
	table      bool
	attrOffset uint16
}

func newDecodeCmd(g *globalFlags) *cobra.Command {
	flags := &decodeFlags{}

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode an SA attribute from hex text or a binary file",
		Long: `Decode one SA attribute record, or a GetTable payload of records, from
hex text or a binary file.

Variable-length attributes (Notice, NodeRecord) take their length from
--msg-len, or from the rest of the input when it is not set.`,
		Example: `  # Decode a LinkRecord from hex
  sadecode decode --attr LinkRecord --hex "00 00 00 01 02 03 00 00 00 00 00 04"

  # Decode a little-endian PortInfoRecord dumped to a file
  sadecode decode --attr 0x12 --file portinfo.bin --order little

  # Decode a GetTable payload with a 16-byte stride
  sadecode decode --attr LinkRecord --file table.bin --table --attr-offset 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			if flags.attr == "" {
				return missingFlagError(cmd, "--attr")
			}
			if flags.hex == "" && flags.file == "" {
				return missingFlagError(cmd, "--hex", "--file")
			}
			input := flags.file
			if input == "" {
				input = "hex (" + strconv.Itoa(len(flags.hex)) + " chars)"
			}
			return g.run(cmd, input, func(env *app.Env) error {
				return app.RunDecode(env, app.DecodeOptions{
					Attr:       flags.attr,
					Hex:        flags.hex,
					File:       flags.file,
					Stdin:      cmd.InOrStdin(),
					Offset:     flags.offset,
					MsgLen:     flags.msgLen,
					Table:      flags.table,
					AttrOffset: flags.attrOffset,
				})
			})
		},
	}

	cmd.Flags().StringVar(&flags.attr, "attr", "", "Attribute name or id (e.g. NodeRecord, 0x0011) (required)")
	cmd.Flags().StringVar(&flags.hex, "hex", "", "Input bytes as hex text")
	cmd.Flags().StringVar(&flags.file, "file", "", "Input binary file, - for stdin")
	cmd.Flags().IntVar(&flags.offset, "offset", 0, "Byte offset of the record in the input")
	cmd.Flags().IntVar(&flags.msgLen, "msg-len", 0, "Record length for variable-length attributes")
	cmd.Flags().BoolVar(&flags.table, "table", false, "Decode the input as a GetTable payload")
	cmd.Flags().Uint16Var(&flags.attrOffset, "attr-offset", 0, "Table stride in 8-byte units (0 = record length)")

	return cmd
}
