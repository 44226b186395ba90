package cmd

import (
	"github.com/fs0414/csv-nodeid-decoder/decoder"

	"github.com/spf13/cobra"
)

var encodeFlags processFlags

var encodeCmd = &cobra.Command{
	Use:   "encode <input-path> <column-name> [column-name...]",
	Short: "Base64-encode integer columns of a CSV file",
	Long:  `The inverse of run: integer cells of the given columns are base64-encoded and the rows are written to <name>_b64.csv.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := buildOptions(cmd, &encodeFlags, args)
		if err != nil {
			return err
		}

		d, err := decoder.NewEncoder(opts)
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true
		return runProcessor(cmd, d, &encodeFlags)
	},
}

func init() {
	addProcessFlags(encodeCmd, &encodeFlags)
	rootCmd.AddCommand(encodeCmd)
}
