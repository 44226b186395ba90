package cmd

import (
	"github.com/fs0414/csv-nodeid-decoder/decoder"

	"github.com/spf13/cobra"
)

var runFlags processFlags

var runCmd = &cobra.Command{
	Use:   "run <input-path> <column-name> [column-name...]",
	Short: "Decode base64 integer columns of a CSV file",
	Long: `Reads the CSV file, base64-decodes every non-empty cell of the given columns and
parses the result as a base-10 integer. The rows are written to <name>_opts.csv in
the same directory. Cells that do not decode keep their original value and are
reported as warnings unless --on-error says otherwise.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := buildOptions(cmd, &runFlags, args)
		if err != nil {
			return err
		}

		d, err := decoder.New(opts)
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true
		return runProcessor(cmd, d, &runFlags)
	},
}

func init() {
	addProcessFlags(runCmd, &runFlags)
	rootCmd.AddCommand(runCmd)
}
