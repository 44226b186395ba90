package cmd

import (
	"fmt"

	"github.com/fs0414/csv-nodeid-decoder/decoder"

	"github.com/spf13/cobra"
)

var (
	headersEncoding string
	headersComma    string
)

var headersCmd = &cobra.Command{
	Use:   "headers <input-path>",
	Short: "List the column names of a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		encoding := config.Encoding
		if cmd.Flags().Changed("encoding") || encoding == "" {
			encoding = headersEncoding
		}

		comma, err := resolveComma(cmd, headersComma)
		if err != nil {
			return err
		}

		header, err := decoder.ReadHeader(args[0], encoding, comma)
		if err != nil {
			return fmt.Errorf("failed to read header: %w", err)
		}
		for _, name := range header {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	headersCmd.Flags().StringVar(&headersEncoding, "encoding", decoder.DefaultEncoding, "text encoding of the input file")
	headersCmd.Flags().StringVar(&headersComma, "comma", ",", "field delimiter")
	rootCmd.AddCommand(headersCmd)
}
