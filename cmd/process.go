package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fs0414/csv-nodeid-decoder/decoder"
	"github.com/fs0414/csv-nodeid-decoder/gitutil"

	"github.com/spf13/cobra"
)

// processFlags are shared by the run and encode commands.
type processFlags struct {
	encoding    string
	onError     string
	comma       string
	output      string
	crlf        bool
	lazyQuotes  bool
	interactive bool
	confirm     bool
	gitignore   bool
}

func addProcessFlags(cmd *cobra.Command, f *processFlags) {
	cmd.Flags().StringVar(&f.encoding, "encoding", decoder.DefaultEncoding, "text encoding of the input and output files")
	cmd.Flags().StringVar(&f.onError, "on-error", string(decoder.PolicyKeep), "what to do with cells that fail: keep, drop-row or fail")
	cmd.Flags().StringVar(&f.comma, "comma", ",", "field delimiter")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file path (default: derived from the input file name)")
	cmd.Flags().BoolVar(&f.crlf, "crlf", false, "terminate output lines with CRLF")
	cmd.Flags().BoolVar(&f.lazyQuotes, "lazy-quotes", false, "tolerate bare quotes in unquoted fields")
	cmd.Flags().BoolVarP(&f.interactive, "interactive", "i", false, "select columns from the header interactively; takes precedence over config columns")
	cmd.Flags().BoolVar(&f.confirm, "confirm", false, "ask before overwriting an existing output file")
	cmd.Flags().BoolVar(&f.gitignore, "gitignore", false, "offer to add the output file to .gitignore")
}

// buildOptions merges the config file, flags and positional arguments into
// decoder options. Flags override the config file. Positional columns win
// over --interactive, which wins over the config file columns.
func buildOptions(cmd *cobra.Command, f *processFlags, args []string) (decoder.Options, error) {
	changed := cmd.Flags().Changed

	opts := decoder.Options{
		FilePath:    args[0],
		ColumnNames: args[1:],
		Encoding:    config.Encoding,
		OnError:     decoder.Policy(config.OnError),
		CRLF:        config.CRLF,
		LazyQuotes:  config.LazyQuotes,
		OutputPath:  f.output,
		Logger:      logger,
	}
	if len(opts.ColumnNames) == 0 && !f.interactive {
		opts.ColumnNames = config.Columns
	}
	if changed("encoding") || opts.Encoding == "" {
		opts.Encoding = f.encoding
	}
	if changed("on-error") || opts.OnError == "" {
		opts.OnError = decoder.Policy(f.onError)
	}
	if changed("crlf") {
		opts.CRLF = f.crlf
	}
	if changed("lazy-quotes") {
		opts.LazyQuotes = f.lazyQuotes
	}

	comma, err := resolveComma(cmd, f.comma)
	if err != nil {
		return opts, err
	}
	opts.Comma = comma

	if len(opts.ColumnNames) == 0 && f.interactive {
		header, err := decoder.ReadHeader(opts.FilePath, opts.Encoding, opts.Comma)
		if err != nil {
			return opts, fmt.Errorf("failed to read header: %w", err)
		}
		selected, err := promptColumns(header)
		if err != nil {
			return opts, err
		}
		opts.ColumnNames = selected
	}
	if len(opts.ColumnNames) == 0 {
		return opts, fmt.Errorf("usage: %s: at least one column name is required", cmd.UseLine())
	}
	return opts, nil
}

// resolveComma returns the --comma flag when set, else the config file value,
// else the flag default.
func resolveComma(cmd *cobra.Command, flagValue string) (rune, error) {
	comma := config.Comma
	if cmd.Flags().Changed("comma") || comma == "" {
		comma = flagValue
	}
	r, size := utf8.DecodeRuneInString(comma)
	if size == 0 || size != len(comma) {
		return 0, fmt.Errorf("invalid --comma %q: must be a single character", comma)
	}
	return r, nil
}

// runProcessor executes d and prints the summary. It honors --confirm and
// --gitignore.
func runProcessor(cmd *cobra.Command, d *decoder.Decoder, f *processFlags) error {
	outputPath := d.OutputPath()
	if f.confirm {
		if _, err := os.Stat(outputPath); err == nil {
			ok, err := confirmOverwrite(outputPath)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Skipped: %s already exists\n", outputPath)
				return nil
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to check %s: %w", outputPath, err)
		}
	}

	report, err := d.Process(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Done: %s\n", report.OutputPath)
	fmt.Fprintf(out, "Processed columns: %s\n", strings.Join(report.Columns, ", "))
	fmt.Fprintf(out, "Processed rows: %d\n", report.Rows)
	if len(report.Warnings) > 0 {
		fmt.Fprintf(out, "Warnings: %d\n", len(report.Warnings))
	}
	if report.Dropped > 0 {
		fmt.Fprintf(out, "Dropped rows: %d\n", report.Dropped)
	}

	if f.gitignore {
		if err := gitutil.EnsureGitignored(report.OutputPath); err != nil {
			return err
		}
	}
	return nil
}
