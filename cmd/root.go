package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var configPath string
var verbose bool

// Populated by PersistentPreRunE before any subcommand runs.
var (
	config Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "csv-nodeid-decoder",
	Short: "Decode base64-encoded integer columns in CSV files",
	Long: `csv-nodeid-decoder rewrites selected CSV columns whose cells hold base64-encoded
integers (for example GraphQL node IDs) into plain decimal values. The result is
written next to the input as <name>_opts.csv.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

		explicit := cmd.Flags().Changed("config")
		loaded, err := loadConfig(configPath, explicit)
		if err != nil {
			return err
		}
		config = loaded
		return nil
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "yaml file with default options")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
