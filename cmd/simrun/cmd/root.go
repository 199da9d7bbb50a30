package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "simrun",
	Short: "A deterministic market simulation and margin accounting engine",
	Long: `Simrun drives synthetic and replayed market data through a margined
accounting hierarchy.

It provides tools for:
  - Generating synthetic price series (waves, OU processes, trends, pairs)
  - Replaying recorded market data from SQLite stores
  - Margin and leverage accounting with advisory risk checks
  - Journaling transactions and equity curves to SQLite or CSV`,
}

var verbose bool

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(setupLogging)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func setupLogging() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}
