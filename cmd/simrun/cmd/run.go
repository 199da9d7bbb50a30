package cmd

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/marketsim/config"
	"github.com/rustyeddy/marketsim/journal"
	"github.com/rustyeddy/marketsim/market"
	"github.com/rustyeddy/marketsim/pkg/id"
	"github.com/rustyeddy/marketsim/sim"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation from a config file",
	Long: `Run a simulation using settings from a configuration file.

The config file specifies the data source, account parameters, the number
of steps and where to journal the results.

Example:
  simrun run -f examples/configs/sine.yaml`,
	RunE: runRun,
}

var (
	runConfigPath string
	runSteps      int
	runJournal    string
	runJournalTo  string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	runCmd.Flags().IntVar(&runSteps, "steps", 0, "override run.steps from the config")
	runCmd.Flags().StringVar(&runJournal, "journal", "", "override journal backend (none, sqlite, csv)")
	runCmd.Flags().StringVar(&runJournalTo, "journal-path", "", "override journal output path")
	runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(runConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if runSteps > 0 {
		cfg.Run.Steps = runSteps
	}
	if runJournal != "" {
		cfg.Journal.Backend = runJournal
	}
	if runJournalTo != "" {
		cfg.Journal.Path = runJournalTo
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	runID := cfg.Run.ID
	if runID == "" {
		runID = id.New()
	}

	assets, err := cfg.AssetSet()
	if err != nil {
		return err
	}
	env, err := sim.NewEnv(cfg.DataSource.Type, cfg.DataSource.SourceConfig(), assets, cfg.Account.InitCash)
	if err != nil {
		return fmt.Errorf("build environment: %w", err)
	}
	defer env.Close()

	if r := cfg.Account.RequiredMargin; r != 0 {
		if err := env.Portfolio().SetRequiredMargin(r); err != nil {
			return err
		}
	}
	if m := cfg.Account.MaintenanceMargin; m != 0 {
		if err := env.Portfolio().SetMaintenanceMargin(m); err != nil {
			return err
		}
	}

	j, err := journal.New(cfg.Journal.Backend, cfg.Journal.Path)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer j.Close()

	log.Info().
		Str("run_id", runID).
		Str("source", cfg.DataSource.Type).
		Int("steps", cfg.Run.Steps).
		Strs("assets", env.Assets().Codes()).
		Float64("init_cash", cfg.Account.InitCash).
		Msg("starting simulation")

	for step := 1; step <= cfg.Run.Steps; step++ {
		if _, err := env.Step(); err != nil {
			if errors.Is(err, market.ErrDataExhausted) {
				log.Info().Int("step", step).Msg("data exhausted, stopping early")
				break
			}
			return fmt.Errorf("step %d: %w", step, err)
		}

		snap := journal.EquitySnapshot{
			RunID:          runID,
			Step:           env.Steps(),
			Timestamp:      env.CurrentTime(),
			Cash:           env.Cash(),
			Equity:         env.Equity(),
			UsedMargin:     env.UsedMargin(),
			BorrowedMargin: env.Portfolio().BorrowedMargin(),
			PnL:            env.PnL(),
		}
		if err := j.RecordEquity(snap); err != nil {
			return fmt.Errorf("journal equity: %w", err)
		}

		if every := cfg.Run.LogEvery; every > 0 && step%every == 0 {
			log.Info().
				Int("step", step).
				Uint64("ts", snap.Timestamp).
				Float64("equity", snap.Equity).
				Float64("cash", snap.Cash).
				Str("risk", env.CheckRisk().String()).
				Msg("progress")
		}
	}

	log.Info().
		Str("run_id", runID).
		Uint64("steps", env.Steps()).
		Float64("equity", env.Equity()).
		Float64("pnl", env.PnL()).
		Msg("simulation finished")
	return nil
}
