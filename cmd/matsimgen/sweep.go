package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"matsimgen/internal/config"
	"matsimgen/internal/ctxlog"
	"matsimgen/internal/scenario"
)

func sweepCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Generate grid scenario variants across parameter sweeps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd, configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "sweep.yaml", "Sweep description file")
	return cmd
}

func runSweep(cmd *cobra.Command, configPath string) error {
	cfg, err := config.LoadSweepConfig(configPath)
	if err != nil {
		return err
	}
	departures, err := cfg.DepartureWindows()
	if err != nil {
		return err
	}
	ctx := ctxlog.WithLogger(cmd.Context(), slog.Default().With("command", "sweep"))

	for _, sweep := range cfg.Sweeps {
		for _, value := range sweep.Values {
			dir := filepath.Join(cfg.RootDir, sweep.Name+"_"+formatValue(value))
			for trial := 0; trial < sweep.Trials; trial++ {
				params := scenario.GridParams{
					RootDir:            dir,
					Suffix:             fmt.Sprintf("_trial_%d", trial+1),
					Seed:               sweep.TrialSeed(cfg.Seed, value, trial),
					Rows:               cfg.Rows,
					Cols:               cfg.Cols,
					BlockSize:          cfg.BlockSize,
					AgentCount:         cfg.Defaults.Agents,
					SpeedLimit:         cfg.Defaults.SpeedLimit,
					LinkCapacity:       cfg.Defaults.LinkCapacity,
					MixWorkAndShopping: false,
					WorkFacilityRatio:  cfg.EffectiveWorkRatio(),
					Departures:         departures,
				}
				switch sweep.Name {
				case config.SweepAgents:
					params.AgentCount = int(value)
				case config.SweepCapacity:
					params.LinkCapacity = value
				case config.SweepMaxspeed:
					params.SpeedLimit = value
				}

				result, err := scenario.Generate(ctx, params)
				if err != nil {
					return fmt.Errorf("generating %s trial %d: %w", dir, trial+1, err)
				}
				printResult(cmd, dir, result)
			}
		}
	}
	return nil
}
