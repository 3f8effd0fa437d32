package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"matsimgen/internal/config"
	"matsimgen/internal/ctxlog"
	"matsimgen/internal/scenario"
)

func networkCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "network",
		Short: "Generate scenarios seeded by an existing network document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNetwork(cmd, configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "network.yaml", "Scenario description file")
	return cmd
}

func runNetwork(cmd *cobra.Command, configPath string) error {
	cfg, err := config.LoadNetworkConfig(configPath)
	if err != nil {
		return err
	}
	departures, err := cfg.DepartureWindows()
	if err != nil {
		return err
	}
	ctx := ctxlog.WithLogger(cmd.Context(), slog.Default().With("command", "network"))

	for _, run := range cfg.Runs {
		ratios, err := run.ParseRatios()
		if err != nil {
			return err
		}
		result, err := scenario.GenerateFromNetwork(ctx, scenario.NetworkParams{
			RootDir:        cfg.RootDir,
			Suffix:         run.Suffix,
			NetworkFile:    cfg.NetworkFile,
			Seed:           cfg.Seed,
			AgentCount:     cfg.Agents,
			FacilityRatios: ratios,
			Departures:     departures,
		})
		if err != nil {
			return fmt.Errorf("generating %s: %w", run.Suffix, err)
		}
		printResult(cmd, cfg.RootDir, result)
	}
	return nil
}
