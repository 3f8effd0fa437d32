package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"matsimgen/internal/config"
	"matsimgen/internal/ctxlog"
	"matsimgen/internal/scenario"
)

func gridCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Generate synthetic grid scenarios from a YAML description",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrid(cmd, configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "grid.yaml", "Scenario description file")
	return cmd
}

func runGrid(cmd *cobra.Command, configPath string) error {
	cfg, err := config.LoadGridConfig(configPath)
	if err != nil {
		return err
	}
	departures, err := cfg.DepartureWindows()
	if err != nil {
		return err
	}
	ctx := ctxlog.WithLogger(cmd.Context(), slog.Default().With("command", "grid"))

	for _, blockSize := range cfg.BlockSizes {
		for _, policy := range cfg.Policies {
			suffix := "_" + policy + "_" + formatValue(blockSize)
			result, err := scenario.Generate(ctx, scenario.GridParams{
				RootDir:            cfg.RootDir,
				Suffix:             suffix,
				Seed:               cfg.Seed,
				Rows:               cfg.Rows,
				Cols:               cfg.Cols,
				BlockSize:          blockSize,
				AgentCount:         cfg.Agents,
				SpeedLimit:         cfg.SpeedLimit,
				LinkCapacity:       cfg.LinkCapacity,
				MixWorkAndShopping: policy == config.PolicyMixed,
				WorkFacilityRatio:  cfg.EffectiveWorkRatio(),
				Departures:         departures,
			})
			if err != nil {
				return fmt.Errorf("generating %s: %w", suffix, err)
			}
			printResult(cmd, cfg.RootDir, result)
		}
	}
	return nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func printResult(cmd *cobra.Command, dir string, result *scenario.Result) {
	cmd.Printf("Generated %s/%s: %d nodes, %d links, %d facilities, %d agents\n",
		dir, result.ConfigFile, result.Nodes, result.Links, result.Facilities, result.Agents)
}
