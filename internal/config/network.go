package config

import (
	"fmt"

	"matsimgen/internal/model"
	"matsimgen/internal/scenario"
)

// NetworkConfig describes scenarios seeded by an existing network
// document: one generation run per configured ratio set.
type NetworkConfig struct {
	Version     int              `yaml:"version"`
	RootDir     string           `yaml:"root_dir"`
	NetworkFile string           `yaml:"network_file"`
	Seed        int64            `yaml:"seed"`
	Agents      int              `yaml:"agents"`
	Runs        []NetworkRun     `yaml:"runs"`
	Departures  *DepartureConfig `yaml:"departures"`
}

type NetworkRun struct {
	Suffix         string        `yaml:"suffix"`
	FacilityRatios []RatioConfig `yaml:"facility_ratios"`
}

type RatioConfig struct {
	Activities []string `yaml:"activities"`
	Ratio      float64  `yaml:"ratio"`
}

func LoadNetworkConfig(path string) (*NetworkConfig, error) {
	var cfg NetworkConfig
	if err := load(path, &cfg); err != nil {
		return nil, err
	}
	if err := validateNetworkConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading scenario config: %w", err)
	}
	return &cfg, nil
}

func validateNetworkConfig(cfg *NetworkConfig) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	if cfg.RootDir == "" {
		return fmt.Errorf("root_dir is required")
	}
	if cfg.NetworkFile == "" {
		return fmt.Errorf("network_file is required")
	}
	if cfg.Agents <= 0 {
		return fmt.Errorf("agents must be positive")
	}
	if len(cfg.Runs) == 0 {
		return fmt.Errorf("at least one run is required")
	}

	seen := make(map[string]struct{})
	for i, run := range cfg.Runs {
		if _, exists := seen[run.Suffix]; exists {
			return fmt.Errorf("duplicate run suffix: %q", run.Suffix)
		}
		seen[run.Suffix] = struct{}{}

		if len(run.FacilityRatios) == 0 {
			return fmt.Errorf("run %d needs at least one facility ratio", i)
		}
		sum := 0.0
		for _, ratio := range run.FacilityRatios {
			if len(ratio.Activities) == 0 {
				return fmt.Errorf("run %d has a ratio without activity types", i)
			}
			for _, raw := range ratio.Activities {
				if _, err := model.ParseActivityType(raw); err != nil {
					return fmt.Errorf("run %d: %w", i, err)
				}
			}
			if ratio.Ratio < 0 || ratio.Ratio > 1 {
				return fmt.Errorf("run %d: ratio must be within [0, 1], got %v", i, ratio.Ratio)
			}
			sum += ratio.Ratio
		}
		if sum > 1 {
			return fmt.Errorf("run %d: ratios must sum to at most 1.0, got %v", i, sum)
		}
	}
	return cfg.Departures.validate()
}

// ParseRatios converts a run's ratio list into scenario parameters.
func (r NetworkRun) ParseRatios() ([]scenario.FacilityRatio, error) {
	ratios := make([]scenario.FacilityRatio, 0, len(r.FacilityRatios))
	for _, raw := range r.FacilityRatios {
		ratio := scenario.FacilityRatio{Ratio: raw.Ratio}
		for _, tag := range raw.Activities {
			activity, err := model.ParseActivityType(tag)
			if err != nil {
				return nil, err
			}
			ratio.Activities = append(ratio.Activities, activity)
		}
		ratios = append(ratios, ratio)
	}
	return ratios, nil
}

func (c *NetworkConfig) DepartureWindows() (scenario.DepartureWindows, error) {
	return c.Departures.Windows(scenario.DefaultNetworkDepartures())
}
