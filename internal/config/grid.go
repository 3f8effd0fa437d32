package config

import (
	"fmt"

	"matsimgen/internal/scenario"
)

const (
	PolicySegregated = "segregated"
	PolicyMixed      = "mixed"
)

// GridConfig describes a family of synthetic grid scenarios: one
// generation run per (block size, policy) combination.
type GridConfig struct {
	Version      int              `yaml:"version"`
	RootDir      string           `yaml:"root_dir"`
	Seed         int64            `yaml:"seed"`
	Rows         int              `yaml:"rows"`
	Cols         int              `yaml:"cols"`
	Agents       int              `yaml:"agents"`
	SpeedLimit   float64          `yaml:"speed_limit"`
	LinkCapacity float64          `yaml:"link_capacity"`
	BlockSizes   []float64        `yaml:"block_sizes"`
	Policies     []string         `yaml:"policies"`
	WorkRatio    *float64         `yaml:"work_ratio"`
	Departures   *DepartureConfig `yaml:"departures"`
}

func LoadGridConfig(path string) (*GridConfig, error) {
	var cfg GridConfig
	if err := load(path, &cfg); err != nil {
		return nil, err
	}
	if err := validateGridConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading scenario config: %w", err)
	}
	return &cfg, nil
}

func validateGridConfig(cfg *GridConfig) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	if cfg.RootDir == "" {
		return fmt.Errorf("root_dir is required")
	}
	if cfg.Rows < 2 || cfg.Cols < 2 {
		return fmt.Errorf("rows and cols must both be at least 2")
	}
	if cfg.Agents <= 0 {
		return fmt.Errorf("agents must be positive")
	}
	if cfg.SpeedLimit <= 0 {
		return fmt.Errorf("speed_limit must be positive (meters/second)")
	}
	if cfg.LinkCapacity <= 0 {
		return fmt.Errorf("link_capacity must be positive (vehicles/hour)")
	}
	if len(cfg.BlockSizes) == 0 {
		return fmt.Errorf("at least one block size is required")
	}
	for _, size := range cfg.BlockSizes {
		if size <= 0 {
			return fmt.Errorf("block sizes must be positive, got %v", size)
		}
	}
	if len(cfg.Policies) == 0 {
		return fmt.Errorf("at least one policy is required")
	}
	for _, policy := range cfg.Policies {
		if policy != PolicySegregated && policy != PolicyMixed {
			return fmt.Errorf("unknown policy %q", policy)
		}
	}
	if cfg.WorkRatio != nil && (*cfg.WorkRatio < 0 || *cfg.WorkRatio > 1) {
		return fmt.Errorf("work_ratio must be within [0, 1]")
	}
	return cfg.Departures.validate()
}

// EffectiveWorkRatio falls back to an even work/shopping split.
func (c *GridConfig) EffectiveWorkRatio() float64 {
	if c.WorkRatio == nil {
		return 0.5
	}
	return *c.WorkRatio
}

func (c *GridConfig) DepartureWindows() (scenario.DepartureWindows, error) {
	return c.Departures.Windows(scenario.DefaultGridDepartures())
}
