package config

import (
	"fmt"

	"matsimgen/internal/scenario"
)

const (
	SweepAgents   = "agents"
	SweepCapacity = "capacity"
	SweepMaxspeed = "maxspeed"
)

// SweepConfig describes segregated grid parameter sweeps: for each sweep,
// one scenario per (value, trial) pair under <root_dir>/<name>_<value>/.
type SweepConfig struct {
	Version    int              `yaml:"version"`
	RootDir    string           `yaml:"root_dir"`
	Seed       int64            `yaml:"seed"`
	Rows       int              `yaml:"rows"`
	Cols       int              `yaml:"cols"`
	BlockSize  float64          `yaml:"block_size"`
	WorkRatio  *float64         `yaml:"work_ratio"`
	Defaults   SweepDefaults    `yaml:"defaults"`
	Sweeps     []Sweep          `yaml:"sweeps"`
	Departures *DepartureConfig `yaml:"departures"`
}

type SweepDefaults struct {
	Agents       int     `yaml:"agents"`
	SpeedLimit   float64 `yaml:"speed_limit"`
	LinkCapacity float64 `yaml:"link_capacity"`
}

type Sweep struct {
	Name   string    `yaml:"name"`
	Values []float64 `yaml:"values"`
	Trials int       `yaml:"trials"`
	// Seeds optionally pins one explicit seed per trial; otherwise trial
	// seeds derive from the master seed.
	Seeds []int64 `yaml:"seeds"`
}

func LoadSweepConfig(path string) (*SweepConfig, error) {
	var cfg SweepConfig
	if err := load(path, &cfg); err != nil {
		return nil, err
	}
	if err := validateSweepConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading scenario config: %w", err)
	}
	return &cfg, nil
}

func validateSweepConfig(cfg *SweepConfig) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	if cfg.RootDir == "" {
		return fmt.Errorf("root_dir is required")
	}
	if cfg.Rows < 2 || cfg.Cols < 2 {
		return fmt.Errorf("rows and cols must both be at least 2")
	}
	if cfg.BlockSize <= 0 {
		return fmt.Errorf("block_size must be positive")
	}
	if cfg.WorkRatio != nil && (*cfg.WorkRatio < 0 || *cfg.WorkRatio > 1) {
		return fmt.Errorf("work_ratio must be within [0, 1]")
	}
	if cfg.Defaults.Agents <= 0 {
		return fmt.Errorf("defaults.agents must be positive")
	}
	if cfg.Defaults.SpeedLimit <= 0 {
		return fmt.Errorf("defaults.speed_limit must be positive")
	}
	if cfg.Defaults.LinkCapacity <= 0 {
		return fmt.Errorf("defaults.link_capacity must be positive")
	}
	if len(cfg.Sweeps) == 0 {
		return fmt.Errorf("at least one sweep is required")
	}

	seen := make(map[string]struct{})
	for _, sweep := range cfg.Sweeps {
		switch sweep.Name {
		case SweepAgents, SweepCapacity, SweepMaxspeed:
		default:
			return fmt.Errorf("unknown sweep %q", sweep.Name)
		}
		if _, exists := seen[sweep.Name]; exists {
			return fmt.Errorf("duplicate sweep: %q", sweep.Name)
		}
		seen[sweep.Name] = struct{}{}

		if len(sweep.Values) == 0 {
			return fmt.Errorf("sweep %q needs at least one value", sweep.Name)
		}
		for _, value := range sweep.Values {
			if value <= 0 {
				return fmt.Errorf("sweep %q values must be positive, got %v", sweep.Name, value)
			}
		}
		if sweep.Trials <= 0 {
			return fmt.Errorf("sweep %q trials must be positive", sweep.Name)
		}
		if len(sweep.Seeds) != 0 && len(sweep.Seeds) != sweep.Trials {
			return fmt.Errorf("sweep %q lists %d seeds for %d trials", sweep.Name, len(sweep.Seeds), sweep.Trials)
		}
	}
	return cfg.Departures.validate()
}

// TrialSeed returns the explicit seed for a trial when configured, else a
// seed derived from the master seed. Trials are zero-based.
func (s Sweep) TrialSeed(master int64, value float64, trial int) int64 {
	if len(s.Seeds) != 0 {
		return s.Seeds[trial]
	}
	return scenario.DeriveTrialSeed(master, s.Name, value, trial)
}

func (c *SweepConfig) EffectiveWorkRatio() float64 {
	if c.WorkRatio == nil {
		return 0.5
	}
	return *c.WorkRatio
}

func (c *SweepConfig) DepartureWindows() (scenario.DepartureWindows, error) {
	return c.Departures.Windows(scenario.DefaultGridDepartures())
}
