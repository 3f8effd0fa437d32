// Package config loads the YAML scenario descriptions consumed by the
// matsimgen commands. Validation happens at load time so a bad description
// fails before any document is written.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"matsimgen/internal/model"
	"matsimgen/internal/scenario"
)

type WindowConfig struct {
	Begin model.TimeOfDay `yaml:"begin"`
	End   model.TimeOfDay `yaml:"end"`
}

// DepartureConfig overrides the scenario family's default departure
// windows. When present, all three windows must be given.
type DepartureConfig struct {
	Home WindowConfig `yaml:"home"`
	Work WindowConfig `yaml:"work"`
	Shop WindowConfig `yaml:"shop"`
	Step string       `yaml:"step"`
}

func (d *DepartureConfig) validate() error {
	if d == nil {
		return nil
	}
	for _, window := range []struct {
		name   string
		window WindowConfig
	}{
		{"home", d.Home},
		{"work", d.Work},
		{"shop", d.Shop},
	} {
		if window.window.End == 0 {
			return fmt.Errorf("departures override must set the %s window", window.name)
		}
		if window.window.Begin > window.window.End {
			return fmt.Errorf("%s departure window: begin is after end", window.name)
		}
	}
	if d.Step != "" {
		step, err := time.ParseDuration(d.Step)
		if err != nil {
			return fmt.Errorf("invalid departure step: %w", err)
		}
		if step <= 0 || step%time.Second != 0 {
			return fmt.Errorf("departure step must be a positive whole-second duration, got %s", d.Step)
		}
	}
	return nil
}

// Windows resolves the override against a scenario family's defaults.
func (d *DepartureConfig) Windows(defaults scenario.DepartureWindows) (scenario.DepartureWindows, error) {
	if d == nil {
		return defaults, nil
	}
	windows := scenario.DepartureWindows{
		Home: scenario.DepartureWindow{Begin: d.Home.Begin, End: d.Home.End},
		Work: scenario.DepartureWindow{Begin: d.Work.Begin, End: d.Work.End},
		Shop: scenario.DepartureWindow{Begin: d.Shop.Begin, End: d.Shop.End},
		Step: defaults.Step,
	}
	if d.Step != "" {
		step, err := time.ParseDuration(d.Step)
		if err != nil {
			return scenario.DepartureWindows{}, fmt.Errorf("invalid departure step: %w", err)
		}
		windows.Step = step
	}
	return windows, nil
}

func load(path string, cfg any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("loading scenario config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("loading scenario config: %w", err)
	}
	return nil
}
