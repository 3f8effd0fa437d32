// Package scenario generates complete MATSim scenario file sets. Every
// generation run owns one seeded random source; the draw order (engine
// seed, facility pool shuffle, then per-agent picks and departure times)
// is fixed so identical seeds reproduce identical documents.
package scenario

import (
	"fmt"
	"math/rand"
	"time"

	"matsimgen/internal/builder"
	"matsimgen/internal/model"
)

type DepartureWindow struct {
	Begin model.TimeOfDay
	End   model.TimeOfDay
}

// DepartureWindows holds the three departure-time ranges of the daily
// chain and the quantization step shared by all of them.
type DepartureWindows struct {
	Home DepartureWindow
	Work DepartureWindow
	Shop DepartureWindow
	Step time.Duration
}

// DefaultGridDepartures mirrors the morning/evening commute windows of the
// synthetic grid scenarios, quantized to 10 minutes.
func DefaultGridDepartures() DepartureWindows {
	return DepartureWindows{
		Home: DepartureWindow{Begin: model.NewTimeOfDay(7, 0, 0), End: model.NewTimeOfDay(8, 0, 0)},
		Work: DepartureWindow{Begin: model.NewTimeOfDay(17, 0, 0), End: model.NewTimeOfDay(18, 0, 0)},
		Shop: DepartureWindow{Begin: model.NewTimeOfDay(19, 0, 0), End: model.NewTimeOfDay(21, 0, 0)},
		Step: 10 * time.Minute,
	}
}

// DefaultNetworkDepartures compresses each window to ten minutes with a
// 30 second step, matching the network-seeded scenario family.
func DefaultNetworkDepartures() DepartureWindows {
	return DepartureWindows{
		Home: DepartureWindow{Begin: model.NewTimeOfDay(7, 50, 0), End: model.NewTimeOfDay(8, 0, 0)},
		Work: DepartureWindow{Begin: model.NewTimeOfDay(17, 50, 0), End: model.NewTimeOfDay(18, 0, 0)},
		Shop: DepartureWindow{Begin: model.NewTimeOfDay(19, 50, 0), End: model.NewTimeOfDay(20, 0, 0)},
		Step: 30 * time.Second,
	}
}

func (w DepartureWindows) validate() error {
	for _, window := range []struct {
		name   string
		window DepartureWindow
	}{
		{"home", w.Home},
		{"work", w.Work},
		{"shop", w.Shop},
	} {
		if !window.window.Begin.Valid() || !window.window.End.Valid() {
			return fmt.Errorf("%s departure window: %w", window.name, model.ErrTimeOutOfRange)
		}
		if window.window.Begin > window.window.End {
			return fmt.Errorf("%s departure window: %w", window.name, model.ErrTimeOrder)
		}
	}
	if w.Step < 0 || w.Step%time.Second != 0 {
		return fmt.Errorf("departure step: %w", model.ErrBadStep)
	}
	return nil
}

// Result summarizes one generation run for command output.
type Result struct {
	ConfigFile     string
	NetworkFile    string
	FacilitiesFile string
	PlansFile      string
	Nodes          int
	Links          int
	Facilities     int
	Agents         int
}

// EmptyPoolError reports that no facility remained for a role after
// excluding an agent's earlier picks. It signals insufficient data, not an
// invalid parameter: the facility counts or ratios cannot support the
// requested population.
type EmptyPoolError struct {
	Activity model.ActivityType
}

func (e *EmptyPoolError) Error() string {
	return fmt.Sprintf("no %s facility left to choose from", e.Activity)
}

// buildPlans samples agentCount daily chains from the facility set. Each
// agent gets pairwise-distinct home, workplace, and shop facilities; reuse
// across agents is expected when pools are small.
func buildPlans(rng *rand.Rand, facilities []model.Facility, agentCount int, departures DepartureWindows) (*builder.Plans, error) {
	var homes, workplaces, shops []model.Facility
	for _, fac := range facilities {
		if fac.Has(model.ActivityHome) {
			homes = append(homes, fac)
		}
		if fac.Has(model.ActivityWork) {
			workplaces = append(workplaces, fac)
		}
		if fac.Has(model.ActivityShopping) {
			shops = append(shops, fac)
		}
	}

	plans := builder.NewPlans()
	for i := 0; i < agentCount; i++ {
		home, err := pick(rng, homes, model.ActivityHome)
		if err != nil {
			return nil, err
		}
		workplace, err := pick(rng, excludeIDs(workplaces, home.ID), model.ActivityWork)
		if err != nil {
			return nil, err
		}
		shop, err := pick(rng, excludeIDs(shops, home.ID, workplace.ID), model.ActivityShopping)
		if err != nil {
			return nil, err
		}

		homeEnd, err := model.RandomTime(rng, departures.Home.Begin, departures.Home.End, departures.Step)
		if err != nil {
			return nil, err
		}
		workEnd, err := model.RandomTime(rng, departures.Work.Begin, departures.Work.End, departures.Step)
		if err != nil {
			return nil, err
		}
		shopEnd, err := model.RandomTime(rng, departures.Shop.Begin, departures.Shop.End, departures.Step)
		if err != nil {
			return nil, err
		}

		plans.AddPerson(home, workplace, shop, homeEnd, workEnd, shopEnd)
	}
	return plans, nil
}

func pick(rng *rand.Rand, pool []model.Facility, activity model.ActivityType) (model.Facility, error) {
	if len(pool) == 0 {
		return model.Facility{}, &EmptyPoolError{Activity: activity}
	}
	return pool[rng.Intn(len(pool))], nil
}

func excludeIDs(pool []model.Facility, ids ...int) []model.Facility {
	filtered := make([]model.Facility, 0, len(pool))
	for _, fac := range pool {
		excluded := false
		for _, id := range ids {
			if fac.ID == id {
				excluded = true
				break
			}
		}
		if !excluded {
			filtered = append(filtered, fac)
		}
	}
	return filtered
}

// engineSeed is the first draw of every run; the simulation engine gets
// its own full-range signed seed derived from the scenario seed.
func engineSeed(rng *rand.Rand) int64 {
	return int64(rng.Uint64())
}
