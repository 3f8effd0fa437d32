package scenario

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"matsimgen/internal/builder"
	"matsimgen/internal/ctxlog"
	"matsimgen/internal/model"
	"matsimgen/internal/netio"
)

var ErrRatioSum = errors.New("facility ratios must sum to at most 1.0")

// FacilityRatio maps one activity set to the share of network nodes that
// become a facility carrying it.
type FacilityRatio struct {
	Activities []model.ActivityType
	Ratio      float64
}

// NetworkParams describes a scenario seeded by an existing network
// document. The document is referenced by the generated config, never
// rewritten.
type NetworkParams struct {
	RootDir        string
	Suffix         string
	NetworkFile    string
	Seed           int64
	AgentCount     int
	FacilityRatios []FacilityRatio
	Departures     DepartureWindows
}

func (p NetworkParams) validate() error {
	if p.RootDir == "" {
		return fmt.Errorf("root dir is required")
	}
	if p.NetworkFile == "" {
		return fmt.Errorf("network file is required")
	}
	if p.AgentCount < 0 {
		return fmt.Errorf("agent count must not be negative, got %d", p.AgentCount)
	}
	if len(p.FacilityRatios) == 0 {
		return fmt.Errorf("at least one facility ratio is required")
	}
	sum := 0.0
	for i, ratio := range p.FacilityRatios {
		if len(ratio.Activities) == 0 {
			return fmt.Errorf("facility ratio %d has no activity types", i)
		}
		for _, a := range ratio.Activities {
			if !a.Valid() {
				return fmt.Errorf("facility ratio %d: invalid activity type %q", i, string(a))
			}
		}
		if ratio.Ratio < 0 || ratio.Ratio > 1 {
			return fmt.Errorf("facility ratio %d must be within [0, 1], got %v", i, ratio.Ratio)
		}
		sum += ratio.Ratio
	}
	if sum > 1 {
		return fmt.Errorf("%w, got %v", ErrRatioSum, sum)
	}
	return p.Departures.validate()
}

// GenerateFromNetwork converts the nodes of an existing network document
// into facilities by weighted shuffled assignment and samples agent plans
// over them.
func GenerateFromNetwork(ctx context.Context, params NetworkParams) (*Result, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	logger := ctxlog.FromContext(ctx)

	if err := os.MkdirAll(params.RootDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating scenario dir: %w", err)
	}

	rng := rand.New(rand.NewSource(params.Seed))

	configFile := "config" + params.Suffix + ".xml"
	facilitiesFile := "facilities" + params.Suffix + ".xml"
	plansFile := "plans" + params.Suffix + ".xml"

	cfg := builder.NewConfig(params.NetworkFile, facilitiesFile, plansFile, "./output"+params.Suffix, engineSeed(rng))
	if err := cfg.Write(filepath.Join(params.RootDir, configFile)); err != nil {
		return nil, err
	}

	network, err := netio.LoadNetworkFile(filepath.Join(params.RootDir, params.NetworkFile))
	if err != nil {
		return nil, err
	}
	logger.Info("network loaded",
		"nodes", len(network.Nodes), "links", len(network.Links), "file", params.NetworkFile)

	facilities, err := buildNetworkFacilities(rng, network.Nodes, params.FacilityRatios)
	if err != nil {
		return nil, err
	}
	if err := facilities.Write(filepath.Join(params.RootDir, facilitiesFile)); err != nil {
		return nil, err
	}
	logger.Info("facilities generated", "count", facilities.Count(), "file", facilitiesFile)

	plans, err := buildPlans(rng, facilities.All(), params.AgentCount, params.Departures)
	if err != nil {
		return nil, err
	}
	if err := plans.Write(filepath.Join(params.RootDir, plansFile)); err != nil {
		return nil, err
	}
	logger.Info("plans generated", "agents", plans.Count(), "file", plansFile)

	return &Result{
		ConfigFile:     configFile,
		NetworkFile:    params.NetworkFile,
		FacilitiesFile: facilitiesFile,
		PlansFile:      plansFile,
		Nodes:          len(network.Nodes),
		Links:          len(network.Links),
		Facilities:     facilities.Count(),
		Agents:         plans.Count(),
	}, nil
}

// buildNetworkFacilities assigns activity sets to nodes in document order
// from a shuffled pool sized by round(total * ratio). Nodes beyond the pool
// get no facility role at all.
func buildNetworkFacilities(rng *rand.Rand, nodes []netio.Node, ratios []FacilityRatio) (*builder.Facilities, error) {
	total := len(nodes)
	var pool [][]model.ActivityType
	for _, ratio := range ratios {
		count := int(math.Round(float64(total) * ratio.Ratio))
		if count < 0 {
			count = 0
		}
		if count > total {
			count = total
		}
		for k := 0; k < count; k++ {
			pool = append(pool, ratio.Activities)
		}
	}
	if len(pool) > total {
		return nil, fmt.Errorf("%w: rounding assigned %d roles to %d nodes", ErrRatioSum, len(pool), total)
	}

	rng.Shuffle(len(pool), func(a, b int) {
		pool[a], pool[b] = pool[b], pool[a]
	})

	facilities := builder.NewFacilities()
	for idx, tags := range pool {
		node := nodes[idx]
		x, err := strconv.ParseFloat(node.X, 64)
		if err != nil {
			return nil, fmt.Errorf("node %s: invalid x coordinate %q", node.ID, node.X)
		}
		y, err := strconv.ParseFloat(node.Y, 64)
		if err != nil {
			return nil, fmt.Errorf("node %s: invalid y coordinate %q", node.ID, node.Y)
		}
		if _, err := facilities.Add(x, y, tags); err != nil {
			return nil, err
		}
	}
	return facilities, nil
}
