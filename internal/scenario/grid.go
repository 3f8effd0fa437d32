package scenario

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"matsimgen/internal/builder"
	"matsimgen/internal/ctxlog"
	"matsimgen/internal/model"
)

// GridParams describes one synthetic chessboard scenario. Rows and Cols
// count nodes, so the network spans (Rows-1) x (Cols-1) blocks.
type GridParams struct {
	RootDir            string
	Suffix             string
	Seed               int64
	Rows               int
	Cols               int
	BlockSize          float64
	AgentCount         int
	SpeedLimit         float64
	LinkCapacity       float64
	MixWorkAndShopping bool
	// WorkFacilityRatio controls the work share of interior facilities in
	// segregated mode; ignored when MixWorkAndShopping is set.
	WorkFacilityRatio float64
	Departures        DepartureWindows
}

func (p GridParams) validate() error {
	if p.RootDir == "" {
		return fmt.Errorf("root dir is required")
	}
	if p.Rows < 2 || p.Cols < 2 {
		return fmt.Errorf("grid needs at least 2x2 nodes, got %dx%d", p.Rows, p.Cols)
	}
	if p.BlockSize <= 0 {
		return fmt.Errorf("block size must be positive, got %v", p.BlockSize)
	}
	if p.AgentCount < 0 {
		return fmt.Errorf("agent count must not be negative, got %d", p.AgentCount)
	}
	if p.SpeedLimit <= 0 {
		return fmt.Errorf("speed limit must be positive, got %v", p.SpeedLimit)
	}
	if p.LinkCapacity <= 0 {
		return fmt.Errorf("link capacity must be positive, got %v", p.LinkCapacity)
	}
	if !p.MixWorkAndShopping && (p.WorkFacilityRatio < 0 || p.WorkFacilityRatio > 1) {
		return fmt.Errorf("work facility ratio must be within [0, 1], got %v", p.WorkFacilityRatio)
	}
	return p.Departures.validate()
}

// Generate builds a full grid scenario: config, network, facilities, and
// plans documents under RootDir, all derived from one seeded source.
func Generate(ctx context.Context, params GridParams) (*Result, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	logger := ctxlog.FromContext(ctx)

	if err := os.MkdirAll(params.RootDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating scenario dir: %w", err)
	}

	rng := rand.New(rand.NewSource(params.Seed))

	configFile := "config" + params.Suffix + ".xml"
	networkFile := "network" + params.Suffix + ".xml"
	facilitiesFile := "facilities" + params.Suffix + ".xml"
	plansFile := "plans" + params.Suffix + ".xml"

	cfg := builder.NewConfig(networkFile, facilitiesFile, plansFile, "./output"+params.Suffix, engineSeed(rng))
	if err := cfg.Write(filepath.Join(params.RootDir, configFile)); err != nil {
		return nil, err
	}

	network := buildGridNetwork(params)
	if err := network.Write(filepath.Join(params.RootDir, networkFile)); err != nil {
		return nil, err
	}
	logger.Info("network generated",
		"nodes", network.NodeCount(), "links", network.LinkCount(), "file", networkFile)

	facilities, err := buildGridFacilities(rng, params)
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
		NetworkFile:    networkFile,
		FacilitiesFile: facilitiesFile,
		PlansFile:      plansFile,
		Nodes:          network.NodeCount(),
		Links:          network.LinkCount(),
		Facilities:     facilities.Count(),
		Agents:         plans.Count(),
	}, nil
}

func buildGridNetwork(params GridParams) *builder.Network {
	network := builder.NewNetwork()

	nodeIDs := make(map[[2]int]int, params.Rows*params.Cols)
	for j := 0; j < params.Rows; j++ {
		for i := 0; i < params.Cols; i++ {
			nodeIDs[[2]int{i, j}] = network.AddNode(float64(i)*params.BlockSize, float64(j)*params.BlockSize)
		}
	}

	// Vertical lanes.
	for j := 0; j < params.Rows-1; j++ {
		for i := 0; i < params.Cols; i++ {
			network.Add2WayLinks(nodeIDs[[2]int{i, j}], nodeIDs[[2]int{i, j + 1}],
				params.BlockSize, params.SpeedLimit, params.LinkCapacity)
		}
	}
	// Horizontal lanes.
	for j := 0; j < params.Rows; j++ {
		for i := 0; i < params.Cols-1; i++ {
			network.Add2WayLinks(nodeIDs[[2]int{i, j}], nodeIDs[[2]int{i + 1, j}],
				params.BlockSize, params.SpeedLimit, params.LinkCapacity)
		}
	}
	return network
}

// buildGridFacilities places one facility per block center over the node
// grid plus one ring outside it. The ring is home-only; interior blocks are
// either mixed work+shopping or drawn from a pre-shuffled segregated tag
// sequence consumed in row-major traversal order.
func buildGridFacilities(rng *rand.Rand, params GridParams) (*builder.Facilities, error) {
	var pool []model.ActivityType
	if !params.MixWorkAndShopping {
		interiorCount := params.Rows * params.Cols
		workCount := int(math.Round(float64(interiorCount) * params.WorkFacilityRatio))
		pool = make([]model.ActivityType, 0, interiorCount)
		for i := 0; i < workCount; i++ {
			pool = append(pool, model.ActivityWork)
		}
		for i := workCount; i < interiorCount; i++ {
			pool = append(pool, model.ActivityShopping)
		}
		rng.Shuffle(len(pool), func(a, b int) {
			pool[a], pool[b] = pool[b], pool[a]
		})
	}

	facilities := builder.NewFacilities()
	next := 0
	for j := -1; j <= params.Rows; j++ {
		for i := -1; i <= params.Cols; i++ {
			x := (float64(i) + 0.5) * params.BlockSize
			y := (float64(j) + 0.5) * params.BlockSize

			var tags []model.ActivityType
			switch {
			case i == -1 || i == params.Cols || j == -1 || j == params.Rows:
				tags = []model.ActivityType{model.ActivityHome}
			case params.MixWorkAndShopping:
				tags = []model.ActivityType{model.ActivityWork, model.ActivityShopping}
			default:
				tags = []model.ActivityType{pool[next]}
				next++
			}

			if _, err := facilities.Add(x, y, tags); err != nil {
				return nil, err
			}
		}
	}
	return facilities, nil
}
