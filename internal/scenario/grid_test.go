package scenario

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mixedGridParams(dir string) GridParams {
	return GridParams{
		RootDir:            dir,
		Seed:               42,
		Rows:               3,
		Cols:               3,
		BlockSize:          100,
		AgentCount:         10,
		SpeedLimit:         10,
		LinkCapacity:       500,
		MixWorkAndShopping: true,
		Departures:         DefaultGridDepartures(),
	}
}

func TestGenerateMixedGrid(t *testing.T) {
	dir := t.TempDir()
	result, err := Generate(context.Background(), mixedGridParams(dir))
	require.NoError(t, err)

	// 3x3 nodes, 2*(3*2 + 3*2) directed links.
	assert.Equal(t, 9, result.Nodes)
	assert.Equal(t, 24, result.Links)
	assert.Equal(t, 25, result.Facilities)
	assert.Equal(t, 10, result.Agents)

	network := readNetwork(t, filepath.Join(dir, result.NetworkFile))
	assert.Len(t, network.Nodes.Nodes, 9)
	require.Len(t, network.Links.Links, 24)
	for _, link := range network.Links.Links {
		assert.Equal(t, "100", link.Length)
	}

	facilities := readFacilities(t, filepath.Join(dir, result.FacilitiesFile))
	require.Len(t, facilities, 25)

	var interior, ring int
	for _, fac := range facilities {
		switch {
		case fac.has("home"):
			ring++
			assert.Len(t, fac.Activities, 1, "ring facility %s must be home-only", fac.ID)
		default:
			interior++
			assert.True(t, fac.has("work"), "interior facility %s missing work", fac.ID)
			assert.True(t, fac.has("shopping"), "interior facility %s missing shopping", fac.ID)
		}
	}
	assert.Equal(t, 9, interior)
	assert.Equal(t, 16, ring)

	persons := readPersons(t, filepath.Join(dir, result.PlansFile))
	require.Len(t, persons, 10)
	for _, agent := range persons {
		requireDistinctTriple(t, agent)
	}
}

func TestGenerateSegregatedPartition(t *testing.T) {
	dir := t.TempDir()
	params := mixedGridParams(dir)
	params.Rows = 5
	params.Cols = 4
	params.MixWorkAndShopping = false
	params.WorkFacilityRatio = 0.3

	result, err := Generate(context.Background(), params)
	require.NoError(t, err)

	// Interior 5*4 = 20 facilities, round(20*0.3) = 6 work.
	facilities := readFacilities(t, filepath.Join(dir, result.FacilitiesFile))
	require.Len(t, facilities, (params.Rows+2)*(params.Cols+2))

	var work, shop int
	for _, fac := range facilities {
		if fac.has("home") {
			continue
		}
		require.Len(t, fac.Activities, 1, "segregated facility %s must carry one tag", fac.ID)
		if fac.has("work") {
			work++
		}
		if fac.has("shopping") {
			shop++
		}
	}
	assert.Equal(t, 6, work)
	assert.Equal(t, 14, shop)
}

func TestGenerateDeterminism(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	resultA, err := Generate(context.Background(), mixedGridParams(first))
	require.NoError(t, err)
	resultB, err := Generate(context.Background(), mixedGridParams(second))
	require.NoError(t, err)
	require.Equal(t, resultA, resultB)

	for _, name := range []string{resultA.ConfigFile, resultA.NetworkFile, resultA.FacilitiesFile, resultA.PlansFile} {
		assert.Equal(t, readFile(t, first, name), readFile(t, second, name),
			"%s differs between identically seeded runs", name)
	}
}

func TestGenerateSeedChangesOutput(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	paramsA := mixedGridParams(first)
	paramsB := mixedGridParams(second)
	paramsB.Seed = 43

	resultA, err := Generate(context.Background(), paramsA)
	require.NoError(t, err)
	_, err = Generate(context.Background(), paramsB)
	require.NoError(t, err)

	assert.NotEqual(t,
		readFile(t, first, resultA.PlansFile),
		readFile(t, second, resultA.PlansFile))
	assert.NotEqual(t,
		readFile(t, first, resultA.ConfigFile),
		readFile(t, second, resultA.ConfigFile))
}

func TestGenerateSuffix(t *testing.T) {
	dir := t.TempDir()
	params := mixedGridParams(dir)
	params.Suffix = "_mixed_100"

	result, err := Generate(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, "config_mixed_100.xml", result.ConfigFile)
	assert.Equal(t, "network_mixed_100.xml", result.NetworkFile)
	assert.Equal(t, "facilities_mixed_100.xml", result.FacilitiesFile)
	assert.Equal(t, "plans_mixed_100.xml", result.PlansFile)
	assert.FileExists(t, filepath.Join(dir, "plans_mixed_100.xml"))
}

func TestGenerateValidation(t *testing.T) {
	base := mixedGridParams(t.TempDir())

	cases := map[string]func(*GridParams){
		"tiny grid":          func(p *GridParams) { p.Rows = 1 },
		"zero block size":    func(p *GridParams) { p.BlockSize = 0 },
		"negative agents":    func(p *GridParams) { p.AgentCount = -1 },
		"zero speed":         func(p *GridParams) { p.SpeedLimit = 0 },
		"zero capacity":      func(p *GridParams) { p.LinkCapacity = 0 },
		"missing root dir":   func(p *GridParams) { p.RootDir = "" },
		"ratio above one":    func(p *GridParams) { p.MixWorkAndShopping = false; p.WorkFacilityRatio = 1.5 },
		"inverted window":    func(p *GridParams) { p.Departures.Home.Begin = p.Departures.Home.End + 1 },
		"subsecond step":     func(p *GridParams) { p.Departures.Step = 1500 * 1000 * 1000 / 2 },
		"out of range bound": func(p *GridParams) { p.Departures.Shop.End = -5 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			params := base
			mutate(&params)
			_, err := Generate(context.Background(), params)
			assert.Error(t, err)
		})
	}
}
