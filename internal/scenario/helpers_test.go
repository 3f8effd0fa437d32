package scenario

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type facilityDoc struct {
	ID         string `xml:"id,attr"`
	X          string `xml:"x,attr"`
	Y          string `xml:"y,attr"`
	Activities []struct {
		Type string `xml:"type,attr"`
	} `xml:"activity"`
}

func (f facilityDoc) has(activity string) bool {
	for _, a := range f.Activities {
		if a.Type == activity {
			return true
		}
	}
	return false
}

func readFacilities(t *testing.T, path string) []facilityDoc {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Facilities []facilityDoc `xml:"facility"`
	}
	require.NoError(t, xml.Unmarshal(raw, &doc))
	return doc.Facilities
}

type personDoc struct {
	ID   string `xml:"id,attr"`
	Plan struct {
		Acts []struct {
			Type     string `xml:"type,attr"`
			Facility string `xml:"facility,attr"`
			EndTime  string `xml:"end_time,attr"`
		} `xml:"act"`
	} `xml:"plan"`
}

func readPersons(t *testing.T, path string) []personDoc {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Persons []personDoc `xml:"person"`
	}
	require.NoError(t, xml.Unmarshal(raw, &doc))
	return doc.Persons
}

type networkDocT struct {
	Nodes struct {
		Nodes []struct {
			ID string `xml:"id,attr"`
		} `xml:"node"`
	} `xml:"nodes"`
	Links struct {
		Links []struct {
			ID     string `xml:"id,attr"`
			Length string `xml:"length,attr"`
		} `xml:"link"`
	} `xml:"links"`
}

func readNetwork(t *testing.T, path string) networkDocT {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc networkDocT
	require.NoError(t, xml.Unmarshal(raw, &doc))
	return doc
}

func readFile(t *testing.T, dir, name string) []byte {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return raw
}

// requireDistinctTriple asserts an agent references pairwise-distinct
// facilities across its home, work, and shopping activities.
func requireDistinctTriple(t *testing.T, agent personDoc) {
	t.Helper()
	require.Len(t, agent.Plan.Acts, 4)
	home := agent.Plan.Acts[0].Facility
	work := agent.Plan.Acts[1].Facility
	shop := agent.Plan.Acts[2].Facility
	require.NotEqual(t, home, work, "agent %s reuses its home as workplace", agent.ID)
	require.NotEqual(t, home, shop, "agent %s reuses its home as shop", agent.ID)
	require.NotEqual(t, work, shop, "agent %s reuses its workplace as shop", agent.ID)
	require.Equal(t, home, agent.Plan.Acts[3].Facility, "agent %s must return home", agent.ID)
}
