package builder

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigWrite(t *testing.T) {
	cfg := NewConfig("network_a.xml", "facilities_a.xml", "plans_a.xml", "./output_a", -4759245)

	path := filepath.Join(t.TempDir(), "config.xml")
	require.NoError(t, cfg.Write(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "<!DOCTYPE config SYSTEM")

	var doc struct {
		Modules []struct {
			Name   string `xml:"name,attr"`
			Params []struct {
				Name  string `xml:"name,attr"`
				Value string `xml:"value,attr"`
			} `xml:"param"`
		} `xml:"module"`
	}
	require.NoError(t, xml.Unmarshal(raw, &doc))

	params := map[string]string{}
	for _, module := range doc.Modules {
		for _, param := range module.Params {
			params[module.Name+"/"+param.Name] = param.Value
		}
	}

	assert.Equal(t, "-4759245", params["global/randomSeed"])
	assert.Equal(t, "network_a.xml", params["network/inputNetworkFile"])
	assert.Equal(t, "facilities_a.xml", params["facilities/inputFacilitiesFile"])
	assert.Equal(t, "plans_a.xml", params["plans/inputPlansFile"])
	assert.Equal(t, "./output_a", params["controler/outputDirectory"])
}
