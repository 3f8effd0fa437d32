package builder

import (
	"encoding/xml"
	"strconv"
)

type configParam struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type configModule struct {
	Name   string        `xml:"name,attr"`
	Params []configParam `xml:"param"`
}

type configDoc struct {
	XMLName xml.Name       `xml:"config"`
	Modules []configModule `xml:"module"`
}

// Config describes one simulation run: the three generated documents, the
// engine output directory, and the engine's own random seed.
type Config struct {
	networkFile    string
	facilitiesFile string
	plansFile      string
	outputDir      string
	randomSeed     int64
}

func NewConfig(networkFile, facilitiesFile, plansFile, outputDir string, randomSeed int64) *Config {
	return &Config{
		networkFile:    networkFile,
		facilitiesFile: facilitiesFile,
		plansFile:      plansFile,
		outputDir:      outputDir,
		randomSeed:     randomSeed,
	}
}

func (c *Config) Write(path string) error {
	doc := configDoc{Modules: []configModule{
		{Name: "global", Params: []configParam{
			{Name: "randomSeed", Value: strconv.FormatInt(c.randomSeed, 10)},
		}},
		{Name: "network", Params: []configParam{
			{Name: "inputNetworkFile", Value: c.networkFile},
		}},
		{Name: "facilities", Params: []configParam{
			{Name: "inputFacilitiesFile", Value: c.facilitiesFile},
		}},
		{Name: "plans", Params: []configParam{
			{Name: "inputPlansFile", Value: c.plansFile},
		}},
		{Name: "controler", Params: []configParam{
			{Name: "outputDirectory", Value: c.outputDir},
		}},
	}}
	return writeDocument(path, configDoctype, doc)
}
