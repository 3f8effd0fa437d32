// Package builder holds the four MATSim document builders. Each collects
// records in memory, issues sequential identities, and serializes with a
// fixed attribute order and float formatting so identical inputs produce
// identical bytes.
package builder

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
)

const (
	networkDoctype    = `network SYSTEM "http://www.matsim.org/files/dtd/network_v1.dtd"`
	facilitiesDoctype = `facilities SYSTEM "http://www.matsim.org/files/dtd/facilities_v1.dtd"`
	plansDoctype      = `plans SYSTEM "http://www.matsim.org/files/dtd/plans_v4.dtd"`
	configDoctype     = `config SYSTEM "http://www.matsim.org/files/dtd/config_v1.dtd"`
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeDocument(path, doctype string, doc any) error {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	fmt.Fprintf(&buf, "<!DOCTYPE %s>\n", doctype)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	buf.WriteByte('\n')

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
