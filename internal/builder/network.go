package builder

import (
	"encoding/xml"
	"strconv"
)

type networkNode struct {
	ID string `xml:"id,attr"`
	X  string `xml:"x,attr"`
	Y  string `xml:"y,attr"`
}

type networkLink struct {
	ID        string `xml:"id,attr"`
	From      string `xml:"from,attr"`
	To        string `xml:"to,attr"`
	Length    string `xml:"length,attr"`
	Freespeed string `xml:"freespeed,attr"`
	Capacity  string `xml:"capacity,attr"`
	Permlanes string `xml:"permlanes,attr"`
	Modes     string `xml:"modes,attr"`
}

type networkNodes struct {
	Nodes []networkNode `xml:"node"`
}

type networkLinks struct {
	Capperiod string        `xml:"capperiod,attr"`
	Links     []networkLink `xml:"link"`
}

type networkDoc struct {
	XMLName xml.Name     `xml:"network"`
	Nodes   networkNodes `xml:"nodes"`
	Links   networkLinks `xml:"links"`
}

// Network collects nodes and directed links. Identities are sequential from
// 1 in creation order; links always reference already-issued node ids, and
// no node deduplication is performed.
type Network struct {
	nodes      []networkNode
	links      []networkLink
	nextNodeID int
	nextLinkID int
}

func NewNetwork() *Network {
	return &Network{nextNodeID: 1, nextLinkID: 1}
}

func (n *Network) AddNode(x, y float64) int {
	id := n.nextNodeID
	n.nextNodeID++
	n.nodes = append(n.nodes, networkNode{
		ID: strconv.Itoa(id),
		X:  formatFloat(x),
		Y:  formatFloat(y),
	})
	return id
}

// Add2WayLinks creates one directed link per direction between two nodes
// and returns both link ids (from→to first).
func (n *Network) Add2WayLinks(from, to int, length, freespeed, capacity float64) (int, int) {
	ab := n.addLink(from, to, length, freespeed, capacity)
	ba := n.addLink(to, from, length, freespeed, capacity)
	return ab, ba
}

func (n *Network) addLink(from, to int, length, freespeed, capacity float64) int {
	id := n.nextLinkID
	n.nextLinkID++
	n.links = append(n.links, networkLink{
		ID:        strconv.Itoa(id),
		From:      strconv.Itoa(from),
		To:        strconv.Itoa(to),
		Length:    formatFloat(length),
		Freespeed: formatFloat(freespeed),
		Capacity:  formatFloat(capacity),
		Permlanes: "1",
		Modes:     "car",
	})
	return id
}

func (n *Network) NodeCount() int { return len(n.nodes) }

func (n *Network) LinkCount() int { return len(n.links) }

func (n *Network) Write(path string) error {
	doc := networkDoc{
		Nodes: networkNodes{Nodes: n.nodes},
		Links: networkLinks{Capperiod: "01:00:00", Links: n.links},
	}
	return writeDocument(path, networkDoctype, doc)
}
