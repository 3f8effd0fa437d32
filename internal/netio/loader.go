// Package netio reads pre-built MATSim network documents so existing
// networks can seed a scenario without being regenerated.
package netio

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
)

type Node struct {
	ID string
	X  string
	Y  string
}

type Link struct {
	ID        string
	From      string
	To        string
	Length    string
	Freespeed string
	Capacity  string
}

// Network holds nodes and links in document order. Attribute values stay
// as strings; engine-specific extensions are ignored.
type Network struct {
	Nodes []Node
	Links []Link
}

var ErrNoNodes = errors.New("network document contains no nodes")

func LoadNetworkFile(path string) (*Network, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening network document: %w", err)
	}
	defer file.Close()

	network, err := LoadNetwork(file)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return network, nil
}

func LoadNetwork(r io.Reader) (*Network, error) {
	dec := xml.NewDecoder(r)
	network := &Network{}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed network document: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "node":
			node, err := parseNode(start)
			if err != nil {
				return nil, err
			}
			network.Nodes = append(network.Nodes, node)
		case "link":
			link, err := parseLink(start)
			if err != nil {
				return nil, err
			}
			network.Links = append(network.Links, link)
		}
	}

	if len(network.Nodes) == 0 {
		return nil, ErrNoNodes
	}
	return network, nil
}

func parseNode(start xml.StartElement) (Node, error) {
	attrs := attrMap(start)
	node := Node{}
	for _, field := range []struct {
		name string
		dst  *string
	}{
		{"id", &node.ID},
		{"x", &node.X},
		{"y", &node.Y},
	} {
		value, ok := attrs[field.name]
		if !ok {
			return Node{}, fmt.Errorf("node element missing required attribute %q", field.name)
		}
		*field.dst = value
	}
	return node, nil
}

func parseLink(start xml.StartElement) (Link, error) {
	attrs := attrMap(start)
	link := Link{}
	for _, field := range []struct {
		name string
		dst  *string
	}{
		{"id", &link.ID},
		{"from", &link.From},
		{"to", &link.To},
		{"length", &link.Length},
		{"freespeed", &link.Freespeed},
		{"capacity", &link.Capacity},
	} {
		value, ok := attrs[field.name]
		if !ok {
			return Link{}, fmt.Errorf("link element missing required attribute %q", field.name)
		}
		*field.dst = value
	}
	return link, nil
}

func attrMap(start xml.StartElement) map[string]string {
	attrs := make(map[string]string, len(start.Attr))
	for _, attr := range start.Attr {
		attrs[attr.Name.Local] = attr.Value
	}
	return attrs
}
