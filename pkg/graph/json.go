package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Serialization Types
// =============================================================================

// NodeRecord is the serialization form of a node.
type NodeRecord struct {
	ID string `json:"id" bson:"id"`
}

// EdgeRecord is the serialization form of an edge.
// Weight is omitted when it equals the default weight 1.
type EdgeRecord struct {
	Source string  `json:"source" bson:"source"`
	Target string  `json:"target" bson:"target"`
	Weight float64 `json:"weight,omitempty" bson:"weight,omitempty"`
}

// File is the canonical serialization format for graphs.
// Used for CLI input, caching, and API requests.
type File struct {
	Nodes []NodeRecord `json:"nodes" bson:"nodes"`
	Edges []EdgeRecord `json:"edges" bson:"edges"`
}

// FromGraph converts a Graph to its serialization form.
// Node order follows insertion order for deterministic output.
func FromGraph(g *Graph) File {
	f := File{
		Nodes: make([]NodeRecord, 0, g.NodeCount()),
		Edges: make([]EdgeRecord, 0, g.EdgeCount()),
	}
	for _, id := range g.nodes {
		f.Nodes = append(f.Nodes, NodeRecord{ID: id})
	}
	for _, e := range g.edges {
		rec := EdgeRecord{Source: e.U, Target: e.V}
		if e.Weight != 1 {
			rec.Weight = e.Weight
		}
		f.Edges = append(f.Edges, rec)
	}
	return f
}

// ToGraph converts the serialization form back into a Graph.
// Returns validation errors for empty node IDs, duplicate nodes, or edges
// referencing unknown nodes.
func ToGraph(f File) (*Graph, error) {
	g := New()
	for _, n := range f.Nodes {
		if err := g.AddNode(n.ID); err != nil {
			return nil, fmt.Errorf("node %q: %w", n.ID, err)
		}
	}
	for _, e := range f.Edges {
		if err := g.AddWeightedEdge(e.Source, e.Target, e.Weight); err != nil {
			return nil, fmt.Errorf("edge %s-%s: %w", e.Source, e.Target, err)
		}
	}
	return g, nil
}

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a Graph to JSON bytes.
// Nodes keep insertion order for deterministic output.
func MarshalGraph(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraphFile writes a Graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeGraphTo(g, f)
}

// WriteGraph writes a Graph as JSON to an io.Writer.
func WriteGraph(g *Graph, w io.Writer) error {
	return writeGraphTo(g, w)
}

// ReadGraphFile reads a JSON file and returns the decoded Graph.
func ReadGraphFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readGraphFrom(f)
}

// ReadGraph decodes a JSON graph from an io.Reader.
func ReadGraph(r io.Reader) (*Graph, error) {
	return readGraphFrom(r)
}

func writeGraphTo(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromGraph(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readGraphFrom(r io.Reader) (*Graph, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToGraph(f)
}
