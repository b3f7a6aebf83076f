package graph

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownNode is returned by [Graph.AddEdge] when an endpoint does not
	// exist in the graph.
	ErrUnknownNode = errors.New("unknown node")

	// ErrEdgesRequired is returned by algorithms that need edge structure
	// (for example shortest-path distance computation) when invoked on a
	// bare node list.
	ErrEdgesRequired = errors.New("graph has no edges")
)

// Edge represents an undirected connection between two nodes, optionally
// carrying a numeric weight. A zero-valued Weight is replaced with 1 when
// the edge is added, so Weight is always meaningful after AddEdge.
type Edge struct {
	U      string
	V      string
	Weight float64
}

// Graph is an undirected graph with insertion-ordered nodes and weighted
// edges. It is the read-only input consumed by every layout algorithm.
//
// The zero value is not usable - use New or NewFromNodes. Graph is not safe
// for concurrent mutation without external synchronization; concurrent reads
// are safe.
type Graph struct {
	nodes    []string
	index    map[string]int
	edges    []Edge
	adjacent map[string]map[string]float64
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		index:    make(map[string]int),
		adjacent: make(map[string]map[string]float64),
	}
}

// NewFromNodes creates the degenerate bare-node-list form of a graph: the
// given nodes and no edges. Force-simulation layouts accept this form;
// algorithms that require edge structure return ErrEdgesRequired.
func NewFromNodes(ids ...string) (*Graph, error) {
	g := New()
	for _, id := range ids {
		if err := g.AddNode(id); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// AddNode adds a node to the graph, preserving insertion order.
// Returns ErrInvalidNodeID for an empty ID or ErrDuplicateNodeID if the
// node already exists.
func (g *Graph) AddNode(id string) error {
	if id == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.index[id]; exists {
		return ErrDuplicateNodeID
	}
	g.index[id] = len(g.nodes)
	g.nodes = append(g.nodes, id)
	g.adjacent[id] = make(map[string]float64)
	return nil
}

// AddEdge adds an undirected edge with weight 1 between two existing nodes.
// Returns ErrUnknownNode if either endpoint is missing.
func (g *Graph) AddEdge(u, v string) error {
	return g.AddWeightedEdge(u, v, 1)
}

// AddWeightedEdge adds an undirected edge with the given weight.
// A weight of 0 is treated as the default weight 1. Adding an edge between
// the same pair twice replaces the stored weight but records both edges.
func (g *Graph) AddWeightedEdge(u, v string, weight float64) error {
	if _, ok := g.index[u]; !ok {
		return ErrUnknownNode
	}
	if _, ok := g.index[v]; !ok {
		return ErrUnknownNode
	}
	if weight == 0 {
		weight = 1
	}
	g.edges = append(g.edges, Edge{U: u, V: v, Weight: weight})
	g.adjacent[u][v] = weight
	g.adjacent[v][u] = weight
	return nil
}

// Nodes returns all node IDs in insertion order.
// The returned slice is a copy and may be modified freely.
func (g *Graph) Nodes() []string { return slices.Clone(g.nodes) }

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// HasNode reports whether the node exists in the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Degree returns the number of distinct neighbors of the node.
// Returns 0 if the node does not exist.
func (g *Graph) Degree(id string) int { return len(g.adjacent[id]) }

// Weight returns the weight of the edge between u and v and true, or
// 0 and false if no such edge exists.
func (g *Graph) Weight(u, v string) (float64, bool) {
	w, ok := g.adjacent[u][v]
	return w, ok
}

// Neighbors returns the IDs adjacent to the node. The order is not
// guaranteed. Returns nil for unknown or isolated nodes.
func (g *Graph) Neighbors(id string) []string {
	adj := g.adjacent[id]
	if len(adj) == 0 {
		return nil
	}
	out := make([]string, 0, len(adj))
	for v := range adj {
		out = append(out, v)
	}
	return out
}

// Index returns the insertion index of the node and true, or 0 and false
// if the node does not exist. Layout algorithms use this to build dense
// arrays indexed by node once per call instead of re-deriving mappings
// inside hot loops.
func (g *Graph) Index(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}
