// Package graph provides the undirected weighted graph consumed by the
// layout algorithms, its JSON serialization format, and all-pairs
// shortest-path distances.
//
// # Graph Model
//
// Nodes are opaque string identifiers with equality-based identity; the only
// ordering the package relies on is insertion order, which makes layouts
// reproducible for a fixed construction sequence. Edges are unordered pairs
// with an optional numeric weight (default 1).
//
// A bare node list (NewFromNodes) is a valid degenerate graph: the
// force-simulation layouts tolerate it, while distance-based algorithms
// return ErrEdgesRequired.
//
// # Serialization
//
// The JSON format is designed for round-trip fidelity and is shared by the
// CLI, the cache, and the HTTP API:
//
//	{
//	  "nodes": [{"id": "a"}, {"id": "b"}],
//	  "edges": [{"source": "a", "target": "b", "weight": 2}]
//	}
//
// # Distances
//
// AllPairsShortestPaths computes the graph-theoretic distance matrix used by
// the Kamada-Kawai stress solver as its ideal-distance target:
//
//	dist, err := graph.AllPairsShortestPaths(g)
//	if err != nil {
//	    return err
//	}
//	km := layout.KamadaKawai{Dist: dist}
package graph
