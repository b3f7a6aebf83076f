package graph

import "math"

// DistanceMap is a two-level mapping from node to node to nonnegative
// distance. It is symmetric with a zero diagonal. Node pairs with no
// connecting path are absent from the map.
type DistanceMap map[string]map[string]float64

// AllPairsShortestPaths computes graph-theoretic distances between every
// pair of nodes using Floyd-Warshall over the edge weights (default 1).
// The result is the ideal-distance target consumed by the Kamada-Kawai
// stress solver.
//
// Returns ErrEdgesRequired for a bare node list with more than one node,
// since every off-diagonal distance would be undefined.
func AllPairsShortestPaths(g *Graph) (DistanceMap, error) {
	n := g.NodeCount()
	if n > 1 && g.EdgeCount() == 0 {
		return nil, ErrEdgesRequired
	}

	nodes := g.nodes
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
		for j := range dist[i] {
			if i != j {
				dist[i][j] = math.Inf(1)
			}
		}
	}
	for _, e := range g.edges {
		i, j := g.index[e.U], g.index[e.V]
		if e.Weight < dist[i][j] {
			dist[i][j] = e.Weight
			dist[j][i] = e.Weight
		}
	}

	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			dik := dist[i][k]
			if math.IsInf(dik, 1) {
				continue
			}
			for j := 0; j < n; j++ {
				if d := dik + dist[k][j]; d < dist[i][j] {
					dist[i][j] = d
				}
			}
		}
	}

	out := make(DistanceMap, n)
	for i, u := range nodes {
		row := make(map[string]float64, n)
		for j, v := range nodes {
			if !math.IsInf(dist[i][j], 1) {
				row[v] = dist[i][j]
			}
		}
		out[u] = row
	}
	return out, nil
}
