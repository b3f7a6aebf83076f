package layout

import (
	"math"

	"github.com/forcelay/forcelay/pkg/graph"
)

// Random places every node uniformly in the unit box [0,1)^dim using the
// seeded generator. It is the default starting point for the iterative
// optimizers and is exposed for callers that want to thread an explicit
// initial placement through several runs.
func Random(g *graph.Graph, dim int, seed uint64) PositionMap {
	rng := NewRand(seed)
	out := make(PositionMap, g.NodeCount())
	for _, id := range g.Nodes() {
		out[id] = rng.Floats(dim)
	}
	return out
}

// startingPositions produces the deterministic closed-form placement used
// when an optimizer receives no initial positions: a line for one
// dimension, a unit circle for two, a golden-spiral sphere for three, and
// a seeded unit box beyond that.
func startingPositions(nodes []string, dim int) [][]float64 {
	n := len(nodes)
	pos := make([][]float64, n)
	switch dim {
	case 1:
		for i := range pos {
			pos[i] = []float64{linspace(i, n)}
		}
	case 2:
		for i := range pos {
			theta := 2 * math.Pi * float64(i) / float64(n)
			pos[i] = []float64{math.Cos(theta), math.Sin(theta)}
		}
	case 3:
		// Fibonacci lattice: near-uniform coverage of the unit sphere.
		golden := math.Pi * (3 - math.Sqrt(5))
		for i := range pos {
			y := 1 - 2*float64(i)/math.Max(1, float64(n-1))
			r := math.Sqrt(math.Max(0, 1-y*y))
			theta := golden * float64(i)
			pos[i] = []float64{r * math.Cos(theta), y, r * math.Sin(theta)}
		}
	default:
		rng := NewRand(uint64(n))
		for i := range pos {
			pos[i] = rng.Floats(dim)
		}
	}
	return pos
}

// linspace spreads n samples evenly over [-1, 1].
func linspace(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return -1 + 2*float64(i)/float64(n-1)
}
