package layout

import (
	"errors"
	"math"

	"github.com/forcelay/forcelay/pkg/graph"
)

var (
	// ErrDimensionMismatch is returned when an explicit center vector does
	// not match the requested dimension. Raised before any iteration begins.
	ErrDimensionMismatch = errors.New("center length must match the layout dimension")

	// ErrFixedWithoutPosition is returned when a node is declared fixed but
	// no initial position was supplied for it.
	ErrFixedWithoutPosition = errors.New("fixed node has no initial position")
)

// PositionMap maps each node ID to a coordinate vector of the layout
// dimension. Every optimizer guarantees exactly one entry per graph node,
// each of equal length, on successful return.
type PositionMap map[string][]float64

// Layouter is the interface implemented by every position optimizer.
// Implementations are pure value types configured by their fields; the
// zero value of each uses documented defaults. A single call owns all of
// its state, so distinct calls may run concurrently on independent graphs.
type Layouter interface {
	// Layout computes final node positions for the graph.
	Layout(g *graph.Graph) (PositionMap, error)

	// Name returns the short algorithm identifier used in serialized
	// layouts and cache keys.
	Name() string
}

// =============================================================================
// Small Vector Helpers
// =============================================================================

// norm returns the Euclidean length of v.
func norm(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x * x
	}
	return math.Sqrt(s)
}

// dot returns the inner product of two equal-length vectors.
func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// axpy adds alpha*x to y in place.
func axpy(y []float64, alpha float64, x []float64) {
	for i := range y {
		y[i] += alpha * x[i]
	}
}

// scaleVec multiplies v by alpha in place.
func scaleVec(v []float64, alpha float64) {
	for i := range v {
		v[i] *= alpha
	}
}

// cloneVec returns a copy of v.
func cloneVec(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}

// padTo returns v extended with zeros (or truncated) to length dim.
func padTo(v []float64, dim int) []float64 {
	out := make([]float64, dim)
	copy(out, v)
	return out
}

// resolveCenter validates and defaults the center vector for a dimension.
// A nil center means the origin.
func resolveCenter(center []float64, dim int) ([]float64, error) {
	if center == nil {
		return make([]float64, dim), nil
	}
	if len(center) != dim {
		return nil, ErrDimensionMismatch
	}
	return cloneVec(center), nil
}

// toDense builds the node index table and dense position array for a call.
// Seeded entries come from init (padded to dim); the rest are drawn from rng
// within bounds, a uniform [0,1) box by default.
func toDense(nodes []string, init PositionMap, dim int, rng *Rand) [][]float64 {
	pos := make([][]float64, len(nodes))

	// Bounding box of the seeded positions, used to randomize the rest.
	lo, hi := make([]float64, dim), make([]float64, dim)
	haveSeed := false
	for _, p := range init {
		p = padTo(p, dim)
		for d := 0; d < dim; d++ {
			if !haveSeed || p[d] < lo[d] {
				lo[d] = p[d]
			}
			if !haveSeed || p[d] > hi[d] {
				hi[d] = p[d]
			}
		}
		haveSeed = true
	}
	if !haveSeed {
		for d := 0; d < dim; d++ {
			hi[d] = 1
		}
	}

	for i, id := range nodes {
		if p, ok := init[id]; ok {
			pos[i] = padTo(p, dim)
			continue
		}
		v := make([]float64, dim)
		for d := 0; d < dim; d++ {
			span := hi[d] - lo[d]
			if span == 0 {
				span = 1
			}
			v[d] = lo[d] + rng.Float64()*span
		}
		pos[i] = v
	}
	return pos
}

// toMap converts a dense position array back to a PositionMap.
func toMap(nodes []string, pos [][]float64) PositionMap {
	out := make(PositionMap, len(nodes))
	for i, id := range nodes {
		out[id] = pos[i]
	}
	return out
}
