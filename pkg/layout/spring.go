package layout

import (
	"math"

	"github.com/forcelay/forcelay/pkg/graph"
)

// Default parameters for the spring integrator.
const (
	defaultSpringIterations = 50
	springInitialTemp       = 0.1
	springMinDistance       = 0.1
)

// Spring computes a force-directed layout in the Fruchterman-Reingold
// style: every node pair repels with k²/d, every edge attracts with d²/k,
// and per-step displacement is capped by a temperature that cools linearly
// to zero over the iteration budget.
type Spring struct {
	// K is the desired inter-node distance. Zero means 1/sqrt(|V|).
	K float64

	// Iterations is the cooling schedule length. Zero means 50.
	Iterations int

	// InitialPos seeds node positions; missing nodes are randomized.
	InitialPos PositionMap

	// Fixed lists nodes that never move. Every fixed node must appear in
	// InitialPos. When any node is fixed the result is NOT rescaled, so
	// the fixed points are preserved exactly in the caller's frame.
	Fixed []string

	// Scale is the output half-extent (default 1) and Center the output
	// midpoint (default origin). Ignored when Fixed is non-empty.
	Scale  float64
	Center []float64

	// Dim is the coordinate dimension (default 2).
	Dim int

	// Seed drives the deterministic generator for unseeded positions.
	Seed uint64

	// Progress, when non-nil, receives the iteration index and the total
	// displacement applied in that iteration.
	Progress func(iteration int, delta float64)
}

// Name returns the algorithm identifier.
func (s Spring) Name() string { return "spring" }

// Layout runs the integrator and returns final positions.
func (s Spring) Layout(g *graph.Graph) (PositionMap, error) {
	dim := s.Dim
	if dim == 0 {
		dim = 2
	}
	scale := s.Scale
	if scale == 0 {
		scale = 1
	}
	center, err := resolveCenter(s.Center, dim)
	if err != nil {
		return nil, err
	}
	iterations := s.Iterations
	if iterations == 0 {
		iterations = defaultSpringIterations
	}

	nodes := g.Nodes()
	n := len(nodes)
	if n == 0 {
		return PositionMap{}, nil
	}
	if n == 1 {
		return PositionMap{nodes[0]: cloneVec(center)}, nil
	}

	fixed := make(map[string]bool, len(s.Fixed))
	for _, id := range s.Fixed {
		if _, ok := s.InitialPos[id]; !ok {
			return nil, ErrFixedWithoutPosition
		}
		fixed[id] = true
	}

	rng := NewRand(s.Seed)
	pos := toDense(nodes, s.InitialPos, dim, rng)

	k := s.K
	if k == 0 {
		k = 1 / math.Sqrt(float64(n))
	}

	t := springInitialTemp
	dt := t / float64(iterations+1)

	disp := make([][]float64, n)
	for i := range disp {
		disp[i] = make([]float64, dim)
	}
	delta := make([]float64, dim)

	for iter := 0; iter < iterations; iter++ {
		for i := range disp {
			for d := range disp[i] {
				disp[i][d] = 0
			}
		}

		// Repulsion between every unordered pair.
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				for d := 0; d < dim; d++ {
					delta[d] = pos[i][d] - pos[j][d]
				}
				dist := math.Max(norm(delta), springMinDistance)
				force := k * k / dist
				for d := 0; d < dim; d++ {
					push := delta[d] / dist * force
					disp[i][d] += push
					disp[j][d] -= push
				}
			}
		}

		// Attraction along edges, scaled by edge weight.
		for _, e := range g.Edges() {
			i, _ := g.Index(e.U)
			j, _ := g.Index(e.V)
			for d := 0; d < dim; d++ {
				delta[d] = pos[i][d] - pos[j][d]
			}
			dist := math.Max(norm(delta), springMinDistance)
			force := dist * dist / k * e.Weight
			for d := 0; d < dim; d++ {
				pull := delta[d] / dist * force
				disp[i][d] -= pull
				disp[j][d] += pull
			}
		}

		// Apply displacements, capped by the current temperature.
		var moved float64
		for i, id := range nodes {
			if fixed[id] {
				continue
			}
			length := norm(disp[i])
			if length == 0 {
				continue
			}
			step := math.Min(length, t) / length
			for d := 0; d < dim; d++ {
				pos[i][d] += disp[i][d] * step
			}
			moved += length * step
		}
		if s.Progress != nil {
			s.Progress(iter, moved)
		}

		t -= dt
	}

	result := toMap(nodes, pos)
	if len(fixed) > 0 {
		return result, nil
	}
	return Rescale(result, scale, center), nil
}
