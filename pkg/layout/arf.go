package layout

import (
	"errors"
	"math"

	"github.com/forcelay/forcelay/pkg/graph"
)

// ErrSpringConstant is returned when the attraction constant of the ARF
// integrator is not strictly greater than one.
var ErrSpringConstant = errors.New("attraction constant must be greater than 1")

// Default parameters for the attractive and repulsive forces integrator.
const (
	defaultARFA        = 1.1
	defaultARFScaling  = 1.0
	defaultARFMaxIter  = 1000
	arfTimeStep        = 1e-3
	arfErrorTolerance  = 1e-6
	arfMinPairDistance = 0.01
)

// ARF computes a two-dimensional layout by explicit Euler integration of
// attractive and repulsive forces. Connected pairs attract with strength A,
// all pairs repel with a strength scaled by the square root of the node
// count, giving clusters of uniform density.
type ARF struct {
	// A is the spring constant between connected nodes and must be
	// strictly greater than 1. Zero means 1.1.
	A float64

	// Scaling multiplies the repulsive baseline. Zero means 1.0.
	Scaling float64

	// MaxIter caps the number of Euler steps. Zero means 1000.
	MaxIter int

	// InitialPos seeds node positions. Unseeded nodes are randomized
	// within the bounding box of the seeded ones.
	InitialPos PositionMap

	// Seed drives the deterministic generator for unseeded positions.
	Seed uint64

	// Progress, when non-nil, receives the iteration index and the force
	// residual after that iteration.
	Progress func(iteration int, residual float64)
}

// Name returns the algorithm identifier.
func (a ARF) Name() string { return "arf" }

// Layout runs the integrator until the force residual drops below the
// tolerance or MaxIter is reached. Positions are returned in simulation
// coordinates and are not rescaled.
func (a ARF) Layout(g *graph.Graph) (PositionMap, error) {
	springK := a.A
	if springK == 0 {
		springK = defaultARFA
	}
	if springK <= 1 {
		return nil, ErrSpringConstant
	}
	scaling := a.Scaling
	if scaling == 0 {
		scaling = defaultARFScaling
	}
	maxIter := a.MaxIter
	if maxIter == 0 {
		maxIter = defaultARFMaxIter
	}

	const dim = 2
	nodes := g.Nodes()
	n := len(nodes)
	if n == 0 {
		return PositionMap{}, nil
	}
	if n == 1 {
		return PositionMap{nodes[0]: make([]float64, dim)}, nil
	}

	rng := NewRand(a.Seed)
	pos := toDense(nodes, a.InitialPos, dim, rng)
	rho := scaling * math.Sqrt(float64(n))

	// Coupling matrix: unit repulsive baseline everywhere off the
	// diagonal, spring constant between connected pairs.
	k := make([][]float64, n)
	for i, u := range nodes {
		k[i] = make([]float64, n)
		for j, v := range nodes {
			if i == j {
				continue
			}
			k[i][j] = 1
			if _, ok := g.Weight(u, v); ok {
				k[i][j] = springK
			}
		}
	}

	change := make([][]float64, n)
	for i := range change {
		change[i] = make([]float64, dim)
	}
	delta := make([]float64, dim)

	for iter := 0; iter < maxIter; iter++ {
		var residual float64
		for i := 0; i < n; i++ {
			change[i][0] = 0
			change[i][1] = 0
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				for d := 0; d < dim; d++ {
					delta[d] = pos[j][d] - pos[i][d]
				}
				dist := math.Max(norm(delta), arfMinPairDistance)
				factor := k[i][j] - rho/dist
				for d := 0; d < dim; d++ {
					change[i][d] += delta[d] * factor
				}
			}
			residual += norm(change[i])
		}
		for i := 0; i < n; i++ {
			pos[i][0] += change[i][0] * arfTimeStep
			pos[i][1] += change[i][1] * arfTimeStep
		}
		if a.Progress != nil {
			a.Progress(iter, residual)
		}
		if residual < arfErrorTolerance {
			break
		}
	}

	return toMap(nodes, pos), nil
}
