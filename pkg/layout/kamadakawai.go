package layout

import (
	"math"

	"github.com/forcelay/forcelay/pkg/graph"
)

// Stress model parameters.
const (
	kkMissingDistance = 1e6
	kkInverseEps      = 1e-3
	kkCenteringWeight = 1e-3
	kkDirectionFloor  = 1e-3
)

// KamadaKawai places nodes so that euclidean distances approximate graph
// distances, minimizing the normalized stress with a limited-memory BFGS
// solver. Graph distances default to all-pairs shortest paths; an explicit
// distance table takes precedence.
type KamadaKawai struct {
	// Dist overrides the graph distances. Missing pairs are treated as a
	// large constant so disconnected components drift apart.
	Dist graph.DistanceMap

	// InitialPos seeds node positions. Nodes absent from the map fall
	// back to the deterministic starting arrangement for Dim.
	InitialPos PositionMap

	// Scale is the output extent (default 1).
	Scale float64

	// Center translates the output (default origin).
	Center []float64

	// Dim is the coordinate dimension (default 2).
	Dim int

	// Progress, when non-nil, receives the solver iteration index and the
	// max-norm of the stress gradient after that iteration.
	Progress func(iteration int, delta float64)
}

// Name returns the algorithm identifier.
func (k KamadaKawai) Name() string { return "kamada_kawai" }

// Layout minimizes the stress objective and returns positions rescaled to
// Scale around Center.
func (k KamadaKawai) Layout(g *graph.Graph) (PositionMap, error) {
	dim := k.Dim
	if dim == 0 {
		dim = 2
	}
	scale := k.Scale
	if scale == 0 {
		scale = 1
	}
	center, err := resolveCenter(k.Center, dim)
	if err != nil {
		return nil, err
	}

	nodes := g.Nodes()
	n := len(nodes)
	if n == 0 {
		return PositionMap{}, nil
	}
	if n == 1 {
		return PositionMap{nodes[0]: cloneVec(center)}, nil
	}

	dist := k.Dist
	if dist == nil {
		dist, err = graph.AllPairsShortestPaths(g)
		if err != nil {
			return nil, err
		}
	}

	// Inverse distance weights; missing pairs get a large distance so
	// their contribution to the stress is negligible.
	invdist := make([][]float64, n)
	for i, u := range nodes {
		invdist[i] = make([]float64, n)
		for j, v := range nodes {
			if i == j {
				continue
			}
			d := kkMissingDistance
			if row, ok := dist[u]; ok {
				if dv, ok := row[v]; ok {
					d = dv
				}
			}
			invdist[i][j] = 1 / (d + kkInverseEps)
		}
	}

	init := k.seededPositions(nodes, dim)
	x0 := make([]float64, n*dim)
	for i := range init {
		copy(x0[i*dim:(i+1)*dim], init[i])
	}

	solved, _ := minimizeLBFGS(stressObjective(invdist, n, dim), x0, k.Progress)

	pos := make([][]float64, n)
	for i := range pos {
		pos[i] = append([]float64(nil), solved[i*dim:(i+1)*dim]...)
	}
	return Rescale(toMap(nodes, pos), scale, center), nil
}

// seededPositions merges InitialPos over the deterministic starting
// arrangement for the dimension.
func (k KamadaKawai) seededPositions(nodes []string, dim int) [][]float64 {
	base := startingPositions(nodes, dim)
	pos := make([][]float64, len(nodes))
	for i, id := range nodes {
		if p, ok := k.InitialPos[id]; ok {
			pos[i] = padTo(p, dim)
			continue
		}
		pos[i] = base[i]
	}
	return pos
}

// stressObjective builds the cost/gradient closure over the flattened
// coordinate vector. The cost is the summed squared relative distance
// error plus a weak quadratic pull of the coordinate sum toward zero,
// which pins the otherwise translation-invariant optimum.
func stressObjective(invdist [][]float64, n, dim int) objective {
	diff := make([]float64, dim)
	sum := make([]float64, dim)

	return func(x []float64, grad []float64) float64 {
		for i := range grad {
			grad[i] = 0
		}
		for d := range sum {
			sum[d] = 0
		}

		var cost float64
		for i := 0; i < n; i++ {
			for d := 0; d < dim; d++ {
				sum[d] += x[i*dim+d]
			}
			for j := i + 1; j < n; j++ {
				var dist float64
				for d := 0; d < dim; d++ {
					diff[d] = x[i*dim+d] - x[j*dim+d]
					dist += diff[d] * diff[d]
				}
				dist = math.Sqrt(dist)

				offset := dist*invdist[i][j] - 1
				cost += 0.5 * offset * offset

				denom := math.Max(dist, kkDirectionFloor)
				gfactor := invdist[i][j] * offset / denom
				for d := 0; d < dim; d++ {
					grad[i*dim+d] += diff[d] * gfactor
					grad[j*dim+d] -= diff[d] * gfactor
				}
			}
		}

		// Centering term.
		var sumSq float64
		for d := 0; d < dim; d++ {
			sumSq += sum[d] * sum[d]
		}
		cost += 0.5 * kkCenteringWeight * sumSq
		for i := 0; i < n; i++ {
			for d := 0; d < dim; d++ {
				grad[i*dim+d] += kkCenteringWeight * sum[d]
			}
		}
		return cost
	}
}
