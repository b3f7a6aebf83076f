package layout

import (
	"math"

	"github.com/forcelay/forcelay/pkg/graph"
)

// Default parameters for the adaptive integrator.
const (
	defaultFA2MaxIter      = 100
	defaultFA2Jitter       = 1.0
	defaultFA2ScalingRatio = 2.0
	defaultFA2Gravity      = 1.0

	fa2MinDistance        = 0.01
	fa2ConvergenceEps     = 1e-10
	fa2MinSpeedEfficiency = 0.05
)

// ForceAtlas2 computes a layout with mass-weighted repulsion, edge
// attraction, and gravity, driven by a global step size adapted each
// iteration from the aggregate swing (oscillation) and traction (net
// movement) of all nodes.
type ForceAtlas2 struct {
	// MaxIter caps the number of iterations. Zero means 100.
	MaxIter int

	// JitterTolerance is the tolerated oscillation level; larger values
	// trade quality for speed. Zero means 1.0.
	JitterTolerance float64

	// ScalingRatio scales repulsion against attraction. Zero means 2.0.
	ScalingRatio float64

	// Gravity is the pull toward the layout centroid. Zero means 1.0.
	Gravity float64

	// DistributedAction divides each node's attraction by its mass so
	// high-degree nodes move less.
	DistributedAction bool

	// StrongGravity makes the gravity force grow with distance from the
	// centroid instead of staying constant in magnitude.
	StrongGravity bool

	// NodeMass overrides node masses. Default mass is 1 + degree.
	NodeMass map[string]float64

	// NodeSize overrides node sizes (default 1), consumed only when
	// AdjustSizes is set.
	NodeSize map[string]float64

	// AdjustSizes reduces pair distances by the sum of node sizes to
	// approximate overlap prevention, and caps per-node step length.
	AdjustSizes bool

	// DissuadeHubs weakens the attraction received by high-degree nodes,
	// clustering leaves around their hubs.
	DissuadeHubs bool

	// Linlog switches edge attraction to the logarithmic -log(1+d)/d form.
	Linlog bool

	// InitialPos seeds node positions. Partial maps are allowed: unseeded
	// nodes are randomized within the bounding box of the seeded ones.
	InitialPos PositionMap

	// Dim is the coordinate dimension (default 2).
	Dim int

	// Seed drives the deterministic generator for unseeded positions.
	Seed uint64

	// Progress, when non-nil, receives the iteration index and the total
	// movement applied in that iteration.
	Progress func(iteration int, delta float64)
}

// Name returns the algorithm identifier.
func (f ForceAtlas2) Name() string { return "forceatlas2" }

// Layout runs the integrator and returns final positions, rescaled to the
// unit extent around the origin.
func (f ForceAtlas2) Layout(g *graph.Graph) (PositionMap, error) {
	dim := f.Dim
	if dim == 0 {
		dim = 2
	}
	maxIter := f.MaxIter
	if maxIter == 0 {
		maxIter = defaultFA2MaxIter
	}
	jitterTolerance := f.JitterTolerance
	if jitterTolerance == 0 {
		jitterTolerance = defaultFA2Jitter
	}
	scalingRatio := f.ScalingRatio
	if scalingRatio == 0 {
		scalingRatio = defaultFA2ScalingRatio
	}
	gravity := f.Gravity
	if gravity == 0 {
		gravity = defaultFA2Gravity
	}

	nodes := g.Nodes()
	n := len(nodes)
	if n == 0 {
		return PositionMap{}, nil
	}
	origin := make([]float64, dim)
	if n == 1 {
		return PositionMap{nodes[0]: origin}, nil
	}

	rng := NewRand(f.Seed)
	pos := toDense(nodes, f.InitialPos, dim, rng)

	mass := make([]float64, n)
	size := make([]float64, n)
	for i, id := range nodes {
		mass[i] = 1 + float64(g.Degree(id))
		if m, ok := f.NodeMass[id]; ok {
			mass[i] = m
		}
		size[i] = 1
		if s, ok := f.NodeSize[id]; ok {
			size[i] = s
		}
	}

	type edgeRef struct {
		i, j int
		w    float64
	}
	edges := make([]edgeRef, 0, g.EdgeCount())
	for _, e := range g.Edges() {
		i, _ := g.Index(e.U)
		j, _ := g.Index(e.V)
		edges = append(edges, edgeRef{i: i, j: j, w: e.Weight})
	}

	update := make([][]float64, n)
	prev := make([][]float64, n)
	for i := range update {
		update[i] = make([]float64, dim)
		prev[i] = make([]float64, dim)
	}
	delta := make([]float64, dim)
	centroid := make([]float64, dim)

	speed := 1.0
	speedEfficiency := 1.0

	for iter := 0; iter < maxIter; iter++ {
		for i := range update {
			for d := range update[i] {
				update[i][d] = 0
			}
		}

		// Attraction along edges.
		for _, e := range edges {
			for d := 0; d < dim; d++ {
				delta[d] = pos[e.i][d] - pos[e.j][d]
			}
			dist := math.Max(norm(delta), fa2MinDistance)

			factor := e.w
			if f.Linlog {
				factor *= math.Log(1+dist) / dist
			}
			fi, fj := factor, factor
			if f.DissuadeHubs {
				fi /= mass[e.i]
				fj /= mass[e.j]
			}
			for d := 0; d < dim; d++ {
				update[e.i][d] -= delta[d] * fi
				update[e.j][d] += delta[d] * fj
			}
		}
		if f.DistributedAction {
			for i := range update {
				for d := 0; d < dim; d++ {
					update[i][d] /= mass[i]
				}
			}
		}

		// Repulsion between every pair.
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				for d := 0; d < dim; d++ {
					delta[d] = pos[i][d] - pos[j][d]
				}
				dist := norm(delta)
				if f.AdjustSizes {
					dist -= size[i] + size[j]
				}
				dist = math.Max(dist, fa2MinDistance)

				factor := mass[i] * mass[j] / (dist * dist) * scalingRatio
				for d := 0; d < dim; d++ {
					update[i][d] += delta[d] * factor
					update[j][d] -= delta[d] * factor
				}
			}
		}

		// Gravity toward the centroid of all positions.
		for d := 0; d < dim; d++ {
			centroid[d] = 0
		}
		for i := 0; i < n; i++ {
			for d := 0; d < dim; d++ {
				centroid[d] += pos[i][d]
			}
		}
		for d := 0; d < dim; d++ {
			centroid[d] /= float64(n)
		}
		for i := 0; i < n; i++ {
			for d := 0; d < dim; d++ {
				delta[d] = pos[i][d] - centroid[d]
			}
			gfactor := gravity * mass[i]
			if !f.StrongGravity {
				// Unit direction; the guard keeps a node sitting exactly
				// on the centroid from producing NaN coordinates.
				dist := norm(delta)
				if dist < fa2MinDistance {
					continue
				}
				gfactor /= dist
			}
			for d := 0; d < dim; d++ {
				update[i][d] -= delta[d] * gfactor
			}
		}

		// Swing compares each node's force against the previous
		// iteration's: oscillating forces cancel, sustained forces add.
		// Their aggregate ratio drives the global speed.
		var swing, traction float64
		nodeSwing := make([]float64, n)
		for i := 0; i < n; i++ {
			var sw, tr float64
			for d := 0; d < dim; d++ {
				diff := prev[i][d] - update[i][d]
				sum := prev[i][d] + update[i][d]
				sw += diff * diff
				tr += sum * sum
			}
			nodeSwing[i] = mass[i] * math.Sqrt(sw)
			swing += nodeSwing[i]
			traction += 0.5 * mass[i] * math.Sqrt(tr)
		}

		speed, speedEfficiency = adaptSpeed(
			n, swing, traction, speed, speedEfficiency, jitterTolerance)

		// Per-node step factor, with an extra cap when sizes are active.
		var moved float64
		for i := 0; i < n; i++ {
			factor := speed / (1 + math.Sqrt(speed*nodeSwing[i]))
			if f.AdjustSizes {
				factor *= 0.1
				if df := norm(update[i]); df > 0 {
					factor = math.Min(factor*df, 10) / df
				}
			}
			for d := 0; d < dim; d++ {
				step := update[i][d] * factor
				pos[i][d] += step
				moved += math.Abs(step)
			}
		}
		update, prev = prev, update

		if f.Progress != nil {
			f.Progress(iter, moved)
		}
		if moved < fa2ConvergenceEps {
			break
		}
	}

	return Rescale(toMap(nodes, pos), 1, origin), nil
}

// adaptSpeed derives the next global speed and speed efficiency from the
// swing/traction ratio, damping any increase to at most 50% per iteration.
func adaptSpeed(n int, swing, traction, speed, efficiency, jitterTolerance float64) (float64, float64) {
	estimatedJitter := 0.05 * math.Sqrt(float64(n))
	minJitter := math.Sqrt(estimatedJitter)
	maxJitter := 10.0

	jitter := jitterTolerance * math.Max(minJitter,
		math.Min(maxJitter, estimatedJitter*traction/float64(n*n)))

	if traction > 0 && swing/traction > 2 {
		if efficiency > fa2MinSpeedEfficiency {
			efficiency *= 0.5
		}
		jitter = math.Max(jitter, jitterTolerance)
	}

	var targetSpeed float64
	if swing == 0 {
		targetSpeed = math.Inf(1)
	} else {
		targetSpeed = jitter * efficiency * traction / swing
	}

	if swing > jitter*traction {
		if efficiency > fa2MinSpeedEfficiency {
			efficiency *= 0.7
		}
	} else if speed < 1000 {
		efficiency *= 1.3
	}

	const maxRise = 0.5
	speed += math.Min(targetSpeed-speed, maxRise*speed)
	return speed, efficiency
}
