package layout

import (
	"errors"
	"math"
	"testing"

	"github.com/forcelay/forcelay/pkg/graph"
)

func TestKamadaKawaiPathOrdering(t *testing.T) {
	g := pathGraph(t, "a", "b", "c")
	pos, err := KamadaKawai{}.Layout(g)
	if err != nil {
		t.Fatalf("layout failed: %v", err)
	}
	checkComplete(t, g, pos, 2)

	// Graph distance a-c is twice a-b, so the endpoints must end up
	// farther apart than either endpoint is from the middle.
	ab := pointDistance(pos["a"], pos["b"])
	bc := pointDistance(pos["b"], pos["c"])
	ac := pointDistance(pos["a"], pos["c"])
	if ac <= ab || ac <= bc {
		t.Fatalf("endpoint distance %v not largest (ab=%v, bc=%v)", ac, ab, bc)
	}
}

func TestKamadaKawaiExplicitDistances(t *testing.T) {
	g, err := graph.NewFromNodes("a", "b", "c")
	if err != nil {
		t.Fatalf("building nodes: %v", err)
	}
	dist := graph.DistanceMap{
		"a": {"b": 1, "c": 2},
		"b": {"a": 1, "c": 1},
		"c": {"a": 2, "b": 1},
	}
	pos, err := KamadaKawai{Dist: dist}.Layout(g)
	if err != nil {
		t.Fatalf("layout failed: %v", err)
	}
	ab := pointDistance(pos["a"], pos["b"])
	bc := pointDistance(pos["b"], pos["c"])
	ac := pointDistance(pos["a"], pos["c"])
	if ac <= ab || ac <= bc {
		t.Fatalf("distance a-c (%v) should exceed a-b (%v) and b-c (%v)", ac, ab, bc)
	}
}

func TestKamadaKawaiRequiresEdges(t *testing.T) {
	g, err := graph.NewFromNodes("a", "b", "c")
	if err != nil {
		t.Fatalf("building nodes: %v", err)
	}
	if _, err := (KamadaKawai{}).Layout(g); !errors.Is(err, graph.ErrEdgesRequired) {
		t.Fatalf("got %v, want ErrEdgesRequired", err)
	}
}

func TestKamadaKawaiEmptyAndSingle(t *testing.T) {
	t.Run("empty graph", func(t *testing.T) {
		pos, err := KamadaKawai{}.Layout(pathGraph(t))
		if err != nil {
			t.Fatalf("layout failed: %v", err)
		}
		if len(pos) != 0 {
			t.Fatalf("expected empty layout, got %d entries", len(pos))
		}
	})
	t.Run("single node at center", func(t *testing.T) {
		pos, err := KamadaKawai{Center: []float64{2, 2}}.Layout(pathGraph(t, "only"))
		if err != nil {
			t.Fatalf("layout failed: %v", err)
		}
		if p := pos["only"]; p[0] != 2 || p[1] != 2 {
			t.Fatalf("single node at %v, want (2, 2)", p)
		}
	})
}

func TestKamadaKawaiDeterminism(t *testing.T) {
	g := cycleGraph(t, "a", "b", "c", "d", "e")
	first, err := KamadaKawai{}.Layout(g)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := KamadaKawai{}.Layout(g)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	checkEqualLayouts(t, first, second)
}

func TestKamadaKawaiScaleAndCenter(t *testing.T) {
	g := cycleGraph(t, "a", "b", "c", "d")
	center := []float64{-2, 7}
	pos, err := KamadaKawai{Scale: 5, Center: center}.Layout(g)
	if err != nil {
		t.Fatalf("layout failed: %v", err)
	}
	var maxDist float64
	for _, p := range pos {
		if d := pointDistance(p, center); d > maxDist {
			maxDist = d
		}
	}
	if math.Abs(maxDist-5) > 1e-9 {
		t.Fatalf("max distance from center %v, want 5", maxDist)
	}
}

func TestKamadaKawaiReducesStress(t *testing.T) {
	g := cycleGraph(t, "a", "b", "c", "d", "e", "f")
	dist, err := graph.AllPairsShortestPaths(g)
	if err != nil {
		t.Fatalf("shortest paths: %v", err)
	}

	nodes := g.Nodes()
	n := len(nodes)
	invdist := make([][]float64, n)
	for i, u := range nodes {
		invdist[i] = make([]float64, n)
		for j, v := range nodes {
			if i != j {
				invdist[i][j] = 1 / (dist[u][v] + kkInverseEps)
			}
		}
	}
	fn := stressObjective(invdist, n, 2)
	grad := make([]float64, n*2)

	x0 := make([]float64, n*2)
	for i, p := range startingPositions(nodes, 2) {
		copy(x0[i*2:], p)
	}
	before := fn(x0, grad)

	_, after := minimizeLBFGS(fn, x0, nil)
	if after > before {
		t.Fatalf("stress grew from %v to %v", before, after)
	}
}

func TestKamadaKawaiProgressCallback(t *testing.T) {
	g := cycleGraph(t, "a", "b", "c", "d", "e", "f")
	var calls int
	lastIter := -1
	_, err := KamadaKawai{Progress: func(iter int, delta float64) {
		if iter != lastIter+1 {
			t.Fatalf("iteration %d after %d, want consecutive", iter, lastIter)
		}
		lastIter = iter
		if math.IsNaN(delta) || delta < 0 {
			t.Fatalf("gradient norm %v at iteration %d", delta, iter)
		}
		calls++
	}}.Layout(g)
	if err != nil {
		t.Fatalf("layout failed: %v", err)
	}
	if calls == 0 {
		t.Fatal("progress callback never invoked")
	}
}

func TestKamadaKawaiThreeDimensional(t *testing.T) {
	g := cycleGraph(t, "a", "b", "c", "d", "e")
	pos, err := KamadaKawai{Dim: 3}.Layout(g)
	if err != nil {
		t.Fatalf("layout failed: %v", err)
	}
	checkComplete(t, g, pos, 3)
}
