package layout

import (
	"math"
	"testing"

	"github.com/forcelay/forcelay/pkg/graph"
)

// pathGraph builds a path a-b-c-... over the given IDs.
func pathGraph(t *testing.T, ids ...string) *graph.Graph {
	t.Helper()
	g, err := graph.NewFromNodes(ids...)
	if err != nil {
		t.Fatalf("building nodes: %v", err)
	}
	for i := 1; i < len(ids); i++ {
		if err := g.AddEdge(ids[i-1], ids[i]); err != nil {
			t.Fatalf("adding edge: %v", err)
		}
	}
	return g
}

// cycleGraph builds a cycle over the given IDs.
func cycleGraph(t *testing.T, ids ...string) *graph.Graph {
	t.Helper()
	g := pathGraph(t, ids...)
	if len(ids) > 2 {
		if err := g.AddEdge(ids[len(ids)-1], ids[0]); err != nil {
			t.Fatalf("closing cycle: %v", err)
		}
	}
	return g
}

// checkComplete asserts one finite position of the given dimension per node.
func checkComplete(t *testing.T, g *graph.Graph, pos PositionMap, dim int) {
	t.Helper()
	if len(pos) != g.NodeCount() {
		t.Fatalf("got %d positions for %d nodes", len(pos), g.NodeCount())
	}
	for _, id := range g.Nodes() {
		p, ok := pos[id]
		if !ok {
			t.Fatalf("node %s missing from layout", id)
		}
		if len(p) != dim {
			t.Fatalf("node %s has %d dims, want %d", id, len(p), dim)
		}
		for d, v := range p {
			if !isFinite(v) {
				t.Fatalf("node %s dim %d is %v", id, d, v)
			}
		}
	}
}

// checkEqualLayouts asserts two layouts are identical.
func checkEqualLayouts(t *testing.T, a, b PositionMap) {
	t.Helper()
	if len(a) != len(b) {
		t.Fatalf("layout sizes differ: %d vs %d", len(a), len(b))
	}
	for id := range a {
		for d := range a[id] {
			if a[id][d] != b[id][d] {
				t.Fatalf("node %s dim %d: %v != %v", id, d, a[id][d], b[id][d])
			}
		}
	}
}

func pointDistance(a, b []float64) float64 {
	var s float64
	for d := range a {
		s += (a[d] - b[d]) * (a[d] - b[d])
	}
	return math.Sqrt(s)
}

func TestResolveCenter(t *testing.T) {
	tests := []struct {
		name    string
		center  []float64
		dim     int
		want    []float64
		wantErr bool
	}{
		{name: "nil defaults to origin", center: nil, dim: 3, want: []float64{0, 0, 0}},
		{name: "matching passes through", center: []float64{1, 2}, dim: 2, want: []float64{1, 2}},
		{name: "mismatch rejected", center: []float64{1}, dim: 2, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveCenter(tt.center, tt.dim)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for d := range tt.want {
				if got[d] != tt.want[d] {
					t.Fatalf("dim %d: got %v, want %v", d, got[d], tt.want[d])
				}
			}
		})
	}
}

func TestToDensePartialSeeding(t *testing.T) {
	nodes := []string{"a", "b", "c"}
	init := PositionMap{"a": {10, 10}, "b": {12, 14}}
	pos := toDense(nodes, init, 2, NewRand(1))

	if pos[0][0] != 10 || pos[0][1] != 10 {
		t.Fatalf("seeded node moved: %v", pos[0])
	}
	// Unseeded node lands inside the seeded bounding box.
	if pos[2][0] < 10 || pos[2][0] > 12 || pos[2][1] < 10 || pos[2][1] > 14 {
		t.Fatalf("unseeded node %v outside bounding box", pos[2])
	}
}

func TestStartingPositions(t *testing.T) {
	nodes := []string{"a", "b", "c", "d"}

	t.Run("dim 2 on unit circle", func(t *testing.T) {
		for _, p := range startingPositions(nodes, 2) {
			if math.Abs(norm(p)-1) > 1e-9 {
				t.Fatalf("point %v not on unit circle", p)
			}
		}
	})
	t.Run("dim 3 on unit sphere", func(t *testing.T) {
		for _, p := range startingPositions(nodes, 3) {
			if math.Abs(norm(p)-1) > 1e-9 {
				t.Fatalf("point %v not on unit sphere", p)
			}
		}
	})
	t.Run("dim 1 spans the segment", func(t *testing.T) {
		pos := startingPositions(nodes, 1)
		if pos[0][0] != -1 || pos[len(pos)-1][0] != 1 {
			t.Fatalf("endpoints %v and %v, want -1 and 1", pos[0][0], pos[len(pos)-1][0])
		}
	})
	t.Run("higher dims deterministic", func(t *testing.T) {
		a := startingPositions(nodes, 5)
		b := startingPositions(nodes, 5)
		for i := range a {
			for d := range a[i] {
				if a[i][d] != b[i][d] {
					t.Fatal("high-dimensional placement not deterministic")
				}
			}
		}
	})
}

func TestRandomPlacement(t *testing.T) {
	g := cycleGraph(t, "a", "b", "c", "d", "e")

	pos := Random(g, 3, 7)
	if len(pos) != g.NodeCount() {
		t.Fatalf("got %d positions, want %d", len(pos), g.NodeCount())
	}
	for id, p := range pos {
		if len(p) != 3 {
			t.Fatalf("node %s has %d coordinates, want 3", id, len(p))
		}
		for _, v := range p {
			if v < 0 || v >= 1 {
				t.Fatalf("node %s coordinate %v outside [0,1)", id, v)
			}
		}
	}

	again := Random(g, 3, 7)
	for id := range pos {
		for d := range pos[id] {
			if pos[id][d] != again[id][d] {
				t.Fatalf("node %s not deterministic for a fixed seed", id)
			}
		}
	}
}
