package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/forcelay/forcelay/pkg/cache"
	"github.com/forcelay/forcelay/pkg/errors"
	"github.com/forcelay/forcelay/pkg/graph"
)

func TestValidateAlgorithm(t *testing.T) {
	tests := []struct {
		algorithm string
		wantErr   bool
	}{
		{"spring", false},
		{"forceatlas2", false},
		{"arf", false},
		{"kamada_kawai", false},
		{"invalid", true},
		{"Spring", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateAlgorithm(tt.algorithm)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateAlgorithm(%q) error = %v, wantErr %v", tt.algorithm, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}

	// Check defaults were set
	if opts.Algorithm != DefaultAlgorithm {
		t.Errorf("Algorithm should be %s, got %s", DefaultAlgorithm, opts.Algorithm)
	}
	if opts.Dim != DefaultDim {
		t.Errorf("Dim should be %d, got %d", DefaultDim, opts.Dim)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale should be %f, got %f", DefaultScale, opts.Scale)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed should be %d, got %d", DefaultSeed, opts.Seed)
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{
			name: "unknown algorithm",
			opts: Options{Algorithm: "circular"},
			code: errors.ErrCodeUnknownAlgorithm,
		},
		{
			name: "negative dimension",
			opts: Options{Dim: -1},
			code: errors.ErrCodeInvalidDimension,
		},
		{
			name: "arf beyond two dimensions",
			opts: Options{Algorithm: "arf", Dim: 3},
			code: errors.ErrCodeInvalidDimension,
		},
		{
			name: "negative scale",
			opts: Options{Scale: -1},
			code: errors.ErrCodeInvalidParameter,
		},
		{
			name: "negative iterations",
			opts: Options{Iterations: -5},
			code: errors.ErrCodeInvalidParameter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("got code %s, want %s", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Algorithm: "forceatlas2", Seed: 7}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalDim := opts.Dim
	originalSeed := opts.Seed

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.Dim != originalDim {
		t.Error("Dim changed on second call")
	}
	if opts.Seed != originalSeed {
		t.Error("Seed changed on second call")
	}
}

func TestOptionsLayouter(t *testing.T) {
	for algorithm := range ValidAlgorithms {
		opts := Options{Algorithm: algorithm}
		l, err := opts.Layouter()
		if err != nil {
			t.Fatalf("Layouter(%s): %v", algorithm, err)
		}
		if l.Name() != algorithm {
			t.Errorf("Layouter name %s, want %s", l.Name(), algorithm)
		}
	}
}

// =============================================================================
// Runner
// =============================================================================

func testGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.NewFromNodes("a", "b", "c", "d")
	if err != nil {
		t.Fatalf("building graph: %v", err)
	}
	for _, e := range [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "a"}} {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("adding edge: %v", err)
		}
	}
	return g
}

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func writeGraphFile(t *testing.T, g *graph.Graph) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := graph.WriteGraphFile(g, path); err != nil {
		t.Fatalf("writing graph file: %v", err)
	}
	return path
}

func TestRunnerExecute(t *testing.T) {
	g := testGraph(t)
	runner := NewRunner(nil, nil, testLogger())
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		GraphPath: writeGraphFile(t, g),
		Algorithm: "spring",
		Seed:      42,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.NodeCount != 4 || result.Stats.EdgeCount != 4 {
		t.Errorf("stats = %d nodes / %d edges, want 4/4", result.Stats.NodeCount, result.Stats.EdgeCount)
	}
	if result.GraphHash == "" {
		t.Error("GraphHash should be set")
	}
	if result.Layout.Algorithm != "spring" {
		t.Errorf("Layout.Algorithm = %s, want spring", result.Layout.Algorithm)
	}
	if len(result.Layout.Positions) != 4 {
		t.Errorf("got %d positions, want 4", len(result.Layout.Positions))
	}
}

func TestRunnerExecuteMissingFile(t *testing.T) {
	runner := NewRunner(nil, nil, testLogger())
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{
		GraphPath: filepath.Join(t.TempDir(), "missing.json"),
	})
	if err == nil {
		t.Fatal("expected error for missing graph file")
	}
	if !os.IsNotExist(errorsUnwrapAll(err)) {
		t.Logf("error chain: %v", err)
	}
}

// errorsUnwrapAll walks to the innermost error.
func errorsUnwrapAll(err error) error {
	for {
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return err
		}
		inner := u.Unwrap()
		if inner == nil {
			return err
		}
		err = inner
	}
}

func TestRunnerLayoutCaching(t *testing.T) {
	ctx := context.Background()
	g := testGraph(t)

	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fileCache, nil, testLogger())
	defer runner.Close()

	opts := Options{Algorithm: "spring", Seed: 42}

	// First run computes and stores
	first, hit, err := runner.ComputeLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		t.Fatalf("first layout: %v", err)
	}
	if hit {
		t.Error("first run should be a cache miss")
	}

	// Second run hits the cache and returns the same positions
	second, hit, err := runner.ComputeLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		t.Fatalf("second layout: %v", err)
	}
	if !hit {
		t.Error("second run should be a cache hit")
	}
	for id := range first.Positions {
		for d := range first.Positions[id] {
			if first.Positions[id][d] != second.Positions[id][d] {
				t.Fatalf("cached position differs for %s", id)
			}
		}
	}

	// Refresh bypasses the cache
	_, hit, err = runner.ComputeLayoutWithCacheInfo(ctx, g, Options{Algorithm: "spring", Seed: 42, Refresh: true})
	if err != nil {
		t.Fatalf("refresh layout: %v", err)
	}
	if hit {
		t.Error("refresh run should bypass the cache")
	}

	// Different options use a different key
	_, hit, err = runner.ComputeLayoutWithCacheInfo(ctx, g, Options{Algorithm: "kamada_kawai"})
	if err != nil {
		t.Fatalf("other algorithm layout: %v", err)
	}
	if hit {
		t.Error("different algorithm should be a cache miss")
	}
}

func TestRunnerAllAlgorithms(t *testing.T) {
	ctx := context.Background()
	g := testGraph(t)
	runner := NewRunner(nil, nil, testLogger())
	defer runner.Close()

	for algorithm := range ValidAlgorithms {
		t.Run(algorithm, func(t *testing.T) {
			l, err := runner.ComputeLayout(ctx, g, Options{Algorithm: algorithm, Iterations: 20})
			if err != nil {
				t.Fatalf("layout: %v", err)
			}
			if len(l.Positions) != g.NodeCount() {
				t.Errorf("got %d positions, want %d", len(l.Positions), g.NodeCount())
			}
		})
	}
}

func TestComputeLayoutCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ComputeLayout(ctx, testGraph(t), Options{})
	if err != context.Canceled {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestComputeLayoutRandomInit(t *testing.T) {
	ctx := context.Background()
	g := testGraph(t)
	base := Options{Algorithm: AlgorithmKamadaKawai, Seed: 3, Logger: testLogger()}

	randomized := base
	randomized.RandomInit = true

	a, err := ComputeLayout(ctx, g, randomized)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	b, err := ComputeLayout(ctx, g, randomized)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	deterministic, err := ComputeLayout(ctx, g, base)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}

	// Same seed, same start, same result.
	for id := range a.Positions {
		for d := range a.Positions[id] {
			if a.Positions[id][d] != b.Positions[id][d] {
				t.Fatalf("node %s differs between identical runs", id)
			}
		}
	}

	// The random start must actually displace the run from the default
	// closed-form placement.
	same := true
	for id := range a.Positions {
		for d := range a.Positions[id] {
			if a.Positions[id][d] != deterministic.Positions[id][d] {
				same = false
			}
		}
	}
	if same {
		t.Fatal("random initialization produced the default placement")
	}
}
