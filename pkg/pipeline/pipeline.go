// Package pipeline provides the core layout pipeline for Forcelay.
//
// This package implements the complete load → layout pipeline that can be
// used by CLI, API, and worker components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Load: Read and validate a graph from its JSON serialization
//  2. Layout: Compute node positions with the selected algorithm
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    GraphPath: "graph.json",
//	    Algorithm: "spring",
//	    Seed:      42,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	positions := result.Layout.Positions
//
// Run individual stages:
//
//	// Load only
//	g, err := runner.Load(ctx, opts)
//
//	// Layout with existing graph
//	layout, err := runner.ComputeLayout(ctx, g, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/forcelay/forcelay/pkg/cache"
	"github.com/forcelay/forcelay/pkg/errors"
	"github.com/forcelay/forcelay/pkg/graph"
	"github.com/forcelay/forcelay/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

const (
	// DefaultAlgorithm is the layout algorithm used when none is requested.
	DefaultAlgorithm = AlgorithmSpring

	// DefaultDim is the default coordinate dimension.
	DefaultDim = 2

	// DefaultScale is the default output extent.
	DefaultScale = 1.0

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)
)

// Algorithm identifiers. These match the Name() of the corresponding
// layout.Layouter and appear in serialized layouts and cache keys.
const (
	AlgorithmSpring      = "spring"
	AlgorithmForceAtlas2 = "forceatlas2"
	AlgorithmARF         = "arf"
	AlgorithmKamadaKawai = "kamada_kawai"
)

// ValidAlgorithms is the set of supported layout algorithms.
var ValidAlgorithms = map[string]bool{
	AlgorithmSpring:      true,
	AlgorithmForceAtlas2: true,
	AlgorithmARF:         true,
	AlgorithmKamadaKawai: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input options
	GraphPath string `json:"graph_path,omitempty"`
	Refresh   bool   `json:"refresh,omitempty"`

	// Layout options
	Algorithm  string  `json:"algorithm,omitempty"`
	Dim        int     `json:"dim,omitempty"`
	Seed       uint64  `json:"seed,omitempty"`
	Iterations int     `json:"iterations,omitempty"`
	Scale      float64 `json:"scale,omitempty"`

	// Spring options
	Spacing float64 `json:"spacing,omitempty"` // desired inter-node distance (spring k)

	// ForceAtlas2 options
	Gravity         float64 `json:"gravity,omitempty"`
	ScalingRatio    float64 `json:"scaling_ratio,omitempty"`
	JitterTolerance float64 `json:"jitter_tolerance,omitempty"`
	StrongGravity   bool    `json:"strong_gravity,omitempty"`
	Linlog          bool    `json:"linlog,omitempty"`
	DissuadeHubs    bool    `json:"dissuade_hubs,omitempty"`

	// ARF options
	SpringConstant float64 `json:"spring_constant,omitempty"` // attraction between connected nodes

	// RandomInit seeds every node uniformly in the unit box instead of
	// the algorithm's deterministic starting placement. Same seed, same
	// start.
	RandomInit bool `json:"random_init,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger                        `json:"-"`
	Progress func(iteration int, delta float64) `json:"-"`

	// initialPos carries the placement computed for RandomInit from the
	// pipeline into the layouter.
	initialPos layout.PositionMap

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the loaded input graph.
	Graph *graph.Graph

	// GraphHash is the content hash of the graph.
	GraphHash string

	// Layout contains the computed layout data.
	Layout graph.Layout

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LoadTime   time.Duration
	LayoutTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether layout result came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateAlgorithm checks that an algorithm identifier is valid.
func ValidateAlgorithm(algorithm string) error {
	if !ValidAlgorithms[algorithm] {
		return errors.New(errors.ErrCodeUnknownAlgorithm,
			"unknown algorithm: %q (must be one of: spring, forceatlas2, arf, kamada_kawai)", algorithm)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Algorithm == "" {
		o.Algorithm = DefaultAlgorithm
	}
	if err := ValidateAlgorithm(o.Algorithm); err != nil {
		return err
	}

	if o.Dim == 0 {
		o.Dim = DefaultDim
	}
	if err := errors.ValidateDimension(o.Dim); err != nil {
		return err
	}
	if o.Algorithm == AlgorithmARF && o.Dim != 2 {
		return errors.New(errors.ErrCodeInvalidDimension, "arf only supports dimension 2, got %d", o.Dim)
	}

	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if err := errors.ValidatePositive("scale", o.Scale); err != nil {
		return err
	}

	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Iterations < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "iterations cannot be negative, got %d", o.Iterations)
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Algorithm:  o.Algorithm,
		Dim:        o.Dim,
		Seed:       o.Seed,
		Iterations: o.Iterations,
		Scale:      o.Scale,
		RandomInit: o.RandomInit,
	}
}

// Layouter builds the configured layout algorithm.
func (o *Options) Layouter() (layout.Layouter, error) {
	if err := o.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	switch o.Algorithm {
	case AlgorithmSpring:
		return layout.Spring{
			K:          o.Spacing,
			Iterations: o.Iterations,
			Scale:      o.Scale,
			Dim:        o.Dim,
			Seed:       o.Seed,
			InitialPos: o.initialPos,
			Progress:   o.Progress,
		}, nil
	case AlgorithmForceAtlas2:
		return layout.ForceAtlas2{
			MaxIter:         o.Iterations,
			JitterTolerance: o.JitterTolerance,
			ScalingRatio:    o.ScalingRatio,
			Gravity:         o.Gravity,
			StrongGravity:   o.StrongGravity,
			Linlog:          o.Linlog,
			DissuadeHubs:    o.DissuadeHubs,
			Dim:             o.Dim,
			Seed:            o.Seed,
			InitialPos:      o.initialPos,
			Progress:        o.Progress,
		}, nil
	case AlgorithmARF:
		return layout.ARF{
			A:          o.SpringConstant,
			MaxIter:    o.Iterations,
			Seed:       o.Seed,
			InitialPos: o.initialPos,
			Progress:   o.Progress,
		}, nil
	case AlgorithmKamadaKawai:
		return layout.KamadaKawai{
			Scale:      o.Scale,
			Dim:        o.Dim,
			InitialPos: o.initialPos,
			Progress:   o.Progress,
		}, nil
	}
	return nil, errors.New(errors.ErrCodeUnknownAlgorithm, "unknown algorithm: %q", o.Algorithm)
}
