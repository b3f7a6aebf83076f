// Package pkg provides the core libraries for Forcelay graph layout.
//
// # Overview
//
// Forcelay computes node positions for graphs using iterative
// position-optimization algorithms. The pkg directory is organized into
// three main areas:
//
//  1. [graph] - Graph structure, serialization, and shortest paths
//  2. [layout] - Layout algorithms (spring, forceatlas2, arf, kamada_kawai)
//  3. [pipeline] - Orchestration (load → layout) with caching
//
// # Architecture
//
// The typical data flow through Forcelay:
//
//	graph.json
//	     ↓
//	[graph] package (parse + validate)
//	     ↓
//	[layout] package (iterative position optimization)
//	     ↓
//	layout.json / HTTP API response
//
// # Quick Start
//
// Load a graph and compute a spring layout:
//
//	import (
//	    "github.com/forcelay/forcelay/pkg/graph"
//	    "github.com/forcelay/forcelay/pkg/layout"
//	)
//
//	g, _ := graph.ReadGraphFile("graph.json")
//	spring := layout.Spring{Seed: 42}
//	positions, _ := spring.Layout(g)
//
// Or run the complete pipeline with caching:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    GraphPath: "graph.json",
//	    Algorithm: pipeline.AlgorithmForceAtlas2,
//	})
//
// # Main Packages
//
// ## Domain Logic
//
// [graph] - Weighted undirected graph with deterministic node ordering,
// JSON serialization for graphs and layouts, and all-pairs shortest paths.
//
// [layout] - Four layout algorithms behind a common Layouter interface:
// Fruchterman-Reingold spring embedding, ForceAtlas2 with adaptive speed,
// the attractive-and-repulsive-forces (ARF) simulation, and Kamada-Kawai
// stress minimization via L-BFGS. All algorithms are deterministic for a
// given graph and seed.
//
// ## Infrastructure
//
// [cache] - Byte cache with file, Redis, and null backends plus content
// hashing and cache-key derivation for layouts.
//
// [store] - Layout persistence with MongoDB and in-memory backends, used
// by the HTTP API.
//
// [pipeline] - Complete layout pipeline (load → layout) used by CLI and
// API. Ensures consistent behavior across all entry points.
//
// [observability] - Hook interfaces for pipeline, cache, and API events.
//
// [errors] - Structured errors with machine-readable codes and input
// validation helpers.
//
// [buildinfo] - Build-time version information injected via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/layout/...     # Specific package
//
// [graph]: https://pkg.go.dev/github.com/forcelay/forcelay/pkg/graph
// [layout]: https://pkg.go.dev/github.com/forcelay/forcelay/pkg/layout
// [cache]: https://pkg.go.dev/github.com/forcelay/forcelay/pkg/cache
// [store]: https://pkg.go.dev/github.com/forcelay/forcelay/pkg/store
// [pipeline]: https://pkg.go.dev/github.com/forcelay/forcelay/pkg/pipeline
// [observability]: https://pkg.go.dev/github.com/forcelay/forcelay/pkg/observability
// [errors]: https://pkg.go.dev/github.com/forcelay/forcelay/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/forcelay/forcelay/pkg/buildinfo
package pkg
