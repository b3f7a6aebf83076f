package pipeline

import (
	"context"
	"time"

	"github.com/forcelay/forcelay/pkg/graph"
	"github.com/forcelay/forcelay/pkg/layout"
	"github.com/forcelay/forcelay/pkg/observability"
)

// =============================================================================
// Layout Generation
// =============================================================================

// ComputeLayout computes node positions for the graph with the configured
// algorithm and wraps them in the serializable layout format. This is the
// unified entry point used by the Runner, and can be called directly to
// bypass caching.
func ComputeLayout(ctx context.Context, g *graph.Graph, opts Options) (graph.Layout, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return graph.Layout{}, err
	}
	if opts.RandomInit {
		opts.initialPos = layout.Random(g, opts.Dim, opts.Seed)
	}
	layouter, err := opts.Layouter()
	if err != nil {
		return graph.Layout{}, err
	}
	if err := ctx.Err(); err != nil {
		return graph.Layout{}, err
	}

	observability.Pipeline().OnLayoutStart(ctx, opts.Algorithm, g.NodeCount())
	start := time.Now()

	positions, err := layouter.Layout(g)

	observability.Pipeline().OnLayoutComplete(ctx, opts.Algorithm, time.Since(start), err)
	if err != nil {
		return graph.Layout{}, err
	}

	return graph.Layout{
		Algorithm:  opts.Algorithm,
		Dim:        opts.Dim,
		Seed:       opts.Seed,
		Iterations: opts.Iterations,
		Positions:  positions,
	}, nil
}
