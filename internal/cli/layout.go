package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/forcelay/forcelay/pkg/graph"
	"github.com/forcelay/forcelay/pkg/pipeline"
)

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		watch   bool
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute node positions for a graph",
		Long: `Compute node positions for a graph.

The layout command takes a graph.json file, runs the selected layout
algorithm, and writes a layout.json file holding one coordinate vector per
node. Layouts are deterministic for a given graph, algorithm, and seed.

Algorithms:
  spring        Fruchterman-Reingold force-directed layout (default)
  forceatlas2   ForceAtlas2 with adaptive speed and optional linlog mode
  arf           Attractive and repulsive forces simulation (2D only)
  kamada_kawai  Kamada-Kawai stress minimization over shortest paths

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.GraphPath = args[0]
			return c.runLayout(cmd.Context(), opts, output, noCache, watch)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&watch, "watch", false, "show live iteration progress")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", opts.Refresh, "recompute even if a cached layout exists")

	// Layout flags
	cmd.Flags().StringVarP(&opts.Algorithm, "algorithm", "a", opts.Algorithm, "layout algorithm: spring (default), forceatlas2, arf, kamada_kawai")
	cmd.Flags().IntVar(&opts.Dim, "dim", opts.Dim, "coordinate dimension")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", opts.Seed, "random seed for reproducible layouts")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", opts.Iterations, "iteration count (0 = algorithm default)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "extent of the rescaled layout")
	cmd.Flags().BoolVar(&opts.RandomInit, "random-init", opts.RandomInit, "start from seeded random positions instead of the deterministic placement")

	// Algorithm-specific flags
	cmd.Flags().Float64Var(&opts.Spacing, "spacing", opts.Spacing, "desired inter-node distance (spring)")
	cmd.Flags().Float64Var(&opts.Gravity, "gravity", opts.Gravity, "gravity strength (forceatlas2)")
	cmd.Flags().Float64Var(&opts.ScalingRatio, "scaling-ratio", opts.ScalingRatio, "repulsion scaling (forceatlas2)")
	cmd.Flags().Float64Var(&opts.JitterTolerance, "jitter-tolerance", opts.JitterTolerance, "swing tolerance (forceatlas2)")
	cmd.Flags().BoolVar(&opts.StrongGravity, "strong-gravity", opts.StrongGravity, "distance-proportional gravity (forceatlas2)")
	cmd.Flags().BoolVar(&opts.Linlog, "linlog", opts.Linlog, "logarithmic attraction (forceatlas2)")
	cmd.Flags().BoolVar(&opts.DissuadeHubs, "dissuade-hubs", opts.DissuadeHubs, "weaken attraction on high-degree nodes (forceatlas2)")
	cmd.Flags().Float64Var(&opts.SpringConstant, "spring-constant", opts.SpringConstant, "attraction between connected nodes, must be > 1 (arf)")

	return cmd
}

// runLayout runs the pipeline and writes the layout file.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache, watch bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	var result *pipeline.Result
	if watch {
		result, err = c.runLayoutWatch(ctx, runner, opts)
	} else {
		result, err = c.runLayoutSpinner(ctx, runner, opts)
	}
	if err != nil {
		return err
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(opts.GraphPath, filepath.Ext(opts.GraphPath))
		outputPath = base + ".layout.json"
	}

	if err := graph.WriteLayoutFile(result.Layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.LayoutHit)
	printNewline()
	printNextStep("Serve layouts over HTTP", "forcelay serve")

	return nil
}

// runLayoutSpinner runs the pipeline behind a spinner.
func (c *CLI) runLayoutSpinner(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (*pipeline.Result, error) {
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Algorithm))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return nil, fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()
	return result, nil
}
