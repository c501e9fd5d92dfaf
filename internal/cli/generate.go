package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/comparator/pkg/config"
	"github.com/matzehuels/comparator/pkg/io"
	"github.com/matzehuels/comparator/pkg/pipeline"
)

// generateCommand creates the generate command, which enumerates and filters
// candidate layers without linking them.
func (c *CLI) generateCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Enumerate candidate layers and keep the distinct useful ones",
		Long: `Enumerate every single-mode and dual-compare comparator layer, drop the
identity, duplicates and layers that merge more inputs than the target allows,
and report what is left.

Use --out to save the collection as JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			return c.runStage(cmd.Context(), cfg, pipeline.StageGenerate, output)
		},
	}

	cmd.Flags().StringVarP(&output, "out", "o", "", "write the collection as JSON to this file")

	return cmd
}

// buildCommand creates the build command, which generates layers and links
// every pair that composes usefully.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		output string
		flags  searchFlags
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate layers and link the pairs that compose usefully",
		Long: `Generate the layer collection, then examine every ordered pair of layers and
record an edge wherever applying one after the other produces a new state that
still has enough distinct values.

Use --out to save the linked collection as JSON for a later 'search --graph'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runStage(cmd.Context(), cfg, pipeline.StageBuild, output)
		},
	}

	cmd.Flags().StringVarP(&output, "out", "o", "", "write the collection as JSON to this file")
	flags.register(cmd, false)

	return cmd
}

// runStage runs the pipeline up to stop, prints stats and optionally writes
// the collection.
func (c *CLI) runStage(ctx context.Context, cfg *config.Config, stop, output string) error {
	result, err := c.newRunner().Execute(ctx, cfg, pipeline.Options{Stop: stop})
	if err != nil {
		return err
	}

	stats := result.Stats
	switch stop {
	case pipeline.StageGenerate:
		printSuccess("Generated %d layers from %d candidates", stats.Layers, stats.Candidates)
		printStats(stats.Layers, 0, 0, stats.GenerateTime)
	default:
		printSuccess("Linked %d layers with %d edges", stats.Layers, stats.Edges)
		printStats(stats.Layers, stats.Edges, stats.ValidParents, stats.GenerateTime+stats.BuildTime)
	}

	if output == "" {
		if stop == pipeline.StageBuild {
			printNewline()
			printNextStep("Search", appName+" search")
		}
		return nil
	}
	if err := io.ExportJSON(output, cfg, result.RunID, result.Layers); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	printFile(output)
	if stop == pipeline.StageBuild {
		printNewline()
		printNextStep("Search", appName+" search --graph "+output)
	}
	return nil
}
