package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/comparator/pkg/config"
	"github.com/matzehuels/comparator/pkg/io"
	"github.com/matzehuels/comparator/pkg/layer"
	"github.com/matzehuels/comparator/pkg/observability"
	"github.com/matzehuels/comparator/pkg/pipeline"
	"github.com/matzehuels/comparator/pkg/search"
)

// searchCommand creates the search command, which runs the full pipeline or
// searches a previously exported collection.
func (c *CLI) searchCommand() *cobra.Command {
	var (
		graphPath string
		flags     searchFlags
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find the shortest chain of layers that reaches the target",
		Long: `Find the shortest chain of layers that maps every input to the target.

The search tries chains of length 1, then 2, and so on up to --max-depth. The
first layer may be any layer; each later layer must be linked from the one
before it. With --goal distinct, any chain whose output has as many distinct
values as the target counts as a solution.

By default the collection is generated and linked first. Use --graph to
search a collection written by 'build --out' instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runSearch(cmd.Context(), cfg, graphPath)
		},
	}

	cmd.Flags().StringVar(&graphPath, "graph", "", "search a collection exported with 'build --out'")
	flags.register(cmd, true)

	return cmd
}

func (c *CLI) runSearch(ctx context.Context, cfg *config.Config, graphPath string) error {
	runner := c.newRunner()

	var layers layer.Collection
	if graphPath != "" {
		g, err := io.ImportJSON(graphPath, cfg)
		if err != nil {
			return fmt.Errorf("load graph %s: %w", graphPath, err)
		}
		layers = g.Layers
		c.Logger.Info("loaded collection",
			"path", graphPath,
			"run", g.RunID,
			"layers", len(layers),
			"edges", layers.EdgeCount())
	} else {
		result, err := runner.Execute(ctx, cfg, pipeline.Options{Stop: pipeline.StageBuild})
		if err != nil {
			return err
		}
		layers = result.Layers
	}

	res, err := c.searchWithSpinner(ctx, runner, cfg, layers)
	if err != nil {
		return err
	}
	return printSearchResult(cfg, layers, res)
}

// searchWithSpinner runs the search while a spinner shows the current depth.
func (c *CLI) searchWithSpinner(ctx context.Context, runner *pipeline.Runner, cfg *config.Config, layers layer.Collection) (search.Result, error) {
	if c.quiet {
		return runner.Search(ctx, cfg, layers)
	}

	spinner := newSpinner(ctx, c.Status, "Searching depth 1...")
	base := observability.Search()
	observability.SetSearchHooks(&spinnerHooks{SearchHooks: base, spinner: spinner})
	defer observability.SetSearchHooks(base)

	spinner.Start()
	res, err := runner.Search(ctx, cfg, layers)
	spinner.Stop()
	return res, err
}

// spinnerHooks advances the spinner message as depths complete.
type spinnerHooks struct {
	observability.SearchHooks
	spinner *Spinner
}

func (h *spinnerHooks) OnDepthComplete(ctx context.Context, depth int, expanded int64, found bool) {
	h.SearchHooks.OnDepthComplete(ctx, depth, expanded, found)
	if !found {
		h.spinner.SetMessage(fmt.Sprintf("Searching depth %d (%d expanded)...", depth+1, expanded))
	}
}

func printSearchResult(cfg *config.Config, layers layer.Collection, res search.Result) error {
	switch res.Status {
	case search.StatusFound:
		printSuccess("Found a chain of %d layers", res.Depth)
		printChain(res.Layers(layers), cfg.States)
	case search.StatusExhausted:
		printWarning("No chain reaches %v within depth %d", cfg.Target, res.Depth)
	case search.StatusLimited:
		if errors.Is(res.Err, context.Canceled) {
			return res.Err
		}
		printWarning("Search stopped at depth %d: %v", res.Depth, res.Err)
	default:
		printError("Search was not run")
	}
	printDetail("%d expanded · %d cache hits · %s", res.Expanded, res.CacheHits, res.Duration.Round(time.Millisecond))
	return nil
}
