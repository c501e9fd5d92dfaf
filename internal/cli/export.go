package cli

import (
	"bytes"
	"context"
	"fmt"
	stdio "io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/comparator/pkg/config"
	"github.com/matzehuels/comparator/pkg/io"
	"github.com/matzehuels/comparator/pkg/layer"
	"github.com/matzehuels/comparator/pkg/pipeline"
	"github.com/matzehuels/comparator/pkg/render/nodelink"
)

// Export formats.
const (
	formatJSON = "json"
	formatDOT  = "dot"
	formatSVG  = "svg"
)

type exportOptions struct {
	format    string
	output    string
	graphPath string
	highlight bool
	nodelink.Options
}

// exportCommand creates the export command, which writes the linked
// collection as JSON, Graphviz DOT or SVG.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		opts  exportOptions
		flags searchFlags
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the linked collection as JSON, DOT or SVG",
		Long: `Export the linked layer collection.

Formats:
  json  the collection with config fingerprint, readable by 'search --graph'
  dot   Graphviz source of the composability graph
  svg   the graph rendered in-process with Graphviz

With --highlight the search runs first and the found chain is drawn in red.
Output goes to stdout unless --out is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			cfg, err := c.loadConfig(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runExport(cmd.Context(), cfg, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", formatJSON, "output format: json (default), dot, svg")
	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&opts.graphPath, "graph", "", "export a collection written by 'build --out' instead of building one")
	cmd.Flags().BoolVar(&opts.highlight, "highlight", false, "search first and highlight the found chain (dot, svg)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "include output vectors in node labels (dot, svg)")
	cmd.Flags().BoolVar(&opts.Connected, "connected", false, "omit layers without edges (dot, svg)")
	flags.register(cmd, true)

	return cmd
}

func (c *CLI) runExport(ctx context.Context, cfg *config.Config, opts exportOptions, stdout stdio.Writer) error {
	runner := c.newRunner()

	var (
		layers layer.Collection
		runID  string
	)
	if opts.graphPath != "" {
		g, err := io.ImportJSON(opts.graphPath, cfg)
		if err != nil {
			return fmt.Errorf("load graph %s: %w", opts.graphPath, err)
		}
		layers, runID = g.Layers, g.RunID
	} else {
		result, err := runner.Execute(ctx, cfg, pipeline.Options{Stop: pipeline.StageBuild})
		if err != nil {
			return err
		}
		layers, runID = result.Layers, result.RunID
	}

	if opts.highlight && opts.format != formatJSON {
		res, err := runner.Search(ctx, cfg, layers)
		if err != nil {
			return err
		}
		if res.Found() {
			opts.Path = res.Path
		} else {
			c.Logger.Warn("nothing to highlight", "status", res.Status, "depth", res.Depth)
		}
	}

	var buf bytes.Buffer
	switch opts.format {
	case formatJSON:
		if err := io.WriteJSON(&buf, cfg, runID, layers); err != nil {
			return err
		}
	case formatDOT:
		buf.WriteString(nodelink.ToDOT(layers, opts.Options))
	case formatSVG:
		svg, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(layers, opts.Options))
		if err != nil {
			return fmt.Errorf("render svg: %w", err)
		}
		buf.Write(svg)
	}

	if opts.output == "" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(opts.output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", opts.output, err)
	}
	printSuccess("Exported %d layers as %s", len(layers), opts.format)
	printFile(opts.output)
	return nil
}
