package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/comparator/pkg/layer"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the output vector and distinct count to node labels.
	Detailed bool
	// Connected drops layers that have no incoming or outgoing edge.
	Connected bool
	// Path is a chain of layer indices to highlight.
	Path []int
}

// ToDOT converts a built collection to Graphviz DOT source. Nodes are named
// by their index in the collection.
func ToDOT(layers layer.Collection, opts Options) string {
	hasParent := make([]bool, len(layers))
	for i := range layers {
		for _, c := range layers[i].Children {
			hasParent[c] = true
		}
	}

	onPath := make(map[int]bool, len(opts.Path))
	pathEdge := make(map[[2]int]bool, len(opts.Path))
	for i, idx := range opts.Path {
		onPath[idx] = true
		if i > 0 {
			pathEdge[[2]int{opts.Path[i-1], idx}] = true
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=monospace, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for i := range layers {
		l := &layers[i]
		if opts.Connected && !l.ValidParent() && !hasParent[i] && !onPath[i] {
			continue
		}
		attrs := fmtAttrs(l, fmtLabel(l, opts.Detailed), onPath[i])
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeID(i), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for p := range layers {
		for _, c := range layers[p].Children {
			if pathEdge[[2]int{p, c}] {
				fmt.Fprintf(&buf, "  %s -> %s [color=crimson, penwidth=2];\n", nodeID(p), nodeID(c))
				continue
			}
			fmt.Fprintf(&buf, "  %s -> %s;\n", nodeID(p), nodeID(c))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(i int) string {
	return "L" + strconv.Itoa(i)
}

func fmtLabel(l *layer.Layer, detailed bool) string {
	if !detailed {
		return l.Label
	}
	return fmt.Sprintf("%s\n%v\ndistinct: %d", l.Label, l.Output, l.Distinct)
}

func fmtAttrs(l *layer.Layer, label string, highlight bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case highlight:
		attrs = append(attrs, "color=crimson", "penwidth=2")
	case !l.ValidParent():
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one whose
// viewBox starts at the origin and whose size matches it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
