// Package nodelink renders the composability graph as a node-link diagram.
//
// # Overview
//
// Each layer becomes a box labelled with its construction notation and each
// Children entry becomes an arrow from parent to child. Layers that may not
// be followed by anything are drawn dashed and grey. A found search path can
// be highlighted.
//
// # Usage
//
//	dot := nodelink.ToDOT(layers, nodelink.Options{Path: result.Path})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
//   - Detailed: labels include the output vector and distinct count
//   - Connected: omit layers with no incoming or outgoing edge
//   - Path: layer indices to highlight, in application order
//
// Full collections for 16 states hold hundreds of layers and tens of
// thousands of edges, which Graphviz lays out slowly. Connected and smaller
// state spaces keep diagrams readable.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
