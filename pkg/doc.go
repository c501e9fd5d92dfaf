// Package pkg provides the libraries behind the comparator search tool.
//
// # Overview
//
// Comparator looks for chains of single-tick comparator layers that map
// every signal strength 0..N-1 to a target output. The pkg directory is
// organized leaf-first:
//
//  1. [state] - State vectors, table application and the comparator primitive
//  2. [layer] - Candidate generation from two families and the dedup filter
//  3. [compose] - The composability graph between layers
//  4. [search] - Memoized iterative-deepening search over that graph
//  5. [pipeline] - Orchestration (generate → build → search)
//
// Supporting packages:
//
//   - [config]: Immutable run configuration and TOML files
//   - [errors]: Error codes and validators
//   - [observability]: Progress reporting and stage hooks
//   - [io]: JSON export and import of built collections
//   - [render/nodelink]: Graphviz diagrams of the composability graph
//   - [buildinfo]: Version information set via ldflags
//
// # Architecture
//
//	config.Config
//	     ↓
//	[layer] Generate (single + dual families, dedup filter)
//	     ↓
//	[compose] Build (pairwise composition, pruning bound, errgroup workers)
//	     ↓
//	[search] Search (iterative deepening, LRU memo of failures)
//	     ↓
//	chain of layers, or exhausted / limited
//
// # Quick Start
//
//	cfg := config.Default() // 16 states, target all zeros
//	runner := pipeline.NewRunner(logger, nil)
//	result, err := runner.Execute(ctx, cfg, pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	for _, l := range result.Search.Layers(result.Layers) {
//	    fmt.Println(l.Label, l.Output)
//	}
//
// # Testing
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/search/...     # Specific package
//	go test -run Example ./...   # Examples only
//
// [state]: https://pkg.go.dev/github.com/matzehuels/comparator/pkg/state
// [layer]: https://pkg.go.dev/github.com/matzehuels/comparator/pkg/layer
// [compose]: https://pkg.go.dev/github.com/matzehuels/comparator/pkg/compose
// [search]: https://pkg.go.dev/github.com/matzehuels/comparator/pkg/search
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/comparator/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/matzehuels/comparator/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/comparator/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/comparator/pkg/observability
// [io]: https://pkg.go.dev/github.com/matzehuels/comparator/pkg/io
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/comparator/pkg/render/nodelink
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/comparator/pkg/buildinfo
package pkg
