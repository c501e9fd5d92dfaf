// Package pipeline runs the generate → build → search stages with shared
// logging, progress and stage hooks.
//
// The CLI calls into this package rather than driving pkg/layer, pkg/compose
// and pkg/search itself, so every entry point reports the same stats and log
// lines.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger, nil)
//	result, err := runner.Execute(ctx, cfg, pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	if result.Search.Found() {
//	    fmt.Println(result.Search.Path)
//	}
//
// Stages can also be run one at a time, e.g. to search a collection read back
// from JSON:
//
//	layers, err := io.ReadJSON(f, cfg)
//	res, err := runner.Search(ctx, cfg, layers)
package pipeline

import (
	"time"

	"github.com/matzehuels/comparator/pkg/errors"
	"github.com/matzehuels/comparator/pkg/layer"
	"github.com/matzehuels/comparator/pkg/search"
)

// Stage names, in execution order.
const (
	StageGenerate = "generate"
	StageBuild    = "build"
	StageSearch   = "search"
)

// Options controls a pipeline run.
type Options struct {
	// Stop is the last stage to run. Empty means StageSearch.
	Stop string
}

// ValidateAndSetDefaults fills in defaults and rejects unknown stages.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Stop == "" {
		o.Stop = StageSearch
	}
	return errors.ValidateChoice(errors.ErrCodeInvalidConfig, "stage", o.Stop,
		StageGenerate, StageBuild, StageSearch)
}

func (o Options) runs(stage string) bool {
	switch o.Stop {
	case StageGenerate:
		return stage == StageGenerate
	case StageBuild:
		return stage != StageSearch
	default:
		return true
	}
}

// Stats holds counts and timings for a run.
type Stats struct {
	Candidates   int64 // candidate layers enumerated
	Layers       int   // layers kept by the filter
	Pairs        int64 // ordered pairs examined by the builder
	ExactChecks  int64 // pairs that needed a full distinct count
	Edges        int
	ValidParents int

	GenerateTime time.Duration
	BuildTime    time.Duration
	SearchTime   time.Duration
}

// Result is the output of Execute.
type Result struct {
	RunID  string // random id, carried into exports
	Layers layer.Collection
	Search search.Result // zero value (not attempted) unless the search stage ran
	Stats  Stats
}
