package compose

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/comparator/pkg/config"
	"github.com/matzehuels/comparator/pkg/errors"
	"github.com/matzehuels/comparator/pkg/layer"
	"github.com/matzehuels/comparator/pkg/observability"
	"github.com/matzehuels/comparator/pkg/state"
)

// StageBuild is the progress stage name used by Build.
const StageBuild = "build"

// chunkSize is the number of parents evaluated concurrently before merging.
const chunkSize = 64

// Options configures edge construction.
type Options struct {
	// Workers is the number of goroutines evaluating pairs.
	// 1 selects the sequential path; 0 uses cfg.WorkerCount().
	Workers int

	// Progress receives one Advance per parent. Nil disables reporting.
	Progress observability.Progress
}

// Stats summarizes a Build.
type Stats struct {
	Pairs        int64 // pairs evaluated
	ExactChecks  int64 // pairs whose distinct count had to be computed; varies with Workers
	Edges        int   // edges recorded
	ValidParents int   // layers with at least one child
}

// Build populates Children on every layer in place. It must be called once
// per collection; layers must not already have children.
//
// The only errors are an invalid collection and context cancellation.
func Build(ctx context.Context, cfg *config.Config, layers layer.Collection, opts Options) (Stats, error) {
	if err := validate(cfg, layers); err != nil {
		return Stats{}, err
	}

	workers := opts.Workers
	if workers == 0 {
		workers = cfg.WorkerCount()
	}
	progress := observability.OrNoop(opts.Progress)
	total := int64(len(layers)) * int64(len(layers))
	progress.Start(StageBuild, total)

	b := &builder{
		layers:   layers,
		n:        cfg.States,
		required: cfg.RequiredDistinct(),
		base:     seed(cfg.States, layers),
		fresh:    make(map[string]struct{}),
		progress: progress,
	}

	var err error
	if workers == 1 || len(layers) < 2 {
		err = b.sequential(ctx)
	} else {
		err = b.parallel(ctx, workers)
	}
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		Pairs:        total,
		ExactChecks:  b.exact,
		Edges:        layers.EdgeCount(),
		ValidParents: layers.ValidParents(),
	}
	progress.Finish("All Pairs Generated", stats.Edges)
	return stats, nil
}

func validate(cfg *config.Config, layers layer.Collection) error {
	for i := range layers {
		l := &layers[i]
		if len(l.Output) != cfg.States || !l.Output.InRange(cfg.States) {
			return errors.New(errors.ErrCodeInvalidGraph, "layer %d output %s does not map %d states", i, l.Output, cfg.States)
		}
		if len(l.Children) != 0 {
			return errors.New(errors.ErrCodeInvalidGraph, "layer %d already has children", i)
		}
	}
	return nil
}

// seed returns the starting ledger: identity plus every layer output.
func seed(n int, layers layer.Collection) *layer.Ledger {
	l := layer.NewLedger(n)
	for i := range layers {
		l.Add(layers[i].Output)
	}
	return l
}

// Useful reports whether a composed output with the given parent and child
// distinct counts may become an edge. The exact count of composed is only
// computed when the worst-case bound does not already guarantee it.
// The second result reports whether the exact count was computed.
func Useful(parentDistinct, childDistinct, n, required int, composed state.Vector) (ok, exact bool) {
	worst := childDistinct - min(childDistinct, n-parentDistinct+1)
	if worst >= required {
		return true, false
	}
	return composed.Distinct() >= required, true
}

type builder struct {
	layers   layer.Collection
	n        int
	required int
	base     *layer.Ledger       // read-only once built
	fresh    map[string]struct{} // outputs claimed by edges, written by one goroutine
	progress observability.Progress
	exact    int64
}

// claim records out as produced by an edge and reports whether it was unclaimed.
func (b *builder) claim(out state.Vector) bool {
	if _, ok := b.fresh[string(out)]; ok {
		return false
	}
	b.fresh[string(out)] = struct{}{}
	return true
}

func (b *builder) sequential(ctx context.Context) error {
	buf := make(state.Vector, b.n)
	for p := range b.layers {
		if err := ctx.Err(); err != nil {
			return err
		}
		parent := &b.layers[p]
		for c := range b.layers {
			child := &b.layers[c]
			state.ApplyInto(buf, child.Output, parent.Output)
			if b.base.Seen(buf) {
				continue
			}
			if _, ok := b.fresh[string(buf)]; ok {
				continue
			}
			ok, exact := Useful(parent.Distinct, child.Distinct, b.n, b.required, buf)
			if exact {
				b.exact++
			}
			if !ok {
				continue
			}
			b.claim(buf)
			parent.Children = append(parent.Children, c)
		}
		b.progress.Advance(int64(len(b.layers)))
	}
	return nil
}

// candidates holds the pairs of one parent that survived evaluation against
// the starting ledger, with their composed outputs packed back to back.
type candidates struct {
	children []int
	outputs  []uint8
	exact    int64
}

func (b *builder) evaluate(p int) candidates {
	var cands candidates
	parent := &b.layers[p]
	buf := make(state.Vector, b.n)
	for c := range b.layers {
		child := &b.layers[c]
		state.ApplyInto(buf, child.Output, parent.Output)
		if b.base.Seen(buf) {
			continue
		}
		ok, exact := Useful(parent.Distinct, child.Distinct, b.n, b.required, buf)
		if exact {
			cands.exact++
		}
		if !ok {
			continue
		}
		cands.children = append(cands.children, c)
		cands.outputs = append(cands.outputs, buf...)
	}
	return cands
}

func (b *builder) parallel(ctx context.Context, workers int) error {
	results := make([]candidates, chunkSize)
	for start := 0; start < len(b.layers); start += chunkSize {
		end := min(start+chunkSize, len(b.layers))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for p := start; p < end; p++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[p-start] = b.evaluate(p)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		for p := start; p < end; p++ {
			cands := &results[p-start]
			b.exact += cands.exact
			parent := &b.layers[p]
			for i, c := range cands.children {
				out := state.Vector(cands.outputs[i*b.n : (i+1)*b.n])
				if b.claim(out) {
					parent.Children = append(parent.Children, c)
				}
			}
			*cands = candidates{}
			b.progress.Advance(int64(len(b.layers)))
		}
	}
	return nil
}
