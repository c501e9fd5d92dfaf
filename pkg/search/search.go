package search

import (
	"context"
	"errors"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/matzehuels/comparator/pkg/config"
	cerrors "github.com/matzehuels/comparator/pkg/errors"
	"github.com/matzehuels/comparator/pkg/layer"
	"github.com/matzehuels/comparator/pkg/observability"
	"github.com/matzehuels/comparator/pkg/state"
)

// ErrExpansionLimit is reported in Result.Err when MaxExpansions is reached.
var ErrExpansionLimit = errors.New("expansion limit reached")

// ctxCheckInterval is how many expansions pass between context checks.
const ctxCheckInterval = 4096

// =============================================================================
// Status and Result
// =============================================================================

// Status is the outcome of a search.
type Status int

const (
	StatusNotAttempted Status = iota
	StatusFound
	StatusExhausted
	StatusLimited
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusExhausted:
		return "exhausted"
	case StatusLimited:
		return "limited"
	default:
		return "not attempted"
	}
}

// Result describes a finished search.
type Result struct {
	Status    Status
	Path      []int        // layer indices in application order (StatusFound only)
	Output    state.Vector // state after applying Path
	Depth     int          // length of Path, or the deepest depth searched
	Expanded  int64        // layer applications performed
	CacheHits int64        // sub-searches skipped thanks to the memo
	Duration  time.Duration
	Err       error // why the search stopped early (StatusLimited only)
}

// Found reports whether a chain was found.
func (r Result) Found() bool { return r.Status == StatusFound }

// Layers resolves Path against the collection it was found in.
func (r Result) Layers(c layer.Collection) []layer.Layer {
	out := make([]layer.Layer, len(r.Path))
	for i, idx := range r.Path {
		out[i] = c[idx]
	}
	return out
}

// =============================================================================
// Searcher
// =============================================================================

type memoKey struct {
	state     string
	remaining int
	via       int
}

// Searcher runs searches over one built collection. The collection is only
// read. A Searcher is not safe for concurrent use.
type Searcher struct {
	cfg    *config.Config
	layers layer.Collection
	roots  []int
	memo   *lru.Cache[memoKey, bool]

	expanded int64
	hits     int64
}

// New creates a Searcher over layers, whose Children must already be built.
func New(cfg *config.Config, layers layer.Collection) (*Searcher, error) {
	for i := range layers {
		if len(layers[i].Output) != cfg.States {
			return nil, cerrors.New(cerrors.ErrCodeInvalidGraph, "layer %d maps %d states, want %d", i, len(layers[i].Output), cfg.States)
		}
		for _, c := range layers[i].Children {
			if c < 0 || c >= len(layers) {
				return nil, cerrors.New(cerrors.ErrCodeInvalidGraph, "layer %d has out-of-range child %d", i, c)
			}
		}
	}

	memo, err := lru.New[memoKey, bool](cfg.CacheCapacity)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInvalidConfig, err, "create search cache")
	}

	roots := make([]int, len(layers))
	for i := range roots {
		roots[i] = i
	}
	return &Searcher{cfg: cfg, layers: layers, roots: roots, memo: memo}, nil
}

// CacheLen returns the number of failures currently remembered.
func (s *Searcher) CacheLen() int { return s.memo.Len() }

// Reset forgets remembered failures and counters.
func (s *Searcher) Reset() {
	s.memo.Purge()
	s.expanded = 0
	s.hits = 0
}

// Search runs iterative deepening from depth 1 to cfg.MaxDepth, bounded by
// cfg.Timeout and cfg.MaxExpansions. If the identity already satisfies the
// goal the empty chain is returned with Depth 0.
func (s *Searcher) Search(ctx context.Context) Result {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	res := s.search(ctx)
	res.Duration = time.Since(start)
	observability.Search().OnSearchComplete(ctx, res.Status.String(), res.Depth, res.Expanded, res.Duration)
	return res
}

func (s *Searcher) search(ctx context.Context) Result {
	identity := state.Identity(s.cfg.States)
	if s.cfg.Solved(identity) {
		return s.result(Result{Status: StatusFound, Path: []int{}, Output: identity})
	}

	for depth := 1; depth <= s.cfg.MaxDepth; depth++ {
		res, open := s.pass(ctx, depth)
		observability.Search().OnDepthComplete(ctx, depth, s.expanded, res.Status == StatusFound)
		if res.Status != StatusExhausted {
			return res
		}
		if !open {
			// No chain of this length exists, so no longer one can either.
			return res
		}
	}
	return s.result(Result{Status: StatusExhausted, Depth: s.cfg.MaxDepth})
}

// SearchDepth runs a single depth-limited pass that only accepts chains of
// exactly depth layers.
func (s *Searcher) SearchDepth(ctx context.Context, depth int) Result {
	start := time.Now()
	res, _ := s.pass(ctx, depth)
	res.Duration = time.Since(start)
	return res
}

func (s *Searcher) result(r Result) Result {
	r.Expanded = s.expanded
	r.CacheHits = s.hits
	if r.Status == StatusFound {
		r.Depth = len(r.Path)
	}
	return r
}

type frame struct {
	via       int // layer applied to reach this frame, -1 at the root
	remaining int // layers still to apply
	next      int // position in the candidate list
}

func (s *Searcher) candidates(via int) []int {
	if via < 0 {
		return s.roots
	}
	return s.layers[via].Children
}

// pass performs one depth-first traversal. The second result reports whether
// the pass may have missed longer chains: it is false only when no chain of
// this length exists at all and nothing was skipped via the memo.
func (s *Searcher) pass(ctx context.Context, depth int) (Result, bool) {
	if depth <= 0 {
		return s.result(Result{Status: StatusExhausted, Depth: depth}), false
	}

	bufs := make([]state.Vector, depth+1)
	bufs[0] = state.Identity(s.cfg.States)
	for i := 1; i <= depth; i++ {
		bufs[i] = make(state.Vector, s.cfg.States)
	}

	stack := make([]frame, 1, depth+1)
	stack[0] = frame{via: -1, remaining: depth}
	path := make([]int, 0, depth)
	leaves, hitsBefore := 0, s.hits

	for len(stack) > 0 {
		level := len(stack) - 1
		top := &stack[level]
		cands := s.candidates(top.via)

		if top.next == len(cands) {
			if top.via >= 0 {
				s.memo.Add(memoKey{string(bufs[level]), top.remaining, top.via}, true)
			}
			stack = stack[:level]
			if level > 0 {
				path = path[:level-1]
			}
			continue
		}

		if s.expanded%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return s.result(Result{Status: StatusLimited, Depth: depth, Err: err}), true
			}
		}
		if s.cfg.MaxExpansions > 0 && s.expanded >= s.cfg.MaxExpansions {
			return s.result(Result{Status: StatusLimited, Depth: depth, Err: ErrExpansionLimit}), true
		}

		c := cands[top.next]
		top.next++
		s.expanded++

		next := bufs[level+1]
		state.ApplyInto(next, s.layers[c].Output, bufs[level])
		remaining := top.remaining - 1

		if remaining == 0 {
			leaves++
			if s.cfg.Solved(next) {
				found := append(path, c)
				return s.result(Result{
					Status: StatusFound,
					Path:   append([]int(nil), found...),
					Output: next.Clone(),
				}), true
			}
			continue
		}
		if len(s.layers[c].Children) == 0 {
			continue
		}
		if _, ok := s.memo.Get(memoKey{string(next), remaining, c}); ok {
			s.hits++
			continue
		}

		stack = append(stack, frame{via: c, remaining: remaining})
		path = append(path, c)
	}

	open := leaves > 0 || s.hits > hitsBefore
	return s.result(Result{Status: StatusExhausted, Depth: depth}), open
}
