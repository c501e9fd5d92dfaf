// Package observability provides hooks for progress reporting and stage events.
//
// This package lets the core stages emit events without knowing how they are
// displayed. The stages never format text; a collaborator registered by the
// CLI (or a test) decides what to do with each event.
//
// # Architecture
//
// Two kinds of collaborators exist:
//   - [Progress] is passed explicitly to a stage and receives "N units done"
//     and "stage finished" events while the stage runs.
//   - [PipelineHooks] and [SearchHooks] are registered globally at startup and
//     receive one event per stage boundary or search depth.
//
// Both come with no-op implementations, so stages can call them
// unconditionally.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&logHooks{logger})
//	    // ... run application
//	}
//
// Stages call hooks to emit events:
//
//	observability.Pipeline().OnGenerateStart(ctx, total)
//	// ... generate layers ...
//	observability.Pipeline().OnGenerateComplete(ctx, count, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Progress
// =============================================================================

// Progress receives work-unit events from a long-running stage.
// A stage calls Start once, Advance any number of times, then Finish once.
type Progress interface {
	// Start announces a stage and its estimated total units of work.
	Start(stage string, total int64)

	// Advance records n more units of work as done.
	Advance(n int64)

	// Finish reports the stage result: a summary label and a final count.
	Finish(summary string, count int)
}

// NoopProgress discards all progress events.
type NoopProgress struct{}

func (NoopProgress) Start(string, int64) {}
func (NoopProgress) Advance(int64)       {}
func (NoopProgress) Finish(string, int)  {}

// OrNoop returns p, or NoopProgress when p is nil.
func OrNoop(p Progress) Progress {
	if p == nil {
		return NoopProgress{}
	}
	return p
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events at stage boundaries.
type PipelineHooks interface {
	// Generation events
	OnGenerateStart(ctx context.Context, candidates int64)
	OnGenerateComplete(ctx context.Context, layers int, duration time.Duration)

	// Edge construction events
	OnBuildStart(ctx context.Context, pairs int64)
	OnBuildComplete(ctx context.Context, edges, validParents int, duration time.Duration, err error)
}

// =============================================================================
// Search Hooks
// =============================================================================

// SearchHooks receives events from the iterative-deepening search.
type SearchHooks interface {
	// OnDepthComplete records a finished depth-limited pass.
	OnDepthComplete(ctx context.Context, depth int, expanded int64, found bool)

	// OnSearchComplete records the final outcome.
	OnSearchComplete(ctx context.Context, status string, depth int, expanded int64, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnGenerateStart(context.Context, int64)                          {}
func (NoopPipelineHooks) OnGenerateComplete(context.Context, int, time.Duration)          {}
func (NoopPipelineHooks) OnBuildStart(context.Context, int64)                             {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, int, int, time.Duration, error) {}

// NoopSearchHooks is a no-op implementation of SearchHooks.
type NoopSearchHooks struct{}

func (NoopSearchHooks) OnDepthComplete(context.Context, int, int64, bool) {}
func (NoopSearchHooks) OnSearchComplete(context.Context, string, int, int64, time.Duration) {
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	searchHooks   SearchHooks   = NoopSearchHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any stage runs.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetSearchHooks registers custom search hooks.
func SetSearchHooks(h SearchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		searchHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Search returns the registered search hooks.
func Search() SearchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return searchHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	searchHooks = NoopSearchHooks{}
}
