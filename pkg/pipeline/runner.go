package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/comparator/pkg/compose"
	"github.com/matzehuels/comparator/pkg/config"
	"github.com/matzehuels/comparator/pkg/layer"
	"github.com/matzehuels/comparator/pkg/observability"
	"github.com/matzehuels/comparator/pkg/search"
)

// ProgressFunc returns the progress reporter for a stage.
type ProgressFunc func(stage string) observability.Progress

// Runner executes pipeline stages. It holds no per-run state, so one Runner
// can serve several runs with different configurations.
type Runner struct {
	Logger   *log.Logger
	Progress ProgressFunc
}

// NewRunner creates a runner. A nil logger discards output and a nil
// progress func disables progress reporting.
func NewRunner(logger *log.Logger, progress ProgressFunc) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{Logger: logger, Progress: progress}
}

func (r *Runner) progress(enabled bool, stage string) observability.Progress {
	if !enabled || r.Progress == nil {
		return observability.NoopProgress{}
	}
	return observability.OrNoop(r.Progress(stage))
}

// Execute runs the stages up to opts.Stop.
func (r *Runner) Execute(ctx context.Context, cfg *config.Config, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{RunID: uuid.NewString()}
	logger := r.Logger.With("run", result.RunID)

	if cfg.Progress.Initial {
		logger.Info("target",
			"states", cfg.States,
			"target", cfg.Target.String(),
			"required", cfg.RequiredDistinct(),
			"goal", cfg.Goal)
	}

	// Stage 1: Generate
	start := time.Now()
	layers, err := r.generate(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	result.Layers = layers
	result.Stats.Candidates = layer.Candidates(cfg)
	result.Stats.Layers = len(layers)
	result.Stats.GenerateTime = time.Since(start)
	if !opts.runs(StageBuild) {
		return result, nil
	}

	// Stage 2: Build
	start = time.Now()
	built, err := r.build(ctx, cfg, layers, logger)
	if err != nil {
		return nil, err
	}
	result.Stats.Pairs = built.Pairs
	result.Stats.ExactChecks = built.ExactChecks
	result.Stats.Edges = built.Edges
	result.Stats.ValidParents = built.ValidParents
	result.Stats.BuildTime = time.Since(start)
	if !opts.runs(StageSearch) {
		return result, nil
	}

	// Stage 3: Search
	res, err := r.search(ctx, cfg, layers, logger)
	if err != nil {
		return nil, err
	}
	result.Search = res
	result.Stats.SearchTime = res.Duration
	return result, nil
}

// Generate runs the generator and filter.
func (r *Runner) Generate(ctx context.Context, cfg *config.Config) (layer.Collection, error) {
	return r.generate(ctx, cfg, r.Logger)
}

// Build fills in Children for every layer.
func (r *Runner) Build(ctx context.Context, cfg *config.Config, layers layer.Collection) (compose.Stats, error) {
	return r.build(ctx, cfg, layers, r.Logger)
}

// Search runs the iterative-deepening search over a built collection.
func (r *Runner) Search(ctx context.Context, cfg *config.Config, layers layer.Collection) (search.Result, error) {
	return r.search(ctx, cfg, layers, r.Logger)
}

func (r *Runner) generate(ctx context.Context, cfg *config.Config, logger *log.Logger) (layer.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	candidates := layer.Candidates(cfg)
	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, candidates)

	start := time.Now()
	layers := layer.Generate(cfg, r.progress(cfg.Progress.Generate, StageGenerate))
	duration := time.Since(start)

	hooks.OnGenerateComplete(ctx, len(layers), duration)
	logger.Info("generated layers",
		"candidates", candidates,
		"layers", len(layers),
		"duration", duration)
	return layers, nil
}

func (r *Runner) build(ctx context.Context, cfg *config.Config, layers layer.Collection, logger *log.Logger) (compose.Stats, error) {
	pairs := int64(len(layers)) * int64(len(layers))
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, pairs)

	start := time.Now()
	stats, err := compose.Build(ctx, cfg, layers, compose.Options{
		Workers:  cfg.WorkerCount(),
		Progress: r.progress(cfg.Progress.Build, StageBuild),
	})
	duration := time.Since(start)

	hooks.OnBuildComplete(ctx, stats.Edges, stats.ValidParents, duration, err)
	if err != nil {
		return stats, err
	}
	logger.Info("built edges",
		"pairs", stats.Pairs,
		"edges", stats.Edges,
		"valid_parents", stats.ValidParents,
		"exact_checks", stats.ExactChecks,
		"duration", duration)
	return stats, nil
}

func (r *Runner) search(ctx context.Context, cfg *config.Config, layers layer.Collection, logger *log.Logger) (search.Result, error) {
	s, err := search.New(cfg, layers)
	if err != nil {
		return search.Result{}, err
	}

	res := s.Search(ctx)
	fields := []any{
		"status", res.Status,
		"depth", res.Depth,
		"expanded", res.Expanded,
		"cache_hits", res.CacheHits,
		"duration", res.Duration,
	}
	if res.Err != nil {
		fields = append(fields, "reason", res.Err)
	}
	logger.Info("search finished", fields...)
	return res, nil
}
