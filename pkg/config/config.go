package config

import (
	"runtime"
	"slices"
	"time"

	"github.com/matzehuels/comparator/pkg/errors"
	"github.com/matzehuels/comparator/pkg/state"
)

// =============================================================================
// Defaults
// =============================================================================

const (
	// DefaultStates is the default state-space size (signal strengths 0-15).
	DefaultStates = 16

	// DefaultMaxDepth is the deepest chain the search tries before giving up.
	DefaultMaxDepth = 8

	// DefaultCacheCapacity is the number of infeasible states the search remembers.
	DefaultCacheCapacity = 10000
)

// Goal selects when a search state counts as solved.
type Goal string

const (
	// GoalExact requires the state to equal the target vector.
	GoalExact Goal = "exact"
	// GoalDistinct requires the state to have as many distinct values as the target.
	GoalDistinct Goal = "distinct"
)

// Family names a parameterized set of candidate layers.
type Family string

const (
	// FamilySingle is one comparator on each side of the signal, each with its own mode.
	FamilySingle Family = "single"
	// FamilyDual is a compare-mode and a subtract-mode comparator fed from the back.
	FamilyDual Family = "dual"
)

// Progress toggles progress output per stage.
type Progress struct {
	Initial  bool // announce the target before starting
	Generate bool // report layer generation
	Build    bool // report edge construction
}

// =============================================================================
// Config
// =============================================================================

// Config is the validated, read-only configuration for a run.
// Use New to construct one; the zero value is not usable.
type Config struct {
	States        int
	Target        state.Vector
	Goal          Goal
	Families      []Family
	MaxDepth      int
	CacheCapacity int
	MaxExpansions int64         // 0 means unlimited
	Timeout       time.Duration // 0 means no deadline
	Workers       int           // 0 means runtime.GOMAXPROCS(0)
	Progress      Progress

	required int
}

// Default returns the configuration used when no file or flags are given:
// 16 states collapsing to all zeros.
func Default() *Config {
	cfg, err := New(DefaultFile())
	if err != nil {
		panic("config: default configuration is invalid: " + err.Error())
	}
	return cfg
}

// New validates f and builds a Config from it. Missing values take defaults.
func New(f File) (*Config, error) {
	states := DefaultStates
	if f.States != nil {
		states = *f.States
	}
	if err := errors.ValidateStates(states); err != nil {
		return nil, err
	}

	target := f.Target
	if target == nil {
		target = make([]int, states)
	}
	if err := errors.ValidateTarget(target, states); err != nil {
		return nil, err
	}

	goal := f.Goal
	if goal == "" {
		goal = string(GoalExact)
	}
	if err := errors.ValidateChoice(errors.ErrCodeInvalidGoal, "goal", goal,
		string(GoalExact), string(GoalDistinct)); err != nil {
		return nil, err
	}

	families, err := parseFamilies(f.Families)
	if err != nil {
		return nil, err
	}

	maxDepth := f.Search.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxDepth
	}
	if err := errors.ValidateDepth(maxDepth); err != nil {
		return nil, err
	}

	capacity := f.Search.CacheCapacity
	if capacity == 0 {
		capacity = DefaultCacheCapacity
	}
	if capacity < 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "cache capacity must be positive, got %d", capacity)
	}
	if f.Search.MaxExpansions < 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "max expansions must not be negative")
	}

	var timeout time.Duration
	if f.Search.Timeout != "" {
		timeout, err = time.ParseDuration(f.Search.Timeout)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse search timeout")
		}
		if timeout < 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "search timeout must not be negative")
		}
	}

	if f.Workers < 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "workers must not be negative")
	}

	progress := Progress{Initial: true, Generate: true, Build: true}
	if f.Progress != nil {
		progress = Progress{
			Initial:  f.Progress.Initial,
			Generate: f.Progress.Generate,
			Build:    f.Progress.Build,
		}
	}

	t := state.FromInts(target)
	return &Config{
		States:        states,
		Target:        t,
		Goal:          Goal(goal),
		Families:      families,
		MaxDepth:      maxDepth,
		CacheCapacity: capacity,
		MaxExpansions: f.Search.MaxExpansions,
		Timeout:       timeout,
		Workers:       f.Workers,
		Progress:      progress,
		required:      t.Distinct(),
	}, nil
}

func parseFamilies(names []string) ([]Family, error) {
	if len(names) == 0 {
		return []Family{FamilySingle, FamilyDual}, nil
	}
	var out []Family
	for _, name := range names {
		if err := errors.ValidateChoice(errors.ErrCodeInvalidConfig, "family", name,
			string(FamilySingle), string(FamilyDual)); err != nil {
			return nil, err
		}
		f := Family(name)
		if slices.Contains(out, f) {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "family %q listed twice", name)
		}
		out = append(out, f)
	}
	return out, nil
}

// RequiredDistinct returns the number of distinct values the target uses,
// i.e. the number of non-empty groups it partitions [0, N) into.
func (c *Config) RequiredDistinct() int {
	if c.required == 0 {
		return c.Target.Distinct()
	}
	return c.required
}

// HasFamily reports whether f is enabled.
func (c *Config) HasFamily(f Family) bool {
	return slices.Contains(c.Families, f)
}

// WorkerCount returns the number of goroutines the edge builder should use.
func (c *Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Solved reports whether v satisfies the configured goal.
func (c *Config) Solved(v state.Vector) bool {
	if c.Goal == GoalDistinct {
		return v.Distinct() == c.RequiredDistinct()
	}
	return v.Equal(c.Target)
}

// File returns the file form of c, suitable for writing back as TOML.
func (c *Config) File() File {
	states := c.States
	families := make([]string, len(c.Families))
	for i, f := range c.Families {
		families[i] = string(f)
	}
	f := File{
		States:   &states,
		Target:   c.Target.Ints(),
		Goal:     string(c.Goal),
		Families: families,
		Workers:  c.Workers,
		Progress: &ProgressFile{
			Initial:  c.Progress.Initial,
			Generate: c.Progress.Generate,
			Build:    c.Progress.Build,
		},
	}
	f.Search.MaxDepth = c.MaxDepth
	f.Search.CacheCapacity = c.CacheCapacity
	f.Search.MaxExpansions = c.MaxExpansions
	if c.Timeout > 0 {
		f.Search.Timeout = c.Timeout.String()
	}
	return f
}
