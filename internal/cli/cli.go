// Package cli implements the comparator command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/comparator/pkg/buildinfo"
	"github.com/matzehuels/comparator/pkg/config"
	"github.com/matzehuels/comparator/pkg/errors"
	"github.com/matzehuels/comparator/pkg/observability"
	"github.com/matzehuels/comparator/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used in help text and examples.
const appName = "comparator"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Progress bars and spinners are drawn here.
	Status io.Writer

	configPath string
	quiet      bool
	states     int
	target     []int
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Status: os.Stderr,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Comparator searches for redstone comparator chains that map signal strengths to a target",
		Long: `Comparator enumerates single-tick comparator layers over a small state space,
links the layers that compose usefully, and searches for the shortest chain
that maps every input signal strength to a target output.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.quiet {
				c.SetLogLevel(log.WarnLevel)
			}
			hooks := &logHooks{logger: c.Logger}
			observability.SetPipelineHooks(hooks)
			observability.SetSearchHooks(hooks)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "TOML configuration file")
	flags.IntVarP(&c.states, "states", "n", 0, "number of states (default 16)")
	flags.IntSliceVarP(&c.target, "target", "t", nil, "target output per input, comma-separated (default all zeros)")
	flags.BoolVarP(&c.quiet, "quiet", "q", false, "hide progress output and info logs")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config and Runner Factories
// =============================================================================

// searchFlags holds per-command overrides of the [search] table and workers.
type searchFlags struct {
	goal          string
	workers       int
	maxDepth      int
	cacheCapacity int
	maxExpansions int64
	timeout       string
}

func (s *searchFlags) register(cmd *cobra.Command, search bool) {
	cmd.Flags().IntVarP(&s.workers, "workers", "w", 0, "edge builder goroutines (default GOMAXPROCS)")
	if !search {
		return
	}
	cmd.Flags().StringVarP(&s.goal, "goal", "g", "", "goal: exact (default), distinct")
	cmd.Flags().IntVarP(&s.maxDepth, "max-depth", "d", 0, "deepest chain to try (default 8)")
	cmd.Flags().IntVar(&s.cacheCapacity, "cache-capacity", 0, "failed sub-searches to remember (default 10000)")
	cmd.Flags().Int64Var(&s.maxExpansions, "max-expansions", 0, "stop after this many layer applications (0 = unlimited)")
	cmd.Flags().StringVar(&s.timeout, "timeout", "", "stop searching after this long, e.g. 30s")
}

// loadConfig reads --config and applies any flags the user set on top.
func (c *CLI) loadConfig(cmd *cobra.Command, s *searchFlags) (*config.Config, error) {
	f := config.DefaultFile()
	if c.configPath != "" {
		var err error
		if f, err = config.LoadFile(c.configPath); err != nil {
			return nil, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("states") {
		f.States = &c.states
	}
	if changed("target") {
		f.Target = c.target
	}
	if s != nil {
		if changed("workers") {
			f.Workers = s.workers
		}
		if changed("goal") {
			f.Goal = s.goal
		}
		if changed("max-depth") {
			f.Search.MaxDepth = s.maxDepth
		}
		if changed("cache-capacity") {
			f.Search.CacheCapacity = s.cacheCapacity
		}
		if changed("max-expansions") {
			f.Search.MaxExpansions = s.maxExpansions
		}
		if changed("timeout") {
			f.Search.Timeout = s.timeout
		}
	}

	cfg, err := config.New(f)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded config",
		"file", c.configPath,
		"states", cfg.States,
		"target", cfg.Target.String(),
		"goal", cfg.Goal,
		"workers", cfg.WorkerCount())
	return cfg, nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	if c.quiet {
		return pipeline.NewRunner(c.Logger, nil)
	}
	return pipeline.NewRunner(c.Logger, func(string) observability.Progress {
		return newProgressBar(c.Status)
	})
}

// validateFormat checks an export format name.
func validateFormat(format string) error {
	return errors.ValidateChoice(errors.ErrCodeInvalidFormat, "format", format,
		formatJSON, formatDOT, formatSVG)
}
