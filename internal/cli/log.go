package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// logHooks reports pipeline and search events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnGenerateStart(_ context.Context, candidates int64) {
	h.logger.Debug("generating layers", "candidates", candidates)
}

func (h *logHooks) OnGenerateComplete(_ context.Context, layers int, duration time.Duration) {
	h.logger.Debug("generation complete", "layers", layers, "duration", duration)
}

func (h *logHooks) OnBuildStart(_ context.Context, pairs int64) {
	h.logger.Debug("building edges", "pairs", pairs)
}

func (h *logHooks) OnBuildComplete(_ context.Context, edges, validParents int, duration time.Duration, err error) {
	if err != nil {
		h.logger.Debug("build failed", "error", err, "duration", duration)
		return
	}
	h.logger.Debug("build complete", "edges", edges, "valid_parents", validParents, "duration", duration)
}

func (h *logHooks) OnDepthComplete(_ context.Context, depth int, expanded int64, found bool) {
	h.logger.Debug("depth complete", "depth", depth, "expanded", expanded, "found", found)
}

func (h *logHooks) OnSearchComplete(_ context.Context, status string, depth int, expanded int64, duration time.Duration) {
	h.logger.Debug("search complete", "status", status, "depth", depth, "expanded", expanded, "duration", duration)
}
