package pipeline

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/comparator/pkg/config"
	cerrors "github.com/matzehuels/comparator/pkg/errors"
	"github.com/matzehuels/comparator/pkg/observability"
	"github.com/matzehuels/comparator/pkg/search"
)

func testConfig(t *testing.T, f config.File) *config.Config {
	t.Helper()
	cfg, err := config.New(f)
	if err != nil {
		t.Fatalf("config.New: %v", err)
	}
	return cfg
}

func fourZeros() config.File {
	n := 4
	return config.File{States: &n, Target: []int{0, 0, 0, 0}, Workers: 2}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		stop    string
		want    string
		wantErr bool
	}{
		{"", StageSearch, false},
		{StageGenerate, StageGenerate, false},
		{StageBuild, StageBuild, false},
		{StageSearch, StageSearch, false},
		{"render", "", true},
	}

	for _, tt := range tests {
		opts := Options{Stop: tt.stop}
		err := opts.ValidateAndSetDefaults()
		if (err != nil) != tt.wantErr {
			t.Errorf("Stop %q: error = %v, wantErr %v", tt.stop, err, tt.wantErr)
			continue
		}
		if err != nil {
			if cerrors.GetCode(err) != cerrors.ErrCodeInvalidConfig {
				t.Errorf("Stop %q: code = %v", tt.stop, cerrors.GetCode(err))
			}
			continue
		}
		if opts.Stop != tt.want {
			t.Errorf("Stop %q: got %q, want %q", tt.stop, opts.Stop, tt.want)
		}
	}
}

func TestExecute(t *testing.T) {
	var buf bytes.Buffer
	runner := NewRunner(log.New(&buf), nil)
	cfg := testConfig(t, fourZeros())

	result, err := runner.Execute(context.Background(), cfg, Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if _, err := uuid.Parse(result.RunID); err != nil {
		t.Errorf("RunID %q is not a uuid: %v", result.RunID, err)
	}
	if result.Stats.Layers != len(result.Layers) || result.Stats.Layers == 0 {
		t.Errorf("Stats.Layers = %d, len(Layers) = %d", result.Stats.Layers, len(result.Layers))
	}
	if result.Stats.Edges != result.Layers.EdgeCount() {
		t.Errorf("Stats.Edges = %d, EdgeCount = %d", result.Stats.Edges, result.Layers.EdgeCount())
	}
	if result.Stats.ValidParents != result.Layers.ValidParents() {
		t.Errorf("Stats.ValidParents = %d, want %d", result.Stats.ValidParents, result.Layers.ValidParents())
	}
	if want := int64(len(result.Layers)) * int64(len(result.Layers)); result.Stats.Pairs != want {
		t.Errorf("Stats.Pairs = %d, want %d", result.Stats.Pairs, want)
	}
	if !result.Search.Found() || result.Search.Depth != 1 {
		t.Errorf("Search = %v at %d, want found at 1", result.Search.Status, result.Search.Depth)
	}

	out := buf.String()
	for _, msg := range []string{"target", "generated layers", "built edges", "search finished", result.RunID} {
		if !strings.Contains(out, msg) {
			t.Errorf("log output missing %q:\n%s", msg, out)
		}
	}
}

func TestExecuteStops(t *testing.T) {
	cfg := testConfig(t, fourZeros())
	runner := NewRunner(nil, nil)

	gen, err := runner.Execute(context.Background(), cfg, Options{Stop: StageGenerate})
	if err != nil {
		t.Fatalf("Execute(generate): %v", err)
	}
	if gen.Layers.EdgeCount() != 0 || gen.Stats.Pairs != 0 {
		t.Errorf("generate stage built edges: %+v", gen.Stats)
	}
	if gen.Search.Status != search.StatusNotAttempted {
		t.Errorf("generate stage searched: %v", gen.Search.Status)
	}

	built, err := runner.Execute(context.Background(), cfg, Options{Stop: StageBuild})
	if err != nil {
		t.Fatalf("Execute(build): %v", err)
	}
	if built.Stats.Pairs == 0 {
		t.Error("build stage did not examine pairs")
	}
	if built.Search.Status != search.StatusNotAttempted {
		t.Errorf("build stage searched: %v", built.Search.Status)
	}
}

func TestExecuteCancelled(t *testing.T) {
	cfg := testConfig(t, fourZeros())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(nil, nil).Execute(ctx, cfg, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Execute = %v, want context.Canceled", err)
	}
}

func TestProgressToggles(t *testing.T) {
	f := fourZeros()
	f.Progress = &config.ProgressFile{Generate: false, Build: true}
	cfg := testConfig(t, f)

	var mu sync.Mutex
	var stages []string
	runner := NewRunner(nil, func(stage string) observability.Progress {
		mu.Lock()
		defer mu.Unlock()
		stages = append(stages, stage)
		return nil
	})

	if _, err := runner.Execute(context.Background(), cfg, Options{Stop: StageBuild}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(stages) != 1 || stages[0] != StageBuild {
		t.Errorf("progress requested for %v, want [build]", stages)
	}
}

func TestExecuteHooks(t *testing.T) {
	rec := &hookRecorder{}
	observability.SetPipelineHooks(rec)
	t.Cleanup(observability.Reset)

	cfg := testConfig(t, fourZeros())
	result, err := NewRunner(nil, nil).Execute(context.Background(), cfg, Options{Stop: StageBuild})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := []string{"generate-start", "generate-complete", "build-start", "build-complete"}
	if strings.Join(rec.events, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
	if rec.layers != len(result.Layers) || rec.edges != result.Stats.Edges {
		t.Errorf("hooks saw %d layers %d edges, want %d and %d",
			rec.layers, rec.edges, len(result.Layers), result.Stats.Edges)
	}
}

type hookRecorder struct {
	events []string
	layers int
	edges  int
}

func (h *hookRecorder) OnGenerateStart(context.Context, int64) {
	h.events = append(h.events, "generate-start")
}

func (h *hookRecorder) OnGenerateComplete(_ context.Context, layers int, _ time.Duration) {
	h.events = append(h.events, "generate-complete")
	h.layers = layers
}

func (h *hookRecorder) OnBuildStart(context.Context, int64) {
	h.events = append(h.events, "build-start")
}

func (h *hookRecorder) OnBuildComplete(_ context.Context, edges, _ int, _ time.Duration, _ error) {
	h.events = append(h.events, "build-complete")
	h.edges = edges
}
