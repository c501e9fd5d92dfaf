package layer

import (
	"testing"

	"github.com/matzehuels/comparator/pkg/config"
	"github.com/matzehuels/comparator/pkg/state"
)

type recordingProgress struct {
	stage    string
	total    int64
	advanced int64
	summary  string
	count    int
	finished int
}

func (p *recordingProgress) Start(stage string, total int64) { p.stage, p.total = stage, total }
func (p *recordingProgress) Advance(n int64)                 { p.advanced += n }
func (p *recordingProgress) Finish(summary string, count int) {
	p.summary, p.count = summary, count
	p.finished++
}

func checkInvariants(t *testing.T, layers Collection, cfg *config.Config) {
	t.Helper()
	seen := map[string]int{}
	for i, l := range layers {
		if l.Output.IsIdentity() {
			t.Errorf("layer %d (%s) is the identity", i, l.Label)
		}
		if j, ok := seen[l.Output.Key()]; ok {
			t.Errorf("layers %d and %d share output %s", j, i, l.Output)
		}
		seen[l.Output.Key()] = i
		if l.Distinct < cfg.RequiredDistinct() {
			t.Errorf("layer %d has %d distinct values, need %d", i, l.Distinct, cfg.RequiredDistinct())
		}
		if l.Distinct != distinctBrute(l.Output) {
			t.Errorf("layer %d distinct count is stale", i)
		}
		if len(l.Children) != 0 {
			t.Errorf("layer %d has children before edge construction", i)
		}
	}
}

func TestGenerateInvariants(t *testing.T) {
	targets := [][]int{
		zeros(16),
		zeros(4),
		{0, 1, 0, 1},
		{0, 1, 2, 3, 4, 5, 6, 7},
	}

	for _, target := range targets {
		cfg := testConfig(t, target)
		layers := Generate(cfg, nil)
		if len(layers) == 0 {
			t.Errorf("target %v: no layers generated", target)
		}
		checkInvariants(t, layers, cfg)
	}
}

func TestGenerateTwoStatesSingleFamily(t *testing.T) {
	cfg := testConfig(t, zeros(2), "single")
	layers := Generate(cfg, nil)

	want := []struct{ label, output string }{
		{"0,1;", "[1 1]"},
		{"*1,0;", "[0 0]"},
		{"*1,*1;", "[1 0]"},
	}
	if len(layers) != len(want) {
		t.Fatalf("got %d layers, want %d: %v", len(layers), len(want), layers)
	}
	for i, w := range want {
		if layers[i].Label != w.label || layers[i].Output.String() != w.output {
			t.Errorf("layer %d = %s, want %s %s", i, layers[i].String(), w.label, w.output)
		}
	}
}

func TestGenerateTwoStatesMatchesBruteForce(t *testing.T) {
	for _, target := range [][]int{{0, 0}, {0, 1}, {1, 0}} {
		cfg := testConfig(t, target, "single")
		layers := Generate(cfg, nil)

		// Expected: every family member with enough distinct values, first occurrence
		// wins, identity excluded.
		var want []string
		seen := map[string]bool{state.Identity(2).Key(): true}
		for _, sideSub := range []bool{false, true} {
			for _, backSub := range []bool{false, true} {
				for side := 0; side < 2; side++ {
					for back := 0; back < 2; back++ {
						l := Single(2, uint8(side), sideSub, uint8(back), backSub)
						if seen[l.Output.Key()] || l.Distinct < cfg.RequiredDistinct() {
							continue
						}
						seen[l.Output.Key()] = true
						want = append(want, l.Output.String())
					}
				}
			}
		}

		if len(layers) != len(want) {
			t.Fatalf("target %v: got %d layers, want %d", target, len(layers), len(want))
		}
		for i := range want {
			if layers[i].Output.String() != want[i] {
				t.Errorf("target %v: layer %d = %s, want %s", target, i, layers[i].Output, want[i])
			}
		}
	}
}

func TestGenerateTwoStatesTwoGroups(t *testing.T) {
	cfg := testConfig(t, []int{0, 1})
	layers := Generate(cfg, nil)

	if len(layers) != 1 || layers[0].Output.String() != "[1 0]" {
		t.Errorf("want only the swap layer, got %v", layers)
	}
}

func TestGenerateDualAddsNothingForTwoStates(t *testing.T) {
	single := Generate(testConfig(t, zeros(2), "single"), nil)
	both := Generate(testConfig(t, zeros(2)), nil)
	if len(single) != len(both) {
		t.Errorf("dual family should only produce duplicates for n=2: %d vs %d", len(single), len(both))
	}
}

func TestGenerateContainsCollapsingLayer(t *testing.T) {
	layers := Generate(testConfig(t, zeros(4)), nil)
	if layers.Index(state.Vector{0, 0, 0, 0}) < 0 {
		t.Error("an all-zero layer should survive for n=4")
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	cfg := testConfig(t, zeros(16))
	a := Generate(cfg, nil)
	b := Generate(cfg, nil)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Label != b[i].Label || !a[i].Output.Equal(b[i].Output) {
			t.Fatalf("layer %d differs: %s vs %s", i, a[i].String(), b[i].String())
		}
	}
}

func TestGenerateProgress(t *testing.T) {
	cfg := testConfig(t, zeros(4))
	p := &recordingProgress{}
	layers := Generate(cfg, p)

	if p.stage != StageGenerate {
		t.Errorf("stage = %q", p.stage)
	}
	if p.total != 5*16 {
		t.Errorf("total = %d, want %d", p.total, 5*16)
	}
	if p.advanced != p.total {
		t.Errorf("advanced %d of %d units", p.advanced, p.total)
	}
	if p.finished != 1 || p.count != len(layers) {
		t.Errorf("Finish called %d times with count %d, want 1 and %d", p.finished, p.count, len(layers))
	}
}

func TestCandidates(t *testing.T) {
	if got := Candidates(testConfig(t, zeros(16), "single")); got != 1024 {
		t.Errorf("single family candidates = %d, want 1024", got)
	}
	if got := Candidates(testConfig(t, zeros(16), "dual")); got != 256 {
		t.Errorf("dual family candidates = %d, want 256", got)
	}
}
