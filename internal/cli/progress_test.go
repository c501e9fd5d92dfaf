package cli

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/matzehuels/comparator/pkg/compose"
	"github.com/matzehuels/comparator/pkg/layer"
)

func TestProgressBar(t *testing.T) {
	var buf bytes.Buffer
	p := newProgressBar(&buf)

	p.Start(layer.StageGenerate, 1000)
	for range 1000 {
		p.Advance(1)
	}
	p.Finish("All Layers Generated", 412)

	out := buf.String()
	if !strings.Contains(out, "Generating layers") {
		t.Errorf("missing stage title:\n%q", out)
	}
	if !strings.Contains(out, "All Layers Generated (412)") {
		t.Errorf("missing summary:\n%q", out)
	}
	if !strings.Contains(out, "100%") {
		t.Errorf("bar never reached 100%%:\n%q", out)
	}
	// One draw per whole percent at most.
	if p.draws > 101 {
		t.Errorf("draws = %d, want at most 101", p.draws)
	}
}

func TestProgressBarConcurrentAdvance(t *testing.T) {
	var buf bytes.Buffer
	p := newProgressBar(&buf)
	p.Start(compose.StageBuild, 800)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				p.Advance(1)
			}
		}()
	}
	wg.Wait()

	if p.done != 800 {
		t.Errorf("done = %d, want 800", p.done)
	}
	if p.fraction() != 1 {
		t.Errorf("fraction = %v, want 1", p.fraction())
	}
}

func TestProgressBarEmptyStage(t *testing.T) {
	var buf bytes.Buffer
	p := newProgressBar(&buf)
	p.Start("custom", 0)
	p.Finish("done", 0)

	if !strings.Contains(buf.String(), "custom") {
		t.Errorf("unknown stage should use its name as title:\n%q", buf.String())
	}
}
