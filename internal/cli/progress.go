package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/matzehuels/comparator/pkg/compose"
	"github.com/matzehuels/comparator/pkg/layer"
)

const progressWidth = 40

var stageTitles = map[string]string{
	layer.StageGenerate: "Generating layers",
	compose.StageBuild:  "Building edges",
}

// progressBar draws a single-line bar for one pipeline stage. It redraws only
// when the whole-percent value changes. Safe for concurrent Advance calls.
type progressBar struct {
	mu    sync.Mutex
	w     io.Writer
	bar   progress.Model
	title string
	start time.Time

	total   int64
	done    int64
	percent int // last drawn whole percent, -1 before the first draw
	draws   int
}

func newProgressBar(w io.Writer) *progressBar {
	return &progressBar{
		w:       w,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(progressWidth)),
		percent: -1,
	}
}

func (p *progressBar) Start(stage string, total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.title = stageTitles[stage]
	if p.title == "" {
		p.title = stage
	}
	p.start = time.Now()
	p.total = total
	p.done = 0
	p.percent = -1
	p.draw()
}

func (p *progressBar) Advance(n int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done += n
	p.draw()
}

func (p *progressBar) Finish(summary string, count int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.clear()
	elapsed := time.Since(p.start).Round(time.Millisecond)
	fmt.Fprintf(p.w, "%s %s %s\n",
		styleIconSuccess.Render(iconSuccess),
		fmt.Sprintf("%s (%d)", summary, count),
		StyleDim.Render(elapsed.String()))
}

func (p *progressBar) fraction() float64 {
	if p.total <= 0 {
		return 1
	}
	f := float64(p.done) / float64(p.total)
	return min(f, 1)
}

func (p *progressBar) draw() {
	f := p.fraction()
	percent := int(f * 100)
	if percent == p.percent {
		return
	}
	p.percent = percent
	p.draws++
	fmt.Fprintf(p.w, "\r%s %s", StyleDim.Render(fmt.Sprintf("%-18s", p.title)), p.bar.ViewAs(f))
}

func (p *progressBar) clear() {
	if p.draws == 0 {
		return
	}
	fmt.Fprintf(p.w, "\r%s\r", strings.Repeat(" ", progressWidth+32))
}
