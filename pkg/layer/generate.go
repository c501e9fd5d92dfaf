package layer

import (
	"github.com/matzehuels/comparator/pkg/config"
	"github.com/matzehuels/comparator/pkg/observability"
	"github.com/matzehuels/comparator/pkg/state"
)

// StageGenerate is the progress stage name used by Generate.
const StageGenerate = "generate"

// Candidates returns how many candidates Generate will evaluate for cfg.
func Candidates(cfg *config.Config) int64 {
	n := int64(cfg.States)
	var total int64
	if cfg.HasFamily(config.FamilySingle) {
		total += 4 * n * n
	}
	if cfg.HasFamily(config.FamilyDual) {
		total += n * n
	}
	return total
}

// Generate enumerates every enabled family and returns the layers that pass
// Accept, in enumeration order. Single-mode candidates are enumerated with
// the modes as the outer loops, then side, then back. Dual candidates follow,
// compare outer and subtract inner.
func Generate(cfg *config.Config, progress observability.Progress) Collection {
	progress = observability.OrNoop(progress)
	progress.Start(StageGenerate, Candidates(cfg))

	n := cfg.States
	required := cfg.RequiredDistinct()
	seen := NewLedger(n)
	buf := make(state.Vector, n)

	var layers Collection
	consider := func(label func() string) {
		progress.Advance(1)
		cand := Layer{Output: buf, Distinct: buf.Distinct()}
		if !Accept(&cand, seen, required) {
			return
		}
		cand.Output = buf.Clone()
		cand.Label = label()
		layers = append(layers, cand)
	}

	if cfg.HasFamily(config.FamilySingle) {
		for _, sideSub := range []bool{false, true} {
			for _, backSub := range []bool{false, true} {
				for side := 0; side < n; side++ {
					for back := 0; back < n; back++ {
						s, b := uint8(side), uint8(back)
						fillSingle(buf, s, sideSub, b, backSub)
						consider(func() string { return singleLabel(s, sideSub, b, backSub) })
					}
				}
			}
		}
	}

	if cfg.HasFamily(config.FamilyDual) {
		for compare := 0; compare < n; compare++ {
			for subtract := 0; subtract < n; subtract++ {
				c, s := uint8(compare), uint8(subtract)
				fillDual(buf, c, s)
				consider(func() string { return dualLabel(c, s) })
			}
		}
	}

	progress.Finish("All Layers Generated", len(layers))
	return layers
}
