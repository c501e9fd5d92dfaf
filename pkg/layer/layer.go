package layer

import (
	"fmt"

	"github.com/matzehuels/comparator/pkg/state"
)

// Layer is one candidate circuit: its output table plus cached metadata.
// Output, Distinct and Label are fixed at construction. Children is filled
// once by the edge builder.
type Layer struct {
	Output   state.Vector // Output[i] is what input i becomes
	Distinct int          // number of unique values in Output
	Label    string       // construction notation, diagnostic only
	Children []int        // indices of layers that may follow this one
}

// New creates a layer from an output table, computing its distinct count.
// The table is used as-is and must not be modified afterwards.
func New(output state.Vector, label string) Layer {
	return Layer{
		Output:   output,
		Distinct: output.Distinct(),
		Label:    label,
	}
}

// Single builds a layer from the single-mode family over n states:
// out[i] = max(Comparator(i, side, sideSub), Comparator(back, i, backSub)).
func Single(n int, side uint8, sideSub bool, back uint8, backSub bool) Layer {
	out := make(state.Vector, n)
	fillSingle(out, side, sideSub, back, backSub)
	return New(out, singleLabel(side, sideSub, back, backSub))
}

// Dual builds a layer from the dual-compare family over n states:
// out[i] = max(Comparator(compare, i, false), Comparator(subtract, i, true)).
func Dual(n int, compare, subtract uint8) Layer {
	out := make(state.Vector, n)
	fillDual(out, compare, subtract)
	return New(out, dualLabel(compare, subtract))
}

func fillSingle(dst state.Vector, side uint8, sideSub bool, back uint8, backSub bool) {
	for i := range dst {
		in := uint8(i)
		dst[i] = max(state.Comparator(in, side, sideSub), state.Comparator(back, in, backSub))
	}
}

func fillDual(dst state.Vector, compare, subtract uint8) {
	for i := range dst {
		in := uint8(i)
		dst[i] = max(state.Comparator(compare, in, false), state.Comparator(subtract, in, true))
	}
}

func singleLabel(side uint8, sideSub bool, back uint8, backSub bool) string {
	return fmt.Sprintf("%s%d,%s%d;", star(sideSub), side, star(backSub), back)
}

func dualLabel(compare, subtract uint8) string {
	return fmt.Sprintf("%d|*%d;", compare, subtract)
}

func star(subtract bool) string {
	if subtract {
		return "*"
	}
	return ""
}

// Apply feeds input through the layer's output table.
func (l *Layer) Apply(input state.Vector) state.Vector {
	return state.Apply(l.Output, input)
}

// ValidParent reports whether any layer may follow this one.
func (l *Layer) ValidParent() bool { return len(l.Children) > 0 }

// String returns the label and output, e.g. "*1,0; [0 0]".
func (l *Layer) String() string {
	return l.Label + " " + l.Output.String()
}

// Collection is the ordered set of surviving layers. Indices are stable for
// the lifetime of a run and are the only way layers refer to each other.
type Collection []Layer

// EdgeCount returns the total number of parent-child edges.
func (c Collection) EdgeCount() int {
	n := 0
	for i := range c {
		n += len(c[i].Children)
	}
	return n
}

// ValidParents returns the number of layers with at least one child.
func (c Collection) ValidParents() int {
	n := 0
	for i := range c {
		if c[i].ValidParent() {
			n++
		}
	}
	return n
}

// Index returns the position of the layer whose output equals v, or -1.
func (c Collection) Index(v state.Vector) int {
	for i := range c {
		if c[i].Output.Equal(v) {
			return i
		}
	}
	return -1
}

// States returns the state-space size of the collection, or 0 if empty.
func (c Collection) States() int {
	if len(c) == 0 {
		return 0
	}
	return len(c[0].Output)
}
