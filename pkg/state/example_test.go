package state_test

import (
	"fmt"

	"github.com/matzehuels/comparator/pkg/state"
)

func ExampleComparator() {
	fmt.Println(state.Comparator(7, 3, false))
	fmt.Println(state.Comparator(7, 3, true))
	fmt.Println(state.Comparator(3, 7, false))
	// Output:
	// 7
	// 4
	// 0
}

func ExampleApply() {
	parent := state.Vector{1, 1, 2, 3}
	child := state.Vector{3, 2, 2, 1}

	composed := state.Apply(child, parent)
	fmt.Println(composed, composed.Distinct())
	// Output: [2 2 2 1] 2
}
