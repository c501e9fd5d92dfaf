// Package state provides the fixed-size value domain that every layer maps
// over, and the primitives used to build and chain layers.
//
// # Overview
//
// A [Vector] of length N records a complete input-to-output mapping: the value
// at position i is what input i becomes. The values themselves are signal
// strengths in [0, N). Vectors are compared element-wise and are treated as
// immutable once built.
//
// Layers are derived from [Comparator], a model of a redstone comparator with
// a back input, a side input and a subtract mode:
//
//	Comparator(back, side, false) // back, or 0 when side > back
//	Comparator(back, side, true)  // back-side, or 0 when side > back
//
// # Chaining
//
// [Apply] feeds a vector through a lookup table, which is how two layers are
// composed: Apply(child, parentOutput) is the output of parent followed by
// child. [ApplyInto] does the same into a caller-owned buffer so hot loops can
// avoid allocating.
//
// # Keys
//
// [Vector.Key] returns a string view usable as a map key. Lookups written as
// m[string(v)] do not allocate, which the graph builder relies on.
package state
