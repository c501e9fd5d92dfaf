// Package layer enumerates single-layer comparator circuits and filters them
// down to a set of distinct, useful transforms.
//
// # Layers
//
// A [Layer] wraps the output table of one circuit together with its distinct
// value count (computed once), a notation label, and the indices of the layers
// that may follow it. Layers live in a [Collection]; the index of a layer in
// its collection is its identity for the rest of a run, and Children refer to
// other layers only by index.
//
// # Families
//
// Two parameter families are enumerated, in this order:
//
//   - Single ([Single]): a side comparator and a back comparator, each with
//     its own mode. Label "*3,12;" means side=3 in subtract mode and back=12
//     in compare mode.
//   - Dual ([Dual]): a compare-mode and a subtract-mode comparator both fed
//     from the back. Label "3|*12;" means compare=3 and subtract=12.
//
// # Filtering
//
// [Generate] passes every candidate through [Accept] against a [Ledger] of
// outputs seen so far. The ledger starts out holding the identity, so the
// identity mapping never survives. A candidate is rejected if its output was
// already seen, or if it has fewer distinct values than the target requires.
// The first candidate to produce an output is the one that is kept.
package layer
