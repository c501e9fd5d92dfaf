// Package search looks for the shortest chain of layers that drives every
// input to the configured goal.
//
// # Algorithm
//
// [Searcher.Search] runs iterative deepening: a depth-first pass that only
// accepts chains of exactly length 1, then 2, and so on up to the configured
// maximum. The first layer of a chain may be any layer in the collection;
// each following layer must be one of the previous layer's Children. The
// state starts as the identity and each layer is applied to it in turn.
//
// Each pass walks the graph with an explicit stack rather than recursion, and
// reuses one state buffer per level, so memory is proportional to the depth.
//
// # Memo
//
// A least-recently-used cache remembers sub-searches proven to fail. Its key
// is the current state, the number of layers still to apply, and the last
// layer applied. The last layer is part of the key because it decides which
// layers may come next. The remaining count is part of the key because a
// state that cannot reach the goal in two more steps may still reach it in
// three. Only failures are cached, and entries stay valid across passes.
//
// # Outcomes
//
// A [Result] always carries a [Status]:
//
//   - [StatusFound]: Path holds the chain, shortest first found.
//   - [StatusExhausted]: no chain exists up to the maximum depth. This is an
//     ordinary answer, not an error.
//   - [StatusLimited]: the expansion budget or the context stopped the search
//     early; Err says which.
//   - [StatusNotAttempted]: the zero value, for results that were never run.
package search
