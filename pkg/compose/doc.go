// Package compose builds the composability graph between surviving layers.
//
// For every ordered pair (parent, child), including a layer paired with
// itself, the builder computes the output of parent followed by child. The
// pair becomes an edge parent -> child when that output is
//
//   - not already in the ledger of seen outputs (identity, every layer's own
//     output, and every output claimed by an earlier edge), and
//   - distinct enough to still reach the target.
//
// The first pair in canonical order (parent index, then child index) to
// produce an output claims it, so the edge set depends on that order and is
// reproduced exactly by every worker count.
//
// # Pruning
//
// Counting distinct values is the expensive part of a pair. A child with d
// distinct values restricted to the image of a parent with p distinct values
// keeps at least d - (N - p + 1) of them, so when that bound already meets
// the requirement the exact count is skipped. The bound never changes which
// pairs are accepted.
//
// # Concurrency
//
// With more than one worker, parents are processed in chunks. Within a chunk
// each parent's pairs are evaluated concurrently against the read-only
// starting ledger; the surviving candidates are then merged in canonical order
// on the calling goroutine, which alone writes the ledger and Children.
package compose
