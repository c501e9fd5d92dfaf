package layer

import "github.com/matzehuels/comparator/pkg/state"

// Ledger is the set of every output produced so far. It always contains the
// identity for its state-space size.
type Ledger struct {
	seen map[string]struct{}
}

// NewLedger returns a ledger over n states seeded with the identity.
func NewLedger(n int) *Ledger {
	l := &Ledger{seen: make(map[string]struct{})}
	l.Add(state.Identity(n))
	return l
}

// Seen reports whether v has been recorded. It does not allocate.
func (l *Ledger) Seen(v state.Vector) bool {
	_, ok := l.seen[string(v)]
	return ok
}

// Add records v and reports whether it was new. The ledger keeps its own copy.
func (l *Ledger) Add(v state.Vector) bool {
	if l.Seen(v) {
		return false
	}
	l.seen[string(v)] = struct{}{}
	return true
}

// Len returns the number of recorded outputs, including the identity.
func (l *Ledger) Len() int { return len(l.seen) }

// Accept decides whether candidate joins the collection. It rejects outputs
// already in seen, then outputs with fewer than required distinct values.
// Accepted outputs are recorded in seen; rejected ones are not.
func Accept(candidate *Layer, seen *Ledger, required int) bool {
	if seen.Seen(candidate.Output) {
		return false
	}
	if candidate.Distinct < required {
		return false
	}
	seen.Add(candidate.Output)
	return true
}
