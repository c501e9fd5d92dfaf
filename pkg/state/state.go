package state

import (
	"fmt"
	"strings"
)

// MaxStates is the largest supported state-space size. Values are stored as
// bytes, so N may not exceed 256.
const MaxStates = 256

// Vector is an ordered mapping from input index to output value.
// Every element must be smaller than len(v).
type Vector []uint8

// Identity returns the vector [0, 1, ..., n-1].
func Identity(n int) Vector {
	v := make(Vector, n)
	for i := range v {
		v[i] = uint8(i)
	}
	return v
}

// FromInts converts a slice of ints to a Vector without validation.
func FromInts(values []int) Vector {
	v := make(Vector, len(values))
	for i, x := range values {
		v[i] = uint8(x)
	}
	return v
}

// Ints returns the vector as a slice of ints, the form used by config and JSON.
func (v Vector) Ints() []int {
	out := make([]int, len(v))
	for i, x := range v {
		out[i] = int(x)
	}
	return out
}

// Len returns the state-space size the vector covers.
func (v Vector) Len() int { return len(v) }

// Key returns the vector as a string for use as a map key.
func (v Vector) Key() string { return string(v) }

// Equal reports whether v and o are element-wise equal.
func (v Vector) Equal(o Vector) bool { return string(v) == string(o) }

// IsIdentity reports whether v maps every input to itself.
func (v Vector) IsIdentity() bool {
	for i, x := range v {
		if int(x) != i {
			return false
		}
	}
	return true
}

// Clone returns a copy of v that shares no memory with it.
func (v Vector) Clone() Vector {
	return append(Vector(nil), v...)
}

// Distinct returns the number of unique values in v.
func (v Vector) Distinct() int {
	var seen [MaxStates]bool
	n := 0
	for _, x := range v {
		if !seen[x] {
			seen[x] = true
			n++
		}
	}
	return n
}

// InRange reports whether every value is a valid index into a vector of length n.
func (v Vector) InRange(n int) bool {
	for _, x := range v {
		if int(x) >= n {
			return false
		}
	}
	return true
}

// String formats the vector as "[a b c]".
func (v Vector) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, x := range v {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d", x)
	}
	b.WriteByte(']')
	return b.String()
}

// Apply feeds input through table: out[i] = table[input[i]].
// It panics if an input value is not a valid index into table.
func Apply(table, input Vector) Vector {
	out := make(Vector, len(input))
	ApplyInto(out, table, input)
	return out
}

// ApplyInto is Apply writing into dst, which must have len(input).
func ApplyInto(dst, table, input Vector) {
	if len(dst) != len(input) {
		panic(fmt.Sprintf("state: destination length %d, input length %d", len(dst), len(input)))
	}
	for i, x := range input {
		dst[i] = table[x]
	}
}

// Comparator models a comparator fed with back on its rear input and side on
// its side input. It outputs 0 when side > back. Otherwise it outputs
// back-side in subtract mode and back in compare mode.
func Comparator(back, side uint8, subtract bool) uint8 {
	if side > back {
		return 0
	}
	if subtract {
		return back - side
	}
	return back
}
