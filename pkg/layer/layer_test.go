package layer

import (
	"testing"

	"github.com/matzehuels/comparator/pkg/config"
	"github.com/matzehuels/comparator/pkg/state"
)

func testConfig(t *testing.T, target []int, families ...string) *config.Config {
	t.Helper()
	n := len(target)
	cfg, err := config.New(config.File{States: &n, Target: target, Families: families})
	if err != nil {
		t.Fatalf("config.New: %v", err)
	}
	return cfg
}

func zeros(n int) []int { return make([]int, n) }

// distinctBrute counts unique values with a map, independent of state.Vector.Distinct.
func distinctBrute(v state.Vector) int {
	m := map[uint8]bool{}
	for _, x := range v {
		m[x] = true
	}
	return len(m)
}

func TestSingleDistinctMatchesOutput(t *testing.T) {
	for n := 1; n <= 6; n++ {
		for side := 0; side < n; side++ {
			for back := 0; back < n; back++ {
				for _, sideSub := range []bool{false, true} {
					for _, backSub := range []bool{false, true} {
						l := Single(n, uint8(side), sideSub, uint8(back), backSub)
						if l.Distinct != distinctBrute(l.Output) {
							t.Fatalf("%s: Distinct = %d, want %d", l.String(), l.Distinct, distinctBrute(l.Output))
						}
						if !l.Output.InRange(n) {
							t.Fatalf("%s: output out of range for n=%d", l.String(), n)
						}
					}
				}
			}
		}
	}
}

func TestDualDistinctMatchesOutput(t *testing.T) {
	for n := 1; n <= 6; n++ {
		for c := 0; c < n; c++ {
			for s := 0; s < n; s++ {
				l := Dual(n, uint8(c), uint8(s))
				if l.Distinct != distinctBrute(l.Output) {
					t.Fatalf("%s: Distinct = %d, want %d", l.String(), l.Distinct, distinctBrute(l.Output))
				}
			}
		}
	}
}

func TestSingle(t *testing.T) {
	tests := []struct {
		side    uint8
		sideSub bool
		back    uint8
		backSub bool
		want    string
		label   string
	}{
		{2, false, 0, false, "[0 0 2 3]", "2,0;"},
		{1, true, 0, false, "[0 0 1 2]", "*1,0;"},
		{3, true, 3, true, "[3 2 1 0]", "*3,*3;"},
		{3, true, 0, false, "[0 0 0 0]", "*3,0;"},
		{0, false, 2, false, "[2 2 2 3]", "0,2;"},
	}

	for _, tt := range tests {
		l := Single(4, tt.side, tt.sideSub, tt.back, tt.backSub)
		if l.Output.String() != tt.want {
			t.Errorf("Single(%s) = %s, want %s", tt.label, l.Output, tt.want)
		}
		if l.Label != tt.label {
			t.Errorf("Label = %q, want %q", l.Label, tt.label)
		}
	}
}

func TestDual(t *testing.T) {
	l := Dual(4, 1, 3)
	// compare=1 keeps 1 for inputs <= 1; subtract=3 gives 3-i for inputs <= 3
	if l.Output.String() != "[3 2 1 0]" {
		t.Errorf("Dual(1, 3) = %s, want [3 2 1 0]", l.Output)
	}
	if l.Label != "1|*3;" {
		t.Errorf("Label = %q", l.Label)
	}

	l = Dual(4, 2, 0)
	if l.Output.String() != "[2 2 2 0]" {
		t.Errorf("Dual(2, 0) = %s, want [2 2 2 0]", l.Output)
	}
}

func TestAccept(t *testing.T) {
	seen := NewLedger(4)

	id := New(state.Identity(4), "id")
	if Accept(&id, seen, 1) {
		t.Error("identity should be rejected")
	}

	zero := New(state.Vector{0, 0, 0, 0}, "zero")
	if Accept(&zero, seen, 2) {
		t.Error("insufficiently distinct output should be rejected")
	}
	if seen.Seen(zero.Output) {
		t.Error("rejected output should not be registered")
	}

	if !Accept(&zero, seen, 1) {
		t.Error("new sufficiently distinct output should be accepted")
	}
	if !seen.Seen(zero.Output) {
		t.Error("accepted output should be registered")
	}
	if seen.Len() != 2 {
		t.Errorf("Len() = %d, want 2", seen.Len())
	}

	dup := New(state.Vector{0, 0, 0, 0}, "dup")
	if Accept(&dup, seen, 1) {
		t.Error("duplicate output should be rejected")
	}
	if seen.Len() != 2 {
		t.Errorf("duplicate should not be re-registered, Len() = %d", seen.Len())
	}
}

func TestLedgerCopiesKeys(t *testing.T) {
	seen := NewLedger(3)
	v := state.Vector{2, 2, 2}
	seen.Add(v)
	v[0] = 0

	if !seen.Seen(state.Vector{2, 2, 2}) {
		t.Error("ledger should keep its own copy of added vectors")
	}
	if seen.Seen(v) {
		t.Error("mutating the caller's vector must not affect the ledger")
	}
}

func TestCollectionCounts(t *testing.T) {
	c := Collection{
		{Output: state.Vector{0, 0}, Children: []int{1, 2}},
		{Output: state.Vector{1, 1}},
		{Output: state.Vector{1, 0}, Children: []int{0}},
	}

	if c.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %d, want 3", c.EdgeCount())
	}
	if c.ValidParents() != 2 {
		t.Errorf("ValidParents() = %d, want 2", c.ValidParents())
	}
	if c.Index(state.Vector{1, 0}) != 2 || c.Index(state.Vector{0, 1}) != -1 {
		t.Error("Index lookup failed")
	}
	if c.States() != 2 || (Collection{}).States() != 0 {
		t.Error("States() mismatch")
	}
}
