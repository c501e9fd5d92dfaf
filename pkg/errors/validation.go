package errors

import "strings"

// maxStates mirrors state.MaxStates; values are stored as bytes.
const maxStates = 256

// ValidateStates checks the state-space size N.
func ValidateStates(n int) error {
	if n <= 0 {
		return New(ErrCodeInvalidStates, "state count must be positive, got %d", n)
	}
	if n > maxStates {
		return New(ErrCodeInvalidStates, "state count %d exceeds maximum of %d", n, maxStates)
	}
	return nil
}

// ValidateTarget checks that target has exactly n values, each in [0, n).
func ValidateTarget(target []int, n int) error {
	if len(target) != n {
		return New(ErrCodeInvalidTarget, "target has %d values, want %d", len(target), n)
	}
	for i, v := range target {
		if v < 0 || v >= n {
			return New(ErrCodeInvalidTarget, "target[%d] = %d is outside [0, %d)", i, v, n)
		}
	}
	return nil
}

// ValidateDepth checks a maximum search depth.
func ValidateDepth(depth int) error {
	if depth <= 0 {
		return New(ErrCodeInvalidDepth, "max depth must be positive, got %d", depth)
	}
	return nil
}

// ValidateChoice checks that value is one of the allowed values (case-sensitive).
// The error message lists the allowed values in order.
func ValidateChoice(code Code, name, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return New(code, "invalid %s: %q (must be one of: %s)", name, value, strings.Join(allowed, ", "))
}
