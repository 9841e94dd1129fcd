package relaypager

import (
	"fmt"
	"math"
)

const (
	// NoLimitRaw is the raw payload value that requests an unbounded page.
	NoLimitRaw   = -1
	MaxLimit     = 100
	DefaultLimit = 10

	// MaxSafeLimit is the largest bounded limit accepted. It leaves room for
	// the two lookahead rows of the cursor paginator.
	MaxSafeLimit = math.MaxInt32
)

type limitKind uint8

const (
	limitAbsent limitKind = iota
	limitBounded
	limitUnbounded
)

// Limit is the number of rows requested for one page. The zero value means
// the limit was not provided and should be taken from defaults.
type Limit struct {
	kind limitKind
	n    int
}

// NoLimit requests the entire filtered set in one call.
var NoLimit = Limit{kind: limitUnbounded}

// LimitOf returns a bounded limit. Non-positive values are kept as-is and
// rejected when the page is requested.
func LimitOf(n int) Limit {
	return Limit{kind: limitBounded, n: n}
}

// IsZero returns true if the limit was not provided.
func (l Limit) IsZero() bool {
	return l.kind == limitAbsent
}

// IsUnbounded returns true for NoLimit.
func (l Limit) IsUnbounded() bool {
	return l.kind == limitUnbounded
}

// Value returns the bounded row count. It returns false for absent and
// unbounded limits.
func (l Limit) Value() (int, bool) {
	if l.kind != limitBounded {
		return 0, false
	}

	return l.n, true
}

func (l Limit) String() string {
	switch l.kind {
	case limitBounded:
		return fmt.Sprintf("%d", l.n)
	case limitUnbounded:
		return "unbounded"
	default:
		return "absent"
	}
}

// orDefault fills an absent limit.
func (l Limit) orDefault(def Limit) Limit {
	if l.IsZero() {
		return def
	}

	return l
}

func (l Limit) validate() error {
	switch l.kind {
	case limitAbsent:
		return &OptionError{Option: "limit", Err: ErrMissingLimit}
	case limitBounded:
		if l.n < 1 || l.n > MaxSafeLimit {
			return &OptionError{Option: "limit", Err: fmt.Errorf("%w: %d", ErrInvalidLimit, l.n)}
		}
	}

	return nil
}

// forward returns a forward take of the limit plus extra lookahead rows.
func (l Limit) forward(extra int) Take {
	if l.IsUnbounded() {
		return All()
	}

	return Forward(l.n + extra)
}

// backward returns a backward take of the limit plus extra lookahead rows.
func (l Limit) backward(extra int) Take {
	if l.IsUnbounded() {
		return AllBackward()
	}

	return Backward(l.n + extra)
}

// exceeds reports whether count is more than a bounded limit allows.
func (l Limit) exceeds(count int) bool {
	return l.kind == limitBounded && count > l.n
}

// IsNormalizedLimitMax clamps a raw client limit into [1, maxLimit].
// The second return value is false if the limit had to be adjusted.
func IsNormalizedLimitMax(limit int, maxLimit int) (int, bool) {
	if limit <= 0 {
		return DefaultLimit, false
	} else if limit > maxLimit {
		return maxLimit, false
	}

	return limit, true
}

func NormalizeLimitMax(limit int, maxLimit int) int {
	ret, _ := IsNormalizedLimitMax(limit, maxLimit)
	return ret
}

func NormalizeLimit(limit int) int {
	return NormalizeLimitMax(limit, MaxLimit)
}

// NormalizeRawLimit converts an untrusted payload limit into a Limit.
// NoLimitRaw maps to NoLimit, everything else is clamped by NormalizeLimit.
func NormalizeRawLimit(limit int) Limit {
	if limit == NoLimitRaw {
		return NoLimit
	}

	return LimitOf(NormalizeLimit(limit))
}
