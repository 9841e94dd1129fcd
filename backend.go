package relaypager

import "context"

// Take bounds a retrieval and gives its direction relative to the anchor
// (or to the start/end of the set when there is no anchor).
//
// A backward take returns the last rows up to and including the anchor, still
// in display order.
type Take struct {
	n        int
	bounded  bool
	backward bool
}

// Forward takes n rows from the anchor (inclusive) or from the start.
func Forward(n int) Take {
	return Take{n: n, bounded: true}
}

// Backward takes the n rows ending at the anchor (inclusive) or at the end.
func Backward(n int) Take {
	return Take{n: n, bounded: true, backward: true}
}

// All takes every row from the anchor or from the start.
func All() Take {
	return Take{}
}

// AllBackward takes every row up to the anchor.
func AllBackward() Take {
	return Take{backward: true}
}

// Count returns the row bound. The second value is false for unbounded takes.
func (t Take) Count() (int, bool) {
	return t.n, t.bounded
}

// IsBackward returns true if rows are read backward from the anchor.
func (t Take) IsBackward() bool {
	return t.backward
}

// Signed returns the bound as a signed row count: negative for backward
// takes. Unbounded takes return 0.
func (t Take) Signed() int {
	if !t.bounded {
		return 0
	}
	if t.backward {
		return -t.n
	}

	return t.n
}

// Query describes one anchored, bounded retrieval. Filtering and ordering
// belong to the backend, which is bound to the caller's base query.
type Query struct {
	// Anchor is the inclusive seek position. Empty means the start (or the
	// end, for backward takes) of the set.
	Anchor Anchor
	// Skip rows after seeking.
	Skip int
	// Take bounds the retrieval.
	Take Take
	// KeysOnly resets the selection: only existence matters, so the backend
	// may fetch just the key columns.
	KeysOnly bool
	// Unordered resets the ordering. Used by counts.
	Unordered bool
}

// Backend is the data store the paginators read from.
//
// FindMany must return rows in display order for both forward and backward
// takes. Count must honor only the filter, ignoring Anchor, Skip and Take.
//
// Both methods may be called concurrently.
type Backend[T any] interface {
	FindMany(ctx context.Context, q Query) ([]T, error)
	Count(ctx context.Context, q Query) (int64, error)
}
