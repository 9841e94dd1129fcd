package relaypager

import (
	"context"
	"slices"

	"github.com/samber/lo"
)

// MemoryBackend serves pages from an in-memory slice. It follows the same
// anchor semantics as GORMBackend: seeks are inclusive and an anchor that no
// longer matches a row seeks to where it would have been.
type MemoryBackend[T any] struct {
	rows    []T
	compare func(a, b T) int
	seek    func(row T, anchor Anchor) int
	filter  func(T) bool
}

// NewMemoryBackend creates a backend over rows.
//
// compare defines the sort order and must be total. seek compares a row with
// an anchor under the same order: negative if the row sorts before the
// anchor, zero if the row is the anchor, positive otherwise.
func NewMemoryBackend[T any](rows []T, compare func(a, b T) int, seek func(row T, anchor Anchor) int) *MemoryBackend[T] {
	return &MemoryBackend[T]{
		rows:    rows,
		compare: compare,
		seek:    seek,
	}
}

// WithFilter restricts the backend to rows matching filter.
func (b *MemoryBackend[T]) WithFilter(filter func(T) bool) *MemoryBackend[T] {
	b.filter = filter
	return b
}

// FindMany - implements Backend.
func (b *MemoryBackend[T]) FindMany(ctx context.Context, q Query) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	set := b.view(!q.Unordered)
	start, end := 0, len(set)

	if !q.Anchor.IsEmpty() {
		if q.Take.IsBackward() {
			end = indexOrLen(set, func(row T) bool { return b.seek(row, q.Anchor) > 0 })
		} else {
			start = indexOrLen(set, func(row T) bool { return b.seek(row, q.Anchor) >= 0 })
		}
	}

	window := set[start:end]
	n, bounded := q.Take.Count()

	if q.Take.IsBackward() {
		window = window[:max(len(window)-q.Skip, 0)]
		if bounded {
			window = window[max(len(window)-n, 0):]
		}
	} else {
		window = window[min(q.Skip, len(window)):]
		if bounded {
			window = window[:min(n, len(window))]
		}
	}

	return slices.Clone(window), nil
}

// Count - implements Backend.
func (b *MemoryBackend[T]) Count(ctx context.Context, _ Query) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	return int64(len(b.view(false))), nil
}

func (b *MemoryBackend[T]) view(ordered bool) []T {
	set := slices.Clone(b.rows)
	if b.filter != nil {
		set = lo.Filter(set, func(row T, _ int) bool { return b.filter(row) })
	}

	if ordered {
		slices.SortStableFunc(set, b.compare)
	}

	return set
}

func indexOrLen[T any](set []T, pred func(T) bool) int {
	if i := slices.IndexFunc(set, pred); i >= 0 {
		return i
	}

	return len(set)
}

var _ Backend[struct{}] = (*MemoryBackend[struct{}])(nil)
