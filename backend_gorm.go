package relaypager

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// GORMBackend reads pages from a gorm query.
//
// The base query carries the filter (and the selection, if any) but no
// ORDER BY: the backend orders by its own orderings so it can seek and
// reverse them. The orderings MUST end with a unique column.
//
// Anchors are matched against the orderings column by column, so the codec
// used with the backend must produce anchors over the same columns, e.g.
// IDCodec with a single "id" ordering or KeysetCodec built on the same
// orderings.
type GORMBackend[T any] struct {
	db   *gorm.DB
	sort Orderings
}

func NewGORMBackend[T any](db *gorm.DB, orderBy ...OrderBy) (*GORMBackend[T], error) {
	if db == nil {
		return nil, fmt.Errorf("cannot create gorm backend: db is nil")
	}

	sort := Orderings(orderBy)
	if err := sort.validate(); err != nil {
		return nil, fmt.Errorf("cannot create gorm backend: %w", err)
	}

	return &GORMBackend[T]{
		// A new session makes the base query safe to reuse from concurrent calls.
		db:   db.Session(&gorm.Session{}),
		sort: sort,
	}, nil
}

// GetSort returns the orderings applied to every retrieval.
func (b *GORMBackend[T]) GetSort() Orderings {
	return b.sort
}

// FindMany - implements Backend.
func (b *GORMBackend[T]) FindMany(ctx context.Context, q Query) ([]T, error) {
	tx := b.db.WithContext(ctx)

	// Backward takes read the reversed ordering forward and flip the result.
	sort := lo.Ternary(q.Take.IsBackward(), b.sort.Reverse(), b.sort)

	dnf, err := seekDNF(q.Anchor, sort)
	if err != nil {
		return nil, fmt.Errorf("cannot seek to anchor: %w", err)
	}

	if exp := dnf.toGORMExpression(); exp != nil {
		tx = tx.Clauses(exp)
	}

	if q.KeysOnly {
		tx = tx.Select(sort.Columns())
	}

	if !q.Unordered {
		tx = sort.Apply(tx)
	}

	if q.Skip > 0 {
		tx = tx.Offset(q.Skip)
	}

	if n, ok := q.Take.Count(); ok {
		tx = tx.Limit(n)
	}

	var rows []T
	if err = tx.Find(&rows).Error; err != nil {
		return nil, err
	}

	if q.Take.IsBackward() {
		rows = lo.Reverse(rows)
	}

	return rows, nil
}

// Count - implements Backend. Only the filter of the base query is honored.
func (b *GORMBackend[T]) Count(ctx context.Context, _ Query) (int64, error) {
	tx := b.db.WithContext(ctx)
	if tx.Statement.Model == nil && tx.Statement.Table == "" {
		tx = tx.Model(new(T))
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

var _ Backend[struct{}] = (*GORMBackend[struct{}])(nil)
