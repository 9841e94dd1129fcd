package relaypager

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// CursorOptions configures one cursor page request.
type CursorOptions[T any] struct {
	// Limit - maximum number of rows to return. Use NoLimit for the whole set.
	Limit Limit
	// After - return the page that follows this cursor.
	After string
	// Before - return the page that precedes this cursor.
	// Cannot be used together with After.
	Before string
	// Codec converts rows to cursors and back. Custom codecs must agree on
	// the anchor shape in both directions.
	Codec CursorCodec[T]
}

func (o CursorOptions[T]) withDefaults(defaults Defaults[T], codec CursorCodec[T]) CursorOptions[T] {
	o.Limit = o.Limit.orDefault(defaults.CursorLimit)
	if o.Codec == nil {
		o.Codec = codec
	}

	return o
}

func (o CursorOptions[T]) validate() error {
	if err := o.Limit.validate(); err != nil {
		return err
	}

	return o.validateCursors()
}

func (o CursorOptions[T]) validateCursors() error {
	if o.After != "" && o.Before != "" {
		return &OptionError{Option: "after", Err: ErrConflictingCursors}
	}

	return nil
}

// cursor returns the cursor to seek from and the mode it implies.
func (o CursorOptions[T]) cursor() (string, cursorMode) {
	switch {
	case o.Before != "":
		return o.Before, cursorModeBackward
	case o.After != "":
		return o.After, cursorModeForward
	default:
		return "", cursorModeFirst
	}
}

type cursorMode string

const (
	cursorModeFirst    cursorMode = "first"
	cursorModeForward  cursorMode = "forward"
	cursorModeBackward cursorMode = "backward"
)

// cursorPager is the resolved state of one WithCursor call.
type cursorPager[T any] struct {
	backend Backend[T]
	codec   CursorCodec[T]
	limit   Limit
	anchor  Anchor
	mode    cursorMode
}

// WithCursor returns one keyset page and its metadata.
//
// Without a cursor the first page is returned. With After the page following
// the anchor is returned, with Before the page preceding it. Forward and
// backward pages issue the window query and an existence check for the
// opposite side concurrently.
//
// Options are validated and cursors decoded before any backend call. Backend
// errors are returned unchanged.
func (p *Paginator[T]) WithCursor(ctx context.Context, opts CursorOptions[T]) ([]T, CursorPageInfo, error) {
	if p == nil {
		return nil, CursorPageInfo{}, fmt.Errorf("paginator is nil")
	}

	opts = opts.withDefaults(p.defaults, p.codec())

	pager, err := newCursorPager(p.backend, opts)
	if err != nil {
		p.logger.Debug().Err(err).Msg("cursor page rejected")
		return nil, CursorPageInfo{}, err
	}

	rows, hasPreviousPage, hasNextPage, err := pager.fetch(ctx)
	if err != nil {
		return nil, CursorPageInfo{}, err
	}

	rows, info, err := assembleCursorPage(pager.codec, rows, hasPreviousPage, hasNextPage)
	if err != nil {
		return nil, CursorPageInfo{}, err
	}

	p.logger.Debug().
		Str("mode", string(pager.mode)).
		Stringer("limit", pager.limit).
		Int("rows", len(rows)).
		Bool("has_previous_page", info.HasPreviousPage).
		Bool("has_next_page", info.HasNextPage).
		Msg("cursor page fetched")

	return rows, info, nil
}

func newCursorPager[T any](backend Backend[T], opts CursorOptions[T]) (*cursorPager[T], error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	c := &cursorPager[T]{
		backend: backend,
		codec:   opts.Codec,
		limit:   opts.Limit,
	}

	var cursor string
	cursor, c.mode = opts.cursor()

	if c.mode != cursorModeFirst {
		anchor, err := parseCursor(c.codec, cursor)
		if err != nil {
			return nil, err
		}
		c.anchor = anchor
	}

	return c, nil
}

// parseCursor decodes cursor with codec. Errors are always *CursorFormatError.
func parseCursor[T any](codec CursorCodec[T], cursor string) (Anchor, error) {
	anchor, err := codec.Parse(cursor)
	if err != nil {
		if _, ok := err.(*CursorFormatError); !ok {
			err = &CursorFormatError{Cursor: cursor, Err: err}
		}
		return nil, err
	}

	return anchor, nil
}

func (c *cursorPager[T]) fetch(ctx context.Context) ([]T, bool, bool, error) {
	switch c.mode {
	case cursorModeForward:
		return c.forward(ctx)
	case cursorModeBackward:
		return c.backward(ctx)
	default:
		return c.first(ctx)
	}
}

// first fetches limit+1 rows from the start of the set. The extra row only
// tells whether a next page exists.
func (c *cursorPager[T]) first(ctx context.Context) ([]T, bool, bool, error) {
	rows, err := c.backend.FindMany(ctx, Query{Take: c.limit.forward(1)})
	if err != nil {
		return nil, false, false, err
	}

	hasNextPage := false
	if c.limit.exceeds(len(rows)) {
		rows = rows[:len(rows)-1]
		hasNextPage = true
	}

	return rows, false, hasNextPage, nil
}

// forward fetches limit+2 rows from the anchor and checks for a row at or
// before it.
func (c *cursorPager[T]) forward(ctx context.Context) ([]T, bool, bool, error) {
	rows, hasPreviousPage, err := fetchWithNeighbour(ctx, c.backend,
		Query{Anchor: c.anchor, Take: c.limit.forward(2)},
		Query{Anchor: c.anchor, Take: Backward(1), KeysOnly: true},
	)
	if err != nil {
		return nil, false, false, err
	}

	if len(rows) > 0 {
		isAnchor, err := c.isAnchor(rows[0])
		if err != nil {
			return nil, false, false, err
		}

		if isAnchor {
			rows = rows[1:]
		} else if c.isFullLookahead(len(rows)) {
			// The anchor row is gone: the seek started right after it.
			rows = rows[:len(rows)-1]
		}
	}

	hasNextPage := false
	if n, _ := c.limit.Value(); c.limit.exceeds(len(rows)) {
		rows = rows[:n]
		hasNextPage = true
	}

	return rows, hasPreviousPage, hasNextPage, nil
}

// backward mirrors forward: limit+2 rows ending at the anchor and a check
// for a row at or after it.
func (c *cursorPager[T]) backward(ctx context.Context) ([]T, bool, bool, error) {
	rows, hasNextPage, err := fetchWithNeighbour(ctx, c.backend,
		Query{Anchor: c.anchor, Take: c.limit.backward(2)},
		Query{Anchor: c.anchor, Take: Forward(1), KeysOnly: true},
	)
	if err != nil {
		return nil, false, false, err
	}

	if len(rows) > 0 {
		isAnchor, err := c.isAnchor(rows[len(rows)-1])
		if err != nil {
			return nil, false, false, err
		}

		if isAnchor {
			rows = rows[:len(rows)-1]
		} else if c.isFullLookahead(len(rows)) {
			rows = rows[1:]
		}
	}

	hasPreviousPage := false
	if n, _ := c.limit.Value(); c.limit.exceeds(len(rows)) {
		rows = rows[len(rows)-n:]
		hasPreviousPage = true
	}

	return rows, hasPreviousPage, hasNextPage, nil
}

// isAnchor reports whether row sits exactly at the anchor. The row's cursor
// is decoded again so both sides share one representation.
func (c *cursorPager[T]) isAnchor(row T) (bool, error) {
	cursor, err := c.codec.Serialize(row)
	if err != nil {
		return false, asSerializeError(err)
	}

	anchor, err := c.codec.Parse(cursor)
	if err != nil {
		return false, &CursorSerializeError{Err: fmt.Errorf("cursor '%s' does not round-trip: %w", cursor, err)}
	}

	return anchor.Equal(c.anchor), nil
}

// isFullLookahead reports whether the window query returned limit+2 rows.
func (c *cursorPager[T]) isFullLookahead(count int) bool {
	n, ok := c.limit.Value()
	return ok && count == n+2
}

// fetchWithNeighbour runs the window query and the existence check concurrently.
// The first failure cancels the other query and is returned as-is.
func fetchWithNeighbour[T any](ctx context.Context, backend Backend[T], window, neighbour Query) ([]T, bool, error) {
	var (
		rows  []T
		found []T
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = backend.FindMany(gctx, window)
		return err
	})
	g.Go(func() error {
		var err error
		found, err = backend.FindMany(gctx, neighbour)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, false, err
	}

	return rows, len(found) > 0, nil
}
