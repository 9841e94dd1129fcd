package relaypager

import (
	"context"
	"fmt"
	"math"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// PageOptions configures one numbered page request.
type PageOptions struct {
	// Page - 1-based page number. Zero means the first page.
	Page int
	// Limit - page size. Use NoLimit for the whole set as a single page.
	Limit Limit
	// IncludePageCount runs a count query alongside the page query to
	// report PageCount and TotalCount. Nil falls back to defaults.
	IncludePageCount *bool
}

func (o PageOptions) validate() error {
	if err := o.Limit.validate(); err != nil {
		return err
	}

	return o.validatePage()
}

// validatePage checks the page number. The overflow check applies to bounded
// limits only.
func (o PageOptions) validatePage() error {
	if o.Page < 1 {
		return &OptionError{Option: "page", Err: fmt.Errorf("%w: %d", ErrInvalidPage, o.Page)}
	}

	// (page-1)*limit must not overflow.
	if n, ok := o.Limit.Value(); ok && o.Page-1 > (math.MaxInt-n)/n {
		return &OptionError{Option: "page", Err: fmt.Errorf("%w: %d is out of range", ErrInvalidPage, o.Page)}
	}

	return nil
}

func (o PageOptions) skip() int {
	n, ok := o.Limit.Value()
	if !ok {
		return 0
	}

	return (o.Page - 1) * n
}

// WithPages returns one numbered page and its metadata.
//
// Without the page count, limit+1 rows are fetched and the extra row tells
// whether a next page exists. With the page count, exactly limit rows and the
// total count are fetched concurrently.
func (p *Paginator[T]) WithPages(ctx context.Context, opts PageOptions) ([]T, PageInfo, error) {
	if p == nil {
		return nil, PageInfo{}, fmt.Errorf("paginator is nil")
	}

	opts.Limit = opts.Limit.orDefault(p.defaults.PageLimit)
	if opts.Page == 0 {
		opts.Page = 1
	}
	if opts.IncludePageCount == nil {
		opts.IncludePageCount = lo.ToPtr(p.defaults.IncludePageCount)
	}

	if err := opts.validate(); err != nil {
		p.logger.Debug().Err(err).Msg("page rejected")
		return nil, PageInfo{}, err
	}

	var (
		rows []T
		info PageInfo
		err  error
	)
	if *opts.IncludePageCount {
		rows, info, err = p.pageWithCount(ctx, opts)
	} else {
		rows, info, err = p.pageWithLookahead(ctx, opts)
	}
	if err != nil {
		return nil, PageInfo{}, err
	}

	if rows == nil {
		rows = []T{}
	}

	p.logger.Debug().
		Int("page", opts.Page).
		Stringer("limit", opts.Limit).
		Bool("include_page_count", *opts.IncludePageCount).
		Int("rows", len(rows)).
		Bool("is_last_page", info.IsLastPage).
		Msg("page fetched")

	return rows, info, nil
}

func (p *Paginator[T]) pageWithLookahead(ctx context.Context, opts PageOptions) ([]T, PageInfo, error) {
	rows, err := p.backend.FindMany(ctx, Query{Skip: opts.skip(), Take: opts.Limit.forward(1)})
	if err != nil {
		return nil, PageInfo{}, err
	}

	nextPage := 0
	if opts.Limit.exceeds(len(rows)) {
		rows = rows[:len(rows)-1]
		nextPage = opts.Page + 1
	}

	return rows, assemblePage(opts.Page, nextPage, nil, nil), nil
}

func (p *Paginator[T]) pageWithCount(ctx context.Context, opts PageOptions) ([]T, PageInfo, error) {
	var (
		rows       []T
		totalCount int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = p.backend.FindMany(gctx, Query{Skip: opts.skip(), Take: opts.Limit.forward(0)})
		return err
	})
	g.Go(func() error {
		var err error
		totalCount, err = p.backend.Count(gctx, Query{KeysOnly: true, Unordered: true})
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, PageInfo{}, err
	}

	pageCount := 1
	if n, ok := opts.Limit.Value(); ok {
		pageCount = int((totalCount + int64(n) - 1) / int64(n))
	}

	nextPage := lo.Ternary(opts.Page < pageCount, opts.Page+1, 0)

	return rows, assemblePage(opts.Page, nextPage, lo.ToPtr(pageCount), lo.ToPtr(totalCount)), nil
}
