package relaypager

import "github.com/samber/lo"

// CursorPageInfo is the pagination metadata of a cursor page.
// StartCursor and EndCursor are nil if and only if the page is empty.
type CursorPageInfo struct {
	HasNextPage     bool    `json:"hasNextPage"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
	StartCursor     *string `json:"startCursor"`
	EndCursor       *string `json:"endCursor"`
}

// PageInfo is the pagination metadata of a numbered page. PageCount and
// TotalCount are set only when the page count was requested.
type PageInfo struct {
	IsFirstPage  bool   `json:"isFirstPage"`
	IsLastPage   bool   `json:"isLastPage"`
	CurrentPage  int    `json:"currentPage"`
	PreviousPage *int   `json:"previousPage"`
	NextPage     *int   `json:"nextPage"`
	PageCount    *int   `json:"pageCount,omitempty"`
	TotalCount   *int64 `json:"totalCount,omitempty"`
}

// assembleCursorPage derives the boundary cursors of the final window.
func assembleCursorPage[T any](
	codec CursorCodec[T],
	rows []T,
	hasPreviousPage, hasNextPage bool,
) ([]T, CursorPageInfo, error) {
	info := CursorPageInfo{
		HasNextPage:     hasNextPage,
		HasPreviousPage: hasPreviousPage,
	}

	if len(rows) == 0 {
		return []T{}, info, nil
	}

	start, err := codec.Serialize(rows[0])
	if err != nil {
		return nil, CursorPageInfo{}, asSerializeError(err)
	}

	end, err := codec.Serialize(rows[len(rows)-1])
	if err != nil {
		return nil, CursorPageInfo{}, asSerializeError(err)
	}

	info.StartCursor = lo.ToPtr(start)
	info.EndCursor = lo.ToPtr(end)

	return rows, info, nil
}

// assemblePage builds numbered page metadata. nextPage is 0 when there is
// no next page.
func assemblePage(page, nextPage int, pageCount *int, totalCount *int64) PageInfo {
	var previous, next *int
	if page > 1 {
		previous = lo.ToPtr(page - 1)
	}
	if nextPage > 0 {
		next = lo.ToPtr(nextPage)
	}

	return PageInfo{
		IsFirstPage:  previous == nil,
		IsLastPage:   next == nil,
		CurrentPage:  page,
		PreviousPage: previous,
		NextPage:     next,
		PageCount:    pageCount,
		TotalCount:   totalCount,
	}
}

// asSerializeError keeps custom codec errors distinguishable from cursor
// format errors.
func asSerializeError(err error) error {
	if _, ok := err.(*CursorSerializeError); ok {
		return err
	}

	return &CursorSerializeError{Err: err}
}
