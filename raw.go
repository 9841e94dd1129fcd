package relaypager

// RawCursorPager is intended for API payloads. For proper code generation, inline it:
//
//	type MyFilter struct {
//	    Paging RawCursorPager `json:",inline"`
//	}
type RawCursorPager struct {
	// Limit - maximum number of records to return in the response. Zero means
	// absent, so the paginator default applies. Values out of range are
	// normalized, NoLimitRaw requests every record.
	Limit int `json:"limit"`
	// After - cursor obtained from CursorPageInfo.EndCursor.
	After string `json:"after,omitempty"`
	// Before - cursor obtained from CursorPageInfo.StartCursor.
	Before string `json:"before,omitempty"`
}

// DecodeCursorPager converts RawCursorPager into CursorOptions, normalizing
// Limit and rejecting conflicting cursors. The cursor itself is checked only
// when codec is not nil. A nil codec is kept as is, so Paginator.WithCursor
// picks Defaults.Codec.
//
// The returned options can be passed to Paginator.WithCursor as-is.
func DecodeCursorPager[T any](p RawCursorPager, codec CursorCodec[T]) (CursorOptions[T], error) {
	opts := CursorOptions[T]{
		Limit:  decodeRawLimit(p.Limit),
		After:  p.After,
		Before: p.Before,
		Codec:  codec,
	}

	if err := opts.Limit.validateIfSet(); err != nil {
		return CursorOptions[T]{}, err
	}

	if err := opts.validateCursors(); err != nil {
		return CursorOptions[T]{}, err
	}

	if cursor, mode := opts.cursor(); codec != nil && mode != cursorModeFirst {
		if _, err := parseCursor(codec, cursor); err != nil {
			return CursorOptions[T]{}, err
		}
	}

	return opts, nil
}

// RawPagePager is the API payload of a numbered page request.
type RawPagePager struct {
	// Page - 1-based page number. Zero or absent means the first page.
	Page int `json:"page"`
	// Limit - page size. Zero means absent, so the paginator default applies.
	// Values out of range are normalized, NoLimitRaw requests every record.
	Limit int `json:"limit"`
	// IncludePageCount - report pageCount and totalCount.
	IncludePageCount *bool `json:"includePageCount,omitempty"`
}

// Decode converts RawPagePager into PageOptions, normalizing Limit and
// validating Page. An absent limit stays absent.
func (p RawPagePager) Decode() (PageOptions, error) {
	opts := PageOptions{
		Page:             p.Page,
		Limit:            decodeRawLimit(p.Limit),
		IncludePageCount: p.IncludePageCount,
	}
	if opts.Page == 0 {
		opts.Page = 1
	}

	if err := opts.Limit.validateIfSet(); err != nil {
		return PageOptions{}, err
	}

	if err := opts.validatePage(); err != nil {
		return PageOptions{}, err
	}

	return opts, nil
}

// decodeRawLimit maps a zero payload limit to an absent Limit and normalizes
// the rest with NormalizeRawLimit.
func decodeRawLimit(limit int) Limit {
	if limit == 0 {
		return Limit{}
	}

	return NormalizeRawLimit(limit)
}
