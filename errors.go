package relaypager

import (
	"errors"
	"fmt"
)

// Sentinel errors. Match them with errors.Is.
var (
	ErrMissingLimit       = errors.New("missing limit value")
	ErrInvalidLimit       = errors.New("invalid limit value")
	ErrInvalidPage        = errors.New("invalid page value")
	ErrConflictingCursors = errors.New("options after and before cannot be provided at the same time")

	// ErrInvalidCursor is matched by every *CursorFormatError.
	ErrInvalidCursor = errors.New("unable to parse cursor")

	// ErrCursorSerialization is matched by every *CursorSerializeError.
	ErrCursorSerialization = errors.New("unable to serialize cursor")
)

// OptionError is a configuration error raised before any backend call.
type OptionError struct {
	Option string
	Err    error
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("invalid option '%s': %v", e.Option, e.Err)
}

func (e *OptionError) Unwrap() error {
	return e.Err
}

// CursorFormatError is returned when a cursor token cannot be decoded into
// an anchor.
type CursorFormatError struct {
	Cursor string
	Err    error
}

func (e *CursorFormatError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v '%s'", ErrInvalidCursor, e.Cursor)
	}

	return fmt.Sprintf("%v '%s': %v", ErrInvalidCursor, e.Cursor, e.Err)
}

func (e *CursorFormatError) Unwrap() error {
	return e.Err
}

func (e *CursorFormatError) Is(target error) bool {
	return target == ErrInvalidCursor
}

// CursorSerializeError is returned when a cursor cannot be derived from a
// result row, usually because the selection excluded the key field.
type CursorSerializeError struct {
	Err error
}

func (e *CursorSerializeError) Error() string {
	if e.Err == nil {
		return ErrCursorSerialization.Error()
	}

	return fmt.Sprintf("%v: %v", ErrCursorSerialization, e.Err)
}

func (e *CursorSerializeError) Unwrap() error {
	return e.Err
}

func (e *CursorSerializeError) Is(target error) bool {
	return target == ErrCursorSerialization
}
