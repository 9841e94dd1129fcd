package relaypager

import (
	"encoding/base64"
	"fmt"
	"reflect"
	"strconv"
)

var _encoder = base64.RawURLEncoding

// CursorCodec converts rows to cursors and cursors to anchors. Both
// directions must agree on the anchor shape: Parse(Serialize(row)) is the
// anchor of row.
type CursorCodec[T any] interface {
	// Serialize derives the cursor of a result row.
	Serialize(row T) (string, error)
	// Parse decodes a cursor into an anchor.
	Parse(cursor string) (Anchor, error)
}

const (
	defaultIDField  = "ID"
	defaultIDColumn = "id"
)

// IDCodec is the default codec. The cursor is the decimal form of a single
// integer identifier field.
//
// The selected row projection must include the identifier field. Rows may be
// structs (or pointers to structs) holding Field, or map[string]any keyed by
// Column.
type IDCodec[T any] struct {
	// Field is the struct field name. Defaults to "ID".
	Field string
	// Column is the anchor column name. Defaults to "id".
	Column string
}

func (c IDCodec[T]) field() string {
	if c.Field == "" {
		return defaultIDField
	}

	return c.Field
}

func (c IDCodec[T]) column() string {
	if c.Column == "" {
		return defaultIDColumn
	}

	return c.Column
}

// Serialize - implements CursorCodec.
func (c IDCodec[T]) Serialize(row T) (string, error) {
	v := reflect.ValueOf(row)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return "", &CursorSerializeError{Err: fmt.Errorf("nil row")}
		}
		v = v.Elem()
	}

	var id reflect.Value
	switch v.Kind() {
	case reflect.Struct:
		id = v.FieldByName(c.field())
		if !id.IsValid() {
			return "", &CursorSerializeError{Err: fmt.Errorf("row has no field '%s'", c.field())}
		}
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return "", &CursorSerializeError{Err: fmt.Errorf("unsupported row type %s", v.Type())}
		}
		id = v.MapIndex(reflect.ValueOf(c.column()).Convert(v.Type().Key()))
		if !id.IsValid() {
			return "", &CursorSerializeError{Err: fmt.Errorf("row has no column '%s'", c.column())}
		}
		if id.Kind() == reflect.Interface {
			id = id.Elem()
		}
	default:
		return "", &CursorSerializeError{Err: fmt.Errorf("unsupported row type %s", v.Type())}
	}

	switch id.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(id.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(id.Uint(), 10), nil
	case reflect.Invalid:
		return "", &CursorSerializeError{Err: fmt.Errorf("identifier is nil")}
	default:
		return "", &CursorSerializeError{Err: fmt.Errorf("identifier of type %s is not an integer", id.Type())}
	}
}

// Parse - implements CursorCodec. Identifiers that fit int64 are returned as
// int64, larger unsigned ones as uint64.
func (c IDCodec[T]) Parse(cursor string) (Anchor, error) {
	id, err := strconv.ParseInt(cursor, 10, 64)
	if err == nil {
		return NewAnchor(c.column(), id), nil
	}

	if uid, uerr := strconv.ParseUint(cursor, 10, 64); uerr == nil {
		return NewAnchor(c.column(), uid), nil
	}

	return nil, &CursorFormatError{Cursor: cursor, Err: err}
}

var _ CursorCodec[struct{ ID int }] = IDCodec[struct{ ID int }]{}
