package relaypager

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/samber/lo"
)

// WireFormat selects how KeysetCodec serializes anchors before base64.
type WireFormat uint8

const (
	WireJSON WireFormat = iota
	WireCBOR
)

var (
	_cborEnc = lo.Must(cbor.EncOptions{
		Time:    cbor.TimeRFC3339Nano,
		TimeTag: cbor.EncTagRequired,
	}.EncMode())
	_cborDec = lo.Must(cbor.DecOptions{
		IntDec: cbor.IntDecConvertSigned,
	}.DecMode())
)

// Getters maps ordering columns to value getters of a row. List the columns
// the pagination is ordered by.
// Example:
//
//	relaypager.Getters[models.Player]{
//		"id":          func(p models.Player) any { return p.ID },
//		"deposit_sum": func(p models.Player) any { return p.DepositSum },
//	}
type Getters[T any] map[string]func(T) any

// KeysetCodec encodes composite anchors: one value per ordering column, in
// ordering order. The token is base64(JSON) or base64(CBOR) of the anchor,
// each value tagged with its kind so Parse returns exactly what AnchorOf
// built.
//
// IMPORTANT:
// The orderings MUST end with a unique column, otherwise anchors of tied rows
// are indistinguishable.
type KeysetCodec[T any] struct {
	getters   Getters[T]
	orderings Orderings
	format    WireFormat
}

func NewKeysetCodec[T any](getters Getters[T], orderings ...OrderBy) *KeysetCodec[T] {
	return &KeysetCodec[T]{
		getters:   getters,
		orderings: orderings,
	}
}

// WithCBOR switches the wire format to CBOR, which yields shorter tokens.
func (c *KeysetCodec[T]) WithCBOR() *KeysetCodec[T] {
	if c == nil {
		c = new(KeysetCodec[T])
	}

	c.format = WireCBOR

	return c
}

// GetOrderings returns the orderings the codec was built for.
func (c *KeysetCodec[T]) GetOrderings() Orderings {
	if c == nil {
		return nil
	}

	return c.orderings
}

// Serialize - implements CursorCodec.
func (c *KeysetCodec[T]) Serialize(row T) (string, error) {
	anchor, err := c.AnchorOf(row)
	if err != nil {
		return "", err
	}

	raw, err := c.marshal(anchor)
	if err != nil {
		return "", &CursorSerializeError{Err: err}
	}

	return _encoder.EncodeToString(raw), nil
}

// AnchorOf builds the anchor of a row without encoding it. Values are
// normalized the way Parse returns them: signed integers become int64,
// unsigned ones uint64, floats float64 and timestamps UTC time.Time.
func (c *KeysetCodec[T]) AnchorOf(row T) (Anchor, error) {
	if c == nil || len(c.orderings) == 0 {
		return nil, &CursorSerializeError{Err: fmt.Errorf("empty ordering list")}
	}

	anchor := make(Anchor, 0, len(c.orderings))
	for _, orderBy := range c.orderings {
		getter, ok := c.getters[orderBy.Column]
		if !ok {
			return nil, &CursorSerializeError{
				Err: fmt.Errorf("cannot find getter for column '%s' met in ordering", orderBy.Column),
			}
		}

		value, _, err := normalizeKeyValue(getter(row))
		if err != nil {
			return nil, &CursorSerializeError{Err: fmt.Errorf("column '%s': %w", orderBy.Column, err)}
		}

		anchor = append(anchor, AnchorField{Column: orderBy.Column, Value: value})
	}

	return anchor, nil
}

// Parse - implements CursorCodec.
func (c *KeysetCodec[T]) Parse(cursor string) (Anchor, error) {
	if c == nil || len(c.orderings) == 0 {
		return nil, &CursorFormatError{Cursor: cursor, Err: fmt.Errorf("empty ordering list")}
	}

	raw, err := _encoder.DecodeString(cursor)
	if err != nil {
		return nil, &CursorFormatError{Cursor: cursor, Err: fmt.Errorf("failed to decode base64 encoded cursor: %w", err)}
	}

	anchor, err := c.unmarshal(raw)
	if err != nil {
		return nil, &CursorFormatError{Cursor: cursor, Err: err}
	}

	if err = c.validate(anchor); err != nil {
		return nil, &CursorFormatError{Cursor: cursor, Err: err}
	}

	return anchor, nil
}

// keyKind tags each wire value with the type it decodes back into.
type keyKind string

const (
	kindNull   keyKind = ""
	kindInt    keyKind = "i"
	kindUint   keyKind = "u"
	kindFloat  keyKind = "f"
	kindString keyKind = "s"
	kindBool   keyKind = "b"
	kindBytes  keyKind = "x"
	kindTime   keyKind = "t"
)

var _timeType = reflect.TypeOf(time.Time{})

// wireField is one anchor column as it is written into a token.
type wireField[V any] struct {
	Column string  `json:"c" cbor:"c"`
	Kind   keyKind `json:"k,omitempty" cbor:"k,omitempty"`
	Value  V       `json:"v" cbor:"v"`
}

// normalizeKeyValue reduces a getter result to the canonical value stored in
// anchors: int64, uint64, float64, string, bool, []byte, UTC time.Time or nil.
// Pointers are dereferenced and named types lose their names.
func normalizeKeyValue(v any) (any, keyKind, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, kindNull, nil
		}
		rv = rv.Elem()
	}

	if !rv.IsValid() {
		return nil, kindNull, nil
	}

	if rv.Type() == _timeType {
		return rv.Interface().(time.Time).UTC(), kindTime, nil
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), kindInt, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), kindUint, nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), kindFloat, nil
	case reflect.String:
		return rv.String(), kindString, nil
	case reflect.Bool:
		return rv.Bool(), kindBool, nil
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			if rv.IsNil() {
				return nil, kindNull, nil
			}
			return bytes.Clone(rv.Bytes()), kindBytes, nil
		}
	}

	return nil, kindNull, fmt.Errorf("unsupported cursor value of type %T", v)
}

// decodeKeyValue decodes one wire value into the Go type of kind.
func decodeKeyValue(kind keyKind, unmarshal func(dst any) error) (any, error) {
	switch kind {
	case kindNull:
		v, err := decodeAs[any](unmarshal)
		if err == nil && v != nil {
			return nil, fmt.Errorf("value without kind")
		}
		return nil, err
	case kindInt:
		return decodeAs[int64](unmarshal)
	case kindUint:
		return decodeAs[uint64](unmarshal)
	case kindFloat:
		return decodeAs[float64](unmarshal)
	case kindString:
		return decodeAs[string](unmarshal)
	case kindBool:
		return decodeAs[bool](unmarshal)
	case kindBytes:
		return decodeAs[[]byte](unmarshal)
	case kindTime:
		v, err := decodeAs[time.Time](unmarshal)
		if err != nil {
			return nil, err
		}
		return v.(time.Time).UTC(), nil
	default:
		return nil, fmt.Errorf("unknown value kind '%s'", kind)
	}
}

func decodeAs[V any](unmarshal func(dst any) error) (any, error) {
	var v V
	if err := unmarshal(&v); err != nil {
		return nil, err
	}

	return v, nil
}

func (c *KeysetCodec[T]) marshal(anchor Anchor) ([]byte, error) {
	fields := make([]wireField[any], 0, len(anchor))
	for _, f := range anchor {
		value, kind, err := normalizeKeyValue(f.Value)
		if err != nil {
			return nil, fmt.Errorf("column '%s': %w", f.Column, err)
		}
		fields = append(fields, wireField[any]{Column: f.Column, Kind: kind, Value: value})
	}

	if c.format == WireCBOR {
		return _cborEnc.Marshal(fields)
	}

	jTok, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("cannot marshal cursor value: %w", err)
	}

	var buf bytes.Buffer
	if err = json.Compact(&buf, jTok); err != nil {
		return nil, fmt.Errorf("cannot compact cursor value: %w", err)
	}

	return buf.Bytes(), nil
}

func (c *KeysetCodec[T]) unmarshal(raw []byte) (Anchor, error) {
	if c.format == WireCBOR {
		var fields []wireField[cbor.RawMessage]
		if err := _cborDec.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cbor encoded cursor: %w", err)
		}

		return decodeWireFields(fields, func(v cbor.RawMessage, dst any) error {
			return _cborDec.Unmarshal(v, dst)
		})
	}

	var fields []wireField[json.RawMessage]
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to unmarshal json encoded cursor: %w", err)
	}

	return decodeWireFields(fields, func(v json.RawMessage, dst any) error {
		if len(v) == 0 {
			v = json.RawMessage("null")
		}
		return json.Unmarshal(v, dst)
	})
}

func decodeWireFields[V any](fields []wireField[V], unmarshal func(V, any) error) (Anchor, error) {
	anchor := make(Anchor, 0, len(fields))
	for _, f := range fields {
		value, err := decodeKeyValue(f.Kind, func(dst any) error { return unmarshal(f.Value, dst) })
		if err != nil {
			return nil, fmt.Errorf("cannot decode cursor column '%s': %w", f.Column, err)
		}
		anchor = append(anchor, AnchorField{Column: f.Column, Value: value})
	}

	return anchor, nil
}

// validate checks the anchor columns against the orderings.
func (c *KeysetCodec[T]) validate(anchor Anchor) error {
	if len(anchor) != len(c.orderings) {
		return fmt.Errorf("cursor column number mismatch")
	}

	for i := range anchor {
		if anchor[i].Column != c.orderings[i].Column {
			return fmt.Errorf("unexpected cursor column '%s'", anchor[i].Column)
		}
	}

	return nil
}

var _ CursorCodec[struct{}] = (*KeysetCodec[struct{}])(nil)
