package relaypager

import (
	"reflect"

	"github.com/samber/lo"
)

// AnchorField is one (column, value) pair of an anchor.
type AnchorField struct {
	Column string `json:"c" cbor:"c"`
	Value  any    `json:"v" cbor:"v"`
}

// Anchor is a decoded cursor: the values identifying a unique row position
// in the sort order. Composite keys list their columns in ordering order.
//
// The paginator never inspects the fields. It only compares anchors produced
// by the same codec, so values of both sides always share a representation.
type Anchor []AnchorField

// NewAnchor builds a single-column anchor.
func NewAnchor(column string, value any) Anchor {
	return Anchor{{Column: column, Value: value}}
}

// IsEmpty returns true if the anchor has no fields.
func (a Anchor) IsEmpty() bool {
	return len(a) == 0
}

// Equal compares two anchors structurally over every field.
func (a Anchor) Equal(other Anchor) bool {
	if len(a) != len(other) {
		return false
	}

	for i := range a {
		if a[i].Column != other[i].Column || !reflect.DeepEqual(a[i].Value, other[i].Value) {
			return false
		}
	}

	return true
}

// Columns returns the anchor column names in order.
func (a Anchor) Columns() []string {
	return lo.Map(a, func(f AnchorField, _ int) string { return f.Column })
}

// Get returns the value stored for column.
func (a Anchor) Get(column string) (any, bool) {
	f, ok := lo.Find(a, func(f AnchorField) bool { return f.Column == column })
	return f.Value, ok
}
