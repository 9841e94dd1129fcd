package relaypager

import "fmt"

// Operator defines a comparison operator for filtering by column.
// Used in anchor seek conditions.
type Operator string

// Valid reports whether the operator is a strict comparison that can be
// derived from an ordering.
func (o Operator) Valid() bool {
	return o == OperatorLT || o == OperatorGT
}

func (o Operator) ForOrdering() Direction {
	switch o {
	case OperatorGT, OperatorGTE:
		return DirectionASC
	case OperatorLT, OperatorLTE:
		return DirectionDESC
	default:
		panic(fmt.Errorf("cannot map operator '%s' to ordering", o))
	}
}

// Inclusive returns the non-strict form of a strict comparison.
func (o Operator) Inclusive() Operator {
	switch o {
	case OperatorGT:
		return OperatorGTE
	case OperatorLT:
		return OperatorLTE
	default:
		return o
	}
}

const (
	OperatorGT  Operator = ">"
	OperatorLT  Operator = "<"
	OperatorGTE Operator = ">="
	OperatorLTE Operator = "<="

	// operatorEq is the equality operator. It is private because we use it
	// ONLY while building filtering conditions.
	operatorEq Operator = "="
)
