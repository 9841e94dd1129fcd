package relaypager

import (
	"testing"
)

func Test_Direction_Valid_And_ForOperator(t *testing.T) {
	tests := []struct {
		name     string
		in       Direction
		valid    bool
		operator Operator
		panicExp bool
	}{
		{"ASC valid maps to GT", DirectionASC, true, OperatorGT, false},
		{"DESC valid maps to LT", DirectionDESC, true, OperatorLT, false},
	}
	for _, tt := range tests {
		if got := tt.in.Valid(); got != tt.valid {
			t.Errorf("%s: Valid=%v want %v", tt.name, got, tt.valid)
		}
		if !tt.panicExp {
			if got := tt.in.ForOperator(); got != tt.operator {
				t.Errorf("%s: ForOperator=%v want %v", tt.name, got, tt.operator)
			}
		}
	}
}

func Test_Orderings_validate(t *testing.T) {
	tests := []struct {
		name string
		ord  Orderings
		ok   bool
	}{
		{"empty returns error", Orderings{}, false},
		{"invalid direction", Orderings{{Column: "id", Direction: "bad"}}, false},
		{"valid list", Orderings{{Column: "id", Direction: DirectionASC}}, true},
	}
	for _, tt := range tests {
		if err := tt.ord.validate(); (err == nil) != tt.ok {
			t.Errorf("%s: ok=%v err=%v", tt.name, tt.ok, err)
		}
	}
}

func Test_ParseSort(t *testing.T) {
	mapping := ColumnMapping{
		"id":   "t.id",
		"name": "t.name",
	}

	tests := []struct {
		name  string
		in    []string
		ok    bool
		first OrderBy
	}{
		{"invalid format", []string{"id"}, false, OrderBy{}},
		{"unknown alias", []string{"idx asc"}, false, OrderBy{}},
		{"valid asc", []string{"id asc"}, true, OrderBy{Column: "t.id", Direction: DirectionASC}},
		{"valid desc", []string{"name desc"}, true, OrderBy{Column: "t.name", Direction: DirectionDESC}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSort(tt.in, mapping)
			if (err == nil) != tt.ok {
				t.Errorf("%s: ok=%v err=%v", tt.name, tt.ok, err)
				return
			}
			if tt.ok {
				if len(got) == 0 || got[0] != tt.first {
					t.Errorf("%s: first=%v want %v", tt.name, got, tt.first)
				}
			}
		})
	}
}

func Test_closestAlias(t *testing.T) {
	aliases := []ColumnAlias{"id", "name", "created_at"}
	tests := []struct {
		name string
		in   ColumnAlias
		out  ColumnAlias
	}{
		{"closest to id", "idx", "id"},
		{"closest to name", "nme", "name"},
		{"closest to created_at", "createdat", "created_at"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := closestAlias(tt.in, aliases); got != tt.out {
				t.Errorf("%s: got %s want %s", tt.name, got, tt.out)
			}
		})
	}
}

func Test_Orderings_Reverse(t *testing.T) {
	in := Orderings{
		{Column: "score", Direction: DirectionDESC},
		{Column: "id", Direction: DirectionASC},
	}

	got := in.Reverse()
	want := Orderings{
		{Column: "score", Direction: DirectionASC},
		{Column: "id", Direction: DirectionDESC},
	}
	if got.ToSQL() != want.ToSQL() {
		t.Errorf("Reverse: got %s want %s", got.ToSQL(), want.ToSQL())
	}

	if in[0].Direction != DirectionDESC {
		t.Errorf("Reverse must not modify the receiver")
	}

	if back := got.Reverse().ToSQL(); back != in.ToSQL() {
		t.Errorf("double Reverse: got %s want %s", back, in.ToSQL())
	}
}

func Test_Orderings_Columns_And_ToSQL(t *testing.T) {
	ord := Orderings{
		{Column: "t.created_at", Direction: DirectionDESC},
		{Column: "t.id", Direction: DirectionASC},
	}

	if got := ord.ToSQL(); got != "t.created_at DESC, t.id ASC" {
		t.Errorf("ToSQL: got %s", got)
	}

	cols := ord.Columns()
	if len(cols) != 2 || cols[0] != "t.created_at" || cols[1] != "t.id" {
		t.Errorf("Columns: got %v", cols)
	}
}

func Test_OrderBy_validate_ForbiddenSymbols(t *testing.T) {
	tests := []struct {
		name   string
		column string
		ok     bool
	}{
		{"plain", "id", true},
		{"qualified", "users.id", true},
		{"quoted", "`users`.`id`", true},
		{"injection", "id; DROP TABLE users", false},
		{"parenthesis", "lower(name)", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := OrderBy{Column: tt.column, Direction: DirectionASC}.validate()
			if (err == nil) != tt.ok {
				t.Errorf("%s: ok=%v err=%v", tt.name, tt.ok, err)
			}
		})
	}
}
