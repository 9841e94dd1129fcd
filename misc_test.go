package relaypager

import (
	"cmp"
	"context"
	"sync/atomic"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/samber/lo"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGORMMySQLMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "mysql", db.Debug(), mock, nil
}

func newGORMPostgresMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := postgres.New(postgres.Config{
		Conn: mockDB,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "postgres", db.Debug(), mock, nil
}

var sqlMockFnList = []func() (string, *gorm.DB, sqlmock.Sqlmock, error){
	newGORMMySQLMock,
	newGORMPostgresMock,
}

type tUser struct {
	ID   uint
	Name string
}

// tRow is the row type of memory backend tests.
type tRow struct {
	ID    int
	Score int
}

func newRows(n int) []tRow {
	rows := make([]tRow, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, tRow{ID: i, Score: i * 10})
	}

	return rows
}

func compareByID(a, b tRow) int {
	return cmp.Compare(a.ID, b.ID)
}

func seekByID(row tRow, anchor Anchor) int {
	id, _ := anchor.Get("id")
	return cmp.Compare(int64(row.ID), id.(int64))
}

func newIDBackend(rows []tRow) *MemoryBackend[tRow] {
	return NewMemoryBackend(rows, compareByID, seekByID)
}

var scoreIDOrderings = Orderings{
	{Column: "score", Direction: DirectionASC},
	{Column: "id", Direction: DirectionASC},
}

var scoreIDGetters = Getters[tRow]{
	"score": func(r tRow) any { return r.Score },
	"id":    func(r tRow) any { return r.ID },
}

func compareByScoreID(a, b tRow) int {
	return lo.CoalesceOrEmpty(cmp.Compare(a.Score, b.Score), cmp.Compare(a.ID, b.ID))
}

func seekByScoreID(row tRow, anchor Anchor) int {
	score, _ := anchor.Get("score")
	id, _ := anchor.Get("id")

	return lo.CoalesceOrEmpty(
		cmp.Compare(int64(row.Score), score.(int64)),
		cmp.Compare(int64(row.ID), id.(int64)),
	)
}

func ids(rows []tRow) []int {
	ret := make([]int, 0, len(rows))
	for _, r := range rows {
		ret = append(ret, r.ID)
	}

	return ret
}

func intRange(from, to int) []int {
	ret := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		ret = append(ret, i)
	}

	return ret
}

// spyBackend counts backend calls and injects failures.
type spyBackend[T any] struct {
	Backend[T]
	calls    atomic.Int32
	findErr  func(q Query) error
	countErr error
}

func (s *spyBackend[T]) FindMany(ctx context.Context, q Query) ([]T, error) {
	s.calls.Add(1)
	if s.findErr != nil {
		if err := s.findErr(q); err != nil {
			return nil, err
		}
	}

	return s.Backend.FindMany(ctx, q)
}

func (s *spyBackend[T]) Count(ctx context.Context, q Query) (int64, error) {
	s.calls.Add(1)
	if s.countErr != nil {
		return 0, s.countErr
	}

	return s.Backend.Count(ctx, q)
}
