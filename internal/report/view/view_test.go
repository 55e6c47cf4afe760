package view_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ihours/ihours-backend/internal/report/summary"
	"github.com/ihours/ihours-backend/internal/report/view"
)

func intPtr(v int) *int { return &v }

func makeRows(n int) []summary.Row {
	rows := make([]summary.Row, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, summary.Row{
			EmployeeID:           int64(i),
			EmployeeName:         fmt.Sprintf("Employee %03d", i),
			FTEPercentage:        100,
			TotalHHMM:            summary.FormatHHMM(int64(i * 30)),
			WorkingMonths:        i % 5,
			HoursPerWorkingMonth: intPtr(i),
			WorkingWeeks:         i % 7,
			HoursPerWorkingWeek:  intPtr(i),
			PrevWeekHours:        i,
		})
	}
	return rows
}

func names(rows []summary.Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.EmployeeName)
	}
	return out
}

func TestPagination(t *testing.T) {
	s := view.New(makeRows(45))

	require.Equal(t, 3, s.TotalPages())
	require.Len(t, s.Rows(), 20)
	assert.Equal(t, "showing 1 to 20 of 45", s.RangeLabel())

	s.SetPage(3)
	require.Len(t, s.Rows(), 5)
	assert.Equal(t, "showing 41 to 45 of 45", s.RangeLabel())
	assert.Equal(t, "Employee 041", s.Rows()[0].EmployeeName)
}

func TestPagination_Clamped(t *testing.T) {
	s := view.New(makeRows(45))

	s.SetPage(99)
	assert.Equal(t, 3, s.Page())

	s.SetPage(-2)
	assert.Equal(t, 1, s.Page())
}

func TestPagination_Empty(t *testing.T) {
	s := view.New(nil)

	assert.Equal(t, 1, s.TotalPages())
	assert.Empty(t, s.Rows())
	assert.Equal(t, "showing 0 to 0 of 0", s.RangeLabel())
}

func TestSearch(t *testing.T) {
	s := view.New([]summary.Row{
		{EmployeeID: 1, EmployeeName: "Anna Alvarez"},
		{EmployeeID: 2, EmployeeName: "Ben Keller"},
		{EmployeeID: 3, EmployeeName: "Annika Berg"},
	})

	s.SetSearch("ann")
	assert.Equal(t, []string{"Anna Alvarez", "Annika Berg"}, names(s.Rows()))

	s.SetSearch("KELLER")
	assert.Equal(t, []string{"Ben Keller"}, names(s.Rows()))

	s.SetSearch("")
	require.Len(t, s.Rows(), 3)
}

func TestSearch_ResetsPage(t *testing.T) {
	s := view.New(makeRows(45))
	s.SetPage(3)

	s.SetSearch("Employee 0")
	assert.Equal(t, 1, s.Page())
}

func TestToggleSort_NewColumnDescending(t *testing.T) {
	s := view.New([]summary.Row{
		{EmployeeID: 1, EmployeeName: "A", PrevWeekHours: 2},
		{EmployeeID: 2, EmployeeName: "B", PrevWeekHours: 9},
		{EmployeeID: 3, EmployeeName: "C", PrevWeekHours: 5},
	})

	s.ToggleSort(view.ColumnPrevWeek)

	assert.Equal(t, view.ColumnPrevWeek, s.SortColumn())
	assert.True(t, s.SortDescending())
	assert.Equal(t, []string{"B", "C", "A"}, names(s.Rows()))
}

func TestToggleSort_ByEmployeeID(t *testing.T) {
	s := view.New([]summary.Row{
		{EmployeeID: 2, EmployeeName: "B"},
		{EmployeeID: 3, EmployeeName: "C"},
		{EmployeeID: 1, EmployeeName: "A"},
	})

	s.ToggleSort(view.ColumnID)
	assert.True(t, s.SortDescending())
	assert.Equal(t, []string{"C", "B", "A"}, names(s.Rows()))

	s.ToggleSort(view.ColumnID)
	assert.False(t, s.SortDescending())
	assert.Equal(t, []string{"A", "B", "C"}, names(s.Rows()))
}

func TestToggleSort_SameColumnFlips(t *testing.T) {
	s := view.New([]summary.Row{
		{EmployeeID: 1, EmployeeName: "A", PrevWeekHours: 2},
		{EmployeeID: 2, EmployeeName: "B", PrevWeekHours: 9},
		{EmployeeID: 3, EmployeeName: "C", PrevWeekHours: 5},
	})

	s.ToggleSort(view.ColumnPrevWeek)
	s.ToggleSort(view.ColumnPrevWeek)

	assert.False(t, s.SortDescending())
	assert.Equal(t, []string{"A", "C", "B"}, names(s.Rows()))
}

func TestToggleSort_DoubleFlipRestoresOrder(t *testing.T) {
	s := view.New(makeRows(10))
	original := names(s.Rows())

	s.ToggleSort(view.ColumnName)
	s.ToggleSort(view.ColumnName)
	s.ToggleSort(view.ColumnName)
	s.ToggleSort(view.ColumnName)

	assert.Equal(t, original, names(s.Rows()))
}

func TestToggleSort_TotalSortsByDuration(t *testing.T) {
	s := view.New([]summary.Row{
		{EmployeeID: 1, EmployeeName: "A", TotalHHMM: "9:30"},
		{EmployeeID: 2, EmployeeName: "B", TotalHHMM: "10:00"},
		{EmployeeID: 3, EmployeeName: "C", TotalHHMM: "0:45"},
	})

	s.ToggleSort(view.ColumnTotal)

	// lexicographic order would put "9:30" first
	assert.Equal(t, []string{"B", "A", "C"}, names(s.Rows()))
}

func TestToggleSort_NullsLast(t *testing.T) {
	term := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	rows := []summary.Row{
		{EmployeeID: 1, EmployeeName: "A", HoursPerWorkingMonth: intPtr(3), TerminationDate: nil},
		{EmployeeID: 2, EmployeeName: "B", HoursPerWorkingMonth: nil, TerminationDate: &term},
		{EmployeeID: 3, EmployeeName: "C", HoursPerWorkingMonth: intPtr(7), TerminationDate: nil},
	}

	s := view.New(rows)
	s.ToggleSort(view.ColumnHoursPerMonth)
	assert.Equal(t, []string{"C", "A", "B"}, names(s.Rows()))

	s.ToggleSort(view.ColumnHoursPerMonth)
	assert.False(t, s.SortDescending())
	assert.Equal(t, []string{"A", "C", "B"}, names(s.Rows()), "nulls stay last ascending too")

	s.ToggleSort(view.ColumnTermination)
	assert.Equal(t, "B", names(s.Rows())[0])
	assert.Equal(t, []string{"A", "C"}, names(s.Rows())[1:], "rows without a date sort last")
}

type fakeFetcher struct {
	rows []summary.Row
	err  error
}

func (f *fakeFetcher) FetchSummary(ctx context.Context) ([]summary.Row, error) {
	return f.rows, f.err
}

func TestLoad(t *testing.T) {
	s := view.Load(context.Background(), &fakeFetcher{rows: makeRows(3)})

	require.NoError(t, s.Err())
	assert.Len(t, s.Rows(), 3)
}

func TestLoad_FetchFailure(t *testing.T) {
	fetchErr := errors.New("connection refused")
	s := view.Load(context.Background(), &fakeFetcher{err: fetchErr})

	require.ErrorIs(t, s.Err(), fetchErr)
	assert.Empty(t, s.Rows())
	assert.Equal(t, "showing 0 to 0 of 0", s.RangeLabel())
}

func TestExportFlag(t *testing.T) {
	s := view.New(nil)

	require.True(t, s.StartExport())
	assert.True(t, s.Exporting())
	assert.False(t, s.StartExport(), "second trigger is rejected while one is in flight")

	s.FinishExport()
	assert.False(t, s.Exporting())
	assert.True(t, s.StartExport())
}
