package summary_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ihours/ihours-backend/internal/report/summary"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewWindow_PreviousSunSatWeek(t *testing.T) {
	start := date(2025, 1, 1)

	tests := []struct {
		name         string
		today        time.Time
		prevSunday   time.Time
		prevSaturday time.Time
	}{
		{
			// Monday 2025-06-02: current week began Sunday 2025-06-01
			name:         "monday",
			today:        date(2025, 6, 2),
			prevSunday:   date(2025, 5, 25),
			prevSaturday: date(2025, 5, 31),
		},
		{
			// Sunday itself starts a new week; previous week ends the day before
			name:         "sunday",
			today:        date(2025, 6, 1),
			prevSunday:   date(2025, 5, 25),
			prevSaturday: date(2025, 5, 31),
		},
		{
			name:         "saturday",
			today:        date(2025, 6, 7),
			prevSunday:   date(2025, 5, 25),
			prevSaturday: date(2025, 5, 31),
		},
		{
			name:         "time of day is dropped",
			today:        time.Date(2025, 6, 4, 17, 45, 12, 0, time.UTC),
			prevSunday:   date(2025, 5, 25),
			prevSaturday: date(2025, 5, 31),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := summary.NewWindow(start, tt.today)
			assert.Equal(t, start, w.Start)
			assert.Equal(t, summary.DateOnly(tt.today), w.End)
			assert.Equal(t, tt.prevSunday, w.PrevSunday)
			assert.Equal(t, tt.prevSaturday, w.PrevSaturday)
			// the previous window ends strictly before the current week
			assert.True(t, w.PrevSaturday.Before(w.End.AddDate(0, 0, -int(w.End.Weekday())).AddDate(0, 0, 1)))
		})
	}
}

func TestFormatHHMM(t *testing.T) {
	tests := []struct {
		minutes int64
		want    string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{59, "0:59"},
		{60, "1:00"},
		{125, "2:05"},
		{600, "10:00"},
		{6001, "100:01"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, summary.FormatHHMM(tt.minutes), "minutes=%d", tt.minutes)
	}
}

func TestBuildRow_DerivedHours(t *testing.T) {
	// 125 minutes across 2 distinct months: ceil((125/60)/2) = 2
	row := summary.BuildRow(summary.Activity{
		EmployeeID:      7,
		EmployeeName:    "Erika Beispiel",
		FTEPercentage:   80,
		TotalMinutes:    125,
		WorkingMonths:   2,
		WorkingWeeks:    3,
		PrevWeekMinutes: 61,
	})

	assert.Equal(t, "2:05", row.TotalHHMM)
	require.NotNil(t, row.HoursPerWorkingMonth)
	assert.Equal(t, 2, *row.HoursPerWorkingMonth)
	require.NotNil(t, row.HoursPerWorkingWeek)
	assert.Equal(t, 1, *row.HoursPerWorkingWeek)
	assert.Equal(t, 2, row.PrevWeekHours)
}

func TestBuildRow_NoActivity(t *testing.T) {
	// No activity records in the window: ratios are nil, not a division error
	row := summary.BuildRow(summary.Activity{
		EmployeeID:   9,
		EmployeeName: "Max Mustermann",
	})

	assert.Nil(t, row.HoursPerWorkingMonth)
	assert.Nil(t, row.HoursPerWorkingWeek)
	assert.Equal(t, "0:00", row.TotalHHMM)
	assert.Equal(t, 0, row.PrevWeekHours)
	assert.Nil(t, row.TerminationDate)
}

func TestBuildRows_Ordering(t *testing.T) {
	activities := []summary.Activity{
		{EmployeeID: 1, EmployeeName: "Low", TotalMinutes: 60, WorkingMonths: 1, WorkingWeeks: 1},     // 1 h/month
		{EmployeeID: 2, EmployeeName: "NoActivity"},                                                   // nil ratio
		{EmployeeID: 3, EmployeeName: "High", TotalMinutes: 1200, WorkingMonths: 2, WorkingWeeks: 4},  // 10 h/month
		{EmployeeID: 4, EmployeeName: "AlsoHigh", TotalMinutes: 600, WorkingMonths: 1, WorkingWeeks: 2}, // 10 h/month
		{EmployeeID: 5, EmployeeName: "AlsoNoActivity"},
	}

	rows := summary.BuildRows(activities)

	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.EmployeeID
	}

	// descending by hours/month, ties and nils by employee id ascending, nils last
	assert.Equal(t, []int64{3, 4, 1, 2, 5}, ids)
}

func TestCeilHours(t *testing.T) {
	assert.Equal(t, 0, summary.CeilHours(0))
	assert.Equal(t, 1, summary.CeilHours(1))
	assert.Equal(t, 1, summary.CeilHours(60))
	assert.Equal(t, 2, summary.CeilHours(61))
}
