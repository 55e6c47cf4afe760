// Package summary holds the derived-metrics contract for the active-employee
// work-hours report: the report window arithmetic, the output row schema and
// the hour/ratio derivations applied at the data-access boundary.
package summary

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Activity is the raw per-employee aggregate scanned from the database.
// TerminationDate is always NULL for rows that survive the active filter;
// the column is carried for schema symmetry with the ERP views.
type Activity struct {
	EmployeeID      int64      `db:"employee_id"`
	EmployeeName    string     `db:"employee_name"`
	FTEPercentage   float64    `db:"fte_percentage"`
	TerminationDate *time.Time `db:"termination_date"`
	TotalMinutes    int64      `db:"total_minutes"`
	WorkingMonths   int        `db:"working_months"`
	WorkingWeeks    int        `db:"working_weeks"`
	PrevWeekMinutes int64      `db:"prev_week_minutes"`
}

// Row is one summary row per active employee.
// HoursPerWorkingMonth and HoursPerWorkingWeek are nil when the employee has
// no working months/weeks in the window.
type Row struct {
	EmployeeID           int64      `json:"employee_id"`
	EmployeeName         string     `json:"employee_name"`
	FTEPercentage        float64    `json:"fte_percentage"`
	TerminationDate      *time.Time `json:"termination_date"`
	TotalHHMM            string     `json:"total_hhmm"`
	WorkingMonths        int        `json:"working_months"`
	HoursPerWorkingMonth *int       `json:"hours_per_working_month"`
	WorkingWeeks         int        `json:"working_weeks"`
	HoursPerWorkingWeek  *int       `json:"hours_per_working_week"`
	PrevWeekHours        int        `json:"prev_week_hours"`
}

// Window is the set of date parameters for one report query.
// All fields are date-only (midnight UTC) and both bounds are inclusive.
type Window struct {
	Start        time.Time
	End          time.Time // the reference date "today"
	PrevSunday   time.Time
	PrevSaturday time.Time
}

// NewWindow builds the report window [start, today] together with the most
// recently completed Sunday-to-Saturday week strictly before today's week.
// Weeks start on Sunday.
func NewWindow(start, today time.Time) Window {
	end := DateOnly(today)
	thisSunday := end.AddDate(0, 0, -int(end.Weekday()))
	prevSunday := thisSunday.AddDate(0, 0, -7)

	return Window{
		Start:        DateOnly(start),
		End:          end,
		PrevSunday:   prevSunday,
		PrevSaturday: prevSunday.AddDate(0, 0, 6),
	}
}

// DateOnly truncates a timestamp to midnight UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatHHMM renders a minute total as H:MM, hours unpadded and minutes
// zero-padded to two digits. 125 minutes becomes "2:05".
func FormatHHMM(minutes int64) string {
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

// CeilHours converts minutes to whole hours, rounding up.
func CeilHours(minutes int64) int {
	return int(math.Ceil(float64(minutes) / 60.0))
}

// hoursPer returns ceil((minutes/60) / denominator), or nil when the
// denominator is not positive. Never divides by zero.
func hoursPer(minutes int64, denominator int) *int {
	if denominator <= 0 {
		return nil
	}
	h := int(math.Ceil(float64(minutes) / 60.0 / float64(denominator)))
	return &h
}

// BuildRow derives the output row for one employee aggregate.
func BuildRow(a Activity) Row {
	return Row{
		EmployeeID:           a.EmployeeID,
		EmployeeName:         a.EmployeeName,
		FTEPercentage:        a.FTEPercentage,
		TerminationDate:      a.TerminationDate,
		TotalHHMM:            FormatHHMM(a.TotalMinutes),
		WorkingMonths:        a.WorkingMonths,
		HoursPerWorkingMonth: hoursPer(a.TotalMinutes, a.WorkingMonths),
		WorkingWeeks:         a.WorkingWeeks,
		HoursPerWorkingWeek:  hoursPer(a.TotalMinutes, a.WorkingWeeks),
		PrevWeekHours:        CeilHours(a.PrevWeekMinutes),
	}
}

// BuildRows derives and orders the full result set: hours per working month
// descending, rows without the ratio last, ties broken by employee id
// ascending.
func BuildRows(activities []Activity) []Row {
	rows := make([]Row, len(activities))
	for i, a := range activities {
		rows[i] = BuildRow(a)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].HoursPerWorkingMonth, rows[j].HoursPerWorkingMonth
		switch {
		case a == nil && b == nil:
			return rows[i].EmployeeID < rows[j].EmployeeID
		case a == nil:
			return false
		case b == nil:
			return true
		case *a != *b:
			return *a > *b
		default:
			return rows[i].EmployeeID < rows[j].EmployeeID
		}
	})

	return rows
}
