package repository

import (
	"context"

	"github.com/ihours/ihours-backend/internal/report/summary"
	"github.com/ihours/ihours-backend/pkg/database"
	"github.com/ihours/ihours-backend/pkg/errors"
)

// SummaryRepository reads per-employee work-hours aggregates from the ERP
// database. All access is read-only.
type SummaryRepository struct {
	db *database.DB
}

// NewSummaryRepository creates a new summary repository
func NewSummaryRepository(db *database.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// activeEmployeeActivityQuery aggregates, per employee, total minutes worked
// in the report window, distinct working months, distinct Sunday-start
// working weeks and previous-week minutes, picks the effective FTE term for
// the reference date and resolves the latest ended position term. Employees
// with any ended position term are filtered out.
//
// Parameters: $1 window start, $2 window end (= reference date), $3 previous
// Sunday, $4 previous Saturday.
const activeEmployeeActivityQuery = `
WITH minutes_per_employee AS (
    SELECT har.employee_id, SUM(COALESCE(har.duration_minutes, 0)) AS total_minutes
    FROM hours_activity_reports har
    WHERE har.calendar_day BETWEEN $1 AND $2
    GROUP BY har.employee_id
),
working_months_from_hours AS (
    SELECT har.employee_id, COUNT(DISTINCT date_trunc('month', har.calendar_day)) AS working_months
    FROM hours_activity_reports har
    WHERE har.calendar_day BETWEEN $1 AND $2
    GROUP BY har.employee_id
),
working_weeks_from_hours AS (
    SELECT har.employee_id,
           COUNT(DISTINCT (har.calendar_day - (EXTRACT(DOW FROM har.calendar_day))::int)) AS working_weeks
    FROM hours_activity_reports har
    WHERE har.calendar_day BETWEEN $1 AND $2
    GROUP BY har.employee_id
),
prev_week_minutes_per_employee AS (
    SELECT har.employee_id, SUM(COALESCE(har.duration_minutes, 0)) AS prev_week_minutes
    FROM hours_activity_reports har
    WHERE har.calendar_day BETWEEN $3 AND $4
    GROUP BY har.employee_id
),
current_or_last_fte AS (
    SELECT DISTINCT ON (eft.employee_id) eft.employee_id, eft.percentage AS effective_fte
    FROM employee_fte_terms eft
    ORDER BY eft.employee_id,
             CASE
                 WHEN eft.start_date <= $2 AND (eft.end_date IS NULL OR eft.end_date > $2) THEN 1
                 WHEN eft.end_date < $2 THEN 2
                 ELSE 3
             END,
             COALESCE(eft.end_date, DATE '9999-12-31') DESC,
             eft.start_date DESC
),
latest_ended_position AS (
    SELECT ept.employee_id, MAX(ept.end_date) AS termination_date
    FROM employee_position_terms ept
    WHERE ept.end_date IS NOT NULL
    GROUP BY ept.employee_id
)
SELECT e.id AS employee_id,
       CONCAT(e.first_name, ' ', e.last_name) AS employee_name,
       COALESCE(f.effective_fte, 0) AS fte_percentage,
       lep.termination_date,
       COALESCE(m.total_minutes, 0) AS total_minutes,
       COALESCE(wm.working_months, 0) AS working_months,
       COALESCE(ww.working_weeks, 0) AS working_weeks,
       COALESCE(pw.prev_week_minutes, 0) AS prev_week_minutes
FROM employees e
LEFT JOIN minutes_per_employee m ON m.employee_id = e.id
LEFT JOIN working_months_from_hours wm ON wm.employee_id = e.id
LEFT JOIN working_weeks_from_hours ww ON ww.employee_id = e.id
LEFT JOIN prev_week_minutes_per_employee pw ON pw.employee_id = e.id
LEFT JOIN current_or_last_fte f ON f.employee_id = e.id
LEFT JOIN latest_ended_position lep ON lep.employee_id = e.id
WHERE lep.termination_date IS NULL
ORDER BY e.id`

// ActiveEmployeeActivity runs the aggregation for the given window and
// returns one aggregate per active employee. Any database failure is wrapped
// into the generic data-fetch error; there are no partial results.
func (r *SummaryRepository) ActiveEmployeeActivity(ctx context.Context, w summary.Window) ([]summary.Activity, error) {
	var activities []summary.Activity

	err := r.db.SelectContext(ctx, &activities, activeEmployeeActivityQuery,
		w.Start, w.End, w.PrevSunday, w.PrevSaturday)
	if err != nil {
		return nil, errors.DataFetch(err)
	}

	return activities, nil
}
