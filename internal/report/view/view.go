package view

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ihours/ihours-backend/internal/report/summary"
)

// PageSize is the fixed number of rows shown per page
const PageSize = 20

// Column identifies a sortable output column
type Column string

const (
	ColumnID            Column = "employee_id"
	ColumnName          Column = "employee_name"
	ColumnFTE           Column = "fte_percentage"
	ColumnTermination   Column = "termination_date"
	ColumnTotal         Column = "total_hhmm"
	ColumnMonths        Column = "working_months"
	ColumnHoursPerMonth Column = "hours_per_working_month"
	ColumnWeeks         Column = "working_weeks"
	ColumnHoursPerWeek  Column = "hours_per_working_week"
	ColumnPrevWeek      Column = "prev_week_hours"
)

// Fetcher supplies the full row set shown by the view
type Fetcher interface {
	FetchSummary(ctx context.Context) ([]summary.Row, error)
}

// State holds the table state of one session: the dataset fetched on load
// plus search, sort and pagination applied in memory. The zero direction
// for a newly selected sort column is descending.
type State struct {
	rows     []summary.Row
	filtered []summary.Row
	err      error

	search   string
	sortCol  Column
	sortDesc bool
	page     int

	exporting bool

	collator *collate.Collator
}

// New creates table state over an already fetched dataset
func New(rows []summary.Row) *State {
	s := &State{
		rows:     rows,
		page:     1,
		collator: collate.New(language.English),
	}
	s.apply()
	return s
}

// Load fetches the full dataset once and builds the table state for it.
// A fetch failure is carried in the state so the caller renders an error
// panel in place of the table.
func Load(ctx context.Context, f Fetcher) *State {
	rows, err := f.FetchSummary(ctx)
	if err != nil {
		return &State{err: err, page: 1, collator: collate.New(language.English)}
	}
	return New(rows)
}

// Err reports the load failure, if any
func (s *State) Err() error {
	return s.err
}

// SetSearch filters rows whose employee name contains the term,
// case-insensitive, and resets to the first page
func (s *State) SetSearch(term string) {
	s.search = term
	s.page = 1
	s.apply()
}

// Search returns the active search term
func (s *State) Search() string {
	return s.search
}

// ToggleSort selects a sort column. Selecting the active column flips the
// direction; selecting a different column sorts it descending.
func (s *State) ToggleSort(col Column) {
	if s.sortCol == col {
		s.sortDesc = !s.sortDesc
	} else {
		s.sortCol = col
		s.sortDesc = true
	}
	s.apply()
}

// SortColumn returns the active sort column, empty when unsorted
func (s *State) SortColumn() Column {
	return s.sortCol
}

// SortDescending reports the active sort direction
func (s *State) SortDescending() bool {
	return s.sortDesc
}

// SetPage moves to the given page, clamped to the valid range
func (s *State) SetPage(page int) {
	s.page = clampPage(page, len(s.filtered))
}

// Page returns the current page number
func (s *State) Page() int {
	return s.page
}

// TotalPages returns the page count for the filtered dataset, at least 1
func (s *State) TotalPages() int {
	pages := (len(s.filtered) + PageSize - 1) / PageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

// Rows returns the rows of the current page
func (s *State) Rows() []summary.Row {
	start := (s.page - 1) * PageSize
	if start >= len(s.filtered) {
		return nil
	}
	end := start + PageSize
	if end > len(s.filtered) {
		end = len(s.filtered)
	}
	return s.filtered[start:end]
}

// Range returns the 1-based row range shown on the current page and the
// filtered total. An empty dataset yields 0, 0, 0.
func (s *State) Range() (first, last, total int) {
	total = len(s.filtered)
	if total == 0 {
		return 0, 0, 0
	}
	first = (s.page-1)*PageSize + 1
	last = first + len(s.Rows()) - 1
	return first, last, total
}

// RangeLabel renders the pagination summary line
func (s *State) RangeLabel() string {
	first, last, total := s.Range()
	return fmt.Sprintf("showing %d to %d of %d", first, last, total)
}

// StartExport marks an export in flight. It returns false when one is
// already running, which only disables the export button; the view stays
// interactive either way.
func (s *State) StartExport() bool {
	if s.exporting {
		return false
	}
	s.exporting = true
	return true
}

// FinishExport clears the export flag
func (s *State) FinishExport() {
	s.exporting = false
}

// Exporting reports whether an export download is in flight
func (s *State) Exporting() bool {
	return s.exporting
}

// apply recomputes the filtered and sorted dataset and clamps the page
func (s *State) apply() {
	if s.search == "" {
		s.filtered = append([]summary.Row(nil), s.rows...)
	} else {
		term := strings.ToLower(s.search)
		s.filtered = s.filtered[:0:0]
		for _, row := range s.rows {
			if strings.Contains(strings.ToLower(row.EmployeeName), term) {
				s.filtered = append(s.filtered, row)
			}
		}
	}

	if s.sortCol != "" {
		sort.SliceStable(s.filtered, func(i, j int) bool {
			return s.less(s.filtered[i], s.filtered[j])
		})
	}

	s.page = clampPage(s.page, len(s.filtered))
}

// less orders two rows by the active column. Null values sort last
// regardless of direction.
func (s *State) less(a, b summary.Row) bool {
	aNull, bNull := isNull(a, s.sortCol), isNull(b, s.sortCol)
	if aNull || bNull {
		return bNull && !aNull
	}
	c := s.compare(a, b)
	if s.sortDesc {
		return c > 0
	}
	return c < 0
}

func (s *State) compare(a, b summary.Row) int {
	switch s.sortCol {
	case ColumnID:
		return cmpInt64(a.EmployeeID, b.EmployeeID)
	case ColumnName:
		return s.collator.CompareString(a.EmployeeName, b.EmployeeName)
	case ColumnFTE:
		return cmpFloat(a.FTEPercentage, b.FTEPercentage)
	case ColumnTermination:
		return a.TerminationDate.Compare(*b.TerminationDate)
	case ColumnTotal:
		return cmpInt(parseHHMM(a.TotalHHMM), parseHHMM(b.TotalHHMM))
	case ColumnMonths:
		return cmpInt(a.WorkingMonths, b.WorkingMonths)
	case ColumnHoursPerMonth:
		return cmpInt(*a.HoursPerWorkingMonth, *b.HoursPerWorkingMonth)
	case ColumnWeeks:
		return cmpInt(a.WorkingWeeks, b.WorkingWeeks)
	case ColumnHoursPerWeek:
		return cmpInt(*a.HoursPerWorkingWeek, *b.HoursPerWorkingWeek)
	case ColumnPrevWeek:
		return cmpInt(a.PrevWeekHours, b.PrevWeekHours)
	}
	return 0
}

func isNull(row summary.Row, col Column) bool {
	switch col {
	case ColumnTermination:
		return row.TerminationDate == nil
	case ColumnHoursPerMonth:
		return row.HoursPerWorkingMonth == nil
	case ColumnHoursPerWeek:
		return row.HoursPerWorkingWeek == nil
	}
	return false
}

func clampPage(page, total int) int {
	if page < 1 {
		return 1
	}
	max := (total + PageSize - 1) / PageSize
	if max < 1 {
		max = 1
	}
	if page > max {
		return max
	}
	return page
}

// parseHHMM converts an "H:MM" duration back to minutes for comparison
func parseHHMM(v string) int {
	h, m, ok := strings.Cut(v, ":")
	if !ok {
		return 0
	}
	hours, _ := strconv.Atoi(h)
	minutes, _ := strconv.Atoi(m)
	return hours*60 + minutes
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
