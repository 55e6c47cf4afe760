package service

import (
	"context"
	"time"

	"github.com/ihours/ihours-backend/internal/report/summary"
	"github.com/ihours/ihours-backend/pkg/logger"
)

// ActivityRepository is the data-access dependency of the report service
type ActivityRepository interface {
	ActiveEmployeeActivity(ctx context.Context, w summary.Window) ([]summary.Activity, error)
}

// ReportService produces the active-employee work-hours summary, either as
// structured rows or as a generated workbook.
type ReportService struct {
	repo      ActivityRepository
	startDate time.Time
	logger    *logger.Logger
	now       func() time.Time
}

// NewReportService creates a new report service. startDate is the fixed lower
// bound of the report window; the upper bound is the current date at call
// time.
func NewReportService(repo ActivityRepository, startDate time.Time, log *logger.Logger) *ReportService {
	return &ReportService{
		repo:      repo,
		startDate: startDate,
		logger:    log,
		now:       time.Now,
	}
}

// Summary returns the derived summary rows for all active employees, ordered
// by hours per working month descending.
func (s *ReportService) Summary(ctx context.Context) ([]summary.Row, error) {
	window := summary.NewWindow(s.startDate, s.now())

	activities, err := s.repo.ActiveEmployeeActivity(ctx, window)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Time("window_start", window.Start).
		Time("window_end", window.End).
		Int("employees", len(activities)).
		Msg("summary aggregation fetched")

	return summary.BuildRows(activities), nil
}
