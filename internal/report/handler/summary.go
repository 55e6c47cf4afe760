package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/ihours/ihours-backend/internal/report/service"
	"github.com/ihours/ihours-backend/internal/report/summary"
	"github.com/ihours/ihours-backend/pkg/httputil"
	"github.com/ihours/ihours-backend/pkg/logger"
)

// SummaryService is the service dependency of the summary endpoint
type SummaryService interface {
	Summary(ctx context.Context) ([]summary.Row, error)
	ExportXLSX(ctx context.Context) ([]byte, error)
}

// SummaryHandler handles the work-hours summary endpoint
type SummaryHandler struct {
	service SummaryService
	logger  *logger.Logger
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(svc SummaryService, log *logger.Logger) *SummaryHandler {
	return &SummaryHandler{
		service: svc,
		logger:  log,
	}
}

// GetSummary returns the summary rows as JSON, or as a downloadable workbook
// when the spreadsheet export is requested.
// GET /summary
// GET /summary?export=spreadsheet
func (h *SummaryHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("export") {
	case "spreadsheet", "excel":
		h.exportSpreadsheet(w, r)
	default:
		rows, err := h.service.Summary(r.Context())
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to fetch summary")
			httputil.Error(w, err)
			return
		}

		httputil.JSON(w, http.StatusOK, rows)
	}
}

func (h *SummaryHandler) exportSpreadsheet(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.ExportXLSX(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to generate summary workbook")
		httputil.Error(w, err)
		return
	}

	filename := service.ExportFilename(time.Now())
	httputil.Attachment(w, service.ExportContentType, filename, data)
}
