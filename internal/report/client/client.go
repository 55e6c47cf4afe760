package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/ihours/ihours-backend/internal/report/summary"
	"github.com/ihours/ihours-backend/pkg/logger"
)

// ReportClient provides HTTP client access to the report service
type ReportClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewReportClient creates a new report service client
func NewReportClient(baseURL string, timeout time.Duration, log *logger.Logger) *ReportClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ReportClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
	}
}

// Export holds a downloaded workbook and the filename the service assigned it
type Export struct {
	Filename string
	Data     []byte
}

// FetchSummary fetches the work-hours summary rows
func (c *ReportClient) FetchSummary(ctx context.Context) ([]summary.Row, error) {
	httpReq, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/summary", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("base_url", c.baseURL).Msg("fetching work-hours summary")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to call report service")
		return nil, fmt.Errorf("failed to call report service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.serviceError("fetch summary", resp)
	}

	var rows []summary.Row
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug().Int("rows", len(rows)).Msg("summary fetched")
	return rows, nil
}

// DownloadExport downloads the summary as an xlsx workbook
func (c *ReportClient) DownloadExport(ctx context.Context) (*Export, error) {
	httpReq, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/summary?export=spreadsheet", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Info().Str("base_url", c.baseURL).Msg("downloading summary workbook")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to call report service")
		return nil, fmt.Errorf("failed to call report service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.serviceError("download export", resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	filename := exportFilename(resp.Header.Get("Content-Disposition"))

	c.logger.Info().
		Str("filename", filename).
		Int("bytes", len(data)).
		Msg("summary workbook downloaded")

	return &Export{Filename: filename, Data: data}, nil
}

// serviceError decodes the service's {"error": "..."} body into an error value
func (c *ReportClient) serviceError(op string, resp *http.Response) error {
	var errResp struct {
		Error string `json:"error"`
	}
	json.NewDecoder(resp.Body).Decode(&errResp)
	if errResp.Error != "" {
		return fmt.Errorf("%s failed with status %d: %s", op, resp.StatusCode, errResp.Error)
	}
	return fmt.Errorf("%s failed with status %d", op, resp.StatusCode)
}

// exportFilename extracts the filename from a Content-Disposition header,
// falling back to a fixed name when the header is missing or malformed
func exportFilename(disposition string) string {
	const fallback = "WorkHoursSummary.xlsx"
	if disposition == "" {
		return fallback
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil || params["filename"] == "" {
		return fallback
	}
	return params["filename"]
}
