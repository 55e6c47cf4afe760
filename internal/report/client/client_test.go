package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ihours/ihours-backend/internal/report/client"
	"github.com/ihours/ihours-backend/pkg/logger"
)

func newClient(baseURL string) *client.ReportClient {
	return client.NewReportClient(baseURL, 5*time.Second, logger.New("test", "test"))
}

func TestFetchSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/summary", r.URL.Path)
		require.Empty(t, r.URL.Query().Get("export"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"employee_id":7,"employee_name":"Anna Alvarez","fte_percentage":80,"termination_date":null,"total_hhmm":"3:06","working_months":3,"hours_per_working_month":2,"working_weeks":4,"hours_per_working_week":1,"prev_week_hours":2},
			{"employee_id":9,"employee_name":"Omar Ortiz","fte_percentage":100,"termination_date":null,"total_hhmm":"0:00","working_months":0,"hours_per_working_month":null,"working_weeks":0,"hours_per_working_week":null,"prev_week_hours":0}
		]`))
	}))
	defer srv.Close()

	rows, err := newClient(srv.URL).FetchSummary(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(7), rows[0].EmployeeID)
	assert.Equal(t, "Anna Alvarez", rows[0].EmployeeName)
	assert.Equal(t, "3:06", rows[0].TotalHHMM)
	assert.Equal(t, 2, *rows[0].HoursPerWorkingMonth)
	assert.Nil(t, rows[1].HoursPerWorkingMonth)
	assert.Nil(t, rows[1].HoursPerWorkingWeek)
}

func TestFetchSummary_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Failed to fetch employee data"}`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).FetchSummary(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
	assert.Contains(t, err.Error(), "Failed to fetch employee data")
}

func TestFetchSummary_ConnectionRefused(t *testing.T) {
	_, err := newClient("http://127.0.0.1:1").FetchSummary(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to call report service")
}

func TestDownloadExport(t *testing.T) {
	workbook := []byte("PK\x03\x04 pretend workbook")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/summary", r.URL.Path)
		require.Equal(t, "spreadsheet", r.URL.Query().Get("export"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="ActiveEmployees_WorkHoursSummary_2025-06-01T12-30-00.xlsx"`)
		w.Write(workbook)
	}))
	defer srv.Close()

	export, err := newClient(srv.URL).DownloadExport(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ActiveEmployees_WorkHoursSummary_2025-06-01T12-30-00.xlsx", export.Filename)
	assert.Equal(t, workbook, export.Data)
}

func TestDownloadExport_MissingDisposition(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("PK"))
	}))
	defer srv.Close()

	export, err := newClient(srv.URL).DownloadExport(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "WorkHoursSummary.xlsx", export.Filename)
}

func TestDownloadExport_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Failed to fetch employee data"}`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).DownloadExport(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "download export failed with status 500")
}
