package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ihours/ihours-backend/internal/report/client"
	"github.com/ihours/ihours-backend/internal/report/view"
	"github.com/ihours/ihours-backend/pkg/config"
	"github.com/ihours/ihours-backend/pkg/logger"
)

// newReportClient resolves the service address and timeout from config,
// with the --addr flag taking precedence
func newReportClient(addrFlag string, log *logger.Logger) (*client.ReportClient, error) {
	cfg, err := config.Load("report-cli")
	if err != nil {
		return nil, err
	}

	addr := cfg.Client.BaseURL
	if addrFlag != "" {
		addr = addrFlag
	}

	return client.NewReportClient(addr, cfg.Client.Timeout, log), nil
}

var sortColumns = map[string]view.Column{
	"id":              view.ColumnID,
	"name":            view.ColumnName,
	"fte":             view.ColumnFTE,
	"termination":     view.ColumnTermination,
	"total":           view.ColumnTotal,
	"months":          view.ColumnMonths,
	"hours-per-month": view.ColumnHoursPerMonth,
	"weeks":           view.ColumnWeeks,
	"hours-per-week":  view.ColumnHoursPerWeek,
	"prev-week":       view.ColumnPrevWeek,
}

type summaryCmd struct {
	addr   string
	search string
	sortBy string
	asc    bool
	page   int
}

func newSummaryCmd() *cobra.Command {
	sc := &summaryCmd{}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the work-hours summary for active employees",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.addr, "addr", "", "Report service base URL (overrides config)")
	cmd.Flags().StringVar(&sc.search, "search", "", "Filter rows by employee name")
	cmd.Flags().StringVar(&sc.sortBy, "sort", "", "Sort column (id, name, fte, termination, total, months, hours-per-month, weeks, hours-per-week, prev-week)")
	cmd.Flags().BoolVar(&sc.asc, "asc", false, "Sort ascending instead of descending")
	cmd.Flags().IntVar(&sc.page, "page", 1, "Page to display")

	return cmd
}

func (sc *summaryCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log := logger.New("report-cli", "development")
	rc, err := newReportClient(sc.addr, log)
	if err != nil {
		return err
	}

	state := view.Load(ctx, rc)
	if err := state.Err(); err != nil {
		return err
	}

	if sc.search != "" {
		state.SetSearch(sc.search)
	}
	if sc.sortBy != "" {
		col, ok := sortColumns[sc.sortBy]
		if !ok {
			return fmt.Errorf("unknown sort column %q", sc.sortBy)
		}
		state.ToggleSort(col)
		if sc.asc {
			state.ToggleSort(col)
		}
	}
	state.SetPage(sc.page)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tFTE %\tTERMINATED\tTOTAL\tMONTHS\tH/MONTH\tWEEKS\tH/WEEK\tPREV WEEK")
	for _, row := range state.Rows() {
		fmt.Fprintf(w, "%d\t%s\t%g\t%s\t%s\t%d\t%s\t%d\t%s\t%d\n",
			row.EmployeeID,
			row.EmployeeName,
			row.FTEPercentage,
			dateCell(row.TerminationDate),
			row.TotalHHMM,
			row.WorkingMonths,
			intCell(row.HoursPerWorkingMonth),
			row.WorkingWeeks,
			intCell(row.HoursPerWorkingWeek),
			row.PrevWeekHours,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (page %d of %d)\n",
		state.RangeLabel(), state.Page(), state.TotalPages())
	return nil
}

type exportCmd struct {
	addr string
	out  string
}

func newExportCmd() *cobra.Command {
	ec := &exportCmd{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the summary as an xlsx workbook",
		RunE:  ec.run,
	}

	cmd.Flags().StringVar(&ec.addr, "addr", "", "Report service base URL (overrides config)")
	cmd.Flags().StringVar(&ec.out, "out", ".", "Directory to write the workbook to")

	return cmd
}

func (ec *exportCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	log := logger.New("report-cli", "development")
	rc, err := newReportClient(ec.addr, log)
	if err != nil {
		return err
	}

	export, err := rc.DownloadExport(ctx)
	if err != nil {
		return err
	}

	path := filepath.Join(ec.out, export.Filename)
	if err := os.WriteFile(path, export.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", path, byteCount(len(export.Data)))
	return nil
}

func dateCell(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func intCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func byteCount(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f KiB", float64(n)/1024)
}

func main() {
	root := &cobra.Command{
		Use:   "report-cli",
		Short: "Work-hours summary report client",
	}
	root.AddCommand(newSummaryCmd())
	root.AddCommand(newExportCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
