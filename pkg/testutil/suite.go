package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ihours/ihours-backend/pkg/database"
	"github.com/ihours/ihours-backend/pkg/logger"
)

var (
	// Global test container (shared across all integration tests)
	globalContainer *PostgresContainer
	globalDB        *sqlx.DB
	containerOnce   sync.Once
	containerErr    error
)

// IntegrationSuite provides a base for integration tests with real PostgreSQL
type IntegrationSuite struct {
	Container *PostgresContainer
	RawDB     *sqlx.DB
	DB        *database.DB
	Logger    *logger.Logger
}

// NewIntegrationSuite creates a new integration test suite.
// Call this in TestMain to set up shared test infrastructure.
//
// Usage:
//
//	var suite *testutil.IntegrationSuite
//
//	func TestMain(m *testing.M) {
//	    ctx := context.Background()
//
//	    suite, err := testutil.NewIntegrationSuite(ctx)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer suite.Cleanup(ctx)
//
//	    os.Exit(m.Run())
//	}
func NewIntegrationSuite(ctx context.Context) (*IntegrationSuite, error) {
	container, db, err := getOrCreateContainer(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.New("test", "test")
	wrappedDB, err := database.NewWithDSN(container.DSN, log)
	if err != nil {
		return nil, err
	}

	if err := container.CreateERPSchema(ctx, db); err != nil {
		return nil, err
	}

	return &IntegrationSuite{
		Container: container,
		RawDB:     db,
		DB:        wrappedDB,
		Logger:    log,
	}, nil
}

// getOrCreateContainer returns the shared test container
func getOrCreateContainer(ctx context.Context) (*PostgresContainer, *sqlx.DB, error) {
	containerOnce.Do(func() {
		globalContainer, containerErr = NewPostgresContainer(ctx, DefaultPostgresConfig())
		if containerErr != nil {
			return
		}
		globalDB, containerErr = globalContainer.Connect(ctx)
	})

	return globalContainer, globalDB, containerErr
}

// Cleanup terminates shared test infrastructure
func (s *IntegrationSuite) Cleanup(ctx context.Context) {
	if s.DB != nil {
		s.DB.Close()
	}
	if s.RawDB != nil {
		s.RawDB.Close()
	}
	if s.Container != nil {
		s.Container.Terminate(ctx)
	}
}

// Reset truncates all ERP fixture tables between tests
func (s *IntegrationSuite) Reset(t *testing.T, ctx context.Context) {
	t.Helper()
	_, err := s.RawDB.ExecContext(ctx, `
		TRUNCATE hours_activity_reports, employee_fte_terms, employee_position_terms, employees
	`)
	if err != nil {
		t.Fatalf("failed to reset fixture tables: %v", err)
	}
}

// SeedEmployee inserts an employee row
func (s *IntegrationSuite) SeedEmployee(t *testing.T, ctx context.Context, id int64, firstName, lastName string) {
	t.Helper()
	_, err := s.RawDB.ExecContext(ctx,
		`INSERT INTO employees (id, first_name, last_name) VALUES ($1, $2, $3)`,
		id, firstName, lastName)
	if err != nil {
		t.Fatalf("failed to seed employee: %v", err)
	}
}

// SeedFTETerm inserts an FTE term; endDate may be nil for an open term
func (s *IntegrationSuite) SeedFTETerm(t *testing.T, ctx context.Context, employeeID int64, percentage float64, startDate time.Time, endDate *time.Time) {
	t.Helper()
	_, err := s.RawDB.ExecContext(ctx,
		`INSERT INTO employee_fte_terms (employee_id, percentage, start_date, end_date) VALUES ($1, $2, $3, $4)`,
		employeeID, percentage, startDate, endDate)
	if err != nil {
		t.Fatalf("failed to seed FTE term: %v", err)
	}
}

// SeedPositionTerm inserts a position term; endDate may be nil for an open position
func (s *IntegrationSuite) SeedPositionTerm(t *testing.T, ctx context.Context, employeeID int64, endDate *time.Time) {
	t.Helper()
	_, err := s.RawDB.ExecContext(ctx,
		`INSERT INTO employee_position_terms (employee_id, end_date) VALUES ($1, $2)`,
		employeeID, endDate)
	if err != nil {
		t.Fatalf("failed to seed position term: %v", err)
	}
}

// SeedActivity inserts a daily activity record; durationMinutes may be nil
func (s *IntegrationSuite) SeedActivity(t *testing.T, ctx context.Context, employeeID int64, day time.Time, durationMinutes *int64) {
	t.Helper()
	_, err := s.RawDB.ExecContext(ctx,
		`INSERT INTO hours_activity_reports (employee_id, calendar_day, duration_minutes) VALUES ($1, $2, $3)`,
		employeeID, day, durationMinutes)
	if err != nil {
		t.Fatalf("failed to seed activity record: %v", err)
	}
}
