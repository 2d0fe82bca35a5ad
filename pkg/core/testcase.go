package core

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v4/zero"
)

// TestCase represents a named, prioritized unit of verification.
type TestCase struct {
	ID          string      `db:"id" json:"id"`
	ProjectID   zero.Int    `db:"project_id" json:"projectId"`
	Title       string      `db:"title" json:"title"`
	Description string      `db:"description" json:"description"`
	Module      string      `db:"module" json:"module"`
	Priority    Priority    `db:"priority" json:"priority"`
	Status      Status      `db:"status" json:"status"`
	Created     time.Time   `db:"created_at" json:"createdAt"`
	Updated     time.Time   `db:"updated_at" json:"-"`
	TestSteps   []*TestStep `json:"testSteps,omitempty"`
}

// TestCaseUpdate carries the scalar field changes for an existing test case.
// Nil fields are left untouched. A non-nil TestSteps replaces the whole step
// collection, the original steps and their identifiers are discarded.
type TestCaseUpdate struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Module      *string          `json:"module"`
	Priority    *Priority        `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	Status      *Status          `json:"status" binding:"omitempty,oneof=PENDING PASS FAIL"`
	TestSteps   []*CandidateStep `json:"testSteps" binding:"omitempty,dive"`
}

// DailyStatusCount represents test case counts for one day, per status.
type DailyStatusCount struct {
	Date   string `db:"day" json:"date"`
	Status Status `db:"status" json:"status"`
	Total  int    `db:"total" json:"total"`
}

// PriorityCount represents test case counts per priority level.
type PriorityCount struct {
	Priority Priority `db:"priority" json:"priority"`
	Total    int      `db:"total" json:"total"`
}

// TestCaseFilters narrows test case listings.
type TestCaseFilters struct {
	ProjectID  zero.Int
	Status     string
	Priority   string
	SearchText string
	Offset     int
	Limit      int
}

// TestCaseStore defines datastore operation for working with test cases.
type TestCaseStore interface {
	// CreateInTx persists new test cases in the datastore and executes the statement in the specified transaction.
	CreateInTx(ctx context.Context, tx *sqlx.Tx, testCases []*TestCase) error
	// UpdateInTx updates the scalar fields of a test case in the specified transaction.
	UpdateInTx(ctx context.Context, tx *sqlx.Tx, caseID string, update *TestCaseUpdate) error
	// DeleteInTx removes a test case in the specified transaction.
	DeleteInTx(ctx context.Context, tx *sqlx.Tx, caseID string) error
	// ExistsInTx reports whether the test case exists, inside the specified transaction.
	ExistsInTx(ctx context.Context, tx *sqlx.Tx, caseID string) error
	// Find returns the test case for the given id, without its steps.
	Find(ctx context.Context, caseID string) (*TestCase, error)
	// FindAll returns the test cases matching the filters.
	FindAll(ctx context.Context, filters *TestCaseFilters) ([]*TestCase, error)
	// FindDailyStatusCounts returns per-day, per-status test case counts for dashboard charts.
	FindDailyStatusCounts(ctx context.Context, projectID zero.Int, startDate, endDate time.Time) ([]*DailyStatusCount, error)
	// FindPriorityCounts returns test case counts grouped by priority.
	FindPriorityCounts(ctx context.Context, projectID zero.Int) ([]*PriorityCount, error)
	// DetachProjectInTx unlinks all test cases of a project in the specified transaction.
	DetachProjectInTx(ctx context.Context, tx *sqlx.Tx, projectID int64) error
}
