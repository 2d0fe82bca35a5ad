package core

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// TestStep is a single ordered action inside a test case. Step order follows
// the auto-incremented id, insertion order is display order.
type TestStep struct {
	ID             int64  `db:"id" json:"id"`
	TestCaseID     string `db:"test_case_id" json:"-"`
	Action         string `db:"action" json:"action"`
	ExpectedResult string `db:"expected_result" json:"expectedResult"`
}

// TestStepStore defines datastore operation for working with test steps.
type TestStepStore interface {
	// CreateInTx persists new test steps in the datastore and executes the statement in the specified transaction.
	CreateInTx(ctx context.Context, tx *sqlx.Tx, steps []*TestStep) error
	// DeleteByCaseInTx removes all steps of a test case in the specified transaction.
	DeleteByCaseInTx(ctx context.Context, tx *sqlx.Tx, caseID string) error
	// FindByCase returns the steps of a test case in insertion order.
	FindByCase(ctx context.Context, caseID string) ([]*TestStep, error)
}
