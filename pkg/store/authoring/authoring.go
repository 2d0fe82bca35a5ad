package authoring

import (
	"context"
	"time"

	"github.com/autoqa/autoqa/pkg/core"
	"github.com/autoqa/autoqa/pkg/lumber"
	"github.com/autoqa/autoqa/pkg/utils"
	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v4/zero"
)

const (
	maxRetries = 3
	delay      = 200 * time.Millisecond
	maxJitter  = 100 * time.Millisecond
	errMsg     = "failed to perform authoring transaction"
)

// authoringStore executes all the queries needed to author test cases and
// their steps in a transaction
type authoringStore struct {
	db            core.DB
	testCaseStore core.TestCaseStore
	testStepStore core.TestStepStore
	logger        lumber.Logger
}

// New returns a new AuthoringStore
func New(db core.DB,
	testCaseStore core.TestCaseStore,
	testStepStore core.TestStepStore,
	logger lumber.Logger,
) core.AuthoringStore {
	return &authoringStore{
		db:            db,
		testCaseStore: testCaseStore,
		testStepStore: testStepStore,
		logger:        logger,
	}
}

// SaveBatch persists the whole batch in one transaction. If any case or step
// insert fails, nothing from the batch is kept.
func (as *authoringStore) SaveBatch(ctx context.Context, projectID zero.Int, candidates []*core.SaveCandidate) ([]string, error) {
	now := time.Now()
	testCases := make([]*core.TestCase, 0, len(candidates))
	steps := make([]*core.TestStep, 0)
	caseIDs := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		caseID := utils.GenerateUUID()
		caseIDs = append(caseIDs, caseID)
		status := candidate.Status
		if status == "" {
			status = core.StatusPending
		}
		testCases = append(testCases, &core.TestCase{
			ID:          caseID,
			ProjectID:   projectID,
			Title:       candidate.Title,
			Description: candidate.Description,
			Module:      candidate.Module,
			Priority:    candidate.Priority,
			Status:      status,
			Created:     now,
			Updated:     now,
		})
		for _, step := range candidate.TestSteps {
			steps = append(steps, &core.TestStep{
				TestCaseID:     caseID,
				Action:         step.Action,
				ExpectedResult: step.ExpectedResult,
			})
		}
	}

	err := as.db.ExecuteTransactionWithRetry(ctx, maxRetries, delay, maxJitter, errMsg,
		func(tx *sqlx.Tx) error {
			if err := as.testCaseStore.CreateInTx(ctx, tx, testCases); err != nil {
				as.logger.Errorf("failed to insert test cases, error: %v", err)
				return err
			}
			if len(steps) > 0 {
				if err := as.testStepStore.CreateInTx(ctx, tx, steps); err != nil {
					as.logger.Errorf("failed to insert test steps, error: %v", err)
					return err
				}
			}
			return nil
		})
	if err != nil {
		return nil, err
	}
	return caseIDs, nil
}

// Update applies the scalar changes and, when a step collection is supplied,
// replaces all existing steps of the case in the same transaction.
func (as *authoringStore) Update(ctx context.Context, caseID string, update *core.TestCaseUpdate) error {
	var steps []*core.TestStep
	if update.TestSteps != nil {
		steps = make([]*core.TestStep, 0, len(update.TestSteps))
		for _, step := range update.TestSteps {
			steps = append(steps, &core.TestStep{
				TestCaseID:     caseID,
				Action:         step.Action,
				ExpectedResult: step.ExpectedResult,
			})
		}
	}
	return as.db.ExecuteTransactionWithRetry(ctx, maxRetries, delay, maxJitter, errMsg,
		func(tx *sqlx.Tx) error {
			if err := as.testCaseStore.ExistsInTx(ctx, tx, caseID); err != nil {
				return err
			}
			if err := as.testCaseStore.UpdateInTx(ctx, tx, caseID, update); err != nil {
				as.logger.Errorf("failed to update test case, caseID %s, error: %v", caseID, err)
				return err
			}
			if update.TestSteps == nil {
				return nil
			}
			if err := as.testStepStore.DeleteByCaseInTx(ctx, tx, caseID); err != nil {
				as.logger.Errorf("failed to delete test steps, caseID %s, error: %v", caseID, err)
				return err
			}
			if len(steps) > 0 {
				if err := as.testStepStore.CreateInTx(ctx, tx, steps); err != nil {
					as.logger.Errorf("failed to insert test steps, caseID %s, error: %v", caseID, err)
					return err
				}
			}
			return nil
		})
}

// Delete removes the test case and its steps in one transaction.
func (as *authoringStore) Delete(ctx context.Context, caseID string) error {
	return as.db.ExecuteTransactionWithRetry(ctx, maxRetries, delay, maxJitter, errMsg,
		func(tx *sqlx.Tx) error {
			if err := as.testStepStore.DeleteByCaseInTx(ctx, tx, caseID); err != nil {
				as.logger.Errorf("failed to delete test steps, caseID %s, error: %v", caseID, err)
				return err
			}
			if err := as.testCaseStore.DeleteInTx(ctx, tx, caseID); err != nil {
				as.logger.Errorf("failed to delete test case, caseID %s, error: %v", caseID, err)
				return err
			}
			return nil
		})
}
