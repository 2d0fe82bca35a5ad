package authoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/autoqa/autoqa/pkg/core"
	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v4/zero"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...interface{}) {}
func (nopLogger) Infof(format string, args ...interface{})  {}
func (nopLogger) Warnf(format string, args ...interface{})  {}
func (nopLogger) Errorf(format string, args ...interface{}) {}
func (nopLogger) Fatalf(format string, args ...interface{}) {}

// fakeDB runs the transaction body with a nil tx so leaf store fakes can
// record the calls.
type fakeDB struct{}

func (fakeDB) Close() error                               { return nil }
func (fakeDB) Execute(fn func(conn *sqlx.DB) error) error { return fn(nil) }
func (fakeDB) ExecuteTransactionWithRetry(ctx context.Context, maxRetries uint, delay, maxJitter time.Duration,
	errorMsg string, fn func(tx *sqlx.Tx) error) error {
	return fn(nil)
}

type fakeTestCaseStore struct {
	core.TestCaseStore
	created   []*core.TestCase
	updated   map[string]*core.TestCaseUpdate
	deleted   []string
	createErr error
	existsErr error
}

func (f *fakeTestCaseStore) CreateInTx(ctx context.Context, tx *sqlx.Tx, testCases []*core.TestCase) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, testCases...)
	return nil
}

func (f *fakeTestCaseStore) UpdateInTx(ctx context.Context, tx *sqlx.Tx, caseID string, update *core.TestCaseUpdate) error {
	if f.updated == nil {
		f.updated = map[string]*core.TestCaseUpdate{}
	}
	f.updated[caseID] = update
	return nil
}

func (f *fakeTestCaseStore) DeleteInTx(ctx context.Context, tx *sqlx.Tx, caseID string) error {
	f.deleted = append(f.deleted, caseID)
	return nil
}

func (f *fakeTestCaseStore) ExistsInTx(ctx context.Context, tx *sqlx.Tx, caseID string) error {
	return f.existsErr
}

type fakeTestStepStore struct {
	core.TestStepStore
	created     []*core.TestStep
	deletedCase []string
	createErr   error
}

func (f *fakeTestStepStore) CreateInTx(ctx context.Context, tx *sqlx.Tx, steps []*core.TestStep) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, steps...)
	return nil
}

func (f *fakeTestStepStore) DeleteByCaseInTx(ctx context.Context, tx *sqlx.Tx, caseID string) error {
	f.deletedCase = append(f.deletedCase, caseID)
	return nil
}

func TestSaveBatch(t *testing.T) {
	caseStore := &fakeTestCaseStore{}
	stepStore := &fakeTestStepStore{}
	store := New(fakeDB{}, caseStore, stepStore, nopLogger{})

	candidates := []*core.SaveCandidate{
		{
			Title:    "Login works",
			Priority: core.PriorityHigh,
			Status:   core.StatusPass,
			TestSteps: []*core.CandidateStep{
				{ID: "99", Action: "open page", ExpectedResult: "renders"},
				{ID: "1", Action: "submit form", ExpectedResult: "redirects"},
			},
		},
		{Title: "Reset password", Priority: core.PriorityLow},
	}

	ids, err := store.SaveBatch(context.Background(), zero.IntFrom(7), candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 case ids, got %d", len(ids))
	}
	if len(caseStore.created) != 2 {
		t.Fatalf("expected 2 test cases inserted, got %d", len(caseStore.created))
	}
	if caseStore.created[0].ID != ids[0] || caseStore.created[1].ID != ids[1] {
		t.Errorf("returned ids do not match inserted cases")
	}
	if got := caseStore.created[0].ProjectID.ValueOrZero(); got != 7 {
		t.Errorf("expected project id 7, got %d", got)
	}
	if caseStore.created[0].Status != core.StatusPass {
		t.Errorf("expected submitted status preserved, got %s", caseStore.created[0].Status)
	}
	if caseStore.created[1].Status != core.StatusPending {
		t.Errorf("expected missing status to default to PENDING, got %s", caseStore.created[1].Status)
	}
	if len(stepStore.created) != 2 {
		t.Fatalf("expected 2 steps inserted, got %d", len(stepStore.created))
	}
	// client supplied step ids are discarded, insert order carries the order
	if stepStore.created[0].ID != 0 {
		t.Errorf("expected client step id to be discarded")
	}
	if stepStore.created[0].Action != "open page" || stepStore.created[1].Action != "submit form" {
		t.Errorf("steps not inserted in submitted order")
	}
	if stepStore.created[0].TestCaseID != ids[0] {
		t.Errorf("step not linked to its test case")
	}
}

func TestSaveBatchRollsBackOnStepFailure(t *testing.T) {
	caseStore := &fakeTestCaseStore{}
	stepStore := &fakeTestStepStore{createErr: errors.New("insert failed")}
	store := New(fakeDB{}, caseStore, stepStore, nopLogger{})

	candidates := []*core.SaveCandidate{
		{Title: "t", Priority: core.PriorityLow, TestSteps: []*core.CandidateStep{{Action: "a"}}},
	}
	ids, err := store.SaveBatch(context.Background(), zero.Int{}, candidates)
	if err == nil {
		t.Fatalf("expected error")
	}
	if ids != nil {
		t.Errorf("expected no ids on failure, got %v", ids)
	}
}

func TestUpdateReplacesSteps(t *testing.T) {
	caseStore := &fakeTestCaseStore{}
	stepStore := &fakeTestStepStore{}
	store := New(fakeDB{}, caseStore, stepStore, nopLogger{})

	title := "new title"
	update := &core.TestCaseUpdate{
		Title:     &title,
		TestSteps: []*core.CandidateStep{{Action: "a", ExpectedResult: "r"}},
	}
	if err := store.Update(context.Background(), "case-1", update); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if caseStore.updated["case-1"] != update {
		t.Errorf("expected scalar update to be applied")
	}
	if len(stepStore.deletedCase) != 1 || stepStore.deletedCase[0] != "case-1" {
		t.Errorf("expected existing steps to be deleted")
	}
	if len(stepStore.created) != 1 || stepStore.created[0].TestCaseID != "case-1" {
		t.Errorf("expected replacement steps to be inserted")
	}
}

func TestUpdateWithoutStepsKeepsSteps(t *testing.T) {
	caseStore := &fakeTestCaseStore{}
	stepStore := &fakeTestStepStore{}
	store := New(fakeDB{}, caseStore, stepStore, nopLogger{})

	title := "new title"
	if err := store.Update(context.Background(), "case-1", &core.TestCaseUpdate{Title: &title}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stepStore.deletedCase) != 0 {
		t.Errorf("expected steps to be left untouched")
	}
}

func TestUpdateUnknownCase(t *testing.T) {
	wantErr := errors.New("not found")
	caseStore := &fakeTestCaseStore{existsErr: wantErr}
	store := New(fakeDB{}, caseStore, &fakeTestStepStore{}, nopLogger{})

	err := store.Update(context.Background(), "missing", &core.TestCaseUpdate{})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected existence error, got %v", err)
	}
	if len(caseStore.updated) != 0 {
		t.Errorf("expected no update for missing case")
	}
}

func TestDelete(t *testing.T) {
	caseStore := &fakeTestCaseStore{}
	stepStore := &fakeTestStepStore{}
	store := New(fakeDB{}, caseStore, stepStore, nopLogger{})

	if err := store.Delete(context.Background(), "case-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stepStore.deletedCase) != 1 || stepStore.deletedCase[0] != "case-1" {
		t.Errorf("expected steps deleted before the case")
	}
	if len(caseStore.deleted) != 1 || caseStore.deleted[0] != "case-1" {
		t.Errorf("expected the case to be deleted")
	}
}
