package teststeps

import (
	"context"
	"fmt"
	"strings"

	"github.com/autoqa/autoqa/pkg/core"
	errs "github.com/autoqa/autoqa/pkg/errors"
	"github.com/autoqa/autoqa/pkg/lumber"
	"github.com/autoqa/autoqa/pkg/utils"
	"github.com/gocraft/dbr"
	"github.com/gocraft/dbr/dialect"
	"github.com/jmoiron/sqlx"
)

type testStepStore struct {
	db     core.DB
	logger lumber.Logger
}

const insertQueryChunkSize = 1000

// New returns a new TestStepStore.
func New(db core.DB, logger lumber.Logger) core.TestStepStore {
	return &testStepStore{db: db, logger: logger}
}

// CreateInTx inserts the steps in slice order. The auto-incremented id
// preserves that order for reads.
func (t *testStepStore) CreateInTx(ctx context.Context, tx *sqlx.Tx, steps []*core.TestStep) error {
	return utils.Chunk(insertQueryChunkSize, len(steps), func(start int, end int) error {
		args := []interface{}{}
		placeholderGrps := []string{}
		for _, step := range steps[start:end] {
			placeholderGrps = append(placeholderGrps, "(?,?,?)")
			args = append(args, step.TestCaseID, step.Action, step.ExpectedResult)
		}
		interpolatedQuery, errI := dbr.InterpolateForDialect(fmt.Sprintf(insertQuery, strings.Join(placeholderGrps, ",")), args, dialect.MySQL)
		if errI != nil {
			return errs.SQLError(errI)
		}
		if _, err := tx.ExecContext(ctx, interpolatedQuery); err != nil {
			return errs.SQLError(err)
		}
		return nil
	})
}

func (t *testStepStore) DeleteByCaseInTx(ctx context.Context, tx *sqlx.Tx, caseID string) error {
	if _, err := tx.ExecContext(ctx, deleteByCaseQuery, caseID); err != nil {
		return errs.SQLError(err)
	}
	return nil
}

func (t *testStepStore) FindByCase(ctx context.Context, caseID string) ([]*core.TestStep, error) {
	steps := make([]*core.TestStep, 0)
	return steps, t.db.Execute(func(db *sqlx.DB) error {
		rows, err := db.NamedQueryContext(ctx, findByCaseQuery, map[string]interface{}{"case_id": caseID})
		if err != nil {
			return errs.SQLError(err)
		}
		defer rows.Close()
		for rows.Next() {
			step := new(core.TestStep)
			if err = rows.Scan(&step.ID, &step.TestCaseID, &step.Action, &step.ExpectedResult); err != nil {
				return errs.SQLError(err)
			}
			steps = append(steps, step)
		}
		return nil
	})
}

const insertQuery = `
INSERT
	INTO
	test_steps(
		test_case_id,
		action,
		expected_result
	)
VALUES %s
`

const deleteByCaseQuery = `
DELETE
FROM
	test_steps
WHERE
	test_case_id = ?
`

const findByCaseQuery = `
SELECT
	ts.id,
	ts.test_case_id,
	ts.action,
	ts.expected_result
FROM
	test_steps ts
WHERE
	ts.test_case_id = :case_id
ORDER BY
	ts.id
`
