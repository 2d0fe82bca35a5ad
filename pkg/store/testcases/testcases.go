package testcases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/autoqa/autoqa/pkg/core"
	errs "github.com/autoqa/autoqa/pkg/errors"
	"github.com/autoqa/autoqa/pkg/lumber"
	"github.com/autoqa/autoqa/pkg/utils"
	"github.com/gocraft/dbr"
	"github.com/gocraft/dbr/dialect"
	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v4/zero"
)

type testCaseStore struct {
	db     core.DB
	logger lumber.Logger
}

const insertQueryChunkSize = 1000

// New returns a new TestCaseStore.
func New(db core.DB, logger lumber.Logger) core.TestCaseStore {
	return &testCaseStore{db: db, logger: logger}
}

func (t *testCaseStore) CreateInTx(ctx context.Context, tx *sqlx.Tx, testCases []*core.TestCase) error {
	return utils.Chunk(insertQueryChunkSize, len(testCases), func(start int, end int) error {
		args := []interface{}{}
		placeholderGrps := []string{}
		for _, tc := range testCases[start:end] {
			placeholderGrps = append(placeholderGrps, "(?,?,?,?,?,?,?,?,?)")
			args = append(args, tc.ID, tc.ProjectID, tc.Title, tc.Description, tc.Module, tc.Priority, tc.Status, tc.Created, tc.Updated)
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

func (t *testCaseStore) UpdateInTx(ctx context.Context, tx *sqlx.Tx, caseID string, update *core.TestCaseUpdate) error {
	setClauses := []string{}
	args := []interface{}{}
	if update.Title != nil {
		setClauses = append(setClauses, "title = ?")
		args = append(args, *update.Title)
	}
	if update.Description != nil {
		setClauses = append(setClauses, "description = ?")
		args = append(args, *update.Description)
	}
	if update.Module != nil {
		setClauses = append(setClauses, "module = ?")
		args = append(args, *update.Module)
	}
	if update.Priority != nil {
		setClauses = append(setClauses, "priority = ?")
		args = append(args, *update.Priority)
	}
	if update.Status != nil {
		setClauses = append(setClauses, "status = ?")
		args = append(args, *update.Status)
	}
	setClauses = append(setClauses, "updated_at = ?")
	args = append(args, time.Now())
	args = append(args, caseID)

	query := fmt.Sprintf(updateQuery, strings.Join(setClauses, ", "))
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return errs.SQLError(err)
	}
	return nil
}

func (t *testCaseStore) DeleteInTx(ctx context.Context, tx *sqlx.Tx, caseID string) error {
	result, err := tx.ExecContext(ctx, deleteQuery, caseID)
	if err != nil {
		return errs.SQLError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errs.SQLError(err)
	}
	if affected == 0 {
		return errs.ErrRowsNotFound
	}
	return nil
}

func (t *testCaseStore) ExistsInTx(ctx context.Context, tx *sqlx.Tx, caseID string) error {
	var id string
	if err := tx.QueryRowContext(ctx, existsQuery, caseID).Scan(&id); err != nil {
		return errs.SQLError(err)
	}
	return nil
}

func (t *testCaseStore) Find(ctx context.Context, caseID string) (*core.TestCase, error) {
	testCase := new(core.TestCase)
	return testCase, t.db.Execute(func(db *sqlx.DB) error {
		rows, err := db.NamedQueryContext(ctx, findQuery, map[string]interface{}{"case_id": caseID})
		if err != nil {
			return errs.SQLError(err)
		}
		defer rows.Close()
		if !rows.Next() {
			return errs.ErrRowsNotFound
		}
		if err = rows.Scan(&testCase.ID,
			&testCase.ProjectID,
			&testCase.Title,
			&testCase.Description,
			&testCase.Module,
			&testCase.Priority,
			&testCase.Status,
			&testCase.Created); err != nil {
			return errs.SQLError(err)
		}
		return nil
	})
}

func (t *testCaseStore) FindAll(ctx context.Context, filters *core.TestCaseFilters) ([]*core.TestCase, error) {
	testCases := make([]*core.TestCase, 0)
	return testCases, t.db.Execute(func(db *sqlx.DB) error {
		args := map[string]interface{}{
			"project_id":  filters.ProjectID,
			"status":      filters.Status,
			"priority":    filters.Priority,
			"search_text": "%" + filters.SearchText + "%",
			"offset":      filters.Offset,
			"limit":       filters.Limit,
		}
		query := listQuery
		if filters.ProjectID.Valid {
			query += " AND tc.project_id = :project_id "
		}
		if filters.Status != "" {
			query += " AND tc.status = :status "
		}
		if filters.Priority != "" {
			query += " AND tc.priority = :priority "
		}
		if filters.SearchText != "" {
			query += " AND ( tc.title LIKE :search_text OR tc.module LIKE :search_text )"
		}
		query += " ORDER BY tc.created_at DESC LIMIT :limit OFFSET :offset"
		rows, err := db.NamedQueryContext(ctx, query, args)
		if err != nil {
			return errs.SQLError(err)
		}
		defer rows.Close()
		for rows.Next() {
			tc := new(core.TestCase)
			if err = rows.Scan(&tc.ID,
				&tc.ProjectID,
				&tc.Title,
				&tc.Description,
				&tc.Module,
				&tc.Priority,
				&tc.Status,
				&tc.Created); err != nil {
				return errs.SQLError(err)
			}
			testCases = append(testCases, tc)
		}
		if len(testCases) == 0 {
			return errs.ErrRowsNotFound
		}
		return nil
	})
}

func (t *testCaseStore) FindDailyStatusCounts(ctx context.Context, projectID zero.Int,
	startDate, endDate time.Time) ([]*core.DailyStatusCount, error) {
	counts := make([]*core.DailyStatusCount, 0)
	return counts, t.db.Execute(func(db *sqlx.DB) error {
		args := map[string]interface{}{
			"project_id":     projectID,
			"min_created_at": startDate,
			"max_created_at": endDate,
		}
		query := dailyStatusQuery
		projectWhere := ""
		if projectID.Valid {
			projectWhere = " AND tc.project_id = :project_id "
		}
		query = fmt.Sprintf(query, projectWhere)
		rows, err := db.NamedQueryContext(ctx, query, args)
		if err != nil {
			return errs.SQLError(err)
		}
		defer rows.Close()
		for rows.Next() {
			count := new(core.DailyStatusCount)
			if err = rows.Scan(&count.Date, &count.Status, &count.Total); err != nil {
				return errs.SQLError(err)
			}
			counts = append(counts, count)
		}
		return nil
	})
}

func (t *testCaseStore) FindPriorityCounts(ctx context.Context, projectID zero.Int) ([]*core.PriorityCount, error) {
	counts := make([]*core.PriorityCount, 0)
	return counts, t.db.Execute(func(db *sqlx.DB) error {
		args := map[string]interface{}{"project_id": projectID}
		query := priorityCountQuery
		projectWhere := ""
		if projectID.Valid {
			projectWhere = " AND tc.project_id = :project_id "
		}
		query = fmt.Sprintf(query, projectWhere)
		rows, err := db.NamedQueryContext(ctx, query, args)
		if err != nil {
			return errs.SQLError(err)
		}
		defer rows.Close()
		for rows.Next() {
			count := new(core.PriorityCount)
			if err = rows.Scan(&count.Priority, &count.Total); err != nil {
				return errs.SQLError(err)
			}
			counts = append(counts, count)
		}
		return nil
	})
}

func (t *testCaseStore) DetachProjectInTx(ctx context.Context, tx *sqlx.Tx, projectID int64) error {
	if _, err := tx.ExecContext(ctx, detachProjectQuery, projectID); err != nil {
		return errs.SQLError(err)
	}
	return nil
}

const insertQuery = `
INSERT
	INTO
	test_cases(
		id,
		project_id,
		title,
		description,
		module,
		priority,
		status,
		created_at,
		updated_at
	)
VALUES %s
`

const updateQuery = `
UPDATE
	test_cases
SET
	%s
WHERE
	id = ?
`

const deleteQuery = `
DELETE
FROM
	test_cases
WHERE
	id = ?
`

const existsQuery = `
SELECT
	id
FROM
	test_cases
WHERE
	id = ?
`

const findQuery = `
SELECT
	tc.id,
	tc.project_id,
	tc.title,
	tc.description,
	tc.module,
	tc.priority,
	tc.status,
	tc.created_at
FROM
	test_cases tc
WHERE
	tc.id = :case_id
`

const listQuery = `
SELECT
	tc.id,
	tc.project_id,
	tc.title,
	tc.description,
	tc.module,
	tc.priority,
	tc.status,
	tc.created_at
FROM
	test_cases tc
WHERE
	1 = 1
`

const dailyStatusQuery = `
SELECT
	DATE_FORMAT(tc.created_at, '%%Y-%%m-%%d') day,
	tc.status,
	COUNT(*) total
FROM
	test_cases tc
WHERE
	tc.created_at >= :min_created_at
	AND tc.created_at <= :max_created_at
	%s
GROUP BY
	day,
	tc.status
ORDER BY
	day
`

const priorityCountQuery = `
SELECT
	tc.priority,
	COUNT(*) total
FROM
	test_cases tc
WHERE
	1 = 1
	%s
GROUP BY
	tc.priority
`

const detachProjectQuery = `
UPDATE
	test_cases
SET
	project_id = NULL
WHERE
	project_id = ?
`
