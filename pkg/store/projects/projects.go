package projects

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/autoqa/autoqa/pkg/core"
	errs "github.com/autoqa/autoqa/pkg/errors"
	"github.com/autoqa/autoqa/pkg/lumber"
	"github.com/jmoiron/sqlx"
)

const (
	maxRetries = 3
	delay      = 200 * time.Millisecond
	maxJitter  = 100 * time.Millisecond
	errMsg     = "failed to perform projects transaction"
)

type projectStore struct {
	db            core.DB
	testCaseStore core.TestCaseStore
	logger        lumber.Logger
}

// New returns a new ProjectStore.
func New(db core.DB, testCaseStore core.TestCaseStore, logger lumber.Logger) core.ProjectStore {
	return &projectStore{db: db, testCaseStore: testCaseStore, logger: logger}
}

func (p *projectStore) Create(ctx context.Context, project *core.Project) (int64, error) {
	var projectID int64
	err := p.db.Execute(func(db *sqlx.DB) error {
		now := time.Now()
		result, err := db.ExecContext(ctx, insertQuery, project.Name, project.Description, project.CreatedBy, now, now)
		if err != nil {
			return errs.SQLError(err)
		}
		projectID, err = result.LastInsertId()
		if err != nil {
			return errs.SQLError(err)
		}
		return nil
	})
	return projectID, err
}

func (p *projectStore) Find(ctx context.Context, projectID int64) (*core.Project, error) {
	project := new(core.Project)
	return project, p.db.Execute(func(db *sqlx.DB) error {
		rows, err := db.NamedQueryContext(ctx, findQuery, map[string]interface{}{"project_id": projectID})
		if err != nil {
			return errs.SQLError(err)
		}
		defer rows.Close()
		if !rows.Next() {
			return errs.ErrRowsNotFound
		}
		if err = rows.Scan(&project.ID, &project.Name, &project.Description, &project.CreatedBy, &project.Created); err != nil {
			return errs.SQLError(err)
		}
		return nil
	})
}

func (p *projectStore) FindAll(ctx context.Context, offset, limit int) ([]*core.Project, error) {
	projects := make([]*core.Project, 0)
	return projects, p.db.Execute(func(db *sqlx.DB) error {
		args := map[string]interface{}{"offset": offset, "limit": limit}
		rows, err := db.NamedQueryContext(ctx, listQuery, args)
		if err != nil {
			return errs.SQLError(err)
		}
		defer rows.Close()
		for rows.Next() {
			project := new(core.Project)
			if err = rows.Scan(&project.ID, &project.Name, &project.Description, &project.CreatedBy, &project.Created); err != nil {
				return errs.SQLError(err)
			}
			projects = append(projects, project)
		}
		if len(projects) == 0 {
			return errs.ErrRowsNotFound
		}
		return nil
	})
}

func (p *projectStore) Update(ctx context.Context, projectID int64, update *core.ProjectUpdate) error {
	setClauses := []string{}
	args := []interface{}{}
	if update.Name != nil {
		setClauses = append(setClauses, "name = ?")
		args = append(args, *update.Name)
	}
	if update.Description != nil {
		setClauses = append(setClauses, "description = ?")
		args = append(args, *update.Description)
	}
	setClauses = append(setClauses, "updated_at = ?")
	args = append(args, time.Now())
	args = append(args, projectID)

	return p.db.Execute(func(db *sqlx.DB) error {
		query := fmt.Sprintf(updateQuery, strings.Join(setClauses, ", "))
		if _, err := db.ExecContext(ctx, query, args...); err != nil {
			return errs.SQLError(err)
		}
		return nil
	})
}

// Delete removes the project and detaches its test cases in one transaction.
// Test cases survive project deletion as unassigned cases.
func (p *projectStore) Delete(ctx context.Context, projectID int64) error {
	return p.db.ExecuteTransactionWithRetry(ctx, maxRetries, delay, maxJitter, errMsg,
		func(tx *sqlx.Tx) error {
			if err := p.testCaseStore.DetachProjectInTx(ctx, tx, projectID); err != nil {
				p.logger.Errorf("failed to detach test cases, projectID %d, error: %v", projectID, err)
				return err
			}
			result, err := tx.ExecContext(ctx, deleteQuery, projectID)
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
		})
}

const insertQuery = `
INSERT
	INTO
	projects(
		name,
		description,
		created_by,
		created_at,
		updated_at
	)
VALUES (?,?,?,?,?)
`

const findQuery = `
SELECT
	p.id,
	p.name,
	p.description,
	p.created_by,
	p.created_at
FROM
	projects p
WHERE
	p.id = :project_id
`

const listQuery = `
SELECT
	p.id,
	p.name,
	p.description,
	p.created_by,
	p.created_at
FROM
	projects p
ORDER BY
	p.created_at DESC
LIMIT :limit OFFSET :offset
`

const updateQuery = `
UPDATE
	projects
SET
	%s
WHERE
	id = ?
`

const deleteQuery = `
DELETE
FROM
	projects
WHERE
	id = ?
`
