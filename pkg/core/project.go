package core

import (
	"context"
	"time"
)

// Project groups test cases under a named effort.
type Project struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name" binding:"required"`
	Description string    `db:"description" json:"description"`
	CreatedBy   string    `db:"created_by" json:"createdBy"`
	Created     time.Time `db:"created_at" json:"createdAt"`
	Updated     time.Time `db:"updated_at" json:"-"`
}

// ProjectUpdate carries field changes for an existing project. Nil fields
// are left untouched.
type ProjectUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ProjectStore defines datastore operation for working with projects.
type ProjectStore interface {
	// Create persists a new project and returns its id.
	Create(ctx context.Context, project *Project) (int64, error)
	// Find returns the project for the given id.
	Find(ctx context.Context, projectID int64) (*Project, error)
	// FindAll returns all projects, newest first.
	FindAll(ctx context.Context, offset, limit int) ([]*Project, error)
	// Update applies the given changes to a project.
	Update(ctx context.Context, projectID int64, update *ProjectUpdate) error
	// Delete removes a project and detaches its test cases.
	Delete(ctx context.Context, projectID int64) error
}
