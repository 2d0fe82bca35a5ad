package core

import (
	"context"

	"gopkg.in/guregu/null.v4/zero"
)

// GenerationRequest is the payload for generating test case candidates from
// a user story.
type GenerationRequest struct {
	UserStory string   `json:"userStory" binding:"required"`
	Priority  Priority `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
}

// CandidateStep is a transient, unpersisted test step. Identifiers supplied
// by clients or the model are for display only and are discarded on save.
type CandidateStep struct {
	ID             string `json:"id"`
	Action         string `json:"action"`
	ExpectedResult string `json:"expectedResult"`
}

// TestCaseCandidate is a transient test case produced by generation or
// assembled by a client. It has no identity until saved.
type TestCaseCandidate struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Module      string           `json:"module"`
	Priority    Priority         `json:"priority"`
	Status      Status           `json:"status"`
	TestSteps   []*CandidateStep `json:"testSteps"`
}

// SaveCandidate is a candidate as submitted for persistence, with the
// validation the save endpoint enforces.
type SaveCandidate struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Module      string           `json:"module"`
	Priority    Priority         `json:"priority" binding:"required,oneof=LOW MEDIUM HIGH"`
	Status      Status           `json:"status" binding:"omitempty,oneof=PENDING PASS FAIL"`
	TestSteps   []*CandidateStep `json:"testSteps" binding:"omitempty,dive"`
}

// SaveRequest is the payload for persisting a batch of test cases.
type SaveRequest struct {
	ProjectID *int64           `json:"projectId"`
	TestCases []*SaveCandidate `json:"testCases" binding:"required,dive"`
}

// CompletionService produces a text completion for a prompt.
type CompletionService interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// GenerationService turns a user story into structured test case candidates.
type GenerationService interface {
	Generate(ctx context.Context, req *GenerationRequest) ([]*TestCaseCandidate, error)
}

// AuthoringStore coordinates multi-table writes for test case authoring.
type AuthoringStore interface {
	// SaveBatch persists the candidates and their steps atomically and
	// returns the ids of the created test cases.
	SaveBatch(ctx context.Context, projectID zero.Int, candidates []*SaveCandidate) ([]string, error)
	// Update applies scalar changes and optionally replaces the step
	// collection of a test case.
	Update(ctx context.Context, caseID string, update *TestCaseUpdate) error
	// Delete removes a test case together with its steps.
	Delete(ctx context.Context, caseID string) error
}
