package generation

import (
	"context"
	"errors"
	"testing"

	"github.com/autoqa/autoqa/pkg/core"
	errs "github.com/autoqa/autoqa/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...interface{}) {}
func (nopLogger) Infof(format string, args ...interface{})  {}
func (nopLogger) Warnf(format string, args ...interface{})  {}
func (nopLogger) Errorf(format string, args ...interface{}) {}
func (nopLogger) Fatalf(format string, args ...interface{}) {}

type fakeCompletion struct {
	text string
	err  error
}

func (f *fakeCompletion) Complete(ctx context.Context, prompt string) (string, error) {
	return f.text, f.err
}

func TestGenerateNormalizesCandidates(t *testing.T) {
	completion := &fakeCompletion{text: `[
		{"title": "Login works", "description": "d", "module": "auth", "priority": "LOW", "status": "PASS",
		 "testSteps": [{"id": "1", "action": "open login page", "expectedResult": "page renders"}]},
		{"title": "Reset password", "module": "auth"}
	]`}
	svc := New(completion, nopLogger{})

	got, err := svc.Generate(context.Background(), &core.GenerationRequest{UserStory: "story", Priority: core.PriorityHigh})
	require.NoError(t, err)
	require.Len(t, got, 2)

	for _, candidate := range got {
		assert.Equal(t, core.PriorityHigh, candidate.Priority)
		assert.Equal(t, core.StatusPending, candidate.Status)
		assert.NotNil(t, candidate.TestSteps)
	}
	assert.Equal(t, "Login works", got[0].Title)
	require.Len(t, got[0].TestSteps, 1)
	assert.Equal(t, "open login page", got[0].TestSteps[0].Action)
	assert.Empty(t, got[1].TestSteps)
}

func TestGenerateStripsCodeFences(t *testing.T) {
	completion := &fakeCompletion{text: "```json\n[{\"title\": \"t\"}]\n```"}
	svc := New(completion, nopLogger{})

	got, err := svc.Generate(context.Background(), &core.GenerationRequest{UserStory: "story", Priority: core.PriorityMedium})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "t", got[0].Title)
}

func TestGenerateKeepsUntitledCandidates(t *testing.T) {
	completion := &fakeCompletion{text: `[null, {"module": "auth"}, {"title": "kept"}]`}
	svc := New(completion, nopLogger{})

	got, err := svc.Generate(context.Background(), &core.GenerationRequest{UserStory: "story", Priority: core.PriorityLow})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "", got[0].Title)
	assert.Equal(t, "kept", got[1].Title)
}

func TestGenerateStringStepIDs(t *testing.T) {
	completion := &fakeCompletion{text: `[{"title":"Valid login","description":"...","module":"Authentication","priority":"LOW",` +
		`"testSteps":[{"id":"1","action":"Enter credentials","expectedResult":"User logged in"}]}]`}
	svc := New(completion, nopLogger{})

	got, err := svc.Generate(context.Background(), &core.GenerationRequest{
		UserStory: "As a user, I want to log in with valid credentials",
		Priority:  core.PriorityHigh,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, core.PriorityHigh, got[0].Priority)
	assert.Equal(t, core.StatusPending, got[0].Status)
	require.Len(t, got[0].TestSteps, 1)
	assert.Equal(t, "1", got[0].TestSteps[0].ID)
}

func TestGenerateParseFailure(t *testing.T) {
	raw := "sorry, I cannot help with that"
	completion := &fakeCompletion{text: raw}
	svc := New(completion, nopLogger{})

	got, err := svc.Generate(context.Background(), &core.GenerationRequest{UserStory: "story", Priority: core.PriorityLow})
	assert.Nil(t, got)

	var parseErr *errs.GenerationParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, raw, parseErr.Raw)
}

func TestGenerateCompletionError(t *testing.T) {
	wantErr := errors.New("upstream unavailable")
	svc := New(&fakeCompletion{err: wantErr}, nopLogger{})

	got, err := svc.Generate(context.Background(), &core.GenerationRequest{UserStory: "story", Priority: core.PriorityLow})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, wantErr)
}

func TestExtractPayload(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `[{"title":"t"}]`, `[{"title":"t"}]`},
		{"fenced json", "```json\n[]\n```", "[]"},
		{"fenced without language", "```\n[]\n```", "[]"},
		{"surrounding whitespace", "  []  ", "[]"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractPayload(tc.in))
		})
	}
}
