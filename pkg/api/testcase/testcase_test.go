package testcase

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/autoqa/autoqa/pkg/core"
	errs "github.com/autoqa/autoqa/pkg/errors"
	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"gopkg.in/guregu/null.v4/zero"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...interface{}) {}
func (nopLogger) Infof(format string, args ...interface{})  {}
func (nopLogger) Warnf(format string, args ...interface{})  {}
func (nopLogger) Errorf(format string, args ...interface{}) {}
func (nopLogger) Fatalf(format string, args ...interface{}) {}

type fakeGenerationService struct {
	gotReq     *core.GenerationRequest
	candidates []*core.TestCaseCandidate
	err        error
}

func (f *fakeGenerationService) Generate(ctx context.Context, req *core.GenerationRequest) ([]*core.TestCaseCandidate, error) {
	f.gotReq = req
	return f.candidates, f.err
}

type fakeAuthoringStore struct {
	gotProjectID  zero.Int
	gotCandidates []*core.SaveCandidate
	ids           []string
	err           error
}

func (f *fakeAuthoringStore) SaveBatch(ctx context.Context, projectID zero.Int, candidates []*core.SaveCandidate) ([]string, error) {
	f.gotProjectID = projectID
	f.gotCandidates = candidates
	return f.ids, f.err
}

func (f *fakeAuthoringStore) Update(ctx context.Context, caseID string, update *core.TestCaseUpdate) error {
	return f.err
}

func (f *fakeAuthoringStore) Delete(ctx context.Context, caseID string) error {
	return f.err
}

type fakeNotificationStore struct {
	core.NotificationStore
	got *core.Notification
	err error
}

func (f *fakeNotificationStore) Create(ctx context.Context, notification *core.Notification) error {
	f.got = notification
	return f.err
}

func performRequest(handler gin.HandlerFunc, method, path, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Handle(method, "/testcases/*any", handler)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

// performRequestAs runs the handler with session claims already resolved for
// the given user.
func performRequestAs(userID string, handler gin.HandlerFunc, method, path, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Handle(method, "/testcases/*any", func(c *gin.Context) {
		c.Set("userClaims", &core.UserClaims{UserID: userID, Role: core.RoleUser})
	}, handler)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestHandleGenerate(t *testing.T) {
	svc := &fakeGenerationService{candidates: []*core.TestCaseCandidate{
		{Title: "t", Priority: core.PriorityHigh, Status: core.StatusPending},
	}}

	w := performRequest(HandleGenerate(svc, nopLogger{}), http.MethodPost, "/testcases/generate",
		`{"userStory": "As a user, I can log in.", "priority": "HIGH"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		TestCases []*core.TestCaseCandidate `json:"testCases"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.TestCases) != 1 || resp.TestCases[0].Title != "t" {
		t.Errorf("unexpected candidates in response: %+v", resp.TestCases)
	}
}

func TestHandleGenerateDefaultsPriority(t *testing.T) {
	svc := &fakeGenerationService{}
	w := performRequest(HandleGenerate(svc, nopLogger{}), http.MethodPost, "/testcases/generate",
		`{"userStory": "story"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.gotReq.Priority != core.PriorityMedium {
		t.Errorf("expected default priority MEDIUM, got %s", svc.gotReq.Priority)
	}
}

func TestHandleGenerateMissingStory(t *testing.T) {
	svc := &fakeGenerationService{}
	w := performRequest(HandleGenerate(svc, nopLogger{}), http.MethodPost, "/testcases/generate", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if svc.gotReq != nil {
		t.Errorf("expected generation to be skipped on invalid payload")
	}
}

func TestHandleGenerateInvalidPriority(t *testing.T) {
	w := performRequest(HandleGenerate(&fakeGenerationService{}, nopLogger{}), http.MethodPost, "/testcases/generate",
		`{"userStory": "story", "priority": "URGENT"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHandleGenerateParseFailure(t *testing.T) {
	svc := &fakeGenerationService{err: &errs.GenerationParseError{Raw: "not json"}}
	w := performRequest(HandleGenerate(svc, nopLogger{}), http.MethodPost, "/testcases/generate",
		`{"userStory": "story"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["raw"] != "not json" {
		t.Errorf("expected raw model output in response, got %q", resp["raw"])
	}
}

func TestHandleGenerateServiceError(t *testing.T) {
	svc := &fakeGenerationService{err: errors.New("upstream unavailable")}
	w := performRequest(HandleGenerate(svc, nopLogger{}), http.MethodPost, "/testcases/generate",
		`{"userStory": "story"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "upstream unavailable") {
		t.Errorf("internal error details leaked to the client")
	}
}

func TestHandleSave(t *testing.T) {
	store := &fakeAuthoringStore{ids: []string{"id-1", "id-2"}}
	w := performRequest(HandleSave(store, nil, nopLogger{}), http.MethodPost, "/testcases/save",
		`{"projectId": 7, "testCases": [
			{"title": "a", "priority": "LOW"},
			{"title": "b", "priority": "HIGH", "testSteps": [{"action": "x", "expectedResult": "y"}]}
		]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d, body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "2 Test Case Saved Successfully.") {
		t.Errorf("unexpected response body %s", w.Body.String())
	}
	if got := store.gotProjectID.ValueOrZero(); got != 7 {
		t.Errorf("expected project id 7, got %d", got)
	}
	if len(store.gotCandidates) != 2 {
		t.Errorf("expected 2 candidates passed to store, got %d", len(store.gotCandidates))
	}
}

func TestHandleSaveWithoutProject(t *testing.T) {
	store := &fakeAuthoringStore{ids: []string{"id-1"}}
	w := performRequest(HandleSave(store, nil, nopLogger{}), http.MethodPost, "/testcases/save",
		`{"testCases": [{"title": "a", "priority": "LOW"}]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if store.gotProjectID.Valid {
		t.Errorf("expected null project id")
	}
}

func TestHandleSaveWithoutTitle(t *testing.T) {
	store := &fakeAuthoringStore{ids: []string{"id-1"}}
	w := performRequest(HandleSave(store, nil, nopLogger{}), http.MethodPost, "/testcases/save",
		`{"projectId": 7, "testCases": [{"priority": "MEDIUM", "testSteps": [
			{"id": "1", "action": "A", "expectedResult": "B"},
			{"id": "2", "action": "C", "expectedResult": "D"}
		]}]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d, body %s", w.Code, w.Body.String())
	}
	if len(store.gotCandidates) != 1 {
		t.Fatalf("expected 1 candidate passed to store, got %d", len(store.gotCandidates))
	}
	if store.gotCandidates[0].Title != "" {
		t.Errorf("expected omitted title to stay empty, got %q", store.gotCandidates[0].Title)
	}
	if len(store.gotCandidates[0].TestSteps) != 2 {
		t.Errorf("expected 2 steps passed to store, got %d", len(store.gotCandidates[0].TestSteps))
	}
}

func TestHandleSaveEmptyBatch(t *testing.T) {
	store := &fakeAuthoringStore{ids: []string{}}
	w := performRequest(HandleSave(store, nil, nopLogger{}), http.MethodPost, "/testcases/save",
		`{"testCases": []}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d, body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "0 Test Case Saved Successfully.") {
		t.Errorf("unexpected response body %s", w.Body.String())
	}
}

func TestHandleSaveRecordsNotification(t *testing.T) {
	store := &fakeAuthoringStore{ids: []string{"id-1", "id-2"}}
	notifications := &fakeNotificationStore{}
	w := performRequestAs("user-7", HandleSave(store, notifications, nopLogger{}), http.MethodPost,
		"/testcases/save", `{"testCases": [
			{"title": "a", "priority": "LOW"},
			{"title": "b", "priority": "HIGH"}
		]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d, body %s", w.Code, w.Body.String())
	}
	if notifications.got == nil {
		t.Fatal("expected a notification to be recorded")
	}
	if notifications.got.UserID != "user-7" {
		t.Errorf("expected notification for user-7, got %s", notifications.got.UserID)
	}
	if notifications.got.Message != "2 test cases were saved." {
		t.Errorf("unexpected notification message %q", notifications.got.Message)
	}
}

func TestHandleSaveNotificationFailureIsIgnored(t *testing.T) {
	store := &fakeAuthoringStore{ids: []string{"id-1"}}
	notifications := &fakeNotificationStore{err: errors.New("insert failed")}
	w := performRequestAs("user-7", HandleSave(store, notifications, nopLogger{}), http.MethodPost,
		"/testcases/save", `{"testCases": [{"title": "a", "priority": "LOW"}]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 despite notification failure, got %d", w.Code)
	}
}

func TestHandleSaveValidations(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing batch", `{}`},
		{"missing priority", `{"testCases": [{"title": "a"}]}`},
		{"invalid priority", `{"testCases": [{"title": "a", "priority": "URGENT"}]}`},
		{"invalid status", `{"testCases": [{"title": "a", "priority": "LOW", "status": "DONE"}]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeAuthoringStore{}
			w := performRequest(HandleSave(store, nil, nopLogger{}), http.MethodPost, "/testcases/save", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d, body %s", w.Code, w.Body.String())
			}
			if store.gotCandidates != nil {
				t.Errorf("expected nothing persisted for invalid payload")
			}
		})
	}
}

func TestHandleSaveStoreFailure(t *testing.T) {
	store := &fakeAuthoringStore{err: errors.New("deadlock")}
	w := performRequest(HandleSave(store, nil, nopLogger{}), http.MethodPost, "/testcases/save",
		`{"testCases": [{"title": "a", "priority": "LOW"}]}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "deadlock") {
		t.Errorf("internal error details leaked to the client")
	}
}
