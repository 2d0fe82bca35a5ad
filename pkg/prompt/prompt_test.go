package prompt

import (
	"strings"
	"testing"

	"github.com/autoqa/autoqa/pkg/core"
)

func TestBuild(t *testing.T) {
	req := &core.GenerationRequest{
		UserStory: "As a user, I can reset my password via email.",
		Priority:  core.PriorityHigh,
	}

	got := Build(req)
	if !strings.Contains(got, req.UserStory) {
		t.Errorf("prompt does not contain the user story")
	}
	if !strings.Contains(got, "Priority: HIGH") {
		t.Errorf("prompt does not pin the requested priority")
	}
	if !strings.Contains(got, "Return ONLY a JSON array") {
		t.Errorf("prompt does not demand a bare JSON array")
	}
	if !strings.Contains(got, `"testSteps"`) {
		t.Errorf("prompt does not describe the testSteps shape")
	}
}

func TestBuildDeterministic(t *testing.T) {
	req := &core.GenerationRequest{UserStory: "story", Priority: core.PriorityLow}
	if Build(req) != Build(req) {
		t.Errorf("expected identical prompts for identical requests")
	}
}
