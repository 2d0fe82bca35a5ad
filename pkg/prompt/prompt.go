package prompt

import (
	"fmt"

	"github.com/autoqa/autoqa/pkg/core"
)

// template instructs the model to emit a bare JSON array so the response can
// be unmarshalled without post-processing. The story and priority are always
// appended at the end, after the format contract.
const template = `You are a QA engineer. Generate test cases for the user story below.
Return ONLY a JSON array. No markdown, no code fences, no commentary.
Each element of the array must be an object with exactly these keys:
- "title": short name of the test case
- "description": what the test case verifies
- "module": the feature area the test case belongs to
- "priority": must be %q for every test case
- "testSteps": array of objects, each with keys "id" (string, "1", "2", ... in order), "action" and "expectedResult"

Cover the happy path, edge cases and failure scenarios of the story.

User story: %s
Priority: %s`

// Build renders the generation prompt for the given request. The output is
// fully determined by the request fields.
func Build(req *core.GenerationRequest) string {
	return fmt.Sprintf(template, req.Priority, req.UserStory, req.Priority)
}
