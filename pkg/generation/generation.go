package generation

import (
	"context"
	"strings"

	"github.com/autoqa/autoqa/pkg/core"
	errs "github.com/autoqa/autoqa/pkg/errors"
	"github.com/autoqa/autoqa/pkg/lumber"
	"github.com/autoqa/autoqa/pkg/prompt"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type generationService struct {
	completionService core.CompletionService
	logger            lumber.Logger
}

// New returns a new GenerationService.
func New(completionService core.CompletionService, logger lumber.Logger) core.GenerationService {
	return &generationService{completionService: completionService, logger: logger}
}

// Generate builds the prompt for the request, asks the completion service for
// candidates and normalizes the parsed result. The requested priority always
// wins over whatever the model emitted.
func (s *generationService) Generate(ctx context.Context, req *core.GenerationRequest) ([]*core.TestCaseCandidate, error) {
	text, err := s.completionService.Complete(ctx, prompt.Build(req))
	if err != nil {
		return nil, err
	}

	payload := extractPayload(text)
	candidates := make([]*core.TestCaseCandidate, 0)
	if err := json.UnmarshalFromString(payload, &candidates); err != nil {
		s.logger.Errorf("failed to parse completion response, error: %v", err)
		return nil, &errs.GenerationParseError{Raw: text}
	}

	normalized := make([]*core.TestCaseCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate == nil {
			s.logger.Warnf("dropping null candidate")
			continue
		}
		candidate.Priority = req.Priority
		candidate.Status = core.StatusPending
		if candidate.TestSteps == nil {
			candidate.TestSteps = []*core.CandidateStep{}
		}
		normalized = append(normalized, candidate)
	}
	return normalized, nil
}

// extractPayload strips markdown code fences that models sometimes wrap
// around the JSON payload despite instructions.
func extractPayload(text string) string {
	payload := strings.TrimSpace(text)
	if !strings.HasPrefix(payload, "```") {
		return payload
	}
	payload = strings.TrimPrefix(payload, "```json")
	payload = strings.TrimPrefix(payload, "```")
	if idx := strings.LastIndex(payload, "```"); idx >= 0 {
		payload = payload[:idx]
	}
	return strings.TrimSpace(payload)
}
