package gemini

import (
	"context"
	"strings"

	"github.com/autoqa/autoqa/config"
	"github.com/autoqa/autoqa/pkg/core"
	errs "github.com/autoqa/autoqa/pkg/errors"
	"github.com/autoqa/autoqa/pkg/lumber"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

type completionService struct {
	client *genai.Client
	model  string
	logger lumber.Logger
}

// New returns a core.CompletionService backed by the Gemini API.
func New(ctx context.Context, cfg *config.Config, logger lumber.Logger) (core.CompletionService, error) {
	if cfg.GenAI.APIKey == "" {
		return nil, errs.ErrMissingAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.GenAI.APIKey,
	})
	if err != nil {
		return nil, err
	}
	model := cfg.GenAI.Model
	if model == "" {
		model = defaultModel
	}
	return &completionService{client: client, model: model, logger: logger}, nil
}

func (s *completionService) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		s.logger.Errorf("failed to generate completion, model %s, error: %v", s.model, err)
		return "", err
	}
	return strings.TrimSpace(resp.Text()), nil
}
