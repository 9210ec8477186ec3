package ai

import (
	"context"
	"strings"

	"github.com/testplanhq/testplan/pkg/domain/ai"
)

// MockProvider returns deterministic extraction payloads without any network
// access. Useful for demos and offline runs.
type MockProvider struct {
	Model string
}

func (p *MockProvider) ID() string {
	return "mock:" + p.Model
}

const mockRequirementsReply = `[
  {
    "id": "REQ-001",
    "title": "Mock requirement",
    "description": "Deterministic output from the mock provider.",
    "priority": "Medium",
    "category": "Functional",
    "acceptanceCriteria": ["Mock criterion is satisfied"],
    "inferred": false,
    "notes": ""
  }
]`

const mockComponentsReply = `[
  {
    "id": "COMP-001",
    "name": "Mock Service",
    "type": "Service",
    "description": "Deterministic output from the mock provider.",
    "interfaces": ["Mock interface"],
    "dependencies": [],
    "businessRules": [],
    "inferred": false,
    "notes": ""
  }
]`

func (p *MockProvider) Complete(ctx context.Context, req ai.CompletionRequest) (*ai.CompletionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := "[]"
	switch {
	case strings.Contains(req.Prompt, "design component"):
		text = mockComponentsReply
	case strings.Contains(req.Prompt, "requirement"):
		text = mockRequirementsReply
	}

	return &ai.CompletionResponse{
		Text:  text,
		Model: p.ID(),
		Usage: ai.TokenUsage{
			InputTokens:  len(req.Prompt) / 4,
			OutputTokens: len(text) / 4,
		},
	}, nil
}
