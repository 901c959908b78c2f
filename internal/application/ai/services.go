package ai

import (
	"context"

	"github.com/bryanwahyu/rcis/internal/analytics"
	"github.com/bryanwahyu/rcis/internal/application/dashboard"
	"github.com/bryanwahyu/rcis/internal/domain/ai"
)

// NoPatterns is returned without calling the provider when there is
// nothing to narrate.
const NoPatterns = "No notable rework patterns in the selected range."

type Service struct {
	client ai.Client
}

// NewService accepts a nil client; Narrate then reports ai.ErrDisabled.
func NewService(client ai.Client) *Service {
	return &Service{client: client}
}

type Narrative struct {
	Text     string              `json:"text"`
	Insights []analytics.Insight `json:"insights"`
}

func (s *Service) Narrate(ctx context.Context, insights []analytics.Insight) (Narrative, error) {
	if len(insights) == 0 {
		return Narrative{Text: NoPatterns, Insights: insights}, nil
	}
	if s.client == nil {
		return Narrative{}, ai.ErrDisabled
	}
	text, err := s.client.Narrate(ctx, dashboard.Digest(insights))
	if err != nil {
		return Narrative{}, err
	}
	return Narrative{Text: text, Insights: insights}, nil
}
