package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/bryanwahyu/rcis/internal/domain/ai"
	"github.com/bryanwahyu/rcis/internal/infra/ai/prompt"
)

const maxTokens = 512

type Client struct {
	*openai.Client
	Model string
}

// NewClient builds a chat client; baseURL is optional (Azure/proxy).
func NewClient(apiKey, model, baseURL string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{Client: openai.NewClientWithConfig(cfg), Model: model}
}

// Narrate turns an insight digest into a short handover note.
func (c *Client) Narrate(ctx context.Context, digest string) (string, error) {
	model := c.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: prompt.GetUserPrompt(digest)},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if isReasoningModel(model) {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		if quotaError(err) {
			return "", fmt.Errorf("%w: %v", ai.ErrQuotaExceeded, err)
		}
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func isReasoningModel(model string) bool {
	for _, p := range []string{"o1", "o3", "o4", "gpt-5"} {
		if strings.HasPrefix(model, p) {
			return true
		}
	}
	return false
}

func quotaError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.Type == "insufficient_quota"
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	return false
}
