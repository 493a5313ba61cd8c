package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	"github.com/oncorag/oncology-assistant/internal/core/domain"
)

// Client implements the ChatModel port on top of Google Gemini. A client-side
// rate limiter keeps structuring and per-candidate judge calls inside the
// API quota; the limiter blocks rather than rejects, honoring ctx.
type Client struct {
	api       *genai.Client
	modelName string
	limiter   *rate.Limiter
}

func New(ctx context.Context, apiKey, modelName string, requestsPerSecond float64) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}

	api, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{
		api:       api,
		modelName: modelName,
		limiter:   rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}, nil
}

func (c *Client) Complete(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	model := c.api.GenerativeModel(c.modelName)
	model.SetTemperature(0.1)

	var system []string
	var parts []genai.Part
	for _, m := range messages {
		if m.Role == domain.RoleSystem {
			system = append(system, m.Content)
			continue
		}
		parts = append(parts, genai.Text(m.Content))
	}
	if len(system) > 0 {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(strings.Join(system, "\n"))},
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no user content to complete")
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return extractText(resp)
}

func (c *Client) Close() error {
	return c.api.Close()
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty gemini response")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", fmt.Errorf("gemini response contained no text")
	}
	return out, nil
}
