package ollama

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/oncorag/oncology-assistant/internal/core/domain"
	"github.com/oncorag/oncology-assistant/internal/infrastructure/resilience"
)

// Client talks to a local Ollama instance. It backs both the ChatModel and
// Embedder ports for development setups without cloud credentials.
type Client struct {
	baseURL    string
	genModel   string
	embedModel string
	httpClient *http.Client
	guard      *resilience.Guard
}

func New(baseURL, genModel, embedModel string, guard *resilience.Guard) *Client {
	if guard == nil {
		guard = resilience.NewGuard(resilience.DefaultConfig())
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		genModel:   genModel,
		embedModel: embedModel,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		guard:      guard,
	}
}

func (c *Client) Complete(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	type chatMessage struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	payload := struct {
		Model    string        `json:"model"`
		Messages []chatMessage `json:"messages"`
		Stream   bool          `json:"stream"`
	}{
		Model:  c.genModel,
		Stream: false,
	}
	for _, m := range messages {
		payload.Messages = append(payload.Messages, chatMessage{Role: string(m.Role), Content: m.Content})
	}

	var response struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	err := c.guard.Do(ctx, "ollama_chat", func(ctx context.Context) error {
		return c.postJSON(ctx, "/api/chat", payload, &response, "chat")
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(response.Message.Content), nil
}

func (c *Client) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	request := map[string]any{
		"model": c.embedModel,
		"input": []string{text},
	}

	var response struct {
		Embeddings [][]float32 `json:"embeddings"`
	}
	err := c.guard.Do(ctx, "ollama_embed", func(ctx context.Context) error {
		return c.postJSON(ctx, "/api/embed", request, &response, "embed")
	})
	if err != nil {
		return nil, err
	}
	if len(response.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}
	return response.Embeddings[0], nil
}
