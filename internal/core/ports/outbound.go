package ports

import (
	"context"

	"github.com/oncorag/oncology-assistant/internal/core/domain"
)

// ChatModel produces a free-text completion for an ordered message sequence.
// Responses are untrusted strings; callers must parse defensively.
type ChatModel interface {
	Complete(ctx context.Context, messages []domain.ChatMessage) (string, error)
}

// Embedder builds a fixed-length vector for a single text.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// KnowledgeSearcher retrieves up to k verified Q/A candidates for a topic.
// Implementations return an empty slice on no results.
type KnowledgeSearcher interface {
	Search(ctx context.Context, topic string, k int) ([]domain.Candidate, error)
}
