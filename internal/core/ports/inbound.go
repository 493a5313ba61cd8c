package ports

import (
	"context"

	"github.com/oncorag/oncology-assistant/internal/core/domain"
)

// RelevanceResolver decides whether a trusted answer exists for a query.
// It never returns an error; every failure degrades to StatusNoMatch.
type RelevanceResolver interface {
	Resolve(ctx context.Context, query string) domain.ResolutionResult
}

// AnswerService is the engine's single public entry point.
// It never returns an error; the terminal fallback is SourceError.
type AnswerService interface {
	Generate(ctx context.Context, query string) domain.GeneratedAnswer
}
