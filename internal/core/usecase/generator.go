package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/oncorag/oncology-assistant/internal/core/domain"
	"github.com/oncorag/oncology-assistant/internal/core/ports"
)

const apologyAnswer = "I'm sorry, I couldn't generate a response. Please try again later."

// AnswerGenerator consumes the resolver's verdict. A confident match returns
// the verified answer as-is; otherwise the generative model is consulted,
// seeded with the best partial candidate when one exists. The terminal
// fallback of the whole pipeline is the fixed apology with confidence 0.
type AnswerGenerator struct {
	resolver ports.RelevanceResolver
	model    ports.ChatModel
	logger   *slog.Logger
	metrics  Metrics
}

func NewAnswerGenerator(resolver ports.RelevanceResolver, model ports.ChatModel, logger *slog.Logger, metrics Metrics) *AnswerGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &AnswerGenerator{resolver: resolver, model: model, logger: logger, metrics: metrics}
}

func (g *AnswerGenerator) Generate(ctx context.Context, query string) domain.GeneratedAnswer {
	logger := g.logger.With("resolution_id", uuid.NewString())

	result := g.resolver.Resolve(ctx, query)
	if result.Status == domain.StatusRelevant && result.Match != nil {
		logger.Info("serving verified answer", "question", result.Match.Question, "confidence", result.Match.Confidence)
		g.metrics.AnswerServed(domain.SourceVerified)
		metrics := result.Match.Metrics
		return domain.GeneratedAnswer{
			Answer:     result.Match.Answer,
			Source:     domain.SourceVerified,
			Confidence: result.Match.Confidence,
			Metrics:    &metrics,
		}
	}

	messages := []domain.ChatMessage{{Role: domain.RoleSystem, Content: oncologySystemPrompt}}
	confidence := 0.5
	if result.Status == domain.StatusPartial && result.Match != nil {
		messages = append(messages, domain.ChatMessage{
			Role:    domain.RoleUser,
			Content: "Context:\n" + result.Match.Answer,
		})
		confidence = 0.7
	}
	messages = append(messages, domain.ChatMessage{Role: domain.RoleUser, Content: query})

	text, err := g.model.Complete(ctx, messages)
	if err != nil {
		logger.Error("fallback generation failed", "error",
			domain.WrapError(domain.ErrGeneration, "complete", err))
		g.metrics.AnswerServed(domain.SourceError)
		return domain.GeneratedAnswer{
			Answer:     apologyAnswer,
			Source:     domain.SourceError,
			Confidence: 0.0,
		}
	}

	logger.Info("serving generated answer", "status", result.Status, "confidence", confidence)
	g.metrics.AnswerServed(domain.SourceGenerated)
	return domain.GeneratedAnswer{
		Answer:     text,
		Source:     domain.SourceGenerated,
		Confidence: confidence,
	}
}
