package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/oncorag/oncology-assistant/internal/config"
	"github.com/oncorag/oncology-assistant/internal/core/ports"
	"github.com/oncorag/oncology-assistant/internal/core/usecase"
	"github.com/oncorag/oncology-assistant/internal/infrastructure/llm/gemini"
	"github.com/oncorag/oncology-assistant/internal/infrastructure/llm/ollama"
	"github.com/oncorag/oncology-assistant/internal/infrastructure/llm/openaicompat"
	"github.com/oncorag/oncology-assistant/internal/infrastructure/resilience"
	"github.com/oncorag/oncology-assistant/internal/infrastructure/search/memory"
	"github.com/oncorag/oncology-assistant/internal/infrastructure/search/postgres"
	"github.com/oncorag/oncology-assistant/internal/infrastructure/search/qdrant"
	"github.com/oncorag/oncology-assistant/internal/observability/logging"
	"github.com/oncorag/oncology-assistant/internal/observability/metrics"
)

type App struct {
	Config config.Config

	Resolver ports.RelevanceResolver
	Answers  ports.AnswerService
	Metrics  *metrics.EngineMetrics

	closeFns []func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	app := &App{Config: cfg}
	guard := resilience.NewGuard(resilience.DefaultConfig())

	chat, err := app.buildChatModel(ctx, cfg, guard)
	if err != nil {
		return nil, fmt.Errorf("init chat model: %w", err)
	}
	embedder, err := app.buildEmbedder(cfg, guard)
	if err != nil {
		return nil, fmt.Errorf("init embedder: %w", err)
	}
	searcher, err := app.buildSearcher(cfg, embedder, guard)
	if err != nil {
		return nil, fmt.Errorf("init knowledge base: %w", err)
	}

	engineMetrics := metrics.NewEngineMetrics("oncology-assistant")
	cache := usecase.NewJudgmentCache(time.Duration(cfg.JudgmentTTLSeconds) * time.Second)

	structurer := usecase.NewQueryStructurer(chat, logging.Component(logger, "structurer"))
	judge := usecase.NewLLMJudge(chat, cache, logging.Component(logger, "judge"), engineMetrics)
	resolver := usecase.NewResolver(structurer, searcher, embedder, judge, usecase.ResolverConfig{
		TopK:             cfg.TopK,
		WeightJudge:      cfg.WeightJudge,
		WeightSimilarity: cfg.WeightSimilarity,
		WeightEntailment: cfg.WeightEntailment,
		JudgeThreshold:   cfg.JudgeThreshold,
		PartialThreshold: cfg.PartialThreshold,
	}, logging.Component(logger, "resolver"), engineMetrics)
	generator := usecase.NewAnswerGenerator(resolver, chat, logging.Component(logger, "generator"), engineMetrics)

	app.Resolver = resolver
	app.Answers = generator
	app.Metrics = engineMetrics
	return app, nil
}

func (a *App) buildChatModel(ctx context.Context, cfg config.Config, guard *resilience.Guard) (ports.ChatModel, error) {
	switch cfg.LLMBackend {
	case "gemini":
		client, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiRequestsPerSecond)
		if err != nil {
			return nil, err
		}
		a.closeFns = append(a.closeFns, func() { _ = client.Close() })
		return client, nil
	case "openai":
		return openaicompat.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIChatModel, cfg.OpenAIEmbedModel), nil
	case "ollama":
		return ollama.New(cfg.OllamaURL, cfg.OllamaGenModel, cfg.OllamaEmbedModel, guard), nil
	default:
		return nil, fmt.Errorf("unknown LLM backend %q", cfg.LLMBackend)
	}
}

func (a *App) buildEmbedder(cfg config.Config, guard *resilience.Guard) (ports.Embedder, error) {
	switch cfg.EmbedBackend {
	case "openai":
		return openaicompat.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIChatModel, cfg.OpenAIEmbedModel), nil
	case "ollama":
		return ollama.New(cfg.OllamaURL, cfg.OllamaGenModel, cfg.OllamaEmbedModel, guard), nil
	default:
		return nil, fmt.Errorf("unknown embedding backend %q", cfg.EmbedBackend)
	}
}

func (a *App) buildSearcher(cfg config.Config, embedder ports.Embedder, guard *resilience.Guard) (ports.KnowledgeSearcher, error) {
	switch cfg.KBBackend {
	case "qdrant":
		return qdrant.New(cfg.QdrantURL, cfg.QdrantCollection, embedder, guard), nil
	case "postgres":
		db, err := postgres.OpenDB(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		a.closeFns = append(a.closeFns, func() { _ = db.Close() })
		return postgres.NewRepository(db, embedder), nil
	case "memory":
		pairs, err := memory.LoadWorkbook(cfg.KBWorkbookPath)
		if err != nil {
			return nil, err
		}
		return memory.NewSearcher(embedder, pairs), nil
	default:
		return nil, fmt.Errorf("unknown knowledge-base backend %q", cfg.KBBackend)
	}
}

func (a *App) Close() {
	for i := len(a.closeFns) - 1; i >= 0; i-- {
		a.closeFns[i]()
	}
}
