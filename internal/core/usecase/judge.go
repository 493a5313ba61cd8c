package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/oncorag/oncology-assistant/internal/core/domain"
	"github.com/oncorag/oncology-assistant/internal/core/ports"
)

// LLMJudge classifies a candidate answer as relevant or irrelevant to a
// query by asking the generative model, memoized through the judgment cache.
// Any failure yields the fixed irrelevant/0.0 fallback verdict, which is
// cached like a success so a failing pair is not re-judged within the TTL.
type LLMJudge struct {
	model   ports.ChatModel
	cache   *JudgmentCache
	logger  *slog.Logger
	metrics Metrics
}

func NewLLMJudge(model ports.ChatModel, cache *JudgmentCache, logger *slog.Logger, metrics Metrics) *LLMJudge {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &LLMJudge{model: model, cache: cache, logger: logger, metrics: metrics}
}

func (j *LLMJudge) Judge(ctx context.Context, query, answer string) domain.Judgment {
	judgment, hit := j.cache.GetOrCompute(query, answer, func() domain.Judgment {
		return j.judgeOnce(ctx, query, answer)
	})
	if hit {
		j.metrics.JudgeCacheHit()
	} else {
		j.metrics.JudgeCacheMiss()
	}
	return judgment
}

func (j *LLMJudge) judgeOnce(ctx context.Context, query, answer string) domain.Judgment {
	raw, err := j.model.Complete(ctx, []domain.ChatMessage{
		{Role: domain.RoleUser, Content: buildJudgePrompt(query, answer)},
	})
	if err != nil {
		return j.fallback(domain.WrapError(domain.ErrJudgment, "judge model call", err))
	}

	judgment, err := parseJudgment(raw)
	if err != nil {
		return j.fallback(err)
	}
	return judgment
}

func (j *LLMJudge) fallback(err error) domain.Judgment {
	j.logger.Error("llm judgment failed", "error", err)
	j.metrics.JudgeFallback()
	return domain.Judgment{
		Judgment:   domain.VerdictIrrelevant,
		Confidence: 0.0,
		Reason:     "Error in judgment: " + err.Error(),
	}
}

func parseJudgment(raw string) (domain.Judgment, error) {
	text := stripCodeFence(strings.TrimSpace(raw))
	if repaired, err := jsonrepair.JSONRepair(text); err == nil {
		text = repaired
	}

	var parsed struct {
		Judgment   string   `json:"judgment"`
		Confidence *float64 `json:"confidence"`
		Reason     string   `json:"reason"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return domain.Judgment{}, domain.WrapError(domain.ErrJudgment, "parse judgment json", err)
	}
	if parsed.Judgment == "" {
		return domain.Judgment{}, domain.WrapError(domain.ErrJudgment, "parse judgment json", errors.New("missing judgment field"))
	}
	if parsed.Confidence == nil {
		return domain.Judgment{}, domain.WrapError(domain.ErrJudgment, "parse judgment json", errors.New("missing confidence field"))
	}

	verdict := domain.VerdictIrrelevant
	if strings.EqualFold(parsed.Judgment, string(domain.VerdictRelevant)) {
		verdict = domain.VerdictRelevant
	}
	return domain.Judgment{
		Judgment:   verdict,
		Confidence: clamp01(*parsed.Confidence),
		Reason:     parsed.Reason,
	}, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
