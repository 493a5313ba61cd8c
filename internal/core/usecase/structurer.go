package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/oncorag/oncology-assistant/internal/core/domain"
	"github.com/oncorag/oncology-assistant/internal/core/ports"
)

// QueryStructurer decomposes a raw query into a normalized topic plus
// presentation constraints by asking the generative model for a JSON
// breakdown. Model failures are fully absorbed: the child-friendly heuristic
// is tried first, then the generic default structure.
type QueryStructurer struct {
	model  ports.ChatModel
	logger *slog.Logger
}

func NewQueryStructurer(model ports.ChatModel, logger *slog.Logger) *QueryStructurer {
	if logger == nil {
		logger = slog.Default()
	}
	return &QueryStructurer{model: model, logger: logger}
}

func (s *QueryStructurer) Structure(ctx context.Context, query string) domain.QueryStructure {
	raw, err := s.model.Complete(ctx, []domain.ChatMessage{
		{Role: domain.RoleUser, Content: buildStructuringPrompt(query)},
	})
	if err != nil {
		s.logger.Error("query structuring model call failed", "query", query, "error", err)
		return fallbackStructure(query)
	}

	text := stripCodeFence(strings.TrimSpace(raw))
	if text == "" {
		// The model answered, just not usefully; no heuristic tier here.
		s.logger.Warn("query structuring returned empty response", "query", query)
		return domain.DefaultQueryStructure(query)
	}

	var parsed struct {
		MainTopic        string         `json:"main_topic"`
		ExplanationLevel string         `json:"explanation_level"`
		TargetAudience   string         `json:"target_audience"`
		Filters          map[string]any `json:"filters"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		s.logger.Error("query structuring response is not valid json", "query", query, "raw", text, "error", err)
		return fallbackStructure(query)
	}

	out := domain.DefaultQueryStructure(query)
	if parsed.MainTopic != "" {
		out.MainTopic = parsed.MainTopic
	}
	if parsed.ExplanationLevel != "" {
		out.ExplanationLevel = domain.ExplanationLevel(parsed.ExplanationLevel)
	}
	if parsed.TargetAudience != "" {
		out.TargetAudience = domain.TargetAudience(parsed.TargetAudience)
	}
	if parsed.Filters != nil {
		out.Filters = parsed.Filters
	}
	return out
}

func fallbackStructure(query string) domain.QueryStructure {
	if structure, ok := childFriendlyStructure(query); ok {
		return structure
	}
	return domain.DefaultQueryStructure(query)
}
