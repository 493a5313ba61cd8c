package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/oncorag/oncology-assistant/internal/core/domain"
)

func TestStructureParsesModelJSON(t *testing.T) {
	model := &chatModelFake{response: `{
		"main_topic": "chemotherapy side effects",
		"explanation_level": "detailed",
		"target_audience": "patient",
		"filters": {"include_statistics": true}
	}`}
	structure := NewQueryStructurer(model, nil).Structure(context.Background(), "What are the side effects of chemo?")

	if structure.MainTopic != "chemotherapy side effects" {
		t.Fatalf("unexpected topic: %q", structure.MainTopic)
	}
	if structure.ExplanationLevel != domain.LevelDetailed {
		t.Fatalf("unexpected level: %s", structure.ExplanationLevel)
	}
	if structure.TargetAudience != domain.AudiencePatient {
		t.Fatalf("unexpected audience: %s", structure.TargetAudience)
	}
	if include, _ := structure.Filters["include_statistics"].(bool); !include {
		t.Fatalf("unexpected filters: %v", structure.Filters)
	}
}

func TestStructureMissingFieldsKeepDefaults(t *testing.T) {
	model := &chatModelFake{response: `{"main_topic": "radiotherapy"}`}
	structure := NewQueryStructurer(model, nil).Structure(context.Background(), "radiotherapy?")

	if structure.MainTopic != "radiotherapy" {
		t.Fatalf("unexpected topic: %q", structure.MainTopic)
	}
	if structure.ExplanationLevel != domain.LevelStandard || structure.TargetAudience != domain.AudienceGeneral {
		t.Fatalf("expected defaults, got %+v", structure)
	}
}

func TestStructureEmptyResponseFallsBackToDefault(t *testing.T) {
	// An empty response is not a model failure: the heuristic tier is
	// skipped and the raw query becomes the topic.
	model := &chatModelFake{response: "``````"}
	query := "Explain chemotherapy like I'm 5"
	structure := NewQueryStructurer(model, nil).Structure(context.Background(), query)

	if structure.MainTopic != query {
		t.Fatalf("unexpected topic: %q", structure.MainTopic)
	}
	if structure.ExplanationLevel != domain.LevelStandard {
		t.Fatalf("expected standard level, got %s", structure.ExplanationLevel)
	}
}

func TestStructureInvalidJSONUsesChildHeuristic(t *testing.T) {
	model := &chatModelFake{response: "I cannot produce JSON right now."}
	structure := NewQueryStructurer(model, nil).Structure(context.Background(), "Explain chemotherapy like I'm 5")

	if structure.ExplanationLevel != domain.LevelChildFriendly {
		t.Fatalf("expected child-friendly level, got %s", structure.ExplanationLevel)
	}
	if structure.MainTopic != "Explain chemotherapy" {
		t.Fatalf("unexpected topic: %q", structure.MainTopic)
	}
}

func TestStructureModelErrorUsesHeuristicThenDefault(t *testing.T) {
	model := &chatModelFake{err: errors.New("model unavailable")}
	structurer := NewQueryStructurer(model, nil)

	child := structurer.Structure(context.Background(), "What is leukemia? explain to a child")
	if child.TargetAudience != domain.AudienceChild {
		t.Fatalf("expected child audience, got %s", child.TargetAudience)
	}

	plain := structurer.Structure(context.Background(), "What is leukemia?")
	if plain.MainTopic != "What is leukemia?" || plain.TargetAudience != domain.AudienceGeneral {
		t.Fatalf("expected default structure, got %+v", plain)
	}
}
