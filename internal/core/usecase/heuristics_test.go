package usecase

import (
	"testing"

	"github.com/oncorag/oncology-assistant/internal/core/domain"
)

func TestChildFriendlyStructureDetectsPhrase(t *testing.T) {
	structure, ok := childFriendlyStructure("Explain chemotherapy like I'm 5")
	if !ok {
		t.Fatalf("expected child-friendly detection")
	}
	if structure.MainTopic != "Explain chemotherapy" {
		t.Fatalf("unexpected topic: %q", structure.MainTopic)
	}
	if structure.ExplanationLevel != domain.LevelChildFriendly {
		t.Fatalf("unexpected level: %s", structure.ExplanationLevel)
	}
	if structure.TargetAudience != domain.AudienceChild {
		t.Fatalf("unexpected audience: %s", structure.TargetAudience)
	}
	if simplified, _ := structure.Filters["simplified_language"].(bool); !simplified {
		t.Fatalf("expected simplified_language filter, got %v", structure.Filters)
	}
	if avoid, _ := structure.Filters["avoid_technical_terms"].(bool); !avoid {
		t.Fatalf("expected avoid_technical_terms filter, got %v", structure.Filters)
	}
}

func TestChildFriendlyStructureIsCaseInsensitive(t *testing.T) {
	structure, ok := childFriendlyStructure("What is radiotherapy? EXPLAIN TO A CHILD please")
	if !ok {
		t.Fatalf("expected child-friendly detection")
	}
	if structure.MainTopic != "What is radiotherapy?" {
		t.Fatalf("unexpected topic: %q", structure.MainTopic)
	}
}

func TestChildFriendlyStructureIgnoresPlainQueries(t *testing.T) {
	if _, ok := childFriendlyStructure("What is chemotherapy?"); ok {
		t.Fatalf("expected no detection")
	}
}

func TestHasSimplifiedMarker(t *testing.T) {
	cases := []struct {
		answer string
		want   bool
	}{
		{"Chemotherapy is like a medicine army fighting bad cells.", true},
		{"In SIMPLE terms, radiation targets tumor cells.", true},
		{"It works similar to a targeted strike.", true},
		{"This answer is easy to understand for everyone.", true},
		{"Cytotoxic agents disrupt mitosis in rapidly dividing cells.", false},
	}
	for _, tc := range cases {
		if got := hasSimplifiedMarker(tc.answer); got != tc.want {
			t.Fatalf("hasSimplifiedMarker(%q) = %v, want %v", tc.answer, got, tc.want)
		}
	}
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fence with trailing prose", "```json\n{\"a\":1}\n``` here you go", `{"a":1}`},
		{"bare fence only", "```\n{\"a\":1}\n```", ""},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		if got := stripCodeFence(tc.raw); got != tc.want {
			t.Fatalf("%s: stripCodeFence() = %q, want %q", tc.name, got, tc.want)
		}
	}
}
