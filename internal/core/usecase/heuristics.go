package usecase

import (
	"strings"

	"github.com/oncorag/oncology-assistant/internal/core/domain"
)

// Pure text heuristics. These run without any external service and are the
// last line of defense when the generative model is unavailable.

var childFriendlyPhrases = []string{"like i'm 5", "explain to a child"}

// childFriendlyStructure detects "explain like I'm 5"-style phrasing and, if
// present, builds the simplified-presentation structure with the text before
// the phrase as the topic.
func childFriendlyStructure(query string) (domain.QueryStructure, bool) {
	lower := strings.ToLower(query)
	for _, phrase := range childFriendlyPhrases {
		idx := strings.Index(lower, phrase)
		if idx < 0 {
			continue
		}
		return domain.QueryStructure{
			MainTopic:        strings.TrimSpace(query[:idx]),
			ExplanationLevel: domain.LevelChildFriendly,
			TargetAudience:   domain.AudienceChild,
			Filters: map[string]any{
				"simplified_language":   true,
				"avoid_technical_terms": true,
			},
		}, true
	}
	return domain.QueryStructure{}, false
}

// Marker phrases that act as a proxy for "this answer is already written in
// simplified language".
var simplifiedMarkers = []string{"simple", "easy to understand", "like a", "similar to"}

func hasSimplifiedMarker(answer string) bool {
	lower := strings.ToLower(answer)
	for _, marker := range simplifiedMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// stripCodeFence removes a Markdown ```json fence around a model response.
// Text after the closing fence is discarded; a response that is nothing but
// fence markers strips down to the empty string.
func stripCodeFence(raw string) string {
	text := raw
	if idx := strings.Index(text, "```json"); idx >= 0 {
		text = text[idx+len("```json"):]
	}
	if idx := strings.Index(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
