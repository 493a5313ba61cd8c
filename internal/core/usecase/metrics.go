package usecase

import "github.com/oncorag/oncology-assistant/internal/core/domain"

// Metrics receives engine events. Implementations must be safe for
// concurrent use; a no-op implementation is used when nil is injected.
type Metrics interface {
	ResolutionCompleted(status domain.MatchStatus)
	CandidateSkipped()
	JudgeCacheHit()
	JudgeCacheMiss()
	JudgeFallback()
	CombinedScore(score float64)
	AnswerServed(source domain.AnswerSource)
}

type NopMetrics struct{}

func (NopMetrics) ResolutionCompleted(domain.MatchStatus) {}
func (NopMetrics) CandidateSkipped()                      {}
func (NopMetrics) JudgeCacheHit()                         {}
func (NopMetrics) JudgeCacheMiss()                        {}
func (NopMetrics) JudgeFallback()                         {}
func (NopMetrics) CombinedScore(float64)                  {}
func (NopMetrics) AnswerServed(domain.AnswerSource)       {}
