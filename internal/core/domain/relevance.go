package domain

// Candidate is one entry retrieved from the verified Q/A knowledge base.
// Score is the search engine's own relevance value and is informational only.
type Candidate struct {
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Score    float64 `json:"score"`
}

type Verdict string

const (
	VerdictRelevant   Verdict = "relevant"
	VerdictIrrelevant Verdict = "irrelevant"
)

// Judgment is the judge model's verdict for one (query, answer) pair.
// Confidence is always clamped into [0,1] before a Judgment is constructed.
type Judgment struct {
	Judgment   Verdict `json:"judgment"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// Evaluation collects the per-candidate signals produced during one
// resolution pass. Transient, never persisted.
type Evaluation struct {
	Candidate     Candidate
	Judgment      Judgment
	Similarity    float64
	CombinedScore float64
}

type MatchStatus string

const (
	StatusRelevant MatchStatus = "relevant"
	StatusPartial  MatchStatus = "partial"
	StatusNoMatch  MatchStatus = "no_match"
)

// MatchMetrics exposes the component signals behind a resolution verdict.
type MatchMetrics struct {
	Judgment   Judgment `json:"llm_judge"`
	Similarity float64  `json:"similarity"`
}

// MatchData describes the winning candidate of a resolution.
type MatchData struct {
	Answer     string       `json:"answer"`
	Question   string       `json:"question"`
	Confidence float64      `json:"confidence"`
	Metrics    MatchMetrics `json:"metrics"`
}

// ResolutionResult is the resolver's tri-state output. Match is nil
// exactly when Status is StatusNoMatch.
type ResolutionResult struct {
	Status MatchStatus `json:"status"`
	Match  *MatchData  `json:"match_data,omitempty"`
}
