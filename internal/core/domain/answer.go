package domain

type AnswerSource string

const (
	SourceVerified  AnswerSource = "verified_answer"
	SourceGenerated AnswerSource = "llm_generated"
	SourceError     AnswerSource = "error"
)

// GeneratedAnswer is the single value exposed to callers of the engine.
// Metrics is set only when the answer came from a verified match.
type GeneratedAnswer struct {
	Answer     string        `json:"answer"`
	Source     AnswerSource  `json:"source"`
	Confidence float64       `json:"confidence"`
	Metrics    *MatchMetrics `json:"metrics,omitempty"`
}

type ChatRole string

const (
	RoleSystem ChatRole = "system"
	RoleUser   ChatRole = "user"
)

// ChatMessage is one role-tagged message sent to the generative model.
type ChatMessage struct {
	Role    ChatRole
	Content string
}
