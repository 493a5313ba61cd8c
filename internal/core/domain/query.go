package domain

type ExplanationLevel string

const (
	LevelBasic         ExplanationLevel = "basic"
	LevelStandard      ExplanationLevel = "standard"
	LevelDetailed      ExplanationLevel = "detailed"
	LevelChildFriendly ExplanationLevel = "child-friendly"
)

type TargetAudience string

const (
	AudienceGeneral      TargetAudience = "general"
	AudiencePatient      TargetAudience = "patient"
	AudienceProfessional TargetAudience = "medical_professional"
	AudienceChild        TargetAudience = "child"
)

// QueryStructure is the decomposition of a raw user query into a normalized
// search topic plus presentation constraints. Built once per query, never stored.
type QueryStructure struct {
	MainTopic        string           `json:"main_topic"`
	ExplanationLevel ExplanationLevel `json:"explanation_level"`
	TargetAudience   TargetAudience   `json:"target_audience"`
	Filters          map[string]any   `json:"filters"`
}

// DefaultQueryStructure uses the raw query itself as the search topic.
func DefaultQueryStructure(query string) QueryStructure {
	return QueryStructure{
		MainTopic:        query,
		ExplanationLevel: LevelStandard,
		TargetAudience:   AudienceGeneral,
		Filters:          map[string]any{},
	}
}
