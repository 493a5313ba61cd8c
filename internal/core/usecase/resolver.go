package usecase

import (
	"context"
	"log/slog"

	"github.com/oncorag/oncology-assistant/internal/core/domain"
	"github.com/oncorag/oncology-assistant/internal/core/ports"
)

// ResolverConfig carries the scoring weights and classification thresholds.
// WeightEntailment is reserved for an NLI cross-encoder signal and is not
// applied in the current scoring formula. PartialThreshold is a fixed value
// independent of the weights; reconfiguring the weights can make it
// unreachable or trivially satisfied.
type ResolverConfig struct {
	TopK             int
	WeightJudge      float64
	WeightSimilarity float64
	WeightEntailment float64
	JudgeThreshold   float64
	PartialThreshold float64
}

func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		TopK:             5,
		WeightJudge:      0.5,
		WeightSimilarity: 0.3,
		WeightEntailment: 0.2,
		JudgeThreshold:   0.7,
		PartialThreshold: 0.6,
	}
}

func (c ResolverConfig) normalize() ResolverConfig {
	out := c
	def := DefaultResolverConfig()
	if out.TopK <= 0 {
		out.TopK = def.TopK
	}
	if out.WeightJudge <= 0 {
		out.WeightJudge = def.WeightJudge
	}
	if out.WeightSimilarity <= 0 {
		out.WeightSimilarity = def.WeightSimilarity
	}
	if out.WeightEntailment < 0 {
		out.WeightEntailment = def.WeightEntailment
	}
	if out.JudgeThreshold <= 0 {
		out.JudgeThreshold = def.JudgeThreshold
	}
	if out.PartialThreshold <= 0 {
		out.PartialThreshold = def.PartialThreshold
	}
	return out
}

// QueryStructuring and CandidateJudge are the resolver's internal seams,
// satisfied by QueryStructurer and LLMJudge.
type QueryStructuring interface {
	Structure(ctx context.Context, query string) domain.QueryStructure
}

type CandidateJudge interface {
	Judge(ctx context.Context, query, answer string) domain.Judgment
}

// Resolver orchestrates structuring, retrieval, per-candidate scoring and
// tri-state classification. It never returns an error: per-candidate
// failures skip the candidate, top-level failures degrade to no_match.
type Resolver struct {
	structurer QueryStructuring
	searcher   ports.KnowledgeSearcher
	embedder   ports.Embedder
	judge      CandidateJudge
	cfg        ResolverConfig
	logger     *slog.Logger
	metrics    Metrics
}

func NewResolver(
	structurer QueryStructuring,
	searcher ports.KnowledgeSearcher,
	embedder ports.Embedder,
	judge CandidateJudge,
	cfg ResolverConfig,
	logger *slog.Logger,
	metrics Metrics,
) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &Resolver{
		structurer: structurer,
		searcher:   searcher,
		embedder:   embedder,
		judge:      judge,
		cfg:        cfg.normalize(),
		logger:     logger,
		metrics:    metrics,
	}
}

func (r *Resolver) Resolve(ctx context.Context, query string) domain.ResolutionResult {
	result := r.resolve(ctx, query)
	r.metrics.ResolutionCompleted(result.Status)
	return result
}

func (r *Resolver) resolve(ctx context.Context, query string) domain.ResolutionResult {
	structure := r.structurer.Structure(ctx, query)

	candidates, err := r.searcher.Search(ctx, structure.MainTopic, r.cfg.TopK)
	if err != nil {
		r.logger.Error("knowledge base search failed", "topic", structure.MainTopic, "error",
			domain.WrapError(domain.ErrSearch, "search", err))
		return noMatch()
	}
	if len(candidates) == 0 {
		return noMatch()
	}

	if structure.ExplanationLevel == domain.LevelChildFriendly {
		candidates = filterSimplified(candidates)
	}

	// Embedding the raw query fails for all candidates at once; each
	// candidate is then skipped individually, same as any other
	// per-candidate evaluation failure.
	queryVector, queryEmbedErr := r.embedder.EmbedQuery(ctx, query)

	var best *domain.Evaluation
	bestScore := -1.0
	for _, candidate := range candidates {
		evaluation, err := r.evaluate(ctx, query, queryVector, queryEmbedErr, candidate)
		if err != nil {
			r.logger.Error("candidate evaluation failed", "question", candidate.Question, "error", err)
			r.metrics.CandidateSkipped()
			continue
		}
		r.metrics.CombinedScore(evaluation.CombinedScore)
		if evaluation.CombinedScore > bestScore {
			bestScore = evaluation.CombinedScore
			best = evaluation
		}
	}
	if best == nil {
		return noMatch()
	}

	status := r.classify(best)
	if status == domain.StatusNoMatch {
		return noMatch()
	}
	return domain.ResolutionResult{
		Status: status,
		Match: &domain.MatchData{
			Answer:     best.Candidate.Answer,
			Question:   best.Candidate.Question,
			Confidence: best.CombinedScore,
			Metrics: domain.MatchMetrics{
				Judgment:   best.Judgment,
				Similarity: best.Similarity,
			},
		},
	}
}

func (r *Resolver) evaluate(
	ctx context.Context,
	query string,
	queryVector []float32,
	queryEmbedErr error,
	candidate domain.Candidate,
) (*domain.Evaluation, error) {
	if queryEmbedErr != nil {
		return nil, domain.WrapError(domain.ErrTemporary, "embed query", queryEmbedErr)
	}

	candidateVector, err := r.embedder.EmbedQuery(ctx, candidate.Question)
	if err != nil {
		return nil, domain.WrapError(domain.ErrTemporary, "embed candidate question", err)
	}
	similarity, err := cosineSimilarity(queryVector, candidateVector)
	if err != nil {
		return nil, domain.WrapError(domain.ErrTemporary, "cosine similarity", err)
	}

	// Judge never fails; its fallback verdict is irrelevant/0.0.
	judgment := r.judge.Judge(ctx, query, candidate.Answer)

	combined := judgment.Confidence*r.cfg.WeightJudge + similarity*r.cfg.WeightSimilarity
	return &domain.Evaluation{
		Candidate:     candidate,
		Judgment:      judgment,
		Similarity:    similarity,
		CombinedScore: combined,
	}, nil
}

func (r *Resolver) classify(best *domain.Evaluation) domain.MatchStatus {
	if best.Judgment.Judgment == domain.VerdictRelevant && best.Judgment.Confidence >= r.cfg.JudgeThreshold {
		return domain.StatusRelevant
	}
	if best.CombinedScore >= r.cfg.PartialThreshold {
		return domain.StatusPartial
	}
	return domain.StatusNoMatch
}

func filterSimplified(candidates []domain.Candidate) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(candidates))
	for _, candidate := range candidates {
		if hasSimplifiedMarker(candidate.Answer) {
			out = append(out, candidate)
		}
	}
	return out
}

func noMatch() domain.ResolutionResult {
	return domain.ResolutionResult{Status: domain.StatusNoMatch}
}
