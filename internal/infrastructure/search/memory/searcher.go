package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/oncorag/oncology-assistant/internal/core/domain"
	"github.com/oncorag/oncology-assistant/internal/core/ports"
)

// Searcher serves the knowledge-base search contract from an in-memory set
// of Q/A pairs, ranking by cosine similarity between the topic embedding and
// each question embedding. Question vectors are embedded once, on first use.
type Searcher struct {
	embedder ports.Embedder
	pairs    []domain.Candidate

	mu      sync.Mutex
	vectors [][]float32
}

func NewSearcher(embedder ports.Embedder, pairs []domain.Candidate) *Searcher {
	return &Searcher{embedder: embedder, pairs: pairs}
}

func (s *Searcher) Search(ctx context.Context, topic string, k int) ([]domain.Candidate, error) {
	if len(s.pairs) == 0 || k <= 0 {
		return nil, nil
	}

	topicVector, err := s.embedder.EmbedQuery(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("embed topic: %w", err)
	}
	vectors, err := s.questionVectors(ctx)
	if err != nil {
		return nil, err
	}

	type scored struct {
		candidate domain.Candidate
		score     float64
	}
	ranked := make([]scored, 0, len(s.pairs))
	for i, pair := range s.pairs {
		score, err := cosine(topicVector, vectors[i])
		if err != nil {
			continue
		}
		ranked = append(ranked, scored{candidate: pair, score: score})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	if k > len(ranked) {
		k = len(ranked)
	}

	out := make([]domain.Candidate, 0, k)
	for _, entry := range ranked[:k] {
		candidate := entry.candidate
		candidate.Score = entry.score
		out = append(out, candidate)
	}
	return out, nil
}

func (s *Searcher) questionVectors(ctx context.Context) ([][]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.vectors != nil {
		return s.vectors, nil
	}

	vectors := make([][]float32, len(s.pairs))
	for i, pair := range s.pairs {
		vector, err := s.embedder.EmbedQuery(ctx, pair.Question)
		if err != nil {
			return nil, fmt.Errorf("embed question %q: %w", pair.Question, err)
		}
		vectors[i] = vector
	}
	s.vectors = vectors
	return vectors, nil
}

func cosine(a, b []float32) (float64, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, fmt.Errorf("embedding length mismatch: %d vs %d", len(a), len(b))
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, fmt.Errorf("zero-magnitude embedding")
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
