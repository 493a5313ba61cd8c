package usecase

import (
	"testing"
	"time"

	"github.com/oncorag/oncology-assistant/internal/core/domain"
)

func TestJudgmentCacheReturnsStoredJudgmentWithinTTL(t *testing.T) {
	current := time.Unix(1_000_000, 0)
	cache := newJudgmentCache(3600*time.Second, func() time.Time { return current })

	computes := 0
	compute := func() domain.Judgment {
		computes++
		return domain.Judgment{Judgment: domain.VerdictRelevant, Confidence: 0.8, Reason: "match"}
	}

	first, hit := cache.GetOrCompute("q", "a", compute)
	if hit {
		t.Fatalf("expected miss on first access")
	}

	current = current.Add(3599 * time.Second)
	second, hit := cache.GetOrCompute("q", "a", compute)
	if !hit {
		t.Fatalf("expected hit within ttl")
	}
	if computes != 1 {
		t.Fatalf("expected a single compute, got %d", computes)
	}
	if first != second {
		t.Fatalf("cached judgment differs: %+v vs %+v", first, second)
	}
}

func TestJudgmentCacheRecomputesAfterTTL(t *testing.T) {
	current := time.Unix(1_000_000, 0)
	cache := newJudgmentCache(3600*time.Second, func() time.Time { return current })

	computes := 0
	compute := func() domain.Judgment {
		computes++
		return domain.Judgment{Judgment: domain.VerdictIrrelevant, Confidence: 0.1}
	}

	cache.GetOrCompute("q", "a", compute)
	current = current.Add(3601 * time.Second)
	_, hit := cache.GetOrCompute("q", "a", compute)
	if hit {
		t.Fatalf("expected miss after ttl expiry")
	}
	if computes != 2 {
		t.Fatalf("expected recompute after expiry, got %d computes", computes)
	}
}

func TestJudgmentCacheKeysAreExactAndCaseSensitive(t *testing.T) {
	cache := NewJudgmentCache(3600 * time.Second)

	computes := 0
	compute := func() domain.Judgment {
		computes++
		return domain.Judgment{Judgment: domain.VerdictRelevant, Confidence: 1}
	}

	cache.GetOrCompute("What is chemo?", "An answer.", compute)
	cache.GetOrCompute("what is chemo?", "An answer.", compute)
	cache.GetOrCompute("What is chemo?", "An answer. ", compute)
	if computes != 3 {
		t.Fatalf("expected 3 distinct keys, got %d computes", computes)
	}
}

func TestPurgeExpiredDropsOnlyStaleEntries(t *testing.T) {
	current := time.Unix(1_000_000, 0)
	cache := newJudgmentCache(3600*time.Second, func() time.Time { return current })

	compute := func() domain.Judgment { return domain.Judgment{Judgment: domain.VerdictRelevant} }
	cache.GetOrCompute("old", "a", compute)
	current = current.Add(1800 * time.Second)
	cache.GetOrCompute("fresh", "a", compute)
	current = current.Add(1801 * time.Second)

	cache.PurgeExpired()
	if cache.Len() != 1 {
		t.Fatalf("expected 1 surviving entry, got %d", cache.Len())
	}
}
