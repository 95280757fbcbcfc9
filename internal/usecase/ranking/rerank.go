package ranking

import (
	"log/slog"
	"sort"

	"job-recommender/internal/domain"
)

const (
	// domainBonusFactor boosts candidates whose industry the classifier
	// is confident about (score above domainBonusThreshold).
	domainBonusFactor    = 0.3
	domainBonusThreshold = 0.5

	confidenceHighMin   = 0.7
	confidenceMediumMin = 0.3

	// maxResults caps the ranking before presentation-level truncation.
	maxResults = 100

	// minPerDomain is the floor of the diversity cap regardless of
	// candidate count.
	minPerDomain = 3
)

// Rerank fuses domain-fit and vector similarity into a combined score
// per candidate, assigns confidence tiers, and applies a soft
// per-domain diversity cap. Candidates are annotated and reordered in
// place; the returned slice is sorted by descending combined score and
// truncated to at most 100 entries.
//
// The diversity cap is soft: once a domain exceeds max(3, n/5) entries
// in the primary order, each further candidate of that domain has its
// combined score multiplied by (1 - diversityPenalty), permanently. The
// final resort may therefore still place a demoted candidate above a
// never-demoted low scorer.
func Rerank(candidates []domain.JobCandidate, pred domain.DomainPrediction, domainWeight, diversityPenalty float64, logger *slog.Logger) []domain.JobCandidate {
	if len(candidates) == 0 {
		return []domain.JobCandidate{}
	}

	scores := NewDomainScores(pred)

	for i := range candidates {
		c := &candidates[i]

		domainScore := scores.Score(c.Industry)
		vectorScore := 0.0
		if c.VectorScore != nil {
			vectorScore = clamp01(*c.VectorScore)
		}

		bonus := 0.0
		if domainScore > domainBonusThreshold {
			bonus = domainScore * domainBonusFactor
		}

		c.DomainScore = domainScore
		c.CombinedScore = domainWeight*domainScore + (1-domainWeight)*vectorScore + bonus

		switch {
		case domainScore >= confidenceHighMin:
			c.Confidence = domain.ConfidenceHigh
		case domainScore >= confidenceMediumMin:
			c.Confidence = domain.ConfidenceMedium
		default:
			c.Confidence = domain.ConfidenceLow
		}
	}

	// Ties keep input order, so the sort must be stable.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].CombinedScore > candidates[j].CombinedScore
	})

	maxPerDomain := len(candidates) / 5
	if maxPerDomain < minPerDomain {
		maxPerDomain = minPerDomain
	}

	counts := make(map[string]int)
	demoted := 0
	for i := range candidates {
		industry := candidates[i].Industry
		if industry == "" {
			industry = "Unknown"
		}
		if counts[industry] < maxPerDomain {
			counts[industry]++
			continue
		}
		candidates[i].CombinedScore *= 1 - diversityPenalty
		demoted++
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].CombinedScore > candidates[j].CombinedScore
	})

	if logger != nil {
		logger.Info("reranking_completed",
			slog.Int("candidate_count", len(candidates)),
			slog.Int("max_per_domain", maxPerDomain),
			slog.Int("demoted_count", demoted))
	}

	if len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}
	return candidates
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
