package ranking

import (
	"strings"

	"job-recommender/internal/domain"
)

// FilterByTopDomains narrows candidates to those whose industry matches
// a predicted domain with probability >= minDomainScore. Matching is
// case-insensitive on both sides.
//
// An empty result is not an error: the caller decides whether to fall
// back to the unfiltered candidate set.
func FilterByTopDomains(candidates []domain.JobCandidate, pred domain.DomainPrediction, minDomainScore float64) []domain.JobCandidate {
	if len(candidates) == 0 {
		return []domain.JobCandidate{}
	}

	relevant := make(map[string]bool, len(pred))
	for _, p := range pred {
		if p.Probability >= minDomainScore {
			relevant[strings.ToLower(p.Name)] = true
		}
	}

	filtered := make([]domain.JobCandidate, 0, len(candidates))
	for _, c := range candidates {
		if relevant[strings.ToLower(c.Industry)] {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
