package evaluation

import (
	"fmt"
	"hash/fnv"
	"log/slog"
	"math"
	"strings"
	"sync/atomic"

	"job-recommender/internal/domain"
)

const (
	// idealRankingSize is how many reference jobs form the ideal set.
	idealRankingSize = 20

	// titleMatchPrefixLen bounds the title prefix used for partial
	// relevance matching.
	titleMatchPrefixLen = 20

	exactMatchRelevance   = 1.0
	partialMatchRelevance = 0.7
)

// Report is an immutable snapshot of ranking-quality metrics for one
// evaluation call.
type Report struct {
	DCG          float64 `json:"dcg"`
	IDCG         float64 `json:"idcg"`
	NDCG         float64 `json:"ndcg"`
	Precision    float64 `json:"precision"`
	Recall       float64 `json:"recall"`
	MatchRate    float64 `json:"match_rate"`
	AvgRelevance float64 `json:"avg_relevance"`

	NumRecommendations int    `json:"num_recommendations"`
	NumIdealJobs       int    `json:"num_ideal_jobs"`
	NumMatches         int    `json:"num_matches"`
	Domain             string `json:"domain"`

	// Fallback marks heuristic metrics produced without ground truth.
	Fallback bool `json:"fallback"`
}

// Evaluator scores produced rankings against the relevance ground
// truth. The index is published at most once (typically by the
// reference loader) and read concurrently; until it arrives every
// evaluation produces a fallback report.
type Evaluator struct {
	index  atomic.Pointer[RelevanceIndex]
	logger *slog.Logger
}

// NewEvaluator creates an evaluator without ground truth; it runs in
// fallback mode until SetIndex is called.
func NewEvaluator(logger *slog.Logger) *Evaluator {
	return &Evaluator{logger: logger}
}

// SetIndex publishes the relevance index. The first non-nil index wins;
// later calls are ignored to keep the ground truth immutable for the
// process lifetime.
func (e *Evaluator) SetIndex(idx *RelevanceIndex) {
	if idx == nil {
		return
	}
	e.index.CompareAndSwap(nil, idx)
}

// Ready reports whether ground-truth evaluation is available.
func (e *Evaluator) Ready() bool {
	return e.index.Load() != nil
}

// Evaluate computes DCG/IDCG/nDCG and precision/recall-style metrics
// for a produced ranking within one domain. Inputs are not mutated.
//
// Produced candidates are scored independently, so duplicates matching
// the same ideal job each earn full relevance; a ranking with repeats
// can push DCG past IDCG and nDCG above 1.
func (e *Evaluator) Evaluate(ranking []domain.JobCandidate, domainName string, k int) Report {
	idx := e.index.Load()
	if idx == nil || len(ranking) == 0 {
		return fallbackReport(ranking, domainName)
	}

	ideal := idx.IdealRanking(domainName, idealRankingSize)
	if len(ideal) == 0 {
		return fallbackReport(ranking, domainName)
	}

	relevance := relevanceScores(ranking, ideal)

	dcg := discountedCumulativeGain(relevance, k)
	idealSlots := k
	if len(ideal) < idealSlots {
		idealSlots = len(ideal)
	}
	idcg := idealDiscountedCumulativeGain(idealSlots)

	ndcg := 0.0
	if idcg > 0 {
		ndcg = dcg / idcg
	}

	matches := 0
	sum := 0.0
	for _, rel := range relevance {
		if rel > 0 {
			matches++
		}
		sum += rel
	}
	matchRate := float64(matches) / float64(len(ranking))

	if e.logger != nil {
		e.logger.Info("evaluation_completed",
			slog.String("domain", domainName),
			slog.Int("recommendation_count", len(ranking)),
			slog.Int("ideal_count", len(ideal)),
			slog.Int("match_count", matches),
			slog.Float64("ndcg", ndcg))
	}

	return Report{
		DCG:                dcg,
		IDCG:               idcg,
		NDCG:               ndcg,
		Precision:          matchRate,
		Recall:             float64(matches) / float64(len(ideal)),
		MatchRate:          matchRate,
		AvgRelevance:       sum / float64(len(relevance)),
		NumRecommendations: len(ranking),
		NumIdealJobs:       len(ideal),
		NumMatches:         matches,
		Domain:             domainName,
	}
}

// relevanceScores maps each produced candidate to a relevance score:
// 1.0 for an ideal-set id hit, 0.7 when the candidate's title prefix
// appears in an ideal title, 0.0 otherwise.
func relevanceScores(ranking []domain.JobCandidate, ideal []ReferenceJob) []float64 {
	idealIDs := make(map[string]bool, len(ideal))
	idealTitles := make([]string, 0, len(ideal))
	for _, j := range ideal {
		idealIDs[j.JobID] = true
		idealTitles = append(idealTitles, strings.ToLower(j.Title))
	}

	scores := make([]float64, 0, len(ranking))
	for _, c := range ranking {
		if idealIDs[extractJobIdentifier(c)] {
			scores = append(scores, exactMatchRelevance)
			continue
		}

		prefix := strings.ToLower(c.Title)
		if runes := []rune(prefix); len(runes) > titleMatchPrefixLen {
			prefix = string(runes[:titleMatchPrefixLen])
		}
		if prefix == "" {
			scores = append(scores, 0)
			continue
		}

		matched := false
		for _, title := range idealTitles {
			if strings.Contains(title, prefix) {
				matched = true
				break
			}
		}
		if matched {
			scores = append(scores, partialMatchRelevance)
		} else {
			scores = append(scores, 0)
		}
	}
	return scores
}

// extractJobIdentifier derives a stable identifier for a candidate.
// Priority: explicit job id, then company id + title hash, then title
// hash alone, then the "unknown" sentinel. Deterministic for identical
// input.
func extractJobIdentifier(c domain.JobCandidate) string {
	if c.JobID != "" {
		return c.JobID
	}
	if c.CompanyID != "" && c.Title != "" {
		return fmt.Sprintf("%s_%04d", c.CompanyID, titleHash(c.Title))
	}
	if c.Title != "" {
		return fmt.Sprintf("title_%04d", titleHash(c.Title))
	}
	return "unknown"
}

func titleHash(title string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(title))
	return h.Sum32() % 10000
}

// discountedCumulativeGain computes DCG over the top-k relevance
// scores: sum of rel_i / log2(i+2) for 0-indexed position i.
func discountedCumulativeGain(relevance []float64, k int) float64 {
	if k > 0 && len(relevance) > k {
		relevance = relevance[:k]
	}
	dcg := 0.0
	for i, rel := range relevance {
		dcg += rel / math.Log2(float64(i+2))
	}
	return dcg
}

// idealDiscountedCumulativeGain is the best possible DCG over n slots,
// assuming perfect relevance at each.
func idealDiscountedCumulativeGain(n int) float64 {
	idcg := 0.0
	for i := 0; i < n; i++ {
		idcg += 1.0 / math.Log2(float64(i+2))
	}
	return idcg
}

// fallbackReport estimates quality from candidate completeness when
// ground truth is missing or the ranking is empty, so callers always
// get displayable metrics.
func fallbackReport(ranking []domain.JobCandidate, domainName string) Report {
	if len(ranking) == 0 {
		return Report{
			IDCG:     1.0,
			Domain:   domainName,
			Fallback: true,
		}
	}

	valid := 0
	for _, c := range ranking {
		if c.Title != "" && c.Industry != "" {
			valid++
		}
	}
	quality := float64(valid) / float64(len(ranking))

	return Report{
		DCG:                quality * 2,
		IDCG:               3.0,
		NDCG:               quality * 0.6,
		Precision:          quality,
		Recall:             quality * 0.5,
		MatchRate:          quality,
		AvgRelevance:       quality,
		NumRecommendations: len(ranking),
		NumIdealJobs:       10,
		NumMatches:         int(quality * float64(len(ranking))),
		Domain:             domainName,
		Fallback:           true,
	}
}
