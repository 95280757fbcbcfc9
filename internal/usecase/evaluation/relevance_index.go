package evaluation

import (
	"sort"
	"strings"
)

const (
	appliesWeight = 0.7
	viewsWeight   = 0.3
)

// ReferenceJob is one row of the ground-truth dataset.
type ReferenceJob struct {
	JobID        string
	Title        string
	ParentDomain string
	Views        int
	Applies      int

	// Relevance is derived from engagement counters at index build time.
	Relevance float64
}

// RelevanceIndex holds the reference dataset with precomputed relevance
// scores. It is built once and treated as immutable afterwards, so it is
// safe for concurrent reads.
type RelevanceIndex struct {
	jobs []ReferenceJob
}

// NewRelevanceIndex precomputes relevance scores over the reference
// jobs. With engagement counters present the score is
// 0.7*applies/max(applies) + 0.3*views/max(views); without them every
// record gets a uniform 0.5.
func NewRelevanceIndex(jobs []ReferenceJob, hasEngagement bool) *RelevanceIndex {
	owned := make([]ReferenceJob, len(jobs))
	copy(owned, jobs)

	if !hasEngagement {
		for i := range owned {
			owned[i].Relevance = 0.5
		}
		return &RelevanceIndex{jobs: owned}
	}

	maxViews, maxApplies := 1, 1
	for _, j := range owned {
		if j.Views > maxViews {
			maxViews = j.Views
		}
		if j.Applies > maxApplies {
			maxApplies = j.Applies
		}
	}
	for i := range owned {
		owned[i].Relevance = appliesWeight*float64(owned[i].Applies)/float64(maxApplies) +
			viewsWeight*float64(owned[i].Views)/float64(maxViews)
	}
	return &RelevanceIndex{jobs: owned}
}

// Len reports the number of reference jobs in the index.
func (x *RelevanceIndex) Len() int {
	return len(x.jobs)
}

// IdealRanking returns the top-k reference jobs for a domain, sorted by
// descending relevance. The domain is matched case-insensitively as a
// substring of each record's parent domain; when nothing matches, the
// entire reference set is used rather than dropping evaluation.
func (x *RelevanceIndex) IdealRanking(domainName string, k int) []ReferenceJob {
	needle := strings.ToLower(domainName)

	matched := make([]ReferenceJob, 0, len(x.jobs))
	for _, j := range x.jobs {
		if strings.Contains(strings.ToLower(j.ParentDomain), needle) {
			matched = append(matched, j)
		}
	}
	if len(matched) == 0 {
		matched = append(matched, x.jobs...)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Relevance > matched[j].Relevance
	})

	if len(matched) > k {
		matched = matched[:k]
	}
	return matched
}
