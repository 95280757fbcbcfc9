package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRelevanceIndex_EngagementWeighted(t *testing.T) {
	jobs := []ReferenceJob{
		{JobID: "a", Title: "A", ParentDomain: "Tech", Views: 100, Applies: 50},
		{JobID: "b", Title: "B", ParentDomain: "Tech", Views: 50, Applies: 25},
		{JobID: "c", Title: "C", ParentDomain: "Tech", Views: 0, Applies: 0},
	}

	idx := NewRelevanceIndex(jobs, true)
	require.Equal(t, 3, idx.Len())

	// Max views 100, max applies 50.
	assert.InDelta(t, 1.0, idx.jobs[0].Relevance, 1e-9)
	assert.InDelta(t, 0.5, idx.jobs[1].Relevance, 1e-9)
	assert.InDelta(t, 0.0, idx.jobs[2].Relevance, 1e-9)
}

func TestNewRelevanceIndex_UniformWithoutEngagement(t *testing.T) {
	jobs := []ReferenceJob{
		{JobID: "a", Title: "A", ParentDomain: "Tech"},
		{JobID: "b", Title: "B", ParentDomain: "Finance"},
	}

	idx := NewRelevanceIndex(jobs, false)
	for _, j := range idx.jobs {
		assert.InDelta(t, 0.5, j.Relevance, 1e-9)
	}
}

func TestNewRelevanceIndex_DoesNotAliasInput(t *testing.T) {
	jobs := []ReferenceJob{
		{JobID: "a", Title: "A", ParentDomain: "Tech", Views: 10, Applies: 10},
	}

	idx := NewRelevanceIndex(jobs, true)
	jobs[0].Title = "mutated"

	assert.Equal(t, "A", idx.jobs[0].Title)
}

func TestIdealRanking_DomainSubstringMatch(t *testing.T) {
	jobs := []ReferenceJob{
		{JobID: "a", Title: "A", ParentDomain: "Healthcare Services", Views: 10, Applies: 10},
		{JobID: "b", Title: "B", ParentDomain: "Healthcare Services", Views: 100, Applies: 100},
		{JobID: "c", Title: "C", ParentDomain: "Finance", Views: 50, Applies: 50},
	}
	idx := NewRelevanceIndex(jobs, true)

	ideal := idx.IdealRanking("healthcare", 10)

	require.Len(t, ideal, 2)
	// Sorted by descending relevance.
	assert.Equal(t, "b", ideal[0].JobID)
	assert.Equal(t, "a", ideal[1].JobID)
}

func TestIdealRanking_FallsBackToEntireSet(t *testing.T) {
	jobs := []ReferenceJob{
		{JobID: "a", Title: "A", ParentDomain: "Tech"},
		{JobID: "b", Title: "B", ParentDomain: "Finance"},
	}
	idx := NewRelevanceIndex(jobs, false)

	ideal := idx.IdealRanking("Agriculture", 10)

	assert.Len(t, ideal, 2)
}

func TestIdealRanking_TruncatesToK(t *testing.T) {
	jobs := make([]ReferenceJob, 0, 30)
	for i := 0; i < 30; i++ {
		jobs = append(jobs, ReferenceJob{
			JobID:        string(rune('a' + i)),
			Title:        "T",
			ParentDomain: "Tech",
			Views:        i,
			Applies:      i,
		})
	}
	idx := NewRelevanceIndex(jobs, true)

	ideal := idx.IdealRanking("Tech", 20)

	require.Len(t, ideal, 20)
	// Highest-engagement records come first.
	assert.Equal(t, 29, ideal[0].Applies)
}
