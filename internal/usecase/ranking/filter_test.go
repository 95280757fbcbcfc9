package ranking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-recommender/internal/domain"
	"job-recommender/internal/usecase/ranking"
)

func TestFilterByTopDomains(t *testing.T) {
	candidates := []domain.JobCandidate{
		{Title: "Nurse", Industry: "Healthcare"},
		{Title: "Trader", Industry: "Finance"},
		{Title: "Chef", Industry: "Hospitality"},
	}
	pred := domain.DomainPrediction{
		{Name: "Healthcare", Probability: 0.6},
		{Name: "Finance", Probability: 0.3},
		{Name: "Hospitality", Probability: 0.01},
	}

	filtered := ranking.FilterByTopDomains(candidates, pred, 0.05)

	require.Len(t, filtered, 2)
	assert.Equal(t, "Nurse", filtered[0].Title)
	assert.Equal(t, "Trader", filtered[1].Title)
}

func TestFilterByTopDomains_CaseInsensitive(t *testing.T) {
	candidates := []domain.JobCandidate{
		{Title: "Nurse", Industry: "HEALTHCARE"},
	}
	pred := domain.DomainPrediction{
		{Name: "healthcare", Probability: 0.9},
	}

	filtered := ranking.FilterByTopDomains(candidates, pred, 0.05)
	assert.Len(t, filtered, 1)
}

func TestFilterByTopDomains_ThresholdIsInclusive(t *testing.T) {
	candidates := []domain.JobCandidate{
		{Title: "Trader", Industry: "Finance"},
	}
	pred := domain.DomainPrediction{
		{Name: "Finance", Probability: 0.05},
	}

	filtered := ranking.FilterByTopDomains(candidates, pred, 0.05)
	assert.Len(t, filtered, 1)
}

func TestFilterByTopDomains_EmptyCandidates(t *testing.T) {
	pred := domain.DomainPrediction{{Name: "Finance", Probability: 0.9}}

	filtered := ranking.FilterByTopDomains(nil, pred, 0.05)
	assert.NotNil(t, filtered)
	assert.Empty(t, filtered)
}

func TestFilterByTopDomains_NoDomainClearsEverything(t *testing.T) {
	candidates := []domain.JobCandidate{
		{Title: "Nurse", Industry: "Healthcare"},
		{Title: "Trader", Industry: "Finance"},
	}
	pred := domain.DomainPrediction{
		{Name: "Hospitality", Probability: 0.9},
	}

	filtered := ranking.FilterByTopDomains(candidates, pred, 0.05)
	assert.Empty(t, filtered)
}

func TestFilterByTopDomains_ThresholdAboveAllProbabilities(t *testing.T) {
	candidates := []domain.JobCandidate{
		{Title: "Nurse", Industry: "Healthcare"},
	}
	pred := domain.DomainPrediction{
		{Name: "Healthcare", Probability: 0.99},
	}

	filtered := ranking.FilterByTopDomains(candidates, pred, 1.1)
	assert.Empty(t, filtered)
}
