package ranking

import (
	"strings"

	"job-recommender/internal/domain"
)

// DomainScores is a case-insensitive lookup from industry name to
// predicted probability, built once per request from the classifier
// output. Domains absent from the prediction score 0.0.
type DomainScores map[string]float64

// NewDomainScores builds the lookup table from a domain prediction.
func NewDomainScores(pred domain.DomainPrediction) DomainScores {
	scores := make(DomainScores, len(pred))
	for _, p := range pred {
		scores[strings.ToLower(p.Name)] = p.Probability
	}
	return scores
}

// Score returns the predicted probability for an industry, or 0.0 when
// the industry was not among the predicted domains.
func (s DomainScores) Score(industry string) float64 {
	return s[strings.ToLower(industry)]
}
