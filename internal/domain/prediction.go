package domain

// DomainProbability pairs a predicted industry domain with its softmax
// probability.
type DomainProbability struct {
	Name        string
	Probability float64
}

// DomainPrediction is a top-k classifier output ordered by descending
// probability. Probabilities are not required to sum to 1 after top-k
// truncation.
type DomainPrediction []DomainProbability

// Top returns the highest-probability domain name, or "" when the
// prediction is empty.
func (p DomainPrediction) Top() string {
	if len(p) == 0 {
		return ""
	}
	return p[0].Name
}
