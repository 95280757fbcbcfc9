package domain

// Confidence buckets a candidate's domain fit for presentation.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// JobCandidate is a single job posting surfaced by the search engine for
// one request. VectorScore is nil when the engine returned no similarity
// score for the record.
//
// DomainScore, CombinedScore and Confidence are written during reranking
// and read by the HTTP layer and the evaluator. Candidates are request
// scoped and must not be shared across concurrent requests.
//
// The JSON tags mirror the recommendation endpoint's wire shape so a
// saved response body can be read back for offline evaluation.
type JobCandidate struct {
	Title       string `json:"title"`
	Industry    string `json:"industry"`
	Description string `json:"description"`
	CompanyID   string `json:"company_id"`
	// JobID is optional; empty means the index carries no explicit id.
	JobID       string   `json:"job_id,omitempty"`
	VectorScore *float64 `json:"vector_score,omitempty"`

	DomainScore   float64    `json:"domain_score"`
	CombinedScore float64    `json:"combined_score"`
	Confidence    Confidence `json:"confidence"`
}
