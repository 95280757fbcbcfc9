package domain

import "context"

// EmbeddingDimension is the fixed dimensionality produced by the
// embedding collaborator.
const EmbeddingDimension = 1024

// TextExtractor converts uploaded resume bytes into plain text.
// Implementations return ErrUnsupportedFormat for unrecognized
// extensions.
type TextExtractor interface {
	Extract(content []byte, extension string) (string, error)
}

// VectorEncoder turns texts into fixed-length embedding vectors via an
// external model service.
type VectorEncoder interface {
	Encode(ctx context.Context, texts []string) ([][]float32, error)
}

// DomainClassifier predicts the top-k job domains for a resume
// embedding. The returned prediction is ordered by descending
// probability and has at most k entries.
type DomainClassifier interface {
	PredictTopK(ctx context.Context, embedding []float32, k int) (DomainPrediction, error)
}

// JobSearcher retrieves candidate job postings from the vector index.
// alpha controls the blend between lexical and vector similarity inside
// the engine and is passed through unchanged.
//
// A non-nil error means the engine itself failed; callers must not
// conflate that with an empty result set. Zero matching records is a
// nil error and an empty slice.
type JobSearcher interface {
	Search(ctx context.Context, vector []float32, query string, limit int, alpha float64) ([]JobCandidate, error)
}
