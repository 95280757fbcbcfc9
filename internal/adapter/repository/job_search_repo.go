package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"job-recommender/internal/domain"
)

type jobSearchRepository struct {
	pool *pgxpool.Pool
}

// NewJobSearchRepository creates a JobSearcher backed by the jobs table
// and its pgvector embedding column.
func NewJobSearchRepository(pool *pgxpool.Pool) domain.JobSearcher {
	return &jobSearchRepository{pool: pool}
}

// Search runs a hybrid query: cosine similarity against the posting
// embeddings blended with a lexical rank over title and description.
// alpha weights the vector side, mirroring the engine's hybrid
// semantics (alpha=1 is pure vector search).
func (r *jobSearchRepository) Search(ctx context.Context, vector []float32, query string, limit int, alpha float64) ([]domain.JobCandidate, error) {
	const sql = `
		SELECT job_id, company_id, title, description, industry,
		       $4::float8 * (1 - (embedding <=> $1)) +
		       (1 - $4::float8) * ts_rank(search_tsv, plainto_tsquery('english', $2)) AS score
		FROM jobs
		ORDER BY score DESC
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, sql, pgvector.NewVector(vector), query, limit, alpha)
	if err != nil {
		return nil, fmt.Errorf("failed to search jobs: %w", err)
	}
	defer rows.Close()

	var candidates []domain.JobCandidate
	for rows.Next() {
		var (
			c                domain.JobCandidate
			jobID, companyID *string
			title, desc      *string
			industry         *string
			score            float64
		)
		if err := rows.Scan(&jobID, &companyID, &title, &desc, &industry, &score); err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		c.JobID = deref(jobID)
		c.CompanyID = deref(companyID)
		c.Title = deref(title)
		c.Description = deref(desc)
		c.Industry = deref(industry)
		if c.Industry == "" {
			c.Industry = "Unknown"
		}
		c.VectorScore = &score
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return candidates, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
