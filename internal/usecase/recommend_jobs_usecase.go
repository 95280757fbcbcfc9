package usecase

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/errgroup"

	"job-recommender/internal/domain"
	"job-recommender/internal/usecase/evaluation"
	"job-recommender/internal/usecase/ranking"
)

// RecommendInput carries one uploaded resume through the pipeline.
type RecommendInput struct {
	Filename string
	Resume   []byte
	// Evaluate requests a ranking-quality report alongside the
	// recommendations. Evaluated requests bypass the result cache.
	Evaluate bool
}

// StageTiming reports per-stage pipeline latency in milliseconds.
type StageTiming struct {
	ExtractMS int64 `json:"resume_processing_ms"`
	EmbedMS   int64 `json:"embedding_generation_ms"`
	PredictMS int64 `json:"domain_prediction_ms"`
	SearchMS  int64 `json:"vector_search_ms"`
	RerankMS  int64 `json:"reranking_ms"`
	TotalMS   int64 `json:"total_pipeline_ms"`
}

// RecommendOutput is the result of one pipeline execution. An empty
// Recommendations slice is a valid outcome, not an error.
type RecommendOutput struct {
	RequestID       string
	TopDomains      domain.DomainPrediction
	Recommendations []domain.JobCandidate
	// SearchDegraded is set when the search engine failed and the
	// pipeline fell open to an empty candidate set. It distinguishes
	// "engine down" from "no matching jobs".
	SearchDegraded bool
	Evaluation     *evaluation.Report
	Timing         StageTiming
}

// PipelineConfig holds the tunable ranking and retrieval parameters.
type PipelineConfig struct {
	DomainWeight       float64
	DiversityPenalty   float64
	MinDomainScore     float64
	SearchLimit        int
	SearchAlpha        float64
	TopKDomains        int
	MaxRecommendations int
	QueryTextLimit     int
	EvaluationK        int
}

// RecommendJobsUsecase runs the resume-to-recommendations pipeline.
type RecommendJobsUsecase interface {
	Execute(ctx context.Context, input RecommendInput) (*RecommendOutput, error)
}

type recommendJobsUsecase struct {
	extractor  domain.TextExtractor
	encoder    domain.VectorEncoder
	classifier domain.DomainClassifier
	searcher   domain.JobSearcher
	evaluator  *evaluation.Evaluator
	cfg        PipelineConfig
	cache      *lru.LRU[string, *RecommendOutput]
	logger     *slog.Logger
}

// RecommendJobsOption configures optional usecase behavior.
type RecommendJobsOption func(*recommendJobsUsecase)

// WithResultCache enables an LRU cache of pipeline outputs keyed by
// resume content and ranking parameters.
func WithResultCache(size int, ttl time.Duration) RecommendJobsOption {
	return func(u *recommendJobsUsecase) {
		if size > 0 {
			u.cache = lru.NewLRU[string, *RecommendOutput](size, nil, ttl)
		}
	}
}

// NewRecommendJobsUsecase wires the pipeline from its collaborators.
func NewRecommendJobsUsecase(
	extractor domain.TextExtractor,
	encoder domain.VectorEncoder,
	classifier domain.DomainClassifier,
	searcher domain.JobSearcher,
	evaluator *evaluation.Evaluator,
	cfg PipelineConfig,
	logger *slog.Logger,
	opts ...RecommendJobsOption,
) RecommendJobsUsecase {
	u := &recommendJobsUsecase{
		extractor:  extractor,
		encoder:    encoder,
		classifier: classifier,
		searcher:   searcher,
		evaluator:  evaluator,
		cfg:        cfg,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *recommendJobsUsecase) Execute(ctx context.Context, input RecommendInput) (*RecommendOutput, error) {
	requestID := uuid.New().String()
	totalStart := time.Now()

	// 1. Extract resume text.
	extractStart := time.Now()
	text, err := u.extractor.Extract(input.Resume, filepath.Ext(input.Filename))
	if err != nil {
		return nil, fmt.Errorf("failed to extract resume text: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyResume
	}
	extractMS := time.Since(extractStart).Milliseconds()

	// Cached outputs are fully scored and read-only downstream, so
	// returning a shared result is safe. Evaluated requests skip the
	// cache because the report depends on ground-truth availability.
	cacheKey := u.cacheKey(input.Resume)
	if u.cache != nil && !input.Evaluate {
		if cached, ok := u.cache.Get(cacheKey); ok {
			u.logger.Info("recommendation_cache_hit",
				slog.String("request_id", requestID))
			return cached, nil
		}
	}

	// 2. Embed the resume.
	embedStart := time.Now()
	embeddings, err := u.encoder.Encode(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to embed resume: %w", err)
	}
	if len(embeddings) != 1 {
		return nil, fmt.Errorf("expected 1 embedding, got %d", len(embeddings))
	}
	vector := embeddings[0]
	embedMS := time.Since(embedStart).Milliseconds()

	// 3. Predict domains and search candidates. Both depend only on
	// the embedding, so they run concurrently. A classifier failure
	// aborts the request; a search failure fails open to an empty
	// candidate set with the degraded flag raised.
	var (
		prediction     domain.DomainPrediction
		candidates     []domain.JobCandidate
		searchDegraded bool
		predictMS      int64
		searchMS       int64
	)
	queryText := truncateRunes(text, u.cfg.QueryTextLimit)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		pred, err := u.classifier.PredictTopK(gctx, vector, u.cfg.TopKDomains)
		predictMS = time.Since(start).Milliseconds()
		if err != nil {
			return fmt.Errorf("failed to predict domains: %w", err)
		}
		prediction = pred
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		results, err := u.searcher.Search(gctx, vector, queryText, u.cfg.SearchLimit, u.cfg.SearchAlpha)
		searchMS = time.Since(start).Milliseconds()
		if err != nil {
			u.logger.Error("job_search_failed",
				slog.String("request_id", requestID),
				slog.String("error", err.Error()))
			searchDegraded = true
			return nil
		}
		candidates = results
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	output := &RecommendOutput{
		RequestID:       requestID,
		TopDomains:      prediction,
		Recommendations: []domain.JobCandidate{},
		SearchDegraded:  searchDegraded,
	}

	// 4. Filter and rerank.
	rerankStart := time.Now()
	if len(candidates) > 0 {
		toRank := ranking.FilterByTopDomains(candidates, prediction, u.cfg.MinDomainScore)
		if len(toRank) == 0 {
			// Explicit degraded mode: ranking proceeds over the
			// unfiltered set, ordered by similarity plus bonus only.
			u.logger.Warn("domain_filter_bypassed",
				slog.String("request_id", requestID),
				slog.Int("candidate_count", len(candidates)))
			toRank = candidates
		}

		ranked := ranking.Rerank(toRank, prediction, u.cfg.DomainWeight, u.cfg.DiversityPenalty, u.logger)
		if len(ranked) > u.cfg.MaxRecommendations {
			ranked = ranked[:u.cfg.MaxRecommendations]
		}
		output.Recommendations = ranked
	}
	rerankMS := time.Since(rerankStart).Milliseconds()

	// 5. Optional ranking-quality evaluation.
	if input.Evaluate && u.evaluator != nil {
		report := u.evaluator.Evaluate(output.Recommendations, prediction.Top(), u.cfg.EvaluationK)
		output.Evaluation = &report
	}

	output.Timing = StageTiming{
		ExtractMS: extractMS,
		EmbedMS:   embedMS,
		PredictMS: predictMS,
		SearchMS:  searchMS,
		RerankMS:  rerankMS,
		TotalMS:   time.Since(totalStart).Milliseconds(),
	}

	u.logger.Info("recommendation_completed",
		slog.String("request_id", requestID),
		slog.Int("candidate_count", len(candidates)),
		slog.Int("recommendation_count", len(output.Recommendations)),
		slog.Bool("search_degraded", output.SearchDegraded),
		slog.Int64("total_ms", output.Timing.TotalMS))

	if u.cache != nil && !input.Evaluate {
		u.cache.Add(cacheKey, output)
	}
	return output, nil
}

// cacheKey binds cached results to the resume content and the ranking
// parameters in effect.
func (u *recommendJobsUsecase) cacheKey(resume []byte) string {
	sum := sha256.Sum256(resume)
	return fmt.Sprintf("%x:%.3f:%.3f:%.3f", sum, u.cfg.DomainWeight, u.cfg.DiversityPenalty, u.cfg.MinDomainScore)
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
