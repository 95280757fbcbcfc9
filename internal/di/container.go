package di

import (
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"job-recommender/internal/adapter/classifier"
	"job-recommender/internal/adapter/embedding"
	"job-recommender/internal/adapter/jobs_http"
	"job-recommender/internal/adapter/repository"
	"job-recommender/internal/adapter/resume"
	"job-recommender/internal/infra/config"
	"job-recommender/internal/infra/httpclient"
	"job-recommender/internal/usecase"
	"job-recommender/internal/usecase/evaluation"
	"job-recommender/internal/worker"
)

// Components holds the wired application graph.
type Components struct {
	RecommendUsecase usecase.RecommendJobsUsecase
	Evaluator        *evaluation.Evaluator
	ReferenceLoader  *worker.ReferenceLoader
	Handler          *jobs_http.Handler
}

// NewComponents wires adapters, usecases and workers from configuration.
func NewComponents(cfg *config.Config, pool *pgxpool.Pool, log *slog.Logger) *Components {
	embedderClient := embedding.NewClient(
		cfg.Embedder.URL,
		cfg.Embedder.Model,
		cfg.Embedder.Dimension,
		log,
		httpclient.NewPooledClient(time.Duration(cfg.Embedder.Timeout)*time.Second),
	)

	classifierClient := classifier.NewClient(
		cfg.Classifier.URL,
		log,
		httpclient.NewPooledClient(time.Duration(cfg.Classifier.Timeout)*time.Second),
	)

	searchRepo := repository.NewJobSearchRepository(pool)
	extractor := resume.NewExtractor(log)
	evaluator := evaluation.NewEvaluator(log)

	recommendUsecase := usecase.NewRecommendJobsUsecase(
		extractor,
		embedderClient,
		classifierClient,
		searchRepo,
		evaluator,
		usecase.PipelineConfig{
			DomainWeight:       cfg.Ranking.DomainWeight,
			DiversityPenalty:   cfg.Ranking.DiversityPenalty,
			MinDomainScore:     cfg.Ranking.MinDomainScore,
			SearchLimit:        cfg.Ranking.SearchLimit,
			SearchAlpha:        cfg.Ranking.SearchAlpha,
			TopKDomains:        cfg.Classifier.TopK,
			MaxRecommendations: cfg.Ranking.MaxRecommendations,
			QueryTextLimit:     cfg.Ranking.QueryTextLimit,
			EvaluationK:        cfg.Evaluation.K,
		},
		log,
		usecase.WithResultCache(cfg.Cache.Size, time.Duration(cfg.Cache.TTL)*time.Minute),
	)

	loader := worker.NewReferenceLoader(cfg.Evaluation.DatasetPath, evaluator, log)
	handler := jobs_http.NewHandler(recommendUsecase, evaluator, log)

	return &Components{
		RecommendUsecase: recommendUsecase,
		Evaluator:        evaluator,
		ReferenceLoader:  loader,
		Handler:          handler,
	}
}
