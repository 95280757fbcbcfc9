package jobs_http

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"job-recommender/internal/domain"
	"job-recommender/internal/usecase"
	"job-recommender/internal/usecase/evaluation"
)

// Handler exposes the recommendation pipeline over HTTP.
type Handler struct {
	recommendUsecase usecase.RecommendJobsUsecase
	evaluator        *evaluation.Evaluator
	logger           *slog.Logger
}

// NewHandler creates the HTTP handler.
func NewHandler(recommendUsecase usecase.RecommendJobsUsecase, evaluator *evaluation.Evaluator, logger *slog.Logger) *Handler {
	return &Handler{
		recommendUsecase: recommendUsecase,
		evaluator:        evaluator,
		logger:           logger,
	}
}

// RecommendationItem is one recommended job in the response body.
type RecommendationItem struct {
	Title         string   `json:"title"`
	Industry      string   `json:"industry"`
	Description   string   `json:"description"`
	CompanyID     string   `json:"company_id"`
	JobID         string   `json:"job_id,omitempty"`
	VectorScore   *float64 `json:"vector_score,omitempty"`
	DomainScore   float64  `json:"domain_score"`
	CombinedScore float64  `json:"combined_score"`
	Confidence    string   `json:"confidence"`
}

// TopDomainItem is one predicted domain in the response body.
type TopDomainItem struct {
	Domain      string  `json:"domain"`
	Probability float64 `json:"probability"`
}

// RecommendResponse is the body of a successful recommendation call.
type RecommendResponse struct {
	Status             string               `json:"status"`
	RequestID          string               `json:"request_id"`
	FileProcessed      string               `json:"file_processed"`
	NumRecommendations int                  `json:"num_recommendations"`
	Recommendations    []RecommendationItem `json:"recommendations"`
	TopDomains         []TopDomainItem      `json:"top_domains"`
	SearchDegraded     bool                 `json:"search_degraded"`
	Evaluation         *evaluation.Report   `json:"evaluation,omitempty"`
	Timing             usecase.StageTiming  `json:"timing"`
}

// Recommend handles resume upload and returns ranked job
// recommendations.
// (POST /v1/recommend)
func (h *Handler) Recommend(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing resume file"})
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".pdf" && ext != ".txt" && ext != ".text" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "only PDF and TXT files are supported"})
	}

	content, err := h.spoolUpload(fileHeader, ext)
	if err != nil {
		h.logger.Error("upload_spool_failed", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to read uploaded file"})
	}
	if len(content) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "empty file"})
	}

	input := usecase.RecommendInput{
		Filename: fileHeader.Filename,
		Resume:   content,
		Evaluate: c.QueryParam("evaluate") == "true",
	}

	output, err := h.recommendUsecase.Execute(c.Request().Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedFormat) || errors.Is(err, domain.ErrEmptyResume) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		h.logger.Error("recommendation_failed",
			slog.String("file", fileHeader.Filename),
			slog.String("error", err.Error()))
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": "recommendations are temporarily unavailable",
		})
	}

	items := make([]RecommendationItem, 0, len(output.Recommendations))
	for _, r := range output.Recommendations {
		items = append(items, RecommendationItem{
			Title:         r.Title,
			Industry:      r.Industry,
			Description:   r.Description,
			CompanyID:     r.CompanyID,
			JobID:         r.JobID,
			VectorScore:   r.VectorScore,
			DomainScore:   r.DomainScore,
			CombinedScore: r.CombinedScore,
			Confidence:    string(r.Confidence),
		})
	}
	domains := make([]TopDomainItem, 0, len(output.TopDomains))
	for _, d := range output.TopDomains {
		domains = append(domains, TopDomainItem{Domain: d.Name, Probability: d.Probability})
	}

	return c.JSON(http.StatusOK, RecommendResponse{
		Status:             "success",
		RequestID:          output.RequestID,
		FileProcessed:      fileHeader.Filename,
		NumRecommendations: len(items),
		Recommendations:    items,
		TopDomains:         domains,
		SearchDegraded:     output.SearchDegraded,
		Evaluation:         output.Evaluation,
		Timing:             output.Timing,
	})
}

// EvaluationStatus reports whether evaluation runs against ground
// truth or in fallback mode.
// (GET /v1/evaluation/status)
func (h *Handler) EvaluationStatus(c echo.Context) error {
	mode := "fallback"
	if h.evaluator != nil && h.evaluator.Ready() {
		mode = "ground_truth"
	}
	return c.JSON(http.StatusOK, map[string]string{"mode": mode})
}

// spoolUpload writes the multipart upload to a temporary file and reads
// it back. The temp file is removed on every path.
func (h *Handler) spoolUpload(fileHeader *multipart.FileHeader, ext string) ([]byte, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	tmp, err := os.CreateTemp("", "resume-*"+ext)
	if err != nil {
		return nil, err
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := io.Copy(tmp, src); err != nil {
		_ = tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	return os.ReadFile(tmpPath)
}
