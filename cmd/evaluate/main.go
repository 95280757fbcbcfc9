package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"job-recommender/internal/domain"
	"job-recommender/internal/usecase/evaluation"
)

var (
	version = "dev"

	// Global flags
	verbose bool
	jobsCSV string

	// Run command flags
	rankingFile string
	domainName  string
	topK        int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "evaluate",
	Short:   "Score job recommendation rankings offline",
	Version: version,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Evaluate a produced ranking against the reference dataset",
	Long: `Evaluate a produced ranking against the reference dataset.

The ranking file is a JSON array of recommended jobs as returned by the
/v1/recommend endpoint. Metrics are printed to stdout as JSON.

Examples:
  # Evaluate a saved ranking for the Healthcare domain
  evaluate run --ranking ranking.json --domain Healthcare

  # Evaluate the top 5 positions only
  evaluate run --ranking ranking.json --domain Finance -k 5`,
	RunE: runEvaluation,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show reference dataset summary",
	RunE:  inspectDataset,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&jobsCSV, "jobs-csv", "jobs.csv", "reference dataset path")

	runCmd.Flags().StringVar(&rankingFile, "ranking", "", "JSON file with the produced ranking (required)")
	runCmd.Flags().StringVar(&domainName, "domain", "", "domain the ranking was produced for (required)")
	runCmd.Flags().IntVarP(&topK, "top-k", "k", 10, "number of positions to score")
	_ = runCmd.MarkFlagRequired("ranking")
	_ = runCmd.MarkFlagRequired("domain")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(inspectCmd)
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}
	handler := slog.NewJSONHandler(os.Stderr, opts)
	return slog.New(handler)
}

func runEvaluation(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	index, err := evaluation.LoadReferenceJobs(jobsCSV)
	if err != nil {
		return fmt.Errorf("load reference dataset: %w", err)
	}

	ranking, err := readRanking(rankingFile)
	if err != nil {
		return err
	}

	logger.Info("starting evaluation",
		slog.String("dataset", jobsCSV),
		slog.String("domain", domainName),
		slog.Int("ranking_size", len(ranking)),
		slog.Int("top_k", topK),
	)

	evaluator := evaluation.NewEvaluator(logger)
	evaluator.SetIndex(index)

	report := evaluator.Evaluate(ranking, domainName, topK)

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// readRanking parses a JSON array of recommended jobs in the shape the
// recommendation endpoint serializes (snake_case keys).
func readRanking(path string) ([]domain.JobCandidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ranking file: %w", err)
	}
	var ranking []domain.JobCandidate
	if err := json.Unmarshal(data, &ranking); err != nil {
		return nil, fmt.Errorf("parse ranking file: %w", err)
	}
	return ranking, nil
}

func inspectDataset(cmd *cobra.Command, args []string) error {
	index, err := evaluation.LoadReferenceJobs(jobsCSV)
	if err != nil {
		return fmt.Errorf("load reference dataset: %w", err)
	}

	fmt.Printf("dataset: %s\n", jobsCSV)
	fmt.Printf("jobs:    %d\n", index.Len())
	return nil
}
