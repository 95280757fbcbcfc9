package worker

import (
	"log/slog"
	"time"

	"job-recommender/internal/usecase/evaluation"
)

const (
	initialBackoff = 1 * time.Second
	maxBackoff     = 5 * time.Minute
)

// ReferenceLoader loads the evaluation reference dataset in the
// background so server startup never blocks on it. The evaluator runs
// in fallback mode until the first successful load, after which the
// index is immutable for the process lifetime.
type ReferenceLoader struct {
	path      string
	evaluator *evaluation.Evaluator
	logger    *slog.Logger
	stopChan  chan struct{}
	backoff   time.Duration
}

// NewReferenceLoader creates a loader for the dataset at path.
func NewReferenceLoader(path string, evaluator *evaluation.Evaluator, logger *slog.Logger) *ReferenceLoader {
	return &ReferenceLoader{
		path:      path,
		evaluator: evaluator,
		logger:    logger,
		stopChan:  make(chan struct{}),
	}
}

// Start launches the loader goroutine.
func (l *ReferenceLoader) Start() {
	l.logger.Info("Starting ReferenceLoader", slog.String("path", l.path))
	go l.run()
}

// Stop signals the loader to give up. Safe to call after the dataset
// has already loaded.
func (l *ReferenceLoader) Stop() {
	l.logger.Info("Stopping ReferenceLoader")
	close(l.stopChan)
}

func (l *ReferenceLoader) run() {
	l.backoff = initialBackoff
	for {
		idx, err := evaluation.LoadReferenceJobs(l.path)
		if err == nil {
			l.evaluator.SetIndex(idx)
			l.logger.Info("reference_dataset_loaded",
				slog.String("path", l.path),
				slog.Int("job_count", idx.Len()))
			return
		}

		l.logger.Warn("reference_dataset_unavailable",
			slog.String("path", l.path),
			slog.String("error", err.Error()),
			slog.Duration("retry_in", l.backoff))

		select {
		case <-l.stopChan:
			return
		case <-time.After(l.backoff):
		}

		l.backoff *= 2
		if l.backoff > maxBackoff {
			l.backoff = maxBackoff
		}
	}
}
