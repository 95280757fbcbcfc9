package worker

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-recommender/internal/usecase/evaluation"
)

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobs.csv")
	content := "job_id,title,parent_domain,views,applies\n" +
		"j1,Senior Nurse,Healthcare,100,40\n" +
		"j2,Trader,Finance,50,20\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReferenceLoader_LoadsDataset(t *testing.T) {
	evaluator := evaluation.NewEvaluator(discard())
	loader := NewReferenceLoader(writeDataset(t), evaluator, discard())

	loader.Start()

	require.Eventually(t, evaluator.Ready, 2*time.Second, 10*time.Millisecond)
}

func TestReferenceLoader_StopWhileDatasetMissing(t *testing.T) {
	evaluator := evaluation.NewEvaluator(discard())
	loader := NewReferenceLoader(filepath.Join(t.TempDir(), "missing.csv"), evaluator, discard())

	loader.Start()
	time.Sleep(50 * time.Millisecond)
	loader.Stop()

	assert.False(t, evaluator.Ready())
}
