package evaluation

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadReferenceJobs reads the reference dataset from a CSV file with at
// least job_id, title and parent_domain columns. The views and applies
// columns are optional; when both are present they drive the relevance
// scores, otherwise scores are uniform.
func LoadReferenceJobs(path string) (*RelevanceIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadReferenceJobs(f)
}

// ReadReferenceJobs parses reference jobs from CSV content.
func ReadReferenceJobs(r io.Reader) (*RelevanceIndex, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"job_id", "title", "parent_domain"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("reference dataset missing required column %q", required)
		}
	}
	viewsCol, hasViews := cols["views"]
	appliesCol, hasApplies := cols["applies"]
	hasEngagement := hasViews && hasApplies

	var jobs []ReferenceJob
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv record: %w", err)
		}

		job := ReferenceJob{
			JobID:        record[cols["job_id"]],
			Title:        record[cols["title"]],
			ParentDomain: record[cols["parent_domain"]],
		}
		if hasEngagement {
			job.Views = parseCount(record[viewsCol])
			job.Applies = parseCount(record[appliesCol])
		}
		jobs = append(jobs, job)
	}

	if len(jobs) == 0 {
		return nil, fmt.Errorf("reference dataset contains no jobs")
	}
	return NewRelevanceIndex(jobs, hasEngagement), nil
}

// parseCount treats blank or malformed counters as zero, matching the
// fill-with-default handling of the dataset's sparse engagement columns.
func parseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
