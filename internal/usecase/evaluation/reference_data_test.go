package evaluation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadReferenceJobs_WithEngagement(t *testing.T) {
	csv := strings.Join([]string{
		"job_id,title,parent_domain,views,applies",
		"j1,Senior Nurse,Healthcare,100,40",
		"j2,Trader,Finance,50,20",
	}, "\n")

	idx, err := ReadReferenceJobs(strings.NewReader(csv))

	require.NoError(t, err)
	require.Equal(t, 2, idx.Len())
	assert.InDelta(t, 1.0, idx.jobs[0].Relevance, 1e-9)
	assert.InDelta(t, 0.7*0.5+0.3*0.5, idx.jobs[1].Relevance, 1e-9)
}

func TestReadReferenceJobs_WithoutEngagementColumns(t *testing.T) {
	csv := strings.Join([]string{
		"job_id,title,parent_domain",
		"j1,Senior Nurse,Healthcare",
		"j2,Trader,Finance",
	}, "\n")

	idx, err := ReadReferenceJobs(strings.NewReader(csv))

	require.NoError(t, err)
	for _, j := range idx.jobs {
		assert.InDelta(t, 0.5, j.Relevance, 1e-9)
	}
}

func TestReadReferenceJobs_MalformedCountsDefaultToZero(t *testing.T) {
	csv := strings.Join([]string{
		"job_id,title,parent_domain,views,applies",
		"j1,Nurse,Healthcare,not-a-number,",
		"j2,Trader,Finance,10,5",
	}, "\n")

	idx, err := ReadReferenceJobs(strings.NewReader(csv))

	require.NoError(t, err)
	assert.Equal(t, 0, idx.jobs[0].Views)
	assert.Equal(t, 0, idx.jobs[0].Applies)
}

func TestReadReferenceJobs_MissingRequiredColumn(t *testing.T) {
	csv := strings.Join([]string{
		"job_id,title",
		"j1,Nurse",
	}, "\n")

	_, err := ReadReferenceJobs(strings.NewReader(csv))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parent_domain")
}

func TestReadReferenceJobs_EmptyDataset(t *testing.T) {
	csv := "job_id,title,parent_domain\n"

	_, err := ReadReferenceJobs(strings.NewReader(csv))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no jobs")
}

func TestReadReferenceJobs_HeaderCaseInsensitive(t *testing.T) {
	csv := strings.Join([]string{
		"Job_ID,Title,Parent_Domain",
		"j1,Nurse,Healthcare",
	}, "\n")

	idx, err := ReadReferenceJobs(strings.NewReader(csv))

	require.NoError(t, err)
	assert.Equal(t, 1, idx.Len())
}

func TestLoadReferenceJobs_MissingFile(t *testing.T) {
	_, err := LoadReferenceJobs("does-not-exist.csv")
	assert.Error(t, err)
}
