package service

import (
	"context"
	"errors"
	"testing"

	"osday/internal/domain/model"
	"osday/internal/platform/github"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateInvalidURL(t *testing.T) {
	evaluator := NewEvaluator(&fakeCI{}, 100)

	result := evaluator.Evaluate(context.Background(), "https://gitlab.com/acme/widget", "1")

	assert.Equal(t, model.StatusFailed, result.Status)
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, "Invalid repository URL format", result.Message)
}

func TestEvaluateNoRuns(t *testing.T) {
	evaluator := NewEvaluator(&fakeCI{runs: []github.WorkflowRun{}}, 100)

	result := evaluator.Evaluate(context.Background(), "https://github.com/acme/widget", "2")

	assert.Equal(t, model.StatusFailed, result.Status)
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, "No GitHub Actions workflows found", result.Message)
}

func TestEvaluateNoSuccessYet(t *testing.T) {
	ci := &fakeCI{runs: []github.WorkflowRun{
		{ID: 3, Status: "in_progress"},
		{ID: 2, Status: "completed", Conclusion: "failure"},
	}}
	evaluator := NewEvaluator(ci, 100)

	result := evaluator.Evaluate(context.Background(), "https://github.com/acme/widget", "2")

	assert.Equal(t, model.StatusFailed, result.Status)
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, "No successful GitHub Actions run found yet", result.Message)
	assert.Zero(t, ci.jobCalls, "no job query without a selected run")
}

func TestEvaluateSelectsOlderSuccessfulRun(t *testing.T) {
	// Newest run failed; the scan must fall through to the older success.
	older := successfulRun(2)
	older.HTMLURL = "https://github.com/acme/widget/actions/runs/2"
	ci := &fakeCI{
		runs: []github.WorkflowRun{
			{ID: 3, Status: "completed", Conclusion: "failure"},
			older,
		},
		jobs: []github.WorkflowJob{{Name: "test", Conclusion: "success"}},
	}
	evaluator := NewEvaluator(ci, 100)

	result := evaluator.Evaluate(context.Background(), "https://github.com/acme/widget", "1")

	require.Equal(t, model.StatusPassed, result.Status)
	assert.Equal(t, 100, result.Score)
	assert.Equal(t, "PASSED", result.Message)
	assert.Equal(t, older.HTMLURL, result.TestResults.WorkflowURL)
}

func TestEvaluateJobTally(t *testing.T) {
	ci := &fakeCI{
		runs: []github.WorkflowRun{successfulRun(1)},
		jobs: []github.WorkflowJob{
			{Name: "build", Conclusion: "success"},
			{Name: "test", Conclusion: "success"},
			{Name: "lint", Conclusion: "failure"},
		},
	}
	evaluator := NewEvaluator(ci, 100)

	result := evaluator.Evaluate(context.Background(), "https://github.com/acme/widget", "3")

	require.Equal(t, model.StatusPassed, result.Status)
	assert.Equal(t, 300, result.Score)
	assert.Equal(t, 3, result.TestResults.Total)
	assert.Equal(t, 2, result.TestResults.Passed)
	assert.Equal(t, 1, result.TestResults.Failed)
	assert.Equal(t, "build: success, test: success, lint: failure", result.TestResults.Details)
	assert.Equal(t, "0123456", result.TestResults.Commit)
}

func TestEvaluateJobFetchFailureFallsBack(t *testing.T) {
	ci := &fakeCI{
		runs:    []github.WorkflowRun{successfulRun(1)},
		jobsErr: errors.New("boom"),
	}
	evaluator := NewEvaluator(ci, 100)

	result := evaluator.Evaluate(context.Background(), "https://github.com/acme/widget", "1")

	// A job query failure must not fail the evaluation.
	require.Equal(t, model.StatusPassed, result.Status)
	assert.Equal(t, 1, result.TestResults.Total)
	assert.Equal(t, "Workflow: success", result.TestResults.Details)
}

func TestEvaluateProviderErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantMessage string
	}{
		{"not found", github.ErrRepoNotFound, "Repository not found or GitHub Actions not enabled"},
		{"rate limited", github.ErrRateLimited, "GitHub API rate limit exceeded"},
		{"generic", errors.New("connection reset"), "Evaluation error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evaluator := NewEvaluator(&fakeCI{runsErr: tt.err}, 100)

			result := evaluator.Evaluate(context.Background(), "https://github.com/acme/widget", "4")

			assert.Equal(t, model.StatusFailed, result.Status)
			assert.Equal(t, 0, result.Score)
			assert.Equal(t, tt.wantMessage, result.Message)
		})
	}

	t.Run("generic error surfaces detail", func(t *testing.T) {
		evaluator := NewEvaluator(&fakeCI{runsErr: errors.New("connection reset")}, 100)
		result := evaluator.Evaluate(context.Background(), "https://github.com/acme/widget", "4")
		assert.Equal(t, "connection reset", result.TestResults.Details)
	})
}
