package model

import "time"

type SubmissionStatus string

const (
	// StatusPending is the pre-evaluation value of the status column.
	// Evaluation is synchronous, so rows are currently written already
	// resolved; pending is reserved for a deferred-evaluation path.
	StatusPending SubmissionStatus = "pending"
	StatusPassed  SubmissionStatus = "passed"
	StatusFailed  SubmissionStatus = "failed"
)

// TestResults summarizes the jobs of the evaluated CI run. Total is never
// below 1 for an evaluated run so a run without job data still reports one
// synthetic entry.
type TestResults struct {
	Total       int    `json:"total"`
	Passed      int    `json:"passed"`
	Failed      int    `json:"failed"`
	Details     string `json:"details"`
	WorkflowURL string `json:"workflowUrl,omitempty"`
	Commit      string `json:"commit,omitempty"`
}

// Submission is immutable once evaluated; a later submission for the same
// (user, repo) pair supersedes it by deletion rather than update.
type Submission struct {
	ID          string           `json:"id"`
	UserID      string           `json:"userId"`
	Level       string           `json:"level"`
	RepoURL     string           `json:"repoUrl"`
	Status      SubmissionStatus `json:"status"`
	Score       int              `json:"score"`
	TestResults TestResults      `json:"testResults"`
	SubmittedAt time.Time        `json:"submittedAt"`
	EvaluatedAt time.Time        `json:"evaluatedAt"`
}

// EvaluationResult is the verdict of one evaluation pipeline pass.
type EvaluationResult struct {
	Status      SubmissionStatus `json:"status"`
	Score       int              `json:"score"`
	Message     string           `json:"message"`
	TestResults TestResults      `json:"testResults"`
}
