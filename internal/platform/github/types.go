package github

import "time"

// WorkflowRun is one execution of a CI workflow on a specific commit.
// Status is "queued", "in_progress" or "completed"; Conclusion is only
// meaningful once Status is "completed".
type WorkflowRun struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	Conclusion string    `json:"conclusion"`
	HTMLURL    string    `json:"html_url"`
	HeadSHA    string    `json:"head_sha"`
	CreatedAt  time.Time `json:"created_at"`
}

// WorkflowJob is one unit of work inside a run.
type WorkflowJob struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	Conclusion string `json:"conclusion"`
}

type runListResponse struct {
	WorkflowRuns []WorkflowRun `json:"workflow_runs"`
}

type jobListResponse struct {
	Jobs []WorkflowJob `json:"jobs"`
}

// AuthenticatedUser is the profile returned for an OAuth access token.
type AuthenticatedUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	HTMLURL   string `json:"html_url"`
	AvatarURL string `json:"avatar_url"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope"`
}
