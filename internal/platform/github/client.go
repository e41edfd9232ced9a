// Package github is the client for the external CI provider. It returns raw
// run and job data and never interprets pass/fail; that is the verdict
// resolver's job. Calls carry a bearer token, a fixed User-Agent/Accept pair
// and a request timeout, with no retries: a failed call converts into a
// failed verdict upstream instead of being retried here.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"osday/internal/platform/config"
	"osday/internal/platform/metrics"
)

var (
	// ErrRepoNotFound means the repository is absent or Actions is not
	// enabled on it (provider 404).
	ErrRepoNotFound = errors.New("repository not found or workflows not enabled")
	// ErrRateLimited means the provider rejected the call for quota
	// reasons (provider 403).
	ErrRateLimited = errors.New("provider rate limit exceeded")
)

type Client struct {
	http      *http.Client
	apiBase   string
	token     string
	userAgent string
	accept    string
	pageSize  int

	clientID     string
	clientSecret string
	tokenURL     string
	userAPI      string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		http:         &http.Client{Timeout: cfg.GitHubHTTPTimeout},
		apiBase:      cfg.GitHubAPIBase,
		token:        cfg.GitHubToken,
		userAgent:    cfg.GitHubUserAgent,
		accept:       cfg.GitHubAPIVersion,
		pageSize:     cfg.RunListPageSize,
		clientID:     cfg.GitHubClientID,
		clientSecret: cfg.GitHubClientSecret,
		tokenURL:     cfg.GitHubTokenURL,
		userAPI:      cfg.GitHubUserAPI,
	}
}

// ListWorkflowRuns returns the newest runs for a repository, newest first,
// limited to the first page of the configured size.
func (c *Client) ListWorkflowRuns(ctx context.Context, owner, repo string) ([]WorkflowRun, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/actions/runs?per_page=%d", c.apiBase, owner, repo, c.pageSize)

	var payload runListResponse
	if err := c.getJSON(ctx, "list_runs", url, &payload); err != nil {
		return nil, err
	}
	return payload.WorkflowRuns, nil
}

// ListRunJobs returns the jobs of a single run.
func (c *Client) ListRunJobs(ctx context.Context, owner, repo string, runID int64) ([]WorkflowJob, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/actions/runs/%d/jobs", c.apiBase, owner, repo, runID)

	var payload jobListResponse
	if err := c.getJSON(ctx, "list_jobs", url, &payload); err != nil {
		return nil, err
	}
	return payload.Jobs, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("github: build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", c.accept)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.GitHubAPIRequests.WithLabelValues(endpoint, "network_error").Inc()
		return fmt.Errorf("github: %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		metrics.GitHubAPIRequests.WithLabelValues(endpoint, "not_found").Inc()
		return ErrRepoNotFound
	case resp.StatusCode == http.StatusForbidden:
		metrics.GitHubAPIRequests.WithLabelValues(endpoint, "rate_limited").Inc()
		return ErrRateLimited
	case resp.StatusCode >= 400:
		metrics.GitHubAPIRequests.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("github: %s: unexpected status %d", endpoint, resp.StatusCode)
	}

	metrics.GitHubAPIRequests.WithLabelValues(endpoint, "ok").Inc()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("github: %s: decode response: %w", endpoint, err)
	}
	return nil
}
