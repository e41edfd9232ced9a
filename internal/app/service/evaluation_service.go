package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"osday/internal/common/repourl"
	"osday/internal/domain/model"
	"osday/internal/platform/github"
	"osday/internal/platform/metrics"
)

// CIClient is the slice of the provider client the evaluator needs.
type CIClient interface {
	ListWorkflowRuns(ctx context.Context, owner, repo string) ([]github.WorkflowRun, error)
	ListRunJobs(ctx context.Context, owner, repo string, runID int64) ([]github.WorkflowJob, error)
}

// Evaluator runs the parse -> fetch -> resolve -> score pipeline for one
// submission. It inspects a snapshot of the repository's CI state at call
// time; it never executes anything itself and never retries.
type Evaluator struct {
	ci             CIClient
	pointsPerLevel int
}

func NewEvaluator(ci CIClient, pointsPerLevel int) *Evaluator {
	return &Evaluator{ci: ci, pointsPerLevel: pointsPerLevel}
}

// outcomeKind enumerates every way run resolution can end. The switch in
// buildResult is exhaustive over these.
type outcomeKind int

const (
	outcomeNoRuns outcomeKind = iota
	outcomeNoSuccessYet
	outcomeProviderError
	outcomeEvaluated
)

type resolution struct {
	kind        outcomeKind
	providerErr error
	run         *github.WorkflowRun
	jobs        []github.WorkflowJob
}

// Evaluate never returns an error: every failure mode, including provider
// errors, converts into a failed verdict with diagnostic detail.
func (e *Evaluator) Evaluate(ctx context.Context, repoURL, level string) *model.EvaluationResult {
	ref, ok := repourl.Parse(repoURL)
	if !ok {
		return e.record(&model.EvaluationResult{
			Status:      model.StatusFailed,
			Score:       0,
			Message:     "Invalid repository URL format",
			TestResults: model.TestResults{Details: "Invalid URL"},
		})
	}

	res := e.resolve(ctx, ref)
	return e.record(e.buildResult(res, level))
}

func (e *Evaluator) resolve(ctx context.Context, ref *repourl.Ref) resolution {
	runs, err := e.ci.ListWorkflowRuns(ctx, ref.Owner, ref.Name)
	if err != nil {
		return resolution{kind: outcomeProviderError, providerErr: err}
	}
	if len(runs) == 0 {
		return resolution{kind: outcomeNoRuns}
	}

	// Newest-first scan for the first completed, successful run. A newer
	// failed or still-running run does not block an older success.
	var selected *github.WorkflowRun
	for i := range runs {
		if runs[i].Status == "completed" && runs[i].Conclusion == "success" {
			selected = &runs[i]
			break
		}
	}
	if selected == nil {
		return resolution{kind: outcomeNoSuccessYet}
	}

	jobs, err := e.ci.ListRunJobs(ctx, ref.Owner, ref.Name, selected.ID)
	if err != nil {
		// Best effort: fall back to a single synthetic job derived from
		// the run itself rather than failing the evaluation.
		slog.Warn("could not fetch job details", "repo", ref.Owner+"/"+ref.Name, "run_id", selected.ID, "error", err)
		jobs = nil
	}
	return resolution{kind: outcomeEvaluated, run: selected, jobs: jobs}
}

func (e *Evaluator) buildResult(res resolution, level string) *model.EvaluationResult {
	switch res.kind {
	case outcomeNoRuns:
		return &model.EvaluationResult{
			Status:      model.StatusFailed,
			Message:     "No GitHub Actions workflows found",
			TestResults: model.TestResults{Details: "Add a workflow file to .github/workflows/ directory"},
		}

	case outcomeNoSuccessYet:
		return &model.EvaluationResult{
			Status:      model.StatusFailed,
			Message:     "No successful GitHub Actions run found yet",
			TestResults: model.TestResults{Details: "Wait for Actions to complete successfully"},
		}

	case outcomeProviderError:
		return providerErrorResult(res.providerErr)

	case outcomeEvaluated:
		return e.evaluatedResult(res.run, res.jobs, level)
	}

	// Unreachable; kept so a new outcomeKind cannot silently fall through.
	return providerErrorResult(fmt.Errorf("unknown resolution kind %d", res.kind))
}

func providerErrorResult(err error) *model.EvaluationResult {
	result := &model.EvaluationResult{Status: model.StatusFailed}
	switch {
	case errors.Is(err, github.ErrRepoNotFound):
		result.Message = "Repository not found or GitHub Actions not enabled"
		result.TestResults.Details = "Enable GitHub Actions in your repository"
	case errors.Is(err, github.ErrRateLimited):
		result.Message = "GitHub API rate limit exceeded"
		result.TestResults.Details = "Please try again later"
	default:
		result.Message = "Evaluation error occurred"
		result.TestResults.Details = err.Error()
	}
	return result
}

func (e *Evaluator) evaluatedResult(run *github.WorkflowRun, jobs []github.WorkflowJob, level string) *model.EvaluationResult {
	// Always true given how the run was selected; the explicit re-check
	// keeps the pass/fail boolean centralized for scoring.
	passed := run.Status == "completed" && run.Conclusion == "success"

	jobsPassed, jobsFailed := 0, 0
	for _, job := range jobs {
		switch job.Conclusion {
		case "success":
			jobsPassed++
		case "failure":
			jobsFailed++
		}
	}

	total := len(jobs)
	var details string
	if total > 0 {
		parts := make([]string, 0, total)
		for _, job := range jobs {
			outcome := job.Conclusion
			if outcome == "" {
				outcome = job.Status
			}
			parts = append(parts, job.Name+": "+outcome)
		}
		details = strings.Join(parts, ", ")
	} else {
		total = 1
		outcome := run.Conclusion
		if outcome == "" {
			outcome = run.Status
		}
		details = "Workflow: " + outcome
	}

	message := "PASSED"
	if !passed {
		outcome := run.Conclusion
		if outcome == "" {
			outcome = run.Status
		}
		message = "FAILED - " + outcome
	}

	status := model.StatusFailed
	if passed {
		status = model.StatusPassed
	}

	return &model.EvaluationResult{
		Status:  status,
		Score:   calculateScore(level, passed, e.pointsPerLevel),
		Message: message,
		TestResults: model.TestResults{
			Total:       total,
			Passed:      jobsPassed,
			Failed:      jobsFailed,
			Details:     details,
			WorkflowURL: run.HTMLURL,
			Commit:      shortSHA(run.HeadSHA),
		},
	}
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

func (e *Evaluator) record(result *model.EvaluationResult) *model.EvaluationResult {
	metrics.SubmissionsEvaluated.WithLabelValues(string(result.Status)).Inc()
	return result
}
