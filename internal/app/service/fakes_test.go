package service

import (
	"context"
	"sync"
	"time"

	"osday/internal/common"
	"osday/internal/domain/model"
	"osday/internal/domain/repository"
	"osday/internal/platform/github"
)

// fakeCI serves canned provider data. Errors, when set, win over data.
type fakeCI struct {
	mu       sync.Mutex
	runs     []github.WorkflowRun
	jobs     []github.WorkflowJob
	runsErr  error
	jobsErr  error
	jobCalls int
}

func (f *fakeCI) ListWorkflowRuns(ctx context.Context, owner, repo string) ([]github.WorkflowRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.runsErr != nil {
		return nil, f.runsErr
	}
	return f.runs, nil
}

func (f *fakeCI) ListRunJobs(ctx context.Context, owner, repo string, runID int64) ([]github.WorkflowJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobCalls++
	if f.jobsErr != nil {
		return nil, f.jobsErr
	}
	return f.jobs, nil
}

func successfulRun(id int64) github.WorkflowRun {
	return github.WorkflowRun{
		ID:         id,
		Status:     "completed",
		Conclusion: "success",
		HTMLURL:    "https://github.com/acme/widget/actions/runs/1",
		HeadSHA:    "0123456789abcdef",
	}
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.GithubID == user.GithubID {
			return common.Errorf("github id taken: %w", common.ErrConflict)
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByGithubID(ctx context.Context, githubID string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.GithubID == githubID {
			clone := *user
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByIDs(ctx context.Context, ids []string) (map[string]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := map[string]*model.User{}
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			clone := *user
			found[id] = &clone
		}
	}
	return found, nil
}

func (r *fakeUserRepo) UpdateHandle(ctx context.Context, id, handle string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return common.ErrNotFound
	}
	user.Handle = handle
	user.LastActive = time.Now()
	return nil
}

func (r *fakeUserRepo) Touch(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return common.ErrNotFound
	}
	user.LastActive = time.Now()
	return nil
}

func (r *fakeUserRepo) totalScore(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		return user.TotalScore
	}
	return 0
}

// fakeSubmissionRepo keeps submissions in a slice and mirrors the pg
// implementation's transactional Replace by holding its lock across the
// delete, insert and award steps.
type fakeSubmissionRepo struct {
	mu    sync.Mutex
	subs  []model.Submission
	users *fakeUserRepo
}

func newFakeSubmissionRepo(users *fakeUserRepo) *fakeSubmissionRepo {
	return &fakeSubmissionRepo{users: users}
}

var _ repository.SubmissionRepository = (*fakeSubmissionRepo)(nil)
var _ repository.UserRepository = (*fakeUserRepo)(nil)

func (r *fakeSubmissionRepo) FindPassedByUserAndRepo(ctx context.Context, userID, repoURL string) (*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.subs {
		s := r.subs[i]
		if s.UserID == userID && s.RepoURL == repoURL && s.Status == model.StatusPassed {
			return &s, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeSubmissionRepo) ReplaceForUserAndRepo(ctx context.Context, sub *model.Submission, award bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.subs[:0]
	for _, s := range r.subs {
		if !(s.UserID == sub.UserID && s.RepoURL == sub.RepoURL) {
			kept = append(kept, s)
		}
	}
	r.subs = append(kept, *sub)

	if award {
		r.users.mu.Lock()
		if user, ok := r.users.users[sub.UserID]; ok {
			user.TotalScore += sub.Score
			user.SubmissionCount++
			user.LastActive = time.Now()
		}
		r.users.mu.Unlock()
	}
	return nil
}

func (r *fakeSubmissionRepo) ListRecentByUser(ctx context.Context, userID string, limit int) ([]model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Submission{}
	for i := len(r.subs) - 1; i >= 0 && len(out) < limit; i-- {
		if r.subs[i].UserID == userID {
			out = append(out, r.subs[i])
		}
	}
	return out, nil
}

func (r *fakeSubmissionRepo) CountByUser(ctx context.Context, userID string) (repository.SubmissionStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var stats repository.SubmissionStats
	for _, s := range r.subs {
		if s.UserID != userID {
			continue
		}
		stats.Total++
		switch s.Status {
		case model.StatusPassed:
			stats.Passed++
		case model.StatusFailed:
			stats.Failed++
		}
	}
	return stats, nil
}

func (r *fakeSubmissionRepo) ListPassedLevels(ctx context.Context, userID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := map[string]bool{}
	levels := []string{}
	for _, s := range r.subs {
		if s.UserID == userID && s.Status == model.StatusPassed && !seen[s.Level] {
			seen[s.Level] = true
			levels = append(levels, s.Level)
		}
	}
	return levels, nil
}

func (r *fakeSubmissionRepo) ListPassed(ctx context.Context) ([]model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Submission{}
	for _, s := range r.subs {
		if s.Status == model.StatusPassed {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSubmissionRepo) count(userID, repoURL string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.subs {
		if s.UserID == userID && s.RepoURL == repoURL {
			n++
		}
	}
	return n
}
