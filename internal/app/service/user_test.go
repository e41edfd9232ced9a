package service

import (
	"context"
	"testing"
	"time"

	"osday/internal/domain/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSubmission(t *testing.T, subs *fakeSubmissionRepo, userID, repo, level string, status model.SubmissionStatus) {
	t.Helper()
	require.NoError(t, subs.ReplaceForUserAndRepo(context.Background(), &model.Submission{
		ID:          uuid.NewString(),
		UserID:      userID,
		RepoURL:     repo,
		Level:       level,
		Status:      status,
		SubmittedAt: time.Now(),
		EvaluatedAt: time.Now(),
	}, false))
}

func TestProfileAggregatesStats(t *testing.T) {
	users := newFakeUserRepo()
	subs := newFakeSubmissionRepo(users)
	svc := NewUserService(users, subs, NoIdentityProvider{}, nil)

	alice := seedUser(t, users, "alice")
	seedSubmission(t, subs, alice, "r1", "1", model.StatusPassed)
	seedSubmission(t, subs, alice, "r2", "2", model.StatusFailed)
	seedSubmission(t, subs, alice, "r3", "3", model.StatusPassed)
	seedSubmission(t, subs, seedUser(t, users, "bob"), "r4", "1", model.StatusPassed)

	profile, err := svc.Profile(context.Background(), alice)

	require.NoError(t, err)
	assert.Equal(t, "alice", profile.User.Handle)
	assert.Len(t, profile.RecentSubmissions, 3)
	assert.Equal(t, 3, profile.Stats.TotalSubmissions)
	assert.Equal(t, 2, profile.Stats.PassedSubmissions)
	assert.Equal(t, 1, profile.Stats.FailedSubmissions)
}

func TestProfileUnknownUser(t *testing.T) {
	users := newFakeUserRepo()
	subs := newFakeSubmissionRepo(users)
	svc := NewUserService(users, subs, NoIdentityProvider{}, nil)

	_, err := svc.Profile(context.Background(), uuid.NewString())
	require.Error(t, err)
}

func TestLevelsSortsAndSkipsUnparsable(t *testing.T) {
	users := newFakeUserRepo()
	subs := newFakeSubmissionRepo(users)
	links := map[int]string{1: "https://example.com/level-1"}
	svc := NewUserService(users, subs, NoIdentityProvider{}, links)

	alice := seedUser(t, users, "alice")
	seedSubmission(t, subs, alice, "r1", "2", model.StatusPassed)
	seedSubmission(t, subs, alice, "r2", "1", model.StatusPassed)
	seedSubmission(t, subs, alice, "r3", "x", model.StatusPassed)
	seedSubmission(t, subs, alice, "r4", "5", model.StatusFailed)

	resp, err := svc.Levels(context.Background(), alice)

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, resp.CompletedLevels)
	assert.Equal(t, links, resp.LevelLinks)
}

func TestLevelsAnonymousFallsBackToTestIdentity(t *testing.T) {
	users := newFakeUserRepo()
	subs := newFakeSubmissionRepo(users)
	svc := NewUserService(users, subs, NewTestIdentityProvider(users), nil)

	resp, err := svc.Levels(context.Background(), "")

	require.NoError(t, err)
	assert.Empty(t, resp.CompletedLevels)

	_, err = users.FindByGithubID(context.Background(), "test-123")
	assert.NoError(t, err, "anonymous access provisions the shared test user")
}
