package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The leaderboard and submission payloads are consumed by a frontend keyed
// on camelCase field names; these pin the wire contract.

func marshalKeys(t *testing.T, v interface{}) map[string]json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	keys := map[string]json.RawMessage{}
	require.NoError(t, json.Unmarshal(raw, &keys))
	return keys
}

func TestLeaderboardEntryWireKeys(t *testing.T) {
	entry := LeaderboardEntry{
		Rank:            1,
		UserID:          "u1",
		TotalScore:      300,
		SubmissionCount: 2,
		LastSubmission:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		User:            LeaderboardUser{Handle: "alice"},
	}

	keys := marshalKeys(t, entry)
	for _, key := range []string{"rank", "userId", "totalScore", "submissionCount", "lastSubmissionTime", "user"} {
		assert.Contains(t, keys, key)
	}

	user := marshalKeys(t, entry.User)
	for _, key := range []string{"handle", "profileUrl", "avatarUrl"} {
		assert.Contains(t, user, key)
	}
}

func TestSubmissionWireKeys(t *testing.T) {
	sub := Submission{
		ID:      "s1",
		UserID:  "u1",
		Level:   "1",
		RepoURL: "https://github.com/acme/widget",
		Status:  StatusPassed,
		TestResults: TestResults{
			Total:       1,
			Details:     "test: success",
			WorkflowURL: "https://github.com/acme/widget/actions/runs/1",
			Commit:      "0123456",
		},
	}

	keys := marshalKeys(t, sub)
	for _, key := range []string{"id", "userId", "level", "repoUrl", "status", "score", "testResults", "submittedAt", "evaluatedAt"} {
		assert.Contains(t, keys, key)
	}

	results := marshalKeys(t, sub.TestResults)
	for _, key := range []string{"total", "passed", "failed", "details", "workflowUrl", "commit"} {
		assert.Contains(t, results, key)
	}
}

func TestUserWireKeysHideGithubID(t *testing.T) {
	keys := marshalKeys(t, User{GithubID: "gh-1", Handle: "alice"})

	assert.NotContains(t, keys, "GithubID")
	assert.NotContains(t, keys, "githubId")
	for _, key := range []string{"id", "handle", "profileUrl", "avatarUrl", "totalScore", "submissionCount", "lastActive", "createdAt"} {
		assert.Contains(t, keys, key)
	}
}
