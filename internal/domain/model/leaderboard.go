package model

import "time"

type LeaderboardEntry struct {
	Rank            int             `json:"rank"`
	UserID          string          `json:"userId"`
	TotalScore      int             `json:"totalScore"`
	SubmissionCount int             `json:"submissionCount"`
	LastSubmission  time.Time       `json:"lastSubmissionTime"`
	User            LeaderboardUser `json:"user"`
}

type LeaderboardUser struct {
	Handle     string `json:"handle"`
	ProfileURL string `json:"profileUrl"`
	AvatarURL  string `json:"avatarUrl"`
}
