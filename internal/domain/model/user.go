package model

import (
	"time"
)

// User identity is anchored to the immutable GithubID; the Handle is
// mutable and may be overwritten by a later submission's inferred handle.
// TotalScore only ever grows and is incremented on passing submissions.
type User struct {
	ID              string    `json:"id"`
	GithubID        string    `json:"-"` // Not exposed
	Handle          string    `json:"handle"`
	ProfileURL      string    `json:"profileUrl"`
	AvatarURL       string    `json:"avatarUrl"`
	TotalScore      int       `json:"totalScore"`
	SubmissionCount int       `json:"submissionCount"`
	LastActive      time.Time `json:"lastActive"`
	CreatedAt       time.Time `json:"createdAt"`
}
