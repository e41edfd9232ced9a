package service

import (
	"context"
	"sort"
	"time"

	"osday/internal/common"
	"osday/internal/domain/model"
	"osday/internal/domain/repository"
)

// LeaderboardService builds a ranked view of all users from the passed
// submission history. The ranking is fully recomputed on each read; there
// is no incremental maintenance or caching.
type LeaderboardService struct {
	submissionRepo repository.SubmissionRepository
	userRepo       repository.UserRepository
	limit          int
}

func NewLeaderboardService(
	submissionRepo repository.SubmissionRepository,
	userRepo repository.UserRepository,
	limit int,
) *LeaderboardService {
	return &LeaderboardService{submissionRepo: submissionRepo, userRepo: userRepo, limit: limit}
}

type userGroup struct {
	userID string
	score  int
	count  int
	last   time.Time // most recent passed submission
}

func (s *LeaderboardService) GetLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	subs, err := s.submissionRepo.ListPassed(ctx)
	if err != nil {
		return nil, common.Errorf("load passed submissions: %w", err)
	}

	groups := map[string]*userGroup{}
	order := []string{}
	for _, sub := range subs {
		g, ok := groups[sub.UserID]
		if !ok {
			g = &userGroup{userID: sub.UserID}
			groups[sub.UserID] = g
			order = append(order, sub.UserID)
		}
		g.score += sub.Score
		g.count++
		if sub.SubmittedAt.After(g.last) {
			g.last = sub.SubmittedAt
		}
	}

	users, err := s.userRepo.FindByIDs(ctx, order)
	if err != nil {
		return nil, common.Errorf("load leaderboard users: %w", err)
	}

	ranked := make([]*userGroup, 0, len(groups))
	for _, id := range order {
		// Inner join: a group without a user record is dropped.
		if _, ok := users[id]; ok {
			ranked = append(ranked, groups[id])
		}
	}

	// Score descending; ties go to whoever achieved their last passing
	// submission earlier.
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].last.Before(ranked[j].last)
	})

	if len(ranked) > s.limit {
		ranked = ranked[:s.limit]
	}

	entries := make([]model.LeaderboardEntry, 0, len(ranked))
	for i, g := range ranked {
		user := users[g.userID]
		entries = append(entries, model.LeaderboardEntry{
			Rank:            i + 1,
			UserID:          g.userID,
			TotalScore:      g.score,
			SubmissionCount: g.count,
			LastSubmission:  g.last,
			User: model.LeaderboardUser{
				Handle:     user.Handle,
				ProfileURL: user.ProfileURL,
				AvatarURL:  user.AvatarURL,
			},
		})
	}
	return entries, nil
}
