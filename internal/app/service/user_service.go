package service

import (
	"context"
	"sort"
	"strconv"

	"osday/internal/common"
	"osday/internal/domain/model"
	"osday/internal/domain/repository"
)

type UserService struct {
	userRepo       repository.UserRepository
	submissionRepo repository.SubmissionRepository
	identity       IdentityProvider
	levelLinks     map[int]string
}

func NewUserService(
	userRepo repository.UserRepository,
	submissionRepo repository.SubmissionRepository,
	identity IdentityProvider,
	levelLinks map[int]string,
) *UserService {
	return &UserService{
		userRepo:       userRepo,
		submissionRepo: submissionRepo,
		identity:       identity,
		levelLinks:     levelLinks,
	}
}

type ProfileStats struct {
	TotalSubmissions  int `json:"totalSubmissions"`
	PassedSubmissions int `json:"passedSubmissions"`
	FailedSubmissions int `json:"failedSubmissions"`
}

type ProfileResponse struct {
	User              *model.User        `json:"user"`
	RecentSubmissions []model.Submission `json:"recentSubmissions"`
	Stats             ProfileStats       `json:"stats"`
}

func (s *UserService) Profile(ctx context.Context, userID string) (*ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, common.Errorf("load user: %w", err)
	}

	recent, err := s.submissionRepo.ListRecentByUser(ctx, userID, 10)
	if err != nil {
		return nil, common.Errorf("load recent submissions: %w", err)
	}

	stats, err := s.submissionRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, common.Errorf("load submission stats: %w", err)
	}

	return &ProfileResponse{
		User:              user,
		RecentSubmissions: recent,
		Stats: ProfileStats{
			TotalSubmissions:  stats.Total,
			PassedSubmissions: stats.Passed,
			FailedSubmissions: stats.Failed,
		},
	}, nil
}

type LevelsResponse struct {
	LevelLinks      map[int]string `json:"levelLinks"`
	CompletedLevels []int          `json:"completedLevels"`
}

// Levels returns the static level-to-assignment-link table together with the
// caller's already-passed level numbers, ascending. An empty userID falls
// back to the anonymous identity, matching the submit path.
func (s *UserService) Levels(ctx context.Context, userID string) (*LevelsResponse, error) {
	if userID == "" {
		user, err := s.identity.GetOrCreate(ctx)
		if err != nil {
			return nil, err
		}
		userID = user.ID
	}

	rawLevels, err := s.submissionRepo.ListPassedLevels(ctx, userID)
	if err != nil {
		return nil, common.Errorf("load passed levels: %w", err)
	}

	completed := make([]int, 0, len(rawLevels))
	for _, raw := range rawLevels {
		if level, err := strconv.Atoi(raw); err == nil {
			completed = append(completed, level)
		}
	}
	sort.Ints(completed)

	return &LevelsResponse{
		LevelLinks:      s.levelLinks,
		CompletedLevels: completed,
	}, nil
}
