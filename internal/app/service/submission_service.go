package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"osday/internal/common"
	"osday/internal/common/repourl"
	"osday/internal/domain/model"
	"osday/internal/domain/repository"
	"osday/internal/platform/locker"

	"github.com/google/uuid"
)

// SubmissionService owns the submit-request decision procedure: it is the
// sole writer of submissions and the sole mutator of user statistics.
type SubmissionService struct {
	evaluator      *Evaluator
	submissionRepo repository.SubmissionRepository
	userRepo       repository.UserRepository
	identity       IdentityProvider
	locks          locker.Locker
}

func NewSubmissionService(
	evaluator *Evaluator,
	submissionRepo repository.SubmissionRepository,
	userRepo repository.UserRepository,
	identity IdentityProvider,
	locks locker.Locker,
) *SubmissionService {
	return &SubmissionService{
		evaluator:      evaluator,
		submissionRepo: submissionRepo,
		userRepo:       userRepo,
		identity:       identity,
		locks:          locks,
	}
}

type SubmitRequest struct {
	RepoURL string `json:"repoUrl"`
	Level   string `json:"level"`
}

type SubmitResult struct {
	Status      string            `json:"status"`
	Score       int               `json:"score"`
	Message     string            `json:"message"`
	TestResults model.TestResults `json:"testResults"`
}

// Submit evaluates the repository's CI state and decides what happens to
// the submission: reject (validation or duplicate), supersede any prior
// submission for the same (user, repo) pair, persist, and award stats on a
// pass. userID may be empty, in which case the fallback identity is used.
func (s *SubmissionService) Submit(ctx context.Context, userID string, req SubmitRequest) (*SubmitResult, error) {
	if userID == "" {
		user, err := s.identity.GetOrCreate(ctx)
		if err != nil {
			return nil, err
		}
		userID = user.ID
		slog.Info("no authenticated user, using test identity", "user_id", userID)
	}

	if req.RepoURL == "" || !strings.Contains(req.RepoURL, "github.com") {
		return nil, common.Errorf("Invalid repository URL. Must be a valid GitHub URL: %w", common.ErrValidation)
	}
	if strings.Contains(req.RepoURL, "classroom.github.com") {
		return nil, common.Errorf("Please submit your forked GitHub repository URL, not the Classroom invite link: %w", common.ErrValidation)
	}

	level := req.Level
	if level == "" {
		level = "1"
	}

	// Evaluate before touching persisted state. The cost is paid even for
	// requests that end up rejected as duplicates, because the duplicate
	// rule depends on the new verdict.
	result := s.evaluator.Evaluate(ctx, req.RepoURL, level)

	// Everything from the duplicate check to the stats award runs under a
	// per-(user, repo) lock so concurrent submissions for the same pair
	// cannot double-award.
	release, err := s.locks.Acquire(ctx, "submit:"+userID+":"+req.RepoURL)
	if err != nil {
		return nil, err
	}
	defer release()

	existing, err := s.submissionRepo.FindPassedByUserAndRepo(ctx, userID, req.RepoURL)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, common.Errorf("check for existing submission: %w", err)
	}
	if existing != nil && result.Status == model.StatusPassed {
		return nil, common.Errorf("This repository has already been submitted successfully: %w", common.ErrDuplicateSubmission)
	}

	if handle := repourl.InferHandle(req.RepoURL); handle != repourl.UnknownHandle {
		if err := s.userRepo.UpdateHandle(ctx, userID, handle); err != nil {
			return nil, common.Errorf("update user handle: %w", err)
		}
	}

	now := time.Now()
	sub := &model.Submission{
		ID:          uuid.NewString(),
		UserID:      userID,
		Level:       level,
		RepoURL:     req.RepoURL,
		Status:      result.Status,
		Score:       result.Score,
		TestResults: result.TestResults,
		SubmittedAt: now,
		EvaluatedAt: now,
	}

	award := result.Status == model.StatusPassed
	if err := s.submissionRepo.ReplaceForUserAndRepo(ctx, sub, award); err != nil {
		return nil, common.Errorf("persist submission: %w", err)
	}

	slog.Info("submission stored",
		"user_id", userID, "repo_url", req.RepoURL, "level", level,
		"status", result.Status, "score", result.Score)

	return &SubmitResult{
		Status:      string(result.Status),
		Score:       result.Score,
		Message:     result.Message,
		TestResults: result.TestResults,
	}, nil
}
