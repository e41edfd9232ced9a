package service

import (
	"context"
	"errors"
	"time"

	"osday/internal/common"
	"osday/internal/domain/model"
	"osday/internal/domain/repository"

	"github.com/google/uuid"
)

// Sentinel identity used when a request arrives without authentication.
const (
	testGithubID = "test-123"
	testHandle   = "test-user"
)

// IdentityProvider supplies a fallback identity for unauthenticated
// requests. Production deployments inject NoIdentityProvider so anonymous
// submissions are rejected instead of attributed to a shared test user.
type IdentityProvider interface {
	GetOrCreate(ctx context.Context) (*model.User, error)
}

type TestIdentityProvider struct {
	userRepo repository.UserRepository
}

func NewTestIdentityProvider(userRepo repository.UserRepository) *TestIdentityProvider {
	return &TestIdentityProvider{userRepo: userRepo}
}

// GetOrCreate is idempotent: a racing Create that loses on the github_id
// unique constraint re-fetches the winner's row instead of erroring.
func (p *TestIdentityProvider) GetOrCreate(ctx context.Context) (*model.User, error) {
	user, err := p.userRepo.FindByGithubID(ctx, testGithubID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, common.Errorf("fetch test user: %w", err)
	}

	now := time.Now()
	user = &model.User{
		ID:         uuid.NewString(),
		GithubID:   testGithubID,
		Handle:     testHandle,
		ProfileURL: "https://github.com/" + testHandle,
		AvatarURL:  "https://github.com/identicons/" + testHandle + ".png",
		LastActive: now,
		CreatedAt:  now,
	}
	if err := p.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return p.userRepo.FindByGithubID(ctx, testGithubID)
		}
		return nil, common.Errorf("create test user: %w", err)
	}
	return user, nil
}

type NoIdentityProvider struct{}

func (NoIdentityProvider) GetOrCreate(ctx context.Context) (*model.User, error) {
	return nil, common.Errorf("authentication required: %w", common.ErrUnauthorized)
}
