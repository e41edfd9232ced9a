package service

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"osday/internal/common"
	"osday/internal/common/security"
	"osday/internal/domain/model"
	"osday/internal/domain/repository"
	"osday/internal/platform/github"

	"github.com/google/uuid"
)

// OAuthClient is the slice of the provider client the auth flow needs.
type OAuthClient interface {
	ExchangeCode(ctx context.Context, code string) (string, error)
	FetchAuthenticatedUser(ctx context.Context, accessToken string) (*github.AuthenticatedUser, error)
}

type AuthService struct {
	userRepo     repository.UserRepository
	oauth        OAuthClient
	clientID     string
	authorizeURL string
	frontendURL  string
}

func NewAuthService(userRepo repository.UserRepository, oauth OAuthClient, clientID, authorizeURL, frontendURL string) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		oauth:        oauth,
		clientID:     clientID,
		authorizeURL: authorizeURL,
		frontendURL:  frontendURL,
	}
}

// LoginRedirectURL is where an unauthenticated browser is sent to start the
// OAuth dance.
func (s *AuthService) LoginRedirectURL() string {
	return s.authorizeURL + "?client_id=" + url.QueryEscape(s.clientID) + "&scope=user"
}

// HandleCallback exchanges the authorization code, lazily creates the user
// on first login, and returns the frontend URL carrying a fresh token.
func (s *AuthService) HandleCallback(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", common.Errorf("missing authorization code: %w", common.ErrBadRequest)
	}

	accessToken, err := s.oauth.ExchangeCode(ctx, code)
	if err != nil {
		return "", common.Errorf("exchange authorization code: %w", err)
	}

	profile, err := s.oauth.FetchAuthenticatedUser(ctx, accessToken)
	if err != nil {
		return "", common.Errorf("fetch github profile: %w", err)
	}

	user, err := s.findOrCreateUser(ctx, profile)
	if err != nil {
		return "", err
	}

	token, err := security.GenerateToken(user.ID, user.Handle)
	if err != nil {
		return "", common.Errorf("generate token: %w", err)
	}

	return s.frontendURL + "/dashboard?token=" + url.QueryEscape(token), nil
}

func (s *AuthService) findOrCreateUser(ctx context.Context, profile *github.AuthenticatedUser) (*model.User, error) {
	githubID := strconv.FormatInt(profile.ID, 10)

	user, err := s.userRepo.FindByGithubID(ctx, githubID)
	if err == nil {
		if err := s.userRepo.Touch(ctx, user.ID); err != nil {
			return nil, common.Errorf("refresh last active: %w", err)
		}
		return user, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, common.Errorf("find user: %w", err)
	}

	now := time.Now()
	user = &model.User{
		ID:         uuid.NewString(),
		GithubID:   githubID,
		Handle:     profile.Login,
		ProfileURL: profile.HTMLURL,
		AvatarURL:  profile.AvatarURL,
		LastActive: now,
		CreatedAt:  now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Two first logins can race on the github_id constraint; the loser
		// picks up the winner's row.
		if errors.Is(err, common.ErrConflict) {
			return s.userRepo.FindByGithubID(ctx, githubID)
		}
		return nil, common.Errorf("create user: %w", err)
	}

	slog.Info("new user registered", "handle", user.Handle)
	return user, nil
}
