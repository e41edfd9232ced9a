package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"osday/internal/common"
	"osday/internal/common/security"
	"osday/internal/platform/config"
	"osday/internal/platform/github"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOAuth struct {
	token       string
	profile     *github.AuthenticatedUser
	exchangeErr error
	fetchErr    error
}

func (f *fakeOAuth) ExchangeCode(ctx context.Context, code string) (string, error) {
	if f.exchangeErr != nil {
		return "", f.exchangeErr
	}
	return f.token, nil
}

func (f *fakeOAuth) FetchAuthenticatedUser(ctx context.Context, accessToken string) (*github.AuthenticatedUser, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.profile, nil
}

func authFixture(t *testing.T) (*AuthService, *fakeUserRepo, *fakeOAuth) {
	t.Helper()
	config.AppConfig = &config.Config{JWTKey: []byte("test-secret"), JWTExp: time.Hour}
	security.InitJWT()

	users := newFakeUserRepo()
	oauth := &fakeOAuth{
		token: "gho_abc",
		profile: &github.AuthenticatedUser{
			ID:        7,
			Login:     "alice",
			HTMLURL:   "https://github.com/alice",
			AvatarURL: "https://avatars.githubusercontent.com/u/7",
		},
	}
	svc := NewAuthService(users, oauth, "cid", "https://github.com/login/oauth/authorize", "http://localhost:3000")
	return svc, users, oauth
}

func TestLoginRedirectURL(t *testing.T) {
	svc, _, _ := authFixture(t)
	assert.Equal(t, "https://github.com/login/oauth/authorize?client_id=cid&scope=user", svc.LoginRedirectURL())
}

func TestHandleCallbackFirstLogin(t *testing.T) {
	svc, users, _ := authFixture(t)

	redirect, err := svc.HandleCallback(context.Background(), "the-code")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(redirect, "http://localhost:3000/dashboard?token="))

	user, err := users.FindByGithubID(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Handle)
	assert.Equal(t, "https://github.com/alice", user.ProfileURL)
}

func TestHandleCallbackRepeatLoginReusesUser(t *testing.T) {
	svc, users, _ := authFixture(t)

	_, err := svc.HandleCallback(context.Background(), "the-code")
	require.NoError(t, err)
	first, err := users.FindByGithubID(context.Background(), "7")
	require.NoError(t, err)

	_, err = svc.HandleCallback(context.Background(), "another-code")
	require.NoError(t, err)
	second, err := users.FindByGithubID(context.Background(), "7")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, users.users, 1)
}

func TestHandleCallbackMissingCode(t *testing.T) {
	svc, _, _ := authFixture(t)

	_, err := svc.HandleCallback(context.Background(), "")
	assert.ErrorIs(t, err, common.ErrBadRequest)
}

func TestHandleCallbackExchangeFailure(t *testing.T) {
	svc, _, oauth := authFixture(t)
	oauth.exchangeErr = errors.New("bad_verification_code")

	_, err := svc.HandleCallback(context.Background(), "stale")
	require.Error(t, err)
}
