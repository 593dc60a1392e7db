package application

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/lensgraph-cli/internal/domain"
)

func testJWT(t *testing.T, claims map[string]any) string {
	t.Helper()

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	require.NoError(t, err)

	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	t.Parallel()

	client := &fakeGraphClient{token: testJWT(t, map[string]any{"id": "0x01"})}
	signer := &fakeSigner{}
	svc := NewAuthService(client, signer, nil, nil)

	session, err := svc.Login(context.Background(), "0xABC")
	require.NoError(t, err)

	assert.Equal(t, "0xABC", session.Address)
	assert.Equal(t, "0x01", session.ProfileID)
	assert.Equal(t, domain.SessionAuthenticated, session.Status)
	require.NotNil(t, session.Token)
	assert.Equal(t, client.token, session.Token.Raw)

	assert.Equal(t, 1, client.challengeCalls)
	assert.Equal(t, 1, client.authCalls)
	assert.Equal(t, "sign-in challenge for 0xABC", signer.lastMessage)

	assert.Equal(t, session, svc.Current())
}

func TestAuthServiceLoginRejectsBlankAddress(t *testing.T) {
	t.Parallel()

	client := &fakeGraphClient{}
	signer := &fakeSigner{}
	svc := NewAuthService(client, signer, nil, nil)

	_, err := svc.Login(context.Background(), "   ")
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))

	assert.Zero(t, client.challengeCalls)
	assert.Zero(t, signer.messageCalls)
	assert.Equal(t, domain.SessionLoggedOut, svc.Current().Status)
}

func TestAuthServiceLoginChallengeFailureResetsToLoggedOut(t *testing.T) {
	t.Parallel()

	client := &fakeGraphClient{challengeErr: domain.NewError(domain.KindTransport, "graph unreachable")}
	svc := NewAuthService(client, &fakeSigner{}, nil, nil)

	_, err := svc.Login(context.Background(), "0xABC")
	assert.Equal(t, domain.KindChallengeFailed, domain.KindOf(err))
	assert.Equal(t, domain.SessionLoggedOut, svc.Current().Status)
	assert.Nil(t, svc.Current().Token)
}

func TestAuthServiceLoginSignatureDeclined(t *testing.T) {
	t.Parallel()

	client := &fakeGraphClient{}
	signer := &fakeSigner{declineMessage: true}
	svc := NewAuthService(client, signer, nil, nil)

	_, err := svc.Login(context.Background(), "0xABC")
	assert.Equal(t, domain.KindSignatureDeclined, domain.KindOf(err))

	assert.Zero(t, client.authCalls)
	assert.Equal(t, domain.SessionLoggedOut, svc.Current().Status)
}

func TestAuthServiceLoginServiceRejectionKeepsClassification(t *testing.T) {
	t.Parallel()

	client := &fakeGraphClient{authErr: domain.NewError(domain.KindRejectedByService, "signature does not match address")}
	svc := NewAuthService(client, &fakeSigner{}, nil, nil)

	_, err := svc.Login(context.Background(), "0xABC")
	assert.Equal(t, domain.KindRejectedByService, domain.KindOf(err))
	assert.Equal(t, domain.SessionLoggedOut, svc.Current().Status)
}

func TestAuthServiceLoginUndecodableTokenKeepsDegradedSession(t *testing.T) {
	t.Parallel()

	client := &fakeGraphClient{token: "not-a-jwt"}
	svc := NewAuthService(client, &fakeSigner{}, nil, nil)

	session, err := svc.Login(context.Background(), "0xABC")
	assert.Equal(t, domain.KindTokenUndecodable, domain.KindOf(err))

	assert.Equal(t, domain.SessionAuthenticated, session.Status)
	assert.Empty(t, session.ProfileID)
	require.NotNil(t, session.Token)
	assert.Equal(t, "not-a-jwt", session.Token.Raw)
	assert.False(t, session.CanPublish())
}

func TestAuthServiceLoginRejectsConcurrentLogin(t *testing.T) {
	t.Parallel()

	client := &fakeGraphClient{
		token:            testJWT(t, map[string]any{"id": "0x01"}),
		challengeStarted: make(chan struct{}),
		challengeRelease: make(chan struct{}),
	}
	svc := NewAuthService(client, &fakeSigner{}, nil, nil)

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.Login(context.Background(), "0xABC")
		firstDone <- err
	}()

	<-client.challengeStarted
	_, err := svc.Login(context.Background(), "0xDEF")
	assert.ErrorIs(t, err, ErrLoginInFlight)

	close(client.challengeRelease)
	require.NoError(t, <-firstDone)
	assert.Equal(t, "0xABC", svc.Current().Address)
}

func TestAuthServiceLogoutIsIdempotent(t *testing.T) {
	t.Parallel()

	client := &fakeGraphClient{}
	svc := NewAuthService(client, &fakeSigner{}, nil, nil)

	svc.Logout(context.Background())
	svc.Logout(context.Background())

	assert.Equal(t, domain.SessionLoggedOut, svc.Current().Status)
	assert.Zero(t, client.invalidateCalls)
}

func TestAuthServiceLogoutInvalidatesRemoteSession(t *testing.T) {
	t.Parallel()

	token := testJWT(t, map[string]any{"id": "0x01"})
	client := &fakeGraphClient{token: token}
	svc := NewAuthService(client, &fakeSigner{}, nil, nil)

	_, err := svc.Login(context.Background(), "0xABC")
	require.NoError(t, err)

	svc.Logout(context.Background())

	assert.Equal(t, 1, client.invalidateCalls)
	assert.Equal(t, []string{token}, client.invalidateTokens)
	assert.Equal(t, domain.SessionLoggedOut, svc.Current().Status)
	assert.Nil(t, svc.Current().Token)
}

func TestAuthServiceLogoutClearsLocalStateWhenRemoteFails(t *testing.T) {
	t.Parallel()

	client := &fakeGraphClient{
		token:         testJWT(t, map[string]any{"id": "0x01"}),
		invalidateErr: domain.NewError(domain.KindTransport, "graph unreachable"),
	}
	svc := NewAuthService(client, &fakeSigner{}, nil, nil)

	_, err := svc.Login(context.Background(), "0xABC")
	require.NoError(t, err)

	svc.Logout(context.Background())
	assert.Equal(t, domain.SessionLoggedOut, svc.Current().Status)
}

func TestAuthServiceRestorePopulatesSessionFromActiveToken(t *testing.T) {
	t.Parallel()

	client := &fakeGraphClient{
		activeToken: testJWT(t, map[string]any{"id": "0x05"}),
		activeOK:    true,
	}
	svc := NewAuthService(client, &fakeSigner{}, nil, nil)

	session, ok := svc.Restore(context.Background())
	require.True(t, ok)

	assert.Equal(t, domain.SessionAuthenticated, session.Status)
	assert.Equal(t, "0x05", session.ProfileID)
	assert.Zero(t, client.challengeCalls)
	assert.Equal(t, session, svc.Current())
}

func TestAuthServiceRestoreReportsFalseWithoutToken(t *testing.T) {
	t.Parallel()

	svc := NewAuthService(&fakeGraphClient{}, &fakeSigner{}, nil, nil)

	_, ok := svc.Restore(context.Background())
	assert.False(t, ok)
	assert.Equal(t, domain.SessionLoggedOut, svc.Current().Status)
}

func TestAuthServiceRestoreSkipsExpiredToken(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	client := &fakeGraphClient{
		activeToken: testJWT(t, map[string]any{"id": "0x05", "exp": now.Add(-time.Hour).Unix()}),
		activeOK:    true,
	}
	svc := NewAuthService(client, &fakeSigner{}, nil, fixedClock{now: now})

	_, ok := svc.Restore(context.Background())
	assert.False(t, ok)
	assert.Equal(t, domain.SessionLoggedOut, svc.Current().Status)
}
