package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bnema/lensgraph-cli/internal/adapters/codec"
	"github.com/bnema/lensgraph-cli/internal/domain"
	"github.com/bnema/lensgraph-cli/internal/ports"
)

// ErrLoginInFlight rejects a login started while another one is still
// outstanding. The caller must let the first attempt finish (or cancel its
// context) before retrying.
var ErrLoginInFlight = errors.New("another login is already in flight")

// AuthService owns the login/logout state machine. It holds the single live
// session; all transitions happen at operation boundaries, so a reader never
// observes a half-authenticated session.
type AuthService struct {
	client ports.SocialGraphClient
	signer ports.WalletSigner
	codec  *codec.TokenCodec
	clock  ports.Clock

	mu            sync.Mutex
	session       domain.Session
	loginInFlight bool
}

func NewAuthService(client ports.SocialGraphClient, signer ports.WalletSigner, tokenCodec *codec.TokenCodec, clock ports.Clock) *AuthService {
	if tokenCodec == nil {
		tokenCodec = codec.New()
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &AuthService{
		client:  client,
		signer:  signer,
		codec:   tokenCodec,
		clock:   clock,
		session: domain.Session{Status: domain.SessionLoggedOut},
	}
}

// Current returns a snapshot of the live session.
func (s *AuthService) Current() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Login runs the challenge/sign/authenticate flow for address and replaces
// the live session with the result. Any failure before the token is stored
// resets to LoggedOut and discards the issued challenge. The one exception
// is a token that authenticates but cannot be decoded: the session is kept
// Authenticated with an empty profile ID and the KindTokenUndecodable error
// is surfaced so the caller knows the session is degraded.
func (s *AuthService) Login(ctx context.Context, address string) (domain.Session, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return s.Current(), domain.NewError(domain.KindInvalidInput, "wallet address is required")
	}

	s.mu.Lock()
	if s.loginInFlight {
		session := s.session
		s.mu.Unlock()
		return session, ErrLoginInFlight
	}
	s.loginInFlight = true
	s.mu.Unlock()

	session, err := s.runLogin(ctx, address)

	s.mu.Lock()
	s.session = session
	s.loginInFlight = false
	s.mu.Unlock()

	return session, err
}

func (s *AuthService) runLogin(ctx context.Context, address string) (domain.Session, error) {
	challenge, err := s.client.GenerateChallenge(ctx, address)
	if err != nil {
		return loggedOut(), domain.WrapError(domain.KindChallengeFailed, "issue login challenge", err)
	}

	// ChallengeIssued and Signed are transient: they only exist within this
	// call and a failure falls all the way back to LoggedOut.
	session := domain.Session{Address: address, Status: domain.SessionChallengeIssued}

	signature, err := s.signer.SignMessage(ctx, challenge.Text)
	if err != nil {
		if errors.Is(err, ports.ErrSignatureDeclined) {
			return loggedOut(), domain.WrapError(domain.KindSignatureDeclined, "sign login challenge", err)
		}
		return loggedOut(), domain.WrapError(domain.KindTransport, "sign login challenge", err)
	}
	session.Status = domain.SessionSigned

	raw, err := s.client.Authenticate(ctx, address, signature)
	if err != nil {
		return loggedOut(), fmt.Errorf("exchange signed challenge: %w", err)
	}

	token, decodeErr := s.codec.Decode(raw)
	session.Status = domain.SessionAuthenticated
	session.Token = &token
	session.ProfileID = token.ProfileID

	if decodeErr != nil {
		return session, decodeErr
	}
	return session, nil
}

// Logout invalidates the remote session when a token is held (best effort),
// then unconditionally resets the local session. Calling it while already
// logged out is a no-op.
func (s *AuthService) Logout(ctx context.Context) {
	s.mu.Lock()
	token := ""
	if s.session.Token != nil {
		token = s.session.Token.Raw
	}
	s.mu.Unlock()

	if token != "" {
		// Remote invalidation failing must not block local teardown.
		_ = s.client.InvalidateSession(ctx, token)
	}

	s.mu.Lock()
	s.session = loggedOut()
	s.mu.Unlock()
}

// Restore rebuilds the session from an already-issued token, mirroring a
// successful login's terminal state without re-running the challenge flow.
// It reports false when no usable token exists.
func (s *AuthService) Restore(ctx context.Context) (domain.Session, bool) {
	raw, ok, err := s.client.ActiveToken(ctx)
	if err != nil || !ok {
		return s.Current(), false
	}

	token, decodeErr := s.codec.Decode(raw)
	if decodeErr == nil && token.Expired(s.clock.Now()) {
		return s.Current(), false
	}

	session := domain.Session{
		Status:    domain.SessionAuthenticated,
		Token:     &token,
		ProfileID: token.ProfileID,
	}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	return session, true
}

func loggedOut() domain.Session {
	return domain.Session{Status: domain.SessionLoggedOut}
}
