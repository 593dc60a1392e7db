package application

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bnema/lensgraph-cli/internal/domain"
	"github.com/bnema/lensgraph-cli/internal/ports"
)

type fakeGraphClient struct {
	challengeCalls   int
	authCalls        int
	lookupCalls      int
	typedDataCalls   int
	broadcastCalls   int
	awaitCalls       int
	listCalls        int
	activeTokenCalls int
	invalidateCalls  int

	challengeText    string
	challengeErr     error
	challengeStarted chan struct{}
	challengeRelease chan struct{}

	token   string
	authErr error

	profile   *domain.Profile
	lookupErr error

	typedDataErr error
	contentURIs  []string

	outcomes     []domain.BroadcastOutcome
	broadcastErr error
	broadcastIDs []string

	awaitErr error

	publications []domain.Publication
	listErr      error
	listLimit    int
	listProfile  string

	activeToken string
	activeOK    bool

	invalidateErr    error
	invalidateTokens []string
}

var _ ports.SocialGraphClient = (*fakeGraphClient)(nil)

func (f *fakeGraphClient) GenerateChallenge(_ context.Context, address string) (domain.Challenge, error) {
	f.challengeCalls++
	if f.challengeStarted != nil {
		close(f.challengeStarted)
	}
	if f.challengeRelease != nil {
		<-f.challengeRelease
	}
	if f.challengeErr != nil {
		return domain.Challenge{}, f.challengeErr
	}

	text := f.challengeText
	if text == "" {
		text = "sign-in challenge for " + address
	}
	return domain.Challenge{Text: text, Address: address}, nil
}

func (f *fakeGraphClient) Authenticate(_ context.Context, _, _ string) (string, error) {
	f.authCalls++
	if f.authErr != nil {
		return "", f.authErr
	}
	return f.token, nil
}

func (f *fakeGraphClient) LookupProfile(_ context.Context, _ string) (*domain.Profile, error) {
	f.lookupCalls++
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return f.profile, nil
}

func (f *fakeGraphClient) CreatePostTypedData(_ context.Context, _, contentURI string) (domain.TypedDataEnvelope, error) {
	f.typedDataCalls++
	if f.typedDataErr != nil {
		return domain.TypedDataEnvelope{}, f.typedDataErr
	}

	f.contentURIs = append(f.contentURIs, contentURI)
	return domain.TypedDataEnvelope{
		ID:     fmt.Sprintf("envelope-%d", f.typedDataCalls),
		Domain: json.RawMessage(`{"name":"graph"}`),
		Types:  json.RawMessage(`{"Post":[]}`),
		Value:  json.RawMessage(`{"contentURI":"..."}`),
	}, nil
}

func (f *fakeGraphClient) Broadcast(_ context.Context, _, envelopeID, _ string) (domain.BroadcastOutcome, error) {
	f.broadcastCalls++
	f.broadcastIDs = append(f.broadcastIDs, envelopeID)
	if f.broadcastErr != nil {
		return domain.BroadcastOutcome{}, f.broadcastErr
	}
	if len(f.outcomes) == 0 {
		return domain.BroadcastOutcome{TxHash: "0xtx"}, nil
	}

	outcome := f.outcomes[0]
	if len(f.outcomes) > 1 {
		f.outcomes = f.outcomes[1:]
	}
	return outcome, nil
}

func (f *fakeGraphClient) AwaitIndexed(_ context.Context, _, _ string) error {
	f.awaitCalls++
	return f.awaitErr
}

func (f *fakeGraphClient) ListPublications(_ context.Context, profileID string, limit int) ([]domain.Publication, error) {
	f.listCalls++
	f.listProfile = profileID
	f.listLimit = limit
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.publications, nil
}

func (f *fakeGraphClient) ActiveToken(_ context.Context) (string, bool, error) {
	f.activeTokenCalls++
	return f.activeToken, f.activeOK, nil
}

func (f *fakeGraphClient) InvalidateSession(_ context.Context, token string) error {
	f.invalidateCalls++
	f.invalidateTokens = append(f.invalidateTokens, token)
	return f.invalidateErr
}

type fakeSigner struct {
	messageCalls   int
	typedCalls     int
	declineMessage bool
	declineTyped   bool
	signErr        error
	lastMessage    string
}

var _ ports.WalletSigner = (*fakeSigner)(nil)

func (f *fakeSigner) SignMessage(_ context.Context, text string) (string, error) {
	f.messageCalls++
	f.lastMessage = text
	if f.declineMessage {
		return "", ports.ErrSignatureDeclined
	}
	if f.signErr != nil {
		return "", f.signErr
	}
	return "0xmessage-signature", nil
}

func (f *fakeSigner) SignTypedData(_ context.Context, _, _, _ json.RawMessage) (string, error) {
	f.typedCalls++
	if f.declineTyped {
		return "", ports.ErrSignatureDeclined
	}
	if f.signErr != nil {
		return "", f.signErr
	}
	return "0xtyped-signature", nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}
