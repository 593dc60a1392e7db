package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/lensgraph-cli/internal/domain"
	"github.com/bnema/lensgraph-cli/internal/ports"
)

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// PublishService drives the post-creation pipeline: metadata, typed data,
// signature, broadcast, indexing confirmation. A failure anywhere aborts the
// whole attempt; a retry starts over with a fresh envelope and a fresh
// metadata identifier. The draft stays with the caller until an attempt
// fully succeeds.
type PublishService struct {
	client ports.SocialGraphClient
	signer ports.WalletSigner
}

func NewPublishService(client ports.SocialGraphClient, signer ports.WalletSigner) *PublishService {
	return &PublishService{client: client, signer: signer}
}

func (s *PublishService) Submit(ctx context.Context, draft domain.PublicationDraft, session domain.Session) (domain.BroadcastOutcome, error) {
	if !session.CanPublish() || session.Token == nil {
		return domain.BroadcastOutcome{}, domain.NewError(domain.KindNotAuthenticated, "publishing requires an authenticated session with a profile")
	}
	if isBlank(draft.Content) {
		return domain.BroadcastOutcome{}, domain.NewError(domain.KindEmptyContent, "post content cannot be empty")
	}

	metadata := BuildMetadata(draft.Content)
	contentURI, err := EncodeContentURI(metadata)
	if err != nil {
		return domain.BroadcastOutcome{}, domain.WrapError(domain.KindRequestFailed, "build publication payload", err)
	}

	token := session.Token.Raw
	envelope, err := s.client.CreatePostTypedData(ctx, token, contentURI)
	if err != nil {
		return domain.BroadcastOutcome{}, domain.WrapError(domain.KindRequestFailed, "request post typed data", err)
	}

	// The envelope is single-use: declined or failed signatures discard it.
	signature, err := s.signer.SignTypedData(ctx, envelope.Domain, envelope.Types, envelope.Value)
	if err != nil {
		if errors.Is(err, ports.ErrSignatureDeclined) {
			return domain.BroadcastOutcome{}, domain.WrapError(domain.KindSignatureDeclined, "sign post typed data", err)
		}
		return domain.BroadcastOutcome{}, domain.WrapError(domain.KindRequestFailed, "sign post typed data", err)
	}

	outcome, err := s.client.Broadcast(ctx, token, envelope.ID, signature)
	if err != nil {
		return domain.BroadcastOutcome{}, domain.WrapError(domain.KindRequestFailed, "broadcast post", err)
	}
	if outcome.Rejected() {
		return outcome, domain.NewError(domain.KindBroadcastRejected, outcome.RelayReason)
	}

	// The wait's timeout policy belongs to the collaborator; its signal is
	// propagated as-is.
	if err := s.client.AwaitIndexed(ctx, token, outcome.TxHash); err != nil {
		return outcome, fmt.Errorf("confirm indexing of %s: %w", outcome.TxHash, err)
	}

	return outcome, nil
}
