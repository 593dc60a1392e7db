package ports

import (
	"context"

	"github.com/bnema/lensgraph-cli/internal/domain"
)

// SocialGraphClient is the transport boundary to the social-graph service.
// Implementations classify failures with domain error kinds: an expected
// service rejection is KindRejectedByService, an unreachable or errored
// collaborator is KindTransport, and the two are never conflated.
type SocialGraphClient interface {
	// GenerateChallenge issues a one-time login challenge for address.
	GenerateChallenge(ctx context.Context, address string) (domain.Challenge, error)

	// Authenticate exchanges a signed challenge for a bearer token.
	Authenticate(ctx context.Context, address, signature string) (string, error)

	// LookupProfile resolves a handle. A nil profile with a nil error means
	// the handle does not exist; that is a normal negative result.
	LookupProfile(ctx context.Context, handle string) (*domain.Profile, error)

	// CreatePostTypedData asks the service for a typed-data envelope over
	// the given content URI. Requires a bearer token.
	CreatePostTypedData(ctx context.Context, token, contentURI string) (domain.TypedDataEnvelope, error)

	// Broadcast submits the signature for a previously issued envelope. A
	// relay-level refusal is reported inside the outcome, not as an error.
	Broadcast(ctx context.Context, token, envelopeID, signature string) (domain.BroadcastOutcome, error)

	// AwaitIndexed blocks until the transaction is queryable through the
	// graph API or the client's own polling budget runs out, in which case
	// it returns a KindIndexingTimeout error.
	AwaitIndexed(ctx context.Context, token, txHash string) error

	// ListPublications returns up to limit post publications authored by
	// profileID, in the order the service supplies them.
	ListPublications(ctx context.Context, profileID string, limit int) ([]domain.Publication, error)

	// ActiveToken returns an already-issued token from the client's session
	// cache, when one is present.
	ActiveToken(ctx context.Context) (string, bool, error)

	// InvalidateSession revokes the token remotely and clears the client's
	// session cache.
	InvalidateSession(ctx context.Context, token string) error
}
