package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/lensgraph-cli/internal/domain"
	"github.com/bnema/lensgraph-cli/internal/ports"
)

const defaultFeedLimit = 10

// LookupService serves the read-only surfaces: profile resolution and
// recent-publication feeds. Not-found is a normal negative result here, kept
// apart from transport failure.
type LookupService struct {
	client ports.SocialGraphClient
}

func NewLookupService(client ports.SocialGraphClient) *LookupService {
	return &LookupService{client: client}
}

func (s *LookupService) Resolve(ctx context.Context, handle string) (domain.Profile, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return domain.Profile{}, domain.NewError(domain.KindInvalidInput, "profile handle is required")
	}

	profile, err := s.client.LookupProfile(ctx, handle)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("resolve handle %q: %w", handle, err)
	}
	if profile == nil {
		return domain.Profile{}, domain.NewError(domain.KindNotFound, fmt.Sprintf("profile %q not found", handle))
	}

	return *profile, nil
}

// Recent resolves handle and returns its most recent post publications in
// the order the service supplies them. An empty page is a success.
func (s *LookupService) Recent(ctx context.Context, handle string, limit int) (domain.FeedPage, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}

	profile, err := s.Resolve(ctx, handle)
	if err != nil {
		return domain.FeedPage{}, err
	}

	publications, err := s.client.ListPublications(ctx, profile.ID, limit)
	if err != nil {
		return domain.FeedPage{}, fmt.Errorf("list publications for %q: %w", handle, err)
	}

	return domain.FeedPage{Items: publications}, nil
}
