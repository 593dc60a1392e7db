package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/lensgraph-cli/internal/domain"
)

func TestLookupResolveRequiresHandle(t *testing.T) {
	t.Parallel()

	client := &fakeGraphClient{}
	svc := NewLookupService(client)

	_, err := svc.Resolve(context.Background(), "   ")
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
	assert.Zero(t, client.lookupCalls)
}

func TestLookupResolveNotFoundIsNotTransport(t *testing.T) {
	t.Parallel()

	client := &fakeGraphClient{profile: nil}
	svc := NewLookupService(client)

	_, err := svc.Resolve(context.Background(), "nouser.lens")
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	assert.Contains(t, err.Error(), "nouser.lens")
}

func TestLookupResolveKeepsTransportClassification(t *testing.T) {
	t.Parallel()

	client := &fakeGraphClient{lookupErr: domain.NewError(domain.KindTransport, "graph unreachable")}
	svc := NewLookupService(client)

	_, err := svc.Resolve(context.Background(), "stani.lens")
	assert.Equal(t, domain.KindTransport, domain.KindOf(err))
}

func TestLookupResolveSuccess(t *testing.T) {
	t.Parallel()

	client := &fakeGraphClient{profile: &domain.Profile{
		ID:        "0x24",
		Handle:    "lens/stani",
		Name:      "Stani",
		Followers: 12,
		Following: 3,
	}}
	svc := NewLookupService(client)

	profile, err := svc.Resolve(context.Background(), "stani.lens")
	require.NoError(t, err)
	assert.Equal(t, "0x24", profile.ID)
	assert.Equal(t, "lens/stani", profile.Handle)
}

func TestLookupRecentReturnsItemsInServiceOrder(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	publications := []domain.Publication{
		{ID: "0x24-0x03", AuthorProfileID: "0x24", Content: "third", CreatedAt: now},
		{ID: "0x24-0x02", AuthorProfileID: "0x24", Content: "second", CreatedAt: now.Add(-time.Hour)},
		{ID: "0x24-0x01", AuthorProfileID: "0x24", Content: "first", CreatedAt: now.Add(-2 * time.Hour)},
	}
	client := &fakeGraphClient{
		profile:      &domain.Profile{ID: "0x24", Handle: "lens/stani"},
		publications: publications,
	}
	svc := NewLookupService(client)

	page, err := svc.Recent(context.Background(), "stani.lens", 10)
	require.NoError(t, err)

	require.Len(t, page.Items, 3)
	assert.Equal(t, publications, page.Items)
	assert.Equal(t, "0x24", client.listProfile)
	assert.Equal(t, 10, client.listLimit)
}

func TestLookupRecentDefaultsLimit(t *testing.T) {
	t.Parallel()

	client := &fakeGraphClient{profile: &domain.Profile{ID: "0x24"}}
	svc := NewLookupService(client)

	_, err := svc.Recent(context.Background(), "stani.lens", 0)
	require.NoError(t, err)
	assert.Equal(t, 10, client.listLimit)
}

func TestLookupRecentEmptyPageIsSuccess(t *testing.T) {
	t.Parallel()

	client := &fakeGraphClient{profile: &domain.Profile{ID: "0x24"}}
	svc := NewLookupService(client)

	page, err := svc.Recent(context.Background(), "stani.lens", 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestLookupRecentPropagatesResolverErrors(t *testing.T) {
	t.Parallel()

	client := &fakeGraphClient{}
	svc := NewLookupService(client)

	_, err := svc.Recent(context.Background(), "nouser.lens", 10)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	assert.Zero(t, client.listCalls)
}
