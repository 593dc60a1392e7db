package codec

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/lensgraph-cli/internal/domain"
)

func signedToken(t *testing.T, claims map[string]any) string {
	t.Helper()

	encode := func(v any) string {
		payload, err := json.Marshal(v)
		require.NoError(t, err)
		return base64.RawURLEncoding.EncodeToString(payload)
	}

	header := encode(map[string]string{"alg": "HS256", "typ": "JWT"})
	return header + "." + encode(claims) + ".signature"
}

func TestDecodeExtractsProfileAndExpiry(t *testing.T) {
	t.Parallel()

	expiry := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	raw := signedToken(t, map[string]any{
		"id":  "0x24",
		"exp": expiry.Unix(),
	})

	token, err := New().Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, token.Raw)
	assert.Equal(t, "0x24", token.ProfileID)
	assert.True(t, token.ExpiresAt.Equal(expiry))
}

func TestDecodeFallsBackToSubjectClaim(t *testing.T) {
	t.Parallel()

	raw := signedToken(t, map[string]any{"sub": "0x99"})

	token, err := New().Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "0x99", token.ProfileID)
}

func TestDecodeEmptyTokenIsUndecodable(t *testing.T) {
	t.Parallel()

	token, err := New().Decode("   ")
	assert.True(t, Undecodable(err))
	assert.Equal(t, domain.KindTokenUndecodable, domain.KindOf(err))
	assert.Empty(t, token.ProfileID)
}

func TestDecodeMalformedTokenKeepsRawValue(t *testing.T) {
	t.Parallel()

	token, err := New().Decode("not-a-jwt")
	assert.True(t, Undecodable(err))
	assert.Equal(t, "not-a-jwt", token.Raw)
}

func TestDecodeTokenWithoutProfileClaimIsUndecodable(t *testing.T) {
	t.Parallel()

	raw := signedToken(t, map[string]any{"exp": time.Now().Add(time.Hour).Unix()})

	token, err := New().Decode(raw)
	assert.True(t, Undecodable(err))
	assert.Equal(t, raw, token.Raw)
	assert.False(t, token.ExpiresAt.IsZero())
}

func TestUndecodableIgnoresOtherKinds(t *testing.T) {
	t.Parallel()

	assert.False(t, Undecodable(domain.NewError(domain.KindTransport, "down")))
	assert.False(t, Undecodable(nil))
}
