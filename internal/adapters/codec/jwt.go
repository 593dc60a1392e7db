package codec

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bnema/lensgraph-cli/internal/domain"
)

// TokenCodec decodes the bearer token issued by the graph service into its
// claim set. The service is the issuer of record and the client holds no
// verification key, so claims are read without signature verification.
type TokenCodec struct {
	parser *jwt.Parser
}

func New() *TokenCodec {
	return &TokenCodec{parser: jwt.NewParser()}
}

// Decode extracts the profile identifier and expiry from raw. On any
// malformed input, or when the token carries no usable profile claim, it
// returns the partially filled token (Raw set) together with a
// KindTokenUndecodable error so callers can distinguish "no token" from
// "token present but unparsable".
func (c *TokenCodec) Decode(raw string) (domain.Token, error) {
	token := domain.Token{Raw: raw}

	if strings.TrimSpace(raw) == "" {
		return token, domain.NewError(domain.KindTokenUndecodable, "access token is empty")
	}

	claims := jwt.MapClaims{}
	if _, _, err := c.parser.ParseUnverified(raw, claims); err != nil {
		return token, domain.WrapError(domain.KindTokenUndecodable, "parse access token", err)
	}

	token.ProfileID = profileClaim(claims)
	if expiry, err := claims.GetExpirationTime(); err == nil && expiry != nil {
		token.ExpiresAt = expiry.Time
	}

	if token.ProfileID == "" {
		return token, domain.NewError(domain.KindTokenUndecodable, "access token carries no profile identifier")
	}

	return token, nil
}

// profileClaim prefers the service's "id" claim and falls back to the
// standard subject.
func profileClaim(claims jwt.MapClaims) string {
	if id, ok := claims["id"].(string); ok && id != "" {
		return id
	}
	if sub, err := claims.GetSubject(); err == nil {
		return sub
	}
	return ""
}

// Undecodable reports whether err marks a token that was present but could
// not be decoded.
func Undecodable(err error) bool {
	var classified *domain.Error
	return errors.As(err, &classified) && classified.Kind == domain.KindTokenUndecodable
}
