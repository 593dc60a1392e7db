package domain

import "time"

type SessionStatus string

const (
	SessionLoggedOut       SessionStatus = "logged_out"
	SessionChallengeIssued SessionStatus = "challenge_issued"
	SessionSigned          SessionStatus = "signed"
	SessionAuthenticated   SessionStatus = "authenticated"
)

// Token is the bearer credential issued by the graph service, paired with
// the claim set decoded from it.
type Token struct {
	Raw       string
	ProfileID string
	ExpiresAt time.Time
}

// Expired reports whether the token's expiry claim has passed. Tokens
// without an expiry claim never expire client-side.
func (t Token) Expired(now time.Time) bool {
	if t.ExpiresAt.IsZero() {
		return false
	}
	return !t.ExpiresAt.After(now)
}

// Session is the single live authentication session. Exactly one exists per
// process; a zero Session is a logged-out one.
type Session struct {
	Address   string
	Token     *Token
	ProfileID string
	Status    SessionStatus
}

func (s Session) Authenticated() bool {
	return s.Status == SessionAuthenticated
}

// CanPublish reports whether the session may enter the publication pipeline.
// An authenticated session whose token carried no usable profile claim is
// deliberately excluded.
func (s Session) CanPublish() bool {
	return s.Status == SessionAuthenticated && s.ProfileID != ""
}

// Challenge is a one-time text the wallet must sign to prove ownership of
// the address it was issued for. It is consumed by a single signing attempt,
// successful or not.
type Challenge struct {
	Text    string
	Address string
}

// SessionRecord is the persisted shape of an issued token, written by the
// session cache so a later process can restore without re-running the
// challenge flow.
type SessionRecord struct {
	Address    string
	Token      string
	ObtainedAt time.Time
}
