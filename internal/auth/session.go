package auth

import (
	"time"

	"github.com/osse101/onsenkatsu/internal/domain"
)

// Session is a signed-in auth session as returned by the token endpoint
type Session struct {
	AccessToken  string      `json:"access_token"`
	TokenType    string      `json:"token_type"`
	ExpiresIn    int64       `json:"expires_in"`
	ExpiresAt    int64       `json:"expires_at"`
	RefreshToken string      `json:"refresh_token"`
	User         domain.User `json:"user"`
}

// Expiry returns when the access token stops being accepted
func (s *Session) Expiry() time.Time {
	return time.Unix(s.ExpiresAt, 0)
}

// NeedsRefresh reports whether the access token expires within skew of now
func (s *Session) NeedsRefresh(now time.Time, skew time.Duration) bool {
	if s.ExpiresAt == 0 {
		return false
	}
	return !now.Add(skew).Before(s.Expiry())
}

// stampExpiry fills ExpiresAt from ExpiresIn when the server omitted it
func (s *Session) stampExpiry(now time.Time) {
	if s.ExpiresAt == 0 && s.ExpiresIn > 0 {
		s.ExpiresAt = now.Add(time.Duration(s.ExpiresIn) * time.Second).Unix()
	}
}
