package model

import "time"

// Oauth2Token is an OAuth2 access token as stored by the remote for an
// integration driver.
type Oauth2Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	// ExpiresIn is the lifetime of the access token in seconds.
	ExpiresIn *uint64 `json:"expires_in,omitempty"`
	// ExpiresAt is the absolute expiry time, computed by the remote.
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	RefreshToken string     `json:"refresh_token,omitempty"`
	Scope        string     `json:"scope,omitempty"`
}

// Expired reports whether the token has an expiry time before now.
func (t Oauth2Token) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && !now.Before(*t.ExpiresAt)
}
