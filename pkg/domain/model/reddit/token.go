package reddit

import "time"

// Session keys under which the OAuth credentials persist between requests.
// Logout must clear exactly these keys and nothing else.
const (
	SessionKeyState        = "reddit_state"
	SessionKeyAccessToken  = "reddit_access_token"
	SessionKeyRefreshToken = "reddit_refresh_token"
	SessionKeyTokenExpiry  = "reddit_token_expiry"
	SessionKeyUsername     = "reddit_username"
)

// SessionKeys lists every reserved session key owned by the Reddit
// integration.
var SessionKeys = []string{
	SessionKeyState,
	SessionKeyAccessToken,
	SessionKeyRefreshToken,
	SessionKeyTokenExpiry,
	SessionKeyUsername,
}

// TokenSet holds the OAuth credentials of one authenticated session. It is
// transient: the session store is its only home.
type TokenSet struct {
	AccessToken  string `masq:"secret"`
	RefreshToken string `masq:"secret"`
	ExpiresAt    time.Time
	Username     string
}

// Authenticated reports whether an access token is present. Presence alone
// makes the session "authenticated" for display purposes; true validity is
// established only by the expiry comparison or a provider-side rejection.
func (t *TokenSet) Authenticated() bool {
	return t != nil && t.AccessToken != ""
}

// IsExpired checks if the access token is past its absolute expiry.
func (t *TokenSet) IsExpired() bool {
	return t != nil && !t.ExpiresAt.IsZero() && time.Now().After(t.ExpiresAt)
}

// Identity is the display-facing authentication status of one session.
type Identity struct {
	Authenticated bool
	Username      string
	Error         string
}
