package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/glockstar/fanpage/pkg/domain/interfaces"
	"github.com/glockstar/fanpage/pkg/domain/model/reddit"
	"github.com/glockstar/fanpage/pkg/domain/types"
	redditservice "github.com/glockstar/fanpage/pkg/service/reddit"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Reddit implements the OAuth token lifecycle and the proxied provider
// operations for one Reddit application. All per-visitor state lives in the
// injected session store; the use case itself is stateless across requests.
type Reddit struct {
	sessions interfaces.SessionStore
	client   *redditservice.Client
}

// NewReddit creates the Reddit use cases.
func NewReddit(sessions interfaces.SessionStore, client *redditservice.Client) *Reddit {
	return &Reddit{
		sessions: sessions,
		client:   client,
	}
}

// AuthorizationURL issues a fresh state token for the session and returns
// the provider authorization URL. Any prior unconsumed state is overwritten:
// only one authorization attempt may be in flight per session.
func (u *Reddit) AuthorizationURL(ctx context.Context, id types.SessionID) (string, error) {
	state, err := redditservice.GenerateState()
	if err != nil {
		return "", err
	}

	if err := u.sessions.Set(ctx, id, reddit.SessionKeyState, state); err != nil {
		return "", goerr.Wrap(err, "failed to store oauth state")
	}

	return u.client.AuthorizeURL(state), nil
}

// HandleCallback verifies the anti-CSRF state and exchanges the code for a
// token set, persisting it to the session. The stored state is consumed on
// the first verification attempt regardless of the match outcome.
func (u *Reddit) HandleCallback(ctx context.Context, id types.SessionID, code, state string) (*reddit.TokenSet, error) {
	if err := u.consumeState(ctx, id, state); err != nil {
		ctxlog.From(ctx).Warn("oauth state verification failed, possible CSRF", "error", err)
		return nil, err
	}

	tokenResp, err := u.client.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	tokenSet := &reddit.TokenSet{
		AccessToken:  tokenResp.AccessToken,
		RefreshToken: tokenResp.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second),
	}

	// Identity display degrades gracefully: a failed user-info fetch does
	// not fail the exchange.
	if account, err := u.client.UserInfo(ctx, tokenSet.AccessToken); err != nil {
		ctxlog.From(ctx).Warn("failed to fetch user identity", "error", err)
	} else {
		tokenSet.Username = account.Name
	}

	if err := u.saveTokenSet(ctx, id, tokenSet); err != nil {
		return nil, err
	}

	return tokenSet, nil
}

// consumeState deletes and checks the pending state. It fails when a state
// was expected (stored or provided) and the two do not match; a second
// verification attempt with the same value fails because the stored state is
// already gone.
func (u *Reddit) consumeState(ctx context.Context, id types.SessionID, state string) error {
	stored, err := u.sessions.Get(ctx, id, reddit.SessionKeyState)
	if err != nil && !errors.Is(err, interfaces.ErrSessionKeyNotFound) {
		return goerr.Wrap(err, "failed to read oauth state")
	}

	// Single use: consumed on first verification attempt either way.
	if delErr := u.sessions.Delete(ctx, id, reddit.SessionKeyState); delErr != nil {
		return goerr.Wrap(delErr, "failed to consume oauth state")
	}

	if stored == "" && state == "" {
		return nil
	}
	if stored == "" {
		return reddit.ErrStateNotFound
	}
	if stored != state {
		return reddit.ErrStateMismatch
	}

	return nil
}

// RefreshToken performs exactly one refresh grant. Without a stored refresh
// token it fails immediately with no network call. A provider failure clears
// the entire token set: a failed refresh usually means the refresh token was
// revoked, so full re-authentication beats retrying.
func (u *Reddit) RefreshToken(ctx context.Context, id types.SessionID) error {
	refreshToken, err := u.sessions.Get(ctx, id, reddit.SessionKeyRefreshToken)
	if err != nil || refreshToken == "" {
		return reddit.ErrNoRefreshToken
	}

	tokenResp, err := u.client.Refresh(ctx, refreshToken)
	if err != nil {
		if clearErr := u.clearTokenSet(ctx, id); clearErr != nil {
			ctxlog.From(ctx).Error("failed to clear token set after refresh failure", "error", clearErr)
		}
		return goerr.Wrap(reddit.ErrSessionExpired, err.Error())
	}

	expiresAt := time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	if err := u.sessions.Set(ctx, id, reddit.SessionKeyAccessToken, tokenResp.AccessToken); err != nil {
		return goerr.Wrap(err, "failed to store refreshed access token")
	}
	if err := u.sessions.Set(ctx, id, reddit.SessionKeyTokenExpiry, formatExpiry(expiresAt)); err != nil {
		return goerr.Wrap(err, "failed to store refreshed token expiry")
	}
	// The refresh token is preserved: the provider does not necessarily
	// reissue it.

	return nil
}

// EnsureValidToken returns a usable access token, attempting exactly one
// refresh when the stored token is past its expiry. Callers needing a fresh
// attempt must re-invoke.
func (u *Reddit) EnsureValidToken(ctx context.Context, id types.SessionID) (string, error) {
	tokenSet, err := u.tokenSetFromSession(ctx, id)
	if err != nil {
		return "", err
	}
	if !tokenSet.Authenticated() {
		return "", reddit.ErrNotAuthenticated
	}

	if tokenSet.IsExpired() {
		if err := u.RefreshToken(ctx, id); err != nil {
			return "", err
		}
		accessToken, err := u.sessions.Get(ctx, id, reddit.SessionKeyAccessToken)
		if err != nil {
			return "", reddit.ErrNotAuthenticated
		}
		return accessToken, nil
	}

	return tokenSet.AccessToken, nil
}

// CurrentIdentity reports the session's authentication status for display.
// An expired token triggers at most one refresh attempt.
func (u *Reddit) CurrentIdentity(ctx context.Context, id types.SessionID) (*reddit.Identity, error) {
	tokenSet, err := u.tokenSetFromSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if !tokenSet.Authenticated() {
		return &reddit.Identity{Authenticated: false}, nil
	}

	if tokenSet.IsExpired() {
		if tokenSet.RefreshToken == "" {
			return &reddit.Identity{Authenticated: false}, nil
		}
		if err := u.RefreshToken(ctx, id); err != nil {
			return &reddit.Identity{Authenticated: false, Error: "session expired"}, nil
		}
	}

	return &reddit.Identity{
		Authenticated: true,
		Username:      tokenSet.Username,
	}, nil
}

// Logout clears the reserved Reddit session keys and nothing else.
func (u *Reddit) Logout(ctx context.Context, id types.SessionID) error {
	for _, key := range reddit.SessionKeys {
		if err := u.sessions.Delete(ctx, id, key); err != nil {
			return goerr.Wrap(err, "failed to clear session key", goerr.V("key", key))
		}
	}
	return nil
}

func (u *Reddit) tokenSetFromSession(ctx context.Context, id types.SessionID) (*reddit.TokenSet, error) {
	tokenSet := &reddit.TokenSet{}

	get := func(key string) string {
		value, err := u.sessions.Get(ctx, id, key)
		if err != nil {
			return ""
		}
		return value
	}

	tokenSet.AccessToken = get(reddit.SessionKeyAccessToken)
	tokenSet.RefreshToken = get(reddit.SessionKeyRefreshToken)
	tokenSet.Username = get(reddit.SessionKeyUsername)

	if raw := get(reddit.SessionKeyTokenExpiry); raw != "" {
		unix, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, goerr.Wrap(err, "corrupted token expiry in session", goerr.V("value", raw))
		}
		tokenSet.ExpiresAt = time.Unix(unix, 0)
	}

	return tokenSet, nil
}

func (u *Reddit) saveTokenSet(ctx context.Context, id types.SessionID, tokenSet *reddit.TokenSet) error {
	pairs := map[string]string{
		reddit.SessionKeyAccessToken:  tokenSet.AccessToken,
		reddit.SessionKeyRefreshToken: tokenSet.RefreshToken,
		reddit.SessionKeyTokenExpiry:  formatExpiry(tokenSet.ExpiresAt),
	}
	if tokenSet.Username != "" {
		pairs[reddit.SessionKeyUsername] = tokenSet.Username
	}

	for key, value := range pairs {
		if err := u.sessions.Set(ctx, id, key, value); err != nil {
			return goerr.Wrap(err, "failed to persist token set", goerr.V("key", key))
		}
	}

	return nil
}

func (u *Reddit) clearTokenSet(ctx context.Context, id types.SessionID) error {
	keys := []string{
		reddit.SessionKeyAccessToken,
		reddit.SessionKeyRefreshToken,
		reddit.SessionKeyTokenExpiry,
		reddit.SessionKeyUsername,
	}
	for _, key := range keys {
		if err := u.sessions.Delete(ctx, id, key); err != nil {
			return goerr.Wrap(err, "failed to delete session key", goerr.V("key", key))
		}
	}
	return nil
}

func formatExpiry(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}

var _ interfaces.RedditAuthUseCases = (*Reddit)(nil)
