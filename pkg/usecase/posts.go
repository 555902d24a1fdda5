package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/glockstar/fanpage/pkg/domain/interfaces"
	"github.com/glockstar/fanpage/pkg/domain/model/reddit"
	"github.com/glockstar/fanpage/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
)

// ListSubredditPosts fetches recent posts of a subreddit through the proxy.
// The name is normalized and validated before any network call. When the
// session holds an expired token, one refresh is attempted; if it fails, the
// listing falls back to the public endpoint instead of erroring out.
func (u *Reddit) ListSubredditPosts(ctx context.Context, id types.SessionID, name string, limit int) (json.RawMessage, error) {
	normalized, err := reddit.NormalizeSubreddit(name)
	if err != nil {
		return nil, err
	}

	accessToken, err := u.EnsureValidToken(ctx, id)
	if err != nil {
		if !errors.Is(err, reddit.ErrNotAuthenticated) {
			ctxlog.From(ctx).Warn("token unusable, falling back to public listing", "error", err)
		}
		accessToken = ""
	}

	return u.client.ListNewPosts(ctx, accessToken, normalized, limit)
}

// CreatePost submits a new post on the visitor's behalf. It requires a
// usable token (one refresh attempted on expiry) and validates the
// submission before any network call.
func (u *Reddit) CreatePost(ctx context.Context, id types.SessionID, sub *reddit.Submission) (json.RawMessage, error) {
	accessToken, err := u.EnsureValidToken(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := sub.Validate(); err != nil {
		return nil, err
	}

	return u.client.SubmitPost(ctx, accessToken, sub)
}

var _ interfaces.RedditPostUseCases = (*Reddit)(nil)
