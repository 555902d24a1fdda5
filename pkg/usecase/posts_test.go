package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glockstar/fanpage/pkg/domain/model/reddit"
	"github.com/glockstar/fanpage/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestListSubredditPosts(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid subreddit makes no network call", func(t *testing.T) {
		provider := newFakeProvider()
		uc, _ := newTestReddit(t, provider)
		sessionID := types.NewSessionID(ctx)

		for _, name := range []string{"", "rust_", "a/b"} {
			_, err := uc.ListSubredditPosts(ctx, sessionID, name, 10)
			gt.True(t, errors.Is(err, reddit.ErrInvalidSubreddit))
		}
		gt.Equal(t, provider.listCalls, 0)
	})

	t.Run("normalizes name before the request", func(t *testing.T) {
		provider := newFakeProvider()
		uc, _ := newTestReddit(t, provider)
		sessionID := types.NewSessionID(ctx)

		_, err := uc.ListSubredditPosts(ctx, sessionID, "  RUST  ", 5)
		gt.NoError(t, err).Required()
		gt.Equal(t, provider.lastListPath, "/r/rust/new.json")
		gt.Equal(t, provider.lastListQuery, "limit=5")
	})

	t.Run("unauthenticated session uses public endpoint", func(t *testing.T) {
		provider := newFakeProvider()
		uc, _ := newTestReddit(t, provider)
		sessionID := types.NewSessionID(ctx)

		body, err := uc.ListSubredditPosts(ctx, sessionID, "golang", 10)
		gt.NoError(t, err).Required()
		gt.Equal(t, string(body), `{"data":{"children":[]}}`)
		gt.Equal(t, provider.lastListAuth, "")
	})

	t.Run("authenticated session sends bearer token", func(t *testing.T) {
		provider := newFakeProvider()
		uc, sessions := newTestReddit(t, provider)
		sessionID := types.NewSessionID(ctx)

		seedTokenSet(ctx, t, sessions, sessionID, "AT1", "RT1", time.Now().Add(time.Hour))

		_, err := uc.ListSubredditPosts(ctx, sessionID, "golang", 10)
		gt.NoError(t, err).Required()
		gt.Equal(t, provider.lastListPath, "/r/golang/new")
		gt.Equal(t, provider.lastListAuth, "Bearer AT1")
	})

	t.Run("unusable token falls back to public endpoint", func(t *testing.T) {
		provider := newFakeProvider()
		provider.refreshFails = true
		uc, sessions := newTestReddit(t, provider)
		sessionID := types.NewSessionID(ctx)

		seedTokenSet(ctx, t, sessions, sessionID, "AT1", "RT1", time.Now().Add(-time.Minute))

		body, err := uc.ListSubredditPosts(ctx, sessionID, "golang", 10)
		gt.NoError(t, err).Required()
		gt.Equal(t, string(body), `{"data":{"children":[]}}`)
		gt.Equal(t, provider.lastListAuth, "")
	})
}

func TestCreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("unauthenticated session is rejected", func(t *testing.T) {
		provider := newFakeProvider()
		uc, _ := newTestReddit(t, provider)
		sessionID := types.NewSessionID(ctx)

		_, err := uc.CreatePost(ctx, sessionID, &reddit.Submission{
			Subreddit: "golang",
			Title:     "hello",
			Kind:      reddit.PostKindSelf,
			Content:   "body",
		})
		gt.True(t, errors.Is(err, reddit.ErrNotAuthenticated))
		gt.Equal(t, provider.submitCalls, 0)
	})

	t.Run("invalid submission makes no network call", func(t *testing.T) {
		provider := newFakeProvider()
		uc, sessions := newTestReddit(t, provider)
		sessionID := types.NewSessionID(ctx)

		seedTokenSet(ctx, t, sessions, sessionID, "AT1", "RT1", time.Now().Add(time.Hour))

		_, err := uc.CreatePost(ctx, sessionID, &reddit.Submission{
			Subreddit: "golang",
			Title:     "hello",
			Kind:      reddit.PostKindLink, // no URL
		})
		gt.True(t, errors.Is(err, reddit.ErrInvalidSubmission))
		gt.Equal(t, provider.submitCalls, 0)
	})

	t.Run("text post sends the text field", func(t *testing.T) {
		provider := newFakeProvider()
		uc, sessions := newTestReddit(t, provider)
		sessionID := types.NewSessionID(ctx)

		seedTokenSet(ctx, t, sessions, sessionID, "AT1", "RT1", time.Now().Add(time.Hour))

		_, err := uc.CreatePost(ctx, sessionID, &reddit.Submission{
			Subreddit: "golang",
			Title:     "hello",
			Kind:      reddit.PostKindSelf,
			Content:   "hello world",
		})
		gt.NoError(t, err).Required()
		gt.Equal(t, provider.lastSubmitForm.Get("sr"), "golang")
		gt.Equal(t, provider.lastSubmitForm.Get("kind"), "self")
		gt.Equal(t, provider.lastSubmitForm.Get("text"), "hello world")
		gt.Equal(t, provider.lastSubmitForm.Get("url"), "")
	})

	t.Run("provider rejection is surfaced with detail", func(t *testing.T) {
		provider := newFakeProvider()
		provider.submitBody = `{"json":{"errors":[["RATELIMIT","you are doing that too much","ratelimit"]]}}`
		uc, sessions := newTestReddit(t, provider)
		sessionID := types.NewSessionID(ctx)

		seedTokenSet(ctx, t, sessions, sessionID, "AT1", "RT1", time.Now().Add(time.Hour))

		_, err := uc.CreatePost(ctx, sessionID, &reddit.Submission{
			Subreddit: "golang",
			Title:     "hello",
			Kind:      reddit.PostKindSelf,
			Content:   "body",
		})
		var providerErr *reddit.ProviderError
		gt.True(t, errors.As(err, &providerErr))
		gt.Equal(t, providerErr.Detail, "RATELIMIT: you are doing that too much")
	})

	t.Run("expired token is refreshed before submitting", func(t *testing.T) {
		provider := newFakeProvider()
		provider.accessToken = "AT2"
		uc, sessions := newTestReddit(t, provider)
		sessionID := types.NewSessionID(ctx)

		seedTokenSet(ctx, t, sessions, sessionID, "AT1", "RT1", time.Now().Add(-time.Minute))

		_, err := uc.CreatePost(ctx, sessionID, &reddit.Submission{
			Subreddit: "golang",
			Title:     "hello",
			Kind:      reddit.PostKindSelf,
			Content:   "body",
		})
		gt.NoError(t, err).Required()
		gt.Equal(t, provider.tokenCalls, 1)
		gt.Equal(t, provider.submitCalls, 1)
	})
}
