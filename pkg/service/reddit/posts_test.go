package reddit_test

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	redditmodel "github.com/glockstar/fanpage/pkg/domain/model/reddit"
	"github.com/m-mizutani/gt"
)

func TestListNewPosts(t *testing.T) {
	t.Run("public listing without token", func(t *testing.T) {
		var gotPath, gotQuery, gotAuth string
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.RawQuery
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`{"data":{"children":[]}}`))
		}))

		body, err := client.ListNewPosts(context.Background(), "", "golang", 5)
		gt.NoError(t, err).Required()
		gt.Equal(t, string(body), `{"data":{"children":[]}}`)
		gt.Equal(t, gotPath, "/r/golang/new.json")
		gt.Equal(t, gotQuery, "limit=5")
		gt.Equal(t, gotAuth, "")
	})

	t.Run("authenticated listing with token", func(t *testing.T) {
		var gotPath, gotAuth string
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`{}`))
		}))

		_, err := client.ListNewPosts(context.Background(), "AT", "golang", 5)
		gt.NoError(t, err)
		gt.Equal(t, gotPath, "/r/golang/new")
		gt.Equal(t, gotAuth, "Bearer AT")
	})

	t.Run("non-positive limit falls back to default", func(t *testing.T) {
		var gotQuery string
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			_, _ = w.Write([]byte(`{}`))
		}))

		_, err := client.ListNewPosts(context.Background(), "", "golang", 0)
		gt.NoError(t, err)
		gt.Equal(t, gotQuery, "limit=10")
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))

		_, err := client.ListNewPosts(context.Background(), "", "nosuchsub", 5)
		gt.Error(t, err)
	})
}

func TestSubmitPost(t *testing.T) {
	submission := func() *redditmodel.Submission {
		return &redditmodel.Submission{
			Subreddit: "golang",
			Title:     "hello",
			Kind:      redditmodel.PostKindSelf,
			Content:   "body text",
		}
	}

	t.Run("sends form with bearer token", func(t *testing.T) {
		var gotForm url.Values
		var gotAuth, gotContentType string
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gt.Equal(t, r.URL.Path, "/api/submit")
			gotAuth = r.Header.Get("Authorization")
			gotContentType = r.Header.Get("Content-Type")
			gt.NoError(t, r.ParseForm())
			gotForm = r.PostForm
			_, _ = w.Write([]byte(`{"json":{"errors":[]}}`))
		}))

		body, err := client.SubmitPost(context.Background(), "AT", submission())
		gt.NoError(t, err).Required()
		gt.True(t, strings.Contains(string(body), "errors"))

		gt.Equal(t, gotAuth, "Bearer AT")
		gt.Equal(t, gotContentType, "application/x-www-form-urlencoded")
		gt.Equal(t, gotForm.Get("sr"), "golang")
		gt.Equal(t, gotForm.Get("title"), "hello")
		gt.Equal(t, gotForm.Get("kind"), "self")
		gt.Equal(t, gotForm.Get("text"), "body text")
	})

	t.Run("in-body provider errors are surfaced", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"json":{"errors":[["SUBREDDIT_NOTALLOWED","not allowed to post there","sr"]]}}`))
		}))

		_, err := client.SubmitPost(context.Background(), "AT", submission())
		var providerErr *redditmodel.ProviderError
		gt.True(t, errors.As(err, &providerErr))
		gt.Equal(t, providerErr.Detail, "SUBREDDIT_NOTALLOWED: not allowed to post there")
	})

	t.Run("non-200 carries status and body", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`insufficient scope`))
		}))

		_, err := client.SubmitPost(context.Background(), "AT", submission())
		var providerErr *redditmodel.ProviderError
		gt.True(t, errors.As(err, &providerErr))
		gt.Equal(t, providerErr.Detail, "403: insufficient scope")
	})

	t.Run("unparseable 200 body is a success", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`jquery callback soup`))
		}))

		body, err := client.SubmitPost(context.Background(), "AT", submission())
		gt.NoError(t, err)
		gt.True(t, body == nil)
	})
}
