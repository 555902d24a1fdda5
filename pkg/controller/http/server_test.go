package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	server "github.com/glockstar/fanpage/pkg/controller/http"
	"github.com/glockstar/fanpage/pkg/domain/model/reddit"
	"github.com/glockstar/fanpage/pkg/domain/model/site"
	"github.com/glockstar/fanpage/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

// fakeRedditUC is a scriptable stand-in for the Reddit use cases.
type fakeRedditUC struct {
	authURL     string
	callbackErr error
	identity    *reddit.Identity

	listBody   json.RawMessage
	listErr    error
	submitBody json.RawMessage
	submitErr  error

	gotSubreddit string
	gotLimit     int
	gotSub       *reddit.Submission
	loggedOut    bool
}

func (f *fakeRedditUC) AuthorizationURL(ctx context.Context, id types.SessionID) (string, error) {
	return f.authURL, nil
}

func (f *fakeRedditUC) HandleCallback(ctx context.Context, id types.SessionID, code, state string) (*reddit.TokenSet, error) {
	if f.callbackErr != nil {
		return nil, f.callbackErr
	}
	return &reddit.TokenSet{AccessToken: "AT"}, nil
}

func (f *fakeRedditUC) RefreshToken(ctx context.Context, id types.SessionID) error {
	return nil
}

func (f *fakeRedditUC) CurrentIdentity(ctx context.Context, id types.SessionID) (*reddit.Identity, error) {
	if f.identity != nil {
		return f.identity, nil
	}
	return &reddit.Identity{}, nil
}

func (f *fakeRedditUC) Logout(ctx context.Context, id types.SessionID) error {
	f.loggedOut = true
	return nil
}

func (f *fakeRedditUC) ListSubredditPosts(ctx context.Context, id types.SessionID, name string, limit int) (json.RawMessage, error) {
	f.gotSubreddit = name
	f.gotLimit = limit
	return f.listBody, f.listErr
}

func (f *fakeRedditUC) CreatePost(ctx context.Context, id types.SessionID, sub *reddit.Submission) (json.RawMessage, error) {
	f.gotSub = sub
	return f.submitBody, f.submitErr
}

func newTestServer(t *testing.T, uc *fakeRedditUC) *server.Server {
	t.Helper()
	return server.New(
		server.WithRedditController(server.NewRedditController(uc, uc, "/reddit")),
		server.WithSiteInfo(&site.Site{Title: "Test Site", DefaultSubreddit: "golang"}),
	)
}

func TestSessionCookie(t *testing.T) {
	srv := newTestServer(t, &fakeRedditUC{})

	t.Run("issued on first request", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		cookies := rec.Result().Cookies()
		gt.Equal(t, len(cookies), 1)
		gt.Equal(t, cookies[0].Name, "fanpage_session")
		gt.True(t, cookies[0].HttpOnly)
		gt.True(t, types.SessionID(cookies[0].Value).IsValid())
	})

	t.Run("not reissued when present", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.AddCookie(&http.Cookie{
			Name:  "fanpage_session",
			Value: types.NewSessionID(context.Background()).String(),
		})
		srv.ServeHTTP(rec, req)

		gt.Equal(t, len(rec.Result().Cookies()), 0)
	})

	t.Run("garbage cookie value is replaced", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.AddCookie(&http.Cookie{Name: "fanpage_session", Value: "garbage"})
		srv.ServeHTTP(rec, req)

		cookies := rec.Result().Cookies()
		gt.Equal(t, len(cookies), 1)
		gt.True(t, types.SessionID(cookies[0].Value).IsValid())
	})
}

func TestAuthURLRoute(t *testing.T) {
	uc := &fakeRedditUC{authURL: "https://www.reddit.com/api/v1/authorize?state=abc"}
	srv := newTestServer(t, uc)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reddit/auth-url", nil))

	gt.Equal(t, rec.Code, http.StatusOK)

	var resp struct {
		Success bool   `json:"success"`
		AuthURL string `json:"auth_url"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	gt.True(t, resp.Success)
	gt.Equal(t, resp.AuthURL, uc.authURL)
}

func TestCallbackRoute(t *testing.T) {
	redirectTarget := func(t *testing.T, rec *httptest.ResponseRecorder) string {
		t.Helper()
		gt.Equal(t, rec.Code, http.StatusTemporaryRedirect)
		return rec.Header().Get("Location")
	}

	t.Run("success redirects with flag", func(t *testing.T) {
		srv := newTestServer(t, &fakeRedditUC{})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reddit-callback?code=abc&state=xyz", nil))

		gt.Equal(t, redirectTarget(t, rec), "/reddit?success=authenticated")
	})

	t.Run("provider error is passed through", func(t *testing.T) {
		srv := newTestServer(t, &fakeRedditUC{})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reddit-callback?error=access_denied", nil))

		gt.Equal(t, redirectTarget(t, rec), "/reddit?error=access_denied")
	})

	t.Run("missing code", func(t *testing.T) {
		srv := newTestServer(t, &fakeRedditUC{})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reddit-callback", nil))

		gt.Equal(t, redirectTarget(t, rec), "/reddit?error=no_code")
	})

	t.Run("state mismatch", func(t *testing.T) {
		srv := newTestServer(t, &fakeRedditUC{callbackErr: reddit.ErrStateMismatch})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reddit-callback?code=abc&state=forged", nil))

		gt.Equal(t, redirectTarget(t, rec), "/reddit?error=state_mismatch")
	})

	t.Run("exchange failure", func(t *testing.T) {
		srv := newTestServer(t, &fakeRedditUC{callbackErr: reddit.ErrTokenExchangeFailed})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reddit-callback?code=abc&state=xyz", nil))

		gt.Equal(t, redirectTarget(t, rec), "/reddit?error=token_exchange_failed")
	})
}

func TestUserRoute(t *testing.T) {
	uc := &fakeRedditUC{identity: &reddit.Identity{Authenticated: true, Username: "testuser"}}
	srv := newTestServer(t, uc)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reddit/user", nil))

	var resp struct {
		Authenticated bool   `json:"authenticated"`
		Username      string `json:"username"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	gt.True(t, resp.Authenticated)
	gt.Equal(t, resp.Username, "testuser")
}

func TestPostsRoute(t *testing.T) {
	t.Run("passes subreddit and limit", func(t *testing.T) {
		uc := &fakeRedditUC{listBody: json.RawMessage(`{"data":{}}`)}
		srv := newTestServer(t, uc)

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reddit/posts/golang?limit=25", nil))

		gt.Equal(t, uc.gotSubreddit, "golang")
		gt.Equal(t, uc.gotLimit, 25)

		var resp struct {
			Success bool            `json:"success"`
			Data    json.RawMessage `json:"data"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		gt.True(t, resp.Success)
		gt.Equal(t, string(resp.Data), `{"data":{}}`)
	})

	t.Run("invalid subreddit reports failure", func(t *testing.T) {
		uc := &fakeRedditUC{listErr: reddit.ErrInvalidSubreddit}
		srv := newTestServer(t, uc)

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reddit/posts/bad_name", nil))

		var resp struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		gt.False(t, resp.Success)
		gt.Equal(t, resp.Error, "invalid subreddit name")
	})
}

func TestSubmitRoute(t *testing.T) {
	t.Run("maps text type to self kind", func(t *testing.T) {
		uc := &fakeRedditUC{submitBody: json.RawMessage(`{}`)}
		srv := newTestServer(t, uc)

		body := `{"subreddit":"golang","title":"hi","type":"text","content":"hello"}`
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reddit/submit", strings.NewReader(body)))

		gt.V(t, uc.gotSub).NotNil()
		gt.Equal(t, uc.gotSub.Kind, reddit.PostKindSelf)
		gt.Equal(t, uc.gotSub.Content, "hello")
	})

	t.Run("maps link type", func(t *testing.T) {
		uc := &fakeRedditUC{submitBody: json.RawMessage(`{}`)}
		srv := newTestServer(t, uc)

		body := `{"subreddit":"golang","title":"hi","type":"link","url":"https://example.com"}`
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reddit/submit", strings.NewReader(body)))

		gt.Equal(t, uc.gotSub.Kind, reddit.PostKindLink)
		gt.Equal(t, uc.gotSub.URL, "https://example.com")
	})

	t.Run("unknown type is rejected before the use case", func(t *testing.T) {
		uc := &fakeRedditUC{}
		srv := newTestServer(t, uc)

		body := `{"subreddit":"golang","title":"hi","type":"video"}`
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reddit/submit", strings.NewReader(body)))

		gt.True(t, uc.gotSub == nil)

		var resp struct {
			Success bool `json:"success"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		gt.False(t, resp.Success)
	})

	t.Run("provider detail reaches the client", func(t *testing.T) {
		uc := &fakeRedditUC{submitErr: reddit.NewProviderError("RATELIMIT: slow down")}
		srv := newTestServer(t, uc)

		body := `{"subreddit":"golang","title":"hi","type":"text","content":"x"}`
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reddit/submit", strings.NewReader(body)))

		var resp struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		gt.False(t, resp.Success)
		gt.Equal(t, resp.Error, "RATELIMIT: slow down")
	})
}

func TestLogoutRoute(t *testing.T) {
	uc := &fakeRedditUC{}
	srv := newTestServer(t, uc)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reddit/logout", nil))

	gt.True(t, uc.loggedOut)

	var resp struct {
		Success bool `json:"success"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	gt.True(t, resp.Success)
}

func TestSiteRoute(t *testing.T) {
	srv := newTestServer(t, &fakeRedditUC{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/site", nil))

	var resp site.Site
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	gt.Equal(t, resp.Title, "Test Site")
	gt.Equal(t, resp.DefaultSubreddit, "golang")
}

func TestHealthRoute(t *testing.T) {
	srv := newTestServer(t, &fakeRedditUC{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	gt.Equal(t, rec.Code, http.StatusOK)
	gt.Equal(t, rec.Body.String(), "OK")
}
