package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/glockstar/fanpage/pkg/domain/interfaces"
	"github.com/glockstar/fanpage/pkg/domain/model/reddit"
	"github.com/glockstar/fanpage/pkg/domain/types"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/ctxlog"
)

// RedditController exposes the OAuth lifecycle and proxy operations as
// plain-JSON routes for the frontend.
type RedditController struct {
	auth         interfaces.RedditAuthUseCases
	posts        interfaces.RedditPostUseCases
	redditPage   string
	defaultLimit int
}

// NewRedditController creates a new Reddit integration controller.
// redditPage is the frontend page the OAuth callback redirects back to.
func NewRedditController(auth interfaces.RedditAuthUseCases, posts interfaces.RedditPostUseCases, redditPage string) *RedditController {
	if redditPage == "" {
		redditPage = "/reddit"
	}
	return &RedditController{
		auth:         auth,
		posts:        posts,
		redditPage:   redditPage,
		defaultLimit: reddit.DefaultListingLimit,
	}
}

func (c *RedditController) sessionID(r *http.Request) (types.SessionID, bool) {
	return SessionIDFromContext(r.Context())
}

// HandleAuthURL returns the provider authorization URL for the session.
func (c *RedditController) HandleAuthURL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, ok := c.sessionID(r)
	if !ok {
		writeFailure(ctx, w, "no session")
		return
	}

	authURL, err := c.auth.AuthorizationURL(ctx, sessionID)
	if err != nil {
		ctxlog.From(ctx).Error("failed to generate authorization URL", "error", err)
		writeJSON(ctx, w, http.StatusOK, &authURLResponse{Success: false, Error: "failed to generate authorization URL"})
		return
	}

	writeJSON(ctx, w, http.StatusOK, &authURLResponse{Success: true, AuthURL: authURL})
}

// HandleCallback processes the provider redirect after authorization and
// sends the browser back to the Reddit page with a result flag.
func (c *RedditController) HandleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := r.URL.Query()
	if errParam := query.Get("error"); errParam != "" {
		ctxlog.From(ctx).Warn("provider returned an error on callback", "error", errParam)
		c.redirectWithResult(w, r, "error", errParam)
		return
	}

	code := query.Get("code")
	if code == "" {
		c.redirectWithResult(w, r, "error", "no_code")
		return
	}

	sessionID, ok := c.sessionID(r)
	if !ok {
		c.redirectWithResult(w, r, "error", "no_session")
		return
	}

	if _, err := c.auth.HandleCallback(ctx, sessionID, code, query.Get("state")); err != nil {
		ctxlog.From(ctx).Error("oauth callback failed", "error", err)
		if errors.Is(err, reddit.ErrStateMismatch) || errors.Is(err, reddit.ErrStateNotFound) {
			c.redirectWithResult(w, r, "error", "state_mismatch")
			return
		}
		c.redirectWithResult(w, r, "error", "token_exchange_failed")
		return
	}

	c.redirectWithResult(w, r, "success", "authenticated")
}

// HandleUser reports the session's authentication status and username.
func (c *RedditController) HandleUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, ok := c.sessionID(r)
	if !ok {
		writeJSON(ctx, w, http.StatusOK, &identityResponse{Authenticated: false})
		return
	}

	identity, err := c.auth.CurrentIdentity(ctx, sessionID)
	if err != nil {
		ctxlog.From(ctx).Error("failed to resolve identity", "error", err)
		writeJSON(ctx, w, http.StatusOK, &identityResponse{Authenticated: false})
		return
	}

	writeJSON(ctx, w, http.StatusOK, &identityResponse{
		Authenticated: identity.Authenticated,
		Username:      identity.Username,
		Error:         identity.Error,
	})
}

// HandlePosts proxies a subreddit listing.
func (c *RedditController) HandlePosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, _ := c.sessionID(r)

	limit := c.defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	data, err := c.posts.ListSubredditPosts(ctx, sessionID, chi.URLParam(r, "subreddit"), limit)
	if err != nil {
		ctxlog.From(ctx).Warn("failed to fetch subreddit posts", "error", err)
		writeFailure(ctx, w, userMessage(err, "failed to fetch posts"))
		return
	}

	writeSuccess(ctx, w, data)
}

// submitRequest is the frontend submit body. The "type" discriminator
// (text/link) maps onto the provider's kind (self/link).
type submitRequest struct {
	Subreddit string `json:"subreddit"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	Content   string `json:"content"`
	URL       string `json:"url"`
}

// HandleSubmit proxies a post submission.
func (c *RedditController) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, ok := c.sessionID(r)
	if !ok {
		writeFailure(ctx, w, "not authenticated")
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(ctx, w, "invalid request body")
		return
	}

	sub := &reddit.Submission{
		Subreddit: req.Subreddit,
		Title:     req.Title,
		Content:   req.Content,
		URL:       req.URL,
	}
	switch req.Type {
	case "text", "self":
		sub.Kind = reddit.PostKindSelf
	case "link":
		sub.Kind = reddit.PostKindLink
	default:
		writeFailure(ctx, w, reddit.ErrInvalidSubmission.Error())
		return
	}

	data, err := c.posts.CreatePost(ctx, sessionID, sub)
	if err != nil {
		ctxlog.From(ctx).Warn("post submission failed", "error", err)
		writeFailure(ctx, w, userMessage(err, "failed to submit post"))
		return
	}

	writeSuccess(ctx, w, data)
}

// HandleLogout clears the Reddit credentials of the session.
func (c *RedditController) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, ok := c.sessionID(r)
	if ok {
		if err := c.auth.Logout(ctx, sessionID); err != nil {
			ctxlog.From(ctx).Error("logout failed", "error", err)
			writeFailure(ctx, w, "failed to log out")
			return
		}
	}

	writeSuccess(ctx, w, nil)
}

func (c *RedditController) redirectWithResult(w http.ResponseWriter, r *http.Request, key, value string) {
	http.Redirect(w, r, c.redditPage+"?"+key+"="+url.QueryEscape(value), http.StatusTemporaryRedirect)
}

// userMessage converts a component error into a short human-readable message
// without leaking provider detail or secrets.
func userMessage(err error, fallback string) string {
	var providerErr *reddit.ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Detail
	}

	for _, known := range []error{
		reddit.ErrNotAuthenticated,
		reddit.ErrSessionExpired,
		reddit.ErrInvalidSubreddit,
		reddit.ErrInvalidSubmission,
		reddit.ErrConnection,
		reddit.ErrNoRefreshToken,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	return fallback
}
