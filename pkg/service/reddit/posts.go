package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	redditmodel "github.com/glockstar/fanpage/pkg/domain/model/reddit"
	"github.com/m-mizutani/goerr/v2"
)

// ListNewPosts fetches the recent posts of a subreddit. With an access token
// the authenticated endpoint variant is used (richer per-user fields);
// without one the public listing is fetched. The subreddit name must already
// be normalized. The provider's JSON body is passed through verbatim.
func (c *Client) ListNewPosts(ctx context.Context, accessToken, subreddit string, limit int) (json.RawMessage, error) {
	if limit <= 0 {
		limit = redditmodel.DefaultListingLimit
	}

	endpoint := fmt.Sprintf("%s/r/%s/new.json?limit=%d", c.webBaseURL, subreddit, limit)
	if accessToken != "" {
		endpoint = fmt.Sprintf("%s/r/%s/new?limit=%d", c.oauthBaseURL, subreddit, limit)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create listing request")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	c.setCommonHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(redditmodel.ErrConnection, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("subreddit listing failed",
			goerr.V("subreddit", subreddit),
			goerr.V("status", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read listing response")
	}

	return json.RawMessage(body), nil
}

// SubmitPost creates a post on a subreddit on the user's behalf. The
// provider signals its own errors inside a 200 envelope (json.errors), which
// must be inspected in addition to the status code. A 200 with an
// unparseable body is still a success: the provider occasionally returns
// empty or non-JSON bodies on success.
func (c *Client) SubmitPost(ctx context.Context, accessToken string, sub *redditmodel.Submission) (json.RawMessage, error) {
	endpoint := c.oauthBaseURL + submitPath
	form := sub.FormValues()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create submit request")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.setCommonHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(redditmodel.ErrConnection, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read submit response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, redditmodel.NewProviderError(
			fmt.Sprintf("%d: %s", resp.StatusCode, string(body)))
	}

	var envelope submitEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, nil
	}

	if msg := envelope.ErrorMessage(); msg != "" {
		return nil, redditmodel.NewProviderError(msg)
	}

	return json.RawMessage(body), nil
}

// submitEnvelope is the outer shape of the submit response. Errors arrive as
// a list of [code, detail, field] tuples under json.errors.
type submitEnvelope struct {
	JSON struct {
		Errors [][]any `json:"errors"`
	} `json:"json"`
}

// ErrorMessage joins the embedded error tuples as "code: detail" pairs, or
// returns an empty string when the envelope carries no errors.
func (e *submitEnvelope) ErrorMessage() string {
	if len(e.JSON.Errors) == 0 {
		return ""
	}

	pairs := make([]string, 0, len(e.JSON.Errors))
	for _, entry := range e.JSON.Errors {
		switch len(entry) {
		case 0:
			continue
		case 1:
			pairs = append(pairs, fmt.Sprint(entry[0]))
		default:
			pairs = append(pairs, fmt.Sprintf("%v: %v", entry[0], entry[1]))
		}
	}

	return strings.Join(pairs, ", ")
}
