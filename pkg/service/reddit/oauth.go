package reddit

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	redditmodel "github.com/glockstar/fanpage/pkg/domain/model/reddit"
	"github.com/m-mizutani/goerr/v2"
)

// GenerateState generates a cryptographically random, URL-safe state token
// for CSRF protection.
func GenerateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", goerr.Wrap(err, "failed to generate random state")
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// AuthorizeURL builds the provider authorization URL embedding the given
// state. The "permanent" duration requests a refresh token.
func (c *Client) AuthorizeURL(state string) string {
	params := url.Values{
		"client_id":     {c.config.ClientID},
		"response_type": {"code"},
		"state":         {state},
		"redirect_uri":  {c.config.RedirectURI},
		"duration":      {"permanent"},
		"scope":         {oauthScopes},
	}

	return fmt.Sprintf("%s%s?%s", c.webBaseURL, authorizePath, params.Encode())
}

// ExchangeCode exchanges an authorization code for a token set via the token
// endpoint, authenticating with HTTP Basic auth.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	form := url.Values{
		"grant_type":   {"authorization_code"},
		"code":         {code},
		"redirect_uri": {c.config.RedirectURI},
	}

	resp, err := c.postTokenEndpoint(ctx, form)
	if err != nil {
		return nil, goerr.Wrap(redditmodel.ErrTokenExchangeFailed, err.Error())
	}

	return resp, nil
}

// Refresh exchanges a refresh token for a fresh access token. The provider
// does not necessarily reissue the refresh token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	}

	return c.postTokenEndpoint(ctx, form)
}

func (c *Client) postTokenEndpoint(ctx context.Context, form url.Values) (*TokenResponse, error) {
	endpoint := c.webBaseURL + accessTokenPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create token request")
	}

	req.SetBasicAuth(c.config.ClientID, c.config.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.setCommonHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(redditmodel.ErrConnection, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read token response")
	}

	if resp.StatusCode != http.StatusOK {
		// The body may echo request parameters; the status code is enough
		// for the caller and safe to surface.
		return nil, goerr.New("token endpoint returned non-200",
			goerr.V("status", resp.StatusCode))
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal token response")
	}
	if tokenResp.AccessToken == "" {
		return nil, goerr.New("token endpoint returned no access token",
			goerr.V("provider_error", tokenResp.Error))
	}
	if tokenResp.ExpiresIn <= 0 {
		tokenResp.ExpiresIn = DefaultExpiresIn
	}

	return &tokenResp, nil
}

// UserInfo fetches the authenticated account via the identity endpoint.
func (c *Client) UserInfo(ctx context.Context, accessToken string) (*Account, error) {
	endpoint := c.oauthBaseURL + userInfoPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create user info request")
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	c.setCommonHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(redditmodel.ErrConnection, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("user info request failed",
			goerr.V("status", resp.StatusCode))
	}

	var account Account
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return nil, goerr.Wrap(err, "failed to decode user info response")
	}

	return &account, nil
}
