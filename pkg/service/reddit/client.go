package reddit

import (
	"net/http"
	"time"

	"github.com/glockstar/fanpage/pkg/domain/interfaces"
	redditmodel "github.com/glockstar/fanpage/pkg/domain/model/reddit"
)

const (
	defaultWebBaseURL   = "https://www.reddit.com"
	defaultOAuthBaseURL = "https://oauth.reddit.com"

	authorizePath   = "/api/v1/authorize"
	accessTokenPath = "/api/v1/access_token"
	userInfoPath    = "/api/v1/me"
	submitPath      = "/api/submit"

	// oauthScopes is the fixed scope set requested during authorization.
	oauthScopes = "identity edit submit read"

	// DefaultExpiresIn is assumed when the token endpoint omits expires_in.
	DefaultExpiresIn = 3600
)

// Config holds the OAuth application credentials. Missing credentials are a
// fatal startup condition, not a per-request error.
type Config struct {
	ClientID     string
	ClientSecret string `masq:"secret"`
	RedirectURI  string
	UserAgent    string
}

// Validate checks that the client credentials are present.
func (c *Config) Validate() error {
	if c.ClientID == "" || c.ClientSecret == "" {
		return redditmodel.ErrMissingConfig
	}
	return nil
}

// Client talks to the Reddit OAuth and data endpoints. All calls send the
// configured User-Agent; authenticated calls go to the oauth host, the rest
// to the www host.
type Client struct {
	config       Config
	httpClient   interfaces.HTTPClient
	webBaseURL   string
	oauthBaseURL string
}

// Option is a functional option for Client
type Option func(*Client)

// WithHTTPClient swaps the outbound HTTP client.
func WithHTTPClient(hc interfaces.HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURLs overrides the provider hosts, mainly for tests.
func WithBaseURLs(webBaseURL, oauthBaseURL string) Option {
	return func(c *Client) {
		c.webBaseURL = webBaseURL
		c.oauthBaseURL = oauthBaseURL
	}
}

// New creates a Reddit client.
func New(config Config, opts ...Option) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config: config,
		// The provider is an uncontrolled external dependency; outbound
		// calls must not block indefinitely.
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		webBaseURL:   defaultWebBaseURL,
		oauthBaseURL: defaultOAuthBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Client) setCommonHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.config.UserAgent)
}
