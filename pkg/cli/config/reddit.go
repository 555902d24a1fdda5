package config

import (
	"log/slog"

	redditSvc "github.com/glockstar/fanpage/pkg/service/reddit"
	"github.com/urfave/cli/v3"
)

// Reddit holds the OAuth application credentials for the Reddit API.
type Reddit struct {
	ClientID     string
	ClientSecret string `masq:"secret"`
	RedirectURI  string
	UserAgent    string
}

func (x *Reddit) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "reddit-client-id",
			Category:    "reddit",
			Usage:       "Reddit OAuth application client ID",
			Sources:     cli.EnvVars("FANPAGE_REDDIT_CLIENT_ID"),
			Destination: &x.ClientID,
		},
		&cli.StringFlag{
			Name:        "reddit-client-secret",
			Category:    "reddit",
			Usage:       "Reddit OAuth application client secret",
			Sources:     cli.EnvVars("FANPAGE_REDDIT_CLIENT_SECRET"),
			Destination: &x.ClientSecret,
		},
		&cli.StringFlag{
			Name:        "reddit-redirect-uri",
			Category:    "reddit",
			Usage:       "OAuth redirect URI registered with the Reddit application",
			Sources:     cli.EnvVars("FANPAGE_REDDIT_REDIRECT_URI"),
			Value:       "http://localhost:8080/reddit-callback",
			Destination: &x.RedirectURI,
		},
		&cli.StringFlag{
			Name:        "reddit-user-agent",
			Category:    "reddit",
			Usage:       "User-Agent sent on all Reddit API requests",
			Sources:     cli.EnvVars("FANPAGE_REDDIT_USER_AGENT"),
			Value:       "web:glockstar-fanpage:v1.0 (by /u/glockstar)",
			Destination: &x.UserAgent,
		},
	}
}

func (x Reddit) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("client_id", x.ClientID),
		slog.String("redirect_uri", x.RedirectURI),
		slog.String("user_agent", x.UserAgent),
	)
}

func (x *Reddit) Configure() (*redditSvc.Client, error) {
	return redditSvc.New(redditSvc.Config{
		ClientID:     x.ClientID,
		ClientSecret: x.ClientSecret,
		RedirectURI:  x.RedirectURI,
		UserAgent:    x.UserAgent,
	})
}
