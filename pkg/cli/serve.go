package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glockstar/fanpage/pkg/cli/config"
	server "github.com/glockstar/fanpage/pkg/controller/http"
	"github.com/glockstar/fanpage/pkg/domain/model/reddit"
	sessionmem "github.com/glockstar/fanpage/pkg/repository/session/memory"
	"github.com/glockstar/fanpage/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		addr          string
		secureCookies bool
		sessionTTL    time.Duration
		redditCfg     config.Reddit
		memoriesCfg   config.Memories
		siteCfg       config.Site
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Aliases:     []string{"a"},
			Sources:     cli.EnvVars("FANPAGE_ADDR"),
			Usage:       "Listen address (default: 127.0.0.1:8080)",
			Value:       "127.0.0.1:8080",
			Destination: &addr,
		},
		&cli.BoolFlag{
			Name:        "secure-cookies",
			Sources:     cli.EnvVars("FANPAGE_SECURE_COOKIES"),
			Usage:       "Mark session cookies as Secure (enable behind HTTPS)",
			Destination: &secureCookies,
		},
		&cli.DurationFlag{
			Name:        "session-ttl",
			Sources:     cli.EnvVars("FANPAGE_SESSION_TTL"),
			Usage:       "Idle lifetime of visitor sessions",
			Value:       time.Hour,
			Destination: &sessionTTL,
		},
	}
	flags = append(flags, redditCfg.Flags()...)
	flags = append(flags, memoriesCfg.Flags()...)
	flags = append(flags, siteCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Run server",
		Flags:   flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger := ctxlog.From(ctx)
			logger.Info("starting server",
				"addr", addr,
				"reddit", redditCfg,
				"memories", memoriesCfg,
				"site", siteCfg,
			)

			sessions := sessionmem.New(sessionTTL)

			serverOptions := []server.Options{
				server.WithSessionOptions(
					server.WithSecureCookies(secureCookies),
					server.WithSessionMaxAge(sessionTTL),
				),
			}

			// Reddit integration is optional. Without credentials the rest
			// of the site still works.
			redditClient, err := redditCfg.Configure()
			switch {
			case err == nil:
				redditUC := usecase.NewReddit(sessions, redditClient)
				serverOptions = append(serverOptions,
					server.WithRedditController(server.NewRedditController(redditUC, redditUC, "/reddit")),
				)
			case errors.Is(err, reddit.ErrMissingConfig):
				logger.Warn("reddit credentials not configured, reddit routes disabled")
			default:
				return goerr.Wrap(err, "failed to configure reddit client")
			}

			repo, storage, closeRepo, err := memoriesCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure memories backend")
			}
			defer func() {
				if err := closeRepo(); err != nil {
					logger.Warn("failed to close memories backend", "error", err)
				}
			}()

			serverOptions = append(serverOptions,
				server.WithMemoriesController(server.NewMemoriesController(usecase.NewMemories(repo, storage))),
				server.WithContactController(server.NewContactController(usecase.NewContact())),
			)

			siteInfo, err := siteCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load site config")
			}
			serverOptions = append(serverOptions, server.WithSiteInfo(siteInfo))

			if dir := siteCfg.StaticDir(); dir != "" {
				serverOptions = append(serverOptions, server.WithStaticDir(dir))
			}

			httpServer := http.Server{
				Addr:              addr,
				Handler:           server.New(serverOptions...),
				ReadTimeout:       30 * time.Second,
				ReadHeaderTimeout: 10 * time.Second,
				BaseContext: func(l net.Listener) context.Context {
					return ctx
				},
			}

			errCh := make(chan error, 1)
			go func() {
				defer close(errCh)
				ctxlog.From(ctx).Info("server started", "addr", addr)
				if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case <-sigCh:
				ctxlog.From(ctx).Info("shutting down server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return httpServer.Shutdown(shutdownCtx)
			}
		},
	}
}
