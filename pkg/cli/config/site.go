package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/glockstar/fanpage/pkg/domain/model/site"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Site points to the site metadata file and the static assets directory.
type Site struct {
	configPath string
	staticDir  string
}

func (x *Site) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "site-config",
			Category:    "site",
			Usage:       "Path to the site metadata YAML file",
			Sources:     cli.EnvVars("FANPAGE_SITE_CONFIG"),
			Destination: &x.configPath,
		},
		&cli.StringFlag{
			Name:        "static-dir",
			Category:    "site",
			Usage:       "Directory of static frontend assets to serve",
			Sources:     cli.EnvVars("FANPAGE_STATIC_DIR"),
			Destination: &x.staticDir,
		},
	}
}

func (x Site) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("config", x.configPath),
		slog.String("static_dir", x.staticDir),
	)
}

func (x *Site) StaticDir() string {
	return x.staticDir
}

// Configure loads the site metadata. Without a config path a minimal
// default is returned so the server can still come up.
func (x *Site) Configure() (*site.Site, error) {
	if x.configPath == "" {
		return &site.Site{
			Title:            "Fan Page",
			DefaultSubreddit: "popular",
		}, nil
	}

	data, err := os.ReadFile(filepath.Clean(x.configPath))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read site config",
			goerr.V("path", x.configPath),
		)
	}

	var info site.Site
	if err := yaml.Unmarshal(data, &info); err != nil {
		return nil, goerr.Wrap(err, "failed to parse site config",
			goerr.V("path", x.configPath),
		)
	}

	return &info, nil
}
