package config

import (
	"log/slog"

	"github.com/glockstar/fanpage/pkg/adapters/fs"
	"github.com/glockstar/fanpage/pkg/domain/interfaces"
	memoriesFile "github.com/glockstar/fanpage/pkg/repository/memories/file"
	memoriesSQLite "github.com/glockstar/fanpage/pkg/repository/memories/sqlite"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Memories selects the persistence backend for the memories gallery.
type Memories struct {
	backend   string
	path      string
	imagesDir string
}

func (x *Memories) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "memories-backend",
			Category:    "memories",
			Usage:       "Memories storage backend [file|sqlite]",
			Sources:     cli.EnvVars("FANPAGE_MEMORIES_BACKEND"),
			Value:       "file",
			Destination: &x.backend,
		},
		&cli.StringFlag{
			Name:        "memories-path",
			Category:    "memories",
			Usage:       "Path to the memories data file or database",
			Sources:     cli.EnvVars("FANPAGE_MEMORIES_PATH"),
			Value:       "./data/memories.json",
			Destination: &x.path,
		},
		&cli.StringFlag{
			Name:        "memories-images-dir",
			Category:    "memories",
			Usage:       "Directory for uploaded gallery images",
			Sources:     cli.EnvVars("FANPAGE_MEMORIES_IMAGES_DIR"),
			Value:       "./data/images",
			Destination: &x.imagesDir,
		},
	}
}

func (x Memories) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", x.backend),
		slog.String("path", x.path),
		slog.String("images_dir", x.imagesDir),
	)
}

// Configure builds the memory repository and the image storage adapter.
// The returned closer releases backend resources and must be called on
// shutdown.
func (x *Memories) Configure() (interfaces.MemoryRepository, interfaces.StorageAdapter, func() error, error) {
	storage, err := fs.New(&fs.Config{BaseDirectory: x.imagesDir})
	if err != nil {
		return nil, nil, nil, goerr.Wrap(err, "failed to create image storage",
			goerr.V("dir", x.imagesDir),
		)
	}

	switch x.backend {
	case "file":
		repo, err := memoriesFile.Open(x.path)
		if err != nil {
			return nil, nil, nil, goerr.Wrap(err, "failed to open memories file",
				goerr.V("path", x.path),
			)
		}
		return repo, storage, func() error { return nil }, nil

	case "sqlite":
		repo, err := memoriesSQLite.Open(x.path)
		if err != nil {
			return nil, nil, nil, goerr.Wrap(err, "failed to open memories database",
				goerr.V("path", x.path),
			)
		}
		return repo, storage, repo.Close, nil

	default:
		return nil, nil, nil, goerr.New("invalid memories backend",
			goerr.V("backend", x.backend),
			goerr.V("valid_backends", []string{"file", "sqlite"}),
		)
	}
}
