// Package store opens the configured screening repository.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/javiermolinar/zaalplan/internal/config"
	"github.com/javiermolinar/zaalplan/internal/db"
	"github.com/javiermolinar/zaalplan/internal/filestore"
	"github.com/javiermolinar/zaalplan/internal/logging"
	"github.com/javiermolinar/zaalplan/internal/metrics"
	"github.com/javiermolinar/zaalplan/internal/screening"
)

// Opened is the result of Open.
type Opened struct {
	Repo     screening.Repository
	Backend  string // backend actually in use
	Fallback bool   // the file store replaced a failing database
}

// Open returns the repository for cfg, instrumented with m (which may be
// nil). When the SQLite database cannot be opened and fallback is enabled,
// the local file store is used instead and a warning is logged.
func Open(cfg config.StorageConfig, log logrus.FieldLogger, m *metrics.Metrics) (*Opened, error) {
	log = logging.OrDiscard(log)

	switch cfg.Backend {
	case config.BackendFile:
		repo, err := openFile(cfg.FilePath)
		if err != nil {
			return nil, err
		}
		return &Opened{Repo: Instrument(repo, m), Backend: config.BackendFile}, nil

	case config.BackendSQLite:
		repo, err := openSQLite(cfg.DBPath)
		if err == nil {
			return &Opened{Repo: Instrument(repo, m), Backend: config.BackendSQLite}, nil
		}
		if !cfg.FallbackToFile {
			return nil, err
		}

		log.WithError(err).WithField("file", cfg.FilePath).Warn("database unavailable, using local file store")
		file, ferr := openFile(cfg.FilePath)
		if ferr != nil {
			return nil, fmt.Errorf("%w; fallback: %w", err, ferr)
		}
		return &Opened{Repo: Instrument(file, m), Backend: config.BackendFile, Fallback: true}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Backend)
	}
}

func openSQLite(path string) (*db.SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	return repo, nil
}

func openFile(path string) (*filestore.Store, error) {
	repo, err := filestore.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file store %s: %w", path, err)
	}
	return repo, nil
}
