package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javiermolinar/zaalplan/internal/config"
	"github.com/javiermolinar/zaalplan/internal/logging"
	"github.com/javiermolinar/zaalplan/internal/metrics"
	"github.com/javiermolinar/zaalplan/internal/screening"
)

func storageConfig(t *testing.T, backend string) config.StorageConfig {
	dir := t.TempDir()
	return config.StorageConfig{
		Backend:        backend,
		DBPath:         filepath.Join(dir, "db", "zaalplan.db"),
		FilePath:       filepath.Join(dir, "file", "screenings.json"),
		FallbackToFile: true,
	}
}

func TestOpen_SQLite(t *testing.T) {
	opened, err := Open(storageConfig(t, config.BackendSQLite), nil, nil)
	require.NoError(t, err)
	defer func() { _ = opened.Repo.Close() }()

	assert.Equal(t, config.BackendSQLite, opened.Backend)
	assert.False(t, opened.Fallback)
}

func TestOpen_File(t *testing.T) {
	opened, err := Open(storageConfig(t, config.BackendFile), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, config.BackendFile, opened.Backend)
	assert.False(t, opened.Fallback)
}

func TestOpen_FallsBackToFile(t *testing.T) {
	cfg := storageConfig(t, config.BackendSQLite)
	// A directory where the database file should be cannot be opened as a database.
	require.NoError(t, os.MkdirAll(cfg.DBPath, 0o755))

	var logs bytes.Buffer
	opened, err := Open(cfg, logging.NewWithOutput("warn", &logs), nil)
	require.NoError(t, err)

	assert.True(t, opened.Fallback)
	assert.Equal(t, config.BackendFile, opened.Backend)
	assert.Contains(t, logs.String(), "using local file store")

	s, err := screening.New(screening.Draft{
		Title: "Barbie", Date: "2024-06-10", Time: "20:00", Duration: 114, Hall: "Zaal 1",
	}, []string{"Zaal 1"})
	require.NoError(t, err)
	require.NoError(t, opened.Repo.Create(context.Background(), s))

	_, err = os.Stat(cfg.FilePath)
	assert.NoError(t, err)
}

func TestOpen_NoFallback(t *testing.T) {
	cfg := storageConfig(t, config.BackendSQLite)
	cfg.FallbackToFile = false
	require.NoError(t, os.MkdirAll(cfg.DBPath, 0o755))

	_, err := Open(cfg, nil, nil)
	assert.Error(t, err)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(storageConfig(t, "firestore"), nil, nil)
	assert.Error(t, err)
}

func TestInstrument(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.MustNewMetrics(reg)

	opened, err := Open(storageConfig(t, config.BackendFile), nil, m)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = opened.Repo.List(ctx)
	require.NoError(t, err)
	assert.ErrorIs(t, opened.Repo.Delete(ctx, "missing"), screening.ErrNotFound)

	families, err := reg.Gather()
	require.NoError(t, err)
	var ops float64
	for _, f := range families {
		if f.GetName() != "zaalplan_store_operations_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			ops += metric.GetCounter().GetValue()
		}
	}
	assert.Equal(t, float64(2), ops)
}

func TestInstrument_NilMetrics(t *testing.T) {
	opened, err := Open(storageConfig(t, config.BackendFile), nil, nil)
	require.NoError(t, err)

	_, wrapped := opened.Repo.(*instrumented)
	assert.False(t, wrapped)
}
