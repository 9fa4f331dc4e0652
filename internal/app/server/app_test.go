package server

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"mobisync/internal/app/server/config"
	"mobisync/internal/domain/airquality"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func testConfig(t *testing.T) *config.Config {
	cfg := &config.Config{Env: config.EnvLocal}
	cfg.DB.Driver = config.DriverSQLite
	cfg.DB.DatabaseURI = filepath.Join(t.TempDir(), "app.db")
	cfg.Server.RunAddress = "127.0.0.1:0"
	cfg.Server.ShutdownTimeout = time.Second
	cfg.Sync.Secret = "s3cret"
	cfg.Sync.BatchSize = 100
	cfg.Activity.URL = "http://127.0.0.1:1"
	cfg.AirQuality.URL = "http://127.0.0.1:2"
	cfg.AirQuality.Cities = []airquality.City{{ID: "madrid", Code: "MAD"}}
	cfg.Upstream.RetryAttempts = 1
	return cfg
}

func TestApp_RunAndShutdown(t *testing.T) {
	app, err := New(context.Background(), testConfig(t), slog.Default())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestNew_InvalidUpstreamURL(t *testing.T) {
	cfg := testConfig(t)
	cfg.Activity.URL = ""

	_, err := New(context.Background(), cfg, slog.Default())

	assert.ErrorContains(t, err, "activity upstream")
}

func TestNew_UnsupportedDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.DB.Driver = "mysql"

	_, err := New(context.Background(), cfg, slog.Default())

	assert.ErrorContains(t, err, "unsupported database driver")
}
