package main

import (
	"context"
	"net"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setServerEnv(t *testing.T, port int, dbPath string) {
	t.Helper()
	t.Setenv("APP_ENV", "production")
	t.Setenv("ROUTE_API_KEY", "k")
	t.Setenv("ROUTE_API_BASE_URL", "http://api.traffic.mock")
	t.Setenv("ROUTE_API_TIMEOUT", "")
	t.Setenv("DB_PATH", dbPath)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", strconv.Itoa(port))
}

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

func TestRunReturnsConfigError(t *testing.T) {
	setServerEnv(t, 8080, "")
	t.Setenv("ROUTE_API_KEY", "")

	err := run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ROUTE_API_KEY is required")
}

func TestRunReturnsListenError(t *testing.T) {
	// Hold the port so ListenAndServe fails.
	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer ln.Close()

	setServerEnv(t, ln.Addr().(*net.TCPAddr).Port, filepath.Join(t.TempDir(), "app.db"))

	err = run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server failed")
}

func TestRunShutsDownOnCancel(t *testing.T) {
	setServerEnv(t, freePort(t), filepath.Join(t.TempDir(), "app.db"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}
