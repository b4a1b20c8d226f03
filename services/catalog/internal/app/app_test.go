package app

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shestoi/ckstore/services/catalog/internal/config"
)

func testConfig(addr string) config.Config {
	return config.Config{
		AppEnv:          config.EnvLocal,
		HTTPAddr:        addr,
		ShutdownTimeout: time.Second,
		LogLevel:        "error",
	}
}

func TestBuild_ServesCatalog(t *testing.T) {
	a, err := Build(testConfig("127.0.0.1:0"))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	a.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var products []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 3)

	rec = httptest.NewRecorder()
	a.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestBuild_InvalidLogLevel(t *testing.T) {
	cfg := testConfig("127.0.0.1:0")
	cfg.LogLevel = "verbose"

	_, err := Build(cfg)
	require.ErrorContains(t, err, "invalid log level")
}

func TestRun_ReturnsWhenPortIsBusy(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	a, err := Build(testConfig(ln.Addr().String()))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()

	select {
	case err := <-done:
		require.ErrorContains(t, err, "http server")
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after listen failure")
	}
}
