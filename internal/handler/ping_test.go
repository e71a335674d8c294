package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"users-api/internal/cache"
	"users-api/internal/database"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestPingHandler(t *testing.T) {
	e := echo.New()

	t.Run("db unhealthy", func(t *testing.T) {
		db := &database.FakeDB{PingFn: func(ctx context.Context) error { return errors.New("fail") }}
		cch := &cache.FakeCache{}
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		rec := httptest.NewRecorder()
		err := PingHandler(db, cch)(e.NewContext(req, rec))
		require.NoError(t, err)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "database unhealthy")
	})

	t.Run("cache unhealthy", func(t *testing.T) {
		dbCalled := false
		db := &database.FakeDB{PingFn: func(ctx context.Context) error { dbCalled = true; return nil }}
		cch := &cache.FakeCache{PingFn: func(ctx context.Context) *redis.StatusCmd {
			return redis.NewStatusResult("", errors.New("ping"))
		}}
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		rec := httptest.NewRecorder()
		err := PingHandler(db, cch)(e.NewContext(req, rec))
		require.NoError(t, err)
		require.True(t, dbCalled)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "cache unhealthy")
	})

	t.Run("ok", func(t *testing.T) {
		cacheCalled := false
		db := &database.FakeDB{PingFn: func(ctx context.Context) error { return nil }}
		cch := &cache.FakeCache{PingFn: func(ctx context.Context) *redis.StatusCmd {
			cacheCalled = true
			return redis.NewStatusResult("PONG", nil)
		}}
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		rec := httptest.NewRecorder()
		err := PingHandler(db, cch)(e.NewContext(req, rec))
		require.NoError(t, err)
		require.True(t, cacheCalled)
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"message":"pong"}`, rec.Body.String())
	})

	t.Run("ok without cache", func(t *testing.T) {
		db := &database.FakeDB{PingFn: func(ctx context.Context) error { return nil }}
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		rec := httptest.NewRecorder()
		err := PingHandler(db, nil)(e.NewContext(req, rec))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestDocsRedirectHandler(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, DocsRedirectHandler()(e.NewContext(req, rec)))
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	require.Equal(t, "/docs/index.html", rec.Header().Get(echo.HeaderLocation))
}
