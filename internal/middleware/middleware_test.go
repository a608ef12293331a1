package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/car-service-booking/internal/config"
	"github.com/iliyamo/car-service-booking/internal/model"
	"github.com/iliyamo/car-service-booking/internal/utils"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestJWTAuthInjectsClaims(t *testing.T) {
	const secret = "test-secret"
	at, err := utils.NewAccessToken(secret, 7, "alice", model.RoleCustomer, 5)
	require.NoError(t, err)

	e := echo.New()
	handler := JWTAuth(secret)(func(c echo.Context) error {
		assert.Equal(t, uint64(7), c.Get("user_id"))
		assert.Equal(t, "alice", c.Get("username"))
		assert.Equal(t, model.RoleCustomer, c.Get("role"))
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+at.Token)
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuthRejectsMissingOrBadToken(t *testing.T) {
	e := echo.New()
	handler := JWTAuth("secret")(func(c echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	})

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rec = httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	handler := RequireRole(model.RoleAdmin)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/bookings", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", model.RoleAdmin)
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.Set("role", model.RoleCustomer)
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	require.NoError(t, handler(c)) // no role at all
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func cacheTestConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{"GET": true},
		TTL:          time.Minute,
		KeyStrategy:  "route_query",
		Prefix:       "cache-test",
		MaxBodyBytes: 1 << 20,
	}
}

func TestRedisCacheHit(t *testing.T) {
	rdb := newTestRedis(t)
	e := echo.New()

	calls := 0
	e.GET("/api/catalog", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"serviceTypes": model.ServiceTypes})
	}, NewRedisCache(cacheTestConfig(), rdb))

	req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	first := rec.Body.String()

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Equal(t, first, rec.Body.String())

	assert.Equal(t, 1, calls, "second request must be served from cache")
}

func TestRedisCacheSkipsNonConfiguredMethods(t *testing.T) {
	rdb := newTestRedis(t)
	e := echo.New()

	calls := 0
	e.POST("/api/bookings", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusCreated, echo.Map{"ok": true})
	}, NewRedisCache(cacheTestConfig(), rdb))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/bookings", nil))
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	assert.Equal(t, 2, calls)
}

func rateLimitTestConfig(capacity int) config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:        true,
		Capacity:       capacity,
		RefillTokens:   1,
		RefillInterval: time.Hour, // effectively no refill during the test
		TTL:            time.Hour,
		KeyStrategy:    "ip",
		Prefix:         "rl-test",
	}
}

func TestTokenBucketBlocksWhenExhausted(t *testing.T) {
	rdb := newTestRedis(t)
	e := echo.New()
	e.GET("/api/bookings", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, NewTokenBucket(rateLimitTestConfig(2), rdb))

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		e.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)
}

func TestTokenBucketDisabledPassesThrough(t *testing.T) {
	e := echo.New()
	cfg := rateLimitTestConfig(1)
	cfg.Enabled = false
	e.GET("/x", func(c echo.Context) error { return c.String(http.StatusOK, "ok") },
		NewTokenBucket(cfg, nil))

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
