package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/nareshkanna-nk/Young-wealth/internal/application"
	"github.com/nareshkanna-nk/Young-wealth/internal/infrastructure/memory"
)

func init() { gin.SetMode(gin.TestMode) }

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitWithoutRedis(t *testing.T) {
	r := gin.New()
	r.Use(RealIP())
	r.GET("/ping", RateLimit(nil, 2, time.Minute, KeyByIP(), nil), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	get := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Forwarded-For", ip)
		return serve(r, req).Code
	}
	require.Equal(t, http.StatusNoContent, get("203.0.113.7"))
	require.Equal(t, http.StatusNoContent, get("203.0.113.7"))
	require.Equal(t, http.StatusTooManyRequests, get("203.0.113.7"))
	require.Equal(t, http.StatusNoContent, get("203.0.113.8"))
}

func TestRateLimitAllowBypass(t *testing.T) {
	r := gin.New()
	r.Use(RealIP())
	r.GET("/ping", RateLimit(nil, 1, time.Minute, KeyByIP(), AllowPrivateIP()), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Forwarded-For", "10.0.0.5")
		require.Equal(t, http.StatusNoContent, serve(r, req).Code)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, w.Header().Get(RequestIDHeader))
	require.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "8d1f6a52-4c1b-4a8e-9f55-0d7c2c1e4b11")
	w = serve(r, req)
	require.Equal(t, "8d1f6a52-4c1b-4a8e-9f55-0d7c2c1e4b11", w.Body.String())
}

func TestAdminBasicAuth(t *testing.T) {
	ctx := context.Background()
	users := application.NewUserService(memory.NewUserRepository(), nil, nil)
	_, _, err := users.EnsureAdmin(ctx, "admin@youngwealth.com", "admin123", "Admin")
	require.NoError(t, err)
	_, err = users.Create(ctx, application.Fields{
		"fullName": "Student", "email": "s@example.com", "password": "secret1", "role": "college-student",
	})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/stats", AdminBasicAuth(application.NewAuthService(users, nil)), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxAdminIDKey))
	})

	call := func(user, pass string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/stats", nil)
		if user != "" {
			req.SetBasicAuth(user, pass)
		}
		return serve(r, req)
	}
	require.Equal(t, http.StatusUnauthorized, call("", "").Code)
	require.Equal(t, http.StatusUnauthorized, call("admin@youngwealth.com", "nope").Code)
	require.Equal(t, http.StatusForbidden, call("s@example.com", "secret1").Code)

	w := call("admin@youngwealth.com", "admin123")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Body.String())
}

func TestKeyByAdminSeparatesAdmins(t *testing.T) {
	r := gin.New()
	r.Use(RealIP())
	r.GET("/stats",
		func(c *gin.Context) {
			if id := c.GetHeader("X-Test-Admin"); id != "" {
				c.Set(CtxAdminIDKey, id)
			}
		},
		RateLimit(nil, 1, time.Minute, KeyByAdmin(), nil),
		func(c *gin.Context) { c.Status(http.StatusNoContent) },
	)

	get := func(admin string) int {
		req := httptest.NewRequest(http.MethodGet, "/stats", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.20")
		if admin != "" {
			req.Header.Set("X-Test-Admin", admin)
		}
		return serve(r, req).Code
	}
	// same IP, different admins: separate buckets
	require.Equal(t, http.StatusNoContent, get("a1"))
	require.Equal(t, http.StatusTooManyRequests, get("a1"))
	require.Equal(t, http.StatusNoContent, get("a2"))
	// no admin set: keyed by IP
	require.Equal(t, http.StatusNoContent, get(""))
	require.Equal(t, http.StatusTooManyRequests, get(""))
}

func TestKeyedLimiterSweepsIdleKeysOncePerTTL(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := t0
	l := newKeyedLimiter(rate.Every(time.Second), 1, time.Minute)
	l.now = func() time.Time { return clock }
	at := func(d time.Duration, key string) bool {
		clock = t0.Add(d)
		return l.allow(key)
	}

	require.True(t, at(0, "x"))
	require.False(t, at(0, "x"))
	require.True(t, at(10*time.Second, "a"))

	// sweep at 65s drops "x" (idle 65s) and keeps "a" (idle 55s)
	require.True(t, at(65*time.Second, "b"))
	require.True(t, l.lastSweep.Equal(t0.Add(65*time.Second)))
	require.NotContains(t, l.limiters, "x")
	require.Contains(t, l.limiters, "a")

	// "a" is now idle past ttl, but no sweep runs until 60s after the last one
	require.True(t, at(100*time.Second, "c"))
	require.True(t, l.lastSweep.Equal(t0.Add(65*time.Second)))
	require.Contains(t, l.limiters, "a")

	require.True(t, at(125*time.Second, "d"))
	require.True(t, l.lastSweep.Equal(t0.Add(125*time.Second)))
	require.NotContains(t, l.limiters, "a")
	require.Contains(t, l.limiters, "b")
	require.Contains(t, l.limiters, "c")
	require.Contains(t, l.limiters, "d")
}
