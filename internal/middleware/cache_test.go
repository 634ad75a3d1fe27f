package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/mindful/internal/config"
)

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	body := []byte(`[{"id":1}]`)

	bs, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, got, gotBody, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, echo.MIMEApplicationJSON, got.Get(echo.HeaderContentType))
	assert.Equal(t, body, gotBody)
}

func TestDecodePayload_Corrupt(t *testing.T) {
	_, _, _, ok := decodePayload([]byte{0, 0})
	assert.False(t, ok)

	_, _, _, ok = decodePayload([]byte{0, 0, 0, 200, 0, 0, 1, 0, '{'})
	assert.False(t, ok)
}

func TestCacheKey_QueryOrderInsensitive(t *testing.T) {
	e := echo.New()
	cfg := config.CacheConfig{Prefix: "cache"}

	key := func(target string) string {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
		c.SetPath("/api/journal/public")
		return cacheKeyFrom(cfg, c)
	}
	assert.Equal(t, key("/api/journal/public?a=1&category=anxiety"), key("/api/journal/public?category=anxiety&a=1"))
	assert.NotEqual(t, key("/api/journal/public?category=anxiety"), key("/api/journal/public?category=gratitude"))
	assert.Contains(t, key("/api/journal/public"), "cache:")
}

func TestNewRedisCache_DisabledPassesThrough(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/journal/public", nil), rec)

	mw := NewRedisCache(config.CacheConfig{Enabled: true}, nil)
	require.NoError(t, mw(func(c echo.Context) error { return c.String(http.StatusOK, "fresh") })(c))
	assert.Equal(t, "fresh", rec.Body.String())
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestCaptureWriter_TruncatesOverLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}
	_, _ = cw.Write([]byte("abc"))
	_, _ = cw.Write([]byte("def"))

	assert.True(t, cw.truncated)
	assert.Equal(t, "abc", cw.buf.String())
	assert.Equal(t, "abcdef", rec.Body.String())
}

func TestNewRedisCache_OnlyGETIsCached(t *testing.T) {
	// never dialled: a non-GET request must not reach Redis
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { rdb.Close() })

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/journal/public", nil), rec)

	mw := NewRedisCache(config.CacheConfig{Enabled: true, Prefix: "cache"}, rdb)
	require.NoError(t, mw(func(c echo.Context) error { return c.String(http.StatusOK, "posted") })(c))
	assert.Equal(t, "posted", rec.Body.String())
	assert.Empty(t, rec.Header().Get("X-Cache"))
}
