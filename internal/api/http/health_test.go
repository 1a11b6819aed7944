package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jevi-chat/console/internal/upstream"
)

func setupHealthRouter(t *testing.T, backend http.HandlerFunc) (*gin.Engine, *miniredis.Miniredis) {
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	up := upstream.New(server.URL, 5*time.Second, 5*time.Second)
	probe := NewUpstreamProbe(up)
	probe.check()

	h := NewHealthHandler("jevi-console", "1.0.0", client, up, probe)
	r := gin.New()
	h.RegisterRoutes(r)
	return r, mr
}

func healthyBackend(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/health":
		w.Write([]byte(`{"status": "healthy", "timestamp": "2026-01-01T00:00:00Z"}`))
	case "/cors-test":
		w.Write([]byte(`{"cors": "ok"}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestHealthCheck(t *testing.T) {
	r, _ := setupHealthRouter(t, healthyBackend)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"status":"healthy"`)
	assert.Contains(t, body, `"service":"jevi-console"`)
	assert.Contains(t, body, `"redis":"up"`)
	assert.Contains(t, body, `"upstream":"up"`)
}

func TestHealthCheck_RedisDown(t *testing.T) {
	r, mr := setupHealthRouter(t, healthyBackend)
	mr.Close()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"degraded"`)
	assert.Contains(t, w.Body.String(), `"redis":"down"`)
}

func TestHealthCheck_UpstreamDownViaProbe(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	up := upstream.New("http://127.0.0.1:1", time.Second, time.Second)
	probe := NewUpstreamProbe(up)
	probe.check()

	h := NewHealthHandler("jevi-console", "1.0.0", client, up, probe)
	r := gin.New()
	h.RegisterRoutes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"upstream":"down"`)
}

func TestCORSTest(t *testing.T) {
	r, _ := setupHealthRouter(t, healthyBackend)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cors-test", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "backend reachable")
}
