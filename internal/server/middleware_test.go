package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"fitnessmanager/internal/auth"
	"fitnessmanager/internal/logger"
	"fitnessmanager/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddlewareLabels(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(MetricsMiddleware())
	router.GET("/rooms/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	routed := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/rooms/:id", "200")
	unmatched := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")
	routedBefore, unmatchedBefore := testutil.ToFloat64(routed), testutil.ToFloat64(unmatched)

	for _, path := range []string{"/rooms/a", "/rooms/b", "/wp-login.php"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, routedBefore+2, testutil.ToFloat64(routed))
	assert.Equal(t, unmatchedBefore+1, testutil.ToFloat64(unmatched))
}

func captureLogs(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	logger.Setup("debug", "json", &buf)
	t.Cleanup(func() { logger.Setup("info", "text", os.Stdout) })
	return &buf
}

func TestRequestLoggingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogs(t)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		auth.SetIdentity(c, auth.Identity{CustomerID: 12, Role: auth.RoleMember})
	}, RequestLoggingMiddleware())
	router.GET("/courses", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	for _, path := range []string{"/courses?page=2", "/fail", "/missing"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	want := []struct {
		level, path string
		status      float64
	}{
		{"INFO", "/courses?page=2", 200},
		{"ERROR", "/fail", 500},
		{"WARN", "/missing", 404},
	}
	for i, w := range want {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[i]), &entry))
		assert.Equal(t, w.level, entry["level"])
		assert.Equal(t, w.path, entry["path"])
		assert.Equal(t, w.status, entry["status"])
		assert.Equal(t, float64(12), entry["customer_id"])
	}
}

func TestCorsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(corsMiddleware())
	router.GET("/gyms", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/gyms", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/gyms", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}
