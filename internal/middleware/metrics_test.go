package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"form-service/internal/metrics"
)

func setupMetricsRouter(m *metrics.Metrics) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Metrics(m))
	return router
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	metric := &dto.Metric{}
	require.NoError(t, c.Write(metric))
	return metric.Counter.GetValue()
}

func TestMetrics_RecordsRoutePattern(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
	router := setupMetricsRouter(m)
	router.GET("/forms/:id/render", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, id := range []string{"1", "2", "3"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/forms/"+id+"/render", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	got := counterValue(t, m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/forms/:id/render", "2xx"))
	assert.Equal(t, float64(3), got)
}

func TestMetrics_StatusCategories(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
	router := setupMetricsRouter(m)

	statuses := []int{http.StatusOK, http.StatusFound, http.StatusNotFound, http.StatusInternalServerError}
	for _, status := range statuses {
		status := status
		router.GET("/s/"+strconv.Itoa(status), func(c *gin.Context) { c.Status(status) })
	}
	for _, status := range statuses {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/s/"+strconv.Itoa(status), nil))
	}

	assert.Equal(t, float64(1), counterValue(t, m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/s/302", "3xx")))
	assert.Equal(t, float64(1), counterValue(t, m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/s/404", "4xx")))
	assert.Equal(t, float64(1), counterValue(t, m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/s/500", "5xx")))
}

func TestMetrics_SkipsHealthAndMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(registry, zap.NewNop())
	router := setupMetricsRouter(m)
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/health", "/metrics"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	families, err := registry.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		assert.NotEqual(t, "form_service_http_requests_total", mf.GetName())
	}
}

func TestMetrics_UnmatchedRoute(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
	router := setupMetricsRouter(m)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, float64(1), counterValue(t, m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "4xx")))
}

func TestMetrics_NilMetrics(t *testing.T) {
	router := setupMetricsRouter(nil)
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	})
	assert.Equal(t, http.StatusOK, w.Code)
}
