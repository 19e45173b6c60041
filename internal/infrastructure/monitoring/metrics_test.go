package monitoring

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_DomainObservers(t *testing.T) {
	m := NewMetrics()

	m.ObserveDetection("google", false, nil)
	m.ObserveDetection("google", true, nil)
	m.ObserveDetection("google", false, errors.New("quota"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.detections.WithLabelValues("google", "false", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.detections.WithLabelValues("google", "true", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.detections.WithLabelValues("google", "false", "error")))

	m.ObserveResolution(3, 2)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.resolvedLabels))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.unresolvedLabels))

	m.ObserveLearnedRebuild(4, nil)
	m.ObserveLearnedRebuild(0, errors.New("db down"))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.learnedMappings))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.learnedRebuilds.WithLabelValues("error")))

	m.ObserveFeedback(2, 1)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.feedbackItems.WithLabelValues("stored")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.feedbackItems.WithLabelValues("failed")))

	m.ObserveRecommendation("quick", 5)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.recommendations.WithLabelValues("quick")))
}

func TestMetrics_HTTPMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	r := gin.New()
	r.Use(m.HTTPMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/ping", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "unmatched", "404")))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "eatease_http_requests_total")
	assert.Contains(t, string(body), "go_goroutines")
}
