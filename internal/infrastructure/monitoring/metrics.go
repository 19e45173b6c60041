package monitoring

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "eatease"

// Metrics 服務的 Prometheus 指標，使用獨立的 registry
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	detections         *prometheus.CounterVec
	resolvedLabels     prometheus.Counter
	unresolvedLabels   prometheus.Counter
	learnedRebuilds    *prometheus.CounterVec
	learnedMappings    prometheus.Gauge
	feedbackItems      *prometheus.CounterVec
	recommendations    *prometheus.CounterVec
	recommendedRecipes *prometheus.HistogramVec
}

// NewMetrics 建立指標並註冊 Go runtime 與 process collector
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status_code"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),

		detections: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detections_total",
			Help:      "Image detections by provider, cache usage and outcome",
		}, []string{"provider", "cached", "status"}),
		resolvedLabels: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detection_labels_resolved_total",
			Help:      "Detections resolved to a canonical ingredient",
		}),
		unresolvedLabels: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detection_labels_unresolved_total",
			Help:      "Detections left without a canonical ingredient",
		}),
		learnedRebuilds: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "learned_mapping_rebuilds_total",
			Help:      "Learned mapping cache rebuilds by outcome",
		}, []string{"status"}),
		learnedMappings: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "learned_mappings",
			Help:      "Number of learned mappings in the current snapshot",
		}),
		feedbackItems: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feedback_corrections_total",
			Help:      "Submitted corrections by outcome",
		}, []string{"status"}),
		recommendations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Recommendation requests by mode",
		}, []string{"mode"}),
		recommendedRecipes: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommended_recipes",
			Help:      "Recipes returned per recommendation request",
			Buckets:   []float64{0, 1, 3, 5, 10, 20, 50},
		}, []string{"mode"}),
	}
}

// Registry 回傳使用中的 registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RegisterDB 加入資料庫連線池指標
func (m *Metrics) RegisterDB(db *sql.DB, name string) error {
	return m.registry.Register(collectors.NewDBStatsCollector(db, name))
}

// Handler /metrics 的 HTTP handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// HTTPMiddleware 記錄每個請求的數量與耗時
func (m *Metrics) HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.httpRequests.WithLabelValues(c.Request.Method, path, status).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// ObserveDetection 一次偵測呼叫
func (m *Metrics) ObserveDetection(provider string, cached bool, err error) {
	m.detections.WithLabelValues(provider, strconv.FormatBool(cached), outcome(err)).Inc()
}

// ObserveResolution 一次解析的結果數量
func (m *Metrics) ObserveResolution(resolved, unresolved int) {
	m.resolvedLabels.Add(float64(resolved))
	m.unresolvedLabels.Add(float64(unresolved))
}

// ObserveLearnedRebuild 學習對應快取重建
func (m *Metrics) ObserveLearnedRebuild(size int, err error) {
	m.learnedRebuilds.WithLabelValues(outcome(err)).Inc()
	if err == nil {
		m.learnedMappings.Set(float64(size))
	}
}

// ObserveFeedback 一批修正的結果
func (m *Metrics) ObserveFeedback(stored, failed int) {
	m.feedbackItems.WithLabelValues("stored").Add(float64(stored))
	m.feedbackItems.WithLabelValues("failed").Add(float64(failed))
}

// ObserveRecommendation 一次推薦請求
func (m *Metrics) ObserveRecommendation(mode string, count int) {
	m.recommendations.WithLabelValues(mode).Inc()
	m.recommendedRecipes.WithLabelValues(mode).Observe(float64(count))
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
