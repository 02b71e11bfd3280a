package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// requestCounter conta as requisições HTTP por método, rota e status
	requestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total de requisições HTTP",
		},
		[]string{"service", "method", "path", "status"},
	)

	// requestDuration registra a duração das requisições em segundos
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duração das requisições HTTP em segundos",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)

	// statusCategoryCounter conta as respostas por categoria de status
	statusCategoryCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_status_category_total",
			Help: "Total de respostas por categoria de status (2xx, 4xx, 5xx)",
		},
		[]string{"service", "category", "method", "path"},
	)
)

// HTTPMetrics coleta métricas de requisições HTTP
type HTTPMetrics struct {
	ServiceName string
	registered  bool
}

// NewHTTPMetrics cria um novo coletor de métricas HTTP para o serviço
func NewHTTPMetrics(serviceName string) *HTTPMetrics {
	m := &HTTPMetrics{
		ServiceName: serviceName,
	}
	m.register()
	return m
}

// register registra os coletores no registro padrão do prometheus
func (m *HTTPMetrics) register() {
	if !m.registered {
		prometheus.MustRegister(requestCounter)
		prometheus.MustRegister(requestDuration)
		prometheus.MustRegister(statusCategoryCounter)
		m.registered = true
	}
}

// statusCategory mapeia o código de status HTTP para a categoria
func statusCategory(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500 && status < 600:
		return "5xx"
	}
	return ""
}

// Middleware cria um middleware do Gin que registra métricas de requisições
func (m *HTTPMetrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		method := c.Request.Method
		// FullPath retorna o padrão da rota, evitando explosão de cardinalidade
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		statusStr := strconv.Itoa(status)

		requestCounter.WithLabelValues(m.ServiceName, method, path, statusStr).Inc()

		if category := statusCategory(status); category != "" {
			statusCategoryCounter.WithLabelValues(m.ServiceName, category, method, path).Inc()
		}

		duration := time.Since(start).Seconds()
		requestDuration.WithLabelValues(m.ServiceName, method, path, statusStr).Observe(duration)
	}
}

// Handler retorna o handler HTTP que expõe as métricas do Prometheus
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
