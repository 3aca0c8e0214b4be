package metrics

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arphatra_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	submissionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arphatra_form_submissions_total",
		Help: "Accepted public form submissions.",
	})
)

// Middleware counts every request against its route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// CountSubmission records one accepted response submission.
func CountSubmission() {
	submissionsTotal.Inc()
}

// Register exposes Prometheus metrics on /metrics.
func Register(router *gin.Engine) {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
