// Package metrics exposes Prometheus instrumentation for the HTTP surface and
// for every call made to YouTube and Bunny.
//
//	cdn_http_requests_total             counter: requests by method/route/status
//	cdn_http_request_duration_seconds   histogram: latency by method/route
//	cdn_upstream_requests_total         counter: upstream calls by service/op/result
//	cdn_upstream_request_duration_secs  histogram: upstream latency by service/op
//	cdn_episodes_aggregated_total       counter: episodes returned by the aggregator
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "cdn_http_requests_total",
	Help: "Total HTTP requests handled.",
}, []string{"method", "route", "status"})

var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "cdn_http_request_duration_seconds",
	Help:    "HTTP request latency in seconds.",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "route"})

var UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "cdn_upstream_requests_total",
	Help: "Calls made to third-party APIs by result.",
}, []string{"service", "op", "result"})

var UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "cdn_upstream_request_duration_seconds",
	Help:    "Latency of third-party API calls in seconds.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
}, []string{"service", "op"})

var EpisodesAggregated = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "cdn_episodes_aggregated_total",
	Help: "Episodes returned by the multi-channel aggregator, by source channel.",
}, []string{"channel"})

// ObserveUpstream records one upstream call started at start.
func ObserveUpstream(service, op string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	UpstreamRequests.WithLabelValues(service, op, result).Inc()
	UpstreamDuration.WithLabelValues(service, op).Observe(time.Since(start).Seconds())
}

// Middleware records request count and latency labelled by the matched route,
// so path parameters do not explode cardinality.
func Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := ctx.Request.Method
		HTTPRequests.WithLabelValues(method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
		HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler returns the Prometheus scrape handler for GET /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
