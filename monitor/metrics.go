// Package monitor holds the prometheus collectors of the service.
package monitor

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "testgen"

var (
	httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests served, by route and status code.",
	}, []string{"method", "route", "status"})

	httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency, by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	modelCallsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "model_calls_total",
		Help:      "Language model calls, by generation stage and outcome.",
	}, []string{"stage", "outcome"})

	modelCallDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "model_call_duration_seconds",
		Help:      "Language model call latency, by generation stage.",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 80},
	}, []string{"stage"})

	promptTokens = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "prompt_tokens",
		Help:      "Estimated prompt size in tokens, by generation stage.",
		Buckets:   prometheus.ExponentialBuckets(256, 2, 10),
	}, []string{"stage"})

	summaryParseTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "summary_parse_total",
		Help:      "Summary responses normalized, by the parse tier that produced the result.",
	}, []string{"tier"})

	contentFilesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "content_files_total",
		Help:      "Repository files fetched for prompt context, by outcome.",
	}, []string{"outcome"})
)

// Registry is the registry served on /metrics.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpRequestsTotal,
		httpRequestDuration,
		modelCallsTotal,
		modelCallDuration,
		promptTokens,
		summaryParseTotal,
		contentFilesTotal,
	)
}

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(method, route string, status int, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordModelCall records one language model call.
func RecordModelCall(stage string, err error, elapsed time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	modelCallsTotal.WithLabelValues(stage, outcome).Inc()
	modelCallDuration.WithLabelValues(stage).Observe(elapsed.Seconds())
}

// RecordPromptTokens records the estimated size of a prompt.
func RecordPromptTokens(stage string, tokens int) {
	promptTokens.WithLabelValues(stage).Observe(float64(tokens))
}

// RecordSummaryParse records which parse tier produced a summary list.
func RecordSummaryParse(tier string) {
	summaryParseTotal.WithLabelValues(tier).Inc()
}

// RecordContentFile records a file fetch made while assembling prompt context.
func RecordContentFile(ok bool) {
	if ok {
		contentFilesTotal.WithLabelValues("fetched").Inc()
		return
	}
	contentFilesTotal.WithLabelValues("skipped").Inc()
}
