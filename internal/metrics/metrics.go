package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Metrics struct {
	Registry *prometheus.Registry

	IssueReports     *prometheus.CounterVec
	Predictions      *prometheus.CounterVec
	InferenceSeconds prometheus.Histogram
	RequestDuration  *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		IssueReports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "issue_reports_total",
			Help: "Issue reports by outcome.",
		}, []string{"result"}),
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "classifier_predictions_total",
			Help: "Classifier calls by outcome.",
		}, []string{"result"}),
		InferenceSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "classifier_inference_seconds",
			Help:    "Time spent in the classification pipeline.",
			Buckets: prometheus.DefBuckets,
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method", "status"}),
	}
	m.Registry.MustRegister(
		m.IssueReports,
		m.Predictions,
		m.InferenceSeconds,
		m.RequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveInference(start time.Time, result string) {
	m.InferenceSeconds.Observe(time.Since(start).Seconds())
	m.Predictions.WithLabelValues(result).Inc()
}
