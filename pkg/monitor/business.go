package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics 定义业务监控指标
type BusinessMetrics struct {
	BatchPreparedTotal      *prometheus.CounterVec
	RecipientsTotal         *prometheus.CounterVec
	AssemblyFailuresTotal   *prometheus.CounterVec
	AssemblyDuration        *prometheus.HistogramVec
	RateLimitedTotal        prometheus.Counter
	UploadedRecipientsTotal prometheus.Counter
}

// Business 全局业务指标，Init 之前为 nil
var Business *BusinessMetrics

// InitBusinessMetrics 初始化业务指标
func InitBusinessMetrics() {
	Business = &BusinessMetrics{
		BatchPreparedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "batch_sender_prepared_total",
			Help: "The total number of prepared batch transactions",
		}, []string{"asset"}),
		RecipientsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "batch_sender_recipients_total",
			Help: "The total number of recipients in prepared batches",
		}, []string{"asset"}),
		AssemblyFailuresTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "batch_sender_assembly_failures_total",
			Help: "Failed batch assemblies by reason",
		}, []string{"reason"}),
		AssemblyDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "batch_sender_assembly_duration_seconds",
			Help:    "Duration of batch assembly including jetton wallet resolution",
			Buckets: prometheus.DefBuckets,
		}, []string{"asset"}),
		RateLimitedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "batch_sender_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		}),
		UploadedRecipientsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "batch_sender_uploaded_recipients_total",
			Help: "Recipient rows parsed from uploaded CSV files",
		}),
	}
}
