package protocol

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	prometheusMetrics sync.Once

	poolAcquisitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bedrock",
			Subsystem: "protocol",
			Name:      "pool_acquisitions_total",
			Help:      "Number of writers handed out by a pool, and whether an idle writer was reused.",
		},
		[]string{"outcome"})
	poolAcquisitionsHit  = poolAcquisitionsTotal.WithLabelValues("hit")
	poolAcquisitionsMiss = poolAcquisitionsTotal.WithLabelValues("miss")

	poolDiscardsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bedrock",
			Subsystem: "protocol",
			Name:      "pool_discards_total",
			Help:      "Number of released writers dropped because their buffer exceeded the retained capacity.",
		})

	batchFlushesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bedrock",
			Subsystem: "protocol",
			Name:      "batch_flushes_total",
			Help:      "Number of non-empty batches flushed.",
		})

	batchPackets = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "bedrock",
			Subsystem: "protocol",
			Name:      "batch_packets",
			Help:      "Number of packets contained in a flushed batch.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		})

	batchBytesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bedrock",
			Subsystem: "protocol",
			Name:      "batch_bytes_total",
			Help:      "Number of bytes produced by flushed batches.",
		})
)

// RegisterMetrics registers the protocol metrics with the default
// Prometheus registerer. It is safe to call more than once.
func RegisterMetrics() {
	prometheusMetrics.Do(func() {
		prometheus.MustRegister(poolAcquisitionsTotal)
		prometheus.MustRegister(poolDiscardsTotal)
		prometheus.MustRegister(batchFlushesTotal)
		prometheus.MustRegister(batchPackets)
		prometheus.MustRegister(batchBytesTotal)
	})
}
