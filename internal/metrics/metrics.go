package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BusDropsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sxm_bus_drop_total",
		Help: "Events evicted from a full subscriber queue",
	}, []string{"topic"})

	FaultsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sxm_faults_total",
		Help: "Worker faults by channel and kind",
	}, []string{"channel", "kind"})

	BoundariesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sxm_boundaries_total",
		Help: "Content unit boundaries observed",
	}, []string{"channel"})

	SegmentsClosedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sxm_archive_segments_closed_total",
		Help: "Archive segments finalized and renamed",
	}, []string{"channel"})

	CutsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sxm_cuts_total",
		Help: "Splice outcomes by channel and result",
	}, []string{"channel", "result"})
)

// IncBusDrop records an event dropped from a subscriber queue.
func IncBusDrop(topic string) {
	if topic == "" {
		topic = "unknown"
	}
	BusDropsTotal.WithLabelValues(topic).Inc()
}

// IncFault records a worker fault.
func IncFault(channel, kind string) {
	if channel == "" {
		channel = "unknown"
	}
	if kind == "" {
		kind = "unknown"
	}
	FaultsTotal.WithLabelValues(channel, kind).Inc()
}

func IncBoundary(channel string) {
	BoundariesTotal.WithLabelValues(channel).Inc()
}

func IncSegmentClosed(channel string) {
	SegmentsClosedTotal.WithLabelValues(channel).Inc()
}

// IncCut records a splice outcome: ok, failed, duplicate or gone.
func IncCut(channel, result string) {
	CutsTotal.WithLabelValues(channel, result).Inc()
}
