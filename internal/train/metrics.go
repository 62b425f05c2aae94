package train

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the training instruments.
type Metrics struct {
	loss      prometheus.Gauge
	epochs    prometheus.Counter
	backward  prometheus.Histogram
	tapeNodes prometheus.Gauge
}

// NewMetrics creates the training metrics and registers them with reg.
// A nil reg creates unregistered metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		loss: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "micrograd",
			Subsystem: "train",
			Name:      "loss",
			Help:      "Loss of the most recent epoch",
		}),
		epochs: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "micrograd",
			Subsystem: "train",
			Name:      "epochs_total",
			Help:      "Total completed training epochs",
		}),
		backward: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "micrograd",
			Subsystem: "train",
			Name:      "backward_duration_seconds",
			Help:      "Duration of the backward pass in seconds",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
		tapeNodes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "micrograd",
			Subsystem: "train",
			Name:      "tape_nodes",
			Help:      "Nodes on the tape at the end of the last forward pass",
		}),
	}
}

func (m *Metrics) observeEpoch(loss float64, nodes int, backwardSec float64) {
	if m == nil {
		return
	}
	m.loss.Set(loss)
	m.epochs.Inc()
	m.backward.Observe(backwardSec)
	m.tapeNodes.Set(float64(nodes))
}
