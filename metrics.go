package virtualcube

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the session's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	// rotations counts committed rotations by face and commit reason
	rotations *prometheus.CounterVec

	// rotationSeconds tracks animation time per committed rotation
	rotationSeconds prometheus.Histogram

	// rejected counts rotations refused because one was in flight
	rejected prometheus.Counter

	// playbacks counts sequence playbacks by origin and result
	playbacks *prometheus.CounterVec

	// solveFailures counts solver errors
	solveFailures prometheus.Counter
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		rotations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vcube_rotations_total",
			Help: "Committed slice rotations by face and commit reason",
		}, []string{"face", "reason"}),
		rotationSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "vcube_rotation_duration_seconds",
			Help:    "Animation time from rotation start to commit",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 8), // 50ms to ~6.4s
		}),
		rejected: f.NewCounter(prometheus.CounterOpts{
			Name: "vcube_rotations_rejected_total",
			Help: "Rotation requests dropped while another rotation was in flight",
		}),
		playbacks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vcube_playbacks_total",
			Help: "Sequence playbacks by origin and result",
		}, []string{"origin", "result"}),
		solveFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "vcube_solve_failures_total",
			Help: "Solve requests the solver could not satisfy",
		}),
	}
}

func (m *Metrics) rotationCommitted(face Face, reason CommitReason, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.rotations.WithLabelValues(face.Letter(), reason.String()).Inc()
	m.rotationSeconds.Observe(elapsed.Seconds())
}

func (m *Metrics) rotationRejected() {
	if m == nil {
		return
	}
	m.rejected.Inc()
}

func (m *Metrics) playbackEnded(origin SequenceOrigin, completed bool) {
	if m == nil {
		return
	}
	result := "completed"
	if !completed {
		result = "aborted"
	}
	m.playbacks.WithLabelValues(origin.String(), result).Inc()
}

func (m *Metrics) solveFailed() {
	if m == nil {
		return
	}
	m.solveFailures.Inc()
}
