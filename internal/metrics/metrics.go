package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the bot's Prometheus collectors. A nil *Recorder is valid
// and records nothing.
type Recorder struct {
	transitions   *prometheus.CounterVec
	rejections    *prometheus.CounterVec
	notifications *prometheus.CounterVec
	saveFailures  prometheus.Counter
	evictions     prometheus.Counter
}

func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "financier",
			Name:      "dialog_transitions_total",
			Help:      "Accepted dialog transitions by source and target state.",
		}, []string{"from", "to"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "financier",
			Name:      "dialog_rejections_total",
			Help:      "Inputs rejected without a state change, by state and reason.",
		}, []string{"state", "reason"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "financier",
			Name:      "notifications_total",
			Help:      "Profile snapshot exports by outcome.",
		}, []string{"outcome"}),
		saveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "financier",
			Name:      "profile_save_failures_total",
			Help:      "Profile writes that failed and were kept in memory only.",
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "financier",
			Name:      "sessions_evicted_total",
			Help:      "Idle conversations dropped from memory.",
		}),
	}
	reg.MustRegister(r.transitions, r.rejections, r.notifications, r.saveFailures, r.evictions)
	return r
}

func (r *Recorder) Transition(from, to string) {
	if r == nil {
		return
	}
	r.transitions.WithLabelValues(from, to).Inc()
}

func (r *Recorder) Rejection(state, reason string) {
	if r == nil {
		return
	}
	r.rejections.WithLabelValues(state, reason).Inc()
}

func (r *Recorder) Notification(ok bool) {
	if r == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "failed"
	}
	r.notifications.WithLabelValues(outcome).Inc()
}

func (r *Recorder) SaveFailure() {
	if r == nil {
		return
	}
	r.saveFailures.Inc()
}

func (r *Recorder) SessionsEvicted(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.evictions.Add(float64(n))
}
