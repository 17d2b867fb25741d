package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		StandingsComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "boxleague_standings_computed_total",
			Help: "The total number of box standings tables computed.",
		}),
		AnalyticsSnapshots: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "boxleague_analytics_snapshots_total",
			Help: "The total number of player analytics snapshots built.",
		}),
		SnapshotDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "boxleague_analytics_snapshot_duration_seconds",
			Help:    "The duration of individual analytics snapshot builds.",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		DelayRequested: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "boxleague_delay_requested_total",
			Help: "The total number of reschedule requests opened.",
		}),
		DelayAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "boxleague_delay_accepted_total",
			Help: "The total number of reschedule requests accepted.",
		}),
		DelayRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "boxleague_delay_rejected_total",
			Help: "The total number of reschedule requests rejected.",
		}),
		DelayCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "boxleague_delay_cancelled_total",
			Help: "The total number of reschedule requests cancelled by their requester.",
		}),
		DelayInvalid: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "boxleague_delay_invalid_total",
			Help: "The total number of reschedule transitions rejected as illegal.",
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "boxleague_notifications_sent_total",
			Help: "The total number of notifications successfully sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "boxleague_notifications_failed_total",
			Help: "The total number of notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "boxleague_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.StandingsComputed,
		s.AnalyticsSnapshots,
		s.SnapshotDuration,
		s.DelayRequested,
		s.DelayAccepted,
		s.DelayRejected,
		s.DelayCancelled,
		s.DelayInvalid,
		s.NotifSent,
		s.NotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncStandingsComputed() {
	s.StandingsComputed.Inc()
}

func (s *Service) IncAnalyticsSnapshots() {
	s.AnalyticsSnapshots.Inc()
}

func (s *Service) ObserveSnapshotDuration(duration float64) {
	s.SnapshotDuration.Observe(duration)
}

func (s *Service) IncDelayRequested() {
	s.DelayRequested.Inc()
}

func (s *Service) IncDelayAccepted() {
	s.DelayAccepted.Inc()
}

func (s *Service) IncDelayRejected() {
	s.DelayRejected.Inc()
}

func (s *Service) IncDelayCancelled() {
	s.DelayCancelled.Inc()
}

func (s *Service) IncDelayInvalid() {
	s.DelayInvalid.Inc()
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
