package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	StandingsComputed  prometheus.Counter
	AnalyticsSnapshots prometheus.Counter
	SnapshotDuration   prometheus.Histogram
	DelayRequested     prometheus.Counter
	DelayAccepted      prometheus.Counter
	DelayRejected      prometheus.Counter
	DelayCancelled     prometheus.Counter
	DelayInvalid       prometheus.Counter
	NotifSent          prometheus.Counter
	NotifFailed        prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
