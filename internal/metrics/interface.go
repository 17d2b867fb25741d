package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncStandingsComputed()
	IncAnalyticsSnapshots()
	ObserveSnapshotDuration(duration float64)
	IncDelayRequested()
	IncDelayAccepted()
	IncDelayRejected()
	IncDelayCancelled()
	IncDelayInvalid()
	IncNotifSent()
	IncNotifFailed()
	SetStartupTime(duration float64)
}

// MetricsStore persists long-lived operational counters in the database.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
