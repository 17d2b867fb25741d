package http

import (
	"net/http"

	"github.com/tibaulingg/boxleague/internal/config"
	"github.com/tibaulingg/boxleague/internal/delay"
	"github.com/tibaulingg/boxleague/internal/league"
	"github.com/tibaulingg/boxleague/internal/metrics"
	"github.com/tibaulingg/boxleague/internal/notifier"
	"github.com/tibaulingg/boxleague/internal/pubsub"
	"github.com/tibaulingg/boxleague/internal/refcache"
)

type Server struct {
	Store          league.LeagueStore
	Cache          *refcache.Cache
	Delay          *delay.Service
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Counters       metrics.MetricsStore
	Cfg            config.Config
	Notifier       notifier.Notifier
	PubSub         pubsub.PubSubClient
	Router         *http.ServeMux
}
