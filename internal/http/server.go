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

func NewServer(store league.LeagueStore, cache *refcache.Cache, delaySvc *delay.Service, metricsSvc metrics.Metrics, metricsHandler http.Handler, counters metrics.MetricsStore, cfg config.Config, notifier notifier.Notifier, pubsubClient pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Cache:          cache,
		Delay:          delaySvc,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Counters:       counters,
		Cfg:            cfg,
		Notifier:       notifier,
		PubSub:         pubsubClient,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	counted := s.countingMiddleware()
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/counters", Chain(s.CountersHandler(), paramsMiddleware))
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware, counted))
	s.Router.Handle("/members", Chain(s.ListMembersHandler(), paramsMiddleware, counted))
	s.Router.Handle("/seasons", Chain(s.ListSeasonsHandler(), paramsMiddleware, counted))
	s.Router.Handle("/matches", Chain(s.ListMatchesHandler(), paramsMiddleware, counted))
	s.Router.Handle("/ingest", Chain(s.IngestMatchesHandler(), paramsMiddleware, counted))
	s.Router.Handle("/standings", Chain(s.StandingsHandler(), paramsMiddleware, counted))
	s.Router.Handle("/player-analytics", Chain(s.PlayerAnalyticsHandler(), paramsMiddleware, counted))
	s.Router.Handle("/delay/request", Chain(s.DelayTransitionHandler(delay.ActionRequest), paramsMiddleware, counted))
	s.Router.Handle("/delay/accept", Chain(s.DelayTransitionHandler(delay.ActionAccept), paramsMiddleware, counted))
	s.Router.Handle("/delay/reject", Chain(s.DelayTransitionHandler(delay.ActionReject), paramsMiddleware, counted))
	s.Router.Handle("/delay/cancel", Chain(s.DelayTransitionHandler(delay.ActionCancel), paramsMiddleware, counted))
	s.Router.Handle("/slack/commands/standings", Chain(s.StandingsCommandHandler(), paramsMiddleware, counted))
	s.Router.Handle("/slack/commands/player", Chain(s.PlayerCardCommandHandler(), paramsMiddleware, counted))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
