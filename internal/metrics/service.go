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
		GamesIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lanedex_games_ingested_total",
			Help: "The total number of games recorded into matchup aggregates.",
		}),
		ReconcileRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lanedex_reconcile_runs_total",
			Help: "The total number of reconciliation attempts.",
		}),
		OutcomesApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lanedex_outcomes_applied_total",
			Help: "The total number of game outcomes applied to matchup counters.",
		}, []string{"outcome"}),
		ProviderErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lanedex_provider_errors_total",
			Help: "The total number of failed calls to the match result provider.",
		}),
		ReconcileDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "lanedex_reconcile_duration_seconds",
			Help:    "The duration of individual reconciliation attempts.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lanedex_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.GamesIngested,
		s.ReconcileRuns,
		s.OutcomesApplied,
		s.ProviderErrors,
		s.ReconcileDuration,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncGamesIngested() {
	s.GamesIngested.Inc()
}

func (s *Service) IncReconcileRuns() {
	s.ReconcileRuns.Inc()
}

func (s *Service) IncOutcomesApplied(outcome string) {
	s.OutcomesApplied.WithLabelValues(outcome).Inc()
}

func (s *Service) IncProviderErrors() {
	s.ProviderErrors.Inc()
}

func (s *Service) ObserveReconcileDuration(duration float64) {
	s.ReconcileDuration.Observe(duration)
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
