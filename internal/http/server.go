package http

import (
	"net/http"

	"github.com/lanedex/lanedex/internal/champion"
	"github.com/lanedex/lanedex/internal/config"
	"github.com/lanedex/lanedex/internal/http/handlers"
	"github.com/lanedex/lanedex/internal/ingest"
	"github.com/lanedex/lanedex/internal/matchup"
	"github.com/lanedex/lanedex/internal/metrics"
	"github.com/lanedex/lanedex/internal/pubsub"
	"github.com/lanedex/lanedex/internal/reconciler"
	"github.com/lanedex/lanedex/internal/riot"
)

func NewServer(
	store matchup.Store,
	catalog champion.Catalog,
	syncer *champion.Syncer,
	riotClient riot.Client,
	ingestSvc *ingest.Service,
	rec *reconciler.Reconciler,
	metricsSvc metrics.Metrics,
	metricsHandler http.Handler,
	cfg config.Config,
	pubsubClient pubsub.PubSubClient,
) *Server {
	server := &Server{
		Store:          store,
		Catalog:        catalog,
		Syncer:         syncer,
		RiotClient:     riotClient,
		Ingest:         ingestSvc,
		Reconciler:     rec,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
		pubsub:         pubsubClient,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(handlers.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("POST /matchups", Chain(handlers.IngestMatchupHandler(s.Ingest), paramsMiddleware))
	s.Router.Handle("GET /matchups", Chain(handlers.ListMatchupsHandler(s.Store), paramsMiddleware))
	s.Router.Handle("GET /matchups/latest", Chain(handlers.LatestMatchupHandler(s.Reconciler), paramsMiddleware))
	s.Router.Handle("GET /matchups/{id}", Chain(handlers.GetMatchupHandler(s.Store, s.Catalog), paramsMiddleware))
	s.Router.Handle("GET /champions/played", Chain(handlers.PlayedChampionsHandler(s.Catalog), paramsMiddleware))
	s.Router.Handle("POST /champions/sync", Chain(handlers.SyncChampionsHandler(s.Syncer), paramsMiddleware))
	s.Router.Handle("GET /summary", Chain(handlers.SummaryHandler(s.Store), paramsMiddleware))
	s.Router.Handle("GET /live", Chain(handlers.LiveGameHandler(s.RiotClient, s.Catalog), paramsMiddleware))
	s.Router.Handle("POST /pubsub/reconcile", Chain(handlers.ReconcilePubSubHandler(s.Reconciler, s.pubsub), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
