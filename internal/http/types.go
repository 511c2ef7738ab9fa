package http

import (
	"net/http"

	"github.com/lanedex/lanedex/internal/champion"
	"github.com/lanedex/lanedex/internal/config"
	"github.com/lanedex/lanedex/internal/ingest"
	"github.com/lanedex/lanedex/internal/matchup"
	"github.com/lanedex/lanedex/internal/metrics"
	"github.com/lanedex/lanedex/internal/pubsub"
	"github.com/lanedex/lanedex/internal/reconciler"
	"github.com/lanedex/lanedex/internal/riot"
)

type Server struct {
	Store          matchup.Store
	Catalog        champion.Catalog
	Syncer         *champion.Syncer
	RiotClient     riot.Client
	Ingest         *ingest.Service
	Reconciler     *reconciler.Reconciler
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
