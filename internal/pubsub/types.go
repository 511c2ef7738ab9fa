package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	// EventReconcileMatchup asks the service to reconcile a user's latest
	// pending matchup.
	EventReconcileMatchup EventType = "reconcile-matchup"
	// EventMatchupResolved announces that a game outcome has been applied.
	EventMatchupResolved EventType = "matchup-resolved"
)

// ReconcileRequest is the payload for EventReconcileMatchup.
type ReconcileRequest struct {
	UserID     int64  `msgpack:"user_id"`
	SummonerID string `msgpack:"summoner_id"`
	Region     string `msgpack:"region"`
}

// ResolvedEvent is the payload for EventMatchupResolved.
type ResolvedEvent struct {
	RecordID string `msgpack:"record_id"`
	UserID   int64  `msgpack:"user_id"`
	GameID   string `msgpack:"game_id"`
	Outcome  string `msgpack:"outcome"`
}
