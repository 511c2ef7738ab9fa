package reconciler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lanedex/lanedex/internal/matchup"
	"github.com/lanedex/lanedex/internal/metrics"
	"github.com/lanedex/lanedex/internal/pubsub"
	"github.com/lanedex/lanedex/internal/riot"
)

// ErrIdentityNotFound is returned when the user's participant entry cannot be
// located in a finished game's data. This points at a correlation bug or data
// drift between the local record and the provider; retrying will not help.
var ErrIdentityNotFound = errors.New("player identity not found in game data")

// Reconciler resolves the outcome of a user's most recently ingested game
// against the match result provider. It holds no state of its own.
type Reconciler struct {
	store    matchup.Store
	provider riot.Client
	metrics  metrics.Metrics
	pubsub   pubsub.PubSubClient
}

// New creates a new Reconciler.
func New(store matchup.Store, provider riot.Client, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Reconciler {
	return &Reconciler{
		store:    store,
		provider: provider,
		metrics:  metrics,
		pubsub:   pubsub,
	}
}

// ReconcileLatest finds the user's most recently updated matchup and, if it
// has a pending game, asks the provider for the result and applies it at most
// once. The provider call happens before the conditional write; no store lock
// is held while the request is in flight.
//
// The returned record reflects the state after any mutation. A nil record
// with a non-matched Unknown result means the user has no matchups yet.
func (r *Reconciler) ReconcileLatest(ctx context.Context, userID int64, summonerID, region string) (*matchup.Record, matchup.ReconciliationResult, error) {
	start := time.Now()
	r.metrics.IncReconcileRuns()
	defer func() {
		r.metrics.ObserveReconcileDuration(time.Since(start).Seconds())
	}()

	record, err := r.store.FindMostRecentByUser(userID)
	if err != nil {
		return nil, matchup.ReconciliationResult{}, fmt.Errorf("failed to load latest matchup: %w", err)
	}
	if record == nil {
		// No matchups yet is a valid, expected state.
		log.Debug("No matchups recorded for user", "userID", userID)
		return nil, matchup.ReconciliationResult{Matched: false, Outcome: matchup.OutcomeUnknown}, nil
	}

	if record.PendingGames() <= 0 {
		log.Debug("Nothing pending for latest matchup", "recordID", record.ID)
		return record, matchup.ReconciliationResult{Matched: true, Outcome: matchup.OutcomePending}, nil
	}

	game, err := r.provider.FinishedGame(ctx, record.LastGameID, region)
	if err != nil {
		if errors.Is(err, riot.ErrNotFound) || errors.Is(err, riot.ErrInProgress) {
			log.Debug("Game not decided yet", "recordID", record.ID, "gameID", record.LastGameID)
			return record, matchup.ReconciliationResult{Matched: false, Outcome: matchup.OutcomePending}, nil
		}
		r.metrics.IncProviderErrors()
		return record, matchup.ReconciliationResult{}, fmt.Errorf("failed to fetch game result: %w", err)
	}

	outcome, err := resolveOutcome(game, summonerID)
	if err != nil {
		log.Error("Could not correlate user with game data", "recordID", record.ID, "gameID", record.LastGameID, "summonerID", summonerID, "error", err)
		return record, matchup.ReconciliationResult{}, err
	}

	applied, err := r.store.ApplyOutcomeOnce(record.ID, record.LastGameID, outcome)
	if err != nil {
		return record, matchup.ReconciliationResult{}, fmt.Errorf("failed to apply outcome: %w", err)
	}

	if applied {
		r.metrics.IncOutcomesApplied(string(outcome))
		if err := r.pubsub.SendMessage(pubsub.EventMatchupResolved, pubsub.ResolvedEvent{
			RecordID: record.ID,
			UserID:   userID,
			GameID:   record.LastGameID,
			Outcome:  string(outcome),
		}); err != nil {
			log.Error("Failed to publish resolved event", "error", err, "recordID", record.ID)
		}
	}

	// Re-read so the caller sees the post-apply counters. A replayed
	// reconciliation lands here too: the recomputed outcome is deterministic
	// for a finished game, so it is safe to report without a second mutation.
	if fresh, err := r.store.Get(record.ID); err == nil && fresh != nil {
		record = fresh
	}

	return record, matchup.ReconciliationResult{Matched: true, Outcome: outcome}, nil
}

// resolveOutcome determines whether the given summoner won the finished game.
func resolveOutcome(game *riot.FinishedGame, summonerID string) (matchup.Outcome, error) {
	winningTeam := -1
	for _, team := range game.Teams {
		if team.Won() {
			winningTeam = team.TeamID
			break
		}
	}
	if winningTeam == -1 {
		return "", fmt.Errorf("game %s has no winning team", strconv.FormatInt(game.GameID, 10))
	}

	participantID := -1
	for _, identity := range game.ParticipantIdentities {
		if identity.Player.SummonerID == summonerID {
			participantID = identity.ParticipantID
			break
		}
	}
	if participantID == -1 {
		return "", fmt.Errorf("%w: summoner %s", ErrIdentityNotFound, summonerID)
	}

	for _, participant := range game.Participants {
		if participant.ParticipantID == participantID {
			if participant.TeamID == winningTeam {
				return matchup.OutcomeWin, nil
			}
			return matchup.OutcomeLoss, nil
		}
	}
	return "", fmt.Errorf("%w: participant %d has no team entry", ErrIdentityNotFound, participantID)
}
