package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/lanedex/lanedex/internal/champion"
	"github.com/lanedex/lanedex/internal/matchup"
	"github.com/lanedex/lanedex/internal/reconciler"
	"github.com/lanedex/lanedex/internal/riot"
)

// latestResponse is the payload for GET /matchups/latest. Record is null when
// the user has no matchups yet.
type latestResponse struct {
	Record *matchup.Record              `json:"record"`
	Result matchup.ReconciliationResult `json:"result"`
}

func LatestMatchupHandler(rec *reconciler.Reconciler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDParam(r)
		if !ok {
			http.Error(w, "Missing or invalid 'user_id' parameter", http.StatusBadRequest)
			return
		}
		summonerID := r.URL.Query().Get("summoner_id")
		if summonerID == "" {
			http.Error(w, "Missing 'summoner_id' parameter", http.StatusBadRequest)
			return
		}
		region := r.URL.Query().Get("region")
		if region == "" {
			region = "NA"
		}

		record, result, err := rec.ReconcileLatest(r.Context(), userID, summonerID, region)
		if err != nil {
			switch {
			case errors.Is(err, riot.ErrUnavailable):
				http.Error(w, "Match provider unavailable", http.StatusServiceUnavailable)
			case errors.Is(err, reconciler.ErrIdentityNotFound):
				http.Error(w, "Player not found in game data", http.StatusBadGateway)
			default:
				log.Error("Failed to reconcile latest matchup", "error", err, "userID", userID)
				http.Error(w, "Failed to reconcile latest matchup", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, latestResponse{Record: record, Result: result})
	}
}

func ListMatchupsHandler(store matchup.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDParam(r)
		if !ok {
			http.Error(w, "Missing or invalid 'user_id' parameter", http.StatusBadRequest)
			return
		}
		championID, err := strconv.Atoi(r.URL.Query().Get("champion_id"))
		if err != nil {
			http.Error(w, "Missing or invalid 'champion_id' parameter", http.StatusBadRequest)
			return
		}

		records, err := store.ListByChampion(userID, championID)
		if err != nil {
			log.Error("Failed to list matchups", "error", err, "userID", userID, "championID", championID)
			http.Error(w, "Failed to list matchups", http.StatusInternalServerError)
			return
		}
		if records == nil {
			records = []*matchup.Record{}
		}

		writeJSON(w, http.StatusOK, records)
	}
}

// matchupDetail is a record decorated with catalog data for both champions.
type matchupDetail struct {
	matchup.Record
	Champion *champion.Champion `json:"champion,omitempty"`
	Opponent *champion.Champion `json:"opponent,omitempty"`
}

func GetMatchupHandler(store matchup.Store, catalog champion.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recordID := r.PathValue("id")
		userID, ok := userIDParam(r)
		if !ok {
			http.Error(w, "Missing or invalid 'user_id' parameter", http.StatusBadRequest)
			return
		}

		record, err := store.Get(recordID)
		if err != nil {
			log.Error("Failed to load matchup", "error", err, "recordID", recordID)
			http.Error(w, "Failed to load matchup", http.StatusInternalServerError)
			return
		}
		// A record belonging to another user is indistinguishable from a
		// missing one.
		if record == nil || record.UserID != userID {
			http.Error(w, "Matchup not found", http.StatusNotFound)
			return
		}

		detail := matchupDetail{Record: *record}
		if champ, err := catalog.Lookup(record.ChampionID); err == nil {
			detail.Champion = champ
		}
		if opp, err := catalog.Lookup(record.OpponentID); err == nil {
			detail.Opponent = opp
		}

		writeJSON(w, http.StatusOK, detail)
	}
}

func SummaryHandler(store matchup.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDParam(r)
		if !ok {
			http.Error(w, "Missing or invalid 'user_id' parameter", http.StatusBadRequest)
			return
		}

		summary, err := store.Summary(userID)
		if err != nil {
			log.Error("Failed to load summary", "error", err, "userID", userID)
			http.Error(w, "Failed to load summary", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}
