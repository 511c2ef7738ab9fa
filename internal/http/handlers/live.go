package handlers

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/lanedex/lanedex/internal/champion"
	"github.com/lanedex/lanedex/internal/riot"
)

// livePlayer is one participant in a live game, decorated with catalog data
// when the champion is known.
type livePlayer struct {
	SummonerID string             `json:"summoner_id"`
	TeamID     int                `json:"team_id"`
	Champion   *champion.Champion `json:"champion,omitempty"`
	ChampionID int                `json:"champion_id"`
}

// liveResponse describes the caller's in-progress game. Opponents are the
// players on the other team.
type liveResponse struct {
	GameID        int64        `json:"game_id"`
	GameMode      string       `json:"game_mode"`
	GameStartTime int64        `json:"game_start_time"`
	Me            *livePlayer  `json:"me,omitempty"`
	Opponents     []livePlayer `json:"opponents"`
}

func LiveGameHandler(client riot.Client, catalog champion.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summonerID := r.URL.Query().Get("summoner_id")
		if summonerID == "" {
			http.Error(w, "Missing 'summoner_id' parameter", http.StatusBadRequest)
			return
		}
		region := r.URL.Query().Get("region")
		if region == "" {
			region = "NA"
		}

		game, err := client.CurrentGame(r.Context(), summonerID, region)
		if err != nil {
			switch {
			case errors.Is(err, riot.ErrNotFound):
				http.Error(w, "No active game", http.StatusNotFound)
			case errors.Is(err, riot.ErrUnavailable):
				http.Error(w, "Match provider unavailable", http.StatusServiceUnavailable)
			default:
				log.Error("Failed to fetch live game", "error", err, "summonerID", summonerID)
				http.Error(w, "Failed to fetch live game", http.StatusInternalServerError)
			}
			return
		}

		response := liveResponse{
			GameID:        game.GameID,
			GameMode:      game.GameMode,
			GameStartTime: game.GameStartTime,
			Opponents:     []livePlayer{},
		}

		myTeam := -1
		for _, p := range game.Participants {
			if p.SummonerID == summonerID {
				myTeam = p.TeamID
				break
			}
		}

		for _, p := range game.Participants {
			player := livePlayer{
				SummonerID: p.SummonerID,
				TeamID:     p.TeamID,
				ChampionID: p.ChampionID,
			}
			if champ, err := catalog.Lookup(p.ChampionID); err == nil {
				player.Champion = champ
			}
			switch {
			case p.SummonerID == summonerID:
				me := player
				response.Me = &me
			case p.TeamID != myTeam:
				response.Opponents = append(response.Opponents, player)
			}
		}

		writeJSON(w, http.StatusOK, response)
	}
}
