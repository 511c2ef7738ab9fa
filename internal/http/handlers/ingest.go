package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/lanedex/lanedex/internal/ingest"
	"github.com/lanedex/lanedex/internal/matchup"
)

func IngestMatchupHandler(svc *ingest.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params ingest.Params
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			log.Error("Failed to decode ingest request", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		recordID, err := svc.IngestGame(params)
		if err != nil {
			switch {
			case errors.Is(err, matchup.ErrInvalidLane),
				errors.Is(err, ingest.ErrInvalidChampion),
				errors.Is(err, ingest.ErrEmptyGameID):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				log.Error("Failed to ingest game", "error", err)
				http.Error(w, "Failed to ingest game", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, map[string]string{"id": recordID})
	}
}
