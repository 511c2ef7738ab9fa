package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/lanedex/lanedex/internal/champion"
)

func PlayedChampionsHandler(catalog champion.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDParam(r)
		if !ok {
			http.Error(w, "Missing or invalid 'user_id' parameter", http.StatusBadRequest)
			return
		}

		champions, err := catalog.PlayedByUser(userID)
		if err != nil {
			log.Error("Failed to list played champions", "error", err, "userID", userID)
			http.Error(w, "Failed to list played champions", http.StatusInternalServerError)
			return
		}
		if champions == nil {
			champions = []champion.PlayedChampion{}
		}

		writeJSON(w, http.StatusOK, champions)
	}
}

func SyncChampionsHandler(syncer *champion.Syncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := syncer.Sync(r.Context())
		if err != nil {
			log.Error("Failed to sync champion catalog", "error", err)
			http.Error(w, "Failed to sync champion catalog", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]int{"synced": count})
	}
}
