package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/lanedex/lanedex/internal/pubsub"
	"github.com/lanedex/lanedex/internal/reconciler"
)

// pushRequest is the envelope Google Pub/Sub wraps around a push delivery.
// Message.Data is base64-decoded by encoding/json into the raw msgpack bytes.
type pushRequest struct {
	Subscription string `json:"subscription"`
	Message      struct {
		ID   string `json:"messageId"`
		Data []byte `json:"data"`
	} `json:"message"`
}

func ReconcilePubSubHandler(rec *reconciler.Reconciler, client pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var push pushRequest
		if err := json.NewDecoder(r.Body).Decode(&push); err != nil {
			log.Error("Failed to decode push envelope", "error", err)
			http.Error(w, "Invalid push envelope", http.StatusBadRequest)
			return
		}

		var req pubsub.ReconcileRequest
		if err := client.ProcessMessage(push.Message.Data, &req); err != nil {
			log.Error("Failed to decode reconcile payload", "error", err, "messageID", push.Message.ID)
			http.Error(w, "Invalid reconcile payload", http.StatusBadRequest)
			return
		}

		log.Info("Processing reconcile request", "userID", req.UserID, "messageID", push.Message.ID)

		_, result, err := rec.ReconcileLatest(r.Context(), req.UserID, req.SummonerID, req.Region)
		if err != nil {
			// Non-2xx makes Pub/Sub redeliver; the conditional write keeps the
			// retry from double-counting.
			log.Error("Failed to reconcile from push", "error", err, "userID", req.UserID)
			http.Error(w, "Failed to reconcile", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}
