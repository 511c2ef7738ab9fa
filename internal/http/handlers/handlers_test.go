package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lanedex/lanedex/internal/champion"
	"github.com/lanedex/lanedex/internal/http/handlers"
	"github.com/lanedex/lanedex/internal/ingest"
	"github.com/lanedex/lanedex/internal/matchup"
	"github.com/lanedex/lanedex/internal/metrics"
	"github.com/lanedex/lanedex/internal/pubsub"
	"github.com/lanedex/lanedex/internal/reconciler"
	"github.com/lanedex/lanedex/internal/riot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

// wonGame builds finished-game data where summoner s1 is on team 100 and the
// given flag decides whether that team won.
func wonGame(won bool) *riot.FinishedGame {
	win, fail := "Fail", "Win"
	if won {
		win, fail = "Win", "Fail"
	}
	return &riot.FinishedGame{
		GameID: 500,
		Teams: []riot.Team{
			{TeamID: 100, Win: win},
			{TeamID: 200, Win: fail},
		},
		Participants: []riot.Participant{
			{ParticipantID: 1, TeamID: 100, ChampionID: 1},
			{ParticipantID: 2, TeamID: 200, ChampionID: 2},
		},
		ParticipantIdentities: []riot.ParticipantIdentity{
			{ParticipantID: 1, Player: riot.PlayerIdentity{SummonerID: "s1"}},
			{ParticipantID: 2, Player: riot.PlayerIdentity{SummonerID: "s2"}},
		},
	}
}

func TestHealthCheckHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	handlers.HealthCheckHandler().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK!", rr.Body.String())
}

func TestIngestMatchupHandler(t *testing.T) {
	newService := func(store *matchup.MockStore) *ingest.Service {
		return ingest.New(store, champion.NewMock(), metrics.NewMock())
	}

	t.Run("records a game and returns the record id", func(t *testing.T) {
		store := matchup.NewMock()
		store.UpsertIngestFunc = func(key matchup.Key, gameID string) (*matchup.Record, error) {
			return &matchup.Record{ID: "rec-1"}, nil
		}
		handler := handlers.IngestMatchupHandler(newService(store))

		body := `{"user_id":7,"champion_id":1,"opponent_id":2,"lane":"mid","game_id":"g100"}`
		req := httptest.NewRequest(http.MethodPost, "/matchups", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "rec-1", resp["id"])
		require.Len(t, store.UpsertIngestCalls, 1)
		assert.Equal(t, "g100", store.UpsertIngestCalls[0].GameID)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		handler := handlers.IngestMatchupHandler(newService(matchup.NewMock()))

		req := httptest.NewRequest(http.MethodPost, "/matchups", strings.NewReader("{not json"))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects an unknown lane", func(t *testing.T) {
		store := matchup.NewMock()
		handler := handlers.IngestMatchupHandler(newService(store))

		body := `{"user_id":7,"champion_id":1,"opponent_id":2,"lane":"roaming","game_id":"g100"}`
		req := httptest.NewRequest(http.MethodPost, "/matchups", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Empty(t, store.UpsertIngestCalls)
	})

	t.Run("rejects an unknown champion", func(t *testing.T) {
		catalog := champion.NewMock()
		catalog.LookupFunc = func(id int) (*champion.Champion, error) {
			return nil, champion.ErrNotFound
		}
		store := matchup.NewMock()
		handler := handlers.IngestMatchupHandler(ingest.New(store, catalog, metrics.NewMock()))

		body := `{"user_id":7,"champion_id":999,"opponent_id":2,"lane":"mid","game_id":"g100"}`
		req := httptest.NewRequest(http.MethodPost, "/matchups", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Empty(t, store.UpsertIngestCalls)
	})

	t.Run("maps store failures to 500", func(t *testing.T) {
		store := matchup.NewMock()
		store.UpsertIngestFunc = func(key matchup.Key, gameID string) (*matchup.Record, error) {
			return nil, fmt.Errorf("db is down")
		}
		handler := handlers.IngestMatchupHandler(newService(store))

		body := `{"user_id":7,"champion_id":1,"opponent_id":2,"lane":"mid","game_id":"g100"}`
		req := httptest.NewRequest(http.MethodPost, "/matchups", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestLatestMatchupHandler(t *testing.T) {
	newReconciler := func(store *matchup.MockStore, provider *riot.MockClient) *reconciler.Reconciler {
		return reconciler.New(store, provider, metrics.NewMock(), pubsub.NewMock("test-project"))
	}

	t.Run("requires user_id and summoner_id", func(t *testing.T) {
		handler := handlers.LatestMatchupHandler(newReconciler(matchup.NewMock(), riot.NewMock()))

		req := httptest.NewRequest(http.MethodGet, "/matchups/latest?summoner_id=s1", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		req = httptest.NewRequest(http.MethodGet, "/matchups/latest?user_id=7", nil)
		rr = httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("returns a null record when the user has no matchups", func(t *testing.T) {
		handler := handlers.LatestMatchupHandler(newReconciler(matchup.NewMock(), riot.NewMock()))

		req := httptest.NewRequest(http.MethodGet, "/matchups/latest?user_id=7&summoner_id=s1", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp struct {
			Record *matchup.Record              `json:"record"`
			Result matchup.ReconciliationResult `json:"result"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Nil(t, resp.Record)
		assert.False(t, resp.Result.Matched)
		assert.Equal(t, matchup.OutcomeUnknown, resp.Result.Outcome)
	})

	t.Run("resolves a finished game and returns fresh counters", func(t *testing.T) {
		store := matchup.NewMock()
		store.FindMostRecentByUserFunc = func(userID int64) (*matchup.Record, error) {
			return &matchup.Record{ID: "rec-1", UserID: 7, GamesPlayed: 1, LastGameID: "500"}, nil
		}
		store.GetFunc = func(recordID string) (*matchup.Record, error) {
			return &matchup.Record{ID: "rec-1", UserID: 7, GamesPlayed: 1, GamesWon: 1, LastGameID: "500", LastResolvedGameID: "500"}, nil
		}
		provider := riot.NewMock()
		provider.FinishedGameFunc = func(ctx context.Context, gameID, region string) (*riot.FinishedGame, error) {
			return wonGame(true), nil
		}
		handler := handlers.LatestMatchupHandler(newReconciler(store, provider))

		req := httptest.NewRequest(http.MethodGet, "/matchups/latest?user_id=7&summoner_id=s1", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp struct {
			Record *matchup.Record              `json:"record"`
			Result matchup.ReconciliationResult `json:"result"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.NotNil(t, resp.Record)
		assert.Equal(t, 1, resp.Record.GamesWon)
		assert.True(t, resp.Result.Matched)
		assert.Equal(t, matchup.OutcomeWin, resp.Result.Outcome)
	})

	t.Run("maps provider outages to 503", func(t *testing.T) {
		store := matchup.NewMock()
		store.FindMostRecentByUserFunc = func(userID int64) (*matchup.Record, error) {
			return &matchup.Record{ID: "rec-1", UserID: 7, GamesPlayed: 1, LastGameID: "500"}, nil
		}
		provider := riot.NewMock()
		provider.FinishedGameFunc = func(ctx context.Context, gameID, region string) (*riot.FinishedGame, error) {
			return nil, riot.ErrUnavailable
		}
		handler := handlers.LatestMatchupHandler(newReconciler(store, provider))

		req := httptest.NewRequest(http.MethodGet, "/matchups/latest?user_id=7&summoner_id=s1", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})

	t.Run("maps an uncorrelated summoner to 502", func(t *testing.T) {
		store := matchup.NewMock()
		store.FindMostRecentByUserFunc = func(userID int64) (*matchup.Record, error) {
			return &matchup.Record{ID: "rec-1", UserID: 7, GamesPlayed: 1, LastGameID: "500"}, nil
		}
		provider := riot.NewMock()
		provider.FinishedGameFunc = func(ctx context.Context, gameID, region string) (*riot.FinishedGame, error) {
			return wonGame(true), nil
		}
		handler := handlers.LatestMatchupHandler(newReconciler(store, provider))

		req := httptest.NewRequest(http.MethodGet, "/matchups/latest?user_id=7&summoner_id=stranger", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadGateway, rr.Code)
	})
}

func TestListMatchupsHandler(t *testing.T) {
	t.Run("requires user_id and champion_id", func(t *testing.T) {
		handler := handlers.ListMatchupsHandler(matchup.NewMock())

		req := httptest.NewRequest(http.MethodGet, "/matchups?champion_id=1", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		req = httptest.NewRequest(http.MethodGet, "/matchups?user_id=7", nil)
		rr = httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("returns the user's matchups for a champion", func(t *testing.T) {
		store := matchup.NewMock()
		store.ListByChampionFunc = func(userID int64, championID int) ([]*matchup.Record, error) {
			return []*matchup.Record{
				{ID: "rec-1", UserID: userID, ChampionID: championID, OpponentID: 2, Lane: matchup.LaneMid},
			}, nil
		}
		handler := handlers.ListMatchupsHandler(store)

		req := httptest.NewRequest(http.MethodGet, "/matchups?user_id=7&champion_id=1", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var records []*matchup.Record
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &records))
		require.Len(t, records, 1)
		assert.Equal(t, "rec-1", records[0].ID)
		require.Len(t, store.ListByChampionCalls, 1)
		assert.Equal(t, int64(7), store.ListByChampionCalls[0].UserID)
	})

	t.Run("returns an empty list rather than null", func(t *testing.T) {
		handler := handlers.ListMatchupsHandler(matchup.NewMock())

		req := httptest.NewRequest(http.MethodGet, "/matchups?user_id=7&champion_id=1", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "[]", strings.TrimSpace(rr.Body.String()))
	})
}

func TestGetMatchupHandler(t *testing.T) {
	// The handler reads the id from the route pattern, so requests go through
	// a mux.
	newMux := func(store matchup.Store, catalog champion.Catalog) *http.ServeMux {
		mux := http.NewServeMux()
		mux.Handle("GET /matchups/{id}", handlers.GetMatchupHandler(store, catalog))
		return mux
	}

	t.Run("returns the record decorated with champion data", func(t *testing.T) {
		store := matchup.NewMock()
		store.GetFunc = func(recordID string) (*matchup.Record, error) {
			return &matchup.Record{ID: recordID, UserID: 7, ChampionID: 1, OpponentID: 2, Lane: matchup.LaneMid}, nil
		}
		catalog := champion.NewMock()
		catalog.LookupFunc = func(id int) (*champion.Champion, error) {
			return &champion.Champion{ID: id, Name: fmt.Sprintf("Champ%d", id)}, nil
		}
		mux := newMux(store, catalog)

		req := httptest.NewRequest(http.MethodGet, "/matchups/rec-1?user_id=7", nil)
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var detail struct {
			matchup.Record
			Champion *champion.Champion `json:"champion"`
			Opponent *champion.Champion `json:"opponent"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &detail))
		assert.Equal(t, "rec-1", detail.ID)
		require.NotNil(t, detail.Champion)
		assert.Equal(t, "Champ1", detail.Champion.Name)
		require.NotNil(t, detail.Opponent)
		assert.Equal(t, "Champ2", detail.Opponent.Name)
	})

	t.Run("returns 404 for a missing record", func(t *testing.T) {
		mux := newMux(matchup.NewMock(), champion.NewMock())

		req := httptest.NewRequest(http.MethodGet, "/matchups/nope?user_id=7", nil)
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("returns 404 for another user's record", func(t *testing.T) {
		store := matchup.NewMock()
		store.GetFunc = func(recordID string) (*matchup.Record, error) {
			return &matchup.Record{ID: recordID, UserID: 99}, nil
		}
		mux := newMux(store, champion.NewMock())

		req := httptest.NewRequest(http.MethodGet, "/matchups/rec-1?user_id=7", nil)
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestSummaryHandler(t *testing.T) {
	store := matchup.NewMock()
	store.SummaryFunc = func(userID int64) (*matchup.Summary, error) {
		return &matchup.Summary{Matchups: 3, GamesPlayed: 12}, nil
	}
	handler := handlers.SummaryHandler(store)

	req := httptest.NewRequest(http.MethodGet, "/summary?user_id=7", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var summary matchup.Summary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summary))
	assert.Equal(t, 3, summary.Matchups)
	assert.Equal(t, 12, summary.GamesPlayed)
}

func TestPlayedChampionsHandler(t *testing.T) {
	catalog := champion.NewMock()
	catalog.PlayedByUserFunc = func(userID int64) ([]champion.PlayedChampion, error) {
		return []champion.PlayedChampion{
			{Champion: champion.Champion{ID: 1, Name: "Aatrox"}, HasMatchups: true},
			{Champion: champion.Champion{ID: 2, Name: "Ahri"}, HasMatchups: false},
		}, nil
	}
	handler := handlers.PlayedChampionsHandler(catalog)

	req := httptest.NewRequest(http.MethodGet, "/champions/played?user_id=7", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var champions []champion.PlayedChampion
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &champions))
	require.Len(t, champions, 2)
	assert.True(t, champions[0].HasMatchups)
	assert.False(t, champions[1].HasMatchups)
}

func TestLiveGameHandler(t *testing.T) {
	t.Run("requires summoner_id", func(t *testing.T) {
		handler := handlers.LiveGameHandler(riot.NewMock(), champion.NewMock())

		req := httptest.NewRequest(http.MethodGet, "/live", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("returns 404 when no game is running", func(t *testing.T) {
		handler := handlers.LiveGameHandler(riot.NewMock(), champion.NewMock())

		req := httptest.NewRequest(http.MethodGet, "/live?summoner_id=s1", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("splits the caller from the opposing team", func(t *testing.T) {
		client := riot.NewMock()
		client.CurrentGameFunc = func(ctx context.Context, summonerID, region string) (*riot.CurrentGameInfo, error) {
			return &riot.CurrentGameInfo{
				GameID:   900,
				GameMode: "CLASSIC",
				Participants: []riot.CurrentGameParticipant{
					{SummonerID: "s1", ChampionID: 1, TeamID: 100},
					{SummonerID: "ally", ChampionID: 3, TeamID: 100},
					{SummonerID: "s2", ChampionID: 2, TeamID: 200},
				},
			}, nil
		}
		handler := handlers.LiveGameHandler(client, champion.NewMock())

		req := httptest.NewRequest(http.MethodGet, "/live?summoner_id=s1", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp struct {
			GameID    int64 `json:"game_id"`
			Me        *struct {
				SummonerID string `json:"summoner_id"`
				ChampionID int    `json:"champion_id"`
			} `json:"me"`
			Opponents []struct {
				SummonerID string `json:"summoner_id"`
			} `json:"opponents"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, int64(900), resp.GameID)
		require.NotNil(t, resp.Me)
		assert.Equal(t, "s1", resp.Me.SummonerID)
		require.Len(t, resp.Opponents, 1)
		assert.Equal(t, "s2", resp.Opponents[0].SummonerID)
	})
}

func TestSyncChampionsHandler(t *testing.T) {
	ddragon := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/versions.json":
			fmt.Fprint(w, `["14.1.1","13.24.1"]`)
		case "/cdn/14.1.1/data/en_US/champion.json":
			fmt.Fprint(w, `{"data":{"Aatrox":{"key":"266","name":"Aatrox","image":{"full":"Aatrox.png"}}}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer ddragon.Close()

	catalog := champion.NewMock()
	handler := handlers.SyncChampionsHandler(champion.NewSyncer(catalog, ddragon.URL))

	req := httptest.NewRequest(http.MethodPost, "/champions/sync", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]int
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp["synced"])
	require.Len(t, catalog.UpsertCalls, 1)
}

func TestReconcilePubSubHandler(t *testing.T) {
	newRequest := func(t *testing.T, payload pubsub.ReconcileRequest) *http.Request {
		t.Helper()
		data, err := msgpack.Marshal(payload)
		require.NoError(t, err)
		envelope := map[string]any{
			"subscription": "projects/test/subscriptions/reconcile",
			"message":      map[string]any{"messageId": "m1", "data": data},
		}
		body, err := json.Marshal(envelope)
		require.NoError(t, err)
		return httptest.NewRequest(http.MethodPost, "/pubsub/reconcile", strings.NewReader(string(body)))
	}

	t.Run("decodes the push envelope and reconciles", func(t *testing.T) {
		store := matchup.NewMock()
		rec := reconciler.New(store, riot.NewMock(), metrics.NewMock(), pubsub.NewMock("test-project"))
		handler := handlers.ReconcilePubSubHandler(rec, pubsub.NewMock("test-project"))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, newRequest(t, pubsub.ReconcileRequest{UserID: 7, SummonerID: "s1", Region: "NA"}))

		require.Equal(t, http.StatusOK, rr.Code)
		require.Len(t, store.FindMostRecentByUserCalls, 1)
		assert.Equal(t, int64(7), store.FindMostRecentByUserCalls[0])
	})

	t.Run("rejects a malformed envelope", func(t *testing.T) {
		rec := reconciler.New(matchup.NewMock(), riot.NewMock(), metrics.NewMock(), pubsub.NewMock("test-project"))
		handler := handlers.ReconcilePubSubHandler(rec, pubsub.NewMock("test-project"))

		req := httptest.NewRequest(http.MethodPost, "/pubsub/reconcile", strings.NewReader("{broken"))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("returns 500 so failed deliveries are retried", func(t *testing.T) {
		store := matchup.NewMock()
		store.FindMostRecentByUserFunc = func(userID int64) (*matchup.Record, error) {
			return nil, fmt.Errorf("db is down")
		}
		rec := reconciler.New(store, riot.NewMock(), metrics.NewMock(), pubsub.NewMock("test-project"))
		handler := handlers.ReconcilePubSubHandler(rec, pubsub.NewMock("test-project"))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, newRequest(t, pubsub.ReconcileRequest{UserID: 7, SummonerID: "s1", Region: "NA"}))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
