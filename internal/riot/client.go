package riot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// APIClient is a Riot API client that implements the Client interface.
type APIClient struct {
	httpClient *http.Client
	apiKey     string
	// BaseURL overrides the per-region host when set. Used by tests.
	BaseURL string
}

// NewClient creates a new Riot API client.
func NewClient(apiKey string) *APIClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		apiKey:     apiKey,
	}
}

// Ensure APIClient implements the Client interface.
var _ Client = (*APIClient)(nil)

// platformHosts maps a user-facing region to the Riot platform routing value.
var platformHosts = map[string]string{
	"NA":   "na1",
	"EUW":  "euw1",
	"EUNE": "eun1",
	"KR":   "kr",
	"BR":   "br1",
	"JP":   "jp1",
	"LAN":  "la1",
	"LAS":  "la2",
	"OCE":  "oc1",
	"TR":   "tr1",
	"RU":   "ru",
}

func (c *APIClient) baseURL(region string) (string, error) {
	if c.BaseURL != "" {
		return c.BaseURL, nil
	}
	host, ok := platformHosts[strings.ToUpper(region)]
	if !ok {
		return "", fmt.Errorf("unknown region %q", region)
	}
	return fmt.Sprintf("https://%s.api.riotgames.com", host), nil
}

// CurrentGame fetches the summoner's in-progress game from the spectator endpoint.
func (c *APIClient) CurrentGame(ctx context.Context, summonerID, region string) (*CurrentGameInfo, error) {
	base, err := c.baseURL(region)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/lol/spectator/v4/active-games/by-summoner/%s", base, summonerID)

	var info CurrentGameInfo
	if err := c.get(ctx, url, &info); err != nil {
		return nil, err
	}
	log.Debug("Fetched current game", "summonerID", summonerID, "gameID", info.GameID, "mode", info.GameMode)
	return &info, nil
}

// FinishedGame fetches the final data for a concluded game. The provider
// answers 404 both for unknown games and games it has not published yet;
// either way the caller sees ErrNotFound and should retry later.
func (c *APIClient) FinishedGame(ctx context.Context, gameID, region string) (*FinishedGame, error) {
	base, err := c.baseURL(region)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/lol/match/v4/matches/%s", base, gameID)

	var game FinishedGame
	if err := c.get(ctx, url, &game); err != nil {
		return nil, err
	}

	// A published game always carries a decided team. Anything else is a game
	// the provider knows about but has not settled.
	decided := false
	for _, team := range game.Teams {
		if team.Won() {
			decided = true
			break
		}
	}
	if !decided {
		return nil, fmt.Errorf("%w: game %s", ErrInProgress, gameID)
	}

	log.Debug("Fetched finished game", "gameID", gameID, "teams", len(game.Teams), "participants", len(game.Participants))
	return &game, nil
}

func (c *APIClient) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Riot-Token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		body, _ := io.ReadAll(resp.Body)
		log.Warn("Riot API unavailable", "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	default:
		body, _ := io.ReadAll(resp.Body)
		log.Error("Unexpected Riot API status", "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
