package riot

import "errors"

var (
	// ErrNotFound is returned when the requested game does not exist (or has
	// not been published by the provider yet).
	ErrNotFound = errors.New("game not found")
	// ErrInProgress is returned when a game exists but has not concluded.
	ErrInProgress = errors.New("game still in progress")
	// ErrUnavailable is returned when the provider cannot be reached or
	// answers with a server-side failure. Callers may retry.
	ErrUnavailable = errors.New("riot api unavailable")
)

// CurrentGameInfo describes a live game as reported by the spectator endpoint.
type CurrentGameInfo struct {
	GameID        int64                    `json:"gameId"`
	GameMode      string                   `json:"gameMode"`
	GameStartTime int64                    `json:"gameStartTime"`
	Participants  []CurrentGameParticipant `json:"participants"`
}

// CurrentGameParticipant is one player in a live game.
type CurrentGameParticipant struct {
	SummonerID string `json:"summonerId"`
	ChampionID int    `json:"championId"`
	TeamID     int    `json:"teamId"`
}

// FinishedGame describes a concluded game: which team won, which team each
// participant was on, and which player each participant identity maps to.
type FinishedGame struct {
	GameID                int64                 `json:"gameId"`
	Teams                 []Team                `json:"teams"`
	Participants          []Participant         `json:"participants"`
	ParticipantIdentities []ParticipantIdentity `json:"participantIdentities"`
}

// Team is one side of a finished game. Win carries the provider's literal
// "Win"/"Fail" marker.
type Team struct {
	TeamID int    `json:"teamId"`
	Win    string `json:"win"`
}

// Won reports whether this team won the game.
func (t Team) Won() bool {
	return t.Win == "Win"
}

// Participant is one slot in a finished game.
type Participant struct {
	ParticipantID int `json:"participantId"`
	TeamID        int `json:"teamId"`
	ChampionID    int `json:"championId"`
}

// ParticipantIdentity maps a participant slot to a player.
type ParticipantIdentity struct {
	ParticipantID int            `json:"participantId"`
	Player        PlayerIdentity `json:"player"`
}

// PlayerIdentity is the external identity of a player in a finished game.
type PlayerIdentity struct {
	SummonerID   string `json:"summonerId"`
	SummonerName string `json:"summonerName"`
}
