package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	userID     string
	summonerID string
	region     string
	championID string
	opponentID string
	lane       string
	gameID     string
)

func init() {
	ingestCmd.Flags().StringVar(&userID, "user", "", "The user id the game belongs to")
	ingestCmd.Flags().StringVar(&championID, "champion", "", "The champion played")
	ingestCmd.Flags().StringVar(&opponentID, "opponent", "", "The opposing champion")
	ingestCmd.Flags().StringVar(&lane, "lane", "", "The lane the matchup was played in")
	ingestCmd.Flags().StringVar(&gameID, "game", "", "The provider's game id")
	ingestCmd.MarkFlagRequired("user")
	ingestCmd.MarkFlagRequired("champion")
	ingestCmd.MarkFlagRequired("opponent")
	ingestCmd.MarkFlagRequired("lane")
	ingestCmd.MarkFlagRequired("game")

	latestCmd.Flags().StringVar(&userID, "user", "", "The user id to reconcile for")
	latestCmd.Flags().StringVar(&summonerID, "summoner", "", "The summoner id to correlate with game data")
	latestCmd.Flags().StringVar(&region, "region", "NA", "The platform region")
	latestCmd.MarkFlagRequired("user")
	latestCmd.MarkFlagRequired("summoner")

	summaryCmd.Flags().StringVar(&userID, "user", "", "The user id to summarize")
	summaryCmd.MarkFlagRequired("user")

	matchupsCmd.Flags().StringVar(&userID, "user", "", "The user id to list matchups for")
	matchupsCmd.Flags().StringVar(&championID, "champion", "", "The champion id to list matchups for")
	matchupsCmd.MarkFlagRequired("user")
	matchupsCmd.MarkFlagRequired("champion")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(latestCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(matchupsCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Record a played game into its matchup",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := strconv.ParseInt(userID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user id: %w", err)
		}
		champ, err := strconv.Atoi(championID)
		if err != nil {
			return fmt.Errorf("invalid champion id: %w", err)
		}
		opp, err := strconv.Atoi(opponentID)
		if err != nil {
			return fmt.Errorf("invalid opponent id: %w", err)
		}

		payload, err := json.Marshal(map[string]any{
			"user_id":     user,
			"champion_id": champ,
			"opponent_id": opp,
			"lane":        lane,
			"game_id":     gameID,
		})
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		return performPostRequestBody("/matchups", payload)
	},
}

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Reconcile and show the user's latest matchup",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		query.Set("user_id", userID)
		query.Set("summoner_id", summonerID)
		query.Set("region", region)
		return performGetRequest("/matchups/latest?" + query.Encode())
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the user's matchup and game counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		query.Set("user_id", userID)
		return performGetRequest("/summary?" + query.Encode())
	},
}

var matchupsCmd = &cobra.Command{
	Use:   "matchups",
	Short: "List the user's matchups on a champion",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		query.Set("user_id", userID)
		query.Set("champion_id", championID)
		return performGetRequest("/matchups?" + query.Encode())
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the champion catalog from Data Dragon",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/champions/sync")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Post(url, "application/json", nil)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequestBody(endpoint string, payload []byte) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
