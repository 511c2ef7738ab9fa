package main

import (
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

var lanes = []string{"top", "jungle", "mid", "bottom", "support"}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	// Connect directly to the primary database
	dbURL := fmt.Sprintf("%s?authToken=%s", cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		log.Fatalf("Failed to open primary database: %s", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to primary database: %s", err)
	}

	log.Info("Successfully connected to the primary database.")

	// A small champion pool to satisfy the foreign keys
	champions := map[int]string{
		266: "Aatrox",
		103: "Ahri",
		84:  "Akali",
		12:  "Alistar",
		1:   "Annie",
		238: "Zed",
	}
	championIDs := make([]int, 0, len(champions))
	for id, name := range champions {
		if _, err := db.Exec("INSERT OR IGNORE INTO champions (id, name) VALUES (?, ?)", id, name); err != nil {
			log.Fatalf("Failed to insert champion %s: %s", name, err)
		}
		championIDs = append(championIDs, id)
	}
	log.Info("Ensured seed champions exist.")

	const batchSize = 100
	const numMatchups = 5000

	log.Info("Preparing to insert dummy matchups...", "total", numMatchups, "batch_size", batchSize)
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	valueStrings := make([]string, 0, batchSize)
	valueArgs := make([]interface{}, 0, batchSize*11)

	for i := 0; i < numMatchups; i++ {
		championID := championIDs[rand.Intn(len(championIDs))]
		opponentID := championIDs[rand.Intn(len(championIDs))]
		for opponentID == championID {
			opponentID = championIDs[rand.Intn(len(championIDs))]
		}

		played := 1 + rand.Intn(20)
		won := rand.Intn(played + 1)
		lost := rand.Intn(played - won + 1)
		updatedAt := time.Now().Add(-time.Duration(rand.Intn(365*24)) * time.Hour)

		valueStrings = append(valueStrings, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		valueArgs = append(valueArgs,
			uuid.NewString(),
			int64(i), // one user per matchup keeps the unique key happy
			championID,
			opponentID,
			lanes[rand.Intn(len(lanes))],
			played,
			won,
			lost,
			fmt.Sprintf("seed-game-%d", i),
			nil, // last_resolved_game_id
			updatedAt.Unix(),
		)

		if (i+1)%batchSize == 0 || (i+1) == numMatchups {
			stmt := fmt.Sprintf(`
				INSERT INTO matchups (id, user_id, champion_id, opponent_id, lane,
					games_played, games_won, games_lost, last_game_id, last_resolved_game_id, updated_at)
				VALUES %s;`, strings.Join(valueStrings, ","))

			_, err := tx.Exec(stmt, valueArgs...)
			if err != nil {
				tx.Rollback()
				log.Fatalf("Failed to execute batch insert: %s", err)
			}

			// Reset for the next batch
			valueStrings = make([]string, 0, batchSize)
			valueArgs = make([]interface{}, 0, batchSize*11)
			log.Info("Inserted batch", "completed", i+1, "total", numMatchups)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	duration := time.Since(startTime)
	log.Info("Successfully inserted all dummy matchups.", "duration", duration)
}
