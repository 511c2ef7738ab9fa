package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Riot          RiotConfig
	Turso         TursoConfig
	ProjectID     string
}

// RiotConfig holds the settings for talking to the Riot and Data Dragon APIs.
type RiotConfig struct {
	APIKey     string
	DDragonURL string
}

// TursoConfig holds the settings for a remote/replicated database. Both fields
// are empty for a local-only SQLite file.
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
