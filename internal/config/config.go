package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	JWTSecret   string
	MongoURI    string
	DBName      string
	SkipAuth    bool
	Environment string
	AppId       string

	AdminUsername string
	AdminPassword string

	// Scheduler / orchestrator tuning
	SyncTickInterval   time.Duration // cadence of the scheduled-sync scan
	SyncStaleAfter     time.Duration // watermark age that makes a facility due
	SyncAttemptTimeout time.Duration // hard cap per sync attempt
	SyncMaxAttempts    int           // total attempts incl. retries for transient failures
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		JWTSecret:   getEnv("JWT_SECRET", "secret"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "go-datasync"),
		SkipAuth:    getEnv("SKIP_AUTH", "false") == "true",
		Environment: getEnv("ENVIRONMENT", "development"),
		AppId:       getEnv("APP_ID", "go-datasync"),

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin"),

		SyncTickInterval:   getDurationEnv("SYNC_TICK_INTERVAL", 5*time.Minute),
		SyncStaleAfter:     getDurationEnv("SYNC_STALE_AFTER", 30*time.Minute),
		SyncAttemptTimeout: getDurationEnv("SYNC_ATTEMPT_TIMEOUT", 2*time.Minute),
		SyncMaxAttempts:    getIntEnv("SYNC_MAX_ATTEMPTS", 3),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using default %s", key, fallback)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("Invalid integer for %s, using default %d", key, fallback)
	}
	return fallback
}
