// Package config loads environment-driven settings for the truck market
// service. A .env file is honored in development; real environment
// variables always take precedence.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Backend names accepted by STORE_BACKEND.
const (
	BackendIndex  = "index"  // single index.json document
	BackendFiles  = "files"  // one truck_<id>.json per record
	BackendMemory = "memory" // in-process map, volatile
	BackendMongo  = "mongo"  // MongoDB collection
	BackendRemote = "remote" // companion HTTP API
)

// Config captures all settings needed to run the service.
type Config struct {
	Port    string
	DataDir string

	StoreBackend string
	RemoteAPIURL string
	MongoURI     string
	MongoDB      string

	AdminUsername     string
	AdminPasswordHash string
	JWTSecret         string
	JWTExpiry         time.Duration

	MQTTBrokerURL   string
	MQTTTopicPrefix string
}

const (
	defaultPort        = "8080"
	defaultDataDir     = "data/trucks"
	defaultBackend     = BackendIndex
	defaultJWTExpiry   = 24 * time.Hour
	defaultTopicPrefix = "truckmarket"
	defaultMongoDB     = "truckmarket"
)

// Load reads .env (when present) and the environment, returning a Config
// with defaults applied.
func Load() (*Config, error) {
	// godotenv.Load does not override already-set variables, preserving
	// OS env > .env precedence.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load .env file: %v\n", err)
		}
	}

	cfg := &Config{
		Port:              getEnv("PORT", defaultPort),
		DataDir:           getEnv("DATA_DIR", defaultDataDir),
		StoreBackend:      getEnv("STORE_BACKEND", defaultBackend),
		RemoteAPIURL:      os.Getenv("REMOTE_API_URL"),
		MongoURI:          os.Getenv("MONGO_URI"),
		MongoDB:           getEnv("MONGO_DB", defaultMongoDB),
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		JWTSecret:         getEnv("JWT_SECRET", "default-secret-key-change-in-production"),
		JWTExpiry:         defaultJWTExpiry,
		MQTTBrokerURL:     os.Getenv("MQTT_BROKER_URL"),
		MQTTTopicPrefix:   getEnv("MQTT_TOPIC_PREFIX", defaultTopicPrefix),
	}

	if expStr := os.Getenv("JWT_EXPIRY"); expStr != "" {
		exp, err := time.ParseDuration(expStr)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRY %q: %w", expStr, err)
		}
		cfg.JWTExpiry = exp
	}

	switch cfg.StoreBackend {
	case BackendIndex, BackendFiles, BackendMemory, BackendMongo, BackendRemote:
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND: %s", cfg.StoreBackend)
	}

	if cfg.StoreBackend == BackendRemote && cfg.RemoteAPIURL == "" {
		return nil, fmt.Errorf("remote backend requires REMOTE_API_URL to be set")
	}
	if cfg.StoreBackend == BackendMongo && cfg.MongoURI == "" {
		return nil, fmt.Errorf("mongo backend requires MONGO_URI to be set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
