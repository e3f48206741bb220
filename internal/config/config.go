package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	GinMode     string
	ModelPath   string
	DatasetPath string
	DiagramPath string
	DatabaseURL string
	EnableDB    bool
}

// Load reads the environment, after applying a .env file when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "release"),
		ModelPath:   getEnv("MODEL_PATH", "data/model_decision_tree_covid19.yaml"),
		DatasetPath: getEnv("DATASET_PATH", "data/data_gejala_covid19.csv"),
		DiagramPath: getEnv("DIAGRAM_PATH", "data/decision_tree_covid19_detailed.png"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		EnableDB:    strings.EqualFold(getEnv("ENABLE_DB", "false"), "true"),
	}

	if cfg.EnableDB && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when ENABLE_DB=true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
