// Package config loads application settings from the environment, with
// an optional plotshazam.yaml file for local development. Environment
// variables always win over file values.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/kdimtricp/plotshazam/internal/ai"
	"github.com/kdimtricp/plotshazam/internal/database"
)

type Config struct {
	Port           string
	BaseURL        string
	AllowedOrigins []string
	MigrationsPath string
	HistoryLimit   int

	DB database.Config
	AI ai.Config
}

// envBindings maps config keys to the environment variable names the
// deployment already uses.
var envBindings = map[string]string{
	"port":            "PORT",
	"base_url":        "BASE_URL",
	"allowed_origins": "ALLOWED_ORIGINS",
	"migrations_path": "MIGRATIONS_PATH",
	"history_limit":   "HISTORY_LIMIT",
	"db_type":         "DB_TYPE",
	"db_path":         "DB_PATH",
	"db_host":         "DB_HOST",
	"db_port":         "DB_PORT",
	"db_user":         "DB_USER",
	"db_password":     "DB_PASSWORD",
	"db_name":         "DB_NAME",
	"ai_provider":     "AI_PROVIDER",
	"openai_api_key":  "OPENAI_API_KEY",
	"openai_model":    "OPENAI_MODEL",
	"openai_base_url": "OPENAI_BASE_URL",
	"gemini_api_key":  "GEMINI_API_KEY",
	"gemini_model":    "GEMINI_MODEL",
}

func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("migrations_path", "./migrations")
	v.SetDefault("history_limit", 20)
	v.SetDefault("db_type", "sqlite")
	v.SetDefault("db_path", "./plotshazam.db")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_user", "plotshazam")
	v.SetDefault("db_password", "plotshazam_dev")
	v.SetDefault("db_name", "plotshazam")
	v.SetDefault("ai_provider", "openai")

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	v.SetConfigName("plotshazam")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Port:           v.GetString("port"),
		BaseURL:        v.GetString("base_url"),
		AllowedOrigins: splitOrigins(v.GetString("allowed_origins")),
		MigrationsPath: v.GetString("migrations_path"),
		HistoryLimit:   v.GetInt("history_limit"),
		DB: database.Config{
			Type:       v.GetString("db_type"),
			SQLitePath: v.GetString("db_path"),
			Host:       v.GetString("db_host"),
			Port:       v.GetInt("db_port"),
			User:       v.GetString("db_user"),
			Password:   v.GetString("db_password"),
			Name:       v.GetString("db_name"),
		},
		AI: ai.Config{
			Provider:      v.GetString("ai_provider"),
			OpenAIAPIKey:  v.GetString("openai_api_key"),
			OpenAIModel:   v.GetString("openai_model"),
			OpenAIBaseURL: v.GetString("openai_base_url"),
			GeminiAPIKey:  v.GetString("gemini_api_key"),
			GeminiModel:   v.GetString("gemini_model"),
		},
	}

	return cfg, nil
}

func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
