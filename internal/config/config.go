package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Chatbot ChatbotConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
}

type ChatbotConfig struct {
	MaxRequests       int    // per identity per window
	WindowSeconds     int    // sliding rate-limit window
	SessionTTLMinutes int    // conversation context lifetime
	SearchTopK        int    // retrieved chunks per query
	RateLimitBackend  string // "memory" or "redis"
	KnowledgeIndex    string // optional JSON index file; empty = built-in seed
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Chatbot: ChatbotConfig{
			MaxRequests:       getEnvAsInt("CHATBOT_RATE_LIMIT_MAX", 20),
			WindowSeconds:     getEnvAsInt("CHATBOT_RATE_LIMIT_WINDOW_SECONDS", 60),
			SessionTTLMinutes: getEnvAsInt("CHATBOT_SESSION_TTL_MINUTES", 30),
			SearchTopK:        getEnvAsInt("CHATBOT_SEARCH_TOP_K", 5),
			RateLimitBackend:  getEnv("CHATBOT_RATE_LIMIT_BACKEND", "memory"),
			KnowledgeIndex:    getEnv("CHATBOT_KNOWLEDGE_INDEX", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
