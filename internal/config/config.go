package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
	Wiki     WikiConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	LocalCachePath     string
	EnrichTopic        string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	Provider      string // "openai" or "ollama"
	OpenAIKey     string
	NamesModel    string // candidate list generation
	ProseModel    string // long-form descriptions
	OllamaBaseURL string
	OllamaModel   string
	NameCount     int
}

type WikiConfig struct {
	BaseURL string
	Enabled bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			LocalCachePath:     getEnv("LOCAL_FAVORITES_PATH", "data/favorites.local.json"),
			EnrichTopic:        getEnv("ENRICH_FAVORITE_TOPIC_NAME", "ENRICH_FAVORITE"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			Provider:      getEnv("LLM_PROVIDER", "openai"),
			OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
			NamesModel:    getEnv("LLM_NAMES_MODEL", "gpt-3.5-turbo"),
			ProseModel:    getEnv("LLM_PROSE_MODEL", "gpt-4"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:   getEnv("OLLAMA_MODEL", "llama3"),
			NameCount:     getEnvAsInt("NAME_COUNT", 10),
		},
		Wiki: WikiConfig{
			BaseURL: getEnv("WIKI_BASE_URL", "https://en.wikipedia.org/api/rest_v1"),
			Enabled: getEnv("WIKI_LOOKUP_ENABLED", "true") == "true",
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
