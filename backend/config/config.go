package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	ServerPort string

	// External AI model endpoint (Gemini-compatible generateContent API).
	AIAPIURL string
	AIAPIKey string
	AIModel  string

	// WeCom group-bot webhook for push notifications. Empty disables pushes.
	WebhookURL string

	// Base URL used when building links embedded in notifications.
	AppBaseURL string

	UploadDir string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "studytrack"),
		JWTSecret:  getEnv("JWT_SECRET", "secret"),
		ServerPort: getEnv("SERVER_PORT", "5002"),
		AIAPIURL:   getEnv("AI_API_URL", ""),
		AIAPIKey:   getEnv("AI_API_KEY", ""),
		AIModel:    getEnv("AI_MODEL", ""),
		WebhookURL: getEnv("WECHAT_WEBHOOK_URL", ""),
		AppBaseURL: getEnv("APP_BASE_URL", "http://127.0.0.1:5002"),
		UploadDir:  getEnv("UPLOAD_DIR", "uploads"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
