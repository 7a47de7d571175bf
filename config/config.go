package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sahilchouksey/paper-insight-api/utils/validation"
)

// This function will Load the ENVIORNMENT VARIABLES from .env if GO_ENV variable is not set
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		// a missing .env is fine, the process env still applies
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}

type EnvironmentVariable struct {
	GO_ENV    string
	PORT      int    `validate:"gte=1,lte=65535"`
	LOG_LEVEL string `validate:"oneof=trace debug info warn error"`
	// JWT Configuration
	JWT_SECRET string `validate:"required"`
	JWT_ISSUER string `validate:"required"`
	// Redis Configuration (token blacklist, optional)
	REDIS_URL string
	// HTTP
	ALLOWED_ORIGINS string
	// Uploads
	UPLOAD_DIR             string `validate:"required"`
	MAX_UPLOAD_MB          int    `validate:"gte=1,lte=100"`
	UPLOAD_SWEEP_ENABLED   bool
	UPLOAD_MAX_AGE_MINUTES int `validate:"gte=1"`
	// PDF extraction backend: "ledongthuc" or "mupdf"
	PDF_EXTRACTOR string `validate:"oneof=ledongthuc mupdf"`
	// LLM Configuration (OpenAI-compatible chat completions)
	LLM_API_KEY         string
	LLM_BASE_URL        string
	LLM_MODEL           string  `validate:"required"`
	LLM_TOP_P           float32 `validate:"gt=0,lte=1"`
	LLM_TIMEOUT_SECONDS int     `validate:"gte=1"`
}

func Get() (*EnvironmentVariable, error) {

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "paper-insight-api"
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = filepath.Join(os.TempDir(), "paper-uploads")
	}

	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}

	envVariables := &EnvironmentVariable{
		GO_ENV:    os.Getenv("GO_ENV"),
		PORT:      port,
		LOG_LEVEL: getEnvOrDefault("LOG_LEVEL", "info"),
		// JWT
		JWT_SECRET: os.Getenv("JWT_SECRET"),
		JWT_ISSUER: jwtIssuer,
		// Redis
		REDIS_URL: os.Getenv("REDIS_URL"),
		// HTTP
		ALLOWED_ORIGINS: getEnvOrDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		// Uploads
		UPLOAD_DIR:             uploadDir,
		MAX_UPLOAD_MB:          getEnvInt("MAX_UPLOAD_MB", 10),
		UPLOAD_SWEEP_ENABLED:   os.Getenv("UPLOAD_SWEEP_ENABLED") != "false", // Default to enabled
		UPLOAD_MAX_AGE_MINUTES: getEnvInt("UPLOAD_MAX_AGE_MINUTES", 60),
		PDF_EXTRACTOR:          getEnvOrDefault("PDF_EXTRACTOR", "ledongthuc"),
		// LLM
		LLM_API_KEY:         os.Getenv("LLM_API_KEY"),
		LLM_BASE_URL:        getEnvOrDefault("LLM_BASE_URL", "https://api.groq.com/openai/v1"),
		LLM_MODEL:           model,
		LLM_TOP_P:           getEnvFloat32("LLM_TOP_P", 1.0),
		LLM_TIMEOUT_SECONDS: getEnvInt("LLM_TIMEOUT_SECONDS", 120),
	}

	if err := validation.NewValidator().ValidateStruct(envVariables); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", validation.FormatValidationErrors(err))
	}

	return envVariables, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat32(key string, defaultValue float32) float32 {
	value, err := strconv.ParseFloat(os.Getenv(key), 32)
	if err != nil {
		return defaultValue
	}
	return float32(value)
}
