package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultPort                = "3001"
	DefaultLogFormat           = "console"
	DefaultTokenExpiryMin      = 60
	DefaultSMTPHost            = "smtp.gmail.com"
	DefaultSMTPPort            = 587
	DefaultRedisAddr           = "localhost:6379"
	DefaultPollIntervalSeconds = 60
	DefaultFeedTimeoutSeconds  = 10
	DefaultMailTimeoutSeconds  = 10
	DefaultMailQueueSize       = 64
	DefaultBreachPolicy        = "any-exceeds"
	DefaultThingSpeakBaseURL   = "https://api.thingspeak.com"
)

type Config struct {
	Env       string
	Port      string
	LogFormat string

	DBURL          string
	JWTSecret      string
	TokenExpiryMin int

	EmailUser string
	EmailPass string
	SMTPHost  string
	SMTPPort  int

	RedisAddr     string
	RedisPassword string

	ThingSpeakChannelID string
	ThingSpeakAPIKey    string
	ThingSpeakBaseURL   string

	PollIntervalSeconds int
	FeedTimeoutSeconds  int
	MailTimeoutSeconds  int
	MailQueueSize       int

	BreachPolicy string
}

// Load reads config/.env.dev or config/.env.prod depending on ENV, then
// lets real environment variables override file values. Required keys
// terminate the process when absent: the service must not come up
// without database, token, mail, or feed credentials.
func Load() *Config {
	env := getEnv("ENV", "development")

	envFile := "config/.env.dev"
	if env == "production" {
		envFile = "config/.env.prod"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("No env file loaded from %s, relying on environment", envFile)
	}

	return &Config{
		Env:       env,
		Port:      getEnv("PORT", DefaultPort),
		LogFormat: getEnv("LOG_FORMAT", DefaultLogFormat),

		DBURL:          mustGetEnv("DB_URL"),
		JWTSecret:      mustGetEnv("JWT_SECRET"),
		TokenExpiryMin: getEnvAsInt("TOKEN_EXPIRY_MIN", DefaultTokenExpiryMin),

		EmailUser: mustGetEnv("EMAIL_USER"),
		EmailPass: mustGetEnv("EMAIL_PASS"),
		SMTPHost:  getEnv("SMTP_HOST", DefaultSMTPHost),
		SMTPPort:  getEnvAsInt("SMTP_PORT", DefaultSMTPPort),

		RedisAddr:     getEnv("REDIS_ADDR", DefaultRedisAddr),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		ThingSpeakChannelID: mustGetEnv("THINGSPEAK_CHANNEL_ID"),
		ThingSpeakAPIKey:    mustGetEnv("THINGSPEAK_API_KEY"),
		ThingSpeakBaseURL:   getEnv("THINGSPEAK_BASE_URL", DefaultThingSpeakBaseURL),

		PollIntervalSeconds: getEnvAsInt("POLL_INTERVAL_SECONDS", DefaultPollIntervalSeconds),
		FeedTimeoutSeconds:  getEnvAsInt("FEED_TIMEOUT_SECONDS", DefaultFeedTimeoutSeconds),
		MailTimeoutSeconds:  getEnvAsInt("MAIL_TIMEOUT_SECONDS", DefaultMailTimeoutSeconds),
		MailQueueSize:       getEnvAsInt("MAIL_QUEUE_SIZE", DefaultMailQueueSize),

		BreachPolicy: getEnv("BREACH_POLICY", DefaultBreachPolicy),
	}
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required config: %s", key)
	return ""
}

func getEnvAsInt(key string, fallback int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return fallback
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, fallback)
		return fallback
	}
	return val
}
