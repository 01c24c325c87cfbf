package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the process reads from the environment. A .env file
// is loaded first when present, real environment variables win.
type Config struct {
	Port      string
	JWTSecret string

	DatabaseURL string

	RabbitUser string
	RabbitPass string
	RabbitHost string
	RabbitPort string

	ApolloAPIKey  string
	ApolloBaseURL string
	HunterAPIKey  string
	HunterBaseURL string
	LinkedInToken string

	MailHost string
	MailPort int
	MailUser string
	MailPass string
	MailFrom string

	VerifyWorkers  int
	SchedulerTick  time.Duration
	AllowedOrigins []string
}

func Load() (*Config, error) {
	godotenv.Load()

	c := &Config{
		Port:      getenv("PORT", "8080"),
		JWTSecret: os.Getenv("JWT_SECRET"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		RabbitUser: getenv("RABBITMQ_USER", "guest"),
		RabbitPass: getenv("RABBITMQ_PASS", "guest"),
		RabbitHost: getenv("RABBITMQ_HOST", "localhost"),
		RabbitPort: getenv("RABBITMQ_PORT", "5672"),

		ApolloAPIKey:  os.Getenv("APOLLO_API_KEY"),
		ApolloBaseURL: getenv("APOLLO_URL", "https://api.apollo.io/v1"),
		HunterAPIKey:  os.Getenv("HUNTER_API_KEY"),
		HunterBaseURL: getenv("HUNTER_URL", "https://api.hunter.io/v2"),
		LinkedInToken: os.Getenv("LINKEDIN_API_TOKEN"),

		MailHost: os.Getenv("MAIL_HOST"),
		MailPort: getint("MAIL_PORT", 587),
		MailUser: os.Getenv("MAIL_USER"),
		MailPass: os.Getenv("MAIL_PASS"),
		MailFrom: getenv("MAIL_FROM", "noreply@leadforge.io"),

		VerifyWorkers: getint("VERIFY_WORKERS", 5),
		SchedulerTick: getduration("SCHEDULER_TICK", time.Minute),
	}

	origins := getenv("ALLOWED_ORIGINS", "http://localhost:5173")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			c.AllowedOrigins = append(c.AllowedOrigins, o)
		}
	}

	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return c, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
