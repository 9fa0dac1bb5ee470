package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	GeminiAPIKey string
	GeminiModel  string // when set, pins generation to a single model

	FrontendURL string
	DatabaseURL string

	TelegramBotToken string
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env %s", k)
	}
	return v
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() *Config {
	// .env is optional; real deployments set vars directly.
	_ = godotenv.Load()

	return &Config{
		Port: getEnv("PORT", "8000"),

		GeminiAPIKey: mustEnv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", ""),

		FrontendURL: getEnv("FRONTEND_URL", "https://paper-vista-five.vercel.app"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
	}
}

// AllowedOrigins returns the CORS allowlist: the configured frontend plus
// the fixed dev/prod origins, deduplicated.
func (c *Config) AllowedOrigins() []string {
	fixed := []string{
		"https://paper-vista-five.vercel.app",
		"http://localhost:5173",
		"http://localhost:3000",
	}
	out := make([]string, 0, len(fixed)+1)
	seen := map[string]bool{}
	for _, o := range append([]string{strings.TrimSpace(c.FrontendURL)}, fixed...) {
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		out = append(out, o)
	}
	return out
}
