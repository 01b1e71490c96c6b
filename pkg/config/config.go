package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Skills bounds accepted for the prompt's top-N skills rule.
const (
	MinSkillsTopN = 12
	MaxSkillsTopN = 20
)

type Config struct {
	Port           string
	UploadDir      string
	MaxUploadBytes int

	LLM    LLMConfig
	GitHub GitHubConfig

	ChromePath string
	PDFTimeout time.Duration

	LogLevel  slog.Level
	LogFormat string
}

type LLMConfig struct {
	APIKey          string
	Backend         string
	BaseURL         string
	Model           string
	Temperature     float32
	MaxOutputTokens int
	Timeout         time.Duration
	SkillsTopN      int
}

type GitHubConfig struct {
	Token         string
	Authenticated bool
	APIURL        string
	Timeout       time.Duration
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	return Config{
		Port:           getEnv("PORT", "8080"),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadBytes: getEnvInt("MAX_UPLOAD_MB", 15) << 20,
		LLM: LLMConfig{
			APIKey:          os.Getenv("GEMINI_API_KEY"),
			Backend:         strings.ToLower(getEnv("LLM_BACKEND", "rest")),
			BaseURL:         strings.TrimRight(getEnv("LLM_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"), "/"),
			Model:           getEnv("LLM_MODEL", "gemini-2.0-flash"),
			Temperature:     float32(getEnvFloat("LLM_TEMPERATURE", 0.5)),
			MaxOutputTokens: getEnvInt("LLM_MAX_OUTPUT_TOKENS", 2048),
			Timeout:         getEnvDuration("LLM_TIMEOUT", 120*time.Second),
			SkillsTopN:      ClampSkillsTopN(getEnvInt("SKILLS_TOP_N", MinSkillsTopN)),
		},
		GitHub: GitHubConfig{
			Token:         firstEnv("GITHUB_TOKEN", "GitHub_Token"),
			Authenticated: getEnvBool("GITHUB_AUTHENTICATED", false),
			APIURL:        strings.TrimRight(getEnv("GITHUB_API_URL", "https://api.github.com"), "/"),
			Timeout:       getEnvDuration("GITHUB_TIMEOUT", 30*time.Second),
		},
		ChromePath: os.Getenv("CHROME_PATH"),
		PDFTimeout: getEnvDuration("PDF_TIMEOUT", 60*time.Second),
		LogLevel:   parseLevel(getEnv("LOG_LEVEL", "info")),
		LogFormat:  strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}
}

// ClampSkillsTopN keeps n inside the supported 12..20 range.
func ClampSkillsTopN(n int) int {
	if n < MinSkillsTopN {
		return MinSkillsTopN
	}
	if n > MaxSkillsTopN {
		return MaxSkillsTopN
	}
	return n
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			return f
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
