package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeLive  Mode = "live"
)

// Transport selects how completion requests reach the backend.
type Transport string

const (
	TransportREST  Transport = "rest"
	TransportGenAI Transport = "genai"
)

type Config struct {
	Mode Mode

	Port     string
	LogLevel string

	// APIKey is the backend credential. It is injected into the completion
	// client once and must never be logged.
	APIKey    string
	Transport Transport
	BaseURL   string

	// Vertex AI backend for the genai transport (optional)
	GCPProjectID string
	GCPLocation  string

	PrimaryModel  string
	FallbackModel string

	HistoryLimit   int
	AttemptTimeout time.Duration
	RetryBackoff   time.Duration

	MaxOutputTokens int
	Temperature     float64
	TopP            float64
	TopK            float64

	LexiconFile string // optional YAML with crisis/resource phrases

	UseMockLLM bool // true = use mock even in live mode
}

// String hides the credential.
func (c Config) String() string {
	key := "unset"
	if c.APIKey != "" {
		key = "set"
	}
	return fmt.Sprintf("mode=%s transport=%s primary=%s fallback=%s api_key=%s mock=%t",
		c.Mode, c.Transport, c.PrimaryModel, c.FallbackModel, key, c.UseMockLLM)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

func getIntEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s=%q: %w", key, v, err)
	}
	return n, nil
}

func getFloatEnv(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s=%q: %w", key, v, err)
	}
	return f, nil
}

func getDurationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s=%q: %w", key, v, err)
	}
	return d, nil
}

// Load reads all env vars and builds the config.
// It is meant to be called once at process start.
func Load() (*Config, error) {
	modeStr := getEnv("NEUROLINK_MODE", "local")
	var mode Mode
	switch modeStr {
	case "live":
		mode = ModeLive
	default:
		mode = ModeLocal
	}

	cfg := &Config{
		Mode: mode,

		Port:     getEnv("NEUROLINK_PORT", "8080"),
		LogLevel: getEnv("NEUROLINK_LOG_LEVEL", "info"),

		APIKey:    os.Getenv("GOOGLE_API_KEY"),
		Transport: Transport(getEnv("NEUROLINK_TRANSPORT", string(TransportREST))),
		BaseURL:   getEnv("NEUROLINK_BASE_URL", "https://generativelanguage.googleapis.com/v1"),

		GCPProjectID: getEnv("NEUROLINK_GCP_PROJECT", ""),
		GCPLocation:  getEnv("NEUROLINK_GCP_LOCATION", "us-central1"),

		PrimaryModel:  getEnv("NEUROLINK_PRIMARY_MODEL", "gemini-1.5-flash"),
		FallbackModel: getEnv("NEUROLINK_FALLBACK_MODEL", "gemini-1.5-flash-8b"),

		LexiconFile: getEnv("NEUROLINK_LEXICON_FILE", ""),
		UseMockLLM:  getBoolEnv("NEUROLINK_USE_MOCK_LLM", mode == ModeLocal),
	}

	var err error
	if cfg.HistoryLimit, err = getIntEnv("NEUROLINK_HISTORY_LIMIT", 40); err != nil {
		return nil, err
	}
	if cfg.MaxOutputTokens, err = getIntEnv("NEUROLINK_MAX_OUTPUT_TOKENS", 256); err != nil {
		return nil, err
	}
	if cfg.AttemptTimeout, err = getDurationEnv("NEUROLINK_ATTEMPT_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.RetryBackoff, err = getDurationEnv("NEUROLINK_RETRY_BACKOFF", 250*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.Temperature, err = getFloatEnv("NEUROLINK_TEMPERATURE", 0.9); err != nil {
		return nil, err
	}
	if cfg.TopP, err = getFloatEnv("NEUROLINK_TOP_P", 1.0); err != nil {
		return nil, err
	}
	if cfg.TopK, err = getFloatEnv("NEUROLINK_TOP_K", 64); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Transport {
	case TransportREST, TransportGenAI:
	default:
		return fmt.Errorf("NEUROLINK_TRANSPORT must be %q or %q, got %q", TransportREST, TransportGenAI, c.Transport)
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("NEUROLINK_HISTORY_LIMIT must be positive, got %d", c.HistoryLimit)
	}
	if c.AttemptTimeout <= 0 {
		return fmt.Errorf("NEUROLINK_ATTEMPT_TIMEOUT must be positive, got %s", c.AttemptTimeout)
	}
	if c.RetryBackoff < 0 {
		return fmt.Errorf("NEUROLINK_RETRY_BACKOFF must not be negative, got %s", c.RetryBackoff)
	}
	return nil
}
