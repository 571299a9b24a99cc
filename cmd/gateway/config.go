// In file: cmd/gateway/config.go
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dileep-u-k/chat-gateway/internal/dedup"
	"github.com/dileep-u-k/chat-gateway/internal/tools"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"

	DedupMemory = "memory"
	DedupRedis  = "redis"
)

// AppConfig holds all configuration for the gateway, loaded from the environment and an optional tuning file.
type AppConfig struct {
	Port string

	Provider      string
	OllamaBaseURL string
	OllamaModel   string
	GeminiAPIKey  string
	GeminiModel   string

	MatrixURL    string
	HanoiURL     string
	SearchURL    string
	GeocodingURL string
	WeatherURL   string

	DedupBackend string
	RedisAddr    string

	Tuning Tuning
}

// Tuning is the YAML tuning file. Durations are written as Go duration strings ("2s", "120s").
type Tuning struct {
	ModelTimeout    time.Duration `yaml:"model_timeout"`
	ToolTimeout     time.Duration `yaml:"tool_timeout"`
	ToolConcurrency int           `yaml:"tool_concurrency"`
	Dedup           DedupTuning   `yaml:"dedup"`
}

type DedupTuning struct {
	Window     time.Duration `yaml:"window"`
	MaxEntries int           `yaml:"max_entries"`
}

func defaultTuning() Tuning {
	return Tuning{
		ModelTimeout:    120 * time.Second,
		ToolTimeout:     15 * time.Second,
		ToolConcurrency: 1,
		Dedup: DedupTuning{
			Window:     dedup.DefaultWindow,
			MaxEntries: dedup.DefaultMaxEntries,
		},
	}
}

// LoadConfig loads all configuration from a .env file, environment variables, and the tuning file.
func LoadConfig() (*AppConfig, error) {
	// In Docker (GIN_MODE=release) the environment comes from Compose directly.
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("WARNING: No .env file found for local development.")
		}
	}

	cfg := &AppConfig{
		Port:          getEnv("PORT", "6100"),
		Provider:      strings.ToLower(getEnv("MODEL_PROVIDER", ProviderOllama)),
		OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://host.docker.internal:11434"),
		OllamaModel:   getEnv("OLLAMA_MODEL", "qwen3-vl:2b"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		MatrixURL:     getEnv("MCP_MATRIX_URL", "http://localhost:6101"),
		HanoiURL:      getEnv("MCP_HANOI_URL", "http://localhost:6102"),
		SearchURL:     getEnv("SEARXNG_URL", "http://searxng:8080"),
		GeocodingURL:  getEnv("GEOCODING_URL", tools.DefaultGeocodingURL),
		WeatherURL:    getEnv("WEATHER_URL", tools.DefaultWeatherURL),
		DedupBackend:  strings.ToLower(getEnv("DEDUP_BACKEND", DedupMemory)),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
	}

	tuning, err := loadTuning(getEnv("GATEWAY_CONFIG", "gateway.yaml"))
	if err != nil {
		return nil, err
	}
	cfg.Tuning = tuning

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadTuning overlays the YAML file at path on the defaults. A missing file is not an error.
func loadTuning(path string) (Tuning, error) {
	tuning := defaultTuning()
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return tuning, nil
	}
	if err != nil {
		return tuning, fmt.Errorf("failed to read tuning file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &tuning); err != nil {
		return tuning, fmt.Errorf("failed to parse tuning file %s: %w", path, err)
	}
	log.Printf("✅ Loaded tuning from %s", path)
	return tuning, nil
}

func (c *AppConfig) validate() error {
	switch c.Provider {
	case ProviderOllama:
		if c.OllamaModel == "" {
			return errors.New("OLLAMA_MODEL must not be empty")
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY is required when MODEL_PROVIDER=gemini")
		}
	default:
		return fmt.Errorf("unknown MODEL_PROVIDER %q (want %s or %s)", c.Provider, ProviderOllama, ProviderGemini)
	}

	switch c.DedupBackend {
	case DedupMemory:
	case DedupRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required when DEDUP_BACKEND=redis")
		}
	default:
		return fmt.Errorf("unknown DEDUP_BACKEND %q (want %s or %s)", c.DedupBackend, DedupMemory, DedupRedis)
	}

	t := c.Tuning
	if t.ModelTimeout <= 0 || t.ToolTimeout <= 0 || t.Dedup.Window <= 0 {
		return errors.New("timeouts and the dedup window must be positive")
	}
	if t.ToolConcurrency < 1 {
		return fmt.Errorf("tool_concurrency must be >= 1, got %d", t.ToolConcurrency)
	}
	if t.Dedup.MaxEntries < 1 {
		return fmt.Errorf("dedup.max_entries must be >= 1, got %d", t.Dedup.MaxEntries)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
