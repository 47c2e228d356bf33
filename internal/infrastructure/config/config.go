// internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Trip store backends
const (
	StoreMongo  = "mongo"
	StoreCosmos = "cosmos"
)

// Model providers
const (
	ModelProviderAnthropic = "anthropic"
	ModelProviderOpenAI    = "openai"
	ModelProviderDisabled  = "disabled"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Trip store
	StoreBackend string

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// Cosmos DB
	CosmosEndpoint    string
	CosmosDatabase    string
	CosmosContainer   string
	CosmosUseEmulator bool

	// PostgreSQL reference data (airports, airlines)
	PostgresURI string

	// Gmail
	GmailClientID     string
	GmailClientSecret string
	GmailRefreshToken string
	GmailPollInterval time.Duration

	// Geocoder
	GeocoderURL   string
	GeocoderToken string

	// Redis result cache
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	ResultCacheTTL time.Duration

	// Kafka
	KafkaBrokers    []string
	KafkaTripsTopic string

	// Parser
	Parser ParserConfig
}

// ParserConfig tunes the extraction pipeline. It can be overridden by a
// YAML file named in PARSER_CONFIG_PATH.
type ParserConfig struct {
	SourceConfidenceThreshold  float64       `yaml:"source_confidence_threshold"`
	GenericConfidenceThreshold float64       `yaml:"generic_confidence_threshold"`
	ModelProvider              string        `yaml:"model_provider"`
	ModelAPIKey                string        `yaml:"-"`
	ModelName                  string        `yaml:"model_name"`
	ModelBaseURL               string        `yaml:"model_base_url"`
	ModelTimeout               time.Duration `yaml:"model_timeout"`
	ModelMaxBodyChars          int           `yaml:"model_max_body_chars"`
	ModelRequestsPerSecond     float64       `yaml:"model_requests_per_second"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", StoreMongo)),

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "flightmail"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		CosmosEndpoint:    getEnv("COSMOS_ENDPOINT", "https://localhost:8081"),
		CosmosDatabase:    getEnv("COSMOS_DATABASE", "flightmail"),
		CosmosContainer:   getEnv("COSMOS_CONTAINER", "trips"),
		CosmosUseEmulator: getEnvAsBool("COSMOS_USE_EMULATOR", false),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		GmailClientID:     getEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret: getEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRefreshToken: getEnv("GMAIL_REFRESH_TOKEN", ""),
		GmailPollInterval: time.Duration(getEnvAsInt("GMAIL_POLL_INTERVAL", 60)) * time.Second,

		GeocoderURL:   getEnv("GEOCODER_URL", ""),
		GeocoderToken: getEnv("GEOCODER_TOKEN", ""),

		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvAsInt("REDIS_DB", 0),
		ResultCacheTTL: time.Duration(getEnvAsInt("RESULT_CACHE_TTL", 86400)) * time.Second,

		KafkaBrokers:    getEnvAsList("KAFKA_BROKERS", nil),
		KafkaTripsTopic: getEnv("KAFKA_TRIPS_TOPIC", "trips.recorded"),

		Parser: ParserConfig{
			SourceConfidenceThreshold:  getEnvAsFloat("SOURCE_CONFIDENCE_THRESHOLD", 0.7),
			GenericConfidenceThreshold: getEnvAsFloat("GENERIC_CONFIDENCE_THRESHOLD", 0.6),
			ModelProvider:              strings.ToLower(getEnv("MODEL_PROVIDER", ModelProviderAnthropic)),
			ModelAPIKey:                getEnv("MODEL_API_KEY", ""),
			ModelName:                  getEnv("MODEL_NAME", ""),
			ModelBaseURL:               getEnv("MODEL_BASE_URL", ""),
			ModelTimeout:               time.Duration(getEnvAsInt("MODEL_TIMEOUT", 30)) * time.Second,
			ModelMaxBodyChars:          getEnvAsInt("MODEL_MAX_BODY_CHARS", 5000),
			ModelRequestsPerSecond:     getEnvAsFloat("MODEL_REQUESTS_PER_SECOND", 2),
		},
	}

	if path := getEnv("PARSER_CONFIG_PATH", ""); path != "" {
		if err := config.Parser.applyFile(path); err != nil {
			return nil, err
		}
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyFile overlays non-zero values from a YAML file
func (p *ParserConfig) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read parser config: %w", err)
	}

	var overlay ParserConfig
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("failed to parse parser config: %w", err)
	}

	if overlay.SourceConfidenceThreshold != 0 {
		p.SourceConfidenceThreshold = overlay.SourceConfidenceThreshold
	}
	if overlay.GenericConfidenceThreshold != 0 {
		p.GenericConfidenceThreshold = overlay.GenericConfidenceThreshold
	}
	if overlay.ModelProvider != "" {
		p.ModelProvider = strings.ToLower(overlay.ModelProvider)
	}
	if overlay.ModelName != "" {
		p.ModelName = overlay.ModelName
	}
	if overlay.ModelBaseURL != "" {
		p.ModelBaseURL = overlay.ModelBaseURL
	}
	if overlay.ModelTimeout != 0 {
		p.ModelTimeout = overlay.ModelTimeout
	}
	if overlay.ModelMaxBodyChars != 0 {
		p.ModelMaxBodyChars = overlay.ModelMaxBodyChars
	}
	if overlay.ModelRequestsPerSecond != 0 {
		p.ModelRequestsPerSecond = overlay.ModelRequestsPerSecond
	}
	return nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case StoreMongo, StoreCosmos:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	switch c.Parser.ModelProvider {
	case ModelProviderAnthropic, ModelProviderOpenAI, ModelProviderDisabled:
	default:
		return fmt.Errorf("unknown MODEL_PROVIDER %q", c.Parser.ModelProvider)
	}

	for name, v := range map[string]float64{
		"SOURCE_CONFIDENCE_THRESHOLD":  c.Parser.SourceConfidenceThreshold,
		"GENERIC_CONFIDENCE_THRESHOLD": c.Parser.GenericConfidenceThreshold,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be within [0,1], got %v", name, v)
		}
	}
	return nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated value, dropping empty items
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(valueStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
