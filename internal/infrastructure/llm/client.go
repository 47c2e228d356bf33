// Package llm provides the language-model backends used by the model
// fallback stage of the flight parser.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"flightmail-service/pkg/flightparser"

	"golang.org/x/time/rate"
)

const (
	defaultAnthropicBaseURL = "https://api.anthropic.com"
	defaultAnthropicModel   = "claude-3-5-haiku-latest"
	defaultOpenAIBaseURL    = "https://api.openai.com"
	defaultOpenAIModel      = "gpt-4o-mini"
	defaultMaxTokens        = 512
	defaultTimeout          = 30 * time.Second
	defaultRateLimit        = 2.0
	defaultBurst            = 1
)

// Config selects and configures a backend.
type Config struct {
	Provider          string
	APIKey            string
	Model             string
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
}

// NewCompleter returns the configured backend. A disabled provider or a
// missing API key yields a completer that always fails with
// flightparser.ErrBackendUnavailable.
func NewCompleter(cfg Config) (flightparser.Completer, error) {
	if cfg.Provider == "disabled" || cfg.APIKey == "" {
		return unavailable{}, nil
	}

	switch cfg.Provider {
	case "anthropic":
		return newAnthropicClient(cfg), nil
	case "openai":
		return newOpenAIClient(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported model provider %q", cfg.Provider)
	}
}

type unavailable struct{}

func (unavailable) Complete(context.Context, string, string) (string, error) {
	return "", flightparser.ErrBackendUnavailable
}

func newHTTPClient(cfg Config) *http.Client {
	timeout := defaultTimeout
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}
	return &http.Client{Timeout: timeout}
}

func newLimiter(cfg Config) *rate.Limiter {
	rps := defaultRateLimit
	if cfg.RequestsPerSecond > 0 {
		rps = cfg.RequestsPerSecond
	}
	return rate.NewLimiter(rate.Limit(rps), defaultBurst)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func truncateForError(body []byte) string {
	const limit = 256
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
