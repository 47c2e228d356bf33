package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"flightmail-service/internal/domain/entity"
	"flightmail-service/internal/domain/repository"
	"flightmail-service/pkg/airports"
	"flightmail-service/pkg/logger"
)

// HTTPGeocoder resolves free-form place names through the geocoding service
type HTTPGeocoder struct {
	logger      logger.Logger
	baseURL     string
	bearerToken string
	client      *http.Client
}

// NewHTTPGeocoder creates a geocoding client. An empty baseURL disables it
// and every lookup comes back unresolved.
func NewHTTPGeocoder(baseURL, bearerToken string, logger logger.Logger) *HTTPGeocoder {
	return &HTTPGeocoder{
		logger:      logger,
		baseURL:     strings.TrimRight(baseURL, "/"),
		bearerToken: bearerToken,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

type geocodeResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Code      string  `json:"code"`
		Name      string  `json:"name"`
		City      string  `json:"city"`
		Country   string  `json:"country"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Geocode returns an unresolved place when the service has no match;
// transport and server errors are returned as errors.
func (g *HTTPGeocoder) Geocode(ctx context.Context, query string) (*entity.Place, error) {
	unresolved := &entity.Place{Query: query}
	if g.baseURL == "" {
		return unresolved, nil
	}

	endpoint := fmt.Sprintf("%s/api/v1/geocode?q=%s", g.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if g.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+g.bearerToken)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return unresolved, nil
	}
	if resp.StatusCode != http.StatusOK {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return nil, fmt.Errorf("geocoder returned status %d: %v", resp.StatusCode, errorBody)
	}

	var response geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if !response.Success {
		g.logger.Debug("Geocoder found no match", "query", query, "code", response.Error.Code, "message", response.Error.Message)
		return unresolved, nil
	}

	return &entity.Place{
		Query:     query,
		Code:      response.Data.Code,
		Name:      response.Data.Name,
		City:      response.Data.City,
		Country:   response.Data.Country,
		Latitude:  response.Data.Latitude,
		Longitude: response.Data.Longitude,
		Resolved:  true,
	}, nil
}

// AirportGeocoder resolves IATA codes and city names against the airport
// table, falling back to a remote geocoder for anything else.
type AirportGeocoder struct {
	airports repository.AirportRepository
	fallback repository.Geocoder
	logger   logger.Logger
}

// NewAirportGeocoder builds the lookup chain. Either collaborator may be nil.
func NewAirportGeocoder(airportRepo repository.AirportRepository, fallback repository.Geocoder, logger logger.Logger) repository.Geocoder {
	return &AirportGeocoder{
		airports: airportRepo,
		fallback: fallback,
		logger:   logger,
	}
}

func (g *AirportGeocoder) Geocode(ctx context.Context, query string) (*entity.Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &entity.Place{}, nil
	}

	if g.airports != nil {
		var (
			airport *entity.Airport
			err     error
		)
		if airports.IsValidCode(query) {
			airport, err = g.airports.GetByCode(ctx, query)
		} else {
			airport, err = g.airports.FindByCity(ctx, query)
		}

		switch {
		case err == nil:
			return airport.ToPlace(query), nil
		case errors.Is(err, repository.ErrNotFound):
		default:
			g.logger.Warn("Airport lookup failed", "query", query, "error", err)
		}
	}

	if g.fallback != nil {
		return g.fallback.Geocode(ctx, query)
	}
	return &entity.Place{Query: query}, nil
}
