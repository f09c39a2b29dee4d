package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"brickvest.backend/internal/config"
	domainerrors "brickvest.backend/internal/domain/errors"
	"brickvest.backend/pkg/logger"
	"go.uber.org/zap"
)

// Result is one resolved address candidate
type Result struct {
	Latitude  float64
	Longitude float64
	Formatted string
}

// Geocoder resolves free-form addresses to coordinates through an external
// lookup service.
type Geocoder struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewGeocoder creates a geocoder client from config
func NewGeocoder(cfg config.GeocoderConfig) *Geocoder {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Geocoder{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type lookupResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Lookup resolves an address to its best candidate. A lookup that returns
// no candidates yields ErrInvalidInput so callers can reject the address.
func (g *Geocoder) Lookup(ctx context.Context, address string) (*Result, error) {
	params := url.Values{}
	params.Set("q", address)
	params.Set("format", "json")
	params.Set("limit", "1")
	if g.apiKey != "" {
		params.Set("key", g.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocoder request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, domainerrors.ExternalService("geocoder unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domainerrors.ExternalService(fmt.Sprintf("geocoder returned %d", resp.StatusCode), nil)
	}

	var results []lookupResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, domainerrors.ExternalService("failed to decode geocoder response", err)
	}
	if len(results) == 0 {
		logger.Warn(ctx, "geocoder found no candidates", zap.String("address", address))
		return nil, domainerrors.BadRequest("address could not be resolved")
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, domainerrors.ExternalService("geocoder returned malformed latitude", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, domainerrors.ExternalService("geocoder returned malformed longitude", err)
	}

	return &Result{
		Latitude:  lat,
		Longitude: lon,
		Formatted: results[0].DisplayName,
	}, nil
}
