package geolocation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tiltlabs/engineer-on-demand/internal/domain/providers"
	apperrors "github.com/tiltlabs/engineer-on-demand/pkg/errors"
)

const (
	bigDataCloudURL        = "https://api.bigdatacloud.net/data/reverse-geocode-client"
	defaultReverseCacheTTL = 24 * time.Hour
	defaultHTTPTimeout     = 8 * time.Second
)

// BigDataCloudProvider resolves coordinates to postal codes through the
// BigDataCloud client-side reverse-geocoding API, which needs no API key.
type BigDataCloudProvider struct {
	httpClient *http.Client
	cache      providers.CacheProvider
	baseURL    string
}

// NewBigDataCloudProvider creates a new BigDataCloud reverse-geocoding
// provider. Cache may be nil; every lookup then hits the upstream.
func NewBigDataCloudProvider(cache providers.CacheProvider) providers.GeolocationProvider {
	return NewBigDataCloudProviderWithOptions(cache, bigDataCloudURL, nil)
}

// NewBigDataCloudProviderWithOptions allows overriding base URL and HTTP
// client (used for tests).
func NewBigDataCloudProviderWithOptions(cache providers.CacheProvider, baseURL string, httpClient *http.Client) providers.GeolocationProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = bigDataCloudURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &BigDataCloudProvider{
		httpClient: httpClient,
		cache:      cache,
		baseURL:    baseURL,
	}
}

type reverseGeocodeResponse struct {
	Postcode   string `json:"postcode"`
	PostalCode string `json:"postalCode"`
	City       string `json:"city"`
}

// ReverseGeocode converts coordinates to a postal code.
func (p *BigDataCloudProvider) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	cacheKey := fmt.Sprintf("geo:reverse:%.4f:%.4f", lat, lng)
	if p.cache != nil {
		if cached, err := p.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			return string(cached), nil
		}
	}

	params := url.Values{
		"latitude":         []string{fmt.Sprintf("%f", lat)},
		"longitude":        []string{fmt.Sprintf("%f", lng)},
		"localityLanguage": []string{"en"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", apperrors.NewExternalError("failed to build reverse geocode request", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", apperrors.NewExternalError("reverse geocode request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", apperrors.NewExternalError(
			fmt.Sprintf("reverse geocode returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	var decoded reverseGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", apperrors.NewExternalError("failed to decode reverse geocode response", err)
	}

	zip := decoded.Postcode
	if zip == "" {
		zip = decoded.PostalCode
	}
	if zip == "" {
		return "", apperrors.NewNotFoundError("no postal code found for the given coordinates")
	}

	if p.cache != nil {
		_ = p.cache.Set(ctx, cacheKey, []byte(zip), defaultReverseCacheTTL)
	}

	return zip, nil
}
