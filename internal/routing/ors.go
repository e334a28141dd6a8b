package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/UnknownOlympus/hermes/internal/models"
	"golang.org/x/time/rate"
)

// ORSBaseURL -- OpenRouteService API base URL.
const ORSBaseURL = "https://api.openrouteservice.org"

// orsProfile is the routing profile used for all matrix requests.
const orsProfile = "driving-car"

// ORSProvider implements routing using the OpenRouteService API. Addresses are
// geocoded individually and then resolved through a one-source, one-destination
// matrix request.
type ORSProvider struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL for the OpenRouteService API
	apiKey  string        // API key with geocoding and matrix access
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type orsGeocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
	} `json:"features"`
}

type orsMatrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Destinations []int       `json:"destinations"`
	Metrics      []string    `json:"metrics"`
	Sources      []int       `json:"sources"`
}

type orsMatrixResponse struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// NewORSProvider creates a new OpenRouteService routing provider.
func NewORSProvider(apiKey string, rateLimit int, timeout time.Duration, log *slog.Logger) *ORSProvider {
	return &ORSProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: ORSBaseURL,
		apiKey:  apiKey,
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
	}
}

// NewORSProviderWithClient allows injecting a custom HTTP client.
func NewORSProviderWithClient(client HTTPClient, apiKey string, limiter *rate.Limiter, log *slog.Logger) *ORSProvider {
	return &ORSProvider{
		client:  client,
		baseURL: ORSBaseURL,
		apiKey:  apiKey,
		log:     log,
		limiter: limiter,
	}
}

// Route resolves driving time and distance between origin and destination.
// Both endpoints are geocoded first because the ORS matrix endpoint works on
// coordinates rather than free-text addresses.
func (op *ORSProvider) Route(ctx context.Context, origin, destination string) (*models.Leg, error) {
	if err := op.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	op.log.DebugContext(ctx, "Routing using OpenRouteService",
		"origin", origin, "destination", destination)

	originCoord, err := op.geocode(ctx, origin)
	if err != nil {
		return nil, err
	}

	destCoord, err := op.geocode(ctx, destination)
	if err != nil {
		return nil, err
	}

	return op.matrix(ctx, originCoord, destCoord)
}

// geocode resolves a single address to [lon, lat] via /geocode/search.
func (op *ORSProvider) geocode(ctx context.Context, address string) ([]float64, error) {
	endpoint := op.baseURL + "/geocode/search"

	reqURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("text", address)
	query.Set("size", "1")
	reqURL.RawQuery = query.Encode()

	body, err := op.do(ctx, http.MethodGet, reqURL.String(), nil, "ors.geocode")
	if err != nil {
		return nil, err
	}

	var decoded orsGeocodeResponse
	if err = json.Unmarshal(body, &decoded); err != nil {
		return nil, newError(KindProvider, "ors.geocode", "failed to decode geocode response", err)
	}

	if len(decoded.Features) == 0 {
		return nil, newError(KindInvalidAddress, "ors.geocode", fmt.Sprintf("no geocode results for %q", address), nil)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return nil, newError(KindProvider, "ors.geocode", fmt.Sprintf("invalid coordinate format for %q", address), nil)
	}

	return coords, nil
}

// matrix fetches distance and duration for one origin-destination pair
// from the ORS matrix endpoint.
func (op *ORSProvider) matrix(ctx context.Context, originCoord, destCoord []float64) (*models.Leg, error) {
	endpoint := fmt.Sprintf("%s/v2/matrix/%s", op.baseURL, orsProfile)

	payload, err := json.Marshal(orsMatrixRequest{
		Locations:    [][]float64{originCoord, destCoord},
		Destinations: []int{1},
		Metrics:      []string{"distance", "duration"},
		Sources:      []int{0},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	body, err := op.do(ctx, http.MethodPost, endpoint, payload, "ors.matrix")
	if err != nil {
		return nil, err
	}

	var decoded orsMatrixResponse
	if err = json.Unmarshal(body, &decoded); err != nil {
		return nil, newError(KindProvider, "ors.matrix", "failed to decode matrix response", err)
	}

	if len(decoded.Distances) != 1 || len(decoded.Durations) != 1 ||
		len(decoded.Distances[0]) != 1 || len(decoded.Durations[0]) != 1 {
		return nil, newError(KindProvider, "ors.matrix", "unexpected matrix response shape", nil)
	}

	meters := decoded.Distances[0][0]
	seconds := decoded.Durations[0][0]
	if meters == nil || seconds == nil {
		return nil, newError(KindProvider, "ors.matrix", "matrix returned no route for destination", nil)
	}

	return &models.Leg{
		DurationMinutes: *seconds / 60,
		DistanceMiles:   *meters / metersPerMile,
	}, nil
}

// do executes one request against the ORS API and returns the response body,
// classifying HTTP failures into the routing error taxonomy.
func (op *ORSProvider) do(ctx context.Context, method, rawURL string, payload []byte, opName string) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", op.apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := op.client.Do(req)
	if err != nil {
		return nil, wrapTransport(opName, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapTransport(opName, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, errStatus(KindRateLimited, opName, resp.StatusCode, string(body))
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, errStatus(KindProvider, opName, resp.StatusCode, "unauthorized (invalid API key)")
	case resp.StatusCode >= 500:
		return nil, errStatus(KindNetwork, opName, resp.StatusCode, string(body))
	default:
		op.log.ErrorContext(ctx, "ORS API error", "op", opName, "status", resp.StatusCode, "body", string(body))
		return nil, errStatus(KindProvider, opName, resp.StatusCode, string(body))
	}
}
