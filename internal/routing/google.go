package routing

import (
	"context"
	"log/slog"
	"strings"

	"github.com/UnknownOlympus/hermes/internal/models"
	"googlemaps.github.io/maps"
)

const metersPerMile = 1609.344

// GoogleProvider is a struct that holds the client for the Google Distance Matrix
// API and a logger for logging purposes. It is used to resolve driving time and
// distance between two addresses.
type GoogleProvider struct {
	client RouteAPI     // client is the Google Maps API client
	log    *slog.Logger // log is the logger for logging operations
}

// RouteAPI is the narrow slice of the Google Maps client used by this provider.
type RouteAPI interface {
	DistanceMatrix(ctx context.Context, r *maps.DistanceMatrixRequest) (*maps.DistanceMatrixResponse, error)
}

// NewGoogleProvider initializes a new GoogleProvider with the given API client and logger.
func NewGoogleProvider(client RouteAPI, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Route resolves the driving time and distance between origin and destination
// using the Google Distance Matrix API. Requests use driving mode with a "now"
// departure time and the best-guess traffic model, matching a live drive estimate.
// Provider failures are classified into the routing error taxonomy.
func (gp *GoogleProvider) Route(ctx context.Context, origin, destination string) (*models.Leg, error) {
	gp.log.DebugContext(ctx, "Routing using Google Distance Matrix",
		"origin", origin, "destination", destination)

	req := &maps.DistanceMatrixRequest{
		Origins:       []string{origin},
		Destinations:  []string{destination},
		Mode:          maps.TravelModeDriving,
		DepartureTime: "now",
		TrafficModel:  maps.TrafficModelBestGuess,
	}

	resp, err := gp.client.DistanceMatrix(ctx, req)
	if err != nil {
		return nil, classifyGoogleErr(err)
	}

	if resp == nil || len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return nil, newError(KindProvider, "google.route", "empty distance matrix response", nil)
	}

	element := resp.Rows[0].Elements[0]
	if element.Status != "OK" {
		return nil, classifyElementStatus(element.Status)
	}

	duration := element.Duration
	if element.DurationInTraffic > 0 {
		duration = element.DurationInTraffic
	}

	leg := &models.Leg{
		DurationMinutes: duration.Minutes(),
		DistanceMiles:   float64(element.Distance.Meters) / metersPerMile,
	}

	gp.log.DebugContext(ctx, "Google route resolved",
		"destination", destination, "minutes", leg.DurationMinutes, "miles", leg.DistanceMiles)

	return leg, nil
}

// classifyElementStatus maps Distance Matrix element statuses onto the error taxonomy.
// NOT_FOUND means the origin or destination could not be matched to an address.
// ZERO_RESULTS and MAX_ROUTE_LENGTH_EXCEEDED mean no drivable route exists.
func classifyElementStatus(status string) *Error {
	switch status {
	case "NOT_FOUND":
		return newError(KindInvalidAddress, "google.route", "address could not be matched: "+status, nil)
	default:
		return newError(KindProvider, "google.route", "route calculation failed: "+status, nil)
	}
}

// classifyGoogleErr maps transport and API-level errors from the maps client.
// The maps client surfaces non-OK API statuses as errors carrying the status name.
func classifyGoogleErr(err error) *Error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "OVER_QUERY_LIMIT"), strings.Contains(msg, "OVER_DAILY_LIMIT"):
		return newError(KindRateLimited, "google.route", "", err)
	case strings.Contains(msg, "REQUEST_DENIED"), strings.Contains(msg, "INVALID_REQUEST"):
		return newError(KindProvider, "google.route", "", err)
	default:
		return wrapTransport("google.route", err)
	}
}
