package routing

import (
	"context"

	"github.com/UnknownOlympus/hermes/internal/models"
)

// Provider is an interface that defines a method for resolving a driving route.
// The Route method takes a context, an origin address and a destination address,
// and returns the driving time and distance for that pair, or a classified error.
type Provider interface {
	Route(ctx context.Context, origin, destination string) (*models.Leg, error)
}
