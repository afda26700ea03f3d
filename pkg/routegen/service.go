package routegen

import (
	"context"
	"encoding/json"
)

type Service interface {
	// GenerateRoute builds the route for a drawn polygon payload. Input that
	// cannot produce a route gives an empty collection, not an error.
	GenerateRoute(ctx context.Context, polygon json.RawMessage, p Params) (Route, error)

	Status(ctx context.Context) Status
}

// A Route is the encoded FeatureCollection handed to the map's line layer.
type Route struct {
	Body json.RawMessage

	// Number of loops in Body
	Loops int

	// Whether Body came from the cache
	Cached bool
}
