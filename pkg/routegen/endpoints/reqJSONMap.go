package endpoints

import (
	"encoding/json"

	"github.com/ColinToft/GeometricRoute/pkg/routegen"
)

// A request to generate a route
type GenerationRequest struct {
	// The drawn polygon: a Feature, a FeatureCollection or a bare Polygon
	Polygon json.RawMessage `json:"polygon"`

	// Route parameters; fields left out keep the map page defaults
	Params *routegen.Params `json:"params,omitempty"`
}

// Result of a route generation
type GenerationResponse struct {
	// The FeatureCollection for the line layer, passed through unchanged
	Route json.RawMessage `json:"-"`

	Loops  int  `json:"-"`
	Cached bool `json:"-"`
}

type StatusRequest struct{}

type StatusResponse struct {
	routegen.Status
}
