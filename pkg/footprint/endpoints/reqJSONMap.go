package endpoints

import (
	"encoding/json"

	geojson "github.com/paulmach/go.geojson"

	"github.com/ColinToft/GeometricRoute/internal/util/footprint"
	"github.com/ColinToft/GeometricRoute/pkg/routegen"
)

// A request for the calculation box readouts
type SummaryRequest struct {
	Polygon json.RawMessage `json:"polygon"`

	// Route parameters; fields left out keep the map page defaults
	Params *routegen.Params `json:"params,omitempty"`
}

type SummaryResponse struct {
	routegen.Summary
}

// A request for the footprint volume
type ExtrusionRequest struct {
	Polygon json.RawMessage `json:"polygon"`

	BaseHeight float64 `json:"inBaseHi"`
	TopHeight  float64 `json:"inTopHi"`

	// Geographic when left out
	Coordinates footprint.CoordinateSpace `json:"coordinates"`
}

// The footprint as a polygon feature for the fill-extrusion layer
type ExtrusionResponse struct {
	Feature *geojson.Feature
}
