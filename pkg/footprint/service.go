package footprint

import (
	"context"
	"encoding/json"

	geojson "github.com/paulmach/go.geojson"

	"github.com/ColinToft/GeometricRoute/internal/util/footprint"
	"github.com/ColinToft/GeometricRoute/pkg/routegen"
)

// Service answers the read-only questions the map page asks about a drawn
// footprint. Input that cannot be read as a footprint is an error here, so
// the page can prompt the user to draw one.
type Service interface {
	Summarize(ctx context.Context, polygon json.RawMessage, p routegen.Params) (routegen.Summary, error)
	Extrusion(ctx context.Context, polygon json.RawMessage, base, top float64, space footprint.CoordinateSpace) (*geojson.Feature, error)
}
