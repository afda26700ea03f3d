package routegen

import (
	geojson "github.com/paulmach/go.geojson"

	"github.com/ColinToft/GeometricRoute/internal/util/footprint"
)

// Summary holds the readouts of the calculation box.
type Summary struct {
	// Drawn footprint
	Area      float64 `json:"area"`
	Perimeter float64 `json:"perimeter"`

	// Sum of LOOPLENGTH over the route
	LoopLength float64 `json:"loop_length"`

	// Sum of LOOPLENGTH + STEPHEIGHT over the route
	RouteDistance float64 `json:"route_distance"`

	Loops int `json:"loops"`
}

// Summarize reads route totals back from the emitted feature properties, so
// the numbers always agree with what the map draws. Features missing a
// property count as zero.
func Summarize(b footprint.Boundary, route *geojson.FeatureCollection) Summary {
	s := Summary{
		Area:      b.Area(),
		Perimeter: b.Perimeter(),
	}
	if route == nil {
		return s
	}

	for _, f := range route.Features {
		loopLength := f.PropertyMustFloat64(PropLoopLength, 0)
		stepHeight := f.PropertyMustFloat64(PropStepHeight, 0)
		s.LoopLength += loopLength
		s.RouteDistance += loopLength + stepHeight
		s.Loops++
	}
	return s
}
