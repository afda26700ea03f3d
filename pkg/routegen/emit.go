package routegen

import (
	geojson "github.com/paulmach/go.geojson"

	"github.com/ColinToft/GeometricRoute/internal/util/errors"
	"github.com/ColinToft/GeometricRoute/internal/util/footprint"
)

// Property names read by the map's line layer and the summary panel.
const (
	PropLoopLength = "LOOPLENGTH"
	PropStepHeight = "STEPHEIGHT"
	PropElevation  = "elevation"
)

// Emit turns loops into line features, lowest first. Each loop is a closed
// line string whose elevation array runs parallel to its coordinates.
func Emit(b footprint.Boundary, loops []Loop) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	for _, l := range loops {
		path := l.ring.Closed()
		cum := l.ring.Cumulative()
		elevation := Profile(cum, l.elevationStart, l.elevationEnd)

		if err := errors.Must(Strict, len(elevation) == len(path),
			"loop %d has %d elevations for %d vertices", l.index, len(elevation), len(path)); err != nil {
			return nil, err
		}

		f := geojson.NewLineStringFeature(b.Coordinates(path))
		f.SetProperty(PropLoopLength, cum[len(cum)-1])
		f.SetProperty(PropStepHeight, l.StepHeight())
		f.SetProperty(PropElevation, elevation)
		fc.AddFeature(f)
	}
	return fc, nil
}
