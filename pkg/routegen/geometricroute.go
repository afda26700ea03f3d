package routegen

// The route transform: footprint and parameters in, elevated loops out.
// Every call starts from scratch and shares nothing with other calls.

import (
	"github.com/go-kit/log/level"
	geojson "github.com/paulmach/go.geojson"

	"github.com/ColinToft/GeometricRoute/internal/util/errors"
	"github.com/ColinToft/GeometricRoute/internal/util/footprint"
)

// Strict makes contract violations panic instead of being logged. Set it
// once at startup in development builds.
var Strict bool

// Build runs the route pipeline and reports why no route could be built.
// With DropDegenerate the route may hold fewer loops than steps.
func Build(fc *geojson.FeatureCollection, p Params) (*geojson.FeatureCollection, error) {
	if err := errors.Must(Strict, fc != nil, "nil feature collection"); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	b, err := footprint.Normalize(fc, p.Coordinates)
	if err != nil {
		return nil, err
	}
	loops, err := Partition(b, p)
	if err != nil {
		return nil, err
	}
	return Emit(b, loops)
}

// GeometricRoute builds the route for the first polygon in fc. Input that
// cannot produce a route gives an empty collection so the map stays
// interactive.
func GeometricRoute(fc *geojson.FeatureCollection, p Params) *geojson.FeatureCollection {
	route, err := Build(fc, p)
	if err == nil {
		return route
	}

	if errors.IsDomain(err) {
		level.Debug(logger).Log("during", "GeometricRoute", "err", err)
	} else {
		level.Error(logger).Log("during", "GeometricRoute", "err", err)
		if Strict {
			panic(err)
		}
	}
	return geojson.NewFeatureCollection()
}
