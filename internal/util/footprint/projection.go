package footprint

import (
	"fmt"
	"math"
	"strings"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/s1"

	"github.com/ColinToft/GeometricRoute/internal/util/geometry"
)

// EarthRadiusMeters is the mean earth radius used for the local projection.
const EarthRadiusMeters = 6371008.8

// CoordinateSpace says how footprint coordinates are read.
type CoordinateSpace int

const (
	// Planar coordinates are used as they are.
	Planar CoordinateSpace = iota
	// Geographic coordinates are [lng, lat] degrees, projected into local
	// metres around the footprint before any length or area is measured.
	Geographic
)

func (s CoordinateSpace) String() string {
	switch s {
	case Planar:
		return "planar"
	case Geographic:
		return "geographic"
	}
	return fmt.Sprintf("CoordinateSpace(%d)", int(s))
}

// ParseCoordinateSpace reads "planar" or "geographic". The empty string is
// geographic, the space the map page draws in.
func ParseCoordinateSpace(s string) (CoordinateSpace, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "planar":
		return Planar, nil
	case "geographic", "lnglat", "":
		return Geographic, nil
	}
	return Planar, fmt.Errorf("unknown coordinate space %q", s)
}

func (s CoordinateSpace) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *CoordinateSpace) UnmarshalText(text []byte) error {
	parsed, err := ParseCoordinateSpace(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// projection is an equirectangular projection about origin. It is accurate
// enough over a building footprint and has an exact inverse.
type projection struct {
	origin r2.Point // lng, lat in degrees
	cosLat float64
}

func newProjection(ring geometry.Ring) projection {
	lng, lat := r1.EmptyInterval(), r1.EmptyInterval()
	for _, p := range ring {
		lng = lng.AddPoint(p.X)
		lat = lat.AddPoint(p.Y)
	}
	origin := r2.Point{X: lng.Center(), Y: lat.Center()}
	return projection{
		origin: origin,
		cosLat: math.Cos((s1.Angle(origin.Y) * s1.Degree).Radians()),
	}
}

func (p projection) forward(q r2.Point) r2.Point {
	dLng := s1.Angle(q.X-p.origin.X) * s1.Degree
	dLat := s1.Angle(q.Y-p.origin.Y) * s1.Degree
	return r2.Point{
		X: EarthRadiusMeters * dLng.Radians() * p.cosLat,
		Y: EarthRadiusMeters * dLat.Radians(),
	}
}

func (p projection) inverse(q r2.Point) r2.Point {
	dLng := s1.Angle(q.X / (EarthRadiusMeters * p.cosLat))
	dLat := s1.Angle(q.Y / EarthRadiusMeters)
	return r2.Point{X: p.origin.X + dLng.Degrees(), Y: p.origin.Y + dLat.Degrees()}
}

func (p projection) forwardRing(r geometry.Ring) geometry.Ring {
	out := make(geometry.Ring, len(r))
	for i, q := range r {
		out[i] = p.forward(q)
	}
	return out
}
