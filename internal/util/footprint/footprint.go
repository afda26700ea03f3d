package footprint

// Decoding and normalization of the drawn building footprint.

import (
	"encoding/json"
	"math"

	"github.com/golang/geo/r2"
	geojson "github.com/paulmach/go.geojson"
	geom "github.com/twpayne/go-geom"

	"github.com/ColinToft/GeometricRoute/internal/util/errors"
	"github.com/ColinToft/GeometricRoute/internal/util/geometry"
)

// Relative tolerance used to merge points and reject zero-area rings.
const zeroish = 1e-12

// Boundary is the exterior ring of the drawn footprint, counter-clockwise,
// without a closing duplicate and with at least three distinct vertices.
// The ring is held in planar coordinates; see CoordinateSpace.
type Boundary struct {
	ring  geometry.Ring
	space CoordinateSpace
	proj  projection
}

// Decode accepts a FeatureCollection, a single Feature or a bare geometry
// and always returns a collection.
func Decode(payload []byte) (*geojson.FeatureCollection, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, errors.InvalidGeometry("payload is not GeoJSON: %v", err)
	}

	switch probe.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(payload)
		if err != nil {
			return nil, errors.InvalidGeometry("decoding feature collection: %v", err)
		}
		return fc, nil
	case "Feature":
		f, err := geojson.UnmarshalFeature(payload)
		if err != nil {
			return nil, errors.InvalidGeometry("decoding feature: %v", err)
		}
		return geojson.NewFeatureCollection().AddFeature(f), nil
	case "":
		return nil, errors.InvalidGeometry("payload has no GeoJSON type")
	default:
		g, err := geojson.UnmarshalGeometry(payload)
		if err != nil {
			return nil, errors.InvalidGeometry("decoding %s geometry: %v", probe.Type, err)
		}
		return geojson.NewFeatureCollection().AddFeature(geojson.NewFeature(g)), nil
	}
}

// Normalize extracts the exterior ring of the first polygon feature in fc.
// Holes and any further features are ignored.
func Normalize(fc *geojson.FeatureCollection, space CoordinateSpace) (Boundary, error) {
	if fc == nil {
		return Boundary{}, errors.ContractViolation("nil feature collection")
	}
	if len(fc.Features) == 0 {
		return Boundary{}, errors.InvalidGeometry("no features drawn")
	}

	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil || !f.Geometry.IsPolygon() {
			continue
		}
		return NewBoundary(f.Geometry.Polygon, space)
	}
	return Boundary{}, errors.InvalidGeometry("none of %d features is a polygon", len(fc.Features))
}

// NewBoundary builds a boundary from polygon coordinates ([ring][point][x, y]).
func NewBoundary(polygon [][][]float64, space CoordinateSpace) (Boundary, error) {
	if len(polygon) == 0 || len(polygon[0]) == 0 {
		return Boundary{}, errors.InvalidGeometry("polygon has no exterior ring")
	}

	raw := make(geometry.Ring, 0, len(polygon[0]))
	for i, c := range polygon[0] {
		if len(c) < 2 {
			return Boundary{}, errors.InvalidGeometry("coordinate %d has %d values", i, len(c))
		}
		raw = append(raw, r2.Point{X: c[0], Y: c[1]})
	}
	if !raw.Finite() {
		return Boundary{}, errors.InvalidGeometry("ring has non-finite coordinates")
	}

	ring := dedupe(raw, raw.Scale()*zeroish)
	if len(ring) < 3 {
		return Boundary{}, errors.InvalidGeometry("ring has %d distinct vertices", len(ring))
	}

	b := Boundary{space: space}
	if space == Geographic {
		b.proj = newProjection(ring)
		if !(b.proj.cosLat > zeroish) {
			return Boundary{}, errors.InvalidGeometry("ring touches a pole")
		}
		ring = b.proj.forwardRing(ring)
	}

	area := ring.SignedArea()
	scale := ring.Scale()
	if math.Abs(area) <= scale*scale*zeroish {
		return Boundary{}, errors.InvalidGeometry("ring has no area")
	}
	if area < 0 {
		ring = ring.Reversed()
	}
	b.ring = ring
	return b, nil
}

// dedupe drops consecutive points closer than eps, including a closing
// point that repeats the first.
func dedupe(r geometry.Ring, eps float64) geometry.Ring {
	out := make(geometry.Ring, 0, len(r))
	for _, p := range r {
		if len(out) > 0 && p.Sub(out[len(out)-1]).Norm() <= eps {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[len(out)-1].Sub(out[0]).Norm() <= eps {
		out = out[:len(out)-1]
	}
	return out
}

// Ring returns a copy of the planar ring.
func (b Boundary) Ring() geometry.Ring {
	return append(geometry.Ring(nil), b.ring...)
}

// Space returns the coordinate space the boundary was read in.
func (b Boundary) Space() CoordinateSpace {
	return b.space
}

// IsZero reports whether b was never successfully normalized.
func (b Boundary) IsZero() bool {
	return len(b.ring) == 0
}

func (b Boundary) linearRing() *geom.LinearRing {
	closed := b.ring.Closed()
	flat := make([]float64, 0, 2*len(closed))
	for _, p := range closed {
		flat = append(flat, p.X, p.Y)
	}
	return geom.NewLinearRingFlat(geom.XY, flat)
}

// Area returns the planar area of the footprint (square metres in the
// geographic space).
func (b Boundary) Area() float64 {
	if b.IsZero() {
		return 0
	}
	return math.Abs(b.linearRing().Area())
}

// Perimeter returns the planar length of the closed ring.
func (b Boundary) Perimeter() float64 {
	if b.IsZero() {
		return 0
	}
	return b.linearRing().Length()
}

// Unproject maps a planar point back into the input coordinates.
func (b Boundary) Unproject(p r2.Point) []float64 {
	if b.space == Geographic {
		p = b.proj.inverse(p)
	}
	return []float64{p.X, p.Y}
}

// Coordinates unprojects a planar path into GeoJSON positions.
func (b Boundary) Coordinates(path []r2.Point) [][]float64 {
	coords := make([][]float64, len(path))
	for i, p := range path {
		coords[i] = b.Unproject(p)
	}
	return coords
}

// Extrusion returns the footprint as a polygon feature for a fill-extrusion
// layer, spanning base to top.
func (b Boundary) Extrusion(base, top float64) *geojson.Feature {
	f := geojson.NewPolygonFeature([][][]float64{b.Coordinates(b.ring.Closed())})
	f.SetProperty("base_height", base)
	f.SetProperty("height", top)
	return f
}
