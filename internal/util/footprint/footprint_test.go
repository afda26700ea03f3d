package footprint

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ColinToft/GeometricRoute/internal/util/errors"
	"github.com/ColinToft/GeometricRoute/internal/util/geometry"
)

// Clockwise as drawn; normalization must flip it.
const squareFeature = `{
	"type": "Feature",
	"properties": {},
	"geometry": {"type": "Polygon", "coordinates": [[[0,0],[0,10],[10,10],[10,0],[0,0]]]}
}`

func TestDecodeVariants(t *testing.T) {
	for name, payload := range map[string]string{
		"feature":    squareFeature,
		"collection": `{"type":"FeatureCollection","features":[` + squareFeature + `]}`,
		"geometry":   `{"type":"Polygon","coordinates":[[[0,0],[0,10],[10,10],[10,0],[0,0]]]}`,
	} {
		t.Run(name, func(t *testing.T) {
			fc, err := Decode([]byte(payload))
			require.NoError(t, err)
			require.Len(t, fc.Features, 1)
			assert.True(t, fc.Features[0].Geometry.IsPolygon())
		})
	}
}

func TestDecodeRejectsJunk(t *testing.T) {
	for _, payload := range []string{``, `[]`, `{"coordinates":[]}`, `{"type":"Feature","geometry":`} {
		_, err := Decode([]byte(payload))
		require.Error(t, err, payload)
		assert.True(t, errors.IsDomain(err), payload)
	}
}

func TestNormalizeOrientation(t *testing.T) {
	fc, err := Decode([]byte(squareFeature))
	require.NoError(t, err)

	b, err := Normalize(fc, Planar)
	require.NoError(t, err)

	ring := b.Ring()
	require.Len(t, ring, 4)
	assert.True(t, ring.IsCCW())
	assert.Equal(t, r2.Point{X: 0, Y: 0}, ring[0], "drawn first vertex stays first")
	assert.Equal(t, r2.Point{X: 10, Y: 0}, ring[1])
	assert.InDelta(t, 100, b.Area(), 1e-12)
	assert.InDelta(t, 40, b.Perimeter(), 1e-12)
	assert.Equal(t, Planar, b.Space())
}

func TestNormalizeIgnoresHolesAndOtherFeatures(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	fc.AddFeature(geojson.NewPointFeature([]float64{5, 5}))
	fc.AddFeature(geojson.NewPolygonFeature([][][]float64{
		{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
		{{4, 4}, {6, 4}, {6, 6}, {4, 6}, {4, 4}},
	}))
	fc.AddFeature(geojson.NewPolygonFeature([][][]float64{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}))

	b, err := Normalize(fc, Planar)
	require.NoError(t, err)
	assert.Len(t, b.Ring(), 4)
	assert.InDelta(t, 100, b.Area(), 1e-12)
}

func TestNormalizeErrors(t *testing.T) {
	cases := map[string]*geojson.FeatureCollection{
		"empty":    geojson.NewFeatureCollection(),
		"no polygon": geojson.NewFeatureCollection().AddFeature(
			geojson.NewLineStringFeature([][]float64{{0, 0}, {1, 1}})),
		"two distinct vertices": geojson.NewFeatureCollection().AddFeature(
			geojson.NewPolygonFeature([][][]float64{{{0, 0}, {1, 1}, {1, 1}, {0, 0}}})),
		"collinear": geojson.NewFeatureCollection().AddFeature(
			geojson.NewPolygonFeature([][][]float64{{{0, 0}, {1, 1}, {2, 2}, {0, 0}}})),
		"short coordinate": geojson.NewFeatureCollection().AddFeature(
			geojson.NewPolygonFeature([][][]float64{{{0, 0}, {1}, {2, 2}, {0, 0}}})),
		"no rings": geojson.NewFeatureCollection().AddFeature(
			geojson.NewPolygonFeature([][][]float64{})),
		"nan": geojson.NewFeatureCollection().AddFeature(
			geojson.NewPolygonFeature([][][]float64{{{0, 0}, {math.NaN(), 1}, {2, 0}, {0, 0}}})),
	}
	for name, fc := range cases {
		t.Run(name, func(t *testing.T) {
			b, err := Normalize(fc, Planar)
			require.Error(t, err)
			assert.Equal(t, errors.ErrInvalidGeometry, errors.Kind(err))
			assert.True(t, b.IsZero())
		})
	}
}

func TestNormalizeNilIsContractViolation(t *testing.T) {
	_, err := Normalize(nil, Planar)
	assert.Equal(t, errors.ErrContractViolation, errors.Kind(err))
}

func TestGeographicProjection(t *testing.T) {
	// A 0.001 degree square on the equator, drawn counter-clockwise.
	b, err := NewBoundary([][][]float64{{{0, 0}, {0.001, 0}, {0.001, 0.001}, {0, 0.001}, {0, 0}}}, Geographic)
	require.NoError(t, err)

	side := EarthRadiusMeters * 0.001 * math.Pi / 180
	assert.InEpsilon(t, side*side, b.Area(), 1e-6)
	assert.InEpsilon(t, 4*side, b.Perimeter(), 1e-6)

	ring := b.Ring()
	for i, p := range ring {
		back := b.Unproject(p)
		want := [][]float64{{0, 0}, {0.001, 0}, {0.001, 0.001}, {0, 0.001}}[i]
		assert.InDelta(t, want[0], back[0], 1e-12)
		assert.InDelta(t, want[1], back[1], 1e-12)
	}
}

func TestExtrusion(t *testing.T) {
	b, err := NewBoundary([][][]float64{{{0, 0}, {0, 10}, {10, 10}, {10, 0}, {0, 0}}}, Planar)
	require.NoError(t, err)

	f := b.Extrusion(40, 200)
	require.True(t, f.Geometry.IsPolygon())
	ring := f.Geometry.Polygon[0]
	require.Len(t, ring, 5)
	assert.Equal(t, ring[0], ring[4])
	assert.True(t, geometry.Ring{{X: ring[0][0], Y: ring[0][1]}, {X: ring[1][0], Y: ring[1][1]}, {X: ring[2][0], Y: ring[2][1]}}.IsCCW())

	base, err := f.PropertyFloat64("base_height")
	require.NoError(t, err)
	assert.Equal(t, 40.0, base)
	top, err := f.PropertyFloat64("height")
	require.NoError(t, err)
	assert.Equal(t, 200.0, top)
}

func TestParseCoordinateSpace(t *testing.T) {
	s, err := ParseCoordinateSpace("Geographic")
	require.NoError(t, err)
	assert.Equal(t, Geographic, s)

	s, err = ParseCoordinateSpace("")
	require.NoError(t, err)
	assert.Equal(t, Geographic, s)

	s, err = ParseCoordinateSpace(" planar ")
	require.NoError(t, err)
	assert.Equal(t, Planar, s)

	_, err = ParseCoordinateSpace("mercator")
	assert.Error(t, err)

	var parsed CoordinateSpace
	require.NoError(t, parsed.UnmarshalText([]byte("geographic")))
	assert.Equal(t, "geographic", parsed.String())
}
