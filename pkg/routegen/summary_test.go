package routegen

import (
	"testing"

	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ColinToft/GeometricRoute/internal/util/footprint"
)

func TestSummarizeSquare(t *testing.T) {
	fc := squareFC()
	b, err := footprint.Normalize(fc, footprint.Planar)
	require.NoError(t, err)

	s := Summarize(b, GeometricRoute(fc, squareParams()))
	assert.InDelta(t, 100, s.Area, 1e-9)
	assert.InDelta(t, 40, s.Perimeter, 1e-9)
	assert.InDelta(t, 32+24+16+8, s.LoopLength, 1e-9)
	assert.InDelta(t, 80+20, s.RouteDistance, 1e-9)
	assert.Equal(t, 4, s.Loops)
}

func TestSummarizeReadsDecodedRoute(t *testing.T) {
	fc := squareFC()
	b, err := footprint.Normalize(fc, footprint.Planar)
	require.NoError(t, err)

	body, err := GeometricRoute(fc, squareParams()).MarshalJSON()
	require.NoError(t, err)
	decoded, err := geojson.UnmarshalFeatureCollection(body)
	require.NoError(t, err)

	assert.Equal(t, Summarize(b, GeometricRoute(fc, squareParams())), Summarize(b, decoded))
}

func TestSummarizeEmptyRoute(t *testing.T) {
	b, err := footprint.Normalize(squareFC(), footprint.Planar)
	require.NoError(t, err)

	s := Summarize(b, nil)
	assert.Zero(t, s.Loops)
	assert.Zero(t, s.RouteDistance)
	assert.InDelta(t, 100, s.Area, 1e-9)

	assert.Equal(t, Summary{}, Summarize(footprint.Boundary{}, geojson.NewFeatureCollection()))
}
