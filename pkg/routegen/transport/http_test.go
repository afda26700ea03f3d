package transport

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-kit/log"
	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ColinToft/GeometricRoute/internal/util/footprint"
	"github.com/ColinToft/GeometricRoute/internal/util/reqid"
	"github.com/ColinToft/GeometricRoute/pkg/routegen"
	"github.com/ColinToft/GeometricRoute/pkg/routegen/endpoints"
)

const square = `{"type":"Polygon","coordinates":[[[0,0],[0,10],[10,10],[10,0],[0,0]]]}`

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc := routegen.NewService(nil)
	srv := httptest.NewServer(NewHTTPHandler(endpoints.NewEndpointSet(svc), log.NewNopLogger()))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/route", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

func TestRoute(t *testing.T) {
	srv := newServer(t)

	resp, body := post(t, srv, `{"polygon":`+square+`,"params":{"inBaseHi":0,"inTopHi":20,"inStepCount":4,"inToleranceWidth":1,"coordinates":"planar"}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "application/geo+json", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get(reqid.Header))

	fc, err := geojson.UnmarshalFeatureCollection(body)
	require.NoError(t, err)
	require.Len(t, fc.Features, 4)
	assert.InDelta(t, 5, fc.Features[0].PropertyMustFloat64("STEPHEIGHT"), 1e-12)
}

func TestRouteDefaultsParams(t *testing.T) {
	srv := newServer(t)

	resp, body := post(t, srv, `{"polygon":`+square+`}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	fc, err := geojson.UnmarshalFeatureCollection(body)
	require.NoError(t, err)
	assert.Len(t, fc.Features, routegen.DefaultParams().StepCount)
}

// A footprint of roughly 87 by 89 metres drawn in [lng, lat], as the map
// page sends it.
const lngLatRect = `{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[27.176,38.454],[27.177,38.454],[27.177,38.4548],[27.176,38.4548],[27.176,38.454]]]}}`

func TestRouteIsGeographicByDefault(t *testing.T) {
	srv := newServer(t)

	resp, body := post(t, srv, `{"polygon":`+lngLatRect+`,"params":{"inBaseHi":0,"inTopHi":20,"inStepCount":4,"inToleranceWidth":6}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	fc, err := geojson.UnmarshalFeatureCollection(body)
	require.NoError(t, err)
	require.Len(t, fc.Features, 4)

	lat0 := (38.454 + 38.4548) / 2
	width := footprint.EarthRadiusMeters * math.Cos(lat0*math.Pi/180) * (27.177 - 27.176) * math.Pi / 180
	height := footprint.EarthRadiusMeters * (38.4548 - 38.454) * math.Pi / 180
	require.InDelta(t, 87, width, 1)
	require.InDelta(t, 89, height, 1)

	for i, f := range fc.Features {
		inset := 2 * 6 * float64(i+1)
		assert.InDelta(t, 2*(width-inset)+2*(height-inset), f.PropertyMustFloat64("LOOPLENGTH"), 1e-6, "loop %d", i)

		c := f.Geometry.LineString[0]
		assert.True(t, c[0] > 27.176 && c[0] < 27.177, "loop %d lng %v", i, c[0])
		assert.True(t, c[1] > 38.454 && c[1] < 38.4548, "loop %d lat %v", i, c[1])
	}
}

func TestRouteKeepsDefaultsForMissingParams(t *testing.T) {
	srv := newServer(t)

	resp, body := post(t, srv, `{"polygon":`+lngLatRect+`,"params":{"inStepCount":3}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	fc, err := geojson.UnmarshalFeatureCollection(body)
	require.NoError(t, err)
	require.Len(t, fc.Features, 3)

	top := routegen.DefaultParams().TopHeight
	last := fc.Features[2].PropertyMustFloat64("STEPHEIGHT")
	assert.InDelta(t, top/3, last, 1e-9)
}

func TestRouteWithoutPolygonIsEmpty(t *testing.T) {
	srv := newServer(t)

	resp, body := post(t, srv, `{"polygon":{"type":"FeatureCollection","features":[]}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(body))

	resp, body = post(t, srv, `{"polygon":`+square+`,"params":{"inStepCount":0}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(body))
}

func TestRouteBadRequest(t *testing.T) {
	srv := newServer(t)

	for _, body := range []string{
		`{"polygon":`,
		`{}`,
		`{"polygon":` + square + `,"params":{"nesting":"zigzag"}}`,
	} {
		resp, out := post(t, srv, body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)

		var e map[string]string
		require.NoError(t, json.Unmarshal(out, &e), body)
		assert.NotEmpty(t, e["error"], body)
	}
}

func TestStatusAndMetrics(t *testing.T) {
	srv := newServer(t)
	post(t, srv, `{"polygon":`+square+`}`)

	resp, err := http.Get(srv.URL + "/api/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status routegen.Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, int64(1), status.GeneratedRoutes)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUnknownPath(t *testing.T) {
	srv := newServer(t)

	for _, path := range []string{"/api/generate", "/api/route"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	srv := newServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/status", nil)
	require.NoError(t, err)
	req.Header.Set(reqid.Header, "trace-7")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "trace-7", resp.Header.Get(reqid.Header))
}
