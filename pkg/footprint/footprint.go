package footprint

// Footprint service implementation

import (
	"context"
	"encoding/json"
	"math"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	geojson "github.com/paulmach/go.geojson"
	pkgerrors "github.com/pkg/errors"

	"github.com/ColinToft/GeometricRoute/internal/util/errors"
	"github.com/ColinToft/GeometricRoute/internal/util/footprint"
	"github.com/ColinToft/GeometricRoute/pkg/routegen"
)

type footprintService struct{}

func NewService() Service {
	return &footprintService{}
}

func (s *footprintService) Summarize(ctx context.Context, polygon json.RawMessage, p routegen.Params) (routegen.Summary, error) {
	if err := ctx.Err(); err != nil {
		return routegen.Summary{}, err
	}

	fc, b, err := read(polygon, p.Coordinates)
	if err != nil {
		return routegen.Summary{}, err
	}

	route, err := routegen.Build(fc, p)
	switch {
	case err == nil:
	case pkgerrors.Is(err, errors.ErrDegenerateOffset):
		// The footprint is still worth measuring when no loop fits inside it.
		level.Debug(logger).Log("during", "Summarize", "err", err)
		route = geojson.NewFeatureCollection()
	default:
		return routegen.Summary{}, err
	}
	return routegen.Summarize(b, route), nil
}

func (s *footprintService) Extrusion(ctx context.Context, polygon json.RawMessage, base, top float64, space footprint.CoordinateSpace) (*geojson.Feature, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if math.IsNaN(base) || math.IsInf(base, 0) || math.IsNaN(top) || math.IsInf(top, 0) {
		return nil, errors.InvalidParameters("extrusion heights %g..%g are not finite", base, top)
	}
	if base < 0 || top <= base {
		return nil, errors.InvalidParameters("extrusion heights %g..%g are not ascending from 0", base, top)
	}

	_, b, err := read(polygon, space)
	if err != nil {
		return nil, err
	}
	return b.Extrusion(base, top), nil
}

// read decodes and normalizes a drawn polygon payload.
func read(polygon json.RawMessage, space footprint.CoordinateSpace) (*geojson.FeatureCollection, footprint.Boundary, error) {
	fc, err := footprint.Decode(polygon)
	if err != nil {
		return nil, footprint.Boundary{}, err
	}
	b, err := footprint.Normalize(fc, space)
	if err != nil {
		return nil, footprint.Boundary{}, err
	}
	return fc, b, nil
}

var logger log.Logger

func init() {
	logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	logger = level.NewFilter(logger, level.AllowInfo())
}

// SetLogger replaces the package logger, e.g. to change the level filter.
func SetLogger(l log.Logger) {
	logger = l
}
