package routegen

// Route generation service implementation

import (
	"context"
	"encoding/json"
	"os"
	"sync/atomic"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	geojson "github.com/paulmach/go.geojson"

	"github.com/ColinToft/GeometricRoute/internal/util/footprint"
)

type routeGenService struct {
	cache *Cache

	generated atomic.Int64
	empty     atomic.Int64
	hits      atomic.Int64
}

// NewService returns the route service. A nil cache disables memoization.
func NewService(cache *Cache) Service {
	return &routeGenService{cache: cache}
}

func (s *routeGenService) GenerateRoute(ctx context.Context, polygon json.RawMessage, p Params) (Route, error) {
	if err := ctx.Err(); err != nil {
		return Route{}, err
	}

	key := routeKey(polygon, p)
	if r, ok := s.cache.Get(key); ok {
		s.hits.Add(1)
		r.Cached = true
		return r, nil
	}

	fc := generate(polygon, p)
	body, err := fc.MarshalJSON()
	if err != nil {
		return Route{}, err
	}

	r := Route{Body: body, Loops: len(fc.Features)}
	s.cache.Set(key, r)

	s.generated.Add(1)
	if r.Loops == 0 {
		s.empty.Add(1)
	}
	return r, nil
}

// generate decodes the drawn payload and runs the route transform on it.
func generate(polygon json.RawMessage, p Params) *geojson.FeatureCollection {
	fc, err := footprint.Decode(polygon)
	if err != nil {
		level.Debug(logger).Log("during", "Decode", "err", err)
		return geojson.NewFeatureCollection()
	}
	return GeometricRoute(fc, p)
}

func (s *routeGenService) Status(_ context.Context) Status {
	return Status{
		GeneratedRoutes: s.generated.Load(),
		EmptyRoutes:     s.empty.Load(),
		CacheHits:       s.hits.Load(),
		CacheEnabled:    s.cache != nil,
	}
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
