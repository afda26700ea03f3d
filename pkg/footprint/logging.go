package footprint

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-kit/log"
	geojson "github.com/paulmach/go.geojson"

	"github.com/ColinToft/GeometricRoute/internal/util/footprint"
	"github.com/ColinToft/GeometricRoute/internal/util/reqid"
	"github.com/ColinToft/GeometricRoute/pkg/routegen"
)

type loggingService struct {
	logger log.Logger
	next   Service
}

func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{logger: logger, next: s}
}

func (s *loggingService) Summarize(ctx context.Context, polygon json.RawMessage, p routegen.Params) (sum routegen.Summary, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "Summarize",
			"request_id", reqid.FromContext(ctx),
			"area", sum.Area,
			"loops", sum.Loops,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Summarize(ctx, polygon, p)
}

func (s *loggingService) Extrusion(ctx context.Context, polygon json.RawMessage, base, top float64, space footprint.CoordinateSpace) (f *geojson.Feature, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "Extrusion",
			"request_id", reqid.FromContext(ctx),
			"base", base,
			"top", top,
			"space", space,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Extrusion(ctx, polygon, base, top, space)
}
