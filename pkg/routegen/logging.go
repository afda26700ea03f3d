package routegen

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-kit/log"

	"github.com/ColinToft/GeometricRoute/internal/util/reqid"
)

type loggingService struct {
	logger log.Logger
	next   Service
}

// NewLoggingService logs every call to s with its request id and duration.
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{logger: logger, next: s}
}

func (s *loggingService) GenerateRoute(ctx context.Context, polygon json.RawMessage, p Params) (r Route, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "GenerateRoute",
			"request_id", reqid.FromContext(ctx),
			"steps", p.StepCount,
			"tolerance", p.ToleranceWidth,
			"nesting", p.Nesting,
			"loops", r.Loops,
			"cached", r.Cached,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.GenerateRoute(ctx, polygon, p)
}

func (s *loggingService) Status(ctx context.Context) Status {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "Status",
			"request_id", reqid.FromContext(ctx),
			"took", time.Since(begin),
		)
	}(time.Now())
	return s.next.Status(ctx)
}
