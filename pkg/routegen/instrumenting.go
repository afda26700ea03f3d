package routegen

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-kit/kit/metrics"
)

type instrumentingService struct {
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
	loopCount      metrics.Histogram
	next           Service
}

// NewInstrumentingService counts and times calls to s and records how many
// loops each generated route has.
func NewInstrumentingService(counter metrics.Counter, latency, loops metrics.Histogram, s Service) Service {
	return &instrumentingService{
		requestCount:   counter,
		requestLatency: latency,
		loopCount:      loops,
		next:           s,
	}
}

func (s *instrumentingService) GenerateRoute(ctx context.Context, polygon json.RawMessage, p Params) (r Route, err error) {
	defer func(begin time.Time) {
		lvs := []string{"method", "generate_route", "cached", fmt.Sprint(r.Cached), "error", fmt.Sprint(err != nil)}
		s.requestCount.With(lvs...).Add(1)
		s.requestLatency.With(lvs...).Observe(time.Since(begin).Seconds())
		if err == nil {
			s.loopCount.Observe(float64(r.Loops))
		}
	}(time.Now())
	return s.next.GenerateRoute(ctx, polygon, p)
}

func (s *instrumentingService) Status(ctx context.Context) Status {
	defer func(begin time.Time) {
		lvs := []string{"method", "status", "cached", "false", "error", "false"}
		s.requestCount.With(lvs...).Add(1)
		s.requestLatency.With(lvs...).Observe(time.Since(begin).Seconds())
	}(time.Now())
	return s.next.Status(ctx)
}
