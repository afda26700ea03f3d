package routegen

// Splitting the footprint into offset loops, one per elevation band.

import (
	"math"

	"github.com/go-kit/log/level"
	pkgerrors "github.com/pkg/errors"

	"github.com/ColinToft/GeometricRoute/internal/util/errors"
	"github.com/ColinToft/GeometricRoute/internal/util/footprint"
	"github.com/ColinToft/GeometricRoute/internal/util/geometry"
)

const (
	// A clamped loop stops just short of the distance at which it collapses.
	clampRatio = 0.99

	// Bisection steps when searching for the largest valid offset.
	clampSteps = 64
)

// Partition builds the loops of the route around b. Loop i is offset by
// the nesting policy and spans band i of [BaseHeight, TopHeight].
func Partition(b footprint.Boundary, p Params) ([]Loop, error) {
	if b.IsZero() {
		return nil, errors.ContractViolation("partitioning an empty boundary")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	ring := b.Ring()
	loops := make([]Loop, 0, p.StepCount)
	for i := 0; i < p.StepCount; i++ {
		want := p.offset(i)
		r, got, err := offsetRing(ring, want, p.Degeneracy)
		if err != nil {
			level.Debug(logger).Log("during", "Partition", "loop", i, "offset", want, "err", err)
			continue
		}
		loops = append(loops, Loop{
			ring:           r,
			index:          i,
			offset:         got,
			elevationStart: p.band(i),
			elevationEnd:   p.band(i + 1),
			clamped:        got != want,
		})
	}

	if len(loops) == 0 {
		return nil, errors.DegenerateOffset("all %d loops collapse at tolerance width %g", p.StepCount, p.ToleranceWidth)
	}
	return loops, nil
}

// offsetRing offsets r by d, applying the degeneracy policy when the
// offset ring collapses or crosses itself. It returns the distance used.
func offsetRing(r geometry.Ring, d float64, policy DegeneracyPolicy) (geometry.Ring, float64, error) {
	out, err := geometry.Offset(r, d)
	if err == nil {
		return out, d, nil
	}
	if policy == DropDegenerate {
		return nil, d, errors.DegenerateOffset("offset %g: %v", d, err)
	}
	out, got, ok := clampOffset(r, d, err)
	if !ok {
		return nil, d, errors.DegenerateOffset("offset %g: no valid offset toward it: %v", d, err)
	}
	return out, got, nil
}

// clampOffset finds the largest offset toward d that still gives a valid
// ring. A known collapse distance is tried first; otherwise the distance is
// bisected between the boundary itself and d. The search is deterministic.
// It reports false when no offset away from the boundary is valid, as for
// a boundary that folds back on itself.
func clampOffset(r geometry.Ring, d float64, cause error) (geometry.Ring, float64, bool) {
	sign := math.Copysign(1, d)

	var collapse *geometry.CollapseError
	if pkgerrors.As(cause, &collapse) && collapse.At > 0 && collapse.At <= math.Abs(d) {
		near := sign * collapse.At * clampRatio
		if out, err := geometry.Offset(r, near); err == nil {
			return out, near, true
		}
	}

	lo, hi := 0.0, math.Abs(d)
	var best geometry.Ring
	for step := 0; step < clampSteps; step++ {
		mid := lo + (hi-lo)/2
		if mid <= lo || mid >= hi {
			break
		}
		out, err := geometry.Offset(r, sign*mid)
		if err != nil {
			hi = mid
			continue
		}
		lo, best = mid, out
	}
	if best == nil {
		return nil, 0, false
	}
	return best, sign * lo, true
}
