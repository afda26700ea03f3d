package routegen

import (
	"fmt"
	"math"
	"strings"

	"github.com/ColinToft/GeometricRoute/internal/util/errors"
	"github.com/ColinToft/GeometricRoute/internal/util/footprint"
)

// MaxStepCount bounds the number of loops a single route may ask for.
const MaxStepCount = 1000

// Params are the route parameters. The JSON names are the ones the map
// page sends.
type Params struct {
	// Elevation of the lowest loop's start and the highest loop's end.
	BaseHeight float64 `json:"inBaseHi"`
	TopHeight  float64 `json:"inTopHi"`

	// Number of ascending loops.
	StepCount int `json:"inStepCount"`

	// Lateral distance between the boundary and the loops, in metres for
	// geographic footprints and in ring units for planar ones.
	ToleranceWidth float64 `json:"inToleranceWidth"`

	Nesting     NestingPolicy             `json:"nesting,omitempty"`
	Degeneracy  DegeneracyPolicy          `json:"degeneracy,omitempty"`
	Coordinates footprint.CoordinateSpace `json:"coordinates"`
}

// DefaultParams matches the test polygon on the map page, which draws in
// [lng, lat].
func DefaultParams() Params {
	return Params{
		BaseHeight:     0,
		TopHeight:      20,
		StepCount:      4,
		ToleranceWidth: 6,
		Coordinates:    footprint.Geographic,
	}
}

// Validate reports ErrInvalidParameters for any parameter set that cannot
// describe a route.
func (p Params) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"inBaseHi", p.BaseHeight},
		{"inTopHi", p.TopHeight},
		{"inToleranceWidth", p.ToleranceWidth},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return errors.InvalidParameters("%s is %v", f.name, f.value)
		}
	}

	switch {
	case p.StepCount < 1:
		return errors.InvalidParameters("step count %d is below 1", p.StepCount)
	case p.StepCount > MaxStepCount:
		return errors.InvalidParameters("step count %d is above %d", p.StepCount, MaxStepCount)
	case p.BaseHeight < 0:
		return errors.InvalidParameters("base height %g is negative", p.BaseHeight)
	case p.TopHeight <= p.BaseHeight:
		return errors.InvalidParameters("top height %g is not above base height %g", p.TopHeight, p.BaseHeight)
	case p.ToleranceWidth < 0:
		return errors.InvalidParameters("tolerance width %g is negative", p.ToleranceWidth)
	case p.Nesting < NestInward || p.Nesting > NestStandoff:
		return errors.InvalidParameters("unknown nesting policy %d", int(p.Nesting))
	case p.Degeneracy < ClampDegenerate || p.Degeneracy > DropDegenerate:
		return errors.InvalidParameters("unknown degeneracy policy %d", int(p.Degeneracy))
	case p.Coordinates < footprint.Planar || p.Coordinates > footprint.Geographic:
		return errors.InvalidParameters("unknown coordinate space %d", int(p.Coordinates))
	}
	return nil
}

// offset returns the signed offset of loop i: negative shrinks the ring.
func (p Params) offset(i int) float64 {
	switch p.Nesting {
	case NestOutward:
		return p.ToleranceWidth * float64(i+1)
	case NestStandoff:
		return p.ToleranceWidth
	default:
		return -p.ToleranceWidth * float64(i+1)
	}
}

// band returns the elevation at the lower edge of band j. Band k ends
// exactly at the top height.
func (p Params) band(j int) float64 {
	if j >= p.StepCount {
		return p.TopHeight
	}
	return p.BaseHeight + (p.TopHeight-p.BaseHeight)*float64(j)/float64(p.StepCount)
}

// NestingPolicy decides where each loop sits relative to the boundary.
type NestingPolicy int

const (
	// NestInward shrinks loop i by the tolerance width times i+1, so the
	// route climbs inside the footprint.
	NestInward NestingPolicy = iota
	// NestOutward grows loop i by the tolerance width times i+1.
	NestOutward
	// NestStandoff keeps every loop one tolerance width outside the
	// footprint, climbing its facade.
	NestStandoff
)

var nestingNames = []string{"inward", "outward", "standoff"}

func (n NestingPolicy) String() string {
	if n >= 0 && int(n) < len(nestingNames) {
		return nestingNames[n]
	}
	return fmt.Sprintf("NestingPolicy(%d)", int(n))
}

func (n NestingPolicy) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

func (n *NestingPolicy) UnmarshalText(text []byte) error {
	i, err := lookupPolicy(nestingNames, string(text))
	if err != nil {
		return errors.InvalidParameters("nesting policy: %v", err)
	}
	*n = NestingPolicy(i)
	return nil
}

// DegeneracyPolicy decides what happens to a loop whose offset collapses
// or folds the ring.
type DegeneracyPolicy int

const (
	// ClampDegenerate pulls the offset back to the largest valid distance,
	// so every step keeps a loop.
	ClampDegenerate DegeneracyPolicy = iota
	// DropDegenerate leaves the loop out of the route.
	DropDegenerate
)

var degeneracyNames = []string{"clamp", "drop"}

func (d DegeneracyPolicy) String() string {
	if d >= 0 && int(d) < len(degeneracyNames) {
		return degeneracyNames[d]
	}
	return fmt.Sprintf("DegeneracyPolicy(%d)", int(d))
}

func (d DegeneracyPolicy) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *DegeneracyPolicy) UnmarshalText(text []byte) error {
	i, err := lookupPolicy(degeneracyNames, string(text))
	if err != nil {
		return errors.InvalidParameters("degeneracy policy: %v", err)
	}
	*d = DegeneracyPolicy(i)
	return nil
}

// lookupPolicy maps a name to its index. The empty string is the default.
func lookupPolicy(names []string, s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, nil
	}
	for i, name := range names {
		if name == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%q is not one of %s", s, strings.Join(names, ", "))
}
