package routegen

import "github.com/ColinToft/GeometricRoute/internal/util/geometry"

// Loop is one elevation band of the route: an offset ring that climbs from
// ElevationStart to ElevationEnd. A Loop does not change once built.
type Loop struct {
	ring           geometry.Ring
	index          int
	offset         float64
	elevationStart float64
	elevationEnd   float64
	clamped        bool
}

// Ring returns a copy of the loop's counter-clockwise planar ring.
func (l Loop) Ring() geometry.Ring {
	return append(geometry.Ring(nil), l.ring...)
}

// Index is the step this loop was built for, counted from the lowest.
func (l Loop) Index() int { return l.index }

// Offset is the signed distance actually applied to the boundary.
func (l Loop) Offset() float64 { return l.offset }

func (l Loop) ElevationStart() float64 { return l.elevationStart }

func (l Loop) ElevationEnd() float64 { return l.elevationEnd }

// StepHeight is the climb over the loop.
func (l Loop) StepHeight() float64 { return l.elevationEnd - l.elevationStart }

// Clamped reports whether the requested offset was pulled back.
func (l Loop) Clamped() bool { return l.clamped }
