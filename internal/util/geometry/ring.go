// Package geometry holds the planar ring operations behind route generation.
// A Ring is counter-clockwise when its signed area is positive. All
// lengths and areas are planar (Euclidean), in the units of the points.
package geometry

import (
	"math"

	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/floats"
)

// Ring is an implicitly closed sequence of points: the first point is not
// repeated at the end.
type Ring []r2.Point

// SignedArea returns the shoelace area, positive for counter-clockwise rings.
func (r Ring) SignedArea() float64 {
	n := len(r)
	if n < 3 {
		return 0
	}
	var doubleArea float64
	for i := 0; i < n; i++ {
		doubleArea += r[i].Cross(r[(i+1)%n])
	}
	return doubleArea / 2
}

// IsCCW reports whether the ring winds counter-clockwise.
func (r Ring) IsCCW() bool {
	return r.SignedArea() > 0
}

// Reversed returns the ring with the opposite winding. The first point stays first.
func (r Ring) Reversed() Ring {
	n := len(r)
	out := make(Ring, n)
	if n == 0 {
		return out
	}
	out[0] = r[0]
	for i := 1; i < n; i++ {
		out[i] = r[n-i]
	}
	return out
}

// Closed returns the ring as a path that ends back at its first point.
func (r Ring) Closed() []r2.Point {
	if len(r) == 0 {
		return nil
	}
	out := make([]r2.Point, 0, len(r)+1)
	out = append(out, r...)
	return append(out, r[0])
}

// SegmentLengths returns the length of every edge, including the closing edge.
func (r Ring) SegmentLengths() []float64 {
	n := len(r)
	lengths := make([]float64, n)
	for i := 0; i < n; i++ {
		lengths[i] = r[(i+1)%n].Sub(r[i]).Norm()
	}
	return lengths
}

// Perimeter returns the length of the closed ring.
func (r Ring) Perimeter() float64 {
	if len(r) < 2 {
		return 0
	}
	return floats.Sum(r.SegmentLengths())
}

// Cumulative returns the arc length from the first point to every point of
// the closed path, so it has len(r)+1 entries, starting at 0 and ending at
// the perimeter.
func (r Ring) Cumulative() []float64 {
	lengths := r.SegmentLengths()
	cum := make([]float64, len(lengths)+1)
	floats.CumSum(cum[1:], lengths)
	return cum
}

// Bounds returns the bounding rectangle of the ring.
func (r Ring) Bounds() r2.Rect {
	return r2.RectFromPoints(r...)
}

// Scale is the length of the bounding box diagonal, used for tolerances.
func (r Ring) Scale() float64 {
	if len(r) == 0 {
		return 0
	}
	return r.Bounds().Size().Norm()
}

// Distinct reports whether consecutive points (including the closing pair)
// are further apart than eps.
func (r Ring) Distinct(eps float64) bool {
	for _, l := range r.SegmentLengths() {
		if !(l > eps) {
			return false
		}
	}
	return true
}

// Finite reports whether every coordinate is a finite number.
func (r Ring) Finite() bool {
	for _, p := range r {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return false
		}
	}
	return true
}
