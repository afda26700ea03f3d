package geometry

import (
	"math"

	"github.com/golang/geo/r2"
)

// Checking a ring for self-intersection pairs every edge with every other
// edge. To keep that close to linear, edges are bucketed into square zones
// and only edges sharing a zone are compared.

type LineSegment struct {
	From r2.Point
	To   r2.Point
	Id   int // Index of the edge in its ring
}

type ZoneMap struct {
	ZoneWidth   float64
	ZonesPerRow int
	Origin      r2.Point
	Zones       map[int][]LineSegment
}

// Gets the distance from this line segment to a point, along with the
// parameter t of the closest point on the segment's line (0 at From, 1 at To).
func (l *LineSegment) DistanceTo(p r2.Point) (float64, float64) {
	d := l.To.Sub(l.From)
	lineLengthSquared := d.Dot(d)
	if lineLengthSquared == 0 {
		return p.Sub(l.From).Norm(), 0
	}

	t := p.Sub(l.From).Dot(d) / lineLengthSquared
	projection := l.From.Add(d.Mul(math.Max(0, math.Min(1, t))))

	return p.Sub(projection).Norm(), t
}

// orientation is positive when c is left of a->b, negative when right and 0 when collinear.
func orientation(a, b, c r2.Point) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// Checks if p lies within the bounding box of the segment. Only meaningful for collinear p.
func (l *LineSegment) spans(p r2.Point) bool {
	return p.X >= math.Min(l.From.X, l.To.X) && p.X <= math.Max(l.From.X, l.To.X) &&
		p.Y >= math.Min(l.From.Y, l.To.Y) && p.Y <= math.Max(l.From.Y, l.To.Y)
}

// Intersects checks if two segments share at least one point. Touching counts.
func (l *LineSegment) Intersects(other LineSegment) bool {
	d1 := orientation(other.From, other.To, l.From)
	d2 := orientation(other.From, other.To, l.To)
	d3 := orientation(l.From, l.To, other.From)
	d4 := orientation(l.From, l.To, other.To)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	switch {
	case d1 == 0 && other.spans(l.From):
		return true
	case d2 == 0 && other.spans(l.To):
		return true
	case d3 == 0 && l.spans(other.From):
		return true
	case d4 == 0 && l.spans(other.To):
		return true
	}
	return false
}

// Checks if two segments that share an endpoint fold back over each other.
func (l *LineSegment) FoldsBackOnto(next LineSegment) bool {
	a := l.To.Sub(l.From)
	b := next.To.Sub(next.From)
	return math.Abs(a.Cross(b)) <= 1e-12*a.Norm()*b.Norm() && a.Dot(b) < 0
}

// GetZones returns every zone touched by the bounding box of the segment.
func (zoneMap *ZoneMap) GetZones(segment *LineSegment) []int {
	x0 := int(math.Floor((math.Min(segment.From.X, segment.To.X) - zoneMap.Origin.X) / zoneMap.ZoneWidth))
	x1 := int(math.Floor((math.Max(segment.From.X, segment.To.X) - zoneMap.Origin.X) / zoneMap.ZoneWidth))
	y0 := int(math.Floor((math.Min(segment.From.Y, segment.To.Y) - zoneMap.Origin.Y) / zoneMap.ZoneWidth))
	y1 := int(math.Floor((math.Max(segment.From.Y, segment.To.Y) - zoneMap.Origin.Y) / zoneMap.ZoneWidth))

	zones := make([]int, 0, (x1-x0+1)*(y1-y0+1))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			zones = append(zones, x+y*zoneMap.ZonesPerRow)
		}
	}
	return zones
}

// NewZoneMap creates a zone map covering bounds with roughly perRow zones per side.
func NewZoneMap(bounds r2.Rect, perRow int) ZoneMap {
	if perRow < 1 {
		perRow = 1
	}
	size := bounds.Size()
	width := math.Max(size.X, size.Y) / float64(perRow)
	if !(width > 0) {
		width = 1
	}
	return ZoneMap{
		ZoneWidth:   width,
		ZonesPerRow: perRow + 1,
		Origin:      bounds.Lo(),
		Zones:       make(map[int][]LineSegment),
	}
}

// AddSegmentAndGetIntersections adds the segment and returns the segments
// added before it that it intersects. Segments accepted by skip are ignored.
func (zoneMap *ZoneMap) AddSegmentAndGetIntersections(segment *LineSegment, skip func(other LineSegment) bool) []LineSegment {
	intersectingZones := zoneMap.GetZones(segment)

	seen := make(map[int]bool)
	intersecting := make([]LineSegment, 0)
	for _, zone := range intersectingZones {
		for _, other := range zoneMap.Zones[zone] {
			if seen[other.Id] {
				continue
			}
			seen[other.Id] = true
			if skip != nil && skip(other) {
				continue
			}
			if segment.Intersects(other) {
				intersecting = append(intersecting, other)
			}
		}
	}

	// Add the edge to the zones
	for _, zone := range intersectingZones {
		zoneMap.Zones[zone] = append(zoneMap.Zones[zone], *segment)
	}

	return intersecting
}

// IsSimple reports whether the ring has no self-intersections. Adjacent
// edges may only share their common point and must not fold back.
func IsSimple(r Ring) bool {
	n := len(r)
	if n < 3 {
		return false
	}

	zoneMap := NewZoneMap(r.Bounds(), int(math.Ceil(math.Sqrt(float64(n)))))
	segments := make([]LineSegment, n)
	for i := range segments {
		segments[i] = LineSegment{From: r[i], To: r[(i+1)%n], Id: i}
	}

	for i := range segments {
		next := segments[(i+1)%n]
		if segments[i].FoldsBackOnto(next) {
			return false
		}

		adjacent := func(other LineSegment) bool {
			return other.Id == (i+n-1)%n || other.Id == (i+1)%n
		}
		if len(zoneMap.AddSegmentAndGetIntersections(&segments[i], adjacent)) > 0 {
			return false
		}
	}
	return true
}
