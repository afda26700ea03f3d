package geometry

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/ColinToft/GeometricRoute/internal/util/heap"
)

// Offsetting moves every edge of a ring along its normal by the same
// distance. Vertices follow the mitre of their two edges, so the offset
// ring is a "wavefront" whose vertices travel at constant velocity. An edge
// whose endpoints converge shrinks to nothing at a known distance; at that
// point its two vertices merge and the neighbouring edges meet directly.
// These edge events are processed in distance order from a priority queue.
// Split events (a reflex vertex running into another edge) are not modelled;
// a wavefront that crosses itself is reported with ErrNotSimple.

const parallelEpsilon = 1e-12

// ErrNotSimple is returned when an offset ring crosses itself or loses its area.
var ErrNotSimple = errors.New("offset ring is not simple")

// CollapseError reports the offset distance at which the ring shrank below
// three vertices.
type CollapseError struct {
	At float64
}

func (e *CollapseError) Error() string {
	return fmt.Sprintf("ring collapses at offset %g", e.At)
}

// Offset returns the counter-clockwise ring r moved outward by d, or inward
// when d is negative. The result is a fresh simple counter-clockwise ring.
func Offset(r Ring, d float64) (Ring, error) {
	if len(r) < 3 {
		return nil, &CollapseError{At: 0}
	}
	if d == 0 {
		return append(Ring(nil), r...), nil
	}

	sign := 1.0
	if d < 0 {
		sign = -1
	}
	target := math.Abs(d)

	w, ok := newWavefront(r, sign)
	if !ok {
		return nil, &CollapseError{At: 0}
	}
	if err := w.advance(target); err != nil {
		return nil, err
	}

	out := w.ringAt(target)
	if len(out) < 3 {
		return nil, &CollapseError{At: target}
	}
	if !out.Distinct(r.Scale()*parallelEpsilon) || !(out.SignedArea() > math.Abs(r.SignedArea())*parallelEpsilon) {
		return nil, errors.Wrapf(ErrNotSimple, "degenerate ring at offset %g", d)
	}
	if !IsSimple(out) {
		return nil, errors.Wrapf(ErrNotSimple, "self-intersection at offset %g", d)
	}
	return out, nil
}

type wavefront struct {
	// Per vertex. A vertex is at origin when the offset equals born and
	// moves by miter per unit of offset.
	origin  []r2.Point
	born    []float64
	miter   []r2.Point
	prev    []int
	next    []int
	outEdge []int
	alive   []bool

	// Per original edge.
	normal []r2.Point // unit normal in the direction of travel
	dir    []r2.Point // unit direction

	count int
	queue *heap.PriorityQueue
}

func newWavefront(r Ring, sign float64) (*wavefront, bool) {
	n := len(r)
	w := &wavefront{
		origin:  make([]r2.Point, 0, 2*n),
		born:    make([]float64, 0, 2*n),
		miter:   make([]r2.Point, 0, 2*n),
		prev:    make([]int, 0, 2*n),
		next:    make([]int, 0, 2*n),
		outEdge: make([]int, 0, 2*n),
		alive:   make([]bool, 0, 2*n),
		normal:  make([]r2.Point, n),
		dir:     make([]r2.Point, n),
		count:   n,
		queue:   heap.NewPriorityQueue(n),
	}

	for i := 0; i < n; i++ {
		t := r[(i+1)%n].Sub(r[i]).Normalize()
		w.dir[i] = t
		// Right-hand normal points outward on a counter-clockwise ring
		w.normal[i] = r2.Point{X: t.Y, Y: -t.X}.Mul(sign)
	}

	for i := 0; i < n; i++ {
		m, ok := miter(w.normal[(i+n-1)%n], w.normal[i])
		if !ok {
			return nil, false
		}
		w.origin = append(w.origin, r[i])
		w.born = append(w.born, 0)
		w.miter = append(w.miter, m)
		w.prev = append(w.prev, (i+n-1)%n)
		w.next = append(w.next, (i+1)%n)
		w.outEdge = append(w.outEdge, i)
		w.alive = append(w.alive, true)
	}

	for i := 0; i < n; i++ {
		w.schedule(i, 0)
	}
	return w, true
}

// miter returns the velocity of a vertex whose incoming and outgoing edges
// move along normals a and b. It fails when the edges point in opposite
// directions and the vertex would move infinitely fast.
func miter(a, b r2.Point) (r2.Point, bool) {
	denom := 1 + a.Dot(b)
	if denom < parallelEpsilon {
		return r2.Point{}, false
	}
	return a.Add(b).Mul(1 / denom), true
}

func (w *wavefront) position(v int, t float64) r2.Point {
	return w.origin[v].Add(w.miter[v].Mul(t - w.born[v]))
}

// schedule queues the collapse of the edge leaving v, if that edge shrinks.
func (w *wavefront) schedule(v int, now float64) {
	u := w.next[v]
	t := w.dir[w.outEdge[v]]
	rate := t.Dot(w.miter[u].Sub(w.miter[v]))
	if rate >= -parallelEpsilon {
		return
	}
	length := t.Dot(w.position(u, now).Sub(w.position(v, now)))
	w.queue.Push(v, u, now+math.Max(length, 0)/-rate)
}

// advance processes every edge event up to the target offset.
func (w *wavefront) advance(target float64) error {
	for w.queue.Len() > 0 {
		ev := w.queue.Peek()
		if ev.Priority > target {
			break
		}
		w.queue.Pop()

		v, u := ev.Value, ev.Other
		if !w.alive[v] || !w.alive[u] || w.next[v] != u {
			continue // stale
		}
		if err := w.collapse(v, u, ev.Priority); err != nil {
			return err
		}
	}
	return nil
}

// collapse merges the vertices v and u = next(v) at offset at.
func (w *wavefront) collapse(v, u int, at float64) error {
	if w.count <= 3 {
		return &CollapseError{At: at}
	}

	p, q := w.prev[v], w.next[u]
	m, ok := miter(w.normal[w.outEdge[p]], w.normal[w.outEdge[u]])
	if !ok {
		return &CollapseError{At: at}
	}

	x := len(w.origin)
	w.origin = append(w.origin, w.position(v, at).Add(w.position(u, at)).Mul(0.5))
	w.born = append(w.born, at)
	w.miter = append(w.miter, m)
	w.prev = append(w.prev, p)
	w.next = append(w.next, q)
	w.outEdge = append(w.outEdge, w.outEdge[u])
	w.alive = append(w.alive, true)

	w.next[p] = x
	w.prev[q] = x
	w.alive[v] = false
	w.alive[u] = false
	w.count--

	w.schedule(p, at)
	w.schedule(x, at)
	return nil
}

// ringAt walks the surviving vertices from the lowest-numbered one.
func (w *wavefront) ringAt(t float64) Ring {
	start := -1
	for i, ok := range w.alive {
		if ok {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	out := make(Ring, 0, w.count)
	v := start
	for i := 0; i < w.count; i++ {
		out = append(out, w.position(v, t))
		v = w.next[v]
		if v == start {
			break
		}
	}
	return out
}
