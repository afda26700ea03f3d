package routegen

import "gonum.org/v1/gonum/floats"

// Profile spreads the climb from start to end over a path by arc length.
// cum holds the cumulative arc length at every vertex, starting at 0. The
// first elevation is exactly start and the last exactly end; in between the
// values never decrease.
func Profile(cum []float64, start, end float64) []float64 {
	n := len(cum)
	if n == 0 {
		return nil
	}

	out := make([]float64, n)
	total := cum[n-1]
	if total > 0 {
		floats.ScaleTo(out, (end-start)/total, cum)
	} else if n > 1 {
		// A path with no length climbs evenly per vertex.
		for i := range out {
			out[i] = (end - start) * float64(i) / float64(n-1)
		}
	}
	floats.AddConst(start, out)
	for i := range out {
		out[i] = min(out[i], end)
	}

	out[0] = start
	if n > 1 {
		out[n-1] = end
	}
	return out
}
