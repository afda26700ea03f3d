package routegen

import (
	"encoding/binary"
	"math"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/dgryski/go-farm"
)

// Rough size of an encoded route, used to size the admission counters.
const approxRouteBytes = 4 << 10

// Cache memoizes encoded routes by polygon payload and parameters. Routes
// are deterministic, so a hit is indistinguishable from recomputing. A nil
// *Cache stores nothing.
type Cache struct {
	routes *ristretto.Cache[uint64, Route]
}

// NewCache returns a cache holding up to maxCost bytes of encoded routes.
func NewCache(maxCost int64) (*Cache, error) {
	counters := max(10*maxCost/approxRouteBytes, 1000)
	routes, err := ristretto.NewCache(&ristretto.Config[uint64, Route]{
		NumCounters:        counters,
		MaxCost:            maxCost,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{routes: routes}, nil
}

func (c *Cache) Get(key uint64) (Route, bool) {
	if c == nil {
		return Route{}, false
	}
	return c.routes.Get(key)
}

// Set stores r, costed by its encoded size. Admission is asynchronous and
// may be refused.
func (c *Cache) Set(key uint64, r Route) {
	if c == nil {
		return
	}
	c.routes.Set(key, r, int64(len(r.Body)))
}

// Wait blocks until pending sets are applied.
func (c *Cache) Wait() {
	if c == nil {
		return
	}
	c.routes.Wait()
}

func (c *Cache) Close() {
	if c == nil {
		return
	}
	c.routes.Close()
}

// routeKey fingerprints the exact polygon bytes together with every
// parameter bit pattern.
func routeKey(polygon []byte, p Params) uint64 {
	buf := make([]byte, 0, 7*8+len(polygon))
	for _, f := range []float64{p.BaseHeight, p.TopHeight, p.ToleranceWidth} {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(f))
	}
	for _, v := range []int{p.StepCount, int(p.Nesting), int(p.Degeneracy), int(p.Coordinates)} {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v))
	}
	buf = append(buf, polygon...)
	return farm.Fingerprint64(buf)
}
