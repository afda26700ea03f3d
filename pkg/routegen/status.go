package routegen

// Status is the status of the route generator service
type Status struct {
	// The number of routes that have been generated
	GeneratedRoutes int64 `json:"generated_routes"`

	// How many of those had no loops
	EmptyRoutes int64 `json:"empty_routes"`

	// Routes served from the cache without recomputing
	CacheHits int64 `json:"cache_hits"`

	// Whether routes are memoized
	CacheEnabled bool `json:"cache_enabled"`
}
