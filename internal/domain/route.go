package domain

// Free-form address string. No validation or geocoding is applied.
type Location string

// Represents the input pair for a single optimization request.
// A RouteQuery exists only for the lifetime of one call.
type RouteQuery struct {
	Start Location
	End   Location
}

// Represents one proposed route returned by the traffic-data provider.
// A RouteCandidate has no identity beyond its fields and is never mutated
// after it is received.
type RouteCandidate struct {
	Start           Location
	End             Location
	DurationMinutes float64
	DistanceKm      float64
}
