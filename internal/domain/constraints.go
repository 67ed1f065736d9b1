package domain

// Constraints and preferences attached to a route calculation request.
// Only Algorithm changes behavior; the other fields travel with the request.
type Constraints struct {
	Algorithm     string
	AvoidHighways bool
	AvoidTolls    bool
	VehicleType   string
}
