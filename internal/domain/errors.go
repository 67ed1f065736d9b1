package domain

import "errors"

var (
	// Graph search exhausted without reaching the destination.
	ErrNoPathFound = errors.New("no path found")
	// Malformed coordinate text or non-finite coordinates.
	ErrInvalidGeometry = errors.New("invalid geometry")
	// Network failure, timeout or non-2xx answer from the road-routing provider.
	ErrProviderUnavailable = errors.New("routing provider unavailable")
	// Route lacks stored start/end hub references; recalculation is a no-op.
	ErrInsufficientRouteContext = errors.New("insufficient route context")

	ErrHubNotFound      = errors.New("hub not found")
	ErrRouteNotFound    = errors.New("route not found")
	ErrInvalidIncident  = errors.New("invalid incident")
	ErrSnapshotTooLarge = errors.New("graph snapshot too large")
	ErrNegativeWeight   = errors.New("negative edge weight")
)
