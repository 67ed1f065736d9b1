package domain

import "fmt"

// A linear hazard (e.g. a blocked road segment) with a safety corridor of
// BufferMeters on each side. Incidents are transient and never persisted.
type Incident struct {
	Type         string
	LineStart    *Coordinates
	LineEnd      *Coordinates
	BufferMeters float64
	Description  string
}

// HasLine reports whether both line endpoints are present.
func (i *Incident) HasLine() bool {
	return i != nil && i.LineStart != nil && i.LineEnd != nil
}

// Validate checks the buffer and, when present, the line geometry.
// A missing line is not an error here: it makes recalculation a no-op.
func (i *Incident) Validate() error {
	if i == nil {
		return fmt.Errorf("%w: incident is nil", ErrInvalidIncident)
	}
	if i.BufferMeters < 0 {
		return fmt.Errorf("%w: buffer distance %v must be >= 0", ErrInvalidIncident, i.BufferMeters)
	}
	if i.LineStart != nil {
		if err := i.LineStart.Validate(); err != nil {
			return fmt.Errorf("incident line start: %w", err)
		}
	}
	if i.LineEnd != nil {
		if err := i.LineEnd.Validate(); err != nil {
			return fmt.Errorf("incident line end: %w", err)
		}
	}
	return nil
}

// Midpoint of the incident line. Callers must check HasLine first.
func (i *Incident) Midpoint() Coordinates {
	return Coordinates{
		Lon: (i.LineStart.Lon + i.LineEnd.Lon) / 2,
		Lat: (i.LineStart.Lat + i.LineEnd.Lat) / 2,
	}
}
