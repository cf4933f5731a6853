// Package device models the capabilities a report can draw on: a photo
// source (camera or gallery) and a position source with best-effort reverse
// geocoding. Results are tagged rather than thrown: denial and cancellation
// are ordinary outcomes, not errors.
package device

import "context"

// Outcome tags a capability result.
type Outcome int

const (
	// Granted: the capability produced a value.
	Granted Outcome = iota
	// Denied: the user or OS refused the capability.
	Denied
	// Cancelled: the user backed out; not an error, nothing changes.
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// PhotoResult is the outcome of a photo request. Path is set only when
// Outcome is Granted and points at a locally readable image file.
type PhotoResult struct {
	Outcome Outcome
	Path    string
}

// Camera captures a new photo.
type Camera interface {
	Capture(ctx context.Context) (PhotoResult, error)
}

// Gallery picks an existing photo.
type Gallery interface {
	Pick(ctx context.Context) (PhotoResult, error)
}

// Position is a bare coordinate pair.
type Position struct {
	Latitude  float64
	Longitude float64
}

// Locator reports the device's current position.
type Locator interface {
	Current(ctx context.Context) (Position, Outcome, error)
}

// Geocoder derives a human-readable address for a position. Best effort:
// an empty address with a nil error is a valid answer, and callers must
// treat any failure as "no address", never as a failed operation.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, pos Position) (string, error)
}
