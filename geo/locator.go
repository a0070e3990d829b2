package geo

import (
	"context"
	"errors"
)

// ErrPermissionDenied is returned when the customer has not granted
// access to their position. Callers treat it as "no device location",
// not as a failure.
var ErrPermissionDenied = errors.New("location permission denied")

type Position struct {
	Lat float64
	Lng float64
}

// Locator resolves the customer's current position once. There is no
// watch/subscription; a delivery draft asks exactly one time.
type Locator interface {
	CurrentPosition(ctx context.Context) (Position, error)
}

// Unavailable is the server-side default: the service itself has no
// device fix, so the position has to arrive from the portal through the
// draft patch instead.
type Unavailable struct{}

func (Unavailable) CurrentPosition(ctx context.Context) (Position, error) {
	return Position{}, ErrPermissionDenied
}
