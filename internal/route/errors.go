package route

import "errors"

var (
	// ErrNoStations means the station catalog is empty. Planning cannot
	// work at all; startup treats this as fatal.
	ErrNoStations = errors.New("no stations available")

	// ErrStationNotFound means a destination query matched no station,
	// even after geocoding.
	ErrStationNotFound = errors.New("station not found")

	// ErrNoPath means the two endpoints sit in disconnected parts of the
	// network.
	ErrNoPath = errors.New("no path between stations")

	// ErrInvalidCoordinates means a rider location fell outside valid
	// latitude/longitude ranges.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)
