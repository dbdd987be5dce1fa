// Package location turns a booking's stored "<lat>-<lng>" string into a map link.
package location

import (
	"errors"
	"fmt"
	"strings"
)

const mapsURLFormat = "https://www.google.com/maps?q=%s,%s"

// User-facing warnings, shown verbatim by the booking desk.
var (
	ErrNoLocation    = errors.New("No location found for this booking.")
	ErrInvalidFormat = errors.New("Invalid location format.")
	ErrInvalidData   = errors.New("Invalid location data.")
)

type Coordinate struct {
	Lat string
	Lng string
}

// Parse splits location on its first hyphen. A negative longitude keeps its
// sign ("40.7128--74.0060" gives lng "-74.0060"); a negative latitude cannot
// be expressed in this format.
func Parse(location string) (Coordinate, error) {
	lat, lng, ok := strings.Cut(location, "-")
	if !ok {
		return Coordinate{}, ErrInvalidFormat
	}
	if lat == "" || lng == "" {
		return Coordinate{}, ErrInvalidData
	}
	return Coordinate{Lat: lat, Lng: lng}, nil
}

// MapURL returns the external map link for c. The tokens are inserted as
// stored, without trimming or escaping.
func (c Coordinate) MapURL() string {
	return fmt.Sprintf(mapsURLFormat, c.Lat, c.Lng)
}

// Open resolves the "Open Location in Maps" action for a booking location
// that may be absent.
func Open(location *string) (string, error) {
	if location == nil {
		return "", ErrNoLocation
	}

	c, err := Parse(*location)
	if err != nil {
		return "", err
	}
	return c.MapURL(), nil
}

// IsWarning reports whether err is one of the user-facing location warnings.
func IsWarning(err error) bool {
	return errors.Is(err, ErrNoLocation) ||
		errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrInvalidData)
}
