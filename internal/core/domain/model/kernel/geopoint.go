package kernel

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Aliaga23/SIG-Backend/internal/pkg/errs"
	"github.com/Aliaga23/SIG-Backend/internal/pkg/guard"
)

const (
	// LatitudeMin is the minimum valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the maximum valid latitude in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the minimum valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the maximum valid longitude in degrees.
	LongitudeMax = 180.0

	// earthRadiusKm is the mean Earth radius used by the haversine formula.
	earthRadiusKm = 6371.0088
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly initialized GeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint or ParseGeoPoint constructors")

// ErrGeoPointFormat is returned by ParseGeoPoint for strings that are not "lat,lon".
var ErrGeoPointFormat = errs.NewValueIsInvalidError(`coordinates must be formatted as "lat,lon"`)

// GeoPoint is an immutable value object holding a pair of geographic
// coordinates in decimal degrees. The zero value is invalid; use NewGeoPoint
// or ParseGeoPoint to create instances.
//
// Customer and courier coordinates arrive from the outside world as
// "lat,lon" strings and are not always present or parsable; callers that
// tolerate bad data should use ParseGeoPoint and skip records that fail.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(-17.7833, -63.1821)
//	if err != nil {
//	    // handle validation error
//	}
//	km := point.DistanceKm(other)
type GeoPoint struct {
	lat   float64
	lon   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint from latitude and longitude in decimal degrees.
// Returns a ValueIsOutOfRangeError if either coordinate is outside the valid
// range, or a ValueIsInvalidError for NaN/Inf inputs.
func NewGeoPoint(lat float64, lon float64) (GeoPoint, error) {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return GeoPoint{}, errs.NewValueIsInvalidError("coordinates must be finite numbers")
	}
	if lat < LatitudeMin || lat > LatitudeMax {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("latitude", lat, LatitudeMin, LatitudeMax)
	}
	if lon < LongitudeMin || lon > LongitudeMax {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("longitude", lon, LongitudeMin, LongitudeMax)
	}

	return GeoPoint{
		lat:   lat,
		lon:   lon,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// ParseGeoPoint parses a "lat,lon" string into a GeoPoint.
// Surrounding whitespace around either component is tolerated.
func ParseGeoPoint(s string) (GeoPoint, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return GeoPoint{}, ErrGeoPointFormat
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return GeoPoint{}, errs.NewValueIsInvalidErrorWithCause("latitude", err)
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return GeoPoint{}, errs.NewValueIsInvalidErrorWithCause("longitude", err)
	}

	return NewGeoPoint(lat, lon)
}

// Validate checks if the GeoPoint was properly constructed using a constructor.
// The zero value of GeoPoint is invalid and will fail this validation.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (p GeoPoint) Latitude() float64 {
	return p.lat
}

// Longitude returns the longitude in decimal degrees.
func (p GeoPoint) Longitude() float64 {
	return p.lon
}

// String returns the "lat,lon" representation used across the external surface.
func (p GeoPoint) String() string {
	return fmt.Sprintf("%g,%g", p.lat, p.lon)
}

// IsEqual compares two points for coordinate equality.
// Both points must be properly constructed for the comparison to succeed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.lat == other.lat && p.lon == other.lon, nil
}

// DistanceKm computes the great-circle distance to another point in
// kilometers using the haversine formula. Both points must be properly
// constructed.
func (p GeoPoint) DistanceKm(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := p.lat * math.Pi / 180
	lat2 := other.lat * math.Pi / 180
	dLat := (other.lat - p.lat) * math.Pi / 180
	dLon := (other.lon - p.lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a)), nil
}

// Centroid returns the arithmetic mean of a non-empty set of points.
// Used to pick a search origin when locating couriers near a batch of orders.
func Centroid(points []GeoPoint) (GeoPoint, error) {
	if len(points) == 0 {
		return GeoPoint{}, errs.NewValueIsRequiredError("points")
	}

	var sumLat, sumLon float64
	for _, point := range points {
		if err := point.Validate(); err != nil {
			return GeoPoint{}, err
		}
		sumLat += point.lat
		sumLon += point.lon
	}

	return NewGeoPoint(sumLat/float64(len(points)), sumLon/float64(len(points)))
}
