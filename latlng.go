package gridref

import (
	"fmt"
	"math"
	"strconv"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// meanEarthRadiusKm is the ellipsoid-mean radius used for surface distances.
const meanEarthRadiusKm = 6366.707

const kmPerMile = 1.609344

// NorthSouth is the hemisphere sign of a latitude.
type NorthSouth int

// NorthSouth constants
const (
	North NorthSouth = 1
	South NorthSouth = -1
)

// EastWest is the hemisphere sign of a longitude.
type EastWest int

// EastWest constants
const (
	East EastWest = 1
	West EastWest = -1
)

// LatLng is a geodetic position: latitude and longitude in degrees, height
// in meters and the datum the position is expressed on. The zero value is
// 0N 0E on WGS84.
type LatLng struct {
	latitude  float64
	longitude float64
	height    float64
	datum     *Datum
}

// NewLatLng constructs a WGS84 position with zero height.
func NewLatLng(latitude, longitude float64) (LatLng, error) {
	return NewLatLngWithDatum(latitude, longitude, 0, WGS84Datum)
}

// NewLatLngWithHeight constructs a WGS84 position.
func NewLatLngWithHeight(latitude, longitude, height float64) (LatLng, error) {
	return NewLatLngWithDatum(latitude, longitude, height, WGS84Datum)
}

// NewLatLngWithDatum constructs a position on the given datum. A nil datum
// means WGS84.
func NewLatLngWithDatum(latitude, longitude, height float64, datum *Datum) (LatLng, error) {
	if !IsValidLatitude(latitude) {
		return LatLng{}, fmt.Errorf("%w: latitude (%v) must be between -90.0 and 90.0 inclusive",
			ErrInvalidParameters, latitude)
	}
	if !IsValidLongitude(longitude) {
		return LatLng{}, fmt.Errorf("%w: longitude (%v) must be between -180.0 and 180.0 inclusive",
			ErrInvalidParameters, longitude)
	}
	if datum == nil {
		datum = WGS84Datum
	}
	return LatLng{latitude: latitude, longitude: longitude, height: height, datum: datum}, nil
}

// NewLatLngFromDMS constructs a WGS84 position from unsigned degrees, minutes
// and seconds plus hemisphere signs.
func NewLatLngFromDMS(latitudeDegrees, latitudeMinutes int, latitudeSeconds float64, northSouth NorthSouth,
	longitudeDegrees, longitudeMinutes int, longitudeSeconds float64, eastWest EastWest) (LatLng, error) {
	if latitudeDegrees < 0 || latitudeDegrees > 90 ||
		latitudeMinutes < 0 || latitudeMinutes >= 60 ||
		latitudeSeconds < 0 || latitudeSeconds >= 60 {
		return LatLng{}, fmt.Errorf("%w: invalid latitude %d %d %v", ErrInvalidParameters,
			latitudeDegrees, latitudeMinutes, latitudeSeconds)
	}
	if longitudeDegrees < 0 || longitudeDegrees > 180 ||
		longitudeMinutes < 0 || longitudeMinutes >= 60 ||
		longitudeSeconds < 0 || longitudeSeconds >= 60 {
		return LatLng{}, fmt.Errorf("%w: invalid longitude %d %d %v", ErrInvalidParameters,
			longitudeDegrees, longitudeMinutes, longitudeSeconds)
	}
	if northSouth != North && northSouth != South {
		return LatLng{}, fmt.Errorf("%w: invalid north/south indicator %d", ErrInvalidParameters, northSouth)
	}
	if eastWest != East && eastWest != West {
		return LatLng{}, fmt.Errorf("%w: invalid east/west indicator %d", ErrInvalidParameters, eastWest)
	}

	latitude := float64(northSouth) *
		(float64(latitudeDegrees) + float64(latitudeMinutes)/60 + latitudeSeconds/3600)
	longitude := float64(eastWest) *
		(float64(longitudeDegrees) + float64(longitudeMinutes)/60 + longitudeSeconds/3600)
	return NewLatLng(latitude, longitude)
}

// IsValidLatitude reports whether latitude lies in [-90, 90].
func IsValidLatitude(latitude float64) bool {
	return latitude >= -90 && latitude <= 90
}

// IsValidLongitude reports whether longitude lies in [-180, 180].
func IsValidLongitude(longitude float64) bool {
	return longitude >= -180 && longitude <= 180
}

// Latitude returns the latitude in degrees.
func (l LatLng) Latitude() float64 { return l.latitude }

// Longitude returns the longitude in degrees.
func (l LatLng) Longitude() float64 { return l.longitude }

// Height returns the height in meters.
func (l LatLng) Height() float64 { return l.height }

// Datum returns the datum the position is expressed on.
func (l LatLng) Datum() *Datum {
	if l.datum == nil {
		return WGS84Datum
	}
	return l.datum
}

// Equal reports whether both positions are on the same datum and have
// identical latitude, longitude and height.
func (l LatLng) Equal(o LatLng) bool {
	return l.Datum() == o.Datum() &&
		l.latitude == o.latitude &&
		l.longitude == o.longitude &&
		l.height == o.height
}

// dms splits an angle into signed whole degrees and the unsigned minutes and
// seconds of its magnitude.
func dms(angle float64) (degrees, minutes int, seconds float64) {
	deg := math.Floor(angle)
	frac := angle - deg
	if angle < 0 && frac > 0 {
		deg++
		frac = 1 - frac
	}
	m := math.Floor(frac * 60)
	return int(deg), int(m), (frac*60 - m) * 60
}

// LatitudeDegrees returns the signed whole degrees of the latitude.
func (l LatLng) LatitudeDegrees() int {
	d, _, _ := dms(l.latitude)
	return d
}

// LatitudeMinutes returns the whole minutes of the latitude.
func (l LatLng) LatitudeMinutes() int {
	_, m, _ := dms(l.latitude)
	return m
}

// LatitudeSeconds returns the seconds of the latitude.
func (l LatLng) LatitudeSeconds() float64 {
	_, _, s := dms(l.latitude)
	return s
}

// LongitudeDegrees returns the signed whole degrees of the longitude.
func (l LatLng) LongitudeDegrees() int {
	d, _, _ := dms(l.longitude)
	return d
}

// LongitudeMinutes returns the whole minutes of the longitude.
func (l LatLng) LongitudeMinutes() int {
	_, m, _ := dms(l.longitude)
	return m
}

// LongitudeSeconds returns the seconds of the longitude.
func (l LatLng) LongitudeSeconds() float64 {
	_, _, s := dms(l.longitude)
	return s
}

func (l LatLng) String() string {
	return formatFloat(l.latitude) + ", " + formatFloat(l.longitude)
}

// DMSString formats the position as degrees, minutes and seconds, e.g.
// "47 30 0 S 122 15 0 E".
func (l LatLng) DMSString() string {
	ns := "N"
	if l.latitude < 0 {
		ns = "S"
	}
	ew := "E"
	if l.longitude < 0 {
		ew = "W"
	}
	latD, latM, latS := dms(l.latitude)
	lngD, lngM, lngS := dms(l.longitude)
	return fmt.Sprintf("%d %d %s %s %d %d %s %s",
		abs(latD), latM, formatFloat(latS), ns,
		abs(lngD), lngM, formatFloat(lngS), ew)
}

// S2 returns the position as an s2.LatLng, dropping height and datum.
func (l LatLng) S2() s2.LatLng {
	return s2.LatLngFromDegrees(l.latitude, l.longitude)
}

// Distance returns the great-circle surface distance to o in kilometers. The
// datum of either position is not taken into account.
func (l LatLng) Distance(o LatLng) float64 {
	return l.angleTo(o).Radians() * meanEarthRadiusKm
}

// DistanceMiles returns the great-circle surface distance to o in miles.
func (l LatLng) DistanceMiles(o LatLng) float64 {
	return l.Distance(o) / kmPerMile
}

func (l LatLng) angleTo(o LatLng) s1.Angle {
	return l.S2().Distance(o.S2())
}

func deg2rad(d float64) float64 {
	return (s1.Angle(d) * s1.Degree).Radians()
}

func rad2deg(r float64) float64 {
	return (s1.Angle(r) * s1.Radian).Degrees()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
