package gridref

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const utmScaleFactor = 0.9996
const utmFalseEasting = 500000.0
const utmSouthernFalseNorthing = 10000000.0
const utmMinLat = -80.0
const utmMaxLat = 84.0
const utmMinEasting = 0.0
const utmMaxEasting = 1000000.0
const utmMinNorthing = 0.0
const utmMaxNorthing = 10000000.0

type latitudeBand struct {
	letter      byte    // letter representing latitude band
	minNorthing float64 // minimum northing for latitude band
	north       float64 // upper latitude for latitude band
	south       float64 // lower latitude for latitude band
}

var latitudeBands = [20]latitudeBand{
	{'C', 1100000.0, -72.0, -80.0},
	{'D', 2000000.0, -64.0, -72.0},
	{'E', 2800000.0, -56.0, -64.0},
	{'F', 3700000.0, -48.0, -56.0},
	{'G', 4600000.0, -40.0, -48.0},
	{'H', 5500000.0, -32.0, -40.0},
	{'J', 6400000.0, -24.0, -32.0},
	{'K', 7300000.0, -16.0, -24.0},
	{'L', 8200000.0, -8.0, -16.0},
	{'M', 9100000.0, 0.0, -8.0},
	{'N', 0.0, 8.0, 0.0},
	{'P', 800000.0, 16.0, 8.0},
	{'Q', 1700000.0, 24.0, 16.0},
	{'R', 2600000.0, 32.0, 24.0},
	{'S', 3500000.0, 40.0, 32.0},
	{'T', 4400000.0, 48.0, 40.0},
	{'U', 5300000.0, 56.0, 48.0},
	{'V', 6200000.0, 64.0, 56.0},
	{'W', 7000000.0, 72.0, 64.0},
	{'X', 7900000.0, 84.0, 72.0}}

// findLatitudeBand returns the table entry for a band letter.
func findLatitudeBand(letter byte) (latitudeBand, bool) {
	for _, b := range latitudeBands {
		if b.letter == letter {
			return b, true
		}
	}
	return latitudeBand{}, false
}

// UTMRef is a Universal Transverse Mercator grid reference.
type UTMRef struct {
	zone     int
	band     byte
	easting  float64
	northing float64
	datum    *Datum
}

// NewUTMRef constructs a WGS84 UTM reference. The band letter may be given
// in either case.
func NewUTMRef(zone int, band byte, easting, northing float64) (UTMRef, error) {
	return NewUTMRefWithDatum(zone, band, easting, northing, WGS84Datum)
}

// NewUTMRefWithDatum constructs a UTM reference on the given datum. A nil
// datum means WGS84.
func NewUTMRefWithDatum(zone int, band byte, easting, northing float64, datum *Datum) (UTMRef, error) {
	band = toupper(band)
	if (zone < 1) || (zone > 60) {
		return UTMRef{}, fmt.Errorf("%w: longitude zone (%d) must be between 1 and 60 inclusive",
			ErrNotDefinedOnGrid, zone)
	}
	if _, ok := findLatitudeBand(band); !ok {
		return UTMRef{}, fmt.Errorf("%w: latitude zone (%q) must be between C and X inclusive excluding I and O",
			ErrNotDefinedOnGrid, band)
	}
	if !(easting >= utmMinEasting && easting <= utmMaxEasting) {
		return UTMRef{}, fmt.Errorf("%w: easting (%v) must be between %v and %v inclusive",
			ErrNotDefinedOnGrid, easting, utmMinEasting, utmMaxEasting)
	}
	if !(northing >= utmMinNorthing && northing <= utmMaxNorthing) {
		return UTMRef{}, fmt.Errorf("%w: northing (%v) must be between %v and %v inclusive",
			ErrNotDefinedOnGrid, northing, utmMinNorthing, utmMaxNorthing)
	}
	if datum == nil {
		datum = WGS84Datum
	}
	return UTMRef{zone: zone, band: band, easting: easting, northing: northing, datum: datum}, nil
}

// Zone returns the longitude zone, 1 to 60.
func (u UTMRef) Zone() int { return u.zone }

// Band returns the latitude band letter, 'C' to 'X'.
func (u UTMRef) Band() byte { return u.band }

// Easting returns the easting in meters.
func (u UTMRef) Easting() float64 { return u.easting }

// Northing returns the northing in meters.
func (u UTMRef) Northing() float64 { return u.northing }

// Datum returns the datum of the reference.
func (u UTMRef) Datum() *Datum {
	if u.datum == nil {
		return WGS84Datum
	}
	return u.datum
}

// String formats the reference as e.g. "10T 574595 5316784".
func (u UTMRef) String() string {
	return strconv.Itoa(u.zone) + string(u.band) + " " + formatFloat(u.easting) + " " + formatFloat(u.northing)
}

// LongitudeZone returns the UTM longitude zone containing the position,
// including the Norway and Svalbard exceptions.
func LongitudeZone(latitude, longitude float64) int {
	if longitude == 180 {
		longitude = -180
	}
	zone := int(math.Floor((longitude+180)/6)) + 1

	// special zone for southern Norway
	if latitude >= 56 && latitude < 64 && longitude >= 3 && longitude < 12 {
		zone = 32
	}

	// special zones for Svalbard
	if latitude >= 72 && latitude < 84 {
		switch {
		case longitude >= 0 && longitude < 9:
			zone = 31
		case longitude >= 9 && longitude < 21:
			zone = 33
		case longitude >= 21 && longitude < 33:
			zone = 35
		case longitude >= 33 && longitude < 42:
			zone = 37
		}
	}
	return zone
}

// LatitudeZoneLetter returns the UTM latitude band containing latitude, or
// 'Z' if the latitude is outside the UTM grid.
func LatitudeZoneLetter(latitude float64) byte {
	if latitude >= 72 && latitude <= utmMaxLat {
		return 'X'
	}
	if latitude >= utmMinLat && latitude < 72 {
		return latitudeBands[int(math.Floor((latitude-utmMinLat)/8))].letter
	}
	return 'Z'
}

// centralMeridian returns the central meridian of a zone in degrees.
func centralMeridian(zone int) float64 {
	return float64((zone-1)*6 - 180 + 3)
}

// ToUTM projects the position onto the UTM grid using the ellipsoid of its
// own datum. The reference carries the position's datum.
func (l LatLng) ToUTM() (UTMRef, error) {
	latitude := l.latitude
	longitude := l.longitude
	if latitude < utmMinLat || latitude > utmMaxLat {
		return UTMRef{}, fmt.Errorf("%w: latitude (%v) falls outside the UTM grid",
			ErrNotDefinedOnGrid, latitude)
	}
	if longitude == 180 {
		longitude = -180
	}

	ell := l.Datum().ellipsoid
	a := ell.semiMajorAxis
	eSquared := ell.eccentricitySquared
	ePrimeSquared := eSquared / (1 - eSquared)

	zone := LongitudeZone(latitude, longitude)
	phi := deg2rad(latitude)
	lambda := deg2rad(longitude)
	lambda0 := deg2rad(centralMeridian(zone))

	sinPhi := math.Sin(phi)
	cosPhi := math.Cos(phi)
	tanPhi := math.Tan(phi)
	n := a / math.Sqrt(1-eSquared*sinPhi*sinPhi)
	t := tanPhi * tanPhi
	c := ePrimeSquared * cosPhi * cosPhi
	A := cosPhi * (lambda - lambda0)

	e4 := eSquared * eSquared
	e6 := e4 * eSquared
	M := a * ((1-eSquared/4-3*e4/64-5*e6/256)*phi -
		(3*eSquared/8+3*e4/32+45*e6/1024)*math.Sin(2*phi) +
		(15*e4/256+45*e6/1024)*math.Sin(4*phi) -
		(35*e6/3072)*math.Sin(6*phi))

	A2 := A * A
	A3 := A2 * A
	A4 := A3 * A
	A5 := A4 * A
	A6 := A5 * A

	easting := utmScaleFactor*n*(A+(1-t+c)*A3/6+
		(5-18*t+t*t+72*c-58*ePrimeSquared)*A5/120) + utmFalseEasting
	northing := utmScaleFactor * (M + n*tanPhi*(A2/2+(5-t+9*c+4*c*c)*A4/24+
		(61-58*t+t*t+600*c-330*ePrimeSquared)*A6/720))

	if latitude < 0 {
		northing += utmSouthernFalseNorthing
	}

	return NewUTMRefWithDatum(zone, LatitudeZoneLetter(latitude),
		math.Round(easting), math.Round(northing), l.Datum())
}

// ToLatLng inverts the projection, returning a position on the reference's
// datum.
func (u UTMRef) ToLatLng() (LatLng, error) {
	ell := u.Datum().ellipsoid
	a := ell.semiMajorAxis
	eSquared := ell.eccentricitySquared
	ePrimeSquared := eSquared / (1 - eSquared)
	root := math.Sqrt(1 - eSquared)
	e1 := (1 - root) / (1 + root)

	x := u.easting - utmFalseEasting
	y := u.northing
	if u.band < 'N' {
		y -= utmSouthernFalseNorthing
	}

	e4 := eSquared * eSquared
	e6 := e4 * eSquared
	m := y / utmScaleFactor
	mu := m / (a * (1 - eSquared/4 - 3*e4/64 - 5*e6/256))
	phi1 := mu + (3*e1/2-27*e1*e1*e1/32)*math.Sin(2*mu) +
		(21*e1*e1/16-55*e1*e1*e1*e1/32)*math.Sin(4*mu) +
		(151*e1*e1*e1/96)*math.Sin(6*mu)

	sinPhi1 := math.Sin(phi1)
	cosPhi1 := math.Cos(phi1)
	tanPhi1 := math.Tan(phi1)
	w := 1 - eSquared*sinPhi1*sinPhi1
	n := a / math.Sqrt(w)
	t := tanPhi1 * tanPhi1
	c := ePrimeSquared * cosPhi1 * cosPhi1
	r := a * (1 - eSquared) / math.Pow(w, 1.5)
	d := x / (n * utmScaleFactor)

	d2 := d * d
	d3 := d2 * d
	d4 := d3 * d
	d5 := d4 * d
	d6 := d5 * d

	latitude := rad2deg(phi1 - (n*tanPhi1/r)*(d2/2-
		(5+3*t+10*c-4*c*c-9*ePrimeSquared)*d4/24+
		(61+90*t+298*c+45*t*t-252*ePrimeSquared-3*c*c)*d6/720))
	longitude := centralMeridian(u.zone) + rad2deg((d-(1+2*t+c)*d3/6+
		(5-2*c+28*t-3*c*c+8*ePrimeSquared+24*t*t)*d5/120)/cosPhi1)

	if longitude > 180 {
		longitude -= 360
	} else if longitude < -180 {
		longitude += 360
	}
	if !IsValidLatitude(latitude) || !IsValidLongitude(longitude) {
		return LatLng{}, fmt.Errorf("%w: %s does not denote a position", ErrNotDefinedOnGrid, u)
	}
	return NewLatLngWithDatum(latitude, longitude, 0, u.Datum())
}

// ParseUTMRef parses a WGS84 UTM reference such as "10T 574595 5316784" or
// "10 T 574595 5316784".
func ParseUTMRef(s string) (UTMRef, error) {
	fields := strings.Fields(s)
	if len(fields) == 4 {
		fields = []string{fields[0] + fields[1], fields[2], fields[3]}
	}
	if len(fields) != 3 {
		return UTMRef{}, fmt.Errorf("%w: malformed UTM reference %q", ErrInvalidParameters, s)
	}

	zoneBand := fields[0]
	i := 0
	for i < len(zoneBand) && isdigit(zoneBand[i]) {
		i++
	}
	if i == 0 || i > 2 || len(zoneBand) != i+1 || !isalpha(zoneBand[i]) {
		return UTMRef{}, fmt.Errorf("%w: malformed UTM zone %q", ErrInvalidParameters, zoneBand)
	}
	zone, _ := strconv.Atoi(zoneBand[:i])

	easting, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return UTMRef{}, fmt.Errorf("%w: malformed easting %q", ErrInvalidParameters, fields[1])
	}
	northing, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return UTMRef{}, fmt.Errorf("%w: malformed northing %q", ErrInvalidParameters, fields[2])
	}
	return NewUTMRef(zone, zoneBand[i], easting, northing)
}
