package gridref

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// MapCoords is a projected grid position in meters.
type MapCoords struct {
	Easting  float64
	Northing float64
}

// northingTolerance is the convergence limit of the inverse projection in
// meters.
const northingTolerance = 0.001

const maxInverseIterations = 100

// TransverseMercator provides conversions between geodetic coordinates
// (latitude and longitude) and Transverse Mercator projection coordinates
// (easting and northing) using the Redfearn series. A converter is immutable
// and safe for concurrent use.
type TransverseMercator struct {
	ellipsoid *Ellipsoid

	// Transverse Mercator projection parameters
	tranMercOriginLat     float64 // Latitude of true origin in radians
	tranMercOriginLong    float64 // Longitude of true origin in radians
	tranMercFalseEasting  float64 // False easting in meters
	tranMercFalseNorthing float64 // False northing in meters
	tranMercScaleFactor   float64 // Scale factor on the central meridian

	// Meridional arc coefficients in powers of n = (a-b)/(a+b)
	arcCoeff [4]float64
}

// NewTransverseMercator constructs a new TransverseMercator converter. The
// origin is given in radians, the false easting and northing in meters.
func NewTransverseMercator(ellipsoid *Ellipsoid, scaleFactor, originLatitude, originLongitude,
	falseEasting, falseNorthing float64) (*TransverseMercator, error) {
	if ellipsoid == nil {
		return nil, fmt.Errorf("%w: missing ellipsoid", ErrInvalidParameters)
	}
	if (originLatitude < -math.Pi/2) ||
		(originLatitude > math.Pi/2) {
		return nil, fmt.Errorf("%w: origin latitude out of range", ErrInvalidParameters)
	}
	if (originLongitude < -math.Pi) ||
		(originLongitude > math.Pi) {
		return nil, fmt.Errorf("%w: origin longitude out of range", ErrInvalidParameters)
	}

	const minScaleFactor = 0.1
	const maxScaleFactor = 10.0
	if (scaleFactor < minScaleFactor) || (scaleFactor > maxScaleFactor) {
		return nil, fmt.Errorf("%w: scale factor out of range", ErrInvalidParameters)
	}

	t := &TransverseMercator{
		ellipsoid:             ellipsoid,
		tranMercOriginLat:     originLatitude,
		tranMercOriginLong:    originLongitude,
		tranMercFalseEasting:  falseEasting,
		tranMercFalseNorthing: falseNorthing,
		tranMercScaleFactor:   scaleFactor,
	}

	a := ellipsoid.semiMajorAxis
	b := ellipsoid.semiMinorAxis
	n := (a - b) / (a + b)
	n2 := n * n
	n3 := n2 * n
	t.arcCoeff[0] = 1 + n + 5.0/4.0*n2 + 5.0/4.0*n3
	t.arcCoeff[1] = 3*n + 3*n2 + 21.0/8.0*n3
	t.arcCoeff[2] = 15.0/8.0*n2 + 15.0/8.0*n3
	t.arcCoeff[3] = 35.0 / 24.0 * n3
	return t, nil
}

// Ellipsoid returns the ellipsoid the projection is defined on.
func (t *TransverseMercator) Ellipsoid() *Ellipsoid { return t.ellipsoid }

// meridionalArc returns the developed arc of the central meridian from the
// origin latitude to phi, scaled by the central scale factor.
func (t *TransverseMercator) meridionalArc(phi float64) float64 {
	phi0 := t.tranMercOriginLat
	d := phi - phi0
	s := phi + phi0
	return t.ellipsoid.semiMinorAxis * t.tranMercScaleFactor *
		(t.arcCoeff[0]*d -
			t.arcCoeff[1]*math.Sin(d)*math.Cos(s) +
			t.arcCoeff[2]*math.Sin(2*d)*math.Cos(2*s) -
			t.arcCoeff[3]*math.Sin(3*d)*math.Cos(3*s))
}

// radii returns the transverse and meridional radii of curvature at phi,
// scaled by the central scale factor, and eta squared.
func (t *TransverseMercator) radii(phi float64) (v, rho, etaSquared float64) {
	aF0 := t.ellipsoid.semiMajorAxis * t.tranMercScaleFactor
	eSquared := t.ellipsoid.eccentricitySquared
	sinPhi := math.Sin(phi)
	w := 1 - eSquared*sinPhi*sinPhi
	v = aF0 / math.Sqrt(w)
	rho = aF0 * (1 - eSquared) / math.Pow(w, 1.5)
	return v, rho, v/rho - 1
}

func (t *TransverseMercator) checkLatLon(latitude, deltaLon float64) error {
	if (latitude < -math.Pi/2) || (latitude > math.Pi/2) {
		return fmt.Errorf("%w: latitude out of range", ErrInvalidParameters)
	}
	const maxDeltaLong = ((math.Pi * 70) / 180.0)
	if math.Abs(deltaLon) > maxDeltaLong {
		return fmt.Errorf("%w: longitude too far from the central meridian", ErrInvalidParameters)
	}
	return nil
}

// ConvertFromGeodetic projects geodetic coordinates on the converter's
// ellipsoid to easting and northing.
func (t *TransverseMercator) ConvertFromGeodetic(geodeticCoordinates s2.LatLng) (MapCoords, error) {
	phi := geodeticCoordinates.Lat.Radians()
	lambda := geodeticCoordinates.Lng.Normalized().Radians() - t.tranMercOriginLong
	if lambda > math.Pi {
		lambda -= (2 * math.Pi)
	}
	if lambda < -math.Pi {
		lambda += (2 * math.Pi)
	}
	if err := t.checkLatLon(phi, lambda); err != nil {
		return MapCoords{}, err
	}

	v, rho, etaSquared := t.radii(phi)
	sinPhi := math.Sin(phi)
	cosPhi := math.Cos(phi)
	cos3Phi := cosPhi * cosPhi * cosPhi
	cos5Phi := cos3Phi * cosPhi * cosPhi
	tanSquared := math.Tan(phi) * math.Tan(phi)
	tan4 := tanSquared * tanSquared

	I := t.meridionalArc(phi) + t.tranMercFalseNorthing
	II := v / 2 * sinPhi * cosPhi
	III := v / 24 * sinPhi * cos3Phi * (5 - tanSquared + 9*etaSquared)
	IIIA := v / 720 * sinPhi * cos5Phi * (61 - 58*tanSquared + tan4)
	IV := v * cosPhi
	V := v / 6 * cos3Phi * (v/rho - tanSquared)
	VI := v / 120 * cos5Phi *
		(5 - 18*tanSquared + tan4 + 14*etaSquared - 58*tanSquared*etaSquared)

	l2 := lambda * lambda
	l3 := l2 * lambda
	l4 := l3 * lambda
	l5 := l4 * lambda
	l6 := l5 * lambda

	return MapCoords{
		Easting:  t.tranMercFalseEasting + IV*lambda + V*l3 + VI*l5,
		Northing: I + II*l2 + III*l4 + IIIA*l6,
	}, nil
}

// ConvertToGeodetic inverts the projection, returning geodetic coordinates
// on the converter's ellipsoid.
func (t *TransverseMercator) ConvertToGeodetic(mapProjectionCoordinates MapCoords) (s2.LatLng, error) {
	easting := mapProjectionCoordinates.Easting
	northing := mapProjectionCoordinates.Northing
	if math.IsNaN(easting) || math.IsNaN(northing) ||
		math.IsInf(easting, 0) || math.IsInf(northing, 0) {
		return s2.LatLng{}, fmt.Errorf("%w: easting and northing must be finite", ErrInvalidParameters)
	}

	aF0 := t.ellipsoid.semiMajorAxis * t.tranMercScaleFactor
	dn := northing - t.tranMercFalseNorthing

	phiPrime := dn/aF0 + t.tranMercOriginLat
	M := t.meridionalArc(phiPrime)
	for i := 0; math.Abs(dn-M) >= northingTolerance; i++ {
		if i == maxInverseIterations {
			return s2.LatLng{}, fmt.Errorf("%w: northing %v did not converge", ErrOutOfRange, northing)
		}
		phiPrime += (dn - M) / aF0
		M = t.meridionalArc(phiPrime)
	}

	v, rho, etaSquared := t.radii(phiPrime)
	tanPhi := math.Tan(phiPrime)
	tanSquared := tanPhi * tanPhi
	tan4 := tanSquared * tanSquared
	tan6 := tan4 * tanSquared
	secPhi := 1 / math.Cos(phiPrime)
	v3 := v * v * v
	v5 := v3 * v * v
	v7 := v5 * v * v

	VII := tanPhi / (2 * rho * v)
	VIII := tanPhi / (24 * rho * v3) * (5 + 3*tanSquared + etaSquared - 9*tanSquared*etaSquared)
	IX := tanPhi / (720 * rho * v5) * (61 + 90*tanSquared + 45*tan4)
	X := secPhi / v
	XI := secPhi / (6 * v3) * (v/rho + 2*tanSquared)
	XII := secPhi / (120 * v5) * (5 + 28*tanSquared + 24*tan4)
	XIIA := secPhi / (5040 * v7) * (61 + 662*tanSquared + 1320*tan4 + 720*tan6)

	de := easting - t.tranMercFalseEasting
	de2 := de * de
	de3 := de2 * de
	de4 := de3 * de
	de5 := de4 * de
	de6 := de5 * de
	de7 := de6 * de

	phi := phiPrime - VII*de2 + VIII*de4 - IX*de6
	lambda := t.tranMercOriginLong + X*de - XI*de3 + XII*de5 - XIIA*de7
	return s2.LatLng{
		Lat: s1.Angle(phi) * s1.Radian,
		Lng: s1.Angle(lambda) * s1.Radian,
	}, nil
}
