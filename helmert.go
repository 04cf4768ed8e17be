package gridref

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// helmertIterations is the fixed number of latitude refinements used when
// converting Cartesian coordinates back to geodetic.
const helmertIterations = 10

const arcSecondsToRadians = math.Pi / (180 * 3600)

// toCartesian converts a geodetic latitude and longitude in radians and a
// height in meters to earth-centred Cartesian coordinates on the ellipsoid.
func toCartesian(ell *Ellipsoid, latitude, longitude, height float64) *mat.VecDense {
	a := ell.semiMajorAxis
	eSquared := ell.eccentricitySquared
	sinPhi := math.Sin(latitude)
	cosPhi := math.Cos(latitude)
	v := a / math.Sqrt(1-eSquared*sinPhi*sinPhi)

	return mat.NewVecDense(3, []float64{
		(v + height) * cosPhi * math.Cos(longitude),
		(v + height) * cosPhi * math.Sin(longitude),
		((1-eSquared)*v + height) * sinPhi,
	})
}

// fromCartesian converts earth-centred Cartesian coordinates to geodetic
// latitude and longitude in radians on the ellipsoid.
func fromCartesian(ell *Ellipsoid, xyz mat.Vector) (latitude, longitude float64) {
	x, y, z := xyz.AtVec(0), xyz.AtVec(1), xyz.AtVec(2)
	a := ell.semiMajorAxis
	eSquared := ell.eccentricitySquared

	longitude = math.Atan2(y, x)
	p := math.Hypot(x, y)
	latitude = math.Atan(z / (p * (1 - eSquared)))
	for i := 0; i < helmertIterations; i++ {
		sinPhi := math.Sin(latitude)
		v := a / math.Sqrt(1-eSquared*sinPhi*sinPhi)
		latitude = math.Atan((z + eSquared*v*sinPhi) / p)
	}
	return latitude, longitude
}

// helmertTransform applies the datum's seven parameters to xyz. invert is +1
// to move coordinates on d onto WGS84 and -1 for the reverse direction.
func helmertTransform(d *Datum, invert float64, xyz mat.Vector) *mat.VecDense {
	rx := invert * d.rx * arcSecondsToRadians
	ry := invert * d.ry * arcSecondsToRadians
	rz := invert * d.rz * arcSecondsToRadians
	scale := 1 + invert*d.ds/1000000

	rotation := mat.NewDense(3, 3, []float64{
		1, -rz, ry,
		rz, 1, -rx,
		-ry, rx, 1,
	})
	translation := mat.NewVecDense(3, []float64{
		invert * d.dx,
		invert * d.dy,
		invert * d.dz,
	})

	out := mat.NewVecDense(3, nil)
	out.MulVec(rotation, xyz)
	out.ScaleVec(scale, out)
	out.AddVec(translation, out)
	return out
}

// transformDatum moves a geodetic position expressed on the source
// ellipsoid through the Helmert parameters of d onto the target ellipsoid.
// Latitude and longitude are in degrees.
func transformDatum(source, target *Ellipsoid, d *Datum, invert float64,
	latitude, longitude, height float64) (float64, float64) {
	xyz := toCartesian(source, deg2rad(latitude), deg2rad(longitude), height)
	phi, lambda := fromCartesian(target, helmertTransform(d, invert, xyz))
	return rad2deg(phi), rad2deg(lambda)
}

// ToDatum returns the position converted onto the target datum. Conversions
// pass through WGS84 and the height is carried unchanged. The receiver is
// not modified.
func (l LatLng) ToDatum(target *Datum) LatLng {
	if target == nil {
		target = WGS84Datum
	}
	source := l.Datum()
	if source == target {
		return l
	}

	latitude, longitude := l.latitude, l.longitude
	if source != WGS84Datum {
		latitude, longitude = transformDatum(source.ellipsoid, WGS84Ellipsoid, source, 1,
			latitude, longitude, l.height)
	}
	if target != WGS84Datum {
		latitude, longitude = transformDatum(WGS84Ellipsoid, target.ellipsoid, target, -1,
			latitude, longitude, l.height)
	}
	return LatLng{
		latitude:  latitude,
		longitude: longitude,
		height:    l.height,
		datum:     target,
	}
}

// ToWGS84 converts the position onto the WGS84 datum.
func (l LatLng) ToWGS84() LatLng { return l.ToDatum(WGS84Datum) }

// ToOSGB36 converts the position onto the OSGB36 datum.
func (l LatLng) ToOSGB36() LatLng { return l.ToDatum(OSGB36Datum) }

// ToIreland1965 converts the position onto the Ireland 1965 datum.
func (l LatLng) ToIreland1965() LatLng { return l.ToDatum(Ireland1965Datum) }
