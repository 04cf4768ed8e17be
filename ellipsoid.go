package gridref

import (
	"fmt"
	"math"
)

// Ellipsoid is a reference ellipsoid. Values are immutable once constructed
// and are shared by pointer between the datums that use them.
type Ellipsoid struct {
	name                string
	semiMajorAxis       float64
	semiMinorAxis       float64
	eccentricitySquared float64
	flattening          float64
}

// NewEllipsoid constructs an ellipsoid from its semi-major and semi-minor
// axes in meters.
func NewEllipsoid(name string, semiMajorAxis, semiMinorAxis float64) (*Ellipsoid, error) {
	return NewEllipsoidFromEccentricity(name, semiMajorAxis, semiMinorAxis, math.NaN())
}

// NewEllipsoidFromEccentricity constructs an ellipsoid from the semi-major
// axis and at least one of the semi-minor axis and the eccentricity squared.
// Pass NaN for the value that should be derived from the other two.
func NewEllipsoidFromEccentricity(name string, semiMajorAxis, semiMinorAxis,
	eccentricitySquared float64) (*Ellipsoid, error) {
	if math.IsNaN(semiMinorAxis) && math.IsNaN(eccentricitySquared) {
		return nil, fmt.Errorf("%w: at least one of semi-minor axis and eccentricity squared must be defined",
			ErrInvalidParameters)
	}
	if !(semiMajorAxis > 0) {
		return nil, fmt.Errorf("%w: semi-major axis must be greater than zero", ErrInvalidParameters)
	}

	e := &Ellipsoid{
		name:                name,
		semiMajorAxis:       semiMajorAxis,
		semiMinorAxis:       semiMinorAxis,
		eccentricitySquared: eccentricitySquared,
	}
	aSquared := semiMajorAxis * semiMajorAxis
	if math.IsNaN(semiMinorAxis) {
		e.semiMinorAxis = math.Sqrt(aSquared * (1 - eccentricitySquared))
	}
	if math.IsNaN(eccentricitySquared) {
		e.eccentricitySquared = (aSquared - e.semiMinorAxis*e.semiMinorAxis) / aSquared
	}
	if !(e.semiMinorAxis > 0) || e.semiMinorAxis >= semiMajorAxis {
		return nil, fmt.Errorf("%w: semi-minor axis must be greater than zero and less than the semi-major axis",
			ErrInvalidParameters)
	}
	e.flattening = (semiMajorAxis - e.semiMinorAxis) / semiMajorAxis
	return e, nil
}

// Name returns the ellipsoid name, e.g. "Airy 1830".
func (e *Ellipsoid) Name() string { return e.name }

// SemiMajorAxis returns a in meters.
func (e *Ellipsoid) SemiMajorAxis() float64 { return e.semiMajorAxis }

// SemiMinorAxis returns b in meters.
func (e *Ellipsoid) SemiMinorAxis() float64 { return e.semiMinorAxis }

// EccentricitySquared returns (a^2-b^2)/a^2.
func (e *Ellipsoid) EccentricitySquared() float64 { return e.eccentricitySquared }

// Flattening returns (a-b)/a.
func (e *Ellipsoid) Flattening() float64 { return e.flattening }

func (e *Ellipsoid) String() string {
	return fmt.Sprintf("%s [semi-major axis = %v, semi-minor axis = %v]",
		e.name, e.semiMajorAxis, e.semiMinorAxis)
}

// Reference ellipsoids.
var (
	Airy1830Ellipsoid          = mustEllipsoid("Airy 1830", 6377563.396, 6356256.909)
	ModifiedAiryEllipsoid      = mustEllipsoid("Modified Airy", 6377340.189, 6356034.447)
	WGS84Ellipsoid             = mustEllipsoid("WGS84", 6378137.000, 6356752.3142)
	GRS80Ellipsoid             = mustEllipsoid("GRS80", 6378137.000, 6356752.3141)
	Clarke1866Ellipsoid        = mustEllipsoid("Clarke 1866", 6378206.4, 6356583.8)
	Clarke1880Ellipsoid        = mustEllipsoid("Clarke 1880", 6378249.145, 6356514.8696)
	Bessel1841Ellipsoid        = mustEllipsoid("Bessel 1841", 6377397.155, 6356078.9629)
	International1924Ellipsoid = mustEllipsoid("International 1924", 6378388.000, 6356911.946)
)

func mustEllipsoid(name string, semiMajorAxis, semiMinorAxis float64) *Ellipsoid {
	e, err := NewEllipsoid(name, semiMajorAxis, semiMinorAxis)
	if err != nil {
		panic(fmt.Sprintf("error constructing %s ellipsoid: %s", name, err))
	}
	return e
}
