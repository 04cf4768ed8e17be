package gridref

import "fmt"

// Datum is a geodetic datum: a reference ellipsoid plus the seven Helmert
// parameters that take WGS84 coordinates onto it. Translations are in meters,
// scale in parts per million and rotations in arc-seconds. Datums are compared
// by identity.
type Datum struct {
	name      string
	ellipsoid *Ellipsoid
	dx        float64
	dy        float64
	dz        float64
	ds        float64
	rx        float64
	ry        float64
	rz        float64
}

// NewDatum constructs a datum relative to WGS84.
func NewDatum(name string, ellipsoid *Ellipsoid, dx, dy, dz, ds, rx, ry, rz float64) (*Datum, error) {
	if ellipsoid == nil {
		return nil, fmt.Errorf("%w: datum %q requires an ellipsoid", ErrInvalidParameters, name)
	}
	return &Datum{
		name:      name,
		ellipsoid: ellipsoid,
		dx:        dx,
		dy:        dy,
		dz:        dz,
		ds:        ds,
		rx:        rx,
		ry:        ry,
		rz:        rz,
	}, nil
}

// Name returns the datum name.
func (d *Datum) Name() string { return d.name }

// Ellipsoid returns the reference ellipsoid of the datum.
func (d *Datum) Ellipsoid() *Ellipsoid { return d.ellipsoid }

// DX returns the translation along the X axis in meters.
func (d *Datum) DX() float64 { return d.dx }

// DY returns the translation along the Y axis in meters.
func (d *Datum) DY() float64 { return d.dy }

// DZ returns the translation along the Z axis in meters.
func (d *Datum) DZ() float64 { return d.dz }

// DS returns the scale factor in parts per million.
func (d *Datum) DS() float64 { return d.ds }

// RX returns the rotation about the X axis in arc-seconds.
func (d *Datum) RX() float64 { return d.rx }

// RY returns the rotation about the Y axis in arc-seconds.
func (d *Datum) RY() float64 { return d.ry }

// RZ returns the rotation about the Z axis in arc-seconds.
func (d *Datum) RZ() float64 { return d.rz }

func (d *Datum) String() string {
	return fmt.Sprintf("%s %s dx=%v dy=%v dz=%v ds=%v rx=%v ry=%v rz=%v",
		d.name, d.ellipsoid.name, d.dx, d.dy, d.dz, d.ds, d.rx, d.ry, d.rz)
}

// datumDef is a row of the named datum table.
type datumDef struct {
	key        string
	name       string
	ellipsoid  *Ellipsoid
	dx, dy, dz float64
	ds         float64
	rx, ry, rz float64
}

var datumDefs = []datumDef{
	{"wgs84", "World Geodetic System 1984 (WGS84)", WGS84Ellipsoid, 0, 0, 0, 0, 0, 0, 0},
	{"etrf89", "European Terrestrial Reference Frame (ETRF89)", WGS84Ellipsoid, 0, 0, 0, 0, 0, 0, 0},
	{"osgb36", "Ordnance Survey of Great Britain 1936 (OSGB36)", Airy1830Ellipsoid,
		446.448, -125.157, 542.060, -20.4894, 0.1502, 0.2470, 0.8421},
	{"ireland1965", "Ireland 1965", ModifiedAiryEllipsoid,
		482.53, -130.596, 564.557, 8.15, -1.042, -0.214, -0.631},
	{"ed50", "European Datum 1950 (ED50)", International1924Ellipsoid, -87, -98, -121, 0, 0, 0, 0},
	{"nad27-aleutian-east", "North American Datum 1927 (NAD27) - Aleutian East", Clarke1866Ellipsoid,
		-2, 152, 149, 0, 0, 0, 0},
	{"nad27-canada", "North American Datum 1927 (NAD27) - Canada", Clarke1866Ellipsoid,
		-10, 158, 187, 0, 0, 0, 0},
	{"nad27-canada-nw-territory", "North American Datum 1927 (NAD27) - Canada NW Territory", Clarke1866Ellipsoid,
		4, 159, 188, 0, 0, 0, 0},
	{"nad27-canada-yukon", "North American Datum 1927 (NAD27) - Canada Yukon", Clarke1866Ellipsoid,
		-7, 139, 181, 0, 0, 0, 0},
	{"nad27-canal-zone", "North American Datum 1927 (NAD27) - Canal Zone", Clarke1866Ellipsoid,
		0, 125, 201, 0, 0, 0, 0},
	{"nad27-caribbean", "North American Datum 1927 (NAD27) - Caribbean", Clarke1866Ellipsoid,
		-3, 142, 183, 0, 0, 0, 0},
	{"nad27-central-america", "North American Datum 1927 (NAD27) - Central America", Clarke1866Ellipsoid,
		0, 125, 194, 0, 0, 0, 0},
	{"nad27-cuba", "North American Datum 1927 (NAD27) - Cuba", Clarke1866Ellipsoid,
		-9, 152, 178, 0, 0, 0, 0},
	{"nad27-eastern-us", "North American Datum 1927 (NAD27) - Eastern US", Clarke1866Ellipsoid,
		-9, 161, 179, 0, 0, 0, 0},
	{"nad27-greenland", "North American Datum 1927 (NAD27) - Greenland", Clarke1866Ellipsoid,
		11, 114, 195, 0, 0, 0, 0},
	{"nad27-mexico", "North American Datum 1927 (NAD27) - Mexico", Clarke1866Ellipsoid,
		-12, 130, 190, 0, 0, 0, 0},
	{"nad27-san-salvador", "North American Datum 1927 (NAD27) - San Salvador", Clarke1866Ellipsoid,
		1, 140, 165, 0, 0, 0, 0},
	{"nad27-western-us", "North American Datum 1927 (NAD27) - Western US", Clarke1866Ellipsoid,
		-8, 159, 175, 0, 0, 0, 0},
	{"nad27-contiguous-us", "North American Datum 1927 (NAD27) - Contiguous US", Clarke1866Ellipsoid,
		-8, 160, 176, 0, 0, 0, 0},
}
