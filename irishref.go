package gridref

import (
	"fmt"
	"math"
	"strings"
)

const (
	irishMaxEasting  = 400000.0
	irishMaxNorthing = 500000.0
)

// IrishRef is a reference on the Irish national grid. Positions are always
// on the Ireland 1965 datum.
type IrishRef struct {
	Easting  float64
	Northing float64
}

// NewIrishRef constructs an Irish grid reference from an easting in
// [0, 400000) and a northing in [0, 500000) meters.
func NewIrishRef(easting, northing float64) (IrishRef, error) {
	if !(easting >= 0 && easting < irishMaxEasting) {
		return IrishRef{}, fmt.Errorf("%w: easting (%v) must be greater than or equal to 0 and less than %v",
			ErrOutOfRange, easting, irishMaxEasting)
	}
	if !(northing >= 0 && northing < irishMaxNorthing) {
		return IrishRef{}, fmt.Errorf("%w: northing (%v) must be greater than or equal to 0 and less than %v",
			ErrOutOfRange, northing, irishMaxNorthing)
	}
	return IrishRef{Easting: easting, Northing: northing}, nil
}

// ToIrishRef converts the position to Ireland 1965 and projects it onto the
// Irish national grid.
func (l LatLng) ToIrishRef() (IrishRef, error) {
	irl := l.ToIreland1965()
	c, err := IrishGrid.ConvertFromGeodetic(irl.S2())
	if err != nil {
		return IrishRef{}, err
	}
	return NewIrishRef(c.Easting, c.Northing)
}

// ToLatLng returns the position of the reference on the Ireland 1965 datum.
func (r IrishRef) ToLatLng() (LatLng, error) {
	ll, err := IrishGrid.ConvertToGeodetic(MapCoords{Easting: r.Easting, Northing: r.Northing})
	if err != nil {
		return LatLng{}, err
	}
	return NewLatLngWithDatum(ll.Lat.Degrees(), ll.Lng.Degrees(), 0, Ireland1965Datum)
}

// SixFigureString formats the reference to 100m, e.g. "O099361".
func (r IrishRef) SixFigureString() string {
	hundredKmE := int(math.Floor(r.Easting / 100000))
	hundredKmN := int(math.Floor(r.Northing / 100000))
	e := int(math.Floor((r.Easting - 100000*float64(hundredKmE)) / 100))
	n := int(math.Floor((r.Northing - 100000*float64(hundredKmN)) / 100))
	return fmt.Sprintf("%c%03d%03d", squareLetter(hundredKmE, hundredKmN), e, n)
}

func (r IrishRef) String() string {
	return "(" + formatFloat(r.Easting) + ", " + formatFloat(r.Northing) + ")"
}

// ParseIrishRef parses a lettered Irish grid reference with 4 to 10 digits,
// e.g. "O099361". The result is the south-west corner of the square the
// digits denote.
func ParseIrishRef(gridRef string) (IrishRef, error) {
	s := strings.ToUpper(strings.Join(strings.Fields(gridRef), ""))
	if len(s) < 1 {
		return IrishRef{}, fmt.Errorf("%w: empty grid reference", ErrInvalidParameters)
	}
	col, row, err := squareOffset(s[0])
	if err != nil {
		return IrishRef{}, fmt.Errorf("%w: %q", err, gridRef)
	}
	e, n, err := parseGridDigits(s[1:], 4, 10)
	if err != nil {
		return IrishRef{}, fmt.Errorf("%w: %q", err, gridRef)
	}
	return NewIrishRef(float64(col)*100000+e, float64(row)*100000+n)
}
