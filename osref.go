package gridref

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	osMaxEasting  = 800000.0
	osMaxNorthing = 1400000.0
)

// OSRef is a reference on the Ordnance Survey national grid of Great
// Britain. Positions are always on the OSGB36 datum.
type OSRef struct {
	Easting  float64
	Northing float64
}

// NewOSRef constructs an OS grid reference from an easting in [0, 800000)
// and a northing in [0, 1400000) meters.
func NewOSRef(easting, northing float64) (OSRef, error) {
	if !(easting >= 0 && easting < osMaxEasting) {
		return OSRef{}, fmt.Errorf("%w: easting (%v) must be greater than or equal to 0 and less than %v",
			ErrOutOfRange, easting, osMaxEasting)
	}
	if !(northing >= 0 && northing < osMaxNorthing) {
		return OSRef{}, fmt.Errorf("%w: northing (%v) must be greater than or equal to 0 and less than %v",
			ErrOutOfRange, northing, osMaxNorthing)
	}
	return OSRef{Easting: easting, Northing: northing}, nil
}

// ToOSRef converts the position to OSGB36 and projects it onto the OS
// national grid.
func (l LatLng) ToOSRef() (OSRef, error) {
	osgb := l.ToOSGB36()
	c, err := OSGrid.ConvertFromGeodetic(osgb.S2())
	if err != nil {
		return OSRef{}, err
	}
	return NewOSRef(c.Easting, c.Northing)
}

// ToLatLng returns the position of the reference on the OSGB36 datum.
func (o OSRef) ToLatLng() (LatLng, error) {
	ll, err := OSGrid.ConvertToGeodetic(MapCoords{Easting: o.Easting, Northing: o.Northing})
	if err != nil {
		return LatLng{}, err
	}
	return NewLatLngWithDatum(ll.Lat.Degrees(), ll.Lng.Degrees(), 0, OSGB36Datum)
}

func (o OSRef) hundredKmEast() int  { return int(math.Floor(o.Easting / 100000)) }
func (o OSRef) hundredKmNorth() int { return int(math.Floor(o.Northing / 100000)) }

// letters returns the two letter 100km square identifier.
func (o OSRef) letters() string {
	e := o.hundredKmEast()
	n := o.hundredKmNorth()

	var first byte
	switch {
	case n < 5 && e < 5:
		first = 'S'
	case n < 5:
		first = 'T'
	case n < 10 && e < 5:
		first = 'N'
	case n < 10:
		first = 'O'
	default:
		first = 'H'
	}
	return string([]byte{first, squareLetter(e%5, n%5)})
}

// SixFigureString formats the reference to 100m, e.g. "TG514131".
func (o OSRef) SixFigureString() string {
	e := int(math.Floor((o.Easting - 100000*float64(o.hundredKmEast())) / 100))
	n := int(math.Floor((o.Northing - 100000*float64(o.hundredKmNorth())) / 100))
	return fmt.Sprintf("%s%03d%03d", o.letters(), e, n)
}

// TenFigureString formats the reference to 1m, e.g. "TG 51409 13177".
func (o OSRef) TenFigureString() string {
	e := int(math.Floor(o.Easting - 100000*float64(o.hundredKmEast())))
	n := int(math.Floor(o.Northing - 100000*float64(o.hundredKmNorth())))
	return fmt.Sprintf("%s %05d %05d", o.letters(), e, n)
}

func (o OSRef) String() string {
	return "(" + formatFloat(o.Easting) + ", " + formatFloat(o.Northing) + ")"
}

// ParseOSRef parses a lettered OS grid reference with 6, 8 or 10 digits, e.g.
// "TG514131" or "TG 51409 13177". The result is the south-west corner of the
// square the digits denote.
func ParseOSRef(gridRef string) (OSRef, error) {
	s := strings.ToUpper(strings.Join(strings.Fields(gridRef), ""))
	if len(s) < 2 {
		return OSRef{}, fmt.Errorf("%w: grid reference %q is too short", ErrInvalidParameters, gridRef)
	}

	var east, north float64
	switch s[0] {
	case 'S':
	case 'T':
		east = 500000
	case 'N':
		north = 500000
	case 'O':
		east, north = 500000, 500000
	case 'H':
		north = 1000000
	default:
		return OSRef{}, fmt.Errorf("%w: invalid first letter %q in %q", ErrInvalidParameters, s[0], gridRef)
	}
	col, row, err := squareOffset(s[1])
	if err != nil {
		return OSRef{}, fmt.Errorf("%w: %q", err, gridRef)
	}
	e, n, err := parseGridDigits(s[2:], 6, 10)
	if err != nil {
		return OSRef{}, fmt.Errorf("%w: %q", err, gridRef)
	}
	return NewOSRef(east+float64(col)*100000+e, north+float64(row)*100000+n)
}

// squareLetter returns the letter of a 5x5 lettered grid, skipping 'I', for
// the given column and row counted from the south-west corner.
func squareLetter(col, row int) byte {
	index := 'A' + (4-row)*5 + col
	if index >= 'I' {
		index++
	}
	return byte(index)
}

// squareOffset is the inverse of squareLetter.
func squareOffset(letter byte) (col, row int, err error) {
	if letter < 'A' || letter > 'Z' || letter == 'I' {
		return 0, 0, fmt.Errorf("%w: invalid square letter %q", ErrInvalidParameters, letter)
	}
	index := int(letter - 'A')
	if letter > 'I' {
		index--
	}
	return index % 5, 4 - index/5, nil
}

// parseGridDigits splits an even number of digits into an easting and a
// northing scaled to meters within a 100km square.
func parseGridDigits(digits string, minDigits, maxDigits int) (easting, northing float64, err error) {
	if len(digits)%2 != 0 || len(digits) < minDigits || len(digits) > maxDigits {
		return 0, 0, fmt.Errorf("%w: expected an even number of digits between %d and %d, got %d",
			ErrInvalidParameters, minDigits, maxDigits, len(digits))
	}
	for i := 0; i < len(digits); i++ {
		if !isdigit(digits[i]) {
			return 0, 0, fmt.Errorf("%w: invalid digits %q", ErrInvalidParameters, digits)
		}
	}
	half := len(digits) / 2
	e, _ := strconv.Atoi(digits[:half])
	n, _ := strconv.Atoi(digits[half:])
	scale := math.Pow10(5 - half)
	return float64(e) * scale, float64(n) * scale, nil
}
