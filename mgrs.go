package gridref

import (
	"bytes"
	"fmt"
	"math"
	"strings"
)

const mgrsMaxPrecision = 5 // Maximum precision of easting & northing
const mgrsMinEasting = 100000.0
const mgrsMaxEasting = 900000.0
const mgrsSquareSize = 100000.0
const mgrsRowCycle = 2000000.0

const letterA = 'A'
const letterH = 'H'
const letterI = 'I'
const letterJ = 'J'
const letterN = 'N'
const letterO = 'O'
const letterS = 'S'
const letterV = 'V'

// Precision is the size in meters of the square an MGRS reference denotes.
type Precision int

// Precision constants
const (
	Precision1m     Precision = 1
	Precision10m    Precision = 10
	Precision100m   Precision = 100
	Precision1000m  Precision = 1000
	Precision10000m Precision = 10000
)

// Valid reports whether p is one of the defined precisions.
func (p Precision) Valid() bool {
	switch p {
	case Precision1m, Precision10m, Precision100m, Precision1000m, Precision10000m:
		return true
	}
	return false
}

// Digits returns the number of easting (and northing) digits rendered at
// this precision, or 0 if the precision is not valid.
func (p Precision) Digits() int {
	if !p.Valid() {
		return 0
	}
	return mgrsMaxPrecision - int(math.Round(math.Log10(float64(p))))
}

func (p Precision) String() string {
	return fmt.Sprintf("%dm", int(p))
}

// precisionForDigits is the inverse of Precision.Digits.
func precisionForDigits(digits int) Precision {
	return Precision(math.Pow10(mgrsMaxPrecision - digits))
}

// MGRSRef is a Military Grid Reference System reference: a UTM zone and
// latitude band, a 100km square identified by a column and a row letter and
// an easting and northing in meters within that square.
type MGRSRef struct {
	zone      int
	band      byte
	column    byte
	row       byte
	easting   int
	northing  int
	precision Precision
	bessel    bool
	datum     *Datum
}

// NewMGRSRef constructs an MGRS reference from its parts. Being
// constructible does not guarantee the reference denotes a real position;
// ToUTM reports that.
func NewMGRSRef(zone int, band, column, row byte, easting, northing int,
	precision Precision, bessel bool) (MGRSRef, error) {
	band = toupper(band)
	column = toupper(column)
	row = toupper(row)
	if (zone < 1) || (zone > 60) {
		return MGRSRef{}, fmt.Errorf("%w: invalid zone number (%d)", ErrInvalidParameters, zone)
	}
	if !isalpha(band) {
		return MGRSRef{}, fmt.Errorf("%w: invalid zone letter (%q)", ErrInvalidParameters, band)
	}
	if !isalpha(column) || column == letterI || column == letterO {
		return MGRSRef{}, fmt.Errorf("%w: invalid column letter (%q)", ErrInvalidParameters, column)
	}
	if !isalpha(row) || row == letterI || row == letterO {
		return MGRSRef{}, fmt.Errorf("%w: invalid row letter (%q)", ErrInvalidParameters, row)
	}
	if easting < 0 || easting > 99999 {
		return MGRSRef{}, fmt.Errorf("%w: invalid easting (%d)", ErrInvalidParameters, easting)
	}
	if northing < 0 || northing > 99999 {
		return MGRSRef{}, fmt.Errorf("%w: invalid northing (%d)", ErrInvalidParameters, northing)
	}
	if !precision.Valid() {
		return MGRSRef{}, fmt.Errorf("%w: invalid precision (%d)", ErrInvalidParameters, int(precision))
	}
	return MGRSRef{
		zone:      zone,
		band:      band,
		column:    column,
		row:       row,
		easting:   easting,
		northing:  northing,
		precision: precision,
		bessel:    bessel,
		datum:     WGS84Datum,
	}, nil
}

// NewMGRSRefFromUTM encodes a UTM reference at 1m precision, truncating
// fractional meters. bessel selects the row lettering used with the Bessel
// 1841 ellipsoid.
func NewMGRSRefFromUTM(u UTMRef, bessel bool) (MGRSRef, error) {
	easting := math.Floor(u.easting)
	northing := math.Floor(u.northing)
	if (easting < mgrsMinEasting) || (easting >= mgrsMaxEasting) {
		return MGRSRef{}, fmt.Errorf("%w: easting (%v) has no 100km column letter", ErrNotDefinedOnGrid, u.easting)
	}

	ltr2LowValue, patternOffset := getGridValues(u.zone, bessel)

	column := byte(ltr2LowValue + (int(easting/mgrsSquareSize) - 1))
	if (ltr2LowValue == letterJ) && (column > letterN) {
		column++
	}

	gridNorthing := math.Mod(math.Mod(northing, mgrsRowCycle)+patternOffset, mgrsRowCycle)
	row := byte(letterA + int(gridNorthing/mgrsSquareSize))
	if row > letterH {
		row++
	}
	if row > letterN {
		row++
	}

	return MGRSRef{
		zone:      u.zone,
		band:      u.band,
		column:    column,
		row:       row,
		easting:   int(math.Mod(easting, mgrsSquareSize)),
		northing:  int(math.Mod(northing, mgrsSquareSize)),
		precision: Precision1m,
		bessel:    bessel,
		datum:     u.Datum(),
	}, nil
}

// ToMGRS encodes the reference as MGRS at 1m precision.
func (u UTMRef) ToMGRS() (MGRSRef, error) {
	return NewMGRSRefFromUTM(u, false)
}

// ToMGRS projects the position onto UTM and encodes it as MGRS.
func (l LatLng) ToMGRS() (MGRSRef, error) {
	u, err := l.ToUTM()
	if err != nil {
		return MGRSRef{}, err
	}
	return u.ToMGRS()
}

// Zone returns the UTM longitude zone.
func (m MGRSRef) Zone() int { return m.zone }

// Band returns the UTM latitude band letter.
func (m MGRSRef) Band() byte { return m.band }

// Column returns the 100km square column letter.
func (m MGRSRef) Column() byte { return m.column }

// Row returns the 100km square row letter.
func (m MGRSRef) Row() byte { return m.row }

// Easting returns the easting within the 100km square in meters.
func (m MGRSRef) Easting() int { return m.easting }

// Northing returns the northing within the 100km square in meters.
func (m MGRSRef) Northing() int { return m.northing }

// Precision returns the precision the reference was created with.
func (m MGRSRef) Precision() Precision { return m.precision }

// Bessel reports whether the reference uses the Bessel 1841 row lettering.
func (m MGRSRef) Bessel() bool { return m.bessel }

// Datum returns the datum of the reference.
func (m MGRSRef) Datum() *Datum {
	if m.datum == nil {
		return WGS84Datum
	}
	return m.datum
}

// ToUTM decodes the reference into a UTM reference on the same datum.
func (m MGRSRef) ToUTM() (UTMRef, error) {
	band, ok := findLatitudeBand(m.band)
	if !ok {
		return UTMRef{}, fmt.Errorf("%w: latitude band %q", ErrNotDefinedOnGrid, m.band)
	}
	if m.row > letterV {
		return UTMRef{}, fmt.Errorf("%w: row letter %q", ErrNotDefinedOnGrid, m.row)
	}

	col := int(m.column - letterA)
	if col >= int(letterO-letterA) {
		col--
	}
	if col >= int(letterI-letterA) {
		col--
	}
	easting := math.Mod(float64(m.easting)+float64(col%8+1)*mgrsSquareSize, 1000000)

	_, patternOffset := getGridValues(m.zone, m.bessel)
	rowIndex := int(m.row - letterA)
	if m.row > letterO {
		rowIndex--
	}
	if m.row > letterI {
		rowIndex--
	}
	gridNorthing := float64(rowIndex)*mgrsSquareSize - patternOffset
	for gridNorthing < 0 {
		gridNorthing += mgrsRowCycle
	}
	gridNorthing -= math.Mod(band.minNorthing, mgrsRowCycle)
	if gridNorthing < 0 {
		gridNorthing += mgrsRowCycle
	}
	northing := band.minNorthing + gridNorthing + float64(m.northing)

	return NewUTMRefWithDatum(m.zone, m.band, easting, northing, m.Datum())
}

// ToLatLng decodes the reference into a position on its datum.
func (m MGRSRef) ToLatLng() (LatLng, error) {
	u, err := m.ToUTM()
	if err != nil {
		return LatLng{}, err
	}
	return u.ToLatLng()
}

// String formats the reference at its own precision, e.g. "10TEU7459516784".
func (m MGRSRef) String() string {
	return m.Format(m.precision)
}

// Format renders the reference at the given precision. A precision finer
// than the one the reference was created with is rendered at the
// reference's own precision.
func (m MGRSRef) Format(precision Precision) string {
	if !precision.Valid() || precision < m.precision {
		precision = m.precision
	}
	return makeMGRSString(m.zone, [3]byte{m.band, m.column, m.row}, m.easting, m.northing, precision)
}

// ParseMGRS parses an MGRS reference such as "10TEU7459516784",
// "4QFJ12345678" or "10T EU 74595 16784". Case and spacing are ignored and
// the number of digits sets the precision.
func ParseMGRS(s string) (MGRSRef, error) {
	return parseMGRS(s, false)
}

// ParseBesselMGRS parses an MGRS reference that uses the Bessel 1841 row
// lettering.
func ParseBesselMGRS(s string) (MGRSRef, error) {
	return parseMGRS(s, true)
}

func parseMGRS(s string, bessel bool) (MGRSRef, error) {
	zone, letters, easting, northing, precision, err := breakMGRSString(s)
	if err != nil {
		return MGRSRef{}, fmt.Errorf("%w: %q", err, s)
	}
	return NewMGRSRef(zone, letters[0], letters[1], letters[2], easting, northing, precision, bessel)
}

// getGridValues returns the first column letter of the 100km squares in the
// zone and the false northing of row letter A, both based on the set number
// of the zone.
func getGridValues(zone int, bessel bool) (ltr2LowValue int, patternOffset float64) {
	// Set number (1-6) based on UTM zone number
	setNumber := zone % 6
	if setNumber == 0 {
		setNumber = 6
	}

	switch setNumber {
	case 1, 4:
		ltr2LowValue = letterA
	case 2, 5:
		ltr2LowValue = letterJ
	case 3, 6:
		ltr2LowValue = letterS
	}

	if (setNumber % 2) == 0 {
		patternOffset = 500000.0
	}
	if bessel {
		patternOffset += 1000000.0
	}
	return
}

// makeMGRSString constructs an MGRS string from its component parts
func makeMGRSString(zone int, letters [3]byte, easting, northing int, precision Precision) string {
	buf := bytes.Buffer{}
	fmt.Fprintf(&buf, "%2.2d", zone)
	buf.Write(letters[:])

	digits := precision.Digits()
	fmt.Fprintf(&buf, "%*.*d", digits, digits, easting/int(precision))
	fmt.Fprintf(&buf, "%*.*d", digits, digits, northing/int(precision))
	return buf.String()
}

// breakMGRSString breaks down an MGRS coordinate string into its component
// parts. Whitespace is ignored.
func breakMGRSString(mgrsString string) (zone int, letters [3]byte,
	easting, northing int, precision Precision, err error) {

	tempMGRSString := strings.ToUpper(strings.Join(strings.Fields(mgrsString), ""))
	for i := 0; i < len(tempMGRSString); i++ {
		// check for invalid character
		if !isdigit(tempMGRSString[i]) && !isalpha(tempMGRSString[i]) {
			err = fmt.Errorf("%w: invalid character", ErrInvalidParameters)
			return
		}
	}

	i := 0
	for i < len(tempMGRSString) && isdigit(tempMGRSString[i]) {
		i++
	}
	if i == 0 || i > 2 {
		err = fmt.Errorf("%w: zone must be one or two digits", ErrInvalidParameters)
		return
	}
	for _, d := range tempMGRSString[:i] {
		zone = zone*10 + int(d-'0')
	}

	j := i
	for i < len(tempMGRSString) && isalpha(tempMGRSString[i]) {
		i++
	}
	if i-j != 3 {
		err = fmt.Errorf("%w: wrong number of letters", ErrInvalidParameters)
		return
	}
	copy(letters[:], tempMGRSString[j:i])

	j = i
	for i < len(tempMGRSString) && isdigit(tempMGRSString[i]) {
		i++
	}
	numDigits := i - j
	if i != len(tempMGRSString) || numDigits == 0 || numDigits > 2*mgrsMaxPrecision || numDigits%2 != 0 {
		err = fmt.Errorf("%w: wrong number of digits", ErrInvalidParameters)
		return
	}

	// get easting & northing
	n := numDigits / 2
	precision = precisionForDigits(n)
	for _, d := range tempMGRSString[j : j+n] {
		easting = easting*10 + int(d-'0')
	}
	for _, d := range tempMGRSString[j+n : i] {
		northing = northing*10 + int(d-'0')
	}
	easting *= int(precision)
	northing *= int(precision)
	return
}

func isdigit(r byte) bool {
	return r >= '0' && r <= '9'
}

func isalpha(r byte) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func toupper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
