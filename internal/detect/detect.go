// Package detect classifies free-text coordinates and builds the matching
// gridref value.
package detect

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tzneal/gridref"
)

// ErrUnrecognized is returned when no coordinate format matches the input.
var ErrUnrecognized = errors.New("unrecognized coordinate format")

// Kind is the detected format of an input string.
type Kind int

// Kind constants
const (
	KindUnknown Kind = iota
	KindDecimal
	KindDMS
	KindUTM
	KindMGRS
	KindOSGrid
	KindIrishGrid
)

var kindNames = map[Kind]string{
	KindUnknown:   "unknown",
	KindDecimal:   "decimal",
	KindDMS:       "dms",
	KindUTM:       "utm",
	KindMGRS:      "mgrs",
	KindOSGrid:    "osgrid",
	KindIrishGrid: "irishgrid",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Result is a classified input. Only the field matching Kind is set.
type Result struct {
	Kind   Kind
	LatLng gridref.LatLng
	UTM    gridref.UTMRef
	MGRS   gridref.MGRSRef
	OS     gridref.OSRef
	Irish  gridref.IrishRef
}

// Detector classifies strings. The zero value reads geodetic input on WGS84
// and MGRS input with the standard lettering.
type Detector struct {
	// Datum of decimal and DMS input.
	Datum *gridref.Datum
	// Bessel selects the Bessel 1841 MGRS row lettering.
	Bessel bool
}

var (
	mgrsRe    = regexp.MustCompile(`(?i)^\d{1,2}\s*[C-HJ-NP-X]\s*[A-HJ-NP-Z]\s*[A-HJ-NP-V]\s*\d+(\s+\d+)?$`)
	utmRe     = regexp.MustCompile(`(?i)^(\d{1,2})\s*([C-HJ-NP-X])\s+(\d+(?:\.\d+)?)\s+(\d+(?:\.\d+)?)$`)
	osRe      = regexp.MustCompile(`(?i)^[HNOST][A-HJ-Z]\s*\d+(\s+\d+)?$`)
	irishRe   = regexp.MustCompile(`(?i)^[A-HJ-Z]\s*\d+(\s+\d+)?$`)
	decimalRe = regexp.MustCompile(`^([-+]?\d{1,3}(?:\.\d+)?)\s*[,/: ]\s*([-+]?\d{1,3}(?:\.\d+)?)$`)
	dmsRe     = regexp.MustCompile(`(?i)^([-+]?\d{1,2})[°:\s]\s*(\d{1,2})['′:\s]\s*(\d{1,2}(?:\.\d+)?)["″]?\s*([NS])?` +
		`[\s,/]+` +
		`([-+]?\d{1,3})[°:\s]\s*(\d{1,2})['′:\s]\s*(\d{1,2}(?:\.\d+)?)["″]?\s*([EW])?$`)
)

// Detect classifies the input with the default Detector.
func Detect(s string) (Result, error) {
	return Detector{}.Detect(s)
}

// Detect classifies s and constructs the value it denotes.
func (d Detector) Detect(s string) (Result, error) {
	s = strings.TrimSpace(s)
	switch {
	case mgrsRe.MatchString(s):
		parse := gridref.ParseMGRS
		if d.Bessel {
			parse = gridref.ParseBesselMGRS
		}
		m, err := parse(s)
		return Result{Kind: KindMGRS, MGRS: m}, err
	case utmRe.MatchString(s):
		u, err := gridref.ParseUTMRef(s)
		return Result{Kind: KindUTM, UTM: u}, err
	case osRe.MatchString(s):
		o, err := gridref.ParseOSRef(s)
		return Result{Kind: KindOSGrid, OS: o}, err
	case irishRe.MatchString(s):
		r, err := gridref.ParseIrishRef(s)
		return Result{Kind: KindIrishGrid, Irish: r}, err
	case decimalRe.MatchString(s):
		ll, err := d.decimal(decimalRe.FindStringSubmatch(s))
		return Result{Kind: KindDecimal, LatLng: ll}, err
	case dmsRe.MatchString(s):
		ll, err := d.dms(dmsRe.FindStringSubmatch(s))
		return Result{Kind: KindDMS, LatLng: ll}, err
	}
	return Result{}, fmt.Errorf("%w: %q", ErrUnrecognized, s)
}

func (d Detector) decimal(match []string) (gridref.LatLng, error) {
	lat, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return gridref.LatLng{}, err
	}
	lng, err := strconv.ParseFloat(match[2], 64)
	if err != nil {
		return gridref.LatLng{}, err
	}
	return gridref.NewLatLngWithDatum(lat, lng, 0, d.Datum)
}

func (d Detector) dms(match []string) (gridref.LatLng, error) {
	lat, err := dmsAngle(match[1], match[2], match[3], match[4], "S")
	if err != nil {
		return gridref.LatLng{}, err
	}
	lng, err := dmsAngle(match[5], match[6], match[7], match[8], "W")
	if err != nil {
		return gridref.LatLng{}, err
	}
	return gridref.NewLatLngWithDatum(lat, lng, 0, d.Datum)
}

// dmsAngle combines degrees, minutes and seconds into signed degrees. A
// negative degree value or the negative hemisphere letter makes the result
// negative.
func dmsAngle(deg, minutes, seconds, hemisphere, negative string) (float64, error) {
	d, err := strconv.Atoi(deg)
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(minutes)
	if err != nil {
		return 0, err
	}
	s, err := strconv.ParseFloat(seconds, 64)
	if err != nil {
		return 0, err
	}
	if m >= 60 || s >= 60 {
		return 0, fmt.Errorf("%w: minutes and seconds must be less than 60", gridref.ErrInvalidParameters)
	}

	sign := 1.0
	if d < 0 || strings.HasPrefix(deg, "-") {
		sign = -1
		d = -d
	}
	if strings.EqualFold(hemisphere, negative) {
		sign = -1
	}
	return sign * (float64(d) + float64(m)/60 + s/3600), nil
}
