package gridref_test

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/tzneal/gridref"
)

func mustUTM(t *testing.T, zone int, band byte, easting, northing float64) gridref.UTMRef {
	t.Helper()
	u, err := gridref.NewUTMRef(zone, band, easting, northing)
	if err != nil {
		t.Fatalf("error creating UTM reference: %s", err)
	}
	return u
}

func TestMGRSEncode(t *testing.T) {
	tests := []struct {
		zone           int
		band           byte
		e, n           float64
		expected       string
		expectedBessel string
	}{
		{10, 'T', 574595, 5316784, "10TEU7459516784", "10TEJ7459516784"},
		{30, 'U', 701278, 5709417, "30UYC0127809417", "30UYN0127809417"},
		{56, 'H', 334416, 6251925, "56HLH3441651925", "56HLT3441651925"},
		{31, 'N', 166021, 0, "31NAA6602100000", "31NAL6602100000"},
		{32, 'V', 276980, 6658157, "32VKM7698058157", "32VKB7698058157"},
		{33, 'X', 500000, 8658370, "33XWG0000058370", "33XWS0000058370"},
		{21, 'C', 441293, 1128062, "21CVM4129328062", "21CVB4129328062"},
		{60, 'X', 534391, 9317796, "60XWU3439117796", "60XWJ3439117796"},
		{30, 'M', 778266, 9944682, "30MYE7826644682", "30MYQ7826644682"},
		{4, 'Q', 612345, 2367890, "04QFJ1234567890", "04QFU1234567890"},
		{1, 'N', 166021, 0, "01NAA6602100000", "01NAL6602100000"},
	}
	for _, tc := range tests {
		u := mustUTM(t, tc.zone, tc.band, tc.e, tc.n)
		m, err := u.ToMGRS()
		if err != nil {
			t.Fatalf("%s: unexpected error %s", u, err)
		}
		if got := m.String(); got != tc.expected {
			t.Errorf("%s: expected %s, got %s", u, tc.expected, got)
		}
		if m.Precision() != gridref.Precision1m || m.Bessel() {
			t.Errorf("%s: expected 1m precision without Bessel lettering", u)
		}

		b, err := gridref.NewMGRSRefFromUTM(u, true)
		if err != nil {
			t.Fatalf("%s: unexpected error %s", u, err)
		}
		if got := b.String(); got != tc.expectedBessel {
			t.Errorf("%s: expected %s, got %s", u, tc.expectedBessel, got)
		}
		if !b.Bessel() {
			t.Errorf("%s: expected Bessel lettering", u)
		}

		for _, ref := range []gridref.MGRSRef{m, b} {
			back, err := ref.ToUTM()
			if err != nil {
				t.Fatalf("%s: unexpected error %s", ref, err)
			}
			if back.String() != u.String() {
				t.Errorf("%s: expected %s, got %s", ref, u, back)
			}
		}
	}
}

func TestMGRSFromLatLng(t *testing.T) {
	ll := mustLatLng(t, 47.99999993, -122.000001509)
	m, err := ll.ToMGRS()
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	if got := m.String(); got != "10TEU7459516784" {
		t.Errorf("expected 10TEU7459516784, got %s", got)
	}
	if m.Zone() != 10 || m.Band() != 'T' || m.Column() != 'E' || m.Row() != 'U' ||
		m.Easting() != 74595 || m.Northing() != 16784 {
		t.Errorf("unexpected parts %d %c %c %c %d %d", m.Zone(), m.Band(), m.Column(), m.Row(),
			m.Easting(), m.Northing())
	}

	back, err := m.ToLatLng()
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	if math.Abs(back.Latitude()-47.999999929102664) > 1e-7 || math.Abs(back.Longitude()+122.00000150934233) > 1e-7 {
		t.Errorf("expected (47.999999929102664, -122.00000150934233), got %s", back)
	}

	if _, err := mustLatLng(t, 85, 0).ToMGRS(); !errors.Is(err, gridref.ErrNotDefinedOnGrid) {
		t.Errorf("expected ErrNotDefinedOnGrid, got %v", err)
	}
}

func TestMGRSRoundTrip(t *testing.T) {
	for _, bessel := range []bool{false, true} {
		for lat := -80.0; lat <= 84; lat += 0.5 {
			for lng := -180.0; lng <= 180; lng += 0.5 {
				u, err := mustLatLng(t, lat, lng).ToUTM()
				if err != nil {
					t.Fatalf("(%v, %v): error converting to UTM: %s", lat, lng, err)
				}
				m, err := gridref.NewMGRSRefFromUTM(u, bessel)
				if errors.Is(err, gridref.ErrNotDefinedOnGrid) {
					continue
				}
				if err != nil {
					t.Fatalf("%s: unexpected error %s", u, err)
				}
				back, err := m.ToUTM()
				if err != nil {
					t.Fatalf("%s: error decoding %s: %s", u, m, err)
				}
				if back.Zone() != u.Zone() || back.Band() != u.Band() ||
					back.Easting() != u.Easting() || back.Northing() != u.Northing() {
					t.Fatalf("bessel=%v: expected %s, got %s via %s", bessel, u, back, m)
				}
			}
		}
	}
}

func TestMGRSEncodeOutOfRange(t *testing.T) {
	for _, e := range []float64{0, 99999, 900000, 999999} {
		u := mustUTM(t, 31, 'N', e, 0)
		if _, err := u.ToMGRS(); !errors.Is(err, gridref.ErrNotDefinedOnGrid) {
			t.Errorf("%s: expected ErrNotDefinedOnGrid, got %v", u, err)
		}
	}
}

func TestMGRSTruncatesFractionalMeters(t *testing.T) {
	u := mustUTM(t, 10, 'T', 574595.6, 5316784.9)
	m, err := u.ToMGRS()
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	if m.Easting() != 74595 || m.Northing() != 16784 {
		t.Errorf("expected (74595, 16784), got (%d, %d)", m.Easting(), m.Northing())
	}
	if got := m.String(); got != "10TEU7459516784" {
		t.Errorf("expected 10TEU7459516784, got %s", got)
	}
}

func TestMGRSCarriesDatum(t *testing.T) {
	u, err := gridref.NewUTMRefWithDatum(10, 'T', 574595, 5316784, gridref.NAD27WesternUSDatum)
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	m, err := u.ToMGRS()
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	if m.Datum() != gridref.NAD27WesternUSDatum {
		t.Errorf("expected NAD27, got %s", m.Datum().Name())
	}
	back, err := m.ToUTM()
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	if back.Datum() != gridref.NAD27WesternUSDatum {
		t.Errorf("expected NAD27, got %s", back.Datum().Name())
	}
}

func TestParseMGRS(t *testing.T) {
	tests := []struct {
		in        string
		expected  string
		precision gridref.Precision
		utm       string
	}{
		{"10TEU7459516784", "10TEU7459516784", gridref.Precision1m, "10T 574595 5316784"},
		{"10T EU 74595 16784", "10TEU7459516784", gridref.Precision1m, "10T 574595 5316784"},
		{"10teu7459516784", "10TEU7459516784", gridref.Precision1m, "10T 574595 5316784"},
		{"4QFJ12345678", "04QFJ12345678", gridref.Precision10m, "4Q 612340 2356780"},
		{"04QFJ123567", "04QFJ123567", gridref.Precision100m, "4Q 612300 2356700"},
		{"4QFJ1256", "04QFJ1256", gridref.Precision1000m, "4Q 612000 2356000"},
		{"4QFJ15", "04QFJ15", gridref.Precision10000m, "4Q 610000 2350000"},
	}
	for _, tc := range tests {
		m, err := gridref.ParseMGRS(tc.in)
		if err != nil {
			t.Errorf("%q: unexpected error %s", tc.in, err)
			continue
		}
		if got := m.String(); got != tc.expected {
			t.Errorf("%q: expected %s, got %s", tc.in, tc.expected, got)
		}
		if m.Precision() != tc.precision {
			t.Errorf("%q: expected precision %s, got %s", tc.in, tc.precision, m.Precision())
		}
		u, err := m.ToUTM()
		if err != nil {
			t.Errorf("%q: unexpected error %s", tc.in, err)
			continue
		}
		if got := u.String(); got != tc.utm {
			t.Errorf("%q: expected %s, got %s", tc.in, tc.utm, got)
		}
	}

	invalid := []string{"", "10", "10TE1234", "10TEUU12", "100TEU1234", "10TEU123", "10TEU12345678901",
		"10TEU12-34", "10TIU1234", "10TEO1234", "TEU1234", "10TEU", "10TEU1234X"}
	for _, in := range invalid {
		if _, err := gridref.ParseMGRS(in); !errors.Is(err, gridref.ErrInvalidParameters) {
			t.Errorf("%q: expected ErrInvalidParameters, got %v", in, err)
		}
	}
}

func TestParseBesselMGRS(t *testing.T) {
	m, err := gridref.ParseBesselMGRS("10TEJ7459516784")
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	if !m.Bessel() {
		t.Errorf("expected Bessel lettering")
	}
	u, err := m.ToUTM()
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	if got := u.String(); got != "10T 574595 5316784" {
		t.Errorf("expected 10T 574595 5316784, got %s", got)
	}

	plain, err := gridref.ParseMGRS("10TEJ7459516784")
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	pu, err := plain.ToUTM()
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	if pu.Northing() == u.Northing() {
		t.Errorf("expected the standard lettering to decode to a different northing")
	}
}

func TestMGRSFormat(t *testing.T) {
	m, err := gridref.ParseMGRS("10TEU7459516784")
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	tests := []struct {
		precision gridref.Precision
		expected  string
	}{
		{gridref.Precision1m, "10TEU7459516784"},
		{gridref.Precision10m, "10TEU74591678"},
		{gridref.Precision100m, "10TEU745167"},
		{gridref.Precision1000m, "10TEU7416"},
		{gridref.Precision10000m, "10TEU71"},
		{gridref.Precision(5), "10TEU7459516784"},
	}
	for _, tc := range tests {
		if got := m.Format(tc.precision); got != tc.expected {
			t.Errorf("%s: expected %s, got %s", tc.precision, tc.expected, got)
		}
	}

	coarse, err := gridref.ParseMGRS("4QFJ1256")
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	if got := coarse.Format(gridref.Precision1m); got != "04QFJ1256" {
		t.Errorf("expected a finer precision to render at 1000m, got %s", got)
	}
}

func TestPrecision(t *testing.T) {
	tests := []struct {
		p      gridref.Precision
		digits int
		name   string
	}{
		{gridref.Precision1m, 5, "1m"},
		{gridref.Precision10m, 4, "10m"},
		{gridref.Precision100m, 3, "100m"},
		{gridref.Precision1000m, 2, "1000m"},
		{gridref.Precision10000m, 1, "10000m"},
	}
	for _, tc := range tests {
		if !tc.p.Valid() || tc.p.Digits() != tc.digits || tc.p.String() != tc.name {
			t.Errorf("%d: expected valid with %d digits named %s", int(tc.p), tc.digits, tc.name)
		}
	}
	for _, p := range []gridref.Precision{0, 2, 5, 100000} {
		if p.Valid() || p.Digits() != 0 {
			t.Errorf("%d: expected invalid precision with no digits", int(p))
		}
	}
}

func TestNewMGRSRefValidation(t *testing.T) {
	m, err := gridref.NewMGRSRef(10, 't', 'e', 'u', 74595, 16784, gridref.Precision1m, false)
	if err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	if got := m.String(); got != "10TEU7459516784" {
		t.Errorf("expected 10TEU7459516784, got %s", got)
	}

	tests := []struct {
		zone              int
		band, column, row byte
		e, n              int
		p                 gridref.Precision
	}{
		{0, 'T', 'E', 'U', 0, 0, gridref.Precision1m},
		{61, 'T', 'E', 'U', 0, 0, gridref.Precision1m},
		{10, '1', 'E', 'U', 0, 0, gridref.Precision1m},
		{10, 'T', 'I', 'U', 0, 0, gridref.Precision1m},
		{10, 'T', 'O', 'U', 0, 0, gridref.Precision1m},
		{10, 'T', 'E', 'I', 0, 0, gridref.Precision1m},
		{10, 'T', 'E', 'O', 0, 0, gridref.Precision1m},
		{10, 'T', 'E', '?', 0, 0, gridref.Precision1m},
		{10, 'T', 'E', 'U', -1, 0, gridref.Precision1m},
		{10, 'T', 'E', 'U', 100000, 0, gridref.Precision1m},
		{10, 'T', 'E', 'U', 0, -1, gridref.Precision1m},
		{10, 'T', 'E', 'U', 0, 100000, gridref.Precision1m},
		{10, 'T', 'E', 'U', 0, 0, gridref.Precision(3)},
	}
	for i, tc := range tests {
		_, err := gridref.NewMGRSRef(tc.zone, tc.band, tc.column, tc.row, tc.e, tc.n, tc.p, false)
		if !errors.Is(err, gridref.ErrInvalidParameters) {
			t.Errorf("case %d: expected ErrInvalidParameters, got %v", i, err)
		}
	}
}

func TestMGRSNotDefinedOnGrid(t *testing.T) {
	for _, in := range []string{"10ZEU7459516784", "10TEW7459516784", "10AEU7459516784"} {
		m, err := gridref.ParseMGRS(in)
		if err != nil {
			t.Fatalf("%q: unexpected error %s", in, err)
		}
		if _, err := m.ToUTM(); !errors.Is(err, gridref.ErrNotDefinedOnGrid) {
			t.Errorf("%q: expected ErrNotDefinedOnGrid, got %v", in, err)
		}
	}
}

func TestMGRSFuzzCrashers(t *testing.T) {
	for _, v := range []string{"00000000\xff\xff", "\xff\xff", "00000000\u007f\xff",
		"00000000\xff\xff", "\u007f\xff", "@@@@@@@@@@@@@@@@", "\x40\x45\x00\x00\x00\x00\x00\x00\xc0\x5e"} {
		if err := fuzzMGRS([]byte(v)); err != nil {
			t.Errorf("%q: %s", v, err)
		}
	}
}

func fuzzMGRS(data []byte) error {
	for len(data) < 16 {
		data = append(data, 0)
	}
	lat := math.Float64frombits(binary.BigEndian.Uint64(data[0:]))
	lng := math.Float64frombits(binary.BigEndian.Uint64(data[8:]))

	ll, err := gridref.NewLatLng(lat, lng)
	if err != nil {
		return nil
	}
	m, err := ll.ToMGRS()
	if err != nil {
		return nil
	}
	parsed, err := gridref.ParseMGRS(m.String())
	if err != nil {
		return fmt.Errorf("error parsing %s: %w", m, err)
	}
	if _, err := parsed.ToLatLng(); err != nil {
		return fmt.Errorf("expected no error in round trip, got one at %s (%w)", ll, err)
	}
	return nil
}

func FuzzParseMGRS(f *testing.F) {
	for _, seed := range []string{"10TEU7459516784", "4QFJ12345678", "10T EU 745 167", "00AAA", "\xff\xff"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		m, err := gridref.ParseMGRS(s)
		if err != nil {
			return
		}
		again, err := gridref.ParseMGRS(m.String())
		if err != nil {
			t.Fatalf("%q: error reparsing %s: %s", s, m, err)
		}
		if again.String() != m.String() {
			t.Fatalf("%q: expected %s, got %s", s, m, again)
		}
	})
}
