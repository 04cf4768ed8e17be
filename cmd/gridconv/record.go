package main

import (
	"github.com/tzneal/gridref"
	"github.com/tzneal/gridref/internal/detect"

	"github.com/rs/zerolog/log"
)

// Record is every representation of one input coordinate.
type Record struct {
	Input     string  `json:"input" yaml:"input"`
	Kind      string  `json:"kind" yaml:"kind"`
	Datum     string  `json:"datum" yaml:"datum"` // datum of the input
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	DMS       string  `json:"dms" yaml:"dms"`
	UTM       string  `json:"utm,omitempty" yaml:"utm,omitempty"`
	MGRS      string  `json:"mgrs,omitempty" yaml:"mgrs,omitempty"`
	OSGrid    string  `json:"os_grid,omitempty" yaml:"os_grid,omitempty"`
	IrishGrid string  `json:"irish_grid,omitempty" yaml:"irish_grid,omitempty"`
}

// sourcePosition returns the position a detected input denotes, on the
// input's own datum.
func sourcePosition(res detect.Result) (gridref.LatLng, error) {
	switch res.Kind {
	case detect.KindUTM:
		return res.UTM.ToLatLng()
	case detect.KindMGRS:
		return res.MGRS.ToLatLng()
	case detect.KindOSGrid:
		return res.OS.ToLatLng()
	case detect.KindIrishGrid:
		return res.Irish.ToLatLng()
	}
	return res.LatLng, nil
}

// buildRecord converts a detected input to WGS84 and every grid it falls on.
// Grids that do not cover the position are left empty.
func buildRecord(input string, res detect.Result, precision gridref.Precision, bessel bool) (Record, error) {
	src, err := sourcePosition(res)
	if err != nil {
		return Record{}, err
	}
	wgs := src.ToWGS84()

	rec := Record{
		Input:     input,
		Kind:      res.Kind.String(),
		Datum:     src.Datum().Name(),
		Latitude:  wgs.Latitude(),
		Longitude: wgs.Longitude(),
		DMS:       wgs.DMSString(),
	}

	if utm, err := wgs.ToUTM(); err != nil {
		log.Debug().Err(err).Str("input", input).Msg("No UTM reference")
	} else {
		rec.UTM = utm.String()
		if m, err := gridref.NewMGRSRefFromUTM(utm, bessel); err != nil {
			log.Debug().Err(err).Str("input", input).Msg("No MGRS reference")
		} else {
			rec.MGRS = m.Format(precision)
		}
	}

	if osRef, err := wgs.ToOSRef(); err != nil {
		log.Debug().Err(err).Str("input", input).Msg("Not on the OS grid")
	} else {
		rec.OSGrid = osRef.TenFigureString()
	}

	if irish, err := wgs.ToIrishRef(); err != nil {
		log.Debug().Err(err).Str("input", input).Msg("Not on the Irish grid")
	} else {
		rec.IrishGrid = irish.SixFigureString()
	}
	return rec, nil
}
