package gridref

import (
	"fmt"
	"strings"
)

// Named datums. All are built once in init and never modified.
var (
	WGS84Datum                  *Datum
	ETRF89Datum                 *Datum
	OSGB36Datum                 *Datum
	Ireland1965Datum            *Datum
	ED50Datum                   *Datum
	NAD27AleutianEastDatum      *Datum
	NAD27CanadaDatum            *Datum
	NAD27CanadaNWTerritoryDatum *Datum
	NAD27CanadaYukonDatum       *Datum
	NAD27CanalZoneDatum         *Datum
	NAD27CaribbeanDatum         *Datum
	NAD27CentralAmericaDatum    *Datum
	NAD27CubaDatum              *Datum
	NAD27EasternUSDatum         *Datum
	NAD27GreenlandDatum         *Datum
	NAD27MexicoDatum            *Datum
	NAD27SanSalvadorDatum       *Datum
	NAD27WesternUSDatum         *Datum
	NAD27ContiguousUSDatum      *Datum
)

// OSGrid is the Transverse Mercator projection of the Ordnance Survey
// national grid on the Airy 1830 ellipsoid.
var OSGrid *TransverseMercator

// IrishGrid is the Transverse Mercator projection of the Irish national grid
// on the Modified Airy ellipsoid.
var IrishGrid *TransverseMercator

var (
	datumsByKey  = map[string]*Datum{}
	datumsByName = map[string]*Datum{}
	datumKeys    []string
)

func init() {
	targets := map[string]**Datum{
		"wgs84":                     &WGS84Datum,
		"etrf89":                    &ETRF89Datum,
		"osgb36":                    &OSGB36Datum,
		"ireland1965":               &Ireland1965Datum,
		"ed50":                      &ED50Datum,
		"nad27-aleutian-east":       &NAD27AleutianEastDatum,
		"nad27-canada":              &NAD27CanadaDatum,
		"nad27-canada-nw-territory": &NAD27CanadaNWTerritoryDatum,
		"nad27-canada-yukon":        &NAD27CanadaYukonDatum,
		"nad27-canal-zone":          &NAD27CanalZoneDatum,
		"nad27-caribbean":           &NAD27CaribbeanDatum,
		"nad27-central-america":     &NAD27CentralAmericaDatum,
		"nad27-cuba":                &NAD27CubaDatum,
		"nad27-eastern-us":          &NAD27EasternUSDatum,
		"nad27-greenland":           &NAD27GreenlandDatum,
		"nad27-mexico":              &NAD27MexicoDatum,
		"nad27-san-salvador":        &NAD27SanSalvadorDatum,
		"nad27-western-us":          &NAD27WesternUSDatum,
		"nad27-contiguous-us":       &NAD27ContiguousUSDatum,
	}
	for _, def := range datumDefs {
		d, err := NewDatum(def.name, def.ellipsoid, def.dx, def.dy, def.dz, def.ds, def.rx, def.ry, def.rz)
		if err != nil {
			panic(fmt.Sprintf("error constructing %s datum: %s", def.key, err))
		}
		if dst, ok := targets[def.key]; ok {
			*dst = d
		}
		datumsByKey[def.key] = d
		datumsByName[strings.ToLower(def.name)] = d
		datumKeys = append(datumKeys, def.key)
	}

	var err error
	OSGrid, err = NewTransverseMercator(Airy1830Ellipsoid, 0.9996012717,
		deg2rad(49), deg2rad(-2), 400000, -100000)
	if err != nil {
		panic(fmt.Sprintf("error constructing OS grid converter: %s", err))
	}
	IrishGrid, err = NewTransverseMercator(ModifiedAiryEllipsoid, 1.000035,
		deg2rad(53.5), deg2rad(-8), 200000, 250000)
	if err != nil {
		panic(fmt.Sprintf("error constructing Irish grid converter: %s", err))
	}
}

// LookupDatum finds a named datum by its short key (e.g. "osgb36",
// "nad27-western-us") or its full name, ignoring case.
func LookupDatum(name string) (*Datum, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if d, ok := datumsByKey[n]; ok {
		return d, nil
	}
	if d, ok := datumsByName[n]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("%w: unknown datum %q", ErrInvalidParameters, name)
}

// DatumKeys returns the short keys accepted by LookupDatum in table order.
func DatumKeys() []string {
	keys := make([]string, len(datumKeys))
	copy(keys, datumKeys)
	return keys
}
