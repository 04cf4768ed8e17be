package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tzneal/gridref"
	"github.com/tzneal/gridref/internal/config"
	"github.com/tzneal/gridref/internal/detect"
	"github.com/tzneal/gridref/internal/logger"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Options are the gridconv command line options. Unset values fall back to
// the config file and then to config.Default.
type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config"    env:"GRIDCONV_CONFIG" description:"Path to YAML defaults file"`
	Datum      string `short:"d" long:"datum"     description:"Datum of decimal and DMS input (e.g. wgs84, osgb36, nad27-western-us)"`
	Precision  int    `short:"p" long:"precision" description:"MGRS precision in meters (1, 10, 100, 1000 or 10000)"`
	Bessel     bool   `long:"bessel"              description:"Use the Bessel 1841 MGRS row lettering"`
	Format     string `short:"f" long:"format"    description:"Output format" choice:"json" choice:"yaml"`
	ListDatums bool   `long:"list-datums"         description:"Print the accepted datum names and exit"`

	Args struct {
		Coords []string `positional-arg-name:"COORD"`
	} `positional-args:"yes"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	if opts.ListDatums {
		for _, key := range gridref.DatumKeys() {
			d, _ := gridref.LookupDatum(key)
			fmt.Printf("%-26s %s\n", key, d.Name())
		}
		return
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	datum, err := gridref.LookupDatum(cfg.Datum)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid datum")
	}

	if len(opts.Args.Coords) == 0 {
		log.Fatal().Msg("No coordinates given")
	}

	records, failed := convertAll(opts.Args.Coords, detect.Detector{Datum: datum, Bessel: cfg.Bessel},
		gridref.Precision(cfg.Precision), cfg.Bessel)

	if err := writeRecords(os.Stdout, records, cfg.Format); err != nil {
		log.Fatal().Err(err).Msg("Failed to write output")
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// loadConfig merges the defaults file, if any, with the command line.
func loadConfig(opts Options) (*config.Config, error) {
	cfg := config.Default()
	if opts.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(opts.ConfigFile); err != nil {
			return nil, err
		}
	}

	if opts.Datum != "" {
		cfg.Datum = opts.Datum
	}
	if opts.Precision != 0 {
		cfg.Precision = opts.Precision
	}
	if opts.Bessel {
		cfg.Bessel = true
	}
	if opts.Format != "" {
		cfg.Format = opts.Format
	}
	return cfg, cfg.Validate()
}

// convertAll converts every input, logging and counting the failures.
func convertAll(inputs []string, detector detect.Detector, precision gridref.Precision,
	bessel bool) (records []Record, failed int) {
	records = make([]Record, 0, len(inputs))
	for _, input := range inputs {
		res, err := detector.Detect(input)
		if err != nil {
			log.Error().Err(err).Str("input", input).Msg("Failed to parse coordinate")
			failed++
			continue
		}
		rec, err := buildRecord(input, res, precision, bessel)
		if err != nil {
			log.Error().Err(err).Str("input", input).Str("kind", res.Kind.String()).Msg("Failed to convert coordinate")
			failed++
			continue
		}
		log.Debug().Str("input", input).Str("kind", rec.Kind).Msg("Converted coordinate")
		records = append(records, rec)
	}
	return records, failed
}

func writeRecords(w io.Writer, records []Record, format string) error {
	var data []byte
	var err error
	if format == "yaml" {
		data, err = yaml.Marshal(records)
	} else {
		data, err = json.MarshalIndent(records, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
