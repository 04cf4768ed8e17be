package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetupWriterLevels(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	tests := []struct {
		name string
		opts Logger
		want zerolog.Level
	}{
		{"default", Logger{}, zerolog.InfoLevel},
		{"explicit", Logger{Level: "warn"}, zerolog.WarnLevel},
		{"verbose", Logger{Level: "info", Verbose: true}, zerolog.DebugLevel},
		{"verbose keeps trace", Logger{Level: "trace", Verbose: true}, zerolog.TraceLevel},
		{"unknown", Logger{Level: "loud"}, zerolog.InfoLevel},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.opts.SetupWriter(&bytes.Buffer{})
			if got := zerolog.GlobalLevel(); got != tc.want {
				t.Errorf("level = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSetupWriterJSON(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	Logger{Level: "info", JSON: true}.SetupWriter(&buf)
	log.Info().Str("input", "TG 51411 13180").Msg("converted")
	log.Debug().Msg("hidden")

	out := buf.String()
	if !strings.Contains(out, `"input":"TG 51411 13180"`) || !strings.Contains(out, `"message":"converted"`) {
		t.Errorf("unexpected output %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message written at info level: %q", out)
	}
}
