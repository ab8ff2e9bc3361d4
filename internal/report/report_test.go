package report

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	probeerrors "github.com/stormshift/baytech-mmp-13de-pdu-monitoring/internal/errors"
	"github.com/stormshift/baytech-mmp-13de-pdu-monitoring/internal/models"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		ext  models.Extraction
		want string
	}{
		{
			name: "empty",
			ext:  models.Extraction{},
			want: "OK - rack1 | ",
		},
		{
			name: "measurements only",
			ext: models.Extraction{Measurements: []models.Measurement{
				{Key: "total_kwh", Value: "1234.5"},
			}},
			want: "OK - rack1 | total_kwh=1234.5;;",
		},
		{
			name: "fragments and measurements",
			ext: models.Extraction{
				Measurements: []models.Measurement{
					{Key: "circuit_m1_voltage", Value: "120.5"},
					{Key: "circuit_m2_voltage", Value: "121.0"},
				},
				Fragments: []string{"m1: 120.5 Volt", "m2: 121.0 Volt"},
			},
			want: "OK - rack1 m1: 120.5 Volt m2: 121.0 Volt | circuit_m1_voltage=120.5;; circuit_m2_voltage=121.0;;",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(Build("rack1", tt.ext)))
		})
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	code := Write(&buf, Build("rack1", models.Extraction{}))
	assert.Equal(t, 0, code)
	assert.Equal(t, "OK - rack1 | \n", buf.String())
}

func TestWriteFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"input", probeerrors.New(probeerrors.KindInput, "Cannot read file: /a.b"), "FAILED - Cannot read file: /a.b\n"},
		{"stale", probeerrors.New(probeerrors.KindStale, "File is stale (900 seconds old)"), "FAILED - File is stale (900 seconds old)\n"},
		{"plain", stderrors.New("boom"), "FAILED - boom\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.Equal(t, 3, WriteFailure(&buf, tt.err))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}
