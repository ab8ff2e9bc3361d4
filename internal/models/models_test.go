package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{"AMPS", CategoryAmps, false},
		{"amps", CategoryAmps, false},
		{"KWH", CategoryKWh, false},
		{" temp ", CategoryTemp, false},
		{"Voltage", CategoryVoltage, false},
		{"WATTAGE", CategoryWattage, false},
		{"VA", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "AMPS|KWH|TEMP|VOLTAGE|WATTAGE")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMeasurementPerfData(t *testing.T) {
	m := Measurement{Key: "ckt1_true_rms_current", Value: "4.2"}
	assert.Equal(t, "ckt1_true_rms_current=4.2;;", m.PerfData())
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "OK", StatusOK.String())
	assert.Equal(t, "UNKNOWN", StatusUnknown.String())
	assert.Equal(t, 0, StatusOK.ExitCode())
	assert.Equal(t, 3, StatusUnknown.ExitCode())
	assert.Equal(t, "UNKNOWN", Status(42).String())
}
