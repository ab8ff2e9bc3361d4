// Circuit group collector: the six-column
// "| Circuit Mn | x Amps | y Amps | v Volts | w Watts | va VA |" rows.
package collector

import (
	"regexp"
	"strings"

	"github.com/stormshift/baytech-mmp-13de-pdu-monitoring/internal/models"
)

var circuitRe = regexp.MustCompile(
	`\|\s*Circuit\s+(M[0-9]+)\s*\|\s*([0-9.]+)\s*Amps\s*\|\s*([0-9.]+)\s*Amps\s*\|` +
		`\s*([0-9.]+)\s*Volts\s*\|\s*([0-9]+)\s*Watts\s*\|\s*([0-9]+)\s*VA\s*\|`)

// CircuitGroupRow is one row of the circuit-group table.
type CircuitGroupRow struct {
	Group   string // lower-cased, e.g. "m1"
	TrueRMS string
	PeakRMS string
	Volts   string
	Watts   string
	VA      string // parsed, not reported
}

// CircuitCollector reports per-group current, voltage or wattage.
type CircuitCollector struct{}

// NewCircuitCollector creates a new circuit group collector.
func NewCircuitCollector() *CircuitCollector {
	return &CircuitCollector{}
}

// Name returns the collector identifier.
func (c *CircuitCollector) Name() string { return "circuit" }

// Handles returns true for AMPS, VOLTAGE and WATTAGE.
func (c *CircuitCollector) Handles(cat models.Category) bool {
	switch cat {
	case models.CategoryAmps, models.CategoryVoltage, models.CategoryWattage:
		return true
	default:
		return false
	}
}

// Collect emits the columns of each circuit-group row selected by cat.
func (c *CircuitCollector) Collect(text string, cat models.Category) Result {
	var res Result
	for _, row := range ParseCircuitRows(text) {
		prefix := "circuit_" + row.Group
		switch cat {
		case models.CategoryAmps:
			res.Measurements = append(res.Measurements,
				models.Measurement{Key: prefix + "_true_rms_current", Value: row.TrueRMS},
				models.Measurement{Key: prefix + "_peak_rms_current", Value: row.PeakRMS},
			)
		case models.CategoryVoltage:
			res.Measurements = append(res.Measurements, models.Measurement{Key: prefix + "_voltage", Value: row.Volts})
			res.Fragments = append(res.Fragments, row.Group+": "+row.Volts+" Volt")
		case models.CategoryWattage:
			res.Measurements = append(res.Measurements, models.Measurement{Key: prefix + "_wattage", Value: row.Watts})
			res.Fragments = append(res.Fragments, row.Group+": "+row.Watts+" Watt")
		}
	}
	return res
}

// ParseCircuitRows returns every circuit-group row in document order.
func ParseCircuitRows(text string) []CircuitGroupRow {
	var rows []CircuitGroupRow
	for _, m := range circuitRe.FindAllStringSubmatch(text, -1) {
		rows = append(rows, CircuitGroupRow{
			Group:   strings.ToLower(m[1]),
			TrueRMS: m[2],
			PeakRMS: m[3],
			Volts:   m[4],
			Watts:   m[5],
			VA:      m[6],
		})
	}
	return rows
}
