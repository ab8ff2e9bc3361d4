// Energy counter collector: the "Total kW-h:" line of the status dump.
package collector

import (
	"regexp"

	"github.com/stormshift/baytech-mmp-13de-pdu-monitoring/internal/models"
)

// KeyTotalKWh is the measurement key for the energy counter.
const KeyTotalKWh = "total_kwh"

var kwhRe = regexp.MustCompile(`(?m)^Total kW-h:\s*(\S+)`)

// KWhCollector reports the cumulative energy counter verbatim.
type KWhCollector struct{}

// NewKWhCollector creates a new energy counter collector.
func NewKWhCollector() *KWhCollector {
	return &KWhCollector{}
}

// Name returns the collector identifier.
func (c *KWhCollector) Name() string { return "kwh" }

// Handles returns true for KWH only.
func (c *KWhCollector) Handles(cat models.Category) bool { return cat == models.CategoryKWh }

// Collect emits total_kwh from the first matching line.
func (c *KWhCollector) Collect(text string, _ models.Category) Result {
	m := kwhRe.FindStringSubmatch(text)
	if m == nil {
		return Result{}
	}
	return Result{
		Measurements: []models.Measurement{{Key: KeyTotalKWh, Value: m[1]}},
	}
}
