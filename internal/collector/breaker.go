// Circuit breaker collector: the three-column "| name | x Amps | y Amps |"
// rows. Only the input feed and numbered breakers are accepted; any other
// row with the same shape belongs to another table section (notably the
// circuit-group table, whose "Circuit Mn" names fail the filter).
package collector

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/stormshift/baytech-mmp-13de-pdu-monitoring/internal/models"
)

// InputBreaker is the normalized name of the input feed row, which is
// reported but excluded from the calculated totals.
const InputBreaker = "input_a"

var (
	breakerRe     = regexp.MustCompile(`\|\s*([^|]+)\s*\|\s*([0-9.]+)\s*Amps\s*\|\s*([0-9.]+)\s*Amps\s*\|`)
	breakerNameRe = regexp.MustCompile(`(?i)^(input_a|ckt[0-9]+)$`)
)

// BreakerRow is one accepted row of the breaker table. Values are the
// verbatim tokens from the snapshot.
type BreakerRow struct {
	Name    string
	TrueRMS string
	PeakRMS string
}

// BreakerCollector reports per-breaker true and peak RMS current.
type BreakerCollector struct {
	logger *zap.Logger
}

// NewBreakerCollector creates a new breaker collector.
func NewBreakerCollector(logger *zap.Logger) *BreakerCollector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BreakerCollector{logger: logger}
}

// Name returns the collector identifier.
func (c *BreakerCollector) Name() string { return "breaker" }

// Handles returns true for AMPS only.
func (c *BreakerCollector) Handles(cat models.Category) bool { return cat == models.CategoryAmps }

// Collect scans every breaker-shaped row and emits
// <name>_true_rms_current and <name>_peak_rms_current for accepted names.
func (c *BreakerCollector) Collect(text string, _ models.Category) Result {
	var res Result
	for _, row := range ParseBreakerRows(text, c.logger) {
		res.Breakers = append(res.Breakers, row)
		res.Measurements = append(res.Measurements,
			models.Measurement{Key: row.Name + "_true_rms_current", Value: row.TrueRMS},
			models.Measurement{Key: row.Name + "_peak_rms_current", Value: row.PeakRMS},
		)
	}
	return res
}

// ParseBreakerRows returns the accepted breaker rows in document order.
func ParseBreakerRows(text string, logger *zap.Logger) []BreakerRow {
	if logger == nil {
		logger = zap.NewNop()
	}
	var rows []BreakerRow
	for _, m := range breakerRe.FindAllStringSubmatch(text, -1) {
		name := NormalizeBreakerName(m[1])
		if !breakerNameRe.MatchString(name) {
			logger.Debug("Breaker row rejected", zap.String("name", name))
			continue
		}
		rows = append(rows, BreakerRow{Name: name, TrueRMS: m[2], PeakRMS: m[3]})
	}
	return rows
}

// NormalizeBreakerName trims the raw name, replaces each space with an
// underscore and lower-cases it: " Input A " becomes "input_a".
func NormalizeBreakerName(raw string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), " ", "_"))
}
