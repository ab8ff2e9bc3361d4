// Package collector defines the Collector interface and the extraction
// rules that pull measurements out of a BayTech PDU status dump.
package collector

import "github.com/stormshift/baytech-mmp-13de-pdu-monitoring/internal/models"

// Collector is the interface that all extraction rules implement.
// Each collector matches one line or row shape in the snapshot text.
type Collector interface {
	// Name returns the unique identifier for this collector.
	Name() string

	// Handles reports whether the collector runs for the given category.
	Handles(cat models.Category) bool

	// Collect applies the collector to the whole snapshot text.
	// Rows that do not match are skipped, never reported as errors.
	Collect(text string, cat models.Category) Result
}

// Result holds the output of a single collector run.
type Result struct {
	Measurements []models.Measurement
	Fragments    []string
	// Breakers is set only by the breaker collector and feeds the aggregate.
	Breakers []BreakerRow
}
