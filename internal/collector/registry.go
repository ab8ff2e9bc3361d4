// Package collector provides a registry for managing extraction rules.
// Collectors are registered in a fixed order; the registry runs them
// sequentially and folds breaker rows into the calculated totals.
package collector

import (
	"go.uber.org/zap"

	"github.com/stormshift/baytech-mmp-13de-pdu-monitoring/internal/models"
)

// Registry manages all registered collectors.
type Registry struct {
	collectors []Collector
	logger     *zap.Logger
}

// NewRegistry creates a new collector registry with the given logger.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		collectors: make([]Collector, 0),
		logger:     logger,
	}
}

// NewDefaultRegistry returns a registry holding the built-in rules in
// their canonical order: KWH, temperature, breaker, circuit group.
func NewDefaultRegistry(logger *zap.Logger) *Registry {
	r := NewRegistry(logger)
	r.Register(NewKWhCollector())
	r.Register(NewTemperatureCollector(logger))
	r.Register(NewBreakerCollector(logger))
	r.Register(NewCircuitCollector())
	return r
}

// Register appends a collector. Registration order is extraction order.
func (r *Registry) Register(c Collector) {
	r.collectors = append(r.collectors, c)
	r.logger.Debug("Registered collector", zap.String("name", c.Name()))
}

// CollectAll runs every collector that handles cat over the snapshot text
// and returns the measurements and status fragments in rule order. For
// AMPS the calculated breaker totals are appended last. Keys are unique;
// when a key repeats, the first occurrence wins.
func (r *Registry) CollectAll(snap models.Snapshot, cat models.Category) models.Extraction {
	var out models.Extraction
	seen := make(map[string]bool)
	var breakers []BreakerRow

	add := func(ms []models.Measurement) {
		for _, m := range ms {
			if seen[m.Key] {
				r.logger.Debug("Duplicate measurement dropped",
					zap.String("key", m.Key),
					zap.String("value", m.Value))
				continue
			}
			seen[m.Key] = true
			out.Measurements = append(out.Measurements, m)
		}
	}

	for _, c := range r.collectors {
		if !c.Handles(cat) {
			continue
		}
		res := c.Collect(snap.Text, cat)
		r.logger.Debug("Collector finished",
			zap.String("collector", c.Name()),
			zap.Int("measurements", len(res.Measurements)))
		add(res.Measurements)
		out.Fragments = append(out.Fragments, res.Fragments...)
		breakers = append(breakers, res.Breakers...)
	}

	if cat == models.CategoryAmps && len(breakers) > 0 {
		total := Aggregate(uniqueBreakers(breakers))
		r.logger.Debug("Calculated breaker totals",
			zap.Int("rows", total.Rows),
			zap.String("true_rms_sum", total.TrueRMS.String()),
			zap.String("peak_rms_sum", total.Peak.String()))
		add(total.Measurements())
		out.Fragments = append(out.Fragments, total.Fragment())
	}

	return out
}

// Collectors returns a copy of all registered collectors.
func (r *Registry) Collectors() []Collector {
	result := make([]Collector, len(r.collectors))
	copy(result, r.collectors)
	return result
}

// uniqueBreakers keeps the first row per name, matching the key policy.
func uniqueBreakers(rows []BreakerRow) []BreakerRow {
	seen := make(map[string]bool, len(rows))
	out := make([]BreakerRow, 0, len(rows))
	for _, row := range rows {
		if seen[row.Name] {
			continue
		}
		seen[row.Name] = true
		out = append(out, row)
	}
	return out
}
