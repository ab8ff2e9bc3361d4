package collector

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/stormshift/baytech-mmp-13de-pdu-monitoring/internal/models"
)

// Keys of the calculated totals. The true-RMS key carries the peak sum and
// the peak key carries the true-RMS sum; this pairing is part of the
// published perfdata.
const (
	KeyTotalTrueRMS = "cal_total_true_rms_current"
	KeyTotalPeakRMS = "cal_total_peak_rms_current"
)

// AggregateTotal is the sum of true and peak RMS current over the numbered
// breakers. The input feed is excluded.
type AggregateTotal struct {
	Peak    decimal.Decimal
	TrueRMS decimal.Decimal
	Rows    int
}

// Aggregate folds breaker rows into an AggregateTotal. Rows named
// input_a, or whose values are not decimal numbers, do not contribute.
func Aggregate(rows []BreakerRow) AggregateTotal {
	total := AggregateTotal{Peak: decimal.Zero, TrueRMS: decimal.Zero}
	for _, row := range rows {
		if strings.EqualFold(row.Name, InputBreaker) {
			continue
		}
		trueRMS, err := decimal.NewFromString(row.TrueRMS)
		if err != nil {
			continue
		}
		peak, err := decimal.NewFromString(row.PeakRMS)
		if err != nil {
			continue
		}
		total = AggregateTotal{
			Peak:    total.Peak.Add(peak),
			TrueRMS: total.TrueRMS.Add(trueRMS),
			Rows:    total.Rows + 1,
		}
	}
	return total
}

// Measurements returns the two synthetic total measurements.
func (t AggregateTotal) Measurements() []models.Measurement {
	return []models.Measurement{
		{Key: KeyTotalTrueRMS, Value: FormatTotal(t.Peak)},
		{Key: KeyTotalPeakRMS, Value: FormatTotal(t.TrueRMS)},
	}
}

// Fragment returns the human-readable status fragment for the totals.
func (t AggregateTotal) Fragment() string {
	return "Total: " + FormatTotal(t.TrueRMS) + " A true RMS, " + FormatTotal(t.Peak) + " A peak"
}

// FormatTotal renders d with at least one fractional digit ("3.0", "9.35").
func FormatTotal(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		return d.StringFixed(1)
	}
	return s
}
