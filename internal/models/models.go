// Package models defines the data structures shared by the probe pipeline:
// measurement categories, extracted measurements and the final report.
package models

import (
	"fmt"
	"strings"
	"time"
)

// Category selects which extraction rules run for an invocation.
type Category string

const (
	CategoryAmps    Category = "AMPS"
	CategoryKWh     Category = "KWH"
	CategoryTemp    Category = "TEMP"
	CategoryVoltage Category = "VOLTAGE"
	CategoryWattage Category = "WATTAGE"
)

// DefaultCategory is used when no category argument is supplied.
const DefaultCategory = CategoryAmps

// Categories lists every supported category in display order.
var Categories = []Category{
	CategoryAmps,
	CategoryKWh,
	CategoryTemp,
	CategoryVoltage,
	CategoryWattage,
}

// String returns the category name.
func (c Category) String() string { return string(c) }

// ParseCategory parses a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	upper := Category(strings.ToUpper(strings.TrimSpace(s)))
	for _, c := range Categories {
		if c == upper {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q (expected one of %s)", s, CategoryList())
}

// CategoryList returns the supported categories joined with "|".
func CategoryList() string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return strings.Join(names, "|")
}

// Snapshot is the raw text of one device status dump.
type Snapshot struct {
	Path    string
	Text    string
	ModTime time.Time
}

// Measurement is a single labeled datum. Value is kept as the verbatim
// token from the snapshot so it is never re-serialized.
type Measurement struct {
	Key   string
	Value string
}

// PerfData renders the measurement as key=value;; (no warning or
// critical thresholds).
func (m Measurement) PerfData() string {
	return m.Key + "=" + m.Value + ";;"
}

// Status is the monitoring-plugin exit status.
type Status int

const (
	StatusOK       Status = 0
	StatusWarning  Status = 1
	StatusCritical Status = 2
	StatusUnknown  Status = 3
)

// String returns the label used in the plugin status line.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusWarning:
		return "WARNING"
	case StatusCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ExitCode returns the process exit code for the status.
func (s Status) ExitCode() int { return int(s) }

// Extraction is the output of running the rules for one category over
// a snapshot: measurements and status fragments, both in rule order.
type Extraction struct {
	Measurements []Measurement
	Fragments    []string
}

// Report is the final, printable result of an invocation.
type Report struct {
	Device       string
	Status       Status
	Fragments    []string
	Measurements []Measurement
}
