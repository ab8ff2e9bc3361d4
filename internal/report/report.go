// Package report renders probe results in the monitoring-plugin format:
// one status line, a "|" separator and space-joined key=value;; perfdata.
package report

import (
	"fmt"
	"io"
	"strings"

	probeerrors "github.com/stormshift/baytech-mmp-13de-pdu-monitoring/internal/errors"
	"github.com/stormshift/baytech-mmp-13de-pdu-monitoring/internal/models"
)

// Build assembles an OK report from an extraction.
func Build(device string, ext models.Extraction) models.Report {
	return models.Report{
		Device:       device,
		Status:       models.StatusOK,
		Fragments:    ext.Fragments,
		Measurements: ext.Measurements,
	}
}

// Format renders the report as a single line:
//
//	OK - <device>[ <fragments>] | <perfdata>
func Format(r models.Report) string {
	var b strings.Builder
	b.WriteString(r.Status.String())
	b.WriteString(" - ")
	b.WriteString(r.Device)
	if len(r.Fragments) > 0 {
		b.WriteString(" ")
		b.WriteString(strings.Join(r.Fragments, " "))
	}
	b.WriteString(" | ")
	for i, m := range r.Measurements {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(m.PerfData())
	}
	return b.String()
}

// FormatFailure renders err as a "FAILED - <cause>" line.
func FormatFailure(err error) string {
	return "FAILED - " + probeerrors.Summary(err)
}

// Write prints the report line to w and returns the exit code.
func Write(w io.Writer, r models.Report) int {
	fmt.Fprintln(w, Format(r))
	return r.Status.ExitCode()
}

// WriteFailure prints the failure line to w and returns the UNKNOWN exit
// code. Every probe failure maps to UNKNOWN; no thresholds are evaluated.
func WriteFailure(w io.Writer, err error) int {
	fmt.Fprintln(w, FormatFailure(err))
	return models.StatusUnknown.ExitCode()
}
