// Package probe wires the pipeline for one invocation: resolve and read
// the snapshot, run the extraction rules for the requested category and
// build the report. No state survives an invocation.
package probe

import (
	"go.uber.org/zap"

	"github.com/stormshift/baytech-mmp-13de-pdu-monitoring/internal/collector"
	"github.com/stormshift/baytech-mmp-13de-pdu-monitoring/internal/models"
	"github.com/stormshift/baytech-mmp-13de-pdu-monitoring/internal/report"
	"github.com/stormshift/baytech-mmp-13de-pdu-monitoring/internal/snapshot"
)

// Request is the parsed invocation: snapshot location and category.
type Request struct {
	Base     string
	Device   string
	Category models.Category
}

// Probe runs requests against snapshots on disk.
type Probe struct {
	resolver *snapshot.Resolver
	registry *collector.Registry
	logger   *zap.Logger
}

// New creates a Probe. A nil logger disables logging.
func New(resolver *snapshot.Resolver, registry *collector.Registry, logger *zap.Logger) *Probe {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Probe{
		resolver: resolver,
		registry: registry,
		logger:   logger,
	}
}

// Run executes one request. Any failure short-circuits before extraction,
// so a partial report is never returned.
func (p *Probe) Run(req Request) (models.Report, error) {
	snap, err := p.resolver.Load(req.Base, req.Device)
	if err != nil {
		return models.Report{}, err
	}

	ext := p.registry.CollectAll(snap, req.Category)

	p.logger.Info("Probe completed",
		zap.String("device", req.Device),
		zap.String("category", req.Category.String()),
		zap.String("path", snap.Path),
		zap.Time("snapshot_mtime", snap.ModTime),
		zap.Int("measurements", len(ext.Measurements)))

	return report.Build(req.Device, ext), nil
}
