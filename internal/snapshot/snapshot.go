// Package snapshot resolves and loads the PDU status dump written by the
// poller. The resolver validates the path before anything is read: the
// readability check comes first, then freshness, then the content read.
package snapshot

import (
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	probeerrors "github.com/stormshift/baytech-mmp-13de-pdu-monitoring/internal/errors"
	"github.com/stormshift/baytech-mmp-13de-pdu-monitoring/internal/models"
	"github.com/stormshift/baytech-mmp-13de-pdu-monitoring/internal/platform"
)

// Resolver builds snapshot paths and checks they are readable and fresh.
type Resolver struct {
	platform  platform.Platform
	maxAge    time.Duration
	stdinPath string
	now       func() time.Time
	logger    *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithClock sets the clock used for the freshness check.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		r.now = now
	}
}

// WithStdinPath sets the sentinel path that bypasses the readability check.
func WithStdinPath(path string) Option {
	return func(r *Resolver) {
		r.stdinPath = path
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver creates a Resolver with the given freshness window.
func NewResolver(p platform.Platform, maxAge time.Duration, opts ...Option) *Resolver {
	r := &Resolver{
		platform:  p,
		maxAge:    maxAge,
		stdinPath: "/dev/stdin",
		now:       time.Now,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Path joins the base fragment and the device name with a literal ".".
func Path(base, device string) string {
	return base + "." + device
}

// Resolve returns the validated snapshot path for base and device along
// with its modification time.
func (r *Resolver) Resolve(base, device string) (string, time.Time, error) {
	if device == "" {
		return "", time.Time{}, probeerrors.New(probeerrors.KindUsage, "PDU name is required")
	}

	path := Path(base, device)

	if path != r.stdinPath {
		if err := r.platform.Readable(path); err != nil {
			r.logger.Debug("Snapshot not readable",
				zap.String("path", path),
				zap.Error(err))
			return "", time.Time{}, probeerrors.Wrap(probeerrors.KindInput, "Cannot read file: "+path, err).
				WithContext("path", path)
		}
	}

	mtime, err := r.platform.ModTime(path)
	if err != nil {
		return "", time.Time{}, probeerrors.Wrap(probeerrors.KindInput, "Cannot read file: "+path, err).
			WithContext("path", path)
	}

	age := Age(r.now(), mtime)
	if age >= int64(r.maxAge/time.Second) {
		return "", time.Time{}, probeerrors.Newf(probeerrors.KindStale, "File is stale (%d seconds old)", age).
			WithContext("path", path).
			WithContext("age_seconds", age)
	}

	r.logger.Debug("Snapshot resolved",
		zap.String("path", path),
		zap.Int64("age_seconds", age),
		zap.Duration("max_age", r.maxAge))

	return path, mtime, nil
}

// Age returns now-mtime truncated toward zero to whole seconds.
func Age(now, mtime time.Time) int64 {
	return int64(now.Sub(mtime) / time.Second)
}

// Read loads the whole file at path in one pass. The file handle is closed
// before Read returns on every path.
func Read(path string, mtime time.Time) (snap models.Snapshot, err error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Snapshot{}, probeerrors.Wrap(probeerrors.KindIO, "Error reading file "+path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = probeerrors.Wrap(probeerrors.KindIO, "Error reading file "+path, cerr)
		}
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return models.Snapshot{}, probeerrors.Wrap(probeerrors.KindIO, "Error reading file "+path, err)
	}

	return models.Snapshot{
		Path:    path,
		Text:    string(data),
		ModTime: mtime,
	}, nil
}

// Load resolves and reads the snapshot for base and device.
func (r *Resolver) Load(base, device string) (models.Snapshot, error) {
	path, mtime, err := r.Resolve(base, device)
	if err != nil {
		return models.Snapshot{}, err
	}
	snap, err := Read(path, mtime)
	if err != nil {
		r.logger.Error("Snapshot read failed",
			zap.String("path", path),
			zap.Error(err))
		return models.Snapshot{}, err
	}
	r.logger.Debug("Snapshot loaded",
		zap.String("path", path),
		zap.Int("bytes", len(snap.Text)))
	return snap, nil
}
