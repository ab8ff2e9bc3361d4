// Package main is the entry point for check_pdu, a monitoring plugin that
// reports BayTech PDU measurements from the poller's status snapshots.
//
//	check_pdu [flags] <base-path> <device-name> [AMPS|KWH|TEMP|VOLTAGE|WATTAGE]
//
// The snapshot is read from <base-path>.<device-name>. Stdout carries the
// plugin output; the exit code is 0 (OK) or 3 (UNKNOWN).
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/stormshift/baytech-mmp-13de-pdu-monitoring/internal/collector"
	"github.com/stormshift/baytech-mmp-13de-pdu-monitoring/internal/config"
	probeerrors "github.com/stormshift/baytech-mmp-13de-pdu-monitoring/internal/errors"
	"github.com/stormshift/baytech-mmp-13de-pdu-monitoring/internal/models"
	"github.com/stormshift/baytech-mmp-13de-pdu-monitoring/internal/platform"
	"github.com/stormshift/baytech-mmp-13de-pdu-monitoring/internal/probe"
	"github.com/stormshift/baytech-mmp-13de-pdu-monitoring/internal/report"
	"github.com/stormshift/baytech-mmp-13de-pdu-monitoring/internal/snapshot"
)

const name = "check_pdu"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout))
}

// run executes the plugin and returns the process exit code. Everything,
// including failures, is written to stdout as a single line.
func run(ctx context.Context, args []string, stdout io.Writer) int {
	code := models.StatusUnknown.ExitCode()
	var positionals []string
	cmd := newCommand(stdout, &code, &positionals)
	if len(args) > 0 {
		var flags []string
		flags, positionals = splitArgs(args[1:], valueFlagNames(cmd.Flags))
		args = append([]string{args[0]}, flags...)
	}
	if err := cmd.Run(ctx, args); err != nil {
		return report.WriteFailure(stdout, err)
	}
	return code
}

func usageMessage() string {
	return "Usage: " + name + " <base-path> <device-name> [" + models.CategoryList() + "]"
}

// splitArgs separates flag tokens from positional arguments. The cli parser
// drops positionals from the first empty one onward, so positionals never
// reach it; empty values are kept in place.
func splitArgs(args []string, valueFlags map[string]bool) (flags, positionals []string) {
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			return flags, append(positionals, args[i+1:]...)
		case len(a) > 1 && strings.HasPrefix(a, "-"):
			flags = append(flags, a)
			flagName := strings.TrimLeft(a, "-")
			if strings.Contains(flagName, "=") {
				continue
			}
			if valueFlags[flagName] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		default:
			positionals = append(positionals, a)
		}
	}
	return flags, positionals
}

// valueFlagNames returns the names of flags that consume the next token.
func valueFlagNames(flags []cli.Flag) map[string]bool {
	names := make(map[string]bool)
	for _, f := range flags {
		if _, ok := f.(*cli.BoolFlag); ok {
			continue
		}
		for _, n := range f.Names() {
			names[n] = true
		}
	}
	return names
}

func newCommand(stdout io.Writer, code *int, positionals *[]string) *cli.Command {
	return &cli.Command{
		Name:            name,
		Usage:           "Report BayTech PDU measurements from a poller snapshot",
		ArgsUsage:       "<base-path> <device-name> [" + models.CategoryList() + "]",
		Version:         version,
		Writer:          stdout,
		ErrWriter:       io.Discard,
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "config file (default: ~/.check_pdu/config.yaml or /etc/check_pdu/config.yaml)",
				Sources: cli.EnvVars("PDU_PROBE_CONFIG"),
			},
			&cli.DurationFlag{
				Name:  "max-age",
				Usage: "maximum snapshot age before it is considered stale",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "JSON log file; logging is disabled when unset",
			},
			&cli.StringFlag{
				Name:  "write-config",
				Usage: "write the effective configuration to `FILE` and exit",
			},
		},
		OnUsageError: func(_ context.Context, _ *cli.Command, err error, _ bool) error {
			return probeerrors.Wrap(probeerrors.KindUsage, usageMessage(), err)
		},
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if path := cmd.String("write-config"); path != "" {
				return writeConfig(cmd, stdout, path, code)
			}

			args := *positionals
			if len(args) < 2 {
				return probeerrors.New(probeerrors.KindUsage, usageMessage())
			}
			base, device := args[0], args[1]

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			cat := cfg.Category()
			if len(args) > 2 {
				cat, err = models.ParseCategory(args[2])
				if err != nil {
					return probeerrors.Wrap(probeerrors.KindUsage, usageMessage(), err)
				}
			}

			logger := initLogger(cfg)
			defer logger.Sync()
			logger = withHostContext(ctx, logger)

			plat := platform.New()
			registry := collector.NewDefaultRegistry(logger)
			logger.Debug("Starting probe",
				zap.String("version", version),
				zap.String("platform", plat.Name()),
				zap.Strings("collectors", collectorNames(registry)),
				zap.String("base", base),
				zap.String("device", device),
				zap.String("category", cat.String()))

			resolver := snapshot.NewResolver(plat, cfg.Probe.MaxAge.Duration,
				snapshot.WithStdinPath(cfg.Probe.StdinPath),
				snapshot.WithLogger(logger))
			p := probe.New(resolver, registry, logger)

			rep, err := p.Run(probe.Request{Base: base, Device: device, Category: cat})
			if err != nil {
				logger.Warn("Probe failed",
					zap.String("kind", string(probeerrors.KindOf(err))),
					zap.Error(err))
				return err
			}

			*code = report.Write(stdout, rep)
			return nil
		},
	}
}

// writeConfig stores the effective layered configuration at path.
func writeConfig(cmd *cli.Command, stdout io.Writer, path string, code *int) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.WriteConfig(cfg, path); err != nil {
		return probeerrors.Wrap(probeerrors.KindIO, "Cannot write configuration "+path, err)
	}
	fmt.Fprintf(stdout, "Configuration written to %s\n", path)
	*code = models.StatusOK.ExitCode()
	return nil
}

func collectorNames(r *collector.Registry) []string {
	var names []string
	for _, c := range r.Collectors() {
		names = append(names, c.Name())
	}
	return names
}

// loadConfig layers flags over env, config file, embedded defaults.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	overrides := config.CLIOverrides{
		MaxAge:   cmd.Duration("max-age"),
		LogLevel: cmd.String("log-level"),
		LogFile:  cmd.String("log-file"),
	}

	var (
		cfg *config.Config
		err error
	)
	if cmd.IsSet("config") {
		cfg, err = config.LoadLayered(overrides, embeddedConfig, cmd.String("config"))
	} else {
		cfg, err = config.LoadLayered(overrides, embeddedConfig)
	}
	if err != nil {
		return nil, probeerrors.Wrap(probeerrors.KindConfig, "Invalid configuration: "+err.Error(), err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, probeerrors.Wrap(probeerrors.KindConfig, "Invalid configuration: "+err.Error(), err)
	}
	return cfg, nil
}

// initLogger creates a zap logger writing structured JSON to the configured
// log file. Without a file the logger is a no-op: stdout and stderr belong
// to the monitoring supervisor.
func initLogger(cfg *config.Config) *zap.Logger {
	if cfg.Logging.File == "" {
		return zap.NewNop()
	}

	var level zapcore.Level
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	file, err := os.OpenFile(cfg.Logging.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
	if err != nil {
		return zap.NewNop()
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(file),
		level,
	)
	return zap.New(core).Named(name)
}

// withHostContext tags log entries with the probing host. Skipped when
// logging is disabled.
func withHostContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	if !logger.Core().Enabled(zapcore.ErrorLevel) {
		return logger
	}
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		logger.Debug("Host info not available", zap.Error(err))
		return logger
	}
	return logger.With(
		zap.String("host", info.Hostname),
		zap.String("os", info.Platform))
}
