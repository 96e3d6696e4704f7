// Package logger constructs the zap-backed sugared loggers threaded through
// every subsystem's Config struct in this repository.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a production-configured sugared logger scoped to service, a
// short name identifying the subsystem or binary emitting log lines (e.g.
// "engine", "kvs-server").
func New(service string) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	base, err := cfg.Build()
	if err != nil {
		// zap.NewProductionConfig().Build() only fails on a broken sink/encoder
		// registration; fall back to a logger that still functions rather
		// than letting a logging misconfiguration take down the process.
		base = zap.NewNop()
	}

	return base.Named(service).Sugar()
}

// NewDevelopment returns a human-readable, colorized logger for local runs
// of the CLI binaries.
func NewDevelopment(service string) *zap.SugaredLogger {
	base, err := zap.NewDevelopment()
	if err != nil {
		base = zap.NewNop()
	}
	return base.Named(service).Sugar()
}
