// Package options provides functional-options configuration for the engine,
// the worker pool, and the network front ends.
package options

import (
	"net"
	"strings"

	"github.com/iwantsomememories/kvs/pkg/errors"
)

// Options holds every tunable parameter for an engine instance and the
// server that may front it.
type Options struct {
	// DataDir is the directory holding this engine's segment files and its
	// .engine marker.
	DataDir string `json:"dataDir"`

	// CompactionThreshold is the number of dead (overwritten/removed) bytes
	// accumulated across segments that triggers a compaction pass.
	CompactionThreshold int64 `json:"compactionThreshold"`

	// WorkerCount is the number of goroutines in the server's worker pool.
	WorkerCount int `json:"workerCount"`

	// ListenAddr is the TCP address the server binds to.
	ListenAddr string `json:"listenAddr"`
}

// OptionFunc mutates an Options value during construction.
type OptionFunc func(*Options)

// WithDefaultOptions resets every field to its default value.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		*o = NewDefaultOptions()
	}
}

// WithDataDir sets the directory the engine stores its segment files in.
func WithDataDir(directory string) OptionFunc {
	return func(o *Options) {
		directory = strings.TrimSpace(directory)
		if directory != "" {
			o.DataDir = directory
		}
	}
}

// WithCompactionThreshold sets the dead-byte threshold that triggers compaction.
func WithCompactionThreshold(bytes int64) OptionFunc {
	return func(o *Options) {
		if bytes > 0 {
			o.CompactionThreshold = bytes
		}
	}
}

// WithWorkerCount sets the number of goroutines in the server's worker pool.
func WithWorkerCount(n int) OptionFunc {
	return func(o *Options) {
		if n > 0 {
			o.WorkerCount = n
		}
	}
}

// WithListenAddr sets the TCP address the server binds to.
func WithListenAddr(addr string) OptionFunc {
	return func(o *Options) {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			o.ListenAddr = addr
		}
	}
}

// Validate checks every field for a usable value, returning the first
// violation it finds. It is the gate every caller assembling Options
// through means other than the With* constructors (direct struct literals,
// deserialized config) must pass before opening an engine.
func (o Options) Validate() error {
	if o.DataDir == "" {
		return errors.NewRequiredFieldError("DataDir")
	}

	if o.CompactionThreshold <= 0 {
		return errors.NewFieldRangeError("CompactionThreshold", o.CompactionThreshold, 1, nil)
	}

	if o.WorkerCount <= 0 {
		return errors.NewFieldRangeError("WorkerCount", o.WorkerCount, 1, nil)
	}

	if o.ListenAddr == "" {
		return errors.NewRequiredFieldError("ListenAddr")
	}
	if _, _, err := net.SplitHostPort(o.ListenAddr); err != nil {
		return errors.NewFieldFormatError("ListenAddr", o.ListenAddr, "host:port")
	}

	return nil
}
