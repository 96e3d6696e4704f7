// Package engine provides the storage-engine contract the server and the
// embedded kvs facade dispatch against: Get, Set, Remove, Clone, Close, with
// New opening the log-structured implementation. It coordinates the index and storage subsystems behind that
// contract; compaction runs transparently underneath Set/Remove.
package engine

import (
	"errors"
	"sync/atomic"

	"github.com/iwantsomememories/kvs/internal/storage"
	"github.com/iwantsomememories/kvs/pkg/options"
	"go.uber.org/zap"
)

// ErrEngineClosed is returned when attempting to perform operations on a closed engine.
var ErrEngineClosed = errors.New("operation failed: cannot access closed engine")

// Engine is a key/value store interface a server can dispatch against
// without knowing the concrete backend — the boundary the original
// project's alternative sled-backed engine would also have satisfied, kept
// here as a clean seam even though that backend is out of scope.
type Engine interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
	Clone() Engine
	Close() error
}

// KVEngine is the log-structured Engine implementation: every handle
// shares one index and writer with every other clone, but keeps its own
// reader cache.
type KVEngine struct {
	options *options.Options
	log     *zap.SugaredLogger
	closed  atomic.Bool
	storage *storage.Storage
}

// Config holds the parameters needed to open a KVEngine.
type Config struct {
	Options *options.Options
	Logger  *zap.SugaredLogger
}

// New opens a KVEngine rooted at config.Options.DataDir.
func New(config *Config) (*KVEngine, error) {
	st, err := storage.New(&storage.Config{Options: config.Options, Logger: config.Logger})
	if err != nil {
		return nil, err
	}

	return &KVEngine{options: config.Options, log: config.Logger, storage: st}, nil
}

// Get returns the current value for key, or (\"\", false, nil) if it isn't live.
func (e *KVEngine) Get(key string) (string, bool, error) {
	if e.closed.Load() {
		return "", false, ErrEngineClosed
	}
	return e.storage.Get(key)
}

// Set stores key/value durably, superseding any prior value for key.
func (e *KVEngine) Set(key, value string) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}
	return e.storage.Set(key, value)
}

// Remove deletes key, returning a key-not-found error if it isn't live.
func (e *KVEngine) Remove(key string) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}
	return e.storage.Remove(key)
}

// Clone returns a new handle sharing the underlying index and writer but
// with an independent reader cache, suitable for handing to a worker-pool
// goroutine that will serve requests concurrently with every other clone.
func (e *KVEngine) Clone() Engine {
	return &KVEngine{options: e.options, log: e.log, storage: e.storage.Clone()}
}

// Close releases this handle's resources. Closing the handle returned by
// New also closes the shared writer and index once every other clone has
// released its own reader.
func (e *KVEngine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrEngineClosed
	}
	return e.storage.Close()
}

var _ Engine = (*KVEngine)(nil)
