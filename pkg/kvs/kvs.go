// Package kvs is the public, in-process library surface over the engine:
// the half of the original command-line project that operated directly on
// a data directory with no network involved, given its own home here
// rather than folded into the engine package.
package kvs

import (
	"github.com/iwantsomememories/kvs/internal/engine"
	"github.com/iwantsomememories/kvs/pkg/logger"
	"github.com/iwantsomememories/kvs/pkg/options"
)

// Store is an embedded, in-process handle onto a key/value store.
type Store struct {
	engine *engine.KVEngine
}

// Open creates and initializes a Store rooted at the configured data
// directory, logging under the given service name.
func Open(service string, opts ...options.OptionFunc) (*Store, error) {
	log := logger.New(service)

	defaultOpts := options.NewDefaultOptions()
	for _, opt := range opts {
		opt(&defaultOpts)
	}

	eng, err := engine.New(&engine.Config{Logger: log, Options: &defaultOpts})
	if err != nil {
		return nil, err
	}

	return &Store{engine: eng}, nil
}

// Set stores key/value durably, superseding any prior value for key.
func (s *Store) Set(key, value string) error {
	return s.engine.Set(key, value)
}

// Get retrieves the value for key, reporting false if it isn't live.
func (s *Store) Get(key string) (string, bool, error) {
	return s.engine.Get(key)
}

// Remove deletes key, returning a key-not-found error if it isn't live.
func (s *Store) Remove(key string) error {
	return s.engine.Remove(key)
}

// Close releases the store's resources.
func (s *Store) Close() error {
	return s.engine.Close()
}
