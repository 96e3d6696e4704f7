// Package index provides the in-memory key -> record-pointer map a storage
// engine consults before every read and updates on every write. It embodies
// the Bitcask principle of keeping every key, and only the location of its
// value, resident in memory.
package index

import (
	stdErrors "errors"

	"github.com/iwantsomememories/kvs/pkg/errors"
)

var ErrIndexClosed = stdErrors.New("operation failed: cannot access closed index")

// New creates an empty Index ready for concurrent use.
func New(config *Config) (*Index, error) {
	if config == nil || config.Logger == nil {
		return nil, errors.NewValidationError(nil, errors.ErrorCodeInvalidInput, "index configuration is required").
			WithField("config").WithRule("required")
	}
	return &Index{log: config.Logger, entries: make(map[string]Pointer, 2048)}, nil
}

// Get returns the pointer for key and whether it was present.
func (idx *Index) Get(key string) (Pointer, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	p, ok := idx.entries[key]
	return p, ok
}

// Set records (or replaces) key's pointer.
func (idx *Index) Set(key string, p Pointer) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.entries[key] = p
}

// Delete removes key from the index, reporting whether it was present.
func (idx *Index) Delete(key string) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if _, ok := idx.entries[key]; !ok {
		return false
	}
	delete(idx.entries, key)
	return true
}

// Range calls fn for every key/pointer pair. Iteration order is
// unspecified. fn must not call back into the Index — Range holds the read
// lock for its entire duration, used by compaction to snapshot what's live
// before rewriting segments.
func (idx *Index) Range(fn func(key string, p Pointer) bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	for k, p := range idx.entries {
		if !fn(k, p) {
			return
		}
	}
}

// Len returns the number of live keys.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// Close releases the index's memory. The Index must not be used afterward.
func (idx *Index) Close() error {
	if !idx.closed.CompareAndSwap(false, true) {
		return ErrIndexClosed
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	clear(idx.entries)
	idx.entries = nil

	idx.log.Infow("index closed")
	return nil
}
