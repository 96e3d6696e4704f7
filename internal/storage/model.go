package storage

import (
	"sync/atomic"

	"github.com/iwantsomememories/kvs/internal/index"
	"github.com/iwantsomememories/kvs/pkg/options"
	"go.uber.org/zap"
)

// shared is the state every cloned Storage handle holds a reference to: the
// directory, the live index, the single writer, and the safe-point counter
// that gates which generations a reader's file-descriptor cache may still
// trust. Exactly one Storage handle (the one returned by New) owns closing
// the writer and index; every clone only closes its own reader.
type shared struct {
	dir       string
	log       *zap.SugaredLogger
	options   *options.Options
	idx       *index.Index
	writer    *writer
	safePoint *atomic.Uint64
	closed    atomic.Bool
}

// Storage is one handle onto a log-structured key/value store: a shared
// index and writer, plus an independent reader with its own file-descriptor
// cache so concurrent handles never block each other on reads.
type Storage struct {
	shared *shared
	reader *reader
}

// Config holds the parameters needed to open a Storage.
type Config struct {
	Options *options.Options
	Logger  *zap.SugaredLogger
}
