package index

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Pointer is the minimum metadata needed to locate a record on disk: which
// generation's segment file it lives in, the byte offset the record starts
// at, and its encoded length.
type Pointer struct {
	Generation uint64
	Offset     int64
	Length     int64
}

// Index is the in-memory hash table mapping live keys to their most recent
// on-disk location. It is the Bitcask "KeyDir": every key in the store has
// exactly one entry here, kept current by every Set/Remove and rewritten
// wholesale by compaction.
type Index struct {
	log     *zap.SugaredLogger
	mu      sync.RWMutex
	entries map[string]Pointer
	closed  atomic.Bool
}

// Config holds the parameters needed to construct an Index.
type Config struct {
	Logger *zap.SugaredLogger
}
