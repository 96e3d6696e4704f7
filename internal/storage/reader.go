package storage

import (
	"os"
	"sync"
	"sync/atomic"

	"github.com/iwantsomememories/kvs/internal/segment"
	"github.com/iwantsomememories/kvs/pkg/errors"
)

// reader is a per-handle cache of read-only file descriptors onto segment
// files. Every Storage clone owns one, independent of every other clone's,
// so concurrent readers never contend on a lock. A generation's file may
// be unlinked by compaction while this cache still holds it open — POSIX
// lets the read continue against the now-unlinked inode, so reader never
// needs to coordinate with compaction to stay correct, only to avoid
// leaking descriptors past their usefulness (evictStale).
type reader struct {
	mu        sync.Mutex
	dir       string
	safePoint *atomic.Uint64
	handles   map[uint64]*os.File
}

func newReader(dir string, safePoint *atomic.Uint64) *reader {
	return &reader{dir: dir, safePoint: safePoint, handles: make(map[uint64]*os.File)}
}

// ReadAt returns the length bytes starting at offset within generation
// gen's segment file, opening and caching the file handle if needed.
func (r *reader) ReadAt(gen uint64, offset, length int64) ([]byte, error) {
	f, err := r.handle(gen)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, length)
	if _, err := f.ReadAt(buf, offset); err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to read record").
			WithGeneration(gen).WithOffset(offset)
	}
	return buf, nil
}

func (r *reader) handle(gen uint64) (*os.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.handles[gen]; ok {
		return f, nil
	}

	path := segment.Path(r.dir, gen)
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.ClassifyFileOpenError(err, path)
	}
	r.handles[gen] = f
	return f, nil
}

// evictStale closes and forgets every cached handle for a generation below
// the current safe point. Serving a get opportunistically evicts against the
// current safe point (step 3 of get), and compaction publishing a new safe
// point is the other place generations go stale.
func (r *reader) evictStale() {
	sp := r.safePoint.Load()

	r.mu.Lock()
	defer r.mu.Unlock()
	for gen, f := range r.handles {
		if gen < sp {
			f.Close()
			delete(r.handles, gen)
		}
	}
}

// clone returns a new reader over the same directory and safe point, with
// its own empty handle cache.
func (r *reader) clone() *reader {
	return newReader(r.dir, r.safePoint)
}

func (r *reader) close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for gen, f := range r.handles {
		f.Close()
		delete(r.handles, gen)
	}
	return nil
}
