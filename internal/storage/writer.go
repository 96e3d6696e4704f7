package storage

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/iwantsomememories/kvs/internal/compaction"
	"github.com/iwantsomememories/kvs/internal/index"
	"github.com/iwantsomememories/kvs/internal/record"
	"github.com/iwantsomememories/kvs/internal/segment"
	"github.com/iwantsomememories/kvs/pkg/errors"
	"go.uber.org/zap"
)

// writer is the single serialized point of mutation for a store: every
// Set/Remove is appended to the current generation's file under mu, which
// also guards the decision to compact. It keeps a private reader for the
// random-access reads compaction needs to copy old records forward, kept
// separate from every client-facing reader so compaction never contends
// with ordinary Get calls for a cache slot.
type writer struct {
	mu        sync.Mutex
	dir       string
	log       *zap.SugaredLogger
	threshold int64
	idx       *index.Index
	safePoint *atomic.Uint64
	compactRd *reader

	currentGen uint64
	file       *os.File
	offset     int64
	deadBytes  int64
}

func openWriter(dir string, gen uint64, offset int64, threshold int64, idx *index.Index, safePoint *atomic.Uint64, log *zap.SugaredLogger) (*writer, error) {
	f, err := openAppend(segment.Path(dir, gen))
	if err != nil {
		return nil, err
	}
	return &writer{
		dir:        dir,
		log:        log,
		threshold:  threshold,
		idx:        idx,
		safePoint:  safePoint,
		compactRd:  newReader(dir, safePoint),
		currentGen: gen,
		file:       f,
		offset:     offset,
	}, nil
}

func openAppend(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.ClassifyFileOpenError(err, path)
	}
	return f, nil
}

// Set appends a Set record, updates the index, and accounts for any
// overwritten pointer as dead space before checking the compaction
// threshold.
func (w *writer) Set(key, value string) error {
	rec, err := record.NewSet(key, value)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	p, err := w.appendLocked(rec)
	if err != nil {
		return err
	}

	if old, ok := w.idx.Get(key); ok {
		w.deadBytes += old.Length
	}
	w.idx.Set(key, p)

	return w.maybeCompactLocked()
}

// Remove appends a Remove record and deletes key from the index. It
// returns a key-not-found IndexError if key isn't currently live.
func (w *writer) Remove(key string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	old, ok := w.idx.Get(key)
	if !ok {
		return errors.NewKeyNotFoundError(key)
	}

	rec, err := record.NewRemove(key)
	if err != nil {
		return err
	}

	p, err := w.appendLocked(rec)
	if err != nil {
		return err
	}

	w.deadBytes += old.Length + p.Length
	w.idx.Delete(key)

	return w.maybeCompactLocked()
}

// appendLocked writes rec to the current generation's file and returns its
// pointer. Callers must hold mu.
func (w *writer) appendLocked(rec record.Record) (index.Pointer, error) {
	data, err := record.Encode(rec)
	if err != nil {
		return index.Pointer{}, err
	}

	n, err := w.file.Write(data)
	if err != nil {
		return index.Pointer{}, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to append record").
			WithGeneration(w.currentGen).WithOffset(w.offset)
	}

	p := index.Pointer{Generation: w.currentGen, Offset: w.offset, Length: int64(n)}
	w.offset += int64(n)
	return p, nil
}

// AppendTo implements compaction.Appender: it writes pre-encoded bytes into
// an arbitrary generation's file (used for the compaction-target
// generation, distinct from the generation currently being written to).
func (w *writer) AppendTo(gen uint64, data []byte) (int64, error) {
	f, err := openAppend(segment.Path(w.dir, gen))
	if err != nil {
		return 0, err
	}
	defer f.Close()

	offset, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to seek compaction target").WithGeneration(gen)
	}

	if _, err := f.Write(data); err != nil {
		return 0, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to write compacted record").WithGeneration(gen)
	}

	return offset, nil
}

// ReadAt implements compaction.Reader using the writer's private reader.
func (w *writer) ReadAt(gen uint64, offset, length int64) ([]byte, error) {
	return w.compactRd.ReadAt(gen, offset, length)
}

// maybeCompactLocked runs a compaction pass if accumulated dead space has
// crossed the threshold. Callers must hold mu.
func (w *writer) maybeCompactLocked() error {
	if w.deadBytes < w.threshold {
		return nil
	}

	w.log.Infow("compaction threshold reached", "deadBytes", w.deadBytes, "threshold", w.threshold, "currentGen", w.currentGen)

	compactionGen, newGen, err := compaction.Run(w.idx, w, w, w.currentGen)
	if err != nil {
		return err
	}

	staleGens, err := segment.List(w.dir)
	if err != nil {
		return err
	}

	if err := w.file.Close(); err != nil {
		return errors.ClassifySyncError(err, segment.Path(w.dir, w.currentGen), w.currentGen, w.offset)
	}

	newFile, err := openAppend(segment.Path(w.dir, newGen))
	if err != nil {
		return err
	}

	w.file = newFile
	w.currentGen = newGen
	w.offset = 0
	w.deadBytes = 0

	// Publish the safe point before deleting: a reader observing the new
	// safe point knows generations below it hold no live data, but may
	// still be mid-read against an already-unlinked file, which POSIX
	// permits.
	w.safePoint.Store(compactionGen)

	for _, gen := range staleGens {
		if gen >= compactionGen {
			continue
		}
		if err := os.Remove(segment.Path(w.dir, gen)); err != nil && !os.IsNotExist(err) {
			w.log.Warnw("failed to remove stale segment", "generation", gen, "error", err)
		}
	}

	w.compactRd.evictStale()
	w.log.Infow("compaction complete", "compactionGen", compactionGen, "newGen", newGen, "removed", len(staleGens)-1)

	return nil
}

func (w *writer) close() error {
	w.compactRd.close()
	return w.file.Close()
}
