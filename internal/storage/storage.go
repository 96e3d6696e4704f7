// Package storage implements the log-structured persistence layer: an
// append-only sequence of segment files per generation, a single writer
// that serializes mutation and triggers compaction, and independently
// cached readers so concurrent Get calls never block on each other or on
// the writer.
package storage

import (
	stdErrors "errors"
	"io"
	"os"
	"sync/atomic"

	"github.com/iwantsomememories/kvs/internal/index"
	"github.com/iwantsomememories/kvs/internal/record"
	"github.com/iwantsomememories/kvs/internal/segment"
	"github.com/iwantsomememories/kvs/pkg/errors"
	"github.com/iwantsomememories/kvs/pkg/filesys"
)

var ErrStorageClosed = stdErrors.New("operation failed: cannot access closed storage")

// New opens (or creates) a store rooted at config.Options.DataDir: it
// replays every existing segment into a fresh index, then opens the
// highest generation for continued writing.
func New(config *Config) (*Storage, error) {
	if config == nil || config.Options == nil || config.Logger == nil {
		return nil, errors.NewValidationError(nil, errors.ErrorCodeInvalidInput, "storage configuration is required").
			WithField("config").WithRule("required")
	}
	if err := config.Options.Validate(); err != nil {
		return nil, err
	}

	dir := config.Options.DataDir
	config.Logger.Infow("opening storage", "dir", dir)

	if err := filesys.CreateDir(dir, 0o755); err != nil {
		return nil, errors.ClassifyDirectoryCreationError(err, dir)
	}

	idx, err := index.New(&index.Config{Logger: config.Logger})
	if err != nil {
		return nil, err
	}

	gens, err := segment.List(dir)
	if err != nil {
		return nil, err
	}

	for _, gen := range gens {
		if err := replay(dir, gen, idx); err != nil {
			return nil, err
		}
	}

	var currentGen uint64
	var offset int64
	if len(gens) > 0 {
		currentGen = gens[len(gens)-1]
		offset, err = fileSize(segment.Path(dir, currentGen))
		if err != nil {
			return nil, err
		}
	}

	safePoint := new(atomic.Uint64)

	w, err := openWriter(dir, currentGen, offset, config.Options.CompactionThreshold, idx, safePoint, config.Logger)
	if err != nil {
		return nil, err
	}

	sh := &shared{
		dir:       dir,
		log:       config.Logger,
		options:   config.Options,
		idx:       idx,
		writer:    w,
		safePoint: safePoint,
	}

	config.Logger.Infow("storage opened", "dir", dir, "generations", len(gens), "currentGen", currentGen, "keys", idx.Len())

	return &Storage{shared: sh, reader: newReader(dir, safePoint)}, nil
}

// replay decodes every record in generation gen's file, applying each to
// idx in order so the final state reflects the last write for every key
// (a Remove seen later than a Set removes the key again).
func replay(dir string, gen uint64, idx *index.Index) error {
	path := segment.Path(dir, gen)
	f, err := os.Open(path)
	if err != nil {
		return errors.ClassifyFileOpenError(err, path)
	}
	defer f.Close()

	dec := record.NewStreamDecoder(f)
	for {
		rec, offset, length, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch rec.Kind {
		case record.KindSet:
			idx.Set(rec.Key, index.Pointer{Generation: gen, Offset: offset, Length: length})
		case record.KindRemove:
			idx.Delete(rec.Key)
		}
	}

	return nil
}

func fileSize(path string) (int64, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return 0, errors.ClassifyFileOpenError(err, path)
	}
	return stat.Size(), nil
}

// Get returns the current value for key, or (  "", false, nil) if it isn't
// live.
func (s *Storage) Get(key string) (string, bool, error) {
	p, ok := s.shared.idx.Get(key)
	if !ok {
		return "", false, nil
	}

	s.reader.evictStale()

	data, err := s.reader.ReadAt(p.Generation, p.Offset, p.Length)
	if err != nil {
		return "", false, err
	}

	rec, err := record.Decode(data)
	if err != nil {
		return "", false, err
	}
	if rec.Kind != record.KindSet {
		return "", false, errors.NewUnexpectedRecordError(key, "Get")
	}

	return rec.Value, true, nil
}

// Set stores key/value durably, superseding any prior value for key.
func (s *Storage) Set(key, value string) error {
	return s.shared.writer.Set(key, value)
}

// Remove deletes key. It returns a key-not-found error if key isn't live.
func (s *Storage) Remove(key string) error {
	return s.shared.writer.Remove(key)
}

// Clone returns a new handle sharing the index, writer, and safe point
// with an independent reader cache, so a caller (typically one worker-pool
// goroutine per clone) can read concurrently with every other handle.
func (s *Storage) Clone() *Storage {
	return &Storage{shared: s.shared, reader: s.reader.clone()}
}

// Close releases this handle's reader. The first handle to close (the one
// New returned) also closes the writer and the index; later clones only
// release their own cache.
func (s *Storage) Close() error {
	s.reader.close()

	if !s.shared.closed.CompareAndSwap(false, true) {
		return nil
	}

	if err := s.shared.writer.close(); err != nil {
		return err
	}
	return s.shared.idx.Close()
}
