// Package compaction implements the rewrite algorithm a storage writer runs
// once its accumulated dead-byte count crosses a threshold: copy every
// still-live record into a fresh generation, repoint the index at the
// copies, and let the caller drop everything older.
package compaction

import "github.com/iwantsomememories/kvs/internal/index"

// Reader reads the raw encoded bytes of a record previously written at
// (gen, offset) with the given length.
type Reader interface {
	ReadAt(gen uint64, offset, length int64) ([]byte, error)
}

// Appender appends pre-encoded record bytes to generation gen, returning
// the byte offset the data was written at.
type Appender interface {
	AppendTo(gen uint64, data []byte) (offset int64, err error)
}

// Generations computes the compaction generation (where live records are
// copied to) and the next writable generation, given the generation
// currently being written to.
func Generations(current uint64) (compactionGen, newGen uint64) {
	return current + 1, current + 2
}

// Run copies every record the index currently considers live into
// compactionGen, updates the index in place to point at the copies, and
// returns the compaction and next-writable generations. Every generation
// strictly below compactionGen holds no further live data once Run
// returns and is safe for the caller to delete.
func Run(idx *index.Index, r Reader, w Appender, currentGen uint64) (compactionGen, newGen uint64, err error) {
	compactionGen, newGen = Generations(currentGen)

	type update struct {
		key string
		ptr index.Pointer
	}
	var updates []update

	var copyErr error
	idx.Range(func(key string, p index.Pointer) bool {
		data, readErr := r.ReadAt(p.Generation, p.Offset, p.Length)
		if readErr != nil {
			copyErr = readErr
			return false
		}

		offset, writeErr := w.AppendTo(compactionGen, data)
		if writeErr != nil {
			copyErr = writeErr
			return false
		}

		updates = append(updates, update{
			key: key,
			ptr: index.Pointer{Generation: compactionGen, Offset: offset, Length: p.Length},
		})
		return true
	})
	if copyErr != nil {
		return 0, 0, copyErr
	}

	for _, u := range updates {
		idx.Set(u.key, u.ptr)
	}

	return compactionGen, newGen, nil
}
