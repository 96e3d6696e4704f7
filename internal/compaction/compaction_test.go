package compaction

import (
	"testing"

	"github.com/iwantsomememories/kvs/internal/index"
	"go.uber.org/zap"
)

type fakeStore struct {
	records map[uint64]map[int64][]byte // gen -> offset -> data
	nextOff map[uint64]int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[uint64]map[int64][]byte), nextOff: make(map[uint64]int64)}
}

func (f *fakeStore) ReadAt(gen uint64, offset, length int64) ([]byte, error) {
	return f.records[gen][offset], nil
}

func (f *fakeStore) AppendTo(gen uint64, data []byte) (int64, error) {
	offset := f.nextOff[gen]
	if f.records[gen] == nil {
		f.records[gen] = make(map[int64][]byte)
	}
	f.records[gen][offset] = data
	f.nextOff[gen] = offset + int64(len(data))
	return offset, nil
}

func TestGenerations(t *testing.T) {
	c, n := Generations(5)
	if c != 6 || n != 7 {
		t.Fatalf("Generations(5) = %d, %d; want 6, 7", c, n)
	}
}

func TestRunRewritesLiveRecordsAndUpdatesIndex(t *testing.T) {
	idx, err := index.New(&index.Config{Logger: zap.NewNop().Sugar()})
	if err != nil {
		t.Fatal(err)
	}

	store := newFakeStore()
	store.records[0] = map[int64][]byte{0: []byte(`{"type":"Set","key":"a","value":"1"}`)}
	idx.Set("a", index.Pointer{Generation: 0, Offset: 0, Length: int64(len(store.records[0][0]))})

	compactionGen, newGen, err := Run(idx, store, store, 0)
	if err != nil {
		t.Fatal(err)
	}
	if compactionGen != 1 || newGen != 2 {
		t.Fatalf("got compactionGen=%d newGen=%d, want 1, 2", compactionGen, newGen)
	}

	p, ok := idx.Get("a")
	if !ok {
		t.Fatal("expected key \"a\" to remain in the index")
	}
	if p.Generation != compactionGen {
		t.Fatalf("pointer generation: got %d, want %d", p.Generation, compactionGen)
	}

	copied := store.records[compactionGen][p.Offset]
	if string(copied) != `{"type":"Set","key":"a","value":"1"}` {
		t.Fatalf("copied record mismatch: %s", copied)
	}
}
