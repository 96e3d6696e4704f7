package index

import (
	"testing"

	"go.uber.org/zap"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := New(&Config{Logger: zap.NewNop().Sugar()})
	if err != nil {
		t.Fatal(err)
	}
	return idx
}

func TestSetGetDelete(t *testing.T) {
	idx := newTestIndex(t)

	if _, ok := idx.Get("missing"); ok {
		t.Fatal("expected missing key to be absent")
	}

	p := Pointer{Generation: 1, Offset: 10, Length: 20}
	idx.Set("k", p)

	got, ok := idx.Get("k")
	if !ok || got != p {
		t.Fatalf("Get: got %+v, %v, want %+v, true", got, ok, p)
	}

	if !idx.Delete("k") {
		t.Fatal("expected Delete to report the key was present")
	}
	if idx.Delete("k") {
		t.Fatal("expected second Delete to report absence")
	}
}

func TestRangeVisitsEveryEntry(t *testing.T) {
	idx := newTestIndex(t)
	want := map[string]Pointer{
		"a": {Generation: 1, Offset: 0, Length: 5},
		"b": {Generation: 2, Offset: 5, Length: 5},
	}
	for k, p := range want {
		idx.Set(k, p)
	}

	seen := make(map[string]Pointer)
	idx.Range(func(key string, p Pointer) bool {
		seen[key] = p
		return true
	})

	if len(seen) != len(want) {
		t.Fatalf("Range visited %d entries, want %d", len(seen), len(want))
	}
	for k, p := range want {
		if seen[k] != p {
			t.Fatalf("Range entry %q: got %+v, want %+v", k, seen[k], p)
		}
	}
}

func TestCloseIsIdempotentAndRejectsReuse(t *testing.T) {
	idx := newTestIndex(t)
	if err := idx.Close(); err != nil {
		t.Fatal(err)
	}
	if err := idx.Close(); err != ErrIndexClosed {
		t.Fatalf("second Close: got %v, want ErrIndexClosed", err)
	}
}
