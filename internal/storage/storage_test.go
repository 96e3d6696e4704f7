package storage

import (
	"testing"

	"github.com/iwantsomememories/kvs/pkg/errors"
	"github.com/iwantsomememories/kvs/pkg/options"
	"go.uber.org/zap"
)

func newTestStorage(t *testing.T, dir string, threshold int64) *Storage {
	t.Helper()
	opts := options.NewDefaultOptions()
	opts.DataDir = dir
	opts.CompactionThreshold = threshold
	s, err := New(&Config{Options: &opts, Logger: zap.NewNop().Sugar()})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSetGetRemove(t *testing.T) {
	s := newTestStorage(t, t.TempDir(), 1<<20)
	defer s.Close()

	if err := s.Set("k1", "v1"); err != nil {
		t.Fatal(err)
	}

	v, ok, err := s.Get("k1")
	if err != nil || !ok || v != "v1" {
		t.Fatalf("Get: got %q, %v, %v; want v1, true, nil", v, ok, err)
	}

	if err := s.Set("k1", "v2"); err != nil {
		t.Fatal(err)
	}
	v, _, _ = s.Get("k1")
	if v != "v2" {
		t.Fatalf("Get after overwrite: got %q, want v2", v)
	}

	if err := s.Remove("k1"); err != nil {
		t.Fatal(err)
	}
	_, ok, err = s.Get("k1")
	if err != nil || ok {
		t.Fatalf("Get after remove: got ok=%v err=%v, want false, nil", ok, err)
	}
}

func TestRemoveMissingKeyErrors(t *testing.T) {
	s := newTestStorage(t, t.TempDir(), 1<<20)
	defer s.Close()

	err := s.Remove("nope")
	if !errors.IsKeyNotFound(err) {
		t.Fatalf("expected key-not-found error, got %v", err)
	}
}

func TestReopenReplaysSegments(t *testing.T) {
	dir := t.TempDir()

	s1 := newTestStorage(t, dir, 1<<20)
	if err := s1.Set("a", "1"); err != nil {
		t.Fatal(err)
	}
	if err := s1.Set("b", "2"); err != nil {
		t.Fatal(err)
	}
	if err := s1.Remove("a"); err != nil {
		t.Fatal(err)
	}
	if err := s1.Close(); err != nil {
		t.Fatal(err)
	}

	s2 := newTestStorage(t, dir, 1<<20)
	defer s2.Close()

	if _, ok, _ := s2.Get("a"); ok {
		t.Fatal("expected \"a\" to stay removed across reopen")
	}
	v, ok, err := s2.Get("b")
	if err != nil || !ok || v != "2" {
		t.Fatalf("Get(b) after reopen: got %q, %v, %v", v, ok, err)
	}
}

func TestGetAfterCompactionReturnsLatestValue(t *testing.T) {
	dir := t.TempDir()
	s := newTestStorage(t, dir, 64)
	defer s.Close()

	for i := 0; i < 50; i++ {
		if err := s.Set("k", "some-value-to-pad-out-the-log"); err != nil {
			t.Fatal(err)
		}
	}

	v, ok, err := s.Get("k")
	if err != nil || !ok || v != "some-value-to-pad-out-the-log" {
		t.Fatalf("Get after compaction: got %q, %v, %v", v, ok, err)
	}
}

func TestCloneSharesStateWithIndependentReader(t *testing.T) {
	s := newTestStorage(t, t.TempDir(), 1<<20)
	defer s.Close()

	if err := s.Set("k", "v"); err != nil {
		t.Fatal(err)
	}

	clone := s.Clone()
	defer clone.Close()

	v, ok, err := clone.Get("k")
	if err != nil || !ok || v != "v" {
		t.Fatalf("clone Get: got %q, %v, %v", v, ok, err)
	}

	if err := clone.Set("k2", "v2"); err != nil {
		t.Fatal(err)
	}
	v, ok, err = s.Get("k2")
	if err != nil || !ok || v != "v2" {
		t.Fatalf("original Get after clone Set: got %q, %v, %v", v, ok, err)
	}
}
