package engine

import (
	"testing"

	"github.com/iwantsomememories/kvs/pkg/errors"
	"github.com/iwantsomememories/kvs/pkg/options"
	"go.uber.org/zap"
)

func newTestEngine(t *testing.T) *KVEngine {
	t.Helper()
	opts := options.NewDefaultOptions()
	opts.DataDir = t.TempDir()
	e, err := New(&Config{Options: &opts, Logger: zap.NewNop().Sugar()})
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestSetGetRemove(t *testing.T) {
	e := newTestEngine(t)
	defer e.Close()

	if err := e.Set("k", "v"); err != nil {
		t.Fatal(err)
	}
	v, ok, err := e.Get("k")
	if err != nil || !ok || v != "v" {
		t.Fatalf("Get: got %q, %v, %v", v, ok, err)
	}

	if err := e.Remove("k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := e.Get("k"); ok {
		t.Fatal("expected key to be gone after Remove")
	}
}

func TestRemoveMissingKeyReturnsKeyNotFound(t *testing.T) {
	e := newTestEngine(t)
	defer e.Close()

	err := e.Remove("missing")
	if !errors.IsKeyNotFound(err) {
		t.Fatalf("expected key-not-found error, got %v", err)
	}
}

func TestClosedEngineRejectsOperations(t *testing.T) {
	e := newTestEngine(t)
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}

	if _, _, err := e.Get("k"); err != ErrEngineClosed {
		t.Fatalf("Get on closed engine: got %v, want ErrEngineClosed", err)
	}
	if err := e.Set("k", "v"); err != ErrEngineClosed {
		t.Fatalf("Set on closed engine: got %v, want ErrEngineClosed", err)
	}
}

func TestCloneSeesSameData(t *testing.T) {
	e := newTestEngine(t)
	defer e.Close()

	if err := e.Set("k", "v"); err != nil {
		t.Fatal(err)
	}

	clone := e.Clone()
	defer clone.Close()

	v, ok, err := clone.Get("k")
	if err != nil || !ok || v != "v" {
		t.Fatalf("clone Get: got %q, %v, %v", v, ok, err)
	}
}
