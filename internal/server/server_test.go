package server

import (
	"net"
	"testing"
	"time"

	"github.com/iwantsomememories/kvs/internal/client"
	"github.com/iwantsomememories/kvs/internal/engine"
	"github.com/iwantsomememories/kvs/pkg/options"
	"go.uber.org/zap"
)

func startTestServer(t *testing.T) (addr string, stop func()) {
	t.Helper()

	opts := options.NewDefaultOptions()
	opts.DataDir = t.TempDir()
	eng, err := engine.New(&engine.Config{Options: &opts, Logger: zap.NewNop().Sugar()})
	if err != nil {
		t.Fatal(err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	srv := New(&Config{Engine: eng, Logger: zap.NewNop().Sugar(), WorkerCount: 2})

	done := make(chan struct{})
	go func() {
		srv.Serve(ln)
		close(done)
	}()

	return ln.Addr().String(), func() {
		ln.Close()
		srv.Shutdown()
		eng.Close()
		<-done
	}
}

func TestServerServesSetGetRemove(t *testing.T) {
	addr, stop := startTestServer(t)
	defer stop()

	c, err := client.Dial(addr)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Set("k", "v"); err != nil {
		t.Fatal(err)
	}

	v, found, err := c.Get("k")
	if err != nil || !found || v != "v" {
		t.Fatalf("Get: got %q, %v, %v", v, found, err)
	}

	if err := c.Remove("k"); err != nil {
		t.Fatal(err)
	}

	_, found, err = c.Get("k")
	if err != nil || found {
		t.Fatalf("Get after remove: got found=%v err=%v", found, err)
	}
}

func TestServerReportsRemoveOfMissingKey(t *testing.T) {
	addr, stop := startTestServer(t)
	defer stop()

	c, err := client.Dial(addr)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Remove("nope"); err == nil {
		t.Fatal("expected error removing a missing key")
	}
}

func TestServerHandlesConcurrentConnections(t *testing.T) {
	addr, stop := startTestServer(t)
	defer stop()

	errCh := make(chan error, 4)
	for i := 0; i < 4; i++ {
		go func(n int) {
			c, err := client.Dial(addr)
			if err != nil {
				errCh <- err
				return
			}
			defer c.Close()

			key := "k"
			val := "v"
			errCh <- c.Set(key, val)
			_, _, _ = c.Get(key)
		}(i)
	}

	for i := 0; i < 4; i++ {
		select {
		case err := <-errCh:
			if err != nil {
				t.Fatal(err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for concurrent clients")
		}
	}
}
