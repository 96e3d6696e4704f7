// Command kvs-server runs the kvs network server: it opens an engine
// rooted at a data directory and serves the wire protocol over TCP.
package main

import (
	stdErrors "errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/iwantsomememories/kvs/internal/engine"
	"github.com/iwantsomememories/kvs/internal/server"
	"github.com/iwantsomememories/kvs/pkg/errors"
	"github.com/iwantsomememories/kvs/pkg/filesys"
	"github.com/iwantsomememories/kvs/pkg/logger"
	"github.com/iwantsomememories/kvs/pkg/options"
	"github.com/spf13/cobra"
)

const engineMarkerFile = ".engine"
const engineName = "kvs"

func main() {
	var addr, dataDir, engineFlag string
	var workerCount int

	root := &cobra.Command{
		Use:   "kvs-server",
		Short: "Run the kvs network server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(addr, dataDir, engineFlag, workerCount)
		},
	}

	root.Flags().StringVar(&addr, "addr", options.DefaultListenAddr, "TCP address to listen on")
	root.Flags().StringVar(&dataDir, "dir", options.DefaultDataDir, "directory to store segment files in")
	root.Flags().StringVar(&engineFlag, "engine", engineName, "storage engine to use")
	root.Flags().IntVar(&workerCount, "workers", options.DefaultWorkerCount, "number of worker-pool goroutines")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(addr, dataDir, engineFlag string, workerCount int) error {
	log := logger.NewDevelopment("kvs-server")

	if engineFlag != engineName {
		return fmt.Errorf("unsupported engine %q: only %q is implemented", engineFlag, engineName)
	}
	if err := checkEngineMarker(dataDir, engineFlag); err != nil {
		return err
	}

	opts := options.NewDefaultOptions()
	options.WithDataDir(dataDir)(&opts)
	options.WithWorkerCount(workerCount)(&opts)
	options.WithListenAddr(addr)(&opts)

	eng, err := engine.New(&engine.Config{Options: &opts, Logger: log})
	if err != nil {
		return err
	}
	defer eng.Close()

	ln, err := net.Listen("tcp", opts.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", opts.ListenAddr, err)
	}

	srv := server.New(&server.Config{Engine: eng, Logger: log, WorkerCount: opts.WorkerCount})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		log.Infow("shutting down")
		ln.Close()
		srv.Shutdown()
	}()

	if err := srv.Serve(ln); err != nil {
		if stdErrors.Is(err, net.ErrClosed) {
			return nil
		}
		return err
	}
	return nil
}

// checkEngineMarker rejects starting against a data directory that was
// last used by a different engine than the one requested.
func checkEngineMarker(dataDir, engineFlag string) error {
	if err := filesys.CreateDir(dataDir, 0o755); err != nil {
		return errors.ClassifyDirectoryCreationError(err, dataDir)
	}

	markerPath := filepath.Join(dataDir, engineMarkerFile)
	exists, err := filesys.Exists(markerPath)
	if err != nil {
		return err
	}

	if !exists {
		return filesys.WriteFile(markerPath, 0o644, []byte(engineFlag))
	}

	data, err := filesys.ReadFile(markerPath)
	if err != nil {
		return err
	}
	if string(data) != engineFlag {
		return errors.NewConfigurationValidationError("engine",
			fmt.Sprintf("%s was previously opened with engine %q, refusing to open with %q", dataDir, data, engineFlag))
	}
	return nil
}
