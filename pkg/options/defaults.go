package options

const (
	// DefaultDataDir is used when no data directory is configured.
	DefaultDataDir = "./kvs-data"

	// DefaultCompactionThreshold mirrors the original project's 1 MiB
	// dead-byte trigger for a compaction pass.
	DefaultCompactionThreshold int64 = 1024 * 1024

	// DefaultWorkerCount is the number of goroutines in the server's pool
	// when the caller doesn't request a specific size.
	DefaultWorkerCount = 4

	// DefaultListenAddr matches the original CLI's bind address.
	DefaultListenAddr = "127.0.0.1:4000"
)

var defaultOptions = Options{
	DataDir:             DefaultDataDir,
	CompactionThreshold: DefaultCompactionThreshold,
	WorkerCount:         DefaultWorkerCount,
	ListenAddr:          DefaultListenAddr,
}

// NewDefaultOptions returns a copy of the package defaults.
func NewDefaultOptions() Options {
	return defaultOptions
}
