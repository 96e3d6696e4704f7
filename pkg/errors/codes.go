package errors

// ErrorCode categorizes an error programmatically, independent of its message.
type ErrorCode string

// Base codes, applicable across every layer.
const (
	ErrorCodeIO           ErrorCode = "IO_ERROR"
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrorCodeInternal     ErrorCode = "INTERNAL_ERROR"
)

// Storage-layer codes.
const (
	ErrorCodePermissionDenied   ErrorCode = "PERMISSION_DENIED"
	ErrorCodeDiskFull           ErrorCode = "DISK_FULL"
	ErrorCodeFilesystemReadonly ErrorCode = "FILESYSTEM_READONLY"
)

// Index-layer codes.
const (
	// ErrorCodeIndexKeyNotFound is the one expected error in the system:
	// remove() on a key the index does not hold.
	ErrorCodeIndexKeyNotFound ErrorCode = "INDEX_KEY_NOT_FOUND"

	// ErrorCodeUnexpectedRecord means the index pointed at a record whose
	// on-disk tag didn't match what the caller expected (e.g. a Get
	// resolved to a Remove record) — an invariant violation.
	ErrorCodeUnexpectedRecord ErrorCode = "UNEXPECTED_RECORD"
)

// Protocol/transport codes.
const (
	// ErrorCodeEncoding covers malformed request/response frames and
	// undecodable log records.
	ErrorCodeEncoding ErrorCode = "ENCODING_ERROR"

	// ErrorCodeTransport wraps an opaque application error message sent
	// from the server to a client over the wire.
	ErrorCodeTransport ErrorCode = "TRANSPORT_ERROR"
)
