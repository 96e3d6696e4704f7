// Package errors implements the engine's error taxonomy: a small baseError
// carrying a cause, a code, and free-form details, extended by domain error
// types (validation, storage, index, protocol, transport) that each add the
// context relevant to where they occur. Errors are inspected with the
// Is*/As* helpers below rather than by string-matching messages.
package errors

import (
	stdErrors "errors"
	"os"
	"syscall"
)

// IsValidationError reports whether err is, or wraps, a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return stdErrors.As(err, &ve)
}

// IsStorageError reports whether err is, or wraps, a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return stdErrors.As(err, &se)
}

// IsIndexError reports whether err is, or wraps, an IndexError.
func IsIndexError(err error) bool {
	var ie *IndexError
	return stdErrors.As(err, &ie)
}

// IsProtocolError reports whether err is, or wraps, a ProtocolError.
func IsProtocolError(err error) bool {
	var pe *ProtocolError
	return stdErrors.As(err, &pe)
}

// IsTransportError reports whether err is, or wraps, a TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return stdErrors.As(err, &te)
}

// IsKeyNotFound reports whether err is the one expected error in the
// system: a removal against a key the index does not hold.
func IsKeyNotFound(err error) bool {
	ie, ok := AsIndexError(err)
	return ok && ie.Code() == ErrorCodeIndexKeyNotFound
}

// AsValidationError extracts a ValidationError from err's chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if stdErrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// AsStorageError extracts a StorageError from err's chain.
func AsStorageError(err error) (*StorageError, bool) {
	var se *StorageError
	if stdErrors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// AsIndexError extracts an IndexError from err's chain.
func AsIndexError(err error) (*IndexError, bool) {
	var ie *IndexError
	if stdErrors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// AsProtocolError extracts a ProtocolError from err's chain.
func AsProtocolError(err error) (*ProtocolError, bool) {
	var pe *ProtocolError
	if stdErrors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// AsTransportError extracts a TransportError from err's chain.
func AsTransportError(err error) (*TransportError, bool) {
	var te *TransportError
	if stdErrors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from any error in this taxonomy, or
// ErrorCodeInternal for anything else.
func GetErrorCode(err error) ErrorCode {
	if ve, ok := AsValidationError(err); ok {
		return ve.Code()
	}
	if se, ok := AsStorageError(err); ok {
		return se.Code()
	}
	if ie, ok := AsIndexError(err); ok {
		return ie.Code()
	}
	if pe, ok := AsProtocolError(err); ok {
		return pe.Code()
	}
	if te, ok := AsTransportError(err); ok {
		return te.Code()
	}
	return ErrorCodeInternal
}

// GetErrorDetails extracts the structured details map from any error in
// this taxonomy, or an empty map for anything else.
func GetErrorDetails(err error) map[string]any {
	if ve, ok := AsValidationError(err); ok && ve.Details() != nil {
		return ve.Details()
	}
	if se, ok := AsStorageError(err); ok && se.Details() != nil {
		return se.Details()
	}
	if ie, ok := AsIndexError(err); ok && ie.Details() != nil {
		return ie.Details()
	}
	if pe, ok := AsProtocolError(err); ok && pe.Details() != nil {
		return pe.Details()
	}
	if te, ok := AsTransportError(err); ok && te.Details() != nil {
		return te.Details()
	}
	return make(map[string]any)
}

// ClassifyDirectoryCreationError turns a raw mkdir failure into a
// StorageError carrying the path and a specific code where the underlying
// syscall error identifies one.
func ClassifyDirectoryCreationError(err error, path string) error {
	if os.IsPermission(err) {
		return NewStorageError(err, ErrorCodePermissionDenied, "insufficient permissions to create directory").
			WithPath(path).
			WithDetail("operation", "mkdir")
	}

	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewStorageError(err, ErrorCodeDiskFull, "insufficient disk space to create directory").
					WithPath(path).
					WithDetail("operation", "mkdir")
			case syscall.EROFS:
				return NewStorageError(err, ErrorCodeFilesystemReadonly, "cannot create directory on read-only filesystem").
					WithPath(path).
					WithDetail("operation", "mkdir")
			}
		}
	}

	return NewStorageError(err, ErrorCodeIO, "failed to create directory").
		WithPath(path).
		WithDetail("operation", "mkdir")
}

// ClassifyFileOpenError turns a raw file-open failure into a StorageError,
// distinguishing permission, disk-full, and read-only-filesystem causes
// where the underlying syscall error identifies one.
func ClassifyFileOpenError(err error, path string) error {
	if os.IsPermission(err) {
		return NewStorageError(err, ErrorCodePermissionDenied, "insufficient permissions to open segment file").
			WithPath(path).
			WithDetail("operation", "open")
	}

	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewStorageError(err, ErrorCodeDiskFull, "insufficient disk space to create segment file").
					WithPath(path).
					WithDetail("operation", "open")
			case syscall.EROFS:
				return NewStorageError(err, ErrorCodeFilesystemReadonly, "cannot create file on read-only filesystem").
					WithPath(path).
					WithDetail("operation", "open")
			}
		}
	}

	return NewStorageError(err, ErrorCodeIO, "failed to open segment file").
		WithPath(path).
		WithDetail("operation", "open")
}

// ClassifySyncError turns a raw flush/sync failure into a StorageError
// carrying the generation and byte offset at the time of the failure.
func ClassifySyncError(err error, path string, generation uint64, offset int64) error {
	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewStorageError(err, ErrorCodeDiskFull, "cannot flush file: insufficient disk space").
					WithPath(path).WithGeneration(generation).WithOffset(offset).
					WithDetail("operation", "flush")
			case syscall.EROFS:
				return NewStorageError(err, ErrorCodeFilesystemReadonly, "cannot flush file: filesystem is read-only").
					WithPath(path).WithGeneration(generation).WithOffset(offset).
					WithDetail("operation", "flush")
			case syscall.EIO:
				return NewStorageError(err, ErrorCodeIO, "i/o error during flush").
					WithPath(path).WithGeneration(generation).WithOffset(offset).
					WithDetail("operation", "flush")
			}
		}
	}

	return NewStorageError(err, ErrorCodeIO, "failed to flush segment file").
		WithPath(path).WithGeneration(generation).WithOffset(offset).
		WithDetail("operation", "flush")
}
