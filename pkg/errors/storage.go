package errors

// StorageError covers segment-file I/O failures. It embeds baseError and
// adds enough location context to pinpoint which segment and offset were
// involved.
type StorageError struct {
	*baseError
	generation uint64
	offset     int64
	path       string
}

// NewStorageError creates a new storage-specific error.
func NewStorageError(cause error, code ErrorCode, msg string) *StorageError {
	return &StorageError{baseError: NewBaseError(cause, code, msg)}
}

func (se *StorageError) WithMessage(msg string) *StorageError {
	se.baseError.WithMessage(msg)
	return se
}

func (se *StorageError) WithDetail(key string, value any) *StorageError {
	se.baseError.WithDetail(key, value)
	return se
}

// WithGeneration records which segment generation was involved.
func (se *StorageError) WithGeneration(gen uint64) *StorageError {
	se.generation = gen
	return se
}

// WithOffset records the byte position within the segment.
func (se *StorageError) WithOffset(offset int64) *StorageError {
	se.offset = offset
	return se
}

// WithPath records the segment file path.
func (se *StorageError) WithPath(path string) *StorageError {
	se.path = path
	return se
}

func (se *StorageError) Generation() uint64 { return se.generation }
func (se *StorageError) Offset() int64      { return se.offset }
func (se *StorageError) Path() string       { return se.path }
