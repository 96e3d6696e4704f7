package errors

// IndexError covers lookups and mutations against the in-memory key index:
// a missing key, or a pointer that resolved to a record the caller did not
// expect (the index and the segment files disagree).
type IndexError struct {
	*baseError
	key       string
	operation string
}

// NewIndexError creates a new index-specific error.
func NewIndexError(cause error, code ErrorCode, msg string) *IndexError {
	return &IndexError{baseError: NewBaseError(cause, code, msg)}
}

func (ie *IndexError) WithMessage(msg string) *IndexError {
	ie.baseError.WithMessage(msg)
	return ie
}

func (ie *IndexError) WithDetail(key string, value any) *IndexError {
	ie.baseError.WithDetail(key, value)
	return ie
}

// WithKey records which key was being looked up.
func (ie *IndexError) WithKey(key string) *IndexError {
	ie.key = key
	return ie
}

// WithOperation records which index operation was in progress (Get, Remove, Compact).
func (ie *IndexError) WithOperation(operation string) *IndexError {
	ie.operation = operation
	return ie
}

func (ie *IndexError) Key() string       { return ie.key }
func (ie *IndexError) Operation() string { return ie.operation }

// NewKeyNotFoundError is the one expected error in the system: Remove on a
// key the index does not hold.
func NewKeyNotFoundError(key string) *IndexError {
	return NewIndexError(nil, ErrorCodeIndexKeyNotFound, "key not found").
		WithKey(key).
		WithOperation("Remove")
}

// NewUnexpectedRecordError reports an index entry that resolved to a record
// whose on-disk tag didn't match what the caller expected.
func NewUnexpectedRecordError(key string, operation string) *IndexError {
	return NewIndexError(nil, ErrorCodeUnexpectedRecord, "unexpected command type at index position").
		WithKey(key).
		WithOperation(operation)
}
