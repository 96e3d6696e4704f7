package errors

// TransportError wraps an opaque application error message carried from the
// server to a client over the wire — the server's own error, re-expressed as
// a plain string in the response, becomes a TransportError on the client.
type TransportError struct {
	*baseError
	addr string
}

// NewTransportError creates a new transport-specific error.
func NewTransportError(cause error, code ErrorCode, msg string) *TransportError {
	return &TransportError{baseError: NewBaseError(cause, code, msg)}
}

func (te *TransportError) WithMessage(msg string) *TransportError {
	te.baseError.WithMessage(msg)
	return te
}

func (te *TransportError) WithDetail(key string, value any) *TransportError {
	te.baseError.WithDetail(key, value)
	return te
}

// WithAddr records the remote address involved in the failure.
func (te *TransportError) WithAddr(addr string) *TransportError {
	te.addr = addr
	return te
}

func (te *TransportError) Addr() string { return te.addr }

// NewServerMessageError wraps a server-reported error string as seen by a client.
func NewServerMessageError(message string) *TransportError {
	return NewTransportError(nil, ErrorCodeTransport, message)
}
