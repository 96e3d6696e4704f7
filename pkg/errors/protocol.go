package errors

// ProtocolError covers malformed wire frames: a request or response that
// doesn't decode into the tagged JSON shape the protocol expects.
type ProtocolError struct {
	*baseError
	frameOffset int64
}

// NewProtocolError creates a new protocol-specific error.
func NewProtocolError(cause error, code ErrorCode, msg string) *ProtocolError {
	return &ProtocolError{baseError: NewBaseError(cause, code, msg)}
}

func (pe *ProtocolError) WithMessage(msg string) *ProtocolError {
	pe.baseError.WithMessage(msg)
	return pe
}

func (pe *ProtocolError) WithDetail(key string, value any) *ProtocolError {
	pe.baseError.WithDetail(key, value)
	return pe
}

// WithFrameOffset records the stream offset of the frame that failed to decode.
func (pe *ProtocolError) WithFrameOffset(offset int64) *ProtocolError {
	pe.frameOffset = offset
	return pe
}

func (pe *ProtocolError) FrameOffset() int64 { return pe.frameOffset }

// NewMalformedFrameError reports a request/response that failed to decode.
func NewMalformedFrameError(cause error, offset int64) *ProtocolError {
	return NewProtocolError(cause, ErrorCodeEncoding, "malformed wire frame").
		WithFrameOffset(offset)
}
