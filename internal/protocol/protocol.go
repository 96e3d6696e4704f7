// Package protocol defines the wire format between a kvs client and
// server: three request shapes and their matching responses, each a
// JSON-tagged Go struct decoded off a streaming json.Decoder so one TCP
// connection can carry many request/response pairs back to back without
// any length-prefix framing.
package protocol

import (
	"encoding/json"
	"io"

	"github.com/iwantsomememories/kvs/pkg/errors"
)

// RequestKind discriminates the three requests a client can send.
type RequestKind string

const (
	RequestGet RequestKind = "Get"
	RequestSet RequestKind = "Set"
	RequestRm  RequestKind = "Rm"
)

// Request is the single wire shape for all three request kinds; Value is
// only meaningful (and only sent) for Set.
type Request struct {
	Kind  RequestKind `json:"type"`
	Key   string      `json:"key"`
	Value string      `json:"value,omitempty"`
}

// NewGetRequest builds a Get request for key.
func NewGetRequest(key string) Request { return Request{Kind: RequestGet, Key: key} }

// NewSetRequest builds a Set request storing value at key.
func NewSetRequest(key, value string) Request { return Request{Kind: RequestSet, Key: key, Value: value} }

// NewRmRequest builds a Remove request for key.
func NewRmRequest(key string) Request { return Request{Kind: RequestRm, Key: key} }

// GetResponse reports the result of a Get request. Found carries whether
// the key was live, independent of Value, so a caller never has to infer
// absence from an empty string.
type GetResponse struct {
	Value string `json:"value,omitempty"`
	Found bool   `json:"found"`
	Err   string `json:"error,omitempty"`
}

// SetResponse reports the result of a Set request.
type SetResponse struct {
	Err string `json:"error,omitempty"`
}

// RmResponse reports the result of a Remove request.
type RmResponse struct {
	Err string `json:"error,omitempty"`
}

// Encoder writes successive JSON values to an underlying writer.
type Encoder struct{ enc *json.Encoder }

// NewEncoder wraps w for writing a sequence of requests or responses.
func NewEncoder(w io.Writer) *Encoder { return &Encoder{enc: json.NewEncoder(w)} }

// Encode writes v as the next JSON value on the stream.
func (e *Encoder) Encode(v any) error {
	if err := e.enc.Encode(v); err != nil {
		return errors.NewProtocolError(err, errors.ErrorCodeEncoding, "failed to encode wire frame")
	}
	return nil
}

// Decoder reads successive JSON values from an underlying reader.
type Decoder struct{ dec *json.Decoder }

// NewDecoder wraps r for reading a sequence of requests or responses.
func NewDecoder(r io.Reader) *Decoder { return &Decoder{dec: json.NewDecoder(r)} }

// Decode reads the next JSON value on the stream into v. It returns
// io.EOF when the peer has closed the connection cleanly between frames.
func (d *Decoder) Decode(v any) error {
	if err := d.dec.Decode(v); err != nil {
		if err == io.EOF {
			return io.EOF
		}
		return errors.NewMalformedFrameError(err, d.dec.InputOffset())
	}
	return nil
}
