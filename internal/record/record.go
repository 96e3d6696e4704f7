// Package record defines the Operation entries a storage engine appends to
// its segment files and reads back during recovery and compaction: Set and
// Remove, each a small JSON object with a "type" discriminator so segment
// files are self-describing and engine-version agnostic.
package record

import (
	"encoding/json"
	"io"

	"github.com/iwantsomememories/kvs/pkg/errors"
)

// Kind discriminates the two operations a segment file can carry.
type Kind string

const (
	KindSet    Kind = "Set"
	KindRemove Kind = "Remove"
)

// Record is the on-disk / in-memory representation of one logged
// operation. Value is empty (and omitted) for Remove.
type Record struct {
	Kind  Kind   `json:"type"`
	Key   string `json:"key"`
	Value string `json:"value,omitempty"`
}

// NewSet builds a validated Set record.
func NewSet(key, value string) (Record, error) {
	if key == "" {
		return Record{}, errors.NewRequiredFieldError("key")
	}
	if value == "" {
		return Record{}, errors.NewRequiredFieldError("value")
	}
	return Record{Kind: KindSet, Key: key, Value: value}, nil
}

// NewRemove builds a validated Remove record.
func NewRemove(key string) (Record, error) {
	if key == "" {
		return Record{}, errors.NewRequiredFieldError("key")
	}
	return Record{Kind: KindRemove, Key: key}, nil
}

// Encode marshals a record to its on-disk JSON form. The byte length of the
// result is what the index stores as a pointer's Length.
func Encode(r Record) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, errors.NewProtocolError(err, errors.ErrorCodeEncoding, "failed to encode record")
	}
	return data, nil
}

// Decode unmarshals a single record previously produced by Encode.
func Decode(data []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, errors.NewProtocolError(err, errors.ErrorCodeEncoding, "failed to decode record")
	}
	if r.Kind != KindSet && r.Kind != KindRemove {
		return Record{}, errors.NewProtocolError(nil, errors.ErrorCodeEncoding, "unknown record type").
			WithDetail("type", string(r.Kind))
	}
	return r, nil
}

// StreamDecoder reads a sequence of concatenated JSON records from a
// segment file, reporting each record's start offset and byte length so
// the caller can build index pointers while scanning — the Go analogue of
// a streaming deserializer that tracks its own byte offset as it consumes
// records one at a time.
type StreamDecoder struct {
	dec *json.Decoder
}

// NewStreamDecoder wraps r for sequential record-at-a-time decoding.
func NewStreamDecoder(r io.Reader) *StreamDecoder {
	return &StreamDecoder{dec: json.NewDecoder(r)}
}

// Next decodes the next record, returning its start offset and length in
// bytes within the underlying stream. It returns io.EOF when the stream is
// exhausted.
func (d *StreamDecoder) Next() (rec Record, offset int64, length int64, err error) {
	offset = d.dec.InputOffset()
	if err = d.dec.Decode(&rec); err != nil {
		if err == io.EOF {
			return Record{}, offset, 0, io.EOF
		}
		return Record{}, offset, 0, errors.NewMalformedFrameError(err, offset)
	}
	if rec.Kind != KindSet && rec.Kind != KindRemove {
		return Record{}, offset, 0, errors.NewProtocolError(nil, errors.ErrorCodeEncoding, "unknown record type").
			WithFrameOffset(offset).WithDetail("type", string(rec.Kind))
	}
	length = d.dec.InputOffset() - offset
	return rec, offset, length, nil
}
