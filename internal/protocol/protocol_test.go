package protocol

import (
	"bytes"
	"encoding/json"
	"io"
	"testing"
)

func TestRequestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)

	reqs := []Request{
		NewGetRequest("k"),
		NewSetRequest("k", "v"),
		NewRmRequest("k"),
	}
	for _, r := range reqs {
		if err := enc.Encode(r); err != nil {
			t.Fatal(err)
		}
	}

	dec := NewDecoder(&buf)
	for _, want := range reqs {
		var got Request
		if err := dec.Decode(&got); err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("got %+v, want %+v", got, want)
		}
	}

	var trailing Request
	if err := dec.Decode(&trailing); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestGetResponseOmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(GetResponse{Found: false})
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(data, []byte("value")) || bytes.Contains(data, []byte("error")) {
		t.Fatalf("expected empty fields to be omitted, got %s", data)
	}
}

func TestDecodeMalformedFrameReturnsProtocolError(t *testing.T) {
	dec := NewDecoder(bytes.NewBufferString("{not json"))
	var req Request
	if err := dec.Decode(&req); err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}
