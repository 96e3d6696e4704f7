package client

import (
	"net"
	"testing"

	"github.com/iwantsomememories/kvs/internal/protocol"
	"github.com/stretchr/testify/require"
)

// fakeServer accepts a single connection and answers Get/Set/Remove requests
// from an in-memory map, enough to exercise Client without a real engine.
func fakeServer(t *testing.T, ln net.Listener) {
	conn, err := ln.Accept()
	require.NoError(t, err)
	defer conn.Close()

	dec := protocol.NewDecoder(conn)
	enc := protocol.NewEncoder(conn)
	store := map[string]string{}

	for {
		var req protocol.Request
		if err := dec.Decode(&req); err != nil {
			return
		}

		switch req.Kind {
		case protocol.RequestGet:
			value, found := store[req.Key]
			require.NoError(t, enc.Encode(protocol.GetResponse{Value: value, Found: found}))
		case protocol.RequestSet:
			store[req.Key] = req.Value
			require.NoError(t, enc.Encode(protocol.SetResponse{}))
		case protocol.RequestRm:
			if _, ok := store[req.Key]; !ok {
				require.NoError(t, enc.Encode(protocol.RmResponse{Err: "key not found"}))
				continue
			}
			delete(store, req.Key)
			require.NoError(t, enc.Encode(protocol.RmResponse{}))
		}
	}
}

func TestClientSetGetRemove(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go fakeServer(t, ln)

	c, err := Dial(ln.Addr().String())
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Set("k", "v"))

	value, found, err := c.Get("k")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "v", value)

	require.NoError(t, c.Remove("k"))

	err = c.Remove("k")
	require.Error(t, err)
}
