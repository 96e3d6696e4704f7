// Package client implements a synchronous TCP client for the kvs wire
// protocol: one request per round trip over a single persistent
// connection.
package client

import (
	"net"

	"github.com/iwantsomememories/kvs/internal/protocol"
	"github.com/iwantsomememories/kvs/pkg/errors"
)

// Client is a connected kvs client. It is not safe for concurrent use by
// multiple goroutines — each request waits for its matching response
// before the next can be sent.
type Client struct {
	conn net.Conn
	enc  *protocol.Encoder
	dec  *protocol.Decoder
}

// Dial connects to a kvs server at addr.
func Dial(addr string) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, errors.NewTransportError(err, errors.ErrorCodeIO, "failed to connect to server").WithAddr(addr)
	}
	return &Client{conn: conn, enc: protocol.NewEncoder(conn), dec: protocol.NewDecoder(conn)}, nil
}

// Get fetches the value for key. found is false if the server holds no
// value for it.
func (c *Client) Get(key string) (value string, found bool, err error) {
	if err := c.enc.Encode(protocol.NewGetRequest(key)); err != nil {
		return "", false, err
	}

	var resp protocol.GetResponse
	if err := c.dec.Decode(&resp); err != nil {
		return "", false, err
	}
	if resp.Err != "" {
		return "", false, errors.NewServerMessageError(resp.Err)
	}
	return resp.Value, resp.Found, nil
}

// Set stores value at key.
func (c *Client) Set(key, value string) error {
	if err := c.enc.Encode(protocol.NewSetRequest(key, value)); err != nil {
		return err
	}

	var resp protocol.SetResponse
	if err := c.dec.Decode(&resp); err != nil {
		return err
	}
	if resp.Err != "" {
		return errors.NewServerMessageError(resp.Err)
	}
	return nil
}

// Remove deletes key, returning the server's error (typically
// key-not-found) if it wasn't live.
func (c *Client) Remove(key string) error {
	if err := c.enc.Encode(protocol.NewRmRequest(key)); err != nil {
		return err
	}

	var resp protocol.RmResponse
	if err := c.dec.Decode(&resp); err != nil {
		return err
	}
	if resp.Err != "" {
		return errors.NewServerMessageError(resp.Err)
	}
	return nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
