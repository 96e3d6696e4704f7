// Package server implements the TCP front end: an accept loop that hands
// each connection to the worker pool as one job, and a per-connection loop
// that serves requests off that connection until the peer disconnects.
package server

import (
	"io"
	"net"

	"github.com/google/uuid"
	"github.com/iwantsomememories/kvs/internal/engine"
	"github.com/iwantsomememories/kvs/internal/protocol"
	"github.com/iwantsomememories/kvs/internal/workerpool"
	"github.com/iwantsomememories/kvs/pkg/errors"
	"go.uber.org/zap"
)

// Server accepts connections on a listener and dispatches each to the
// worker pool, which serves it against its own clone of the engine so
// concurrent connections never share a reader cache.
type Server struct {
	log  *zap.SugaredLogger
	eng  engine.Engine
	pool *workerpool.Pool
}

// Config holds the parameters needed to construct a Server.
type Config struct {
	Engine      engine.Engine
	Logger      *zap.SugaredLogger
	WorkerCount int
}

// New constructs a Server backed by config.Engine, serving connections
// through a worker pool of config.WorkerCount goroutines.
func New(config *Config) *Server {
	return &Server{
		log:  config.Logger,
		eng:  config.Engine,
		pool: workerpool.New(config.WorkerCount, config.Logger),
	}
}

// Serve runs the accept loop on ln until it returns an error (typically
// because ln was closed). The accept loop itself never blocks on serving a
// connection — that work is handed to the pool.
func (s *Server) Serve(ln net.Listener) error {
	s.log.Infow("server listening", "addr", ln.Addr().String())

	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}

		connID := uuid.NewString()
		connLog := s.log.With("connId", connID, "remoteAddr", conn.RemoteAddr().String())
		connEngine := s.eng.Clone()

		s.pool.Spawn(func() {
			defer connEngine.Close()
			defer conn.Close()
			serveConn(conn, connEngine, connLog)
		})
	}
}

// Shutdown stops the worker pool, waiting for in-flight connections to
// finish. It does not close the listener; callers should close it first so
// Serve returns.
func (s *Server) Shutdown() {
	s.pool.Shutdown()
}

// serveConn reads requests off conn and writes responses until the peer
// closes the connection or sends a frame that can't be decoded.
func serveConn(conn net.Conn, eng engine.Engine, log *zap.SugaredLogger) {
	dec := protocol.NewDecoder(conn)
	enc := protocol.NewEncoder(conn)

	log.Infow("connection opened")
	defer log.Infow("connection closed")

	for {
		var req protocol.Request
		if err := dec.Decode(&req); err != nil {
			if err == io.EOF {
				return
			}
			log.Errorw("failed to decode request", "error", err)
			return
		}

		log.Debugw("request received", "kind", req.Kind, "key", req.Key)

		switch req.Kind {
		case protocol.RequestGet:
			handleGet(eng, req, enc, log)
		case protocol.RequestSet:
			handleSet(eng, req, enc, log)
		case protocol.RequestRm:
			handleRm(eng, req, enc, log)
		default:
			log.Errorw("unknown request kind", "kind", req.Kind)
			return
		}
	}
}

func handleGet(eng engine.Engine, req protocol.Request, enc *protocol.Encoder, log *zap.SugaredLogger) {
	value, found, err := eng.Get(req.Key)
	resp := protocol.GetResponse{Value: value, Found: found}
	if err != nil {
		log.Errorw("get failed", "key", req.Key, "error", err)
		resp.Err = err.Error()
	}
	if err := enc.Encode(resp); err != nil {
		log.Errorw("failed to write get response", "error", err)
	}
}

func handleSet(eng engine.Engine, req protocol.Request, enc *protocol.Encoder, log *zap.SugaredLogger) {
	var resp protocol.SetResponse
	if err := eng.Set(req.Key, req.Value); err != nil {
		log.Errorw("set failed", "key", req.Key, "error", err)
		resp.Err = err.Error()
	}
	if err := enc.Encode(resp); err != nil {
		log.Errorw("failed to write set response", "error", err)
	}
}

func handleRm(eng engine.Engine, req protocol.Request, enc *protocol.Encoder, log *zap.SugaredLogger) {
	var resp protocol.RmResponse
	if err := eng.Remove(req.Key); err != nil {
		if !errors.IsKeyNotFound(err) {
			log.Errorw("remove failed", "key", req.Key, "error", err)
		}
		resp.Err = err.Error()
	}
	if err := enc.Encode(resp); err != nil {
		log.Errorw("failed to write rm response", "error", err)
	}
}
