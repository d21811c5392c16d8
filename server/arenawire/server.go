package arenawire

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/segmentio/ksuid"

	"github.com/tuannm99/arenadb/internal/sql/executor"
)

type ServerConfig struct {
	Addr string
}

// Serialized runs one line at a time on a shared Executor.
// The engine keeps no locks of its own, so every connection goes through here.
type Serialized struct {
	mu sync.Mutex
	ex *executor.Executor
}

func NewSerialized(ex *executor.Executor) *Serialized {
	return &Serialized{ex: ex}
}

func (s *Serialized) ExecLine(line string) (*executor.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ex.ExecLine(line)
}

// Server accepts connections and executes their lines against one database.
type Server struct {
	run *Serialized
	wg  sync.WaitGroup
}

func NewServer(ex *executor.Executor) *Server {
	return &Server{run: NewSerialized(ex)}
}

// Run listens on sc.Addr and serves until ctx is done.
func Run(ctx context.Context, sc ServerConfig, ex *executor.Executor) error {
	ln, err := net.Listen("tcp", sc.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return NewServer(ex).Serve(ctx, ln)
}

// Serve accepts on ln until ctx is done, then waits for open sessions to end.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer func() { _ = ln.Close() }()

	slog.Info("arenawire: listening", "addr", ln.Addr().String())

	stop := context.AfterFunc(ctx, func() { _ = ln.Close() })
	defer stop()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				s.wg.Wait()
				return nil
			}
			slog.Warn("arenawire: accept", "err", err)
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(ctx, conn)
		}()
	}
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	session := ksuid.New().String()
	log := slog.With("session", session, "remote", conn.RemoteAddr().String())
	log.Info("arenawire: session opened")

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer func() {
		stop()
		_ = conn.Close()
		log.Info("arenawire: session closed")
	}()

	for {
		req, err := Decode[ExecuteRequest](conn)
		if err != nil {
			// Client closed or bad frame.
			return
		}

		res, err := s.run.ExecLine(req.Line)
		if err != nil {
			log.Debug("arenawire: command failed", "id", req.ID, "err", err)
			if werr := WriteFrame(conn, ExecuteResponse{ID: req.ID, Error: err.Error()}); werr != nil {
				return
			}
			continue
		}

		if err := WriteFrame(conn, ExecuteResponse{ID: req.ID, Result: res}); err != nil {
			return
		}
		if res.Exit {
			// .exit ends this session only
			return
		}
	}
}
