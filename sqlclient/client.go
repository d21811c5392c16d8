package sqlclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/tuannm99/arenadb/internal/sql/executor"
	"github.com/tuannm99/arenadb/server/arenawire"
)

// ErrSessionClosed is returned once the server has ended the session (".exit")
// or the client was closed.
var ErrSessionClosed = errors.New("sqlclient: session closed")

// CommandError is a command failure reported by the server. The session stays usable.
type CommandError struct {
	Line string
	Msg  string
}

func (e *CommandError) Error() string { return e.Msg }

type Config struct {
	Addr        string
	DialTimeout time.Duration
	// RWTimeout bounds each request when ctx has no deadline. 0 means none.
	RWTimeout time.Duration
}

// Client is one arenawire session. Calls are serialized on the connection.
type Client struct {
	cfg Config

	mu     sync.Mutex
	conn   net.Conn
	nextID uint64
	closed bool
}

func Dial(addr string, timeout time.Duration) (*Client, error) {
	return Connect(context.Background(), Config{Addr: addr, DialTimeout: timeout})
}

func DialContext(ctx context.Context, addr string, timeout time.Duration) (*Client, error) {
	return Connect(ctx, Config{Addr: addr, DialTimeout: timeout})
}

// Connect opens a session to an arenadb server.
func Connect(ctx context.Context, cfg Config) (*Client, error) {
	d := net.Dialer{Timeout: cfg.DialTimeout}
	conn, err := d.DialContext(ctx, "tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("sqlclient: dial %s: %w", cfg.Addr, err)
	}
	return &Client{cfg: cfg, conn: conn}, nil
}

func (c *Client) SetRWTimeout(d time.Duration) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.cfg.RWTimeout = d
	c.mu.Unlock()
}

func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shutdown()
}

// ExecLine runs one command line on the server. It satisfies shell.Runner.
func (c *Client) ExecLine(line string) (*executor.Result, error) {
	return c.ExecContext(context.Background(), line)
}

// ExecContext sends line and waits for its result. Cancelling ctx aborts the
// request and closes the session.
func (c *Client) ExecContext(ctx context.Context, line string) (*executor.Result, error) {
	if c == nil {
		return nil, fmt.Errorf("sqlclient: nil client")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrSessionClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.nextID++
	id := c.nextID

	stop := context.AfterFunc(ctx, func() { _ = c.conn.SetDeadline(time.Now()) })
	defer stop()

	resp, err := c.roundTrip(ctx, arenawire.ExecuteRequest{ID: id, Line: line})
	if err != nil {
		_ = c.shutdown()
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}

	if resp.ID != id {
		_ = c.shutdown()
		return nil, fmt.Errorf("sqlclient: response id mismatch: got=%d want=%d", resp.ID, id)
	}
	if resp.Error != "" {
		return nil, &CommandError{Line: line, Msg: resp.Error}
	}

	res := resp.Result
	if res == nil {
		res = &executor.Result{}
	}
	if res.Exit {
		// server closes its side after .exit
		_ = c.shutdown()
	}
	return res, nil
}

func (c *Client) roundTrip(ctx context.Context, req arenawire.ExecuteRequest) (*arenawire.ExecuteResponse, error) {
	deadline, ok := ctx.Deadline()
	if !ok && c.cfg.RWTimeout > 0 {
		deadline = time.Now().Add(c.cfg.RWTimeout)
	}
	if err := c.conn.SetDeadline(deadline); err != nil {
		return nil, err
	}

	if err := arenawire.WriteFrame(c.conn, req); err != nil {
		return nil, fmt.Errorf("sqlclient: send: %w", err)
	}

	resp, err := arenawire.Decode[arenawire.ExecuteResponse](c.conn)
	if err != nil {
		return nil, fmt.Errorf("sqlclient: receive: %w", err)
	}
	return &resp, nil
}

func (c *Client) shutdown() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close()
}
