package arenawire

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/arenadb/internal/engine"
	"github.com/tuannm99/arenadb/internal/sql/executor"
)

func serve(t *testing.T) (addr string, cancel context.CancelFunc, done <-chan error) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan error, 1)
	go func() { ch <- NewServer(executor.NewExecutor(engine.NewDatabase())).Serve(ctx, ln) }()
	return ln.Addr().String(), cancel, ch
}

func roundTrip(t *testing.T, conn net.Conn, id uint64, line string) ExecuteResponse {
	t.Helper()
	require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, WriteFrame(conn, ExecuteRequest{ID: id, Line: line}))
	resp, err := Decode[ExecuteResponse](conn)
	require.NoError(t, err)
	require.Equal(t, id, resp.ID)
	return resp
}

func TestServer_ExecutesLines(t *testing.T) {
	addr, cancel, done := serve(t)
	defer func() {
		cancel()
		require.NoError(t, <-done)
	}()

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	resp := roundTrip(t, conn, 1, "create user")
	require.Empty(t, resp.Error)
	require.Equal(t, "Table User successfully created", resp.Result.Message)

	resp = roundTrip(t, conn, 2, "create user")
	require.Contains(t, resp.Error, "table already exists")
	require.Nil(t, resp.Result)

	resp = roundTrip(t, conn, 3, "flibbertigibbet")
	require.Empty(t, resp.Error)
	require.Equal(t, "Unknown command: flibbertigibbet", resp.Result.Message)
}

func TestServer_BadFrameClosesSession(t *testing.T) {
	addr, cancel, done := serve(t)
	defer func() {
		cancel()
		require.NoError(t, <-done)
	}()

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	_, err = conn.Write([]byte{0, 0, 0, 0})
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, err = Decode[ExecuteResponse](conn)
	require.Error(t, err)
}

func TestServer_CancelClosesOpenSessions(t *testing.T) {
	addr, cancel, done := serve(t)

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()
	roundTrip(t, conn, 1, "create car")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestSerialized_SharesDatabase(t *testing.T) {
	s := NewSerialized(executor.NewExecutor(engine.NewDatabase()))

	_, err := s.ExecLine("create car")
	require.NoError(t, err)
	_, err = s.ExecLine("insert car c1 Volvo")
	require.NoError(t, err)

	res, err := s.ExecLine("select car")
	require.NoError(t, err)
	require.Equal(t, []string{`{id: "c1", brand: "Volvo"}`}, res.Rows)
}
