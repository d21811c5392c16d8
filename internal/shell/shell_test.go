package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/arenadb/internal/engine"
	"github.com/tuannm99/arenadb/internal/sql/executor"
)

// ---- fakes ----

type scriptReader struct {
	lines []string
	errs  map[int]error
	pos   int
}

func (r *scriptReader) Readline() (string, error) {
	i := r.pos
	r.pos++
	if err, ok := r.errs[i]; ok {
		return "", err
	}
	if i >= len(r.lines) {
		return "", io.EOF
	}
	return r.lines[i], nil
}

func runScript(t *testing.T, lines ...string) (string, *scriptReader) {
	t.Helper()
	in := &scriptReader{lines: lines}
	var out bytes.Buffer
	ex := executor.NewExecutor(engine.NewDatabase())

	require.NoError(t, New(in, ex, &out).Run(context.Background()))
	return out.String(), in
}

func TestShell_Session(t *testing.T) {
	out, _ := runScript(t,
		"create User",
		"insert User 1 alice a@example.com",
		"select User",
	)

	require.Equal(t, "Table User successfully created\n"+
		"User successfully inserted\n"+
		`{id: 1, username: "alice", email: "a@example.com"}`+"\n", out)
}

func TestShell_ErrorsDoNotStopLoop(t *testing.T) {
	out, _ := runScript(t,
		"insert Car",
		"select Truck",
		"flibbertigibbet",
		"",
		"   ",
		"create car",
	)

	require.Equal(t, "Error: parser: not enough arguments: missing id\n"+
		"Error: record: unknown table \"Truck\"\n"+
		"Unknown command: flibbertigibbet\n"+
		"Table Car successfully created\n", out)
}

func TestShell_ExitStopsReading(t *testing.T) {
	out, in := runScript(t,
		"create car",
		".exit",
		"create user",
	)

	require.Equal(t, "Table Car successfully created\n", out)
	require.Equal(t, 2, in.pos)
}

func TestShell_InterruptContinues(t *testing.T) {
	in := &scriptReader{
		lines: []string{"", "create car"},
		errs:  map[int]error{0: readline.ErrInterrupt},
	}
	var out bytes.Buffer
	ex := executor.NewExecutor(engine.NewDatabase())

	require.NoError(t, New(in, ex, &out).Run(context.Background()))
	require.Equal(t, "Table Car successfully created\n", out.String())
}

func TestShell_ReadError(t *testing.T) {
	boom := errors.New("boom")
	in := &scriptReader{errs: map[int]error{0: boom}}

	err := New(in, executor.NewExecutor(engine.NewDatabase()), io.Discard).Run(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestShell_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := &scriptReader{lines: []string{"create car"}}
	require.NoError(t, New(in, executor.NewExecutor(engine.NewDatabase()), io.Discard).Run(ctx))
	require.Zero(t, in.pos)
}
