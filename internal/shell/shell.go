package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/tuannm99/arenadb/internal/sql/executor"
)

// LineReader yields one line per call and io.EOF when input ends.
// *readline.Instance satisfies it.
type LineReader interface {
	Readline() (string, error)
}

// Runner executes one line. *executor.Executor and *sqlclient.Client satisfy it.
type Runner interface {
	ExecLine(line string) (*executor.Result, error)
}

// Shell is the read-execute-print loop.
type Shell struct {
	in  LineReader
	run Runner
	out io.Writer
}

func New(in LineReader, run Runner, out io.Writer) *Shell {
	return &Shell{in: in, run: run, out: out}
}

// Run reads lines until EOF, ".exit" or ctx is done.
// Command failures are printed and never stop the loop.
func (s *Shell) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := s.in.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("shell: read: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		res, err := s.run.ExecLine(line)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			continue
		}
		if res.Exit {
			return nil
		}
		Print(s.out, res)
	}
}

// Print writes every line of res to w.
func Print(w io.Writer, res *executor.Result) {
	for _, l := range res.Lines() {
		fmt.Fprintln(w, l)
	}
}
