// Package session runs an interactive calculator over lines of input.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/zephyrtronium/rpn"
	"github.com/zephyrtronium/rpn/internal/config"
)

// Memory holds the result of the last successful evaluation.
type Memory struct {
	v  float64
	ok bool
}

// Store replaces the remembered value.
func (m *Memory) Store(x float64) {
	m.v, m.ok = x, true
}

// Recall returns the remembered value, if there is one.
func (m *Memory) Recall() (float64, bool) {
	return m.v, m.ok
}

// MaxLineLen is the longest line of input a session accepts.
const MaxLineLen = 64 << 20

// NewScanner returns a line scanner over r that accepts lines up to
// MaxLineLen bytes.
func NewScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), MaxLineLen)
	return sc
}

// Session evaluates lines of input and remembers the last result. A Session
// is not safe for concurrent use.
type Session struct {
	cfg  config.Config
	out  io.Writer
	log  *zap.Logger
	mem  Memory
	good *color.Color
	bad  *color.Color
}

// New creates a session that writes to out. A nil logger discards logs.
func New(cfg *config.Config, out io.Writer, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{
		cfg:  *cfg,
		out:  out,
		log:  log,
		good: color.New(color.FgGreen),
		bad:  color.New(color.FgRed),
	}
	if !cfg.Color {
		s.good.DisableColor()
		s.bad.DisableColor()
	}
	s.cfg.Commands.Exit = strings.TrimSpace(s.cfg.Commands.Exit)
	s.cfg.Commands.Memory = strings.TrimSpace(s.cfg.Commands.Memory)
	return s
}

// Memory returns the session's memory.
func (s *Session) Memory() *Memory {
	return &s.mem
}

// Run handles lines from in until the exit command, the end of the input, or
// the cancellation of ctx. Cancellation is noticed between lines.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	sc := NewScanner(in)
	if s.cfg.Prompt != "" {
		fmt.Fprintf(s.out, "Enter an expression, %q to quit, %q for the saved result.\n", s.cfg.Commands.Exit, s.cfg.Commands.Memory)
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.out, s.cfg.Prompt)
		if !sc.Scan() {
			break
		}
		if s.Handle(sc.Text()) {
			s.log.Debug("session ended by command")
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	if s.cfg.Prompt != "" {
		fmt.Fprintln(s.out)
	}
	return nil
}

// Handle handles a single line of input and reports whether it was the exit
// command.
func (s *Session) Handle(line string) (quit bool) {
	line = strings.TrimSpace(line)
	switch line {
	case s.cfg.Commands.Exit:
		return true
	case s.cfg.Commands.Memory:
		x, ok := s.mem.Recall()
		if !ok {
			fmt.Fprintln(s.out, "no saved result")
			return false
		}
		fmt.Fprint(s.out, "saved result: ")
		s.good.Fprintf(s.out, s.cfg.Format+"\n", x)
		return false
	}
	s.Evaluate(line)
	return false
}

// Evaluate evaluates an expression and prints its result or error. On
// success, the result replaces the memory.
func (s *Session) Evaluate(line string) (float64, error) {
	a, err := rpn.ParseString(line)
	if err != nil {
		s.fail(line, err)
		return 0, err
	}
	if s.cfg.Echo {
		fmt.Fprint(s.out, a.String(), " : ")
	}
	x, err := a.Eval()
	if err != nil {
		s.fail(line, err)
		return 0, err
	}
	s.mem.Store(x)
	s.log.Debug("evaluated",
		zap.String("expr", line),
		zap.Stringer("postfix", a),
		zap.Float64("result", x))
	s.good.Fprintf(s.out, s.cfg.Format+"\n", x)
	return x, nil
}

func (s *Session) fail(line string, err error) {
	s.log.Debug("evaluation failed", zap.String("expr", line), zap.Error(err))
	s.bad.Fprintln(s.out, err)
}
