package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/zephyrtronium/rpn"
	"github.com/zephyrtronium/rpn/internal/config"
	"github.com/zephyrtronium/rpn/internal/session"
)

// options holds command line flags and the state built from them.
type options struct {
	configFile string
	format     string
	inName     string
	echo       bool
	noColor    bool
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "rpn [expression...]",
		Short: "Evaluate arithmetic expressions by conversion to postfix",
		Long: `rpn evaluates infix arithmetic written with digits, decimal points,
the operators + - * /, and parentheses, with no spaces.

With arguments, each argument is one expression. With --in, each line of the
file is one expression. Otherwise rpn reads expressions interactively from
standard input; "exit" ends the session and "mem" prints the last result.`,
		SilenceUsage:      true,
		PersistentPreRunE: o.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if o.logger != nil {
				_ = o.logger.Sync()
			}
		},
		RunE: o.run,
	}
	f := root.PersistentFlags()
	f.StringVar(&o.configFile, "config", "", "configuration file (YAML)")
	f.StringVar(&o.format, "fmt", "%g", "result formatting verb")
	f.BoolVar(&o.echo, "echo", false, "print the postfix form of each expression")
	f.BoolVar(&o.noColor, "no-color", false, "disable colored output")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logging")
	root.Flags().StringVar(&o.inName, "in", "", "file of expressions, one per line (- for stdin)")

	root.AddCommand(&cobra.Command{
		Use:   "postfix expression...",
		Short: "Print expressions in postfix notation without evaluating them",
		Args:  cobra.MinimumNArgs(1),
		RunE:  o.runPostfix,
	})
	return root
}

// setup loads the configuration, applies flags over it, and builds the
// logger.
func (o *options) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("fmt") {
		cfg.Format = o.format
	}
	if o.echo {
		cfg.Echo = true
	}
	if o.noColor {
		cfg.Color = false
	}
	if o.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	o.logger, err = zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	o.cfg = cfg
	return nil
}

func (o *options) run(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 && o.inName == "" {
		cfg := *o.cfg
		if !isTerminal(cmd.InOrStdin()) {
			cfg.Prompt = ""
		}
		s := session.New(&cfg, out, o.logger)
		return s.Run(cmd.Context(), cmd.InOrStdin())
	}

	exprs := args
	if o.inName != "" {
		lines, err := readLines(o.inName, cmd.InOrStdin())
		if err != nil {
			return err
		}
		exprs = append(exprs, lines...)
	}
	s := session.New(o.cfg, out, o.logger)
	failed := 0
	for _, e := range exprs {
		if _, err := s.Evaluate(strings.TrimSpace(e)); err != nil {
			failed++
		}
	}
	o.logger.Debug("batch finished", zap.Int("expressions", len(exprs)), zap.Int("failed", failed))
	if failed > 0 {
		return fmt.Errorf("%d of %d expressions failed", failed, len(exprs))
	}
	return nil
}

func (o *options) runPostfix(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := 0
	for _, arg := range args {
		a, err := rpn.ParseString(arg)
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", arg, err)
			failed++
			continue
		}
		fmt.Fprintln(out, a)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d expressions failed", failed, len(args))
	}
	return nil
}

// readLines reads the non-blank lines of the named file, or of stdin if the
// name is "-".
func readLines(name string, stdin io.Reader) ([]string, error) {
	in := stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		in = f
	}
	var lines []string
	sc := session.NewScanner(in)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return lines, nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
