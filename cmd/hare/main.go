package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"

	"hare/internal/compile"
	"hare/internal/parse"
	"hare/internal/vm"
)

type options struct {
	input     string
	code      string
	noexec    bool
	printcode bool
	run       bool
	trace     bool
	tree      bool
}

func main() {
	var opts options
	flag.StringVar(&opts.input, "i", "", "read program from file")
	flag.StringVar(&opts.code, "c", "", "program text")
	flag.BoolVar(&opts.noexec, "n", false, "parse only and print the program")
	flag.BoolVar(&opts.printcode, "p", false, "print bytecode")
	flag.BoolVar(&opts.run, "r", false, "run bytecode")
	flag.BoolVar(&opts.trace, "x", false, "trace instructions")
	flag.BoolVar(&opts.tree, "t", false, "dump parse tree")
	flag.Parse()

	if flag.NArg() > 0 {
		fatal(fmt.Errorf("unexpected argument %q", flag.Arg(0)))
	}
	s := newSession(opts, os.Stdout, os.Stderr)
	switch {
	case opts.input != "" && opts.code != "":
		fatal(errors.New("-i and -c are mutually exclusive"))
	case opts.code != "":
		if err := s.eval(strings.NewReader(opts.code)); err != nil {
			fatal(err)
		}
	case opts.input != "":
		f, err := os.Open(opts.input)
		if err != nil {
			fatal(err)
		}
		err = s.eval(f)
		f.Close()
		if err != nil {
			fatal(err)
		}
	case term.IsTerminal(int(os.Stdin.Fd())):
		runInteractive(s)
	default:
		if err := s.eval(os.Stdin); err != nil {
			fatal(err)
		}
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

// session carries parser, compiler and machine state across inputs, so
// REPL lines see earlier definitions.
type session struct {
	opts     options
	parser   *parse.Parser
	compiler *compile.Compiler
	runner   *vm.Runner
	stdout   io.Writer
}

func newSession(opts options, stdout, stderr io.Writer) *session {
	p := parse.New()
	if opts.tree {
		p.TreeWriter = stderr
	}
	return &session{
		opts:     opts,
		parser:   p,
		compiler: compile.NewCompiler(),
		runner:   &vm.Runner{Env: vm.NewEnv(nil), Trace: opts.trace, TraceWriter: stderr},
		stdout:   stdout,
	}
}

func (s *session) eval(rd io.Reader) error {
	nodes, err := s.parser.Parse(rd)
	if err != nil {
		return err
	}
	prog := &parse.Program{Nodes: nodes}
	if s.opts.noexec {
		fmt.Fprint(s.stdout, parse.Format(prog))
		return nil
	}
	code, err := s.compiler.Compile(prog)
	if err != nil {
		return err
	}
	if s.opts.printcode || !s.opts.run {
		fmt.Fprint(s.stdout, compile.Dump(code))
	}
	if !s.opts.run {
		return nil
	}
	res, err := s.runner.Run(code)
	if err != nil {
		return err
	}
	for _, v := range res.Stack {
		fmt.Fprintln(s.stdout, v)
	}
	return nil
}

func runInteractive(s *session) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyPath := historyFile()
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = line.ReadHistory(f)
			f.Close()
		}
	}

	for {
		input, err := line.Prompt("hare> ")
		if err == liner.ErrPromptAborted {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			break
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)
		if err := s.eval(strings.NewReader(input + "\n")); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	if historyPath != "" {
		if f, err := os.Create(historyPath); err == nil {
			defer f.Close()
			_, _ = line.WriteHistory(f)
		}
	}
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".hare_history")
}
