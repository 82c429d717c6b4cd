package main

import (
	"errors"
	"io"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jcorbin/goforth/internal/fileinput"
	"github.com/jcorbin/goforth/internal/logio"
)

var errLinesFailed = errors.New("some lines failed")

// loggedError has already been reported to the user.
type loggedError struct{ error }

func (le loggedError) Unwrap() error { return le.error }

func main() {
	var log logio.Logger
	log.SetOutput(nopCloser{os.Stderr})
	execute(newRootCmd(&log), &log)
	os.Exit(log.ExitCode())
}

// execute runs cmd, logging any error that it has not already reported.
func execute(cmd *cobra.Command, log *logio.Logger) {
	if err := cmd.Execute(); err != nil {
		var logged loggedError
		if !errors.As(err, &logged) {
			log.Errorf("%v", err)
		}
	}
}

type cliFlags struct {
	configFile     string
	trace          string
	color          string
	maxDepth       int
	dynamicControl bool
	prelude        bool
	dump           bool
}

func newRootCmd(log *logio.Logger) *cobra.Command {
	var flags cliFlags
	cmd := &cobra.Command{
		Use:   "goforth [file]",
		Short: "A small Forth interpreter",
		Long: `goforth interprets a small Forth dialect: 32-bit integers on a data
stack, user defined words compiled with : and ; and if/else/then and do/loop
control. Given a file it runs it line by line; otherwise it reads standard
input, interactively when that is a terminal.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.SetOutput(nopCloser{cmd.ErrOrStderr()})
			cfg, err := flags.resolve(cmd)
			if err != nil {
				log.Errorf("%v", err)
				return loggedError{err}
			}
			log.SetColor(useColor(cfg.Color, cmd.ErrOrStderr()))
			return runMain(cmd, cfg, args, log)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&flags.configFile, "config", "", "read settings from a TOML file")
	fs.StringVar(&flags.trace, "trace", "Error", "trace level [Debug|Info|Error]; Debug traces every executed word")
	fs.StringVar(&flags.color, "color", "auto", "colorize output (auto|on|off)")
	fs.IntVar(&flags.maxDepth, "max-depth", defaultConfig().MaxDepth, "limit nested calls, 0 for no limit")
	fs.BoolVar(&flags.dynamicControl, "dynamic-control", false, "execute if/else/then by scanning at runtime rather than compiling them to branches")
	fs.BoolVar(&flags.prelude, "prelude", true, "define the prelude words at startup")
	fs.BoolVar(&flags.dump, "dump", false, "dump machine state and dictionary when done")
	return cmd
}

// resolve layers defaults, then any config file, then explicitly set flags.
func (flags cliFlags) resolve(cmd *cobra.Command) (config, error) {
	cfg := defaultConfig()
	if flags.configFile != "" {
		if err := cfg.decodeFile(flags.configFile); err != nil {
			return cfg, err
		}
	}
	fs := cmd.Flags()
	if fs.Changed("trace") {
		cfg.Trace = flags.trace
	}
	if fs.Changed("color") {
		cfg.Color = flags.color
	}
	if fs.Changed("max-depth") {
		cfg.MaxDepth = flags.maxDepth
	}
	if fs.Changed("dynamic-control") {
		cfg.DynamicControl = flags.dynamicControl
	}
	if fs.Changed("prelude") {
		cfg.Prelude = flags.prelude
	}
	if fs.Changed("dump") {
		cfg.Dump = flags.dump
	}
	return cfg, cfg.validate()
}

func runMain(cmd *cobra.Command, cfg config, args []string, log *logio.Logger) error {
	stdin, stdout, stderr := cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()

	tracer := gologadapter.New()
	tracer.SetTraceLevel(tracing.TraceLevelFromString(cfg.Trace))
	opts := cfg.vmOptions()
	if tracer.GetTraceLevel() == tracing.LevelDebug {
		opts = append(opts, WithLogf(tracer.Debugf))
	}

	run := newLineRunner(stdout, useColor(cfg.Color, stdout), opts...)
	defer func() {
		if cfg.Dump {
			vmDumper{
				vm:       run.vm,
				out:      stderr,
				builtins: tracer.GetTraceLevel() == tracing.LevelDebug,
			}.dump()
		}
	}()

	var sources []io.Reader
	var closers []io.Closer
	defer func() {
		for _, c := range closers {
			log.ErrorIf(c.Close())
		}
	}()
	for _, name := range append(cfg.Load, args...) {
		f, err := os.Open(name)
		if err != nil {
			log.Errorf("%v", err)
			return loggedError{err}
		}
		closers = append(closers, f)
		sources = append(sources, f)
	}

	run.failf = log.Leveledf("WARN")
	switch {
	case len(args) > 0:
		if err := run.runInput(&fileinput.Input{Queue: sources}); err != nil {
			log.Errorf("%v", err)
			return loggedError{err}
		}

	default:
		if len(sources) > 0 {
			if err := run.runInput(&fileinput.Input{Queue: sources}); err != nil {
				log.Errorf("%v", err)
				return loggedError{err}
			}
		}
		if f, isFile := stdin.(*os.File); isFile && term.IsTerminal(int(f.Fd())) {
			run.failf = nil
			return runInteractive(run, cfg, log)
		}
		if err := runStream(run, "<stdin>", stdin); err != nil {
			log.Errorf("%v", err)
			return loggedError{err}
		}
	}

	if run.vm.Compiling() {
		log.Printf("WARN", "unterminated definition at end of input")
	}
	if run.failures > 0 {
		log.Errorf("%v of %v lines failed", run.failures, run.lines)
		return loggedError{errLinesFailed}
	}
	return nil
}

func runInteractive(run *lineRunner, cfg config, log *logio.Logger) error {
	r, err := newREPL(run, cfg)
	if err != nil {
		log.Errorf("%v", err)
		return loggedError{err}
	}
	defer r.Close()
	r.banner()
	if err := r.loop(); err != nil {
		log.Errorf("%v", err)
		return loggedError{err}
	}
	return nil
}

func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	}
	f, isFile := w.(*os.File)
	return isFile && term.IsTerminal(int(f.Fd()))
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
