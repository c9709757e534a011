// Package cmd implements the bank command line.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/d-kuro/bank/internal/batch"
	"github.com/d-kuro/bank/internal/config"
	"github.com/d-kuro/bank/internal/detect"
	"github.com/d-kuro/bank/internal/errors"
	"github.com/d-kuro/bank/internal/fsops"
	"github.com/d-kuro/bank/internal/logging"
	"github.com/d-kuro/bank/internal/prompt"
	"github.com/d-kuro/bank/internal/security"
	"github.com/d-kuro/bank/internal/timestamp"
	"github.com/d-kuro/bank/pkg/version"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// rootFlags holds the flags for the root command
type rootFlags struct {
	directory     bool
	file          bool
	parents       bool
	mode          string
	interactive   bool
	verbose       bool
	noCreate      bool
	date          string
	stamp         string
	reference     string
	atimeOnly     bool
	mtimeOnly     bool
	noDereference bool
	configPath    string
	logLevel      string
	version       bool
	json          bool
}

// exitError carries the process exit code. reported means the details were
// already printed per path.
type exitError struct {
	code     int
	err      error
	reported bool
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// Execute runs bank with the process arguments and returns the exit code.
func Execute() int {
	return Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, time.Now())
}

// Run executes the command with explicit streams and invocation time.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer, now time.Time) int {
	if args == nil {
		// cobra falls back to os.Args on nil
		args = []string{}
	}
	cmd := NewRootCmd(now)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitOK
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		if !exitErr.reported {
			printError(stderr, exitErr.err)
		}
		return exitErr.code
	}

	// Flag parsing errors from cobra.
	printError(stderr, err)
	fmt.Fprintln(stderr, "Run 'bank --help' for usage.")
	return ExitUsage
}

// NewRootCmd creates the root command. now is the invocation time used for
// every "current time" decision.
func NewRootCmd(now time.Time) *cobra.Command {
	opts := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "bank [flags] PATH...",
		Short: "Create files and directories, and set their timestamps",
		Long: `bank combines mkdir and touch. Each PATH is created as a directory or a
file: explicit -d/-f wins, then an existing entry keeps its type, then a
trailing separator means directory and an extension means file. Anything
else is a file unless --interactive asks.

Timestamps come from --date, --timestamp or --reference, or the current
time, and are applied to every PATH.`,
		Example: `  bank notes.txt src/ build/cache/
  bank -d -p a/b/c
  bank -t 202312251530 -a report.pdf
  bank -c -r template.txt *.txt`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args, now)
		},
	}

	bindFlags(cmd.Flags(), opts)
	return cmd
}

func bindFlags(flags *pflag.FlagSet, opts *rootFlags) {
	flags.BoolVarP(&opts.directory, "directory", "d", false, "Force creation as directory (mkdir mode)")
	flags.BoolVarP(&opts.file, "file", "f", false, "Force creation as file (touch mode)")
	flags.BoolVarP(&opts.parents, "parents", "p", false, "Create parent directories as needed")
	flags.StringVarP(&opts.mode, "mode", "m", "", "Set file/directory permissions (octal, e.g. 755)")
	flags.BoolVarP(&opts.interactive, "interactive", "i", false, "Ask what ambiguous paths should be")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Print per-path status")
	flags.BoolVarP(&opts.noCreate, "no-create", "c", false, "Do not create anything, only update timestamps of existing paths")
	flags.StringVar(&opts.date, "date", "", "Parse `STRING` and use it instead of the current time")
	flags.StringVarP(&opts.stamp, "timestamp", "t", "", "Use `STAMP` in [[CC]YY]MMDDhhmm[.ss] format instead of the current time")
	flags.StringVarP(&opts.reference, "reference", "r", "", "Use the times of `FILE` instead of the current time")
	flags.BoolVarP(&opts.atimeOnly, "atime", "a", false, "Change only the access time")
	flags.BoolVar(&opts.mtimeOnly, "mtime", false, "Change only the modification time")
	flags.BoolVar(&opts.noDereference, "no-dereference", false, "Affect symbolic links instead of referenced files")
	flags.StringVar(&opts.configPath, "config", "", "Configuration `FILE` (default $BANK_CONFIG or the user config dir)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.BoolVar(&opts.version, "version", false, "Print version information and exit")
	flags.BoolVar(&opts.json, "json", false, "With --version, print version information as JSON")
}

func run(cmd *cobra.Command, opts *rootFlags, args []string, now time.Time) error {
	if opts.version {
		return writeVersion(cmd.OutOrStdout(), opts.json)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return &exitError{code: ExitUsage, err: err}
	}
	applyConfig(cmd.Flags(), opts, cfg)

	logger, err := newLogger(cmd.ErrOrStderr(), opts.logLevel, cfg.LogLevel)
	if err != nil {
		return &exitError{code: ExitUsage, err: err}
	}

	batchOpts, validator, spec, err := prepare(cmd.Flags(), opts, args, cfg)
	if err != nil {
		return &exitError{code: ExitUsage, err: err}
	}

	ops := fsops.NewFileOps(validator)
	timeResolver := timestamp.NewResolver(now, func(path string) (time.Time, time.Time, error) {
		return ops.StatTimes(path, true)
	})
	times, err := timeResolver.Resolve(spec)
	if err != nil {
		code := ExitFailure
		if errors.Is(err, errors.ErrParse) || errors.Is(err, errors.ErrConfiguration) {
			code = ExitUsage
		}
		return &exitError{code: code, err: err}
	}
	batchOpts.Times = times.Restrict(opts.atimeOnly, opts.mtimeOnly)

	logger.Debug("resolved timestamps",
		slog.String("source", spec.Kind.String()),
		slog.Time("atime", batchOpts.Times.Access),
		slog.Time("mtime", batchOpts.Times.Modify))

	lookup := os.Stat
	if opts.noDereference {
		lookup = os.Lstat
	}
	typeResolver := detect.NewResolver(lookup, newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr()))

	reporter := batch.NewReporter(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts.verbose, len(args))
	reporter.Banner(version.Version, len(args))

	dispatcher := batch.NewDispatcher(ops, typeResolver, batchOpts, logger, reporter)
	results := dispatcher.Run(args)

	if failed := batch.Failed(results); failed > 0 {
		logger.Info("finished with failures", slog.Int("failed", failed), slog.Int("total", len(results)))
		return &exitError{
			code:     ExitFailure,
			err:      errors.New("%d of %d paths failed", failed, len(results)),
			reported: true,
		}
	}
	logger.Info("finished", slog.Int("total", len(results)))
	return nil
}

// applyConfig fills options the user did not set on the command line.
func applyConfig(flags *pflag.FlagSet, opts *rootFlags, cfg *config.Config) {
	if !flags.Changed("parents") {
		opts.parents = cfg.Parents
	}
	if !flags.Changed("verbose") {
		opts.verbose = cfg.Verbose
	}
	if !flags.Changed("mode") {
		opts.mode = cfg.Mode
	}

	switch cfg.Color {
	case config.ColorAlways:
		color.NoColor = false
	case config.ColorNever:
		color.NoColor = true
	}
}

func newLogger(w io.Writer, flagLevel, cfgLevel string) (*logging.Logger, error) {
	level := cfgLevel
	if flagLevel != "" {
		if _, ok := logging.ParseLevel(flagLevel); !ok {
			return nil, errors.Configuration("invalid --log-level %q", flagLevel)
		}
		level = flagLevel
	}
	return logging.NewLoggerTo(w, level), nil
}

// prepare validates everything that can be checked before touching the
// filesystem.
func prepare(flags *pflag.FlagSet, opts *rootFlags, args []string, cfg *config.Config) (batch.Options, security.Validator, timestamp.Spec, error) {
	var none timestamp.Spec

	if len(args) == 0 {
		return batch.Options{}, nil, none, errors.Configuration("at least one PATH is required")
	}

	typeFlags := detect.Flags{File: opts.file, Directory: opts.directory, Interactive: opts.interactive}
	if err := typeFlags.Validate(); err != nil {
		return batch.Options{}, nil, none, err
	}

	for _, name := range []string{"date", "timestamp", "reference"} {
		if flags.Changed(name) && flags.Lookup(name).Value.String() == "" {
			return batch.Options{}, nil, none, errors.Parse("--%s requires a non-empty value", name)
		}
	}
	spec, err := timestamp.NewSpec(opts.date, opts.stamp, opts.reference)
	if err != nil {
		return batch.Options{}, nil, none, err
	}

	var mode *os.FileMode
	if opts.mode != "" {
		m, err := fsops.ParseMode(opts.mode)
		if err != nil {
			return batch.Options{}, nil, none, err
		}
		mode = &m
	}

	validator := security.NewDefaultValidator().WithProtectedPaths(cfg.ProtectedPaths)
	for _, arg := range args {
		if _, err := validator.SanitizePath(arg); err != nil {
			return batch.Options{}, nil, none, err
		}
	}

	return batch.Options{
		Flags:         typeFlags,
		Parents:       opts.parents,
		Mode:          mode,
		NoCreate:      opts.noCreate,
		NoDereference: opts.noDereference,
	}, validator, spec, nil
}

func newPrompter(in io.Reader, out io.Writer) detect.Prompter {
	if f, ok := in.(*os.File); ok {
		return prompt.NewTerminal(f, out)
	}
	return prompt.NewReaderPrompter(in, out)
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("bank:"), err)
}
