// Package batch applies the requested action to every target path and
// collects one Result per path.
package batch

import (
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/d-kuro/bank/internal/detect"
	"github.com/d-kuro/bank/internal/errors"
	"github.com/d-kuro/bank/internal/fsops"
	"github.com/d-kuro/bank/internal/logging"
	"github.com/d-kuro/bank/internal/timestamp"
)

// Status is the outcome of processing one path.
type Status string

const (
	StatusCreated Status = "created"
	StatusUpdated Status = "updated"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Result is the outcome for a single path.
type Result struct {
	Path   string
	Kind   detect.Kind
	Status Status
	Err    error
}

// Options are the per-invocation settings shared by all paths.
type Options struct {
	Flags         detect.Flags
	Parents       bool
	Mode          *os.FileMode
	NoCreate      bool
	NoDereference bool
	// Times are applied to every target; zero fields keep the current value.
	Times timestamp.Times
}

// Dispatcher processes paths sequentially.
type Dispatcher struct {
	ops      *fsops.FileOps
	resolver *detect.Resolver
	opts     Options
	logger   *logging.Logger
	reporter *Reporter
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(ops *fsops.FileOps, resolver *detect.Resolver, opts Options, logger *logging.Logger, reporter *Reporter) *Dispatcher {
	if logger == nil {
		logger = logging.Discard()
	}
	if reporter == nil {
		reporter = NewReporter(io.Discard, io.Discard, false, 0)
	}
	return &Dispatcher{
		ops:      ops,
		resolver: resolver,
		opts:     opts,
		logger:   logger,
		reporter: reporter,
	}
}

// Run processes paths in order. A failing path never stops the others.
func (d *Dispatcher) Run(paths []string) []Result {
	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		result := d.process(path)
		if result.Err != nil {
			result.Status = StatusFailed
			d.logger.WithPath(path).Debug("path failed", slog.Any("error", result.Err))
			d.reporter.Failed(path, result.Err)
		}
		results = append(results, result)
	}
	return results
}

func (d *Dispatcher) process(path string) Result {
	log := d.logger.WithPath(path)
	follow := !d.opts.NoDereference
	result := Result{Path: path}

	if _, err := d.ops.ValidateAndSanitizePath(path); err != nil {
		result.Err = err
		return result
	}

	if d.opts.NoCreate {
		return d.touchExisting(path, log)
	}

	kind, rule, err := d.resolver.Resolve(path, d.opts.Flags)
	if err != nil {
		result.Err = err
		return result
	}
	result.Kind = kind
	log.Debug("resolved type", slog.String("type", kind.String()), slog.String("rule", string(rule)))
	d.reporter.Creating(path, kind)

	if d.opts.Parents {
		parent, err := d.ops.EnsureParent(path)
		if err != nil {
			result.Err = err
			return result
		}
		if parent != "" {
			log.Debug("created parent directories", slog.String("parent", parent))
			d.reporter.ParentsCreated(parent)
		}
	}

	var created bool
	switch kind {
	case detect.Directory:
		created, err = d.ops.CreateDir(path, d.opts.Parents)
		if err != nil {
			result.Err = err
			return result
		}
		if !created {
			d.reporter.AlreadyExists(path, kind)
		}
		if d.opts.Mode != nil {
			if err := d.chmod(path, *d.opts.Mode, log); err != nil {
				result.Err = err
				return result
			}
		}
	default:
		created, err = d.ops.CreateFile(path, follow)
		if err != nil {
			result.Err = err
			return result
		}
		if !created {
			d.reporter.AlreadyExists(path, kind)
		}
		if created && d.opts.Mode != nil {
			if err := d.chmod(path, *d.opts.Mode, log); err != nil {
				result.Err = err
				return result
			}
		}
	}
	log.Debug("create finished", slog.Bool("created", created))

	if err := d.setTimes(path, follow, log); err != nil {
		result.Err = err
		return result
	}

	result.Status = StatusUpdated
	if created {
		result.Status = StatusCreated
	}
	d.reporter.Done(path, result.Status)
	return result
}

// touchExisting handles --no-create: timestamps of an existing path are
// updated and a missing path is skipped.
func (d *Dispatcher) touchExisting(path string, log *logging.Logger) Result {
	follow := !d.opts.NoDereference
	result := Result{Path: path}

	info, err := d.ops.Lookup(path, follow)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			result.Err = errors.Classify(err, "failed to stat %s", path)
			return result
		}
		log.Debug("skipping missing path in no-create mode")
		result.Status = StatusSkipped
		d.reporter.Skipped(path)
		return result
	}
	if info.IsDir() {
		result.Kind = detect.Directory
	}

	if err := d.setTimes(path, follow, log); err != nil {
		result.Err = err
		return result
	}
	result.Status = StatusUpdated
	d.reporter.Done(path, result.Status)
	return result
}

func (d *Dispatcher) chmod(path string, mode os.FileMode, log *logging.Logger) error {
	if err := d.ops.Chmod(path, mode); err != nil {
		return err
	}
	log.Debug("set permissions", slog.String("mode", fsops.FormatMode(mode)))
	d.reporter.PermissionsSet(path, fsops.FormatMode(mode))
	return nil
}

func (d *Dispatcher) setTimes(path string, follow bool, log *logging.Logger) error {
	times := d.opts.Times
	if err := d.ops.SetTimes(path, times.Access, times.Modify, follow); err != nil {
		return err
	}
	log.Debug("set timestamps",
		slog.Time("atime", times.Access),
		slog.Time("mtime", times.Modify),
		slog.Bool("follow", follow))
	return nil
}

// Failed counts the failed results.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Status == StatusFailed {
			n++
		}
	}
	return n
}
