package batch

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/d-kuro/bank/internal/detect"
)

const checkMark = "✓"

// Reporter prints per-path progress. Verbose output and the short
// multi-path summary go to out; failures always go to errOut.
type Reporter struct {
	out     io.Writer
	errOut  io.Writer
	verbose bool
	summary bool

	green  *color.Color
	yellow *color.Color
	cyan   *color.Color
	red    *color.Color
}

// NewReporter creates a reporter for a run over total paths.
func NewReporter(out, errOut io.Writer, verbose bool, total int) *Reporter {
	return &Reporter{
		out:     out,
		errOut:  errOut,
		verbose: verbose,
		summary: total > 1,
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow),
		cyan:    color.New(color.FgCyan),
		red:     color.New(color.FgRed, color.Bold),
	}
}

// Banner prints the program name and the number of paths in verbose mode.
func (r *Reporter) Banner(version string, total int) {
	if !r.verbose {
		return
	}
	fmt.Fprintf(r.out, "%s %s\n", color.New(color.FgHiGreen, color.Bold).Sprint("bank"), r.cyan.Sprint(version))
	if total > 1 {
		fmt.Fprintf(r.out, "Processing %s paths...\n", r.cyan.Sprint(total))
	}
}

// Creating announces the resolved type of a path in verbose mode.
func (r *Reporter) Creating(path string, kind detect.Kind) {
	if r.verbose {
		fmt.Fprintf(r.out, "Creating %s: %s\n", kind, r.yellow.Sprint(path))
	}
}

// AlreadyExists notes that path was already there and was not created.
func (r *Reporter) AlreadyExists(path string, kind detect.Kind) {
	if r.verbose {
		fmt.Fprintf(r.out, "%s already exists: %s\n", capitalize(kind.String()), r.yellow.Sprint(path))
	}
}

// ParentsCreated reports the parent directory created for --parents.
func (r *Reporter) ParentsCreated(dir string) {
	if r.verbose {
		fmt.Fprintf(r.out, "Created parent directories: %s\n", r.green.Sprint(dir))
	}
}

// PermissionsSet reports the mode applied with --mode.
func (r *Reporter) PermissionsSet(path, mode string) {
	if r.verbose {
		fmt.Fprintf(r.out, "Set permissions to %s for %s\n", r.green.Sprint(mode), path)
	}
}

// Skipped reports a missing path ignored under --no-create.
func (r *Reporter) Skipped(path string) {
	if r.verbose {
		fmt.Fprintf(r.out, "Skipping non-existent path in no-create mode: %s\n", r.yellow.Sprint(path))
	}
}

// Done reports a successfully processed path.
func (r *Reporter) Done(path string, status Status) {
	mark := r.green.Sprint(checkMark)
	switch {
	case r.verbose && status == StatusCreated:
		fmt.Fprintf(r.out, "%s Created: %s\n", mark, r.green.Sprint(path))
	case r.verbose:
		fmt.Fprintf(r.out, "%s Updated timestamps: %s\n", mark, r.green.Sprint(path))
	case r.summary:
		fmt.Fprintf(r.out, "%s %s\n", mark, r.green.Sprint(path))
	}
}

// Failed reports a path that could not be processed.
func (r *Reporter) Failed(path string, err error) {
	fmt.Fprintf(r.errOut, "%s %s: %v\n", r.red.Sprint("bank:"), path, err)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
