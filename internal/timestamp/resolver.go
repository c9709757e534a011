package timestamp

import (
	"io/fs"
	"time"

	"github.com/d-kuro/bank/internal/errors"
)

// Times is an (access, modification) pair. A zero field means "keep the
// target's current value" when applied.
type Times struct {
	Access time.Time
	Modify time.Time
}

// Restrict keeps only the fields selected by --atime and --mtime. Selecting
// both is the same as selecting neither.
func (t Times) Restrict(atimeOnly, mtimeOnly bool) Times {
	switch {
	case atimeOnly == mtimeOnly:
		return t
	case atimeOnly:
		return Times{Access: t.Access}
	default:
		return Times{Modify: t.Modify}
	}
}

// StatFunc reads the access and modification times of a file.
type StatFunc func(path string) (atime, mtime time.Time, err error)

// Resolver turns a Spec into concrete times.
type Resolver struct {
	// Now is the invocation time, captured once per run.
	Now time.Time
	// Location is used for date and stamp strings without a zone.
	Location *time.Location
	// Stat reads reference file times.
	Stat StatFunc
}

// NewResolver creates a resolver interpreting strings in the local zone.
func NewResolver(now time.Time, stat StatFunc) *Resolver {
	return &Resolver{
		Now:      now,
		Location: time.Local,
		Stat:     stat,
	}
}

// Resolve computes the times described by spec.
func (r *Resolver) Resolve(spec Spec) (Times, error) {
	loc := r.Location
	if loc == nil {
		loc = time.Local
	}

	switch spec.Kind {
	case Unset, Now:
		return Times{Access: r.Now, Modify: r.Now}, nil
	case Date:
		t, err := ParseDate(spec.Value, loc)
		if err != nil {
			return Times{}, err
		}
		return Times{Access: t, Modify: t}, nil
	case Stamp:
		t, err := ParseStamp(spec.Value, r.Now, loc)
		if err != nil {
			return Times{}, err
		}
		return Times{Access: t, Modify: t}, nil
	case Reference:
		return r.reference(spec.Value)
	default:
		return Times{}, errors.Configuration("unknown time source %d", int(spec.Kind))
	}
}

func (r *Resolver) reference(path string) (Times, error) {
	if r.Stat == nil {
		return Times{}, errors.Configuration("no stat function to read reference file %s", path)
	}
	atime, mtime, err := r.Stat(path)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return Times{}, errors.NotFound("reference file does not exist: %s", path)
		}
		return Times{}, errors.Wrap(err, "failed to read reference file %s", path)
	}
	return Times{Access: atime, Modify: mtime}, nil
}
