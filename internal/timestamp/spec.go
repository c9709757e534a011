// Package timestamp resolves the access and modification times applied to
// each target from the --date, --timestamp and --reference options.
package timestamp

import (
	"strings"

	"github.com/d-kuro/bank/internal/errors"
)

// Kind identifies where the timestamps come from.
type Kind int

const (
	// Unset means no source was given; the captured invocation time is used.
	Unset Kind = iota
	// Now is an explicit request for the invocation time (--date now).
	Now
	// Date is a free-form date string (--date).
	Date
	// Stamp is a [[CC]YY]MMDDhhmm[.ss] string (--timestamp).
	Stamp
	// Reference copies the times of an existing file (--reference).
	Reference
)

func (k Kind) String() string {
	switch k {
	case Unset:
		return "unset"
	case Now:
		return "now"
	case Date:
		return "date"
	case Stamp:
		return "stamp"
	case Reference:
		return "reference"
	default:
		return "unknown"
	}
}

// Spec is a single timestamp source.
type Spec struct {
	Kind  Kind
	Value string
}

// NewSpec builds the Spec for the given option values. Empty values are
// treated as not given; more than one given value is a configuration error.
func NewSpec(date, stamp, reference string) (Spec, error) {
	var given []string
	if date != "" {
		given = append(given, "--date")
	}
	if stamp != "" {
		given = append(given, "--timestamp")
	}
	if reference != "" {
		given = append(given, "--reference")
	}
	if len(given) > 1 {
		return Spec{}, errors.Configuration("cannot specify multiple time sources (%s)", strings.Join(given, ", "))
	}

	switch {
	case date != "":
		if strings.EqualFold(strings.TrimSpace(date), "now") {
			return Spec{Kind: Now, Value: date}, nil
		}
		return Spec{Kind: Date, Value: date}, nil
	case stamp != "":
		return Spec{Kind: Stamp, Value: stamp}, nil
	case reference != "":
		return Spec{Kind: Reference, Value: reference}, nil
	default:
		return Spec{Kind: Unset}, nil
	}
}
