package errors

import (
	"io/fs"
	"os"
	"strings"
	"syscall"
	"testing"
)

func TestKindConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
		msg  string
	}{
		{"configuration", Configuration("cannot specify both %s and %s", "-f", "-d"), ErrConfiguration, "cannot specify both -f and -d"},
		{"parse", Parse("invalid stamp %q", "12"), ErrParse, `invalid stamp "12"`},
		{"not found", NotFound("reference file does not exist: %s", "ref"), ErrNotFound, "reference file does not exist: ref"},
		{"permission", Permission("protected"), ErrPermission, "protected"},
		{"io", IO("path exists but is not a directory: %s", "x"), ErrIO, "path exists but is not a directory: x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !Is(tt.err, tt.kind) {
				t.Errorf("expected %v to wrap %v", tt.err, tt.kind)
			}
			if tt.err.Error() != tt.msg {
				t.Errorf("expected message %q, got %q", tt.msg, tt.err.Error())
			}
			if KindOf(tt.err) != tt.kind {
				t.Errorf("expected KindOf to return %v, got %v", tt.kind, KindOf(tt.err))
			}
		})
	}
}

func TestWithCauseKeepsChain(t *testing.T) {
	cause := &fs.PathError{Op: "open", Path: "x", Err: syscall.ENOENT}
	err := IOWithCause(cause, "failed to create file %s", "x")

	if !Is(err, ErrIO) {
		t.Error("expected IO kind")
	}
	if !Is(err, fs.ErrNotExist) {
		t.Error("expected cause to stay in the chain")
	}
	if !strings.HasPrefix(err.Error(), "failed to create file x: ") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"permission", &fs.PathError{Op: "mkdir", Path: "/x", Err: syscall.EACCES}, ErrPermission},
		{"not exist", &fs.PathError{Op: "stat", Path: "/x", Err: syscall.ENOENT}, ErrNotFound},
		{"other", &fs.PathError{Op: "mkdir", Path: "/x", Err: syscall.ENOSPC}, ErrIO},
		{"already kinded", Parse("bad"), ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify(tt.err, "operation on %s", "/x")
			if KindOf(err) != tt.kind {
				t.Errorf("expected kind %v, got %v", tt.kind, KindOf(err))
			}
			if !strings.HasPrefix(err.Error(), "operation on /x: ") {
				t.Errorf("unexpected message: %s", err.Error())
			}
		})
	}

	if Classify(nil, "nothing") != nil {
		t.Error("expected nil for nil error")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("expected nil when wrapping nil")
	}

	err := Wrap(os.ErrExist, "creating %s", "a")
	if !Is(err, os.ErrExist) {
		t.Error("expected wrapped error in chain")
	}
	if err.Error() != "creating a: file already exists" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
