// Package detect decides whether a target path is a file or a directory.
package detect

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/d-kuro/bank/internal/errors"
)

// Kind is the type a target is created as.
type Kind int

const (
	File Kind = iota
	Directory
)

func (k Kind) String() string {
	if k == Directory {
		return "directory"
	}
	return "file"
}

// Rule names the step that decided a Kind.
type Rule string

const (
	RuleExplicit  Rule = "explicit"
	RuleExisting  Rule = "existing"
	RuleSeparator Rule = "trailing-separator"
	RuleExtension Rule = "extension"
	RulePrompt    Rule = "prompt"
	RuleDefault   Rule = "default"
)

// Flags are the type-related command-line options.
type Flags struct {
	File        bool
	Directory   bool
	Interactive bool
}

// Validate reports a configuration error when both -f and -d are set.
func (f Flags) Validate() error {
	if f.File && f.Directory {
		return errors.Configuration("cannot specify both --directory and --file flags")
	}
	return nil
}

// Prompter asks the user what an ambiguous path should be.
type Prompter interface {
	Choose(path string) (Kind, error)
}

// LookupFunc stats a path; os.Stat and os.Lstat both fit.
type LookupFunc func(path string) (fs.FileInfo, error)

// Resolver applies the type heuristics.
type Resolver struct {
	lookup   LookupFunc
	prompter Prompter
}

// NewResolver creates a resolver. A nil lookup defaults to os.Stat; a nil
// prompter makes interactive resolution fail.
func NewResolver(lookup LookupFunc, prompter Prompter) *Resolver {
	if lookup == nil {
		lookup = os.Stat
	}
	return &Resolver{lookup: lookup, prompter: prompter}
}

// Resolve decides the Kind of path. The first matching rule wins:
// explicit flag, existing entry, trailing separator, extension, prompt,
// then File.
func (r *Resolver) Resolve(path string, flags Flags) (Kind, Rule, error) {
	if err := flags.Validate(); err != nil {
		return File, "", err
	}

	switch {
	case flags.Directory:
		return Directory, RuleExplicit, nil
	case flags.File:
		return File, RuleExplicit, nil
	}

	info, err := r.lookup(path)
	if err == nil {
		if info.IsDir() {
			return Directory, RuleExisting, nil
		}
		return File, RuleExisting, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return File, "", errors.Classify(err, "failed to stat %s", path)
	}

	if HasTrailingSeparator(path) {
		return Directory, RuleSeparator, nil
	}
	if HasExtension(path) {
		return File, RuleExtension, nil
	}

	if flags.Interactive {
		if r.prompter == nil {
			return File, "", errors.NotFound("no prompt available to decide the type of %s", path)
		}
		kind, err := r.prompter.Choose(path)
		if err != nil {
			return File, "", err
		}
		return kind, RulePrompt, nil
	}

	return File, RuleDefault, nil
}

// HasTrailingSeparator reports whether path ends with a path separator.
func HasTrailingSeparator(path string) bool {
	return strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator))
}

// HasExtension reports whether the final segment of path has a non-empty
// extension. Dotfiles such as ".bashrc" and names ending in "." have none.
func HasExtension(path string) bool {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return ext != "" && ext != "." && ext != base
}
