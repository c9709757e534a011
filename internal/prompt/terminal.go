// Package prompt asks the user on the terminal what an ambiguous path should be.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/d-kuro/bank/internal/detect"
	"github.com/d-kuro/bank/internal/errors"
)

// Terminal implements detect.Prompter on a line-oriented terminal.
type Terminal struct {
	reader     *bufio.Reader
	out        io.Writer
	isTerminal func() bool
}

// NewTerminal creates a prompter reading answers from in and writing
// questions to out. Prompting fails when in is not a terminal.
func NewTerminal(in *os.File, out io.Writer) *Terminal {
	return &Terminal{
		reader:     bufio.NewReader(in),
		out:        out,
		isTerminal: func() bool { return term.IsTerminal(int(in.Fd())) },
	}
}

// NewReaderPrompter creates a prompter over an arbitrary reader, which is
// always treated as interactive.
func NewReaderPrompter(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		reader:     bufio.NewReader(in),
		out:        out,
		isTerminal: func() bool { return true },
	}
}

// Choose asks until it gets a valid answer. An empty answer means File.
func (t *Terminal) Choose(path string) (detect.Kind, error) {
	if !t.isTerminal() {
		return detect.File, errors.NotFound("cannot ask what %s should be: standard input is not a terminal", path)
	}

	question := fmt.Sprintf("%s What should '%s' be? [F]ile/[d]irectory: ", color.GreenString("?"), path)

	for {
		fmt.Fprint(t.out, question)

		line, err := t.reader.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			fmt.Fprintln(t.out)
			return detect.File, errors.IOWithCause(err, "no answer for %s", path)
		}

		if kind, ok := parseAnswer(line); ok {
			return kind, nil
		}
		fmt.Fprintln(t.out, color.YellowString("Invalid input! Choose 'f' for file or 'd' for directory"))
		if err == io.EOF {
			return detect.File, errors.IOWithCause(err, "no answer for %s", path)
		}
	}
}

func parseAnswer(line string) (detect.Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "f", "file":
		return detect.File, true
	case "d", "dir", "directory":
		return detect.Directory, true
	default:
		return detect.File, false
	}
}
