// Package prompt asks the operator single-character questions.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/arthur-debert/fastidious/pkg/errors"
	"github.com/arthur-debert/fastidious/pkg/logging"
)

// Prompter asks a question and returns the first character of the answer
type Prompter interface {
	Ask(question string) (rune, error)
}

// Console reads answers from a terminal, one line per answer
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole creates a prompter on in and out
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// Stdio creates a prompter on the process's standard input and error
func Stdio() *Console {
	return NewConsole(os.Stdin, os.Stderr)
}

// Ask prints question and blocks until a non-blank line is read. It returns
// the line's first non-space character. End of input is a USER_INPUT error.
func (c *Console) Ask(question string) (rune, error) {
	for {
		fmt.Fprintf(c.out, "%s ", question)

		line, err := c.in.ReadString('\n')
		answer := strings.TrimLeftFunc(line, unicode.IsSpace)
		if answer != "" {
			r, _ := utf8.DecodeRuneInString(answer)
			return r, nil
		}
		if err != nil {
			if err == io.EOF {
				return 0, errors.New(errors.ErrUserInput, "no answer: end of input")
			}
			return 0, errors.Wrap(err, errors.ErrUserInput, "failed to read answer")
		}
	}
}

// Choose asks until the answer is one of the characters in accepted.
// Matching is case-sensitive.
func Choose(p Prompter, question, accepted string) (rune, error) {
	logger := logging.GetLogger("prompt")
	for {
		r, err := p.Ask(question)
		if err != nil {
			return 0, err
		}
		if strings.ContainsRune(accepted, r) {
			return r, nil
		}
		logger.Debug().Str("answer", string(r)).Str("accepted", accepted).Msg("unrecognized answer, asking again")
	}
}

// Confirm asks a y/n question
func Confirm(p Prompter, question string) (bool, error) {
	r, err := Choose(p, question+" [y/n]", "yn")
	if err != nil {
		return false, err
	}
	return r == 'y', nil
}
