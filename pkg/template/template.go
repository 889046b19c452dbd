// Package template renders @@key@@ templates.
//
// Rendering is line oriented. On each line only the first placeholder is
// substituted; a second placeholder on the same line is copied through
// untouched. Every output line ends with exactly one "\n", including a
// final line that had none in the source.
//
// A key is made of letters, digits, '.', '_' and '-'. "@@" pairs enclosing
// anything else are plain text, so in "a@@x y@@z@@" the placeholder is
// @@z@@.
package template

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/arthur-debert/fastidious/pkg/errors"
	"github.com/arthur-debert/fastidious/pkg/types"
)

// Delimiter opens and closes a placeholder
const Delimiter = "@@"

var placeholder = regexp.MustCompile(`@@([A-Za-z0-9_.\-]*)@@`)

// Match is the first placeholder found on a line
type Match struct {
	Prefix string
	Key    string
	Suffix string
}

// MatchLine finds the first placeholder in line
func MatchLine(line string) (Match, bool) {
	loc := placeholder.FindStringSubmatchIndex(line)
	if loc == nil {
		return Match{}, false
	}
	return Match{
		Prefix: line[:loc[0]],
		Key:    line[loc[2]:loc[3]],
		Suffix: line[loc[1]:],
	}, true
}

// Substitute replaces the first placeholder in s with its value from vars.
// Strings without a placeholder are returned unchanged.
func Substitute(vars types.Vars, s string) (string, error) {
	m, ok := MatchLine(s)
	if !ok {
		return s, nil
	}
	value, ok := vars.Lookup(m.Key)
	if !ok {
		return "", errors.VarNotFound(m.Key)
	}
	return m.Prefix + value + m.Suffix, nil
}

// RenderLine renders one line (without its terminator) and appends "\n"
func RenderLine(vars types.Vars, line string) (string, error) {
	out, err := Substitute(vars, line)
	if err != nil {
		return "", err
	}
	return out + "\n", nil
}

// RenderTo streams src to w line by line. It stops at the first unresolved
// placeholder; whatever was already written to w is then incomplete.
func RenderTo(vars types.Vars, src io.Reader, w io.Writer) error {
	reader := bufio.NewReader(src)
	lineNo := 0
	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return errors.Wrap(readErr, errors.ErrFileRead, "failed to read template")
		}
		if line == "" && readErr == io.EOF {
			return nil
		}
		lineNo++

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		rendered, err := RenderLine(vars, line)
		if err != nil {
			if e, ok := err.(*errors.Error); ok {
				e.WithDetail("line", lineNo)
			}
			return err
		}
		if _, err := io.WriteString(w, rendered); err != nil {
			return errors.Wrap(err, errors.ErrFileWrite, "failed to write rendered line")
		}

		if readErr == io.EOF {
			return nil
		}
	}
}

// RenderString renders a whole template held in memory
func RenderString(vars types.Vars, src string) (string, error) {
	var b strings.Builder
	if err := RenderTo(vars, strings.NewReader(src), &b); err != nil {
		return "", err
	}
	return b.String(), nil
}
