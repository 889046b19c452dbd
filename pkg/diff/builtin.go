package diff

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/fastidious/pkg/errors"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Builtin compares files in process with a line-level diff. Its output
// lists removed candidate lines with "-" and destination lines with "+".
type Builtin struct{}

// Compare implements Comparator
func (Builtin) Compare(_ context.Context, candidate, dest string) (bool, []byte, error) {
	a, err := os.ReadFile(candidate)
	if err != nil {
		return false, nil, errors.Wrapf(err, errors.ErrDiffFailed, "cannot read %s", candidate)
	}
	b, err := os.ReadFile(dest)
	if err != nil {
		return false, nil, errors.Wrapf(err, errors.ErrDiffFailed, "cannot read %s", dest)
	}
	if bytes.Equal(a, b) {
		return false, nil, nil
	}
	return true, []byte(LineDiff(candidate, dest, string(a), string(b))), nil
}

// LineDiff renders the line differences between two texts
func LineDiff(nameA, nameB, a, b string) string {
	dmp := diffmatchpatch.New()
	charsA, charsB, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(charsA, charsB, false), lines)

	var out strings.Builder
	fmt.Fprintf(&out, "--- %s\n+++ %s\n", nameA, nameB)
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, line := range splitLines(d.Text) {
			out.WriteString(prefix)
			out.WriteString(line)
			out.WriteString("\n")
		}
	}
	return out.String()
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
