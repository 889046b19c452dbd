// Package report announces actions to the operator.
//
// Announcements are the user-facing record of what fastidious did or
// would do: a verb (LIVE, WOULD, SKIPPED, NO CHANGE), an action and the
// command line or path it applies to. Diagnostics go to the logger, never
// through a Reporter.
package report

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/fastidious/pkg/style"
	"github.com/arthur-debert/fastidious/pkg/types"
)

// Reporter receives one call per announced action
type Reporter interface {
	ReportCommand(verb types.Verb, action, cmdline string)
	ReportPath(verb types.Verb, action, path string)
	ReportTemplate(verb types.Verb, action, src, gen, dest string)
	ReportDiff(text []byte)
	ReportResult(result types.ActionResult)
}

// Console writes announcements to w, styled when format is FormatTerminal
type Console struct {
	w      io.Writer
	styled bool
}

// NewConsole creates a console reporter. FormatAuto must be resolved by the
// caller; it is treated as plain text here.
func NewConsole(w io.Writer, format style.Format) *Console {
	return &Console{w: w, styled: format == style.FormatTerminal}
}

func (c *Console) verb(v types.Verb) string {
	label := fmt.Sprintf("%-9s", string(v))
	if !c.styled {
		return label
	}
	return style.VerbStyle(v).Render(label)
}

func (c *Console) code(s string) string {
	if !c.styled {
		return s
	}
	return style.CodeStyle.Render(s)
}

func (c *Console) path(s string) string {
	if !c.styled {
		return s
	}
	return style.PathStyle.Render(s)
}

// ReportCommand announces a command action
func (c *Console) ReportCommand(verb types.Verb, action, cmdline string) {
	fmt.Fprintf(c.w, "%s %s %s\n", c.verb(verb), action, c.code(cmdline))
}

// ReportPath announces an action on a path
func (c *Console) ReportPath(verb types.Verb, action, path string) {
	fmt.Fprintf(c.w, "%s %s %s\n", c.verb(verb), action, c.path(path))
}

// ReportTemplate announces a file materialization
func (c *Console) ReportTemplate(verb types.Verb, action, src, gen, dest string) {
	fmt.Fprintf(c.w, "%s %s %s from %s\n", c.verb(verb), action, c.path(dest), c.path(src))
	if gen != "" && !c.styled {
		fmt.Fprintf(c.w, "          candidate %s\n", gen)
	}
}

// ReportDiff prints diff output, colouring added and removed lines
func (c *Console) ReportDiff(text []byte) {
	if len(text) == 0 {
		return
	}
	if !c.styled {
		_, _ = c.w.Write(text)
		if !bytes.HasSuffix(text, []byte("\n")) {
			fmt.Fprintln(c.w)
		}
		return
	}

	scanner := bufio.NewScanner(bytes.NewReader(text))
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			line = style.MutedStyle.Render(line)
		case strings.HasPrefix(line, "+"), strings.HasPrefix(line, ">"):
			line = style.AddedStyle.Render(line)
		case strings.HasPrefix(line, "-"), strings.HasPrefix(line, "<"):
			line = style.RemovedStyle.Render(line)
		}
		fmt.Fprintln(c.w, line)
	}
}

// ReportResult prints the terminal outcome of an action
func (c *Console) ReportResult(result types.ActionResult) {
	if !c.styled {
		fmt.Fprintf(c.w, "result: %s\n", result)
		return
	}
	fmt.Fprintln(c.w, style.RenderResult(result))
}

// Discard drops every announcement
type Discard struct{}

func (Discard) ReportCommand(types.Verb, string, string)                  {}
func (Discard) ReportPath(types.Verb, string, string)                     {}
func (Discard) ReportTemplate(types.Verb, string, string, string, string) {}
func (Discard) ReportDiff([]byte)                                         {}
func (Discard) ReportResult(types.ActionResult)                           {}
