package testutil

import (
	"sync"

	"github.com/arthur-debert/fastidious/pkg/types"
)

// Announcement is one recorded reporter call
type Announcement struct {
	Kind   string // command, path, template, diff or result
	Verb   types.Verb
	Action string
	Target string // command line, path or destination
	Source string // template source, only for template announcements
	Diff   []byte
	Result types.ActionResult
}

// RecordingReporter implements report.Reporter by recording every call
type RecordingReporter struct {
	mu    sync.Mutex
	calls []Announcement
}

// NewRecordingReporter creates an empty recorder
func NewRecordingReporter() *RecordingReporter {
	return &RecordingReporter{}
}

func (r *RecordingReporter) record(a Announcement) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, a)
}

func (r *RecordingReporter) ReportCommand(verb types.Verb, action, cmdline string) {
	r.record(Announcement{Kind: "command", Verb: verb, Action: action, Target: cmdline})
}

func (r *RecordingReporter) ReportPath(verb types.Verb, action, path string) {
	r.record(Announcement{Kind: "path", Verb: verb, Action: action, Target: path})
}

func (r *RecordingReporter) ReportTemplate(verb types.Verb, action, src, gen, dest string) {
	r.record(Announcement{Kind: "template", Verb: verb, Action: action, Target: dest, Source: src})
}

func (r *RecordingReporter) ReportDiff(text []byte) {
	r.record(Announcement{Kind: "diff", Diff: append([]byte(nil), text...)})
}

func (r *RecordingReporter) ReportResult(result types.ActionResult) {
	r.record(Announcement{Kind: "result", Result: result})
}

// Calls returns a copy of everything recorded so far
func (r *RecordingReporter) Calls() []Announcement {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Announcement(nil), r.calls...)
}

// Verbs returns the verbs of the recorded command, path and template calls
func (r *RecordingReporter) Verbs() []types.Verb {
	var verbs []types.Verb
	for _, c := range r.Calls() {
		if c.Verb != "" {
			verbs = append(verbs, c.Verb)
		}
	}
	return verbs
}

// Find returns the recorded calls of the given kind
func (r *RecordingReporter) Find(kind string) []Announcement {
	var out []Announcement
	for _, c := range r.Calls() {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}
