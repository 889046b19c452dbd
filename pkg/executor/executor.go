package executor

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/arthur-debert/fastidious/pkg/access"
	"github.com/arthur-debert/fastidious/pkg/diff"
	"github.com/arthur-debert/fastidious/pkg/logging"
	"github.com/arthur-debert/fastidious/pkg/prompt"
	"github.com/arthur-debert/fastidious/pkg/report"
	"github.com/arthur-debert/fastidious/pkg/types"
	"github.com/arthur-debert/fastidious/pkg/vfile"
	"github.com/rs/zerolog"
)

// DefaultMergeTool is used for interactive merges when none is configured
const DefaultMergeTool = "vim"

// DefaultMergeArgs are passed to DefaultMergeTool before the two files
var DefaultMergeArgs = []string{"-d"}

// Differ classifies a candidate file against a destination
type Differ interface {
	Diff(ctx context.Context, candidate, dest string) types.DiffStatus
}

// Prober answers permission questions without touching the filesystem
type Prober interface {
	CanWriteFile(path string) error
	CanCreateDir(dir string) error
	MissingDirs(dir string) []string
}

type accessProber struct{}

func (accessProber) CanWriteFile(path string) error  { return access.CanWriteFile(path) }
func (accessProber) CanCreateDir(dir string) error   { return access.CanCreateDir(dir) }
func (accessProber) MissingDirs(dir string) []string { return access.MissingDirs(dir) }

// Options contains configuration for the executor
type Options struct {
	Reporter report.Reporter
	Prompter prompt.Prompter
	Runner   Runner
	Differ   Differ
	Prober   Prober
	Logger   zerolog.Logger

	// WorkDir is the working directory of spawned commands
	WorkDir string
	// Stdout receives the captured output of commands run for real
	Stdout io.Writer
	// Timeout bounds each spawned command; zero waits forever
	Timeout time.Duration

	MergeTool string
	MergeArgs []string

	// TempDir holds materialized scripts and candidates
	TempDir string
	// Shell is the interpreter written in front of inline scripts
	Shell string
}

// Executor dispatches side effects on an ExecutionMode
type Executor struct {
	reporter report.Reporter
	prompter prompt.Prompter
	runner   Runner
	differ   Differ
	prober   Prober
	logger   zerolog.Logger

	workDir   string
	stdout    io.Writer
	timeout   time.Duration
	mergeTool string
	mergeArgs []string
	tempDir   string
	shell     string
}

// New creates a new executor instance
func New(opts Options) *Executor {
	logger := opts.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = logging.GetLogger("executor")
	}

	e := &Executor{
		reporter:  opts.Reporter,
		prompter:  opts.Prompter,
		runner:    opts.Runner,
		differ:    opts.Differ,
		prober:    opts.Prober,
		logger:    logger,
		workDir:   opts.WorkDir,
		stdout:    opts.Stdout,
		timeout:   opts.Timeout,
		mergeTool: opts.MergeTool,
		mergeArgs: opts.MergeArgs,
		tempDir:   opts.TempDir,
		shell:     opts.Shell,
	}

	if e.reporter == nil {
		e.reporter = report.Discard{}
	}
	if e.prompter == nil {
		e.prompter = prompt.Stdio()
	}
	if e.runner == nil {
		e.runner = OSRunner{}
	}
	if e.differ == nil {
		e.differ = diff.New(diff.Builtin{})
	}
	if e.prober == nil {
		e.prober = accessProber{}
	}
	if e.stdout == nil {
		e.stdout = os.Stdout
	}
	if e.mergeTool == "" {
		e.mergeTool = DefaultMergeTool
		if e.mergeArgs == nil {
			e.mergeArgs = DefaultMergeArgs
		}
	}

	return e
}

func (e *Executor) vfileOptions() []vfile.Option {
	opts := []vfile.Option{vfile.WithTempDir(e.tempDir)}
	if e.shell != "" {
		opts = append(opts, vfile.WithShebang("#!"+e.shell))
	}
	return opts
}

func (e *Executor) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.timeout > 0 {
		return context.WithTimeout(ctx, e.timeout)
	}
	return context.WithCancel(ctx)
}

// Reporter returns the reporter announcements go to
func (e *Executor) Reporter() report.Reporter {
	return e.reporter
}
