// TEST TYPE: Unit Test
// DEPENDENCIES: real files under t.TempDir(), RecordingReporter, ScriptedPrompter
// PURPOSE: diff-gated file materialization in every mode

package executor_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/fastidious/pkg/errors"
	"github.com/arthur-debert/fastidious/pkg/executor"
	"github.com/arthur-debert/fastidious/pkg/testutil"
	"github.com/arthur-debert/fastidious/pkg/types"
	"github.com/arthur-debert/fastidious/pkg/vfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var filled = types.Vars{"value": "FILLED"}

func keyTemplate() *vfile.VirtualFile {
	return vfile.InMemory("key=@@value@@")
}

func TestMaterializeNewFilePassive(t *testing.T) {
	f := newFixture(t, true)
	dest := filepath.Join(f.dir, "conf", "dest")

	out, err := f.exec.RenderAndMaterialize(context.Background(), types.ModePassive, keyTemplate(), dest, filled)
	require.NoError(t, err)
	assert.Equal(t, types.DiffNewFile, out.Diff.State)
	assert.Equal(t, types.ResultSkipped, out.Result)

	testutil.AssertNoFile(t, dest)
	testutil.AssertNoFile(t, filepath.Dir(dest))

	paths := f.reporter.Find("path")
	require.Len(t, paths, 1)
	assert.Equal(t, types.VerbWould, paths[0].Verb)
	assert.Equal(t, filepath.Join(f.dir, "conf"), paths[0].Target)

	tmpl := f.reporter.Find("template")
	require.Len(t, tmpl, 1)
	assert.Equal(t, types.VerbWould, tmpl[0].Verb)
	assert.Equal(t, "create", tmpl[0].Action)
}

func TestMaterializeNewFileActive(t *testing.T) {
	f := newFixture(t, true)
	dest := filepath.Join(f.dir, "conf", "nested", "dest")

	out, err := f.exec.RenderAndMaterialize(context.Background(), types.ModeActive, keyTemplate(), dest, filled)
	require.NoError(t, err)
	assert.Equal(t, types.DiffNewFile, out.Diff.State)
	assert.Equal(t, types.ResultCreated, out.Result)
	testutil.AssertFileContent(t, dest, "key=FILLED\n")

	assert.Equal(t, []types.Verb{types.VerbLive, types.VerbLive, types.VerbLive}, f.reporter.Verbs(),
		"two directories and the file")
	assert.Zero(t, f.runner.Spawns())
}

func TestMaterializeNoChanges(t *testing.T) {
	for _, mode := range []types.ExecutionMode{types.ModeActive, types.ModePassive, types.ModeInteractive} {
		t.Run(mode.String(), func(t *testing.T) {
			f := newFixture(t, true)
			dest := testutil.CreateFile(t, f.dir, "dest", "key=FILLED\n")
			testutil.Chmod(t, dest, 0600)

			out, err := f.exec.RenderAndMaterialize(context.Background(), mode, keyTemplate(), dest, filled)
			require.NoError(t, err)
			assert.Equal(t, types.DiffNoChanges, out.Diff.State)
			assert.Equal(t, types.ResultAlreadyApplied, out.Result)
			assert.Equal(t, []types.Verb{types.VerbNoChange}, f.reporter.Verbs())
			assert.Empty(t, f.prompter.Questions)
		})
	}
}

func TestMaterializeChangedPassive(t *testing.T) {
	f := newFixture(t, true)
	dest := testutil.CreateFile(t, f.dir, "dest", "key=OLD\n")

	out, err := f.exec.RenderAndMaterialize(context.Background(), types.ModePassive, keyTemplate(), dest, filled)
	require.NoError(t, err)
	assert.Equal(t, types.DiffChanged, out.Diff.State)
	assert.Equal(t, types.ResultSkipped, out.Result)
	testutil.AssertFileContent(t, dest, "key=OLD\n")

	diffs := f.reporter.Find("diff")
	require.Len(t, diffs, 1)
	assert.Contains(t, string(diffs[0].Diff), "key=OLD")
}

func TestMaterializeChangedActiveKeepsMode(t *testing.T) {
	f := newFixture(t, true)
	dest := testutil.CreateFile(t, f.dir, "dest", "key=OLD\n")
	testutil.Chmod(t, dest, 0600)

	out, err := f.exec.RenderAndMaterialize(context.Background(), types.ModeActive, keyTemplate(), dest, filled)
	require.NoError(t, err)
	assert.Equal(t, types.ResultApplied, out.Result)
	testutil.AssertFileContent(t, dest, "key=FILLED\n")

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestMaterializeChangedInteractive(t *testing.T) {
	tests := []struct {
		name        string
		answers     []rune
		wantResult  types.ActionResult
		wantContent string
		wantDiffs   int
	}{
		{name: "overwrite", answers: []rune{'o'}, wantResult: types.ResultApplied, wantContent: "key=FILLED\n"},
		{name: "keep", answers: []rune{'k'}, wantResult: types.ResultSkipped, wantContent: "key=OLD\n"},
		{name: "diff then keep", answers: []rune{'d', 'k'}, wantResult: types.ResultSkipped, wantContent: "key=OLD\n", wantDiffs: 1},
		{name: "unknown then overwrite", answers: []rune{'x', 'O', 'o'}, wantResult: types.ResultApplied, wantContent: "key=FILLED\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, true, tt.answers...)
			dest := testutil.CreateFile(t, f.dir, "dest", "key=OLD\n")

			out, err := f.exec.RenderAndMaterialize(context.Background(), types.ModeInteractive, keyTemplate(), dest, filled)
			require.NoError(t, err)
			assert.Equal(t, tt.wantResult, out.Result)
			testutil.AssertFileContent(t, dest, tt.wantContent)
			assert.Len(t, f.reporter.Find("diff"), tt.wantDiffs)
			assert.Len(t, f.prompter.Questions, len(tt.answers))
		})
	}
}

func mergeFixture(t *testing.T, answers ...rune) *fixture {
	t.Helper()
	f := newFixture(t, true, answers...)
	f.exec = executor.New(executor.Options{
		Reporter:  f.reporter,
		Prompter:  f.prompter,
		Runner:    f.runner,
		WorkDir:   f.dir,
		TempDir:   t.TempDir(),
		MergeTool: "sh",
		MergeArgs: []string{"-c", "true"},
	})
	return f
}

func TestMaterializeInteractiveMerge(t *testing.T) {
	f := mergeFixture(t, 'm')
	dest := testutil.CreateFile(t, f.dir, "dest", "key=OLD\n")
	f.runner.On("Run", mock.Anything, mock.MatchedBy(func(c executor.Command) bool {
		return c.Attach && len(c.Args) == 4 && c.Args[3] == dest
	})).Return(executor.Completion{}, nil).Once()

	out, err := f.exec.RenderAndMaterialize(context.Background(), types.ModeInteractive, keyTemplate(), dest, filled)
	require.NoError(t, err)
	assert.Equal(t, types.ResultApplied, out.Result)
	f.runner.AssertExpectations(t)
}

func TestMaterializeInteractiveMergeIntoTemplate(t *testing.T) {
	f := mergeFixture(t, 't')
	src := testutil.CreateFile(t, f.dir, "src.tmpl", "key=@@value@@\n")
	dest := testutil.CreateFile(t, f.dir, "dest", "key=OLD\n")
	f.runner.On("Run", mock.Anything, mock.MatchedBy(func(c executor.Command) bool {
		return c.Attach && c.Args[2] == dest && c.Args[3] == src
	})).Return(executor.Completion{}, nil).Once()

	out, err := f.exec.RenderAndMaterialize(context.Background(), types.ModeInteractive, vfile.FromPath(src), dest, filled)
	require.NoError(t, err)
	assert.Equal(t, types.ResultSkipped, out.Result)
	testutil.AssertFileContent(t, dest, "key=OLD\n")
	f.runner.AssertExpectations(t)
}

func TestMaterializeMergeIntoInlineTemplate(t *testing.T) {
	f := mergeFixture(t, 't')
	dest := testutil.CreateFile(t, f.dir, "dest", "key=OLD\n")

	_, err := f.exec.RenderAndMaterialize(context.Background(), types.ModeInteractive, keyTemplate(), dest, filled)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Zero(t, f.runner.Spawns())
}

func TestMaterializeMergeToolMissing(t *testing.T) {
	f := newFixture(t, true, 'm')
	f.exec = executor.New(executor.Options{
		Reporter:  f.reporter,
		Prompter:  f.prompter,
		Runner:    f.runner,
		TempDir:   t.TempDir(),
		MergeTool: "fastidious-no-such-merge-tool",
	})
	dest := testutil.CreateFile(t, f.dir, "dest", "key=OLD\n")

	_, err := f.exec.RenderAndMaterialize(context.Background(), types.ModeInteractive, keyTemplate(), dest, filled)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandNotFound))
}

func TestMaterializeNewFileInteractive(t *testing.T) {
	tests := []struct {
		name       string
		answers    []rune
		wantResult types.ActionResult
		wantFile   bool
		wantVerbs  []types.Verb
	}{
		{
			name:       "decline directory",
			answers:    []rune{'n'},
			wantResult: types.ResultSkipped,
			wantVerbs:  []types.Verb{types.VerbSkipped},
		},
		{
			name:       "create directory decline file",
			answers:    []rune{'y', 'n'},
			wantResult: types.ResultSkipped,
			wantVerbs:  []types.Verb{types.VerbLive, types.VerbSkipped},
		},
		{
			name:       "create both",
			answers:    []rune{'y', 'y'},
			wantResult: types.ResultCreated,
			wantFile:   true,
			wantVerbs:  []types.Verb{types.VerbLive, types.VerbLive},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, true, tt.answers...)
			dest := filepath.Join(f.dir, "conf", "dest")

			out, err := f.exec.RenderAndMaterialize(context.Background(), types.ModeInteractive, keyTemplate(), dest, filled)
			require.NoError(t, err)
			assert.Equal(t, tt.wantResult, out.Result)
			assert.Equal(t, tt.wantFile, testutil.FileExists(t, dest))
			assert.Equal(t, tt.wantVerbs, f.reporter.Verbs())
		})
	}
}

func TestMaterializeUnsupportedDestination(t *testing.T) {
	f := newFixture(t, true)
	dest := filepath.Join(f.dir, "adir")
	require.NoError(t, os.Mkdir(dest, 0755))

	out, err := f.exec.RenderAndMaterialize(context.Background(), types.ModeActive, keyTemplate(), dest, filled)
	assert.Equal(t, types.DiffUnsupported, out.Diff.State)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotAFile))
}

type failingDiffer struct{}

func (failingDiffer) Diff(context.Context, string, string) types.DiffStatus {
	return types.DiffStatus{State: types.DiffFailed, Err: assert.AnError}
}

func TestMaterializeDiffFailure(t *testing.T) {
	f := newFixture(t, true)
	e := executor.New(executor.Options{Reporter: f.reporter, Differ: failingDiffer{}, TempDir: t.TempDir()})
	dest := testutil.CreateFile(t, f.dir, "dest", "key=OLD\n")

	_, err := e.RenderAndMaterialize(context.Background(), types.ModeActive, keyTemplate(), dest, filled)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDiffFailed))
	testutil.AssertFileContent(t, dest, "key=OLD\n")
}

func TestMaterializeMissingVariable(t *testing.T) {
	f := newFixture(t, true)
	dest := filepath.Join(f.dir, "dest")

	_, err := f.exec.RenderAndMaterialize(context.Background(), types.ModeActive, keyTemplate(), dest, types.Vars{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrVarNotFound))
	testutil.AssertNoFile(t, dest)
}

func TestMaterializeReadOnlyDestination(t *testing.T) {
	testutil.SkipIfRoot(t)

	f := newFixture(t, true)
	dest := testutil.CreateFile(t, f.dir, "dest", "key=OLD\n")
	testutil.Chmod(t, dest, 0444)

	_, err := f.exec.RenderAndMaterialize(context.Background(), types.ModePassive, keyTemplate(), dest, filled)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInsufficientPrivileges))
}

func TestMaterializeNewFileUnwritableParent(t *testing.T) {
	locked := testutil.UnwritableDir(t)
	dest := filepath.Join(locked, "fastidious-new.conf")

	for _, mode := range []types.ExecutionMode{types.ModePassive, types.ModeActive, types.ModeInteractive} {
		t.Run(mode.String(), func(t *testing.T) {
			f := newFixture(t, true, 'y', 'y')

			_, err := f.exec.RenderAndMaterialize(context.Background(), mode, keyTemplate(), dest, filled)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInsufficientPrivileges), "got %v", err)
			assert.Empty(t, f.reporter.Calls())
			testutil.AssertNoFile(t, dest)
		})
	}
}

func TestMaterializeLeavesNoTempFiles(t *testing.T) {
	f := newFixture(t, true)
	tmp := t.TempDir()
	e := executor.New(executor.Options{Reporter: f.reporter, TempDir: tmp})

	_, err := e.RenderAndMaterialize(context.Background(), types.ModeActive, keyTemplate(), filepath.Join(f.dir, "dest"), filled)
	require.NoError(t, err)

	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
