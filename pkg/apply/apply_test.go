// TEST TYPE: Integration Test
// DEPENDENCIES: real /bin/sh, files under t.TempDir()
// PURPOSE: check-then-apply composition end to end

package apply_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/fastidious/pkg/apply"
	"github.com/arthur-debert/fastidious/pkg/errors"
	"github.com/arthur-debert/fastidious/pkg/executor"
	"github.com/arthur-debert/fastidious/pkg/testutil"
	"github.com/arthur-debert/fastidious/pkg/types"
	"github.com/arthur-debert/fastidious/pkg/vfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newApplier(t *testing.T, dir string, runner executor.Runner, answers ...rune) (*apply.Applier, *testutil.RecordingReporter) {
	t.Helper()
	reporter := testutil.NewRecordingReporter()
	e := executor.New(executor.Options{
		Reporter: reporter,
		Prompter: testutil.NewScriptedPrompter(answers...),
		Runner:   runner,
		WorkDir:  dir,
		TempDir:  t.TempDir(),
	})
	return apply.New(e), reporter
}

func markerRequest(mode types.ExecutionMode) apply.Request {
	return apply.Request{
		Check:  vfile.InMemory("test -f marker"),
		Script: vfile.InMemory("touch marker"),
		Mode:   mode,
	}
}

func TestApplyCreatesMarker(t *testing.T) {
	dir := t.TempDir()
	a, _ := newApplier(t, dir, nil)

	result, err := a.Apply(context.Background(), markerRequest(types.ModeActive))
	require.NoError(t, err)
	assert.Equal(t, types.ResultApplied, result)
	assert.True(t, testutil.FileExists(t, filepath.Join(dir, "marker")))
}

func TestApplyTwiceIsAlreadyApplied(t *testing.T) {
	dir := t.TempDir()
	a, reporter := newApplier(t, dir, nil)
	ctx := context.Background()

	result, err := a.Apply(ctx, markerRequest(types.ModeActive))
	require.NoError(t, err)
	require.Equal(t, types.ResultApplied, result)

	req := markerRequest(types.ModeActive)
	req.Script = vfile.InMemory("echo ran >> runs")
	result, err = a.Apply(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, types.ResultAlreadyApplied, result)
	testutil.AssertNoFile(t, filepath.Join(dir, "runs"))

	last := reporter.Find("command")
	assert.Equal(t, types.VerbNoChange, last[len(last)-1].Verb)
}

func TestApplyPassive(t *testing.T) {
	dir := t.TempDir()
	a, reporter := newApplier(t, dir, nil)

	result, err := a.Apply(context.Background(), markerRequest(types.ModePassive))
	require.NoError(t, err)
	assert.Equal(t, types.ResultSkipped, result)
	testutil.AssertNoFile(t, filepath.Join(dir, "marker"))
	assert.Equal(t, []types.Verb{types.VerbWould}, reporter.Verbs())
}

func TestApplyCheckRunsEvenInPassiveMode(t *testing.T) {
	dir := t.TempDir()
	runner := &testutil.MockRunner{}
	runner.On("Run", mock.Anything, mock.Anything).Return(executor.Completion{ExitCode: 1}, nil).Once()
	a, _ := newApplier(t, dir, runner)

	result, err := a.Apply(context.Background(), markerRequest(types.ModePassive))
	require.NoError(t, err)
	assert.Equal(t, types.ResultSkipped, result)
	assert.Equal(t, 1, runner.Spawns(), "only the check script is spawned")
	runner.AssertExpectations(t)
}

func TestApplyInteractiveDecline(t *testing.T) {
	dir := t.TempDir()
	a, _ := newApplier(t, dir, nil, 'n')

	result, err := a.Apply(context.Background(), markerRequest(types.ModeInteractive))
	require.NoError(t, err)
	assert.Equal(t, types.ResultSkipped, result)
	testutil.AssertNoFile(t, filepath.Join(dir, "marker"))
}

func TestApplyWithoutCheck(t *testing.T) {
	dir := t.TempDir()
	a, _ := newApplier(t, dir, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		result, err := a.Apply(ctx, apply.Request{Script: vfile.InMemory("echo x >> runs"), Mode: types.ModeActive})
		require.NoError(t, err)
		assert.Equal(t, types.ResultApplied, result)
	}
	testutil.AssertFileContent(t, filepath.Join(dir, "runs"), "x\nx\n")
}

func TestApplyScriptFailure(t *testing.T) {
	dir := t.TempDir()
	a, _ := newApplier(t, dir, nil)

	_, err := a.Apply(context.Background(), apply.Request{
		Check:  vfile.InMemory("exit 1"),
		Script: vfile.InMemory("exit 7"),
		Mode:   types.ModeActive,
	})
	code, ok := errors.ExitCode(err)
	require.True(t, ok)
	assert.Equal(t, 7, code)
}

func TestApplyMissingCheckScript(t *testing.T) {
	dir := t.TempDir()
	a, _ := newApplier(t, dir, nil)

	_, err := a.Apply(context.Background(), apply.Request{
		Check:  vfile.FromPath(filepath.Join(dir, "missing-check")),
		Script: vfile.InMemory("touch marker"),
		Mode:   types.ModeActive,
	})
	assert.True(t, errors.IsErrorCode(err, errors.ErrPathNotFound))
	testutil.AssertNoFile(t, filepath.Join(dir, "marker"))
}

func TestApplyUsesVars(t *testing.T) {
	dir := t.TempDir()
	a, _ := newApplier(t, dir, nil)

	result, err := a.Apply(context.Background(), apply.Request{
		Check:  vfile.InMemory("test -f \"$TARGET\""),
		Script: vfile.InMemory("touch \"$TARGET\""),
		Vars:   types.Vars{"TARGET": "@@name@@.done", "name": "setup"},
		Mode:   types.ModeActive,
	})
	require.NoError(t, err)
	assert.Equal(t, types.ResultApplied, result)
	assert.True(t, testutil.FileExists(t, filepath.Join(dir, "setup.done")))
}

func TestIsApplied(t *testing.T) {
	dir := t.TempDir()
	a, _ := newApplier(t, dir, nil)
	ctx := context.Background()

	applied, err := a.IsApplied(ctx, vfile.InMemory("test -f marker"), nil)
	require.NoError(t, err)
	assert.False(t, applied)

	testutil.CreateFile(t, dir, "marker", "")
	applied, err = a.IsApplied(ctx, vfile.InMemory("test -f marker"), nil)
	require.NoError(t, err)
	assert.True(t, applied)

	_, err = a.IsApplied(ctx, nil, nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
