package testutil

import (
	"context"
	"testing"

	"github.com/arthur-debert/fastidious/pkg/errors"
	"github.com/arthur-debert/fastidious/pkg/executor"
	"github.com/arthur-debert/fastidious/pkg/report"
	"github.com/arthur-debert/fastidious/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var _ report.Reporter = (*RecordingReporter)(nil)

func TestRecordingReporter(t *testing.T) {
	r := NewRecordingReporter()
	r.ReportCommand(types.VerbWould, "run", "true")
	r.ReportPath(types.VerbLive, "create directory", "/tmp/a")
	r.ReportTemplate(types.VerbNoChange, "update", "src", "gen", "dest")
	r.ReportDiff([]byte("-a\n"))
	r.ReportResult(types.ResultApplied)

	assert.Len(t, r.Calls(), 5)
	assert.Equal(t, []types.Verb{types.VerbWould, types.VerbLive, types.VerbNoChange}, r.Verbs())
	assert.Equal(t, "dest", r.Find("template")[0].Target)
	assert.Equal(t, types.ResultApplied, r.Find("result")[0].Result)
}

func TestScriptedPrompter(t *testing.T) {
	p := NewScriptedPrompter('q', 'n')

	r, err := p.Ask("first?")
	require.NoError(t, err)
	assert.Equal(t, 'q', r)

	r, err = p.Ask("second?")
	require.NoError(t, err)
	assert.Equal(t, 'n', r)

	_, err = p.Ask("third?")
	assert.True(t, errors.IsErrorCode(err, errors.ErrUserInput))
	assert.Equal(t, []string{"first?", "second?", "third?"}, p.Questions)
}

func TestMockRunner(t *testing.T) {
	m := &MockRunner{}
	m.On("Run", mock.Anything, mock.Anything).Return(executor.Completion{ExitCode: 3}, nil)

	done, err := m.Run(context.Background(), executor.Command{Path: "/bin/true"})
	require.NoError(t, err)
	assert.Equal(t, 3, done.ExitCode)
	assert.Equal(t, 1, m.Spawns())
	m.AssertExpectations(t)
}

func TestNewTestFS(t *testing.T) {
	fs := NewTestFS()
	require.NoError(t, fs.WriteFile("/vars.yaml", []byte("a: b\n"), 0644))
	data, err := fs.ReadFile("/vars.yaml")
	require.NoError(t, err)
	assert.Equal(t, "a: b\n", string(data))
}
