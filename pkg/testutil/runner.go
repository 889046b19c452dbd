package testutil

import (
	"context"

	"github.com/arthur-debert/fastidious/pkg/executor"
	"github.com/stretchr/testify/mock"
)

// MockRunner is a testify mock of executor.Runner
type MockRunner struct {
	mock.Mock
}

// Run implements executor.Runner
func (m *MockRunner) Run(ctx context.Context, cmd executor.Command) (executor.Completion, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(executor.Completion), args.Error(1)
}

// Spawns returns how many processes were started through the mock
func (m *MockRunner) Spawns() int {
	n := 0
	for _, call := range m.Calls {
		if call.Method == "Run" {
			n++
		}
	}
	return n
}
