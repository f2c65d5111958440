package execution

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/skillsnap.net/internal/adapter/logging"
	"gitlab.com/skillsnap.net/internal/domain"
)

type fakeExecutor struct {
	out      *domain.RunnerOutput
	err      error
	block    bool
	received []domain.ExecutionRequest
}

func (f *fakeExecutor) Execute(ctx context.Context, req domain.ExecutionRequest) (*domain.RunnerOutput, error) {
	f.received = append(f.received, req)
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.out, f.err
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func newService(executor *fakeExecutor, timeout time.Duration) *ExecutionService {
	return NewExecutionService(executor, domain.SumTask, timeout, logging.NewNopLogger())
}

func TestExecuteAppendsHarnessAndTrims(t *testing.T) {
	executor := &fakeExecutor{out: &domain.RunnerOutput{Stdout: "  15\n", Stderr: "\n"}}
	svc := newService(executor, time.Second)

	outcome := svc.Execute(context.Background(), "def sum(a, b):\n    return a + b")

	require.Len(t, executor.received, 1)
	assert.Equal(t, "def sum(a, b):\n    return a + b\n\nprint(sum(5, 10))", executor.received[0].Source)
	assert.Equal(t, "python", executor.received[0].Language)
	assert.Equal(t, "3.10.0", executor.received[0].Version)
	assert.Equal(t, "15", outcome.Stdout)
	assert.Equal(t, "", outcome.Stderr)
	assert.False(t, outcome.TimedOut)
	assert.Nil(t, outcome.TransportError)
	assert.True(t, outcome.Completed())
}

func TestExecuteTimesOut(t *testing.T) {
	executor := &fakeExecutor{block: true}
	svc := newService(executor, 20*time.Millisecond)

	outcome := svc.Execute(context.Background(), "while True: pass")

	assert.True(t, outcome.TimedOut)
	assert.Nil(t, outcome.TransportError)
	assert.Empty(t, outcome.Stdout)
}

func TestExecuteNetworkTimeoutIsTimeout(t *testing.T) {
	executor := &fakeExecutor{err: timeoutErr{}}
	svc := newService(executor, time.Second)

	outcome := svc.Execute(context.Background(), "print(1)")

	assert.True(t, outcome.TimedOut)
}

func TestExecuteTransportError(t *testing.T) {
	executor := &fakeExecutor{err: errors.New("connection refused")}
	svc := newService(executor, time.Second)

	outcome := svc.Execute(context.Background(), "print(1)")

	assert.False(t, outcome.TimedOut)
	require.NotNil(t, outcome.TransportError)
	assert.Equal(t, "connection refused", *outcome.TransportError)
}

func TestExecuteNilOutputIsTransportError(t *testing.T) {
	executor := &fakeExecutor{}
	svc := newService(executor, time.Second)

	outcome := svc.Execute(context.Background(), "print(1)")

	require.NotNil(t, outcome.TransportError)
}
