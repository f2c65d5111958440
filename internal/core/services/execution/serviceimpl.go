package execution

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"gitlab.com/skillsnap.net/internal/core/ports/primary"
	"gitlab.com/skillsnap.net/internal/core/ports/secondary"
	"gitlab.com/skillsnap.net/internal/domain"
)

var _ IExecutionService = (*ExecutionService)(nil)

// ExecutionService wraps the remote runner with the task harness and a bounded wait
type ExecutionService struct {
	executor secondary.CodeExecutor
	task     domain.Task
	timeout  time.Duration
	logger   primary.Logger
}

// NewExecutionService creates a new execution service
func NewExecutionService(
	executor secondary.CodeExecutor,
	task domain.Task,
	timeout time.Duration,
	logger primary.Logger,
) *ExecutionService {
	return &ExecutionService{
		executor: executor,
		task:     task,
		timeout:  timeout,
		logger:   logger,
	}
}

// Execute appends the harness, dispatches the program and normalizes the result
func (s *ExecutionService) Execute(ctx context.Context, sourceText string) domain.ExecutionOutcome {
	req := domain.ExecutionRequest{
		Language: s.task.Language,
		Version:  s.task.Version,
		Source:   s.task.Harnessed(sourceText),
	}

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	out, err := s.executor.Execute(runCtx, req)
	elapsed := time.Since(started)

	if err != nil {
		if isTimeout(err) || errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			s.logger.Warn("Execution timed out", "timeout", s.timeout, "elapsed", elapsed)
			return domain.TimedOutOutcome()
		}
		s.logger.Error("Execution dispatch failed", "error", err, "elapsed", elapsed)
		return domain.TransportFailureOutcome(err.Error())
	}

	if out == nil {
		s.logger.Error("Runner returned no output")
		return domain.TransportFailureOutcome("runner returned an empty response")
	}

	s.logger.Debug("Execution finished", "elapsed", elapsed, "exitCode", out.ExitCode)
	return domain.ExecutionOutcome{
		Stdout: strings.TrimSpace(out.Stdout),
		Stderr: strings.TrimSpace(out.Stderr),
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
