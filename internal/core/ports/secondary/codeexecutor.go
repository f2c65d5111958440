package secondary

import (
	"context"

	"gitlab.com/skillsnap.net/internal/domain"
)

type CodeExecutor interface {
	// Execute runs the request on the remote runner and returns its raw output
	Execute(ctx context.Context, req domain.ExecutionRequest) (*domain.RunnerOutput, error)
}
