package execution

import (
	"context"

	"gitlab.com/skillsnap.net/internal/domain"
)

// IExecutionService runs a submission against the task harness
type IExecutionService interface {
	// Execute never returns an error: timeouts and dispatch failures are part of the outcome
	Execute(ctx context.Context, sourceText string) domain.ExecutionOutcome
}
