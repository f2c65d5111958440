package domain

// ExecutionRequest is what gets dispatched to the remote runner
type ExecutionRequest struct {
	Language string
	Version  string
	Source   string
}

// RunnerOutput is the raw result returned by the remote runner
type RunnerOutput struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// ExecutionOutcome is the normalized result of one attempt.
// At most one of TimedOut and TransportError is set.
type ExecutionOutcome struct {
	Stdout         string
	Stderr         string
	TimedOut       bool
	TransportError *string
}

// TimedOutOutcome builds the outcome for an expired wait
func TimedOutOutcome() ExecutionOutcome {
	return ExecutionOutcome{TimedOut: true}
}

// TransportFailureOutcome builds the outcome for a failed dispatch
func TransportFailureOutcome(message string) ExecutionOutcome {
	return ExecutionOutcome{TransportError: &message}
}

// Completed reports whether the runner actually produced output
func (o ExecutionOutcome) Completed() bool {
	return !o.TimedOut && o.TransportError == nil
}
