package validation

import (
	"strings"

	"gitlab.com/skillsnap.net/internal/domain"
)

// Validator judges execution outcomes against a single task
type Validator struct {
	task domain.Task
}

func NewValidator(task domain.Task) *Validator {
	return &Validator{task: task}
}

// Validate returns the verdict for outcome. It depends on nothing but its input.
func (v *Validator) Validate(outcome domain.ExecutionOutcome) domain.Verdict {
	return Validate(v.task, outcome)
}

// Validate passes only a completed run whose stdout equals the expected output exactly.
// stderr is never inspected.
func Validate(task domain.Task, outcome domain.ExecutionOutcome) domain.Verdict {
	if !outcome.Completed() {
		return domain.VerdictFailed
	}
	if strings.TrimSpace(outcome.Stdout) != task.ExpectedOutput {
		return domain.VerdictFailed
	}
	return domain.VerdictPassed
}
