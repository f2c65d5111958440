package domain

// Task is the fixed challenge a submission is judged against. The harness is
// appended to the submitted source so that the run prints the value under test.
type Task struct {
	Title          string
	Language       string
	Version        string
	Harness        string
	ExpectedOutput string
}

// SumTask asks for a function `sum(a, b)` returning the sum of both arguments.
var SumTask = Task{
	Title:          "Basic Sum Function",
	Language:       "python",
	Version:        "3.10.0",
	Harness:        "\n\nprint(sum(5, 10))",
	ExpectedOutput: "15",
}

// WithRuntime returns a copy of the task bound to another runtime
func (t Task) WithRuntime(language, version string) Task {
	if language != "" {
		t.Language = language
	}
	if version != "" {
		t.Version = version
	}
	return t
}

// Harnessed returns the program actually dispatched to the runner
func (t Task) Harnessed(sourceText string) string {
	return sourceText + t.Harness
}
