package domain

// Verdict represents the classification of an attempt
type Verdict string

const (
	VerdictPassed Verdict = "PASSED"
	VerdictFailed Verdict = "FAILED"
)

func (v Verdict) Passed() bool {
	return v == VerdictPassed
}

// AuditReport is the reviewer's short commentary on a passed submission
type AuditReport struct {
	Text string `json:"text"`
}
