package domain

const (
	OutputTimedOut      = "Execution timed out"
	OutputRunnerFailure = "Runner Error: "
)

// AttemptResult is returned for every attempt, including failed dispatches
type AttemptResult struct {
	Verdict   Verdict
	Output    string
	Error     *string
	Audit     *AuditReport
	PassToken string
}

// CertifyRequest carries what the caller wants recorded on the certificate
type CertifyRequest struct {
	Submission
	AuditText *string
	PassToken string
}

// CertifyResult points at the newly minted certificate
type CertifyResult struct {
	ID        string
	VerifyURL string
}

// PassGrant is the verified content of a pass token
type PassGrant struct {
	TokenID     string
	Fingerprint string
}

// HealthStatus reports reachability of the shared resources
type HealthStatus struct {
	StoreReachable bool
	CacheEnabled   bool
	CacheReachable bool
}
