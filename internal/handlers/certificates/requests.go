package certificates

// SubmissionRequest is the body of /api/run and /api/certify
type SubmissionRequest struct {
	Code      string  `json:"code"`
	Username  string  `json:"username"`
	Audit     *string `json:"audit,omitempty"`
	PassToken string  `json:"pass_token,omitempty"`
}

type RunResponse struct {
	Passed    bool    `json:"passed"`
	Output    string  `json:"output"`
	Error     *string `json:"error"`
	Audit     *string `json:"audit"`
	PassToken string  `json:"pass_token,omitempty"`
}

type CertifyResponse struct {
	CertID    string `json:"cert_id"`
	Message   string `json:"message"`
	VerifyURL string `json:"verify_url"`
}

type VerifyResponse struct {
	ID        string  `json:"id"`
	User      string  `json:"user"`
	CodeProof string  `json:"code_proof"`
	AIAudit   *string `json:"ai_audit"`
	Timestamp string  `json:"timestamp"`
	Verified  bool    `json:"verified"`
	Platform  string  `json:"platform"`
	Message   string  `json:"message"`
}
