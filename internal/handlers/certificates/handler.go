package certificates

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/skillsnap.net/internal/core/ports/primary"
	"gitlab.com/skillsnap.net/internal/core/services/pipeline"
	"gitlab.com/skillsnap.net/internal/domain"
	"gitlab.com/skillsnap.net/internal/handlers/response"
	"gitlab.com/skillsnap.net/internal/static/errs"
)

const (
	maxBodyBytes   = 1 << 20
	platformName   = "SkillSnap"
	verifiedNotice = "✅ This certificate is authentic and verified."
)

// Handler serves the run, certify and verify endpoints
type Handler struct {
	pipeline pipeline.IPipelineService
	logger   primary.Logger
}

func NewHandler(pipeline pipeline.IPipelineService, logger primary.Logger) *Handler {
	return &Handler{
		pipeline: pipeline,
		logger:   logger,
	}
}

// RegisterRoutes registers the API routes. OPTIONS is matched so CORS preflight reaches the middleware.
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/run", h.Run).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/api/certify", h.Certify).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/api/verify/{certId}", h.Verify).Methods(http.MethodGet, http.MethodOptions)
}

func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	result := h.pipeline.Attempt(r.Context(), domain.NewSubmission(req.Username, req.Code))

	resp := RunResponse{
		Passed:    result.Verdict.Passed(),
		Output:    result.Output,
		Error:     result.Error,
		PassToken: result.PassToken,
	}
	if result.Audit != nil {
		text := result.Audit.Text
		resp.Audit = &text
	}
	response.WriteSuccess(w, resp)
}

func (h *Handler) Certify(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	result, err := h.pipeline.Certify(r.Context(), domain.CertifyRequest{
		Submission: domain.NewSubmission(req.Username, req.Code),
		AuditText:  req.Audit,
		PassToken:  req.PassToken,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.WriteSuccess(w, CertifyResponse{
		CertID:    result.ID,
		Message:   fmt.Sprintf("Certificate %s minted successfully!", result.ID),
		VerifyURL: result.VerifyURL,
	})
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	certID := mux.Vars(r)["certId"]

	cert, err := h.pipeline.VerifyCertificate(r.Context(), certID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.WriteSuccess(w, VerifyResponse{
		ID:        cert.ID,
		User:      cert.AuthorName,
		CodeProof: cert.SourceText,
		AIAudit:   cert.AuditText,
		Timestamp: cert.IssuedAt.UTC().Format(time.RFC3339Nano),
		Verified:  true,
		Platform:  platformName,
		Message:   verifiedNotice,
	})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (*SubmissionRequest, bool) {
	var req SubmissionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Invalid request", StatusCode: http.StatusBadRequest})
		return nil, false
	}

	if domain.NewSubmission(req.Username, req.Code).IsBlank() {
		h.writeError(w, errs.ErrInvalidSubmission)
		return nil, false
	}
	return &req, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status, message := StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", "status", status, "error", err)
	}
	response.WriteError(w, response.ErrorMessage{Message: message, StatusCode: status})
}

// StatusFor maps pipeline errors to an HTTP status and client message
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrCertificateNotFound):
		return http.StatusNotFound, "Certificate not found"
	case errors.Is(err, errs.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "Database unavailable"
	case errors.Is(err, errs.ErrInvalidSubmission):
		return http.StatusBadRequest, errs.ErrInvalidSubmission.Error()
	case errors.Is(err, errs.ErrPassTokenRequired):
		return http.StatusForbidden, errs.ErrPassTokenRequired.Error()
	case errors.Is(err, errs.ErrPassTokenInvalid):
		return http.StatusForbidden, errs.ErrPassTokenInvalid.Error()
	case errors.Is(err, errs.ErrPassTokenReused):
		return http.StatusConflict, errs.ErrPassTokenReused.Error()
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
