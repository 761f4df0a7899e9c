package httpapi

import (
	"net/http"

	"movequote/internal/domain"
	"movequote/internal/service"

	"go.uber.org/zap"
)

const (
	sessionCookieName   = "mq_session"
	sessionCookieMaxAge = 24 * 60 * 60 // one day, covers the gap between parts

	maxBodyBytes = 64 << 10
)

// submissionRequest is the wire shape of POST /api/v1/quote.
type submissionRequest struct {
	Part string              `json:"part"`
	Data domain.QuotePayload `json:"data"`
}

type submissionResponse struct {
	UUID    string `json:"uuid"`
	Message string `json:"message"`
	Success bool   `json:"success"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// QuoteHandler terminates the submission API and owns the session cookie
// lifecycle: issued/refreshed on part 1, cleared on part 2.
type QuoteHandler struct {
	svc        *service.SubmissionService
	secureOnly bool
	logger     *zap.Logger
}

func NewQuoteHandler(svc *service.SubmissionService, secureOnly bool, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{svc: svc, secureOnly: secureOnly, logger: logger}
}

func (h *QuoteHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submissionRequest
	if err := readBodyJSON(r, maxBodyBytes, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return
	}

	phase, err := domain.ParsePhase(req.Part)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid submission", Error: err.Error()})
		return
	}

	token := ""
	if c, err := r.Cookie(sessionCookieName); err == nil {
		token = c.Value
	}

	result, err := h.svc.Submit(r.Context(), token, phase, req.Data)
	if err != nil {
		if domain.IsValidation(err) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid submission", Error: err.Error()})
			return
		}
		h.logger.Error("Quote submission failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "failed to save quote request"})
		return
	}

	switch result.Phase {
	case domain.PhaseInitial:
		h.setSessionCookie(w, result.SessionID)
		writeJSON(w, http.StatusOK, submissionResponse{
			UUID:    result.SessionID,
			Message: "quote request saved",
			Success: true,
		})
	case domain.PhaseFinal:
		h.clearSessionCookie(w)
		writeJSON(w, http.StatusOK, submissionResponse{
			UUID:    result.SessionID,
			Message: "quote request completed",
			Success: true,
		})
	}
}

func (h *QuoteHandler) setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   sessionCookieMaxAge,
		HttpOnly: true,
		Secure:   h.secureOnly,
		SameSite: http.SameSiteNoneMode,
	})
}

func (h *QuoteHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureOnly,
		SameSite: http.SameSiteNoneMode,
	})
}
