package handler

import (
	"crypto/subtle"
	"io"
	"net/http"

	"github.com/formrelay/formrelay/internal/relay"
)

// maxBodySize caps the submission payload at 64 KiB
const maxBodySize = 64 << 10

// sendSuccess is the canonical success shape
type sendSuccess struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// SendEmail accepts a contact-form submission and relays it as email.
// Flow: shared-secret gate, validation, message build, one dispatch.
func (h *Handler) SendEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.methodNotAllowed(w, "POST")
		return
	}

	if !h.authorized(r) {
		h.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Failed to read request body"})
		return
	}

	sub, err := relay.ParseSubmission(body)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if h.dispatcher == nil || h.cfg.Relay.Recipient == "" {
		h.log.Error().Msg("mail transport not configured")
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Server configuration error",
			Message: relay.KindConfiguration.UserMessage(),
		})
		return
	}

	msg := relay.BuildEmail(sub, h.cfg.SMTP.User, h.cfg.Relay.Recipient, h.dispatcher.SpoofsFrom())

	result := h.dispatcher.Dispatch(r.Context(), msg)
	if !result.OK {
		resp := errorResponse{
			Error:   "Email sending failed",
			Message: result.Kind.UserMessage(),
		}
		if !h.cfg.Relay.Production() {
			resp.Details = result.Detail
		}
		h.writeJSON(w, result.Kind.HTTPStatus(), resp)
		return
	}

	h.writeJSON(w, http.StatusOK, sendSuccess{
		Success: true,
		Message: "Email sent successfully",
		ID:      result.ID,
	})
}

// authorized checks the optional shared-secret gate. With no secret
// configured every request passes.
func (h *Handler) authorized(r *http.Request) bool {
	secret := h.cfg.Relay.SharedSecret
	if secret == "" {
		return true
	}
	supplied := r.Header.Get("x-form-secret")
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(secret)) == 1
}
