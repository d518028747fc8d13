package http

import (
	"net/http"

	"academyhub-backend/internal/domain"
	"academyhub-backend/internal/service"
)

type InvitationHandler struct {
	invitations service.InvitationService
}

func NewInvitationHandler(invitations service.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitations: invitations}
}

func (h *InvitationHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r.Context())

	var in service.CreateInvitationInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	inv, err := h.invitations.Create(r.Context(), p.UserID, p.Role, in)
	if err != nil {
		// The row may exist even when mail dispatch failed; report the
		// failure but include the created invitation so the caller can
		// resend instead of recreating.
		if inv != nil && domain.IsCode(err, domain.CodeMailError) {
			writeJSON(w, statusFor(domain.CodeMailError), struct {
				errorBody
				Invitation domain.Invitation `json:"invitation"`
			}{
				errorBody:  errorBody{Code: domain.CodeMailError, Message: "invitation created but email delivery failed"},
				Invitation: inv.Redacted(),
			})
			return
		}
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, inv.Redacted())
}

type editInvitationRequest struct {
	Email string `json:"email,omitempty"`
}

func (h *InvitationHandler) Edit(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r.Context())

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req editInvitationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	inv, err := h.invitations.Edit(r.Context(), p.UserID, id, req.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, inv.Redacted())
}

func (h *InvitationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r.Context())

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.invitations.Delete(r.Context(), p.UserID, id); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func (h *InvitationHandler) List(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFrom(r.Context())
	page, limit := pagination(r)

	invs, total, err := h.invitations.List(r.Context(), p.UserID, page, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	for i := range invs {
		invs[i] = invs[i].Redacted()
	}
	writeJSON(w, http.StatusOK, listEnvelope{Items: invs, Total: total, Page: page, Limit: limit})
}

// Verify is the public pre-accept check: it validates the token and
// returns the invitee-facing details without consuming anything.
func (h *InvitationHandler) Verify(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, r, domain.E(domain.CodeBadRequest, "token is required"))
		return
	}

	inv, err := h.invitations.Verify(r.Context(), token)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, inv.Redacted())
}

type acceptInvitationRequest struct {
	Token string `json:"token"`
}

func (h *InvitationHandler) Accept(w http.ResponseWriter, r *http.Request) {
	var req acceptInvitationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Token == "" {
		writeError(w, r, domain.E(domain.CodeBadRequest, "token is required"))
		return
	}

	identity, err := h.invitations.Accept(r.Context(), req.Token)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, identity)
}
