package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ceidigital/backoffice/internal/application/registration"
	"github.com/ceidigital/backoffice/internal/pkg/validate"
)

// RegisterHandler handles the two-step self-service sign-up.
type RegisterHandler struct {
	svc registration.Service
}

func NewRegisterHandler(svc registration.Service) *RegisterHandler {
	return &RegisterHandler{svc: svc}
}

// RequestCode issues a verification code and delivers it to the caller.
func (h *RegisterHandler) RequestCode(w http.ResponseWriter, r *http.Request) {
	var req registration.RequestCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.RequestCode(r.Context(), req); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "codigo.enviado"})
}

// Confirm consumes the verification code and creates the account.
func (h *RegisterHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req registration.ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.Confirm(r.Context(), req); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, MessageEnvelope{Message: "usuario.criado"})
}
