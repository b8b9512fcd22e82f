package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ceidigital/backoffice/internal/application/notification"
)

// DebugNotificationHandler exposes the in-memory notification audit logs
// and provider capability flags. Intended for development and operator
// inspection; it never reveals credential values.
type DebugNotificationHandler struct {
	svc *notification.Service
}

func NewDebugNotificationHandler(svc *notification.Service) *DebugNotificationHandler {
	return &DebugNotificationHandler{svc: svc}
}

func (h *DebugNotificationHandler) SMSHistory(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.SMSHistory())
}

func (h *DebugNotificationHandler) WhatsappHistory(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.WhatsappHistory())
}

func (h *DebugNotificationHandler) ClearSMSHistory(w http.ResponseWriter, _ *http.Request) {
	h.svc.ClearSMSHistory()
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "sms history cleared"})
}

func (h *DebugNotificationHandler) ClearWhatsappHistory(w http.ResponseWriter, _ *http.Request) {
	h.svc.ClearWhatsappHistory()
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "whatsapp history cleared"})
}

func (h *DebugNotificationHandler) Config(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.CapabilitiesView())
}

type debugSendRequest struct {
	Channel string `json:"channel"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Send pushes a test message through the selected channel. Dispatch is
// best-effort by design, so the response only acknowledges the attempt.
func (h *DebugNotificationHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req debugSendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.To == "" || req.Body == "" {
		writeError(w, http.StatusBadRequest, "to and body are required")
		return
	}
	switch req.Channel {
	case "sms":
		h.svc.SendSMS(r.Context(), req.To, req.Body)
	case "whatsapp":
		h.svc.SendWhatsapp(r.Context(), req.To, req.Body)
	case "email":
		subject := req.Subject
		if subject == "" {
			subject = "Mensagem de teste"
		}
		h.svc.SendEmail(req.To, subject, req.Body)
	default:
		writeError(w, http.StatusBadRequest, "channel must be sms, whatsapp or email")
		return
	}
	writeJSON(w, http.StatusAccepted, MessageEnvelope{Message: "dispatch attempted"})
}
