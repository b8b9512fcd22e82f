package notification

import (
	"context"
	"log/slog"

	"github.com/ceidigital/backoffice/internal/domain"
	"github.com/ceidigital/backoffice/internal/infrastructure/smtp"
	"github.com/ceidigital/backoffice/internal/infrastructure/twilio"
	"github.com/ceidigital/backoffice/internal/metrics"
	"github.com/ceidigital/backoffice/internal/pkg/phone"
)

// Settings carries the provider credentials and flags, resolved once at
// startup. Fields may be empty: missing credentials switch the affected
// channel to record-only mode instead of failing.
type Settings struct {
	AccountSID      string
	AuthToken       string
	SMSFrom         string
	WhatsappFrom    string
	WhatsappEnabled bool
	CountryCode     string
}

// Capabilities reports which provider settings are present, never their
// values. Consumed by the introspection endpoint.
type Capabilities struct {
	WhatsappEnabled bool `json:"whatsappEnabled"`
	HasSID          bool `json:"hasTwilioSid"`
	HasToken        bool `json:"hasTwilioToken"`
	HasSMSFrom      bool `json:"hasSmsFrom"`
	HasWhatsappFrom bool `json:"hasWhatsappFrom"`
}

// Service dispatches messages over email, SMS and WhatsApp, best-effort.
// No method returns an error: a provider failure degrades to a local
// audit-log record so caller flows never depend on provider availability.
type Service struct {
	mailer      smtp.Mailer
	sender      twilio.MessageSender
	smsLog      *AuditLog
	whatsappLog *AuditLog
	settings    Settings
}

func NewService(mailer smtp.Mailer, sender twilio.MessageSender, smsLog, whatsappLog *AuditLog, settings Settings) *Service {
	if settings.CountryCode == "" {
		settings.CountryCode = phone.DefaultCountryCode
	}
	return &Service{
		mailer:      mailer,
		sender:      sender,
		smsLog:      smsLog,
		whatsappLog: whatsappLog,
		settings:    settings,
	}
}

// SendEmail delivers via SMTP when a mailer is configured; otherwise, or on
// failure, the message is only logged.
func (s *Service) SendEmail(to, subject, body string) {
	if s.mailer == nil {
		slog.Info("email (dev mode)", "to", to, "subject", subject, "body", body)
		metrics.NotificationsTotal.WithLabelValues("email", "recorded").Inc()
		return
	}
	if err := s.mailer.SendEmail(to, subject, body); err != nil {
		slog.Warn("email send failed, falling back to log", "to", to, "err", err)
		slog.Info("email (dev mode)", "to", to, "subject", subject, "body", body)
		metrics.NotificationsTotal.WithLabelValues("email", "recorded").Inc()
		return
	}
	slog.Info("email sent", "to", to, "subject", subject)
	metrics.NotificationsTotal.WithLabelValues("email", "sent").Inc()
}

// SendSMS normalizes the destination and attempts a live provider send when
// SID, token and sending number are all present. The audit log gets a copy
// in every case: it reflects all outbound traffic, not just dev-mode
// fallback. The provider call happens before the log append, so no lock is
// held across the network.
func (s *Service) SendSMS(ctx context.Context, to, body string) {
	dest := phone.Normalize(to, s.settings.CountryCode)
	if !s.HasSID() || !s.HasToken() || !s.HasSMSFrom() {
		slog.Info("sms (dev mode)", "to", dest, "body", body)
		metrics.NotificationsTotal.WithLabelValues("sms", "recorded").Inc()
		s.smsLog.Append(dest, body)
		return
	}
	if err := s.sender.SendMessage(ctx, s.settings.SMSFrom, dest, body); err != nil {
		slog.Warn("sms send failed, falling back to log", "to", dest, "err", err)
		metrics.NotificationsTotal.WithLabelValues("sms", "recorded").Inc()
	} else {
		slog.Info("sms sent", "to", dest)
		metrics.NotificationsTotal.WithLabelValues("sms", "sent").Inc()
	}
	s.smsLog.Append(dest, body)
}

// SendWhatsapp behaves like SendSMS but is additionally gated by the
// feature flag and uses the provider's whatsapp: address prefix on the
// wire. The audit log stores the bare normalized number.
func (s *Service) SendWhatsapp(ctx context.Context, to, body string) {
	dest := phone.Normalize(to, s.settings.CountryCode)
	if !s.settings.WhatsappEnabled || !s.HasSID() || !s.HasToken() || !s.HasWhatsappFrom() {
		slog.Info("whatsapp (dev mode)", "to", dest, "body", body)
		metrics.NotificationsTotal.WithLabelValues("whatsapp", "recorded").Inc()
		s.whatsappLog.Append(dest, body)
		return
	}
	from := "whatsapp:" + phone.Normalize(s.settings.WhatsappFrom, s.settings.CountryCode)
	if err := s.sender.SendMessage(ctx, from, "whatsapp:"+dest, body); err != nil {
		slog.Warn("whatsapp send failed, falling back to log", "to", dest, "err", err)
		metrics.NotificationsTotal.WithLabelValues("whatsapp", "recorded").Inc()
	} else {
		slog.Info("whatsapp sent", "to", dest)
		metrics.NotificationsTotal.WithLabelValues("whatsapp", "sent").Inc()
	}
	s.whatsappLog.Append(dest, body)
}

// SMSHistory returns the retained SMS audit records, oldest first.
func (s *Service) SMSHistory() []domain.MessageRecord { return s.smsLog.List() }

// WhatsappHistory returns the retained WhatsApp audit records, oldest first.
func (s *Service) WhatsappHistory() []domain.MessageRecord { return s.whatsappLog.List() }

// ClearSMSHistory drops all retained SMS audit records.
func (s *Service) ClearSMSHistory() { s.smsLog.Clear() }

// ClearWhatsappHistory drops all retained WhatsApp audit records.
func (s *Service) ClearWhatsappHistory() { s.whatsappLog.Clear() }

func (s *Service) WhatsappEnabled() bool { return s.settings.WhatsappEnabled }
func (s *Service) HasSID() bool          { return s.settings.AccountSID != "" }
func (s *Service) HasToken() bool        { return s.settings.AuthToken != "" }
func (s *Service) HasSMSFrom() bool      { return s.settings.SMSFrom != "" }
func (s *Service) HasWhatsappFrom() bool { return s.settings.WhatsappFrom != "" }

// CapabilitiesView snapshots the presence flags for introspection.
func (s *Service) CapabilitiesView() Capabilities {
	return Capabilities{
		WhatsappEnabled: s.WhatsappEnabled(),
		HasSID:          s.HasSID(),
		HasToken:        s.HasToken(),
		HasSMSFrom:      s.HasSMSFrom(),
		HasWhatsappFrom: s.HasWhatsappFrom(),
	}
}
