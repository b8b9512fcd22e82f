package domain

import "time"

// MessageRecord is an audit copy of an outbound SMS or WhatsApp message.
// Records are immutable once created and live only in the per-channel
// audit log, never in the database.
type MessageRecord struct {
	To        string    `json:"to"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
